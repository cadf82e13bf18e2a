package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"nexta-backend-go/internal/db"
	"nexta-backend-go/internal/models"
)

type cartService struct {
	users    db.UserRepository
	profiles db.ProfileRepository
	cart     db.CartRepository
	urls     *URLResolver
	logger   *zap.Logger
	now      func() time.Time
}

// NewCartService creates a CartService.
func NewCartService(users db.UserRepository, profiles db.ProfileRepository, cart db.CartRepository, urls *URLResolver, logger *zap.Logger) CartService {
	return &cartService{users: users, profiles: profiles, cart: cart, urls: urls, logger: logger, now: time.Now}
}

// Add puts candidateID in userID's cart. The candidate must be an existing
// freelancer other than the caller. Adding twice is a no-op.
func (s *cartService) Add(ctx context.Context, userID, candidateID string) error {
	if candidateID == "" {
		return fmt.Errorf("%w: candidateId is required", ErrInvalidInput)
	}
	if candidateID == userID {
		return fmt.Errorf("%w: cannot book yourself", ErrForbidden)
	}
	candidate, err := s.users.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: candidate '%s'", ErrUserNotFound, candidateID)
		}
		return err
	}
	if candidate.Role != models.RoleUser {
		return fmt.Errorf("%w: only freelancers can be added to a cart", ErrInvalidInput)
	}
	return s.cart.Add(ctx, userID, candidateID, s.now().UTC())
}

// Remove drops candidateID from the cart. Removing a missing entry is a no-op.
func (s *cartService) Remove(ctx context.Context, userID, candidateID string) error {
	return s.cart.Remove(ctx, userID, candidateID)
}

// List returns the cart joined with each candidate's name and first
// freelancer profile. Candidates whose account has disappeared are shown
// without display data.
func (s *cartService) List(ctx context.Context, userID string) ([]*models.CartEntry, error) {
	items, err := s.cart.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries := make([]*models.CartEntry, len(items))
	err = forEach(ctx, len(items), func(ctx context.Context, i int) error {
		entry := &models.CartEntry{CartItem: *items[i]}
		user, err := s.users.GetByID(ctx, entry.CandidateID)
		switch {
		case err == nil:
			entry.Name = user.Name
		case errors.Is(err, db.ErrNotFound):
			s.logger.Warn("Cart references a missing user", zap.String("candidateId", entry.CandidateID))
		default:
			return err
		}
		profiles, err := s.profiles.ListFreelancer(ctx, entry.CandidateID)
		if err != nil {
			return err
		}
		if len(profiles) > 0 {
			p := profiles[0]
			p.PhotoURL = s.urls.Resolve(ctx, p.PhotoFile)
			entry.Freelancer = &p
		}
		entries[i] = entry
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to join cart of '%s': %w", userID, err)
	}
	return entries, nil
}
