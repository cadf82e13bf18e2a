package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"nexta-backend-go/internal/db"
	"nexta-backend-go/internal/models"
	"nexta-backend-go/pkg/database"
)

// userService implements the UserService interface.
type userService struct {
	userRepo db.UserRepository
	recorder
	now func() time.Time
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository, audit AuditService, logger *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		recorder: recorder{auditor: audit, logger: logger},
		now:      time.Now,
	}
}

// InitializeUser returns the existing user for userID, or creates it with
// role. The role of an existing user is never overwritten.
func (s *userService) InitializeUser(ctx context.Context, userID, email, name string, role models.Role) (*models.User, bool, error) {
	if !role.Valid() {
		return nil, false, fmt.Errorf("%w: role must be %q or %q", ErrInvalidInput, models.RoleUser, models.RoleCompany)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to get user by ID '%s' from repository: %w", userID, err)
	}

	newUser := &models.User{
		ID:        userID,
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: s.now().UTC(),
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		// A concurrent first sign-in won the race; return its document.
		if errors.Is(err, database.ErrAlreadyExists) {
			existing, getErr := s.userRepo.GetByID(ctx, userID)
			if getErr != nil {
				return nil, false, fmt.Errorf("failed to read user '%s' after create conflict: %w", userID, getErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to create user (id: %s) after not found: %w", userID, err)
	}

	s.record(ctx, models.AuditLog{
		UserID:     userID,
		Action:     models.AuditUserInitialize,
		TargetType: "USER",
		TargetID:   userID,
		Details:    map[string]interface{}{"role": string(role)},
	})
	return newUser, true, nil
}

// GetByID retrieves a user by their ID.
func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with ID '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user by ID '%s' from repository: %w", userID, err)
	}
	return user, nil
}

// requireRole loads userID and checks its role.
func requireRole(ctx context.Context, users db.UserRepository, userID string, role models.Role) (*models.User, error) {
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with ID '%s'", ErrUserNotFound, userID)
		}
		return nil, err
	}
	if user.Role != role {
		return nil, fmt.Errorf("%w: requires role %s", ErrForbidden, role)
	}
	return user, nil
}
