package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nexta-backend-go/internal/models"
	"nexta-backend-go/pkg/database"
)

type cartRepository struct {
	store database.Store
}

// NewCartRepository creates a CartRepository over the document store.
func NewCartRepository(store database.Store) CartRepository {
	return &cartRepository{store: store}
}

// Add puts candidateID in the cart. Adding an existing candidate keeps the
// first entry and its AddedAt.
func (r *cartRepository) Add(ctx context.Context, userID, candidateID string, now time.Time) error {
	item := models.CartItem{CandidateID: candidateID, AddedAt: now}
	err := r.store.Create(ctx, userDoc(userID, cartCollection, candidateID), item)
	if err != nil && !errors.Is(err, database.ErrAlreadyExists) {
		return fmt.Errorf("failed to add '%s' to cart of '%s': %w", candidateID, userID, err)
	}
	return nil
}

// Remove deletes candidateID from the cart; removing a missing entry is a no-op.
func (r *cartRepository) Remove(ctx context.Context, userID, candidateID string) error {
	if err := r.store.Delete(ctx, userDoc(userID, cartCollection, candidateID)); err != nil {
		return fmt.Errorf("failed to remove '%s' from cart of '%s': %w", candidateID, userID, err)
	}
	return nil
}

func (r *cartRepository) List(ctx context.Context, userID string) ([]*models.CartItem, error) {
	docs, err := r.store.List(ctx, userCollection(userID, cartCollection))
	if err != nil {
		return nil, fmt.Errorf("failed to list cart of '%s': %w", userID, err)
	}
	return decodeCart(docs)
}

func decodeCart(docs []*database.Document) ([]*models.CartItem, error) {
	items := make([]*models.CartItem, 0, len(docs))
	for _, doc := range docs {
		var item models.CartItem
		if err := doc.DataTo(&item); err != nil {
			return nil, fmt.Errorf("failed to decode cart item %s: %w", doc.Path, err)
		}
		if item.CandidateID == "" {
			item.CandidateID = doc.ID
		}
		items = append(items, &item)
	}
	return items, nil
}
