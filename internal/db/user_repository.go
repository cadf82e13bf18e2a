package db

import (
	"context"
	"errors"
	"fmt"

	"nexta-backend-go/internal/models"
	"nexta-backend-go/pkg/database"
)

type userRepository struct {
	store database.Store
}

// NewUserRepository creates a UserRepository over the document store.
func NewUserRepository(store database.Store) UserRepository {
	return &userRepository{store: store}
}

// Create writes users/{uid}. The Firebase Auth UID is the document ID.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return errors.New("user ID cannot be empty for Create operation")
	}
	if err := r.store.Create(ctx, userPath(user.ID), user); err != nil {
		if errors.Is(err, database.ErrAlreadyExists) {
			return fmt.Errorf("user with ID '%s' already exists: %w", user.ID, err)
		}
		return fmt.Errorf("failed to create user with ID '%s': %w", user.ID, err)
	}
	return nil
}

// GetByID retrieves a user document by Firebase Auth UID.
func (r *userRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for GetByID operation")
	}
	doc, err := r.store.Get(ctx, userPath(userID))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("user with ID '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user with ID '%s': %w", userID, err)
	}
	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for ID '%s': %w", userID, err)
	}
	user.ID = doc.ID
	return &user, nil
}

// ListByRole returns every user carrying role, the single equality clause
// the catalog pages filter on.
func (r *userRepository) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	docs, err := r.store.List(ctx, usersCollection, database.Where("role", database.OpEqual, string(role)))
	if err != nil {
		return nil, fmt.Errorf("failed to list users with role '%s': %w", role, err)
	}
	users := make([]*models.User, 0, len(docs))
	for _, doc := range docs {
		var user models.User
		if err := doc.DataTo(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user %s: %w", doc.ID, err)
		}
		user.ID = doc.ID
		users = append(users, &user)
	}
	return users, nil
}
