package db

import (
	"context"
	"fmt"

	"nexta-backend-go/internal/models"
	"nexta-backend-go/pkg/database"
)

type profileRepository struct {
	store database.Store
}

// NewProfileRepository creates a ProfileRepository over the document store.
func NewProfileRepository(store database.Store) ProfileRepository {
	return &profileRepository{store: store}
}

func (r *profileRepository) ListFreelancer(ctx context.Context, userID string) ([]models.FreelancerProfile, error) {
	docs, err := r.store.List(ctx, userCollection(userID, freelancerCollection))
	if err != nil {
		return nil, fmt.Errorf("failed to list freelancer profiles for '%s': %w", userID, err)
	}
	profiles := make([]models.FreelancerProfile, 0, len(docs))
	for _, doc := range docs {
		var p models.FreelancerProfile
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("failed to decode freelancer profile %s: %w", doc.Path, err)
		}
		p.ID = doc.ID
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (r *profileRepository) CreateFreelancer(ctx context.Context, userID string, profile *models.FreelancerProfile) (string, error) {
	id, err := r.store.Add(ctx, userCollection(userID, freelancerCollection), profile)
	if err != nil {
		return "", fmt.Errorf("failed to create freelancer profile for '%s': %w", userID, err)
	}
	profile.ID = id
	return id, nil
}

func (r *profileRepository) UpdateFreelancer(ctx context.Context, userID string, profile *models.FreelancerProfile) error {
	if err := r.store.Set(ctx, userDoc(userID, freelancerCollection, profile.ID), profile); err != nil {
		return fmt.Errorf("failed to update freelancer profile %s for '%s': %w", profile.ID, userID, err)
	}
	return nil
}

func (r *profileRepository) ListCompany(ctx context.Context, userID string) ([]models.CompanyProfile, error) {
	docs, err := r.store.List(ctx, userCollection(userID, companiesCollection))
	if err != nil {
		return nil, fmt.Errorf("failed to list company profiles for '%s': %w", userID, err)
	}
	profiles := make([]models.CompanyProfile, 0, len(docs))
	for _, doc := range docs {
		var p models.CompanyProfile
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("failed to decode company profile %s: %w", doc.Path, err)
		}
		p.ID = doc.ID
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (r *profileRepository) CreateCompany(ctx context.Context, userID string, profile *models.CompanyProfile) (string, error) {
	id, err := r.store.Add(ctx, userCollection(userID, companiesCollection), profile)
	if err != nil {
		return "", fmt.Errorf("failed to create company profile for '%s': %w", userID, err)
	}
	profile.ID = id
	return id, nil
}

func (r *profileRepository) UpdateCompany(ctx context.Context, userID string, profile *models.CompanyProfile) error {
	if err := r.store.Set(ctx, userDoc(userID, companiesCollection, profile.ID), profile); err != nil {
		return fmt.Errorf("failed to update company profile %s for '%s': %w", profile.ID, userID, err)
	}
	return nil
}
