package db

import (
	"context"
	"errors"
	"fmt"

	"nexta-backend-go/internal/models"
	"nexta-backend-go/pkg/database"
)

type jobRepository struct {
	store database.Store
}

// NewJobRepository creates a JobRepository over the document store.
func NewJobRepository(store database.Store) JobRepository {
	return &jobRepository{store: store}
}

func (r *jobRepository) Get(ctx context.Context, employerID, jobID string) (*models.Job, error) {
	doc, err := r.store.Get(ctx, userDoc(employerID, jobsCollection, jobID))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("job '%s' of '%s' not found: %w", jobID, employerID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get job '%s': %w", jobID, err)
	}
	return decodeJob(doc, employerID)
}

func (r *jobRepository) ListByEmployer(ctx context.Context, employerID string) ([]*models.Job, error) {
	docs, err := r.store.List(ctx, userCollection(employerID, jobsCollection))
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs of '%s': %w", employerID, err)
	}
	jobs := make([]*models.Job, 0, len(docs))
	for _, doc := range docs {
		job, err := decodeJob(doc, employerID)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Create stores a job under job.EmployerID and sets job.ID.
func (r *jobRepository) Create(ctx context.Context, job *models.Job) (string, error) {
	if job.EmployerID == "" {
		return "", errors.New("job employer ID cannot be empty for Create operation")
	}
	if job.Applicants == nil {
		job.Applicants = []string{}
	}
	collection := userCollection(job.EmployerID, jobsCollection)
	job.ID = r.store.NewID(collection)
	if err := r.store.Create(ctx, database.Join(collection, job.ID), job); err != nil {
		return "", fmt.Errorf("failed to create job: %w", err)
	}
	return job.ID, nil
}

// Update rewrites the editable fields of a job. The applicants list is left
// to the application workflow so that concurrent applies are not lost.
func (r *jobRepository) Update(ctx context.Context, job *models.Job) error {
	err := r.store.Update(ctx, userDoc(job.EmployerID, jobsCollection, job.ID), map[string]interface{}{
		"title":       job.Title,
		"description": job.Description,
		"skills":      job.Skills,
		"companyName": job.CompanyName,
		"updatedAt":   job.UpdatedAt,
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("job '%s' not found: %w", job.ID, ErrNotFound)
		}
		return fmt.Errorf("failed to update job '%s': %w", job.ID, err)
	}
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, employerID, jobID string) error {
	if err := r.store.Delete(ctx, userDoc(employerID, jobsCollection, jobID)); err != nil {
		return fmt.Errorf("failed to delete job '%s': %w", jobID, err)
	}
	return nil
}

func decodeJob(doc *database.Document, employerID string) (*models.Job, error) {
	var job models.Job
	if err := doc.DataTo(&job); err != nil {
		return nil, fmt.Errorf("failed to decode job %s: %w", doc.Path, err)
	}
	job.ID = doc.ID
	job.EmployerID = employerID
	return &job, nil
}
