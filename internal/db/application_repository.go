package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nexta-backend-go/internal/models"
	"nexta-backend-go/pkg/database"
)

type applicationRepository struct {
	store database.Store
}

// NewApplicationRepository creates an ApplicationRepository over the store.
func NewApplicationRepository(store database.Store) ApplicationRepository {
	return &applicationRepository{store: store}
}

// Submit files an application for employerID's job. The employer copy gets a
// generated id which the applicant copy (keyed by job id) embeds, and the
// applicant is added to the job's applicants. A previously denied
// application is replaced; an open one is rejected with ErrAlreadyApplied.
func (r *applicationRepository) Submit(ctx context.Context, applicantID, employerID, jobID string, now time.Time) (*models.Application, error) {
	jobPath := userDoc(employerID, jobsCollection, jobID)
	sentPath := userDoc(applicantID, applicationsCollection, jobID)
	receivedCol := userCollection(employerID, receivedApplicationsCollection)

	var app models.Application
	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx database.Tx) error {
		jobDoc, err := tx.Get(jobPath)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return fmt.Errorf("job '%s' of '%s' not found: %w", jobID, employerID, ErrNotFound)
			}
			return err
		}
		var job models.Job
		if err := jobDoc.DataTo(&job); err != nil {
			return fmt.Errorf("failed to decode job %s: %w", jobPath, err)
		}

		var stale string
		prevDoc, err := tx.Get(sentPath)
		switch {
		case err == nil:
			var prev models.Application
			if err := prevDoc.DataTo(&prev); err != nil {
				return fmt.Errorf("failed to decode application %s: %w", sentPath, err)
			}
			if prev.Status != models.ApplicationDenied {
				return ErrAlreadyApplied
			}
			stale = prev.ApplicationID
		case !errors.Is(err, database.ErrNotFound):
			return err
		}

		app = models.Application{
			ApplicationID: r.store.NewID(receivedCol),
			JobID:         jobID,
			EmployerID:    employerID,
			ApplicantID:   applicantID,
			CompanyName:   job.CompanyName,
			JobTitle:      job.Title,
			Skills:        job.Skills,
			Status:        models.ApplicationPending,
			AppliedAt:     now,
		}

		if stale != "" {
			if err := tx.Delete(database.Join(receivedCol, stale)); err != nil {
				return err
			}
		}
		if err := tx.Create(database.Join(receivedCol, app.ApplicationID), app); err != nil {
			return err
		}
		if err := tx.Set(sentPath, app); err != nil {
			return err
		}
		return tx.Update(jobPath, map[string]interface{}{
			"applicants": database.ArrayUnion(applicantID),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit application for job '%s': %w", jobID, err)
	}
	return &app, nil
}

// Decide moves a pending application to Approved or Denied on both mirrors.
func (r *applicationRepository) Decide(ctx context.Context, employerID, applicationID string, status models.ApplicationStatus, now time.Time) (*models.Application, error) {
	receivedPath := userDoc(employerID, receivedApplicationsCollection, applicationID)

	var app models.Application
	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx database.Tx) error {
		doc, err := tx.Get(receivedPath)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return fmt.Errorf("application '%s' not found: %w", applicationID, ErrNotFound)
			}
			return err
		}
		if err := doc.DataTo(&app); err != nil {
			return fmt.Errorf("failed to decode application %s: %w", receivedPath, err)
		}
		app.ApplicationID = applicationID

		sentPath := userDoc(app.ApplicantID, applicationsCollection, app.JobID)
		sentDoc, err := tx.Get(sentPath)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return fmt.Errorf("applicant copy of application '%s' not found: %w", applicationID, ErrNotFound)
			}
			return err
		}
		var sent models.Application
		if err := sentDoc.DataTo(&sent); err != nil {
			return fmt.Errorf("failed to decode application %s: %w", sentPath, err)
		}
		if sent.ApplicationID != applicationID {
			return fmt.Errorf("applicant copy of application '%s' was superseded: %w", applicationID, ErrNotFound)
		}
		if !app.Status.CanTransition(status) || !sent.Status.CanTransition(status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, app.Status, status)
		}

		decidedAt := now
		app.Status = status
		app.DecidedAt = &decidedAt
		if err := tx.Set(receivedPath, app); err != nil {
			return err
		}
		return tx.Set(sentPath, app)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decide application '%s': %w", applicationID, err)
	}
	return &app, nil
}

// Withdraw removes a still-pending application from both mirrors and from
// the job's applicants.
func (r *applicationRepository) Withdraw(ctx context.Context, applicantID, jobID string) (*models.Application, error) {
	sentPath := userDoc(applicantID, applicationsCollection, jobID)

	var app models.Application
	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx database.Tx) error {
		doc, err := tx.Get(sentPath)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return fmt.Errorf("application for job '%s' not found: %w", jobID, ErrNotFound)
			}
			return err
		}
		if err := doc.DataTo(&app); err != nil {
			return fmt.Errorf("failed to decode application %s: %w", sentPath, err)
		}
		if app.Status != models.ApplicationPending {
			return fmt.Errorf("%w: cannot withdraw a %s application", ErrInvalidTransition, app.Status)
		}

		jobPath := userDoc(app.EmployerID, jobsCollection, jobID)
		_, err = tx.Get(jobPath)
		jobExists := err == nil
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			return err
		}

		if err := tx.Delete(sentPath); err != nil {
			return err
		}
		if err := tx.Delete(userDoc(app.EmployerID, receivedApplicationsCollection, app.ApplicationID)); err != nil {
			return err
		}
		if !jobExists {
			return nil
		}
		return tx.Update(jobPath, map[string]interface{}{
			"applicants": database.ArrayRemove(applicantID),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to withdraw application for job '%s': %w", jobID, err)
	}
	return &app, nil
}

func (r *applicationRepository) ListSent(ctx context.Context, applicantID string) ([]*models.Application, error) {
	return r.list(ctx, userCollection(applicantID, applicationsCollection))
}

func (r *applicationRepository) ListReceived(ctx context.Context, employerID string) ([]*models.Application, error) {
	return r.list(ctx, userCollection(employerID, receivedApplicationsCollection))
}

func (r *applicationRepository) list(ctx context.Context, collection string) ([]*models.Application, error) {
	docs, err := r.store.List(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	apps := make([]*models.Application, 0, len(docs))
	for _, doc := range docs {
		var app models.Application
		if err := doc.DataTo(&app); err != nil {
			return nil, fmt.Errorf("failed to decode application %s: %w", doc.Path, err)
		}
		apps = append(apps, &app)
	}
	return apps, nil
}
