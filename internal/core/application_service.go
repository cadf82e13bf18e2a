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

type applicationService struct {
	users    db.UserRepository
	profiles db.ProfileRepository
	apps     db.ApplicationRepository
	urls     *URLResolver
	recorder
	now func() time.Time
}

// NewApplicationService creates an ApplicationService.
func NewApplicationService(users db.UserRepository, profiles db.ProfileRepository, apps db.ApplicationRepository, urls *URLResolver, audit AuditService, events EventPublisher, logger *zap.Logger) ApplicationService {
	return &applicationService{
		users:    users,
		profiles: profiles,
		apps:     apps,
		urls:     urls,
		recorder: recorder{auditor: audit, events: events, logger: logger},
		now:      time.Now,
	}
}

// Apply files applicantID's application to employerID's job. Both mirrors,
// the shared application id and the job's applicants list are written in one
// transaction.
func (s *applicationService) Apply(ctx context.Context, applicantID, employerID, jobID string) (*models.Application, error) {
	if applicantID == employerID {
		return nil, fmt.Errorf("%w: cannot apply to your own job", ErrForbidden)
	}
	if _, err := requireRole(ctx, s.users, applicantID, models.RoleUser); err != nil {
		return nil, err
	}

	app, err := s.apps.Submit(ctx, applicantID, employerID, jobID, s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.record(ctx, models.AuditLog{
		UserID:     applicantID,
		Action:     models.AuditApplicationSubmit,
		TargetType: "APPLICATION",
		TargetID:   app.ApplicationID,
		Details:    map[string]interface{}{"jobId": jobID, "employerId": employerID},
	})
	s.publish(ctx, models.Event{
		Type:        models.EventApplicationSubmitted,
		ActorID:     applicantID,
		RecipientID: employerID,
		SubjectID:   app.ApplicationID,
		Status:      string(app.Status),
	})
	return app, nil
}

// Decide approves or denies a received application on both mirrors.
func (s *applicationService) Decide(ctx context.Context, employerID, applicationID string, status models.ApplicationStatus) (*models.Application, error) {
	if status != models.ApplicationApproved && status != models.ApplicationDenied {
		return nil, fmt.Errorf("%w: status must be %q or %q", ErrInvalidInput, models.ApplicationApproved, models.ApplicationDenied)
	}
	app, err := s.apps.Decide(ctx, employerID, applicationID, status, s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.record(ctx, models.AuditLog{
		UserID:     employerID,
		Action:     models.AuditApplicationDecide,
		TargetType: "APPLICATION",
		TargetID:   applicationID,
		Details:    map[string]interface{}{"status": string(status)},
	})
	s.publish(ctx, models.Event{
		Type:        models.EventApplicationDecided,
		ActorID:     employerID,
		RecipientID: app.ApplicantID,
		SubjectID:   applicationID,
		Status:      string(status),
	})
	return app, nil
}

// Withdraw cancels a pending application.
func (s *applicationService) Withdraw(ctx context.Context, applicantID, jobID string) error {
	app, err := s.apps.Withdraw(ctx, applicantID, jobID)
	if err != nil {
		return err
	}
	s.record(ctx, models.AuditLog{
		UserID:     applicantID,
		Action:     models.AuditApplicationCancel,
		TargetType: "APPLICATION",
		TargetID:   app.ApplicationID,
	})
	return nil
}

// ListSent returns the caller's applications, optionally filtered by company
// name or job title.
func (s *applicationService) ListSent(ctx context.Context, applicantID, query string) ([]*models.ApplicationView, error) {
	apps, err := s.apps.ListSent(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	views := make([]*models.ApplicationView, 0, len(apps))
	for _, app := range apps {
		if !containsFold(query, app.CompanyName, app.JobTitle) {
			continue
		}
		views = append(views, &models.ApplicationView{Application: *app, CounterpartyName: app.CompanyName})
	}
	return views, nil
}

// ListReceived returns applications to the caller's jobs joined with each
// applicant's name and first freelancer profile, optionally filtered by
// applicant name.
func (s *applicationService) ListReceived(ctx context.Context, employerID, query string) ([]*models.ApplicationView, error) {
	apps, err := s.apps.ListReceived(ctx, employerID)
	if err != nil {
		return nil, err
	}

	views := make([]*models.ApplicationView, len(apps))
	err = forEach(ctx, len(apps), func(ctx context.Context, i int) error {
		app := apps[i]
		view := &models.ApplicationView{Application: *app}

		user, err := s.users.GetByID(ctx, app.ApplicantID)
		switch {
		case err == nil:
			view.CounterpartyName = user.Name
		case errors.Is(err, db.ErrNotFound):
			s.logger.Warn("Applicant user document missing", zap.String("applicantId", app.ApplicantID))
		default:
			return err
		}

		profiles, err := s.profiles.ListFreelancer(ctx, app.ApplicantID)
		if err != nil {
			return err
		}
		if len(profiles) > 0 {
			p := profiles[0]
			p.PhotoURL = s.urls.Resolve(ctx, p.PhotoFile)
			p.ResumeURL = s.urls.Resolve(ctx, p.ResumeFile)
			view.Freelancer = &p
			if view.CounterpartyName == "" {
				view.CounterpartyName = p.Name
			}
		}
		views[i] = view
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to join received applications: %w", err)
	}

	filtered := views[:0]
	for _, v := range views {
		if containsFold(query, v.CounterpartyName) {
			filtered = append(filtered, v)
		}
	}
	return filtered, nil
}
