package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"nexta-backend-go/internal/db"
	"nexta-backend-go/internal/models"
)

type jobService struct {
	users    db.UserRepository
	profiles db.ProfileRepository
	jobs     db.JobRepository
	recorder
	now func() time.Time
}

// NewJobService creates a JobService.
func NewJobService(users db.UserRepository, profiles db.ProfileRepository, jobs db.JobRepository, audit AuditService, logger *zap.Logger) JobService {
	return &jobService{
		users:    users,
		profiles: profiles,
		jobs:     jobs,
		recorder: recorder{auditor: audit, logger: logger},
		now:      time.Now,
	}
}

// CreateJob posts a job. The company name comes from the employer's first
// company profile, falling back to the account name.
func (s *jobService) CreateJob(ctx context.Context, employerID string, req models.CreateJobRequest) (*models.Job, error) {
	employer, err := requireRole(ctx, s.users, employerID, models.RoleCompany)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	companyName := employer.Name
	profiles, err := s.profiles.ListCompany(ctx, employerID)
	if err != nil {
		return nil, err
	}
	if len(profiles) > 0 && profiles[0].CompanyName != "" {
		companyName = profiles[0].CompanyName
	}

	now := s.now().UTC()
	job := &models.Job{
		EmployerID:  employerID,
		Title:       title,
		Description: req.Description,
		Skills:      models.NormalizeSkills(req.Skills),
		CompanyName: companyName,
		Applicants:  []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	s.record(ctx, models.AuditLog{UserID: employerID, Action: models.AuditJobCreate, TargetType: "JOB", TargetID: job.ID})
	return job, nil
}

func (s *jobService) UpdateJob(ctx context.Context, employerID, jobID string, req models.UpdateJobRequest) (*models.Job, error) {
	job, err := s.ownJob(ctx, employerID, jobID)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		job.Title = title
	}
	setString(&job.Description, req.Description)
	if req.Skills != nil {
		job.Skills = models.NormalizeSkills(*req.Skills)
	}
	job.UpdatedAt = s.now().UTC()

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobService) DeleteJob(ctx context.Context, employerID, jobID string) error {
	if _, err := s.ownJob(ctx, employerID, jobID); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, employerID, jobID); err != nil {
		return err
	}
	s.record(ctx, models.AuditLog{UserID: employerID, Action: models.AuditJobDelete, TargetType: "JOB", TargetID: jobID})
	return nil
}

func (s *jobService) ListOwnJobs(ctx context.Context, employerID string) ([]*models.Job, error) {
	if _, err := requireRole(ctx, s.users, employerID, models.RoleCompany); err != nil {
		return nil, err
	}
	return s.jobs.ListByEmployer(ctx, employerID)
}

// ownJob loads a job from the caller's own collection, so another
// employer's job id simply resolves to not found.
func (s *jobService) ownJob(ctx context.Context, employerID, jobID string) (*models.Job, error) {
	if _, err := requireRole(ctx, s.users, employerID, models.RoleCompany); err != nil {
		return nil, err
	}
	job, err := s.jobs.Get(ctx, employerID, jobID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: job '%s'", ErrNotFound, jobID)
		}
		return nil, err
	}
	return job, nil
}
