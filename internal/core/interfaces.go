package core

import (
	"context"
	"io"

	"nexta-backend-go/internal/models"
)

// UserService defines the interface for user-related operations.
type UserService interface {
	// InitializeUser writes the role-tagged user document on first sign-in.
	// Later calls return the stored user unchanged; created reports which
	// case applied.
	InitializeUser(ctx context.Context, userID, email, name string, role models.Role) (user *models.User, created bool, err error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
}

// ProfileService manages freelancer and company profiles and their files.
type ProfileService interface {
	CreateFreelancer(ctx context.Context, userID string, req models.FreelancerProfileRequest) (*models.FreelancerProfile, error)
	GetFreelancer(ctx context.Context, userID string) (*models.FreelancerProfile, error)
	UpdateFreelancer(ctx context.Context, userID string, req models.UpdateFreelancerProfileRequest) (*models.FreelancerProfile, error)
	GetResume(ctx context.Context, userID string) (string, error)

	CreateCompany(ctx context.Context, userID string, req models.CompanyProfileRequest) (*models.CompanyProfile, error)
	GetCompany(ctx context.Context, userID string) (*models.CompanyProfile, error)
	UpdateCompany(ctx context.Context, userID string, req models.UpdateCompanyProfileRequest) (*models.CompanyProfile, error)

	// Upload stores a profile file and returns the reference to save in
	// photoFile, resumeFile or logoFile.
	Upload(ctx context.Context, userID string, kind UploadKind, filename, contentType string, r io.Reader) (string, error)
}

// JobService manages a company's job postings.
type JobService interface {
	CreateJob(ctx context.Context, employerID string, req models.CreateJobRequest) (*models.Job, error)
	UpdateJob(ctx context.Context, employerID, jobID string, req models.UpdateJobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, employerID, jobID string) error
	ListOwnJobs(ctx context.Context, employerID string) ([]*models.Job, error)
}

// ApplicationService runs the job application workflow.
type ApplicationService interface {
	Apply(ctx context.Context, applicantID, employerID, jobID string) (*models.Application, error)
	Decide(ctx context.Context, employerID, applicationID string, status models.ApplicationStatus) (*models.Application, error)
	Withdraw(ctx context.Context, applicantID, jobID string) error
	ListSent(ctx context.Context, applicantID, query string) ([]*models.ApplicationView, error)
	ListReceived(ctx context.Context, employerID, query string) ([]*models.ApplicationView, error)
}

// CartService manages the candidates a user intends to book.
type CartService interface {
	Add(ctx context.Context, userID, candidateID string) error
	Remove(ctx context.Context, userID, candidateID string) error
	List(ctx context.Context, userID string) ([]*models.CartEntry, error)
}

// BookingService turns carts into bookings and records candidate decisions.
type BookingService interface {
	Checkout(ctx context.Context, userID string, req models.CheckoutRequest) (*models.Booking, error)
	Decide(ctx context.Context, candidateID, lineID string, req models.BookingDecisionRequest) (*models.BookedRequest, error)
	ListBookings(ctx context.Context, userID string) ([]*models.Booking, error)
	ListBookedRequests(ctx context.Context, candidateID string) ([]*models.BookedRequestView, error)
}

// CatalogService serves the browse pages.
type CatalogService interface {
	ListPeople(ctx context.Context, filter models.PeopleFilter) ([]*models.Person, error)
	ListCompanies(ctx context.Context, query string) ([]*models.Company, error)
	ListJobs(ctx context.Context, query string) ([]*models.Job, error)
}

// PlacesService looks up points of interest near a coordinate.
type PlacesService interface {
	Nearby(ctx context.Context, lat, lon float64, radius int, amenities []string) (map[string][]models.Place, error)
}

// AuditService defines the interface for audit logging operations.
type AuditService interface {
	CreateAuditLog(ctx context.Context, logEntry models.AuditLog) error
}

// EventPublisher announces committed workflow transitions.
type EventPublisher interface {
	Publish(ctx context.Context, event models.Event) error
}
