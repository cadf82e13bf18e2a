package db

import (
	"context"
	"time"

	"nexta-backend-go/internal/models"
)

// UserRepository defines the interface for user data storage operations.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	// Create fails with database.ErrAlreadyExists if the user exists.
	Create(ctx context.Context, user *models.User) error
	ListByRole(ctx context.Context, role models.Role) ([]*models.User, error)
}

// ProfileRepository stores freelancer and company profiles under a user.
type ProfileRepository interface {
	ListFreelancer(ctx context.Context, userID string) ([]models.FreelancerProfile, error)
	CreateFreelancer(ctx context.Context, userID string, profile *models.FreelancerProfile) (string, error)
	UpdateFreelancer(ctx context.Context, userID string, profile *models.FreelancerProfile) error

	ListCompany(ctx context.Context, userID string) ([]models.CompanyProfile, error)
	CreateCompany(ctx context.Context, userID string, profile *models.CompanyProfile) (string, error)
	UpdateCompany(ctx context.Context, userID string, profile *models.CompanyProfile) error
}

// JobRepository stores jobs under the employer.
type JobRepository interface {
	Get(ctx context.Context, employerID, jobID string) (*models.Job, error)
	ListByEmployer(ctx context.Context, employerID string) ([]*models.Job, error)
	Create(ctx context.Context, job *models.Job) (string, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, employerID, jobID string) error
}

// ApplicationRepository runs the application workflow. Each mutating call
// writes both mirrors in a single transaction.
type ApplicationRepository interface {
	Submit(ctx context.Context, applicantID, employerID, jobID string, now time.Time) (*models.Application, error)
	Decide(ctx context.Context, employerID, applicationID string, status models.ApplicationStatus, now time.Time) (*models.Application, error)
	Withdraw(ctx context.Context, applicantID, jobID string) (*models.Application, error)
	ListSent(ctx context.Context, applicantID string) ([]*models.Application, error)
	ListReceived(ctx context.Context, employerID string) ([]*models.Application, error)
}

// CartRepository stores candidate references keyed by candidate id.
type CartRepository interface {
	Add(ctx context.Context, userID, candidateID string, now time.Time) error
	Remove(ctx context.Context, userID, candidateID string) error
	List(ctx context.Context, userID string) ([]*models.CartItem, error)
}

// BookingRepository converts carts into bookings and propagates line
// decisions to both the booking and the candidate's mirror.
type BookingRepository interface {
	Checkout(ctx context.Context, requesterID string, startDate, endDate, now time.Time) (*models.Booking, error)
	Decide(ctx context.Context, candidateID, requesterID, bookingID, lineID string, status models.BookingStatus, now time.Time) (*models.BookedRequest, error)
	ListBookings(ctx context.Context, requesterID string) ([]*models.Booking, error)
	ListBookedRequests(ctx context.Context, candidateID string) ([]*models.BookedRequest, error)
}

// AuditRepository defines the interface for audit log data storage operations.
type AuditRepository interface {
	Create(ctx context.Context, logEntry models.AuditLog) error
}
