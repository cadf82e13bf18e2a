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

type bookingService struct {
	users    db.UserRepository
	bookings db.BookingRepository
	recorder
	now func() time.Time
}

// NewBookingService creates a BookingService.
func NewBookingService(users db.UserRepository, bookings db.BookingRepository, audit AuditService, events EventPublisher, logger *zap.Logger) BookingService {
	return &bookingService{
		users:    users,
		bookings: bookings,
		recorder: recorder{auditor: audit, events: events, logger: logger},
		now:      time.Now,
	}
}

// Checkout books every candidate in the caller's cart for the date range.
func (s *bookingService) Checkout(ctx context.Context, userID string, req models.CheckoutRequest) (*models.Booking, error) {
	if !req.TermsAgreed {
		return nil, fmt.Errorf("%w: terms must be agreed", ErrInvalidInput)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	booking, err := s.bookings.Checkout(ctx, userID, req.StartDate.UTC(), req.EndDate.UTC(), s.now().UTC())
	if err != nil {
		return nil, err
	}

	candidates := make([]string, 0, len(booking.CartItems))
	for _, line := range booking.CartItems {
		candidates = append(candidates, line.CandidateID)
	}
	s.record(ctx, models.AuditLog{
		UserID:     userID,
		Action:     models.AuditCheckout,
		TargetType: "BOOKING",
		TargetID:   booking.ID,
		Details:    map[string]interface{}{"candidates": candidates},
	})
	for _, line := range booking.CartItems {
		s.publish(ctx, models.Event{
			Type:        models.EventBookingRequested,
			ActorID:     userID,
			RecipientID: line.CandidateID,
			SubjectID:   line.ID,
			Status:      string(line.Status),
		})
	}
	return booking, nil
}

// Decide records the candidate's accept or reject on a booked request.
func (s *bookingService) Decide(ctx context.Context, candidateID, lineID string, req models.BookingDecisionRequest) (*models.BookedRequest, error) {
	if req.Action != models.BookingAccepted && req.Action != models.BookingRejected {
		return nil, fmt.Errorf("%w: action must be %q or %q", ErrInvalidInput, models.BookingAccepted, models.BookingRejected)
	}
	mirror, err := s.bookings.Decide(ctx, candidateID, req.RequesterID, req.BookingID, lineID, req.Action, s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.record(ctx, models.AuditLog{
		UserID:     candidateID,
		Action:     models.AuditBookingDecide,
		TargetType: "BOOKING_LINE",
		TargetID:   lineID,
		Details:    map[string]interface{}{"bookingId": req.BookingID, "status": string(req.Action)},
	})
	s.publish(ctx, models.Event{
		Type:        models.EventBookingLineDecided,
		ActorID:     candidateID,
		RecipientID: req.RequesterID,
		SubjectID:   lineID,
		Status:      string(req.Action),
	})
	return mirror, nil
}

func (s *bookingService) ListBookings(ctx context.Context, userID string) ([]*models.Booking, error) {
	return s.bookings.ListBookings(ctx, userID)
}

// ListBookedRequests returns the caller's booked requests joined with the
// requester's name.
func (s *bookingService) ListBookedRequests(ctx context.Context, candidateID string) ([]*models.BookedRequestView, error) {
	reqs, err := s.bookings.ListBookedRequests(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	views := make([]*models.BookedRequestView, len(reqs))
	err = forEach(ctx, len(reqs), func(ctx context.Context, i int) error {
		view := &models.BookedRequestView{BookedRequest: *reqs[i]}
		user, err := s.users.GetByID(ctx, view.RequesterID)
		switch {
		case err == nil:
			view.RequesterName = user.Name
		case !errors.Is(err, db.ErrNotFound):
			return err
		}
		views[i] = view
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to join booked requests of '%s': %w", candidateID, err)
	}
	return views, nil
}
