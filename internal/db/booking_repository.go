package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nexta-backend-go/internal/models"
	"nexta-backend-go/pkg/database"
)

type bookingRepository struct {
	store database.Store
}

// NewBookingRepository creates a BookingRepository over the document store.
func NewBookingRepository(store database.Store) BookingRepository {
	return &bookingRepository{store: store}
}

// Checkout turns requesterID's cart into one booking with a Pending line per
// candidate, writes a bookedRequests mirror for every line and clears the
// cart. An empty cart returns ErrEmptyCart and writes nothing.
func (r *bookingRepository) Checkout(ctx context.Context, requesterID string, startDate, endDate, now time.Time) (*models.Booking, error) {
	cartCol := userCollection(requesterID, cartCollection)
	bookedCol := userCollection(requesterID, bookedCollection)

	var booking models.Booking
	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx database.Tx) error {
		docs, err := tx.List(cartCol)
		if err != nil {
			return err
		}
		items, err := decodeCart(docs)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		booking = models.Booking{
			ID:        r.store.NewID(bookedCol),
			UserID:    requesterID,
			StartDate: startDate,
			EndDate:   endDate,
			CartItems: make([]models.BookingLine, 0, len(items)),
			CreatedAt: now,
		}
		for _, item := range items {
			booking.CartItems = append(booking.CartItems, models.BookingLine{
				ID:          r.store.NewID(userCollection(item.CandidateID, bookedRequestsCollection)),
				CandidateID: item.CandidateID,
				Status:      models.BookingPending,
			})
		}

		if err := tx.Create(database.Join(bookedCol, booking.ID), booking); err != nil {
			return err
		}
		for _, line := range booking.CartItems {
			mirror := models.BookedRequest{
				ID:          line.ID,
				BookingID:   booking.ID,
				RequesterID: requesterID,
				CandidateID: line.CandidateID,
				StartDate:   startDate,
				EndDate:     endDate,
				Status:      line.Status,
				UpdatedAt:   now,
			}
			if err := tx.Create(userDoc(line.CandidateID, bookedRequestsCollection, line.ID), mirror); err != nil {
				return err
			}
		}
		for _, doc := range docs {
			if err := tx.Delete(doc.Path); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("checkout for '%s' failed: %w", requesterID, err)
	}
	return &booking, nil
}

// Decide applies the candidate's accept or reject to the line inside the
// requester's booking and to the candidate's mirror.
func (r *bookingRepository) Decide(ctx context.Context, candidateID, requesterID, bookingID, lineID string, status models.BookingStatus, now time.Time) (*models.BookedRequest, error) {
	bookingPath := userDoc(requesterID, bookedCollection, bookingID)
	mirrorPath := userDoc(candidateID, bookedRequestsCollection, lineID)

	var mirror models.BookedRequest
	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx database.Tx) error {
		bookingDoc, err := tx.Get(bookingPath)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return fmt.Errorf("booking '%s' not found: %w", bookingID, ErrNotFound)
			}
			return err
		}
		mirrorDoc, err := tx.Get(mirrorPath)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return fmt.Errorf("booked request '%s' not found: %w", lineID, ErrNotFound)
			}
			return err
		}

		var booking models.Booking
		if err := bookingDoc.DataTo(&booking); err != nil {
			return fmt.Errorf("failed to decode booking %s: %w", bookingPath, err)
		}
		if err := mirrorDoc.DataTo(&mirror); err != nil {
			return fmt.Errorf("failed to decode booked request %s: %w", mirrorPath, err)
		}
		if mirror.BookingID != bookingID || mirror.RequesterID != requesterID {
			return fmt.Errorf("booked request '%s' does not belong to booking '%s': %w", lineID, bookingID, ErrNotFound)
		}
		line, ok := booking.Line(lineID)
		if !ok || line.CandidateID != candidateID {
			return fmt.Errorf("line '%s' not found in booking '%s': %w", lineID, bookingID, ErrNotFound)
		}
		if !line.Status.CanTransition(status) || !mirror.Status.CanTransition(status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, line.Status, status)
		}

		line.Status = status
		mirror.Status = status
		mirror.UpdatedAt = now
		if err := tx.Update(bookingPath, map[string]interface{}{"cartItems": booking.CartItems}); err != nil {
			return err
		}
		return tx.Set(mirrorPath, mirror)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decide booked request '%s': %w", lineID, err)
	}
	return &mirror, nil
}

func (r *bookingRepository) ListBookings(ctx context.Context, requesterID string) ([]*models.Booking, error) {
	docs, err := r.store.List(ctx, userCollection(requesterID, bookedCollection))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings of '%s': %w", requesterID, err)
	}
	bookings := make([]*models.Booking, 0, len(docs))
	for _, doc := range docs {
		var b models.Booking
		if err := doc.DataTo(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking %s: %w", doc.Path, err)
		}
		b.ID = doc.ID
		bookings = append(bookings, &b)
	}
	return bookings, nil
}

func (r *bookingRepository) ListBookedRequests(ctx context.Context, candidateID string) ([]*models.BookedRequest, error) {
	docs, err := r.store.List(ctx, userCollection(candidateID, bookedRequestsCollection))
	if err != nil {
		return nil, fmt.Errorf("failed to list booked requests of '%s': %w", candidateID, err)
	}
	requests := make([]*models.BookedRequest, 0, len(docs))
	for _, doc := range docs {
		var br models.BookedRequest
		if err := doc.DataTo(&br); err != nil {
			return nil, fmt.Errorf("failed to decode booked request %s: %w", doc.Path, err)
		}
		br.ID = doc.ID
		requests = append(requests, &br)
	}
	return requests, nil
}
