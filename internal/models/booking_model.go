package models

import "time"

// BookingStatus is the per-line state of a booking.
type BookingStatus string

const (
	BookingPending  BookingStatus = "Pending"
	BookingAccepted BookingStatus = "Accepted"
	BookingRejected BookingStatus = "Rejected"
)

// CanTransition reports whether a booking line may move from s to next.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	return s == BookingPending && (next == BookingAccepted || next == BookingRejected)
}

// CartItem references a candidate the user intends to book. The candidate id
// is also the document ID, so adding twice is a no-op.
type CartItem struct {
	CandidateID string    `json:"candidateId" firestore:"candidateId"`
	AddedAt     time.Time `json:"addedAt" firestore:"addedAt"`
}

// CartEntry is a cart item joined with the candidate's display data.
type CartEntry struct {
	CartItem
	Name       string             `json:"name"`
	Freelancer *FreelancerProfile `json:"freelancer,omitempty"`
}

// BookingLine is one candidate inside a booking.
type BookingLine struct {
	ID          string        `json:"id" firestore:"id"`
	CandidateID string        `json:"candidateId" firestore:"candidateId"`
	Status      BookingStatus `json:"status" firestore:"status"`
}

// Booking is written under users/{requester}/booked at checkout.
type Booking struct {
	ID        string        `json:"id" firestore:"id"`
	UserID    string        `json:"userId" firestore:"userId"`
	StartDate time.Time     `json:"startDate" firestore:"startDate"`
	EndDate   time.Time     `json:"endDate" firestore:"endDate"`
	CartItems []BookingLine `json:"cartItems" firestore:"cartItems"`
	CreatedAt time.Time     `json:"createdAt" firestore:"createdAt"`
}

// Line returns the line with the given id.
func (b *Booking) Line(lineID string) (*BookingLine, bool) {
	for i := range b.CartItems {
		if b.CartItems[i].ID == lineID {
			return &b.CartItems[i], true
		}
	}
	return nil, false
}

// BookedRequest mirrors one booking line under
// users/{candidate}/bookedRequests/{lineId}.
type BookedRequest struct {
	ID          string        `json:"id" firestore:"id"`
	BookingID   string        `json:"bookingId" firestore:"bookingId"`
	RequesterID string        `json:"requesterId" firestore:"requesterId"`
	CandidateID string        `json:"candidateId" firestore:"candidateId"`
	StartDate   time.Time     `json:"startDate" firestore:"startDate"`
	EndDate     time.Time     `json:"endDate" firestore:"endDate"`
	Status      BookingStatus `json:"status" firestore:"status"`
	UpdatedAt   time.Time     `json:"updatedAt" firestore:"updatedAt"`
}

// BookedRequestView is a booked request joined with the requester's name.
type BookedRequestView struct {
	BookedRequest
	RequesterName string `json:"requesterName"`
}
