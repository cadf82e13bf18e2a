package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nexta-backend-go/internal/models"
)

// Checkout handles POST /api/v1/checkout.
func (h *Handlers) Checkout(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}
	booking, err := h.services.Bookings.Checkout(c.Request.Context(), uid, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// ListBookings handles GET /api/v1/bookings.
func (h *Handlers) ListBookings(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	bookings, err := h.services.Bookings.ListBookings(c.Request.Context(), uid)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ListBookedRequests handles GET /api/v1/booked-requests.
func (h *Handlers) ListBookedRequests(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	reqs, err := h.services.Bookings.ListBookedRequests(c.Request.Context(), uid)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// DecideBookedRequest handles POST /api/v1/booked-requests/:lineId/decision.
func (h *Handlers) DecideBookedRequest(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.BookingDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}
	mirror, err := h.services.Bookings.Decide(c.Request.Context(), uid, c.Param("lineId"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mirror)
}
