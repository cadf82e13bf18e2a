package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nexta-backend-go/internal/models"
)

// Apply handles POST /api/v1/jobs/:employerId/:jobId/apply.
func (h *Handlers) Apply(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	app, err := h.services.Applications.Apply(c.Request.Context(), uid, c.Param("employerId"), c.Param("jobId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// WithdrawApplication handles DELETE /api/v1/applications/sent/:jobId.
func (h *Handlers) WithdrawApplication(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.services.Applications.Withdraw(c.Request.Context(), uid, c.Param("jobId")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSentApplications handles GET /api/v1/applications/sent?q=.
func (h *Handlers) ListSentApplications(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	views, err := h.services.Applications.ListSent(c.Request.Context(), uid, c.Query("q"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// ListReceivedApplications handles GET /api/v1/applications/received?q=.
func (h *Handlers) ListReceivedApplications(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	views, err := h.services.Applications.ListReceived(c.Request.Context(), uid, c.Query("q"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// DecideApplication handles POST /api/v1/applications/received/:appId/decision.
func (h *Handlers) DecideApplication(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.DecideApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}
	app, err := h.services.Applications.Decide(c.Request.Context(), uid, c.Param("appId"), req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
