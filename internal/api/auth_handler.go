package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nexta-backend-go/internal/middleware"
	"nexta-backend-go/internal/models"
)

// InitializeUser handles POST /api/v1/users/initialize.
// Called by the client after Firebase sign-in so that a role-tagged user
// document exists. The email comes from the verified token; the display
// name from the token unless the body supplies one.
func (h *Handlers) InitializeUser(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.InitializeUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}

	name := req.Name
	if name == "" {
		name = c.GetString(middleware.ContextDisplayName)
	}
	user, created, err := h.services.Users.InitializeUser(c.Request.Context(), uid, c.GetString(middleware.ContextUserEmail), name, req.Role)
	if err != nil {
		h.writeError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, InitializeUserResponse{User: user, Created: created})
}
