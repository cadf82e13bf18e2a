package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetCurrentUser handles GET /api/v1/users/me.
func (h *Handlers) GetCurrentUser(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := h.services.Users.GetByID(c.Request.Context(), uid)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
