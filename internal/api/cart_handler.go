package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCart handles GET /api/v1/cart.
func (h *Handlers) ListCart(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	entries, err := h.services.Cart.List(c.Request.Context(), uid)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// AddToCart handles PUT /api/v1/cart/:candidateId.
func (h *Handlers) AddToCart(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.services.Cart.Add(c.Request.Context(), uid, c.Param("candidateId")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveFromCart handles DELETE /api/v1/cart/:candidateId.
func (h *Handlers) RemoveFromCart(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.services.Cart.Remove(c.Request.Context(), uid, c.Param("candidateId")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
