package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nexta-backend-go/internal/core"
	"nexta-backend-go/internal/middleware"
)

// Services are the core services the HTTP surface exposes.
type Services struct {
	Users        core.UserService
	Profiles     core.ProfileService
	Jobs         core.JobService
	Applications core.ApplicationService
	Cart         core.CartService
	Bookings     core.BookingService
	Catalog      core.CatalogService
	Places       core.PlacesService
}

// ObjectOpener serves locally stored objects. objectstore.MemoryStore
// satisfies it.
type ObjectOpener interface {
	Open(ref string) ([]byte, string, bool)
}

// Handlers implements every API endpoint.
type Handlers struct {
	services Services
	auth     *middleware.AuthMiddleware
	objects  ObjectOpener
	logger   *zap.Logger
}

// NewHandlers creates Handlers. objects may be nil, in which case the local
// object route is not registered.
func NewHandlers(services Services, auth *middleware.AuthMiddleware, objects ObjectOpener, logger *zap.Logger) *Handlers {
	return &Handlers{services: services, auth: auth, objects: objects, logger: logger}
}

// currentUser returns the authenticated uid set by AuthMiddleware. It writes
// a 401 and returns false when it is missing.
func currentUser(c *gin.Context) (string, bool) {
	uid := c.GetString(middleware.ContextUserID)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return "", false
	}
	return uid, true
}

// GetObject serves GET /objects/*ref from the in-memory object store.
func (h *Handlers) GetObject(c *gin.Context) {
	ref := c.Param("ref")
	if len(ref) > 0 && ref[0] == '/' {
		ref = ref[1:]
	}
	data, contentType, ok := h.objects.Open(ref)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, data)
}
