package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// NearbyPlaces handles GET /api/v1/places/nearby?lat=&lon=&radius=&amenity=.
// amenity may repeat or hold a comma-separated list.
func (h *Handlers) NearbyPlaces(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		badRequest(c, "lat is required and must be a number", nil)
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		badRequest(c, "lon is required and must be a number", nil)
		return
	}
	radius := 0
	if raw := c.Query("radius"); raw != "" {
		if radius, err = strconv.Atoi(raw); err != nil {
			badRequest(c, "radius must be an integer number of metres", nil)
			return
		}
	}

	places, err := h.services.Places.Nearby(c.Request.Context(), lat, lon, radius, c.QueryArray("amenity"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, places)
}
