package api

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nexta-backend-go/internal/models"
)

// ListPeople handles GET /api/v1/people with the optional query parameters
// q, minFee, maxFee, minExperience, maxExperience and sort.
func (h *Handlers) ListPeople(c *gin.Context) {
	filter, err := peopleFilterFromQuery(c)
	if err != nil {
		badRequest(c, "Invalid filter", err)
		return
	}
	people, err := h.services.Catalog.ListPeople(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, people)
}

// ListCompanies handles GET /api/v1/companies?q=.
func (h *Handlers) ListCompanies(c *gin.Context) {
	companies, err := h.services.Catalog.ListCompanies(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

func peopleFilterFromQuery(c *gin.Context) (models.PeopleFilter, error) {
	filter := models.PeopleFilter{Query: c.Query("q"), Sort: c.Query("sort")}
	switch filter.Sort {
	case "", models.SortAlphabetical, models.SortExperience, models.SortFee:
	default:
		return filter, fmt.Errorf("sort must be one of %s, %s, %s", models.SortAlphabetical, models.SortExperience, models.SortFee)
	}

	bounds := []struct {
		param string
		dst   **float64
	}{
		{"minFee", &filter.MinFee},
		{"maxFee", &filter.MaxFee},
		{"minExperience", &filter.MinExperience},
		{"maxExperience", &filter.MaxExperience},
	}
	for _, b := range bounds {
		raw := c.Query(b.param)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return filter, fmt.Errorf("%s must be a number", b.param)
		}
		*b.dst = &v
	}
	return filter, nil
}
