package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nexta-backend-go/internal/models"
)

// ListJobs handles GET /api/v1/jobs?q=, the jobs catalog.
func (h *Handlers) ListJobs(c *gin.Context) {
	jobs, err := h.services.Catalog.ListJobs(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// ListMyJobs handles GET /api/v1/jobs/mine.
func (h *Handlers) ListMyJobs(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	jobs, err := h.services.Jobs.ListOwnJobs(c.Request.Context(), uid)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// CreateJob handles POST /api/v1/jobs.
func (h *Handlers) CreateJob(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}
	job, err := h.services.Jobs.CreateJob(c.Request.Context(), uid, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// UpdateJob handles PUT /api/v1/jobs/:jobId.
func (h *Handlers) UpdateJob(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}
	job, err := h.services.Jobs.UpdateJob(c.Request.Context(), uid, c.Param("jobId"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJob handles DELETE /api/v1/jobs/:jobId.
func (h *Handlers) DeleteJob(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.services.Jobs.DeleteJob(c.Request.Context(), uid, c.Param("jobId")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
