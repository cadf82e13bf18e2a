package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nexta-backend-go/internal/core"
	"nexta-backend-go/internal/models"
)

// maxUploadBytes caps a single multipart upload.
const maxUploadBytes = 10 << 20

// Upload handles POST /api/v1/uploads?kind=photo|resume|logo with a
// multipart "file" field and returns the stored reference.
func (h *Handlers) Upload(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "A multipart file field named 'file' is required", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		badRequest(c, "Failed to read uploaded file", err)
		return
	}
	defer file.Close()

	ref, err := h.services.Profiles.Upload(c.Request.Context(), uid, core.UploadKind(c.Query("kind")),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, UploadResponse{Ref: ref})
}

// CreateFreelancerProfile handles POST /api/v1/profiles/freelancer.
func (h *Handlers) CreateFreelancerProfile(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.FreelancerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}
	profile, err := h.services.Profiles.CreateFreelancer(c.Request.Context(), uid, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// GetMyFreelancerProfile handles GET /api/v1/profiles/freelancer/me.
func (h *Handlers) GetMyFreelancerProfile(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	h.getFreelancerProfile(c, uid)
}

// GetFreelancerProfile handles GET /api/v1/profiles/freelancer/:userId.
func (h *Handlers) GetFreelancerProfile(c *gin.Context) {
	h.getFreelancerProfile(c, c.Param("userId"))
}

func (h *Handlers) getFreelancerProfile(c *gin.Context, userID string) {
	profile, err := h.services.Profiles.GetFreelancer(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateFreelancerProfile handles PUT /api/v1/profiles/freelancer/me.
func (h *Handlers) UpdateFreelancerProfile(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.UpdateFreelancerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}
	profile, err := h.services.Profiles.UpdateFreelancer(c.Request.Context(), uid, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetMyResume handles GET /api/v1/profiles/freelancer/me/resume.
func (h *Handlers) GetMyResume(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	url, err := h.services.Profiles.GetResume(c.Request.Context(), uid)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ResumeResponse{ResumeURL: url})
}

// CreateCompanyProfile handles POST /api/v1/profiles/company.
func (h *Handlers) CreateCompanyProfile(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.CompanyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}
	profile, err := h.services.Profiles.CreateCompany(c.Request.Context(), uid, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// GetMyCompanyProfile handles GET /api/v1/profiles/company/me.
func (h *Handlers) GetMyCompanyProfile(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	h.getCompanyProfile(c, uid)
}

// GetCompanyProfile handles GET /api/v1/profiles/company/:userId.
func (h *Handlers) GetCompanyProfile(c *gin.Context) {
	h.getCompanyProfile(c, c.Param("userId"))
}

func (h *Handlers) getCompanyProfile(c *gin.Context, userID string) {
	profile, err := h.services.Profiles.GetCompany(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateCompanyProfile handles PUT /api/v1/profiles/company/me.
func (h *Handlers) UpdateCompanyProfile(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.UpdateCompanyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}
	profile, err := h.services.Profiles.UpdateCompany(c.Request.Context(), uid, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
