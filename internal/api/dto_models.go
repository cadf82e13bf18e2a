package api

import "nexta-backend-go/internal/models"

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message or code
	Details string `json:"details,omitempty"` // More specific details about the error, if available
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// UploadResponse returns the stored reference of an uploaded file together
// with a URL the client can preview it with.
type UploadResponse struct {
	Ref string `json:"ref"`
	URL string `json:"url,omitempty"`
}

// ResumeResponse carries the resolved resume URL.
type ResumeResponse struct {
	ResumeURL string `json:"resumeURL"`
}

// InitializeUserResponse reports the stored user and whether this call
// created it.
type InitializeUserResponse struct {
	User    *models.User `json:"user"`
	Created bool         `json:"created"`
}
