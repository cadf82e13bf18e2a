package models

import (
	"encoding/json"
	"strings"
	"time"
)

// InitializeUserRequest is sent once after first sign-in.
type InitializeUserRequest struct {
	Role Role   `json:"role" binding:"required"`
	Name string `json:"name,omitempty"`
}

// FreelancerProfileRequest creates a freelancer profile.
type FreelancerProfileRequest struct {
	Name          string  `json:"name" binding:"required"`
	Email         string  `json:"email" binding:"required"`
	PhotoFile     string  `json:"photoFile,omitempty"`
	ResumeFile    string  `json:"resumeFile,omitempty"`
	Address       string  `json:"address,omitempty"`
	MobileNo      string  `json:"mobileNo,omitempty"`
	Skills        string  `json:"skills,omitempty"`
	Qualification string  `json:"qualification,omitempty"`
	HourlyRate    float64 `json:"hourlyRate,omitempty"`
	Experience    float64 `json:"experience,omitempty"`
	WorkingType   string  `json:"workingType,omitempty"`
	LinkedIn      string  `json:"linkedin,omitempty"`
	GitHub        string  `json:"github,omitempty"`
	Twitter       string  `json:"twitter,omitempty"`
	PortfolioURL  string  `json:"portfolioURL,omitempty"`
}

// UpdateFreelancerProfileRequest edits a freelancer profile. Pointers
// distinguish fields left alone from fields being cleared.
type UpdateFreelancerProfileRequest struct {
	Name          *string  `json:"name,omitempty"`
	Email         *string  `json:"email,omitempty"`
	PhotoFile     *string  `json:"photoFile,omitempty"`
	ResumeFile    *string  `json:"resumeFile,omitempty"`
	Address       *string  `json:"address,omitempty"`
	MobileNo      *string  `json:"mobileNo,omitempty"`
	Skills        *string  `json:"skills,omitempty"`
	Qualification *string  `json:"qualification,omitempty"`
	HourlyRate    *float64 `json:"hourlyRate,omitempty"`
	Experience    *float64 `json:"experience,omitempty"`
	WorkingType   *string  `json:"workingType,omitempty"`
	LinkedIn      *string  `json:"linkedin,omitempty"`
	GitHub        *string  `json:"github,omitempty"`
	Twitter       *string  `json:"twitter,omitempty"`
	PortfolioURL  *string  `json:"portfolioURL,omitempty"`
}

// CompanyProfileRequest creates a company profile.
type CompanyProfileRequest struct {
	CompanyName      string `json:"companyName" binding:"required"`
	CompanyAddress   string `json:"companyAddress,omitempty"`
	LogoFile         string `json:"logoFile,omitempty"`
	PhoneNumber      string `json:"phoneNumber,omitempty"`
	Email            string `json:"email,omitempty"`
	WebsiteURL       string `json:"websiteURL,omitempty"`
	MissionStatement string `json:"missionStatement,omitempty"`
	CompanyHistory   string `json:"companyHistory,omitempty"`
	ProductsServices string `json:"productsServices,omitempty"`
}

// UpdateCompanyProfileRequest edits a company profile.
type UpdateCompanyProfileRequest struct {
	CompanyName      *string `json:"companyName,omitempty"`
	CompanyAddress   *string `json:"companyAddress,omitempty"`
	LogoFile         *string `json:"logoFile,omitempty"`
	PhoneNumber      *string `json:"phoneNumber,omitempty"`
	Email            *string `json:"email,omitempty"`
	WebsiteURL       *string `json:"websiteURL,omitempty"`
	MissionStatement *string `json:"missionStatement,omitempty"`
	CompanyHistory   *string `json:"companyHistory,omitempty"`
	ProductsServices *string `json:"productsServices,omitempty"`
}

// SkillList accepts either a JSON array of strings or a single
// comma-separated string. Entries are trimmed and empty entries dropped.
type SkillList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *SkillList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		var joined string
		if err2 := json.Unmarshal(data, &joined); err2 != nil {
			return err
		}
		list = strings.Split(joined, ",")
	}
	*s = NormalizeSkills(list)
	return nil
}

// NormalizeSkills trims entries and drops empty ones.
func NormalizeSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, skill := range in {
		if skill = strings.TrimSpace(skill); skill != "" {
			out = append(out, skill)
		}
	}
	return out
}

// CreateJobRequest posts a new job.
type CreateJobRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description,omitempty"`
	Skills      SkillList `json:"skills,omitempty"`
}

// UpdateJobRequest edits a job.
type UpdateJobRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Skills      *SkillList `json:"skills,omitempty"`
}

// DecideApplicationRequest approves or denies a received application.
type DecideApplicationRequest struct {
	Status ApplicationStatus `json:"status" binding:"required"`
}

// CheckoutRequest turns the cart into a booking.
type CheckoutRequest struct {
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
	TermsAgreed bool      `json:"termsAgreed"`
}

// BookingDecisionRequest accepts or rejects a booked request.
type BookingDecisionRequest struct {
	RequesterID string        `json:"requesterId" binding:"required"`
	BookingID   string        `json:"bookingId" binding:"required"`
	Action      BookingStatus `json:"action" binding:"required"`
}

// PeopleFilter narrows and orders the freelancer catalog. Nil bounds are
// inactive.
type PeopleFilter struct {
	Query         string
	MinFee        *float64
	MaxFee        *float64
	MinExperience *float64
	MaxExperience *float64
	Sort          string
}

// Sort keys accepted by PeopleFilter.
const (
	SortAlphabetical = "alphabetical"
	SortExperience   = "experience"
	SortFee          = "fee"
)
