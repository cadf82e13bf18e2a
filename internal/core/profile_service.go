package core

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nexta-backend-go/internal/db"
	"nexta-backend-go/internal/models"
	"nexta-backend-go/pkg/objectstore"
)

// UploadKind selects the storage prefix of an uploaded profile file.
type UploadKind string

const (
	UploadPhoto  UploadKind = "photo"
	UploadResume UploadKind = "resume"
	UploadLogo   UploadKind = "logo"
)

var uploadPrefixes = map[UploadKind]string{
	UploadPhoto:  "profiles/",
	UploadResume: "resumes/",
	UploadLogo:   "company-logos/",
}

type profileService struct {
	users    db.UserRepository
	profiles db.ProfileRepository
	objects  objectstore.Store
	urls     *URLResolver
	recorder
	now func() time.Time
}

// NewProfileService creates a ProfileService.
func NewProfileService(users db.UserRepository, profiles db.ProfileRepository, objects objectstore.Store, urls *URLResolver, audit AuditService, logger *zap.Logger) ProfileService {
	return &profileService{
		users:    users,
		profiles: profiles,
		objects:  objects,
		urls:     urls,
		recorder: recorder{auditor: audit, logger: logger},
		now:      time.Now,
	}
}

func (s *profileService) CreateFreelancer(ctx context.Context, userID string, req models.FreelancerProfileRequest) (*models.FreelancerProfile, error) {
	if _, err := requireRole(ctx, s.users, userID, models.RoleUser); err != nil {
		return nil, err
	}
	if req.HourlyRate < 0 || req.Experience < 0 {
		return nil, fmt.Errorf("%w: hourlyRate and experience cannot be negative", ErrInvalidInput)
	}
	p := &models.FreelancerProfile{
		Name:          req.Name,
		Email:         req.Email,
		PhotoFile:     req.PhotoFile,
		ResumeFile:    req.ResumeFile,
		Address:       req.Address,
		MobileNo:      req.MobileNo,
		Skills:        req.Skills,
		Qualification: req.Qualification,
		HourlyRate:    req.HourlyRate,
		Experience:    req.Experience,
		WorkingType:   req.WorkingType,
		LinkedIn:      req.LinkedIn,
		GitHub:        req.GitHub,
		Twitter:       req.Twitter,
		PortfolioURL:  req.PortfolioURL,
		UpdatedAt:     s.now().UTC(),
	}
	if _, err := s.profiles.CreateFreelancer(ctx, userID, p); err != nil {
		return nil, err
	}
	s.record(ctx, models.AuditLog{UserID: userID, Action: models.AuditProfileCreate, TargetType: "FREELANCER_PROFILE", TargetID: p.ID})
	s.resolveFreelancer(ctx, p)
	return p, nil
}

// GetFreelancer returns the first freelancer profile of userID with file
// URLs resolved.
func (s *profileService) GetFreelancer(ctx context.Context, userID string) (*models.FreelancerProfile, error) {
	p, err := s.firstFreelancer(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.resolveFreelancer(ctx, p)
	return p, nil
}

func (s *profileService) UpdateFreelancer(ctx context.Context, userID string, req models.UpdateFreelancerProfileRequest) (*models.FreelancerProfile, error) {
	p, err := s.firstFreelancer(ctx, userID)
	if err != nil {
		return nil, err
	}
	setString(&p.Name, req.Name)
	setString(&p.Email, req.Email)
	setString(&p.PhotoFile, req.PhotoFile)
	setString(&p.ResumeFile, req.ResumeFile)
	setString(&p.Address, req.Address)
	setString(&p.MobileNo, req.MobileNo)
	setString(&p.Skills, req.Skills)
	setString(&p.Qualification, req.Qualification)
	setString(&p.WorkingType, req.WorkingType)
	setString(&p.LinkedIn, req.LinkedIn)
	setString(&p.GitHub, req.GitHub)
	setString(&p.Twitter, req.Twitter)
	setString(&p.PortfolioURL, req.PortfolioURL)
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			return nil, fmt.Errorf("%w: hourlyRate cannot be negative", ErrInvalidInput)
		}
		p.HourlyRate = *req.HourlyRate
	}
	if req.Experience != nil {
		if *req.Experience < 0 {
			return nil, fmt.Errorf("%w: experience cannot be negative", ErrInvalidInput)
		}
		p.Experience = *req.Experience
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.profiles.UpdateFreelancer(ctx, userID, p); err != nil {
		return nil, err
	}
	s.resolveFreelancer(ctx, p)
	return p, nil
}

// GetResume returns the resolved resume URL of userID's first profile.
func (s *profileService) GetResume(ctx context.Context, userID string) (string, error) {
	p, err := s.firstFreelancer(ctx, userID)
	if err != nil {
		return "", err
	}
	if p.ResumeFile == "" {
		return "", fmt.Errorf("%w: no resume uploaded", ErrNotFound)
	}
	url := s.urls.Resolve(ctx, p.ResumeFile)
	if url == "" {
		return "", fmt.Errorf("%w: resume file is unavailable", ErrNotFound)
	}
	return url, nil
}

func (s *profileService) CreateCompany(ctx context.Context, userID string, req models.CompanyProfileRequest) (*models.CompanyProfile, error) {
	if _, err := requireRole(ctx, s.users, userID, models.RoleCompany); err != nil {
		return nil, err
	}
	p := &models.CompanyProfile{
		CompanyName:      req.CompanyName,
		CompanyAddress:   req.CompanyAddress,
		LogoFile:         req.LogoFile,
		PhoneNumber:      req.PhoneNumber,
		Email:            req.Email,
		WebsiteURL:       req.WebsiteURL,
		MissionStatement: req.MissionStatement,
		CompanyHistory:   req.CompanyHistory,
		ProductsServices: req.ProductsServices,
		UpdatedAt:        s.now().UTC(),
	}
	if _, err := s.profiles.CreateCompany(ctx, userID, p); err != nil {
		return nil, err
	}
	s.record(ctx, models.AuditLog{UserID: userID, Action: models.AuditProfileCreate, TargetType: "COMPANY_PROFILE", TargetID: p.ID})
	p.LogoURL = s.urls.Resolve(ctx, p.LogoFile)
	return p, nil
}

func (s *profileService) GetCompany(ctx context.Context, userID string) (*models.CompanyProfile, error) {
	p, err := s.firstCompany(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.LogoURL = s.urls.Resolve(ctx, p.LogoFile)
	return p, nil
}

func (s *profileService) UpdateCompany(ctx context.Context, userID string, req models.UpdateCompanyProfileRequest) (*models.CompanyProfile, error) {
	p, err := s.firstCompany(ctx, userID)
	if err != nil {
		return nil, err
	}
	setString(&p.CompanyName, req.CompanyName)
	setString(&p.CompanyAddress, req.CompanyAddress)
	setString(&p.LogoFile, req.LogoFile)
	setString(&p.PhoneNumber, req.PhoneNumber)
	setString(&p.Email, req.Email)
	setString(&p.WebsiteURL, req.WebsiteURL)
	setString(&p.MissionStatement, req.MissionStatement)
	setString(&p.CompanyHistory, req.CompanyHistory)
	setString(&p.ProductsServices, req.ProductsServices)
	if p.CompanyName == "" {
		return nil, fmt.Errorf("%w: companyName cannot be empty", ErrInvalidInput)
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.profiles.UpdateCompany(ctx, userID, p); err != nil {
		return nil, err
	}
	p.LogoURL = s.urls.Resolve(ctx, p.LogoFile)
	return p, nil
}

// Upload stores r under the prefix for kind with a uuid-prefixed name.
func (s *profileService) Upload(ctx context.Context, userID string, kind UploadKind, filename, contentType string, r io.Reader) (string, error) {
	prefix, ok := uploadPrefixes[kind]
	if !ok {
		return "", fmt.Errorf("%w: unknown upload kind %q", ErrInvalidInput, kind)
	}
	if (kind == UploadPhoto || kind == UploadLogo) && !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: %s must be an image, got %q", ErrInvalidInput, kind, contentType)
	}
	name := prefix + uuid.NewString() + "-" + cleanFilename(filename)
	ref, err := s.objects.Put(ctx, name, contentType, r)
	if err != nil {
		return "", fmt.Errorf("failed to store %s for '%s': %w", kind, userID, err)
	}
	return ref, nil
}

func (s *profileService) firstFreelancer(ctx context.Context, userID string) (*models.FreelancerProfile, error) {
	list, err := s.profiles.ListFreelancer(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no freelancer profile for '%s'", ErrProfileNotFound, userID)
	}
	return &list[0], nil
}

func (s *profileService) firstCompany(ctx context.Context, userID string) (*models.CompanyProfile, error) {
	list, err := s.profiles.ListCompany(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no company profile for '%s'", ErrProfileNotFound, userID)
	}
	return &list[0], nil
}

func (s *profileService) resolveFreelancer(ctx context.Context, p *models.FreelancerProfile) {
	p.PhotoURL = s.urls.Resolve(ctx, p.PhotoFile)
	p.ResumeURL = s.urls.Resolve(ctx, p.ResumeFile)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// cleanFilename keeps the base name and replaces characters that are awkward
// in object names.
func cleanFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "file"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, base)
}
