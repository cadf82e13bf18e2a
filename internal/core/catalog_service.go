package core

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"nexta-backend-go/internal/db"
	"nexta-backend-go/internal/models"
)

type catalogService struct {
	users    db.UserRepository
	profiles db.ProfileRepository
	jobs     db.JobRepository
	urls     *URLResolver
	logger   *zap.Logger
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(users db.UserRepository, profiles db.ProfileRepository, jobs db.JobRepository, urls *URLResolver, logger *zap.Logger) CatalogService {
	return &catalogService{users: users, profiles: profiles, jobs: jobs, urls: urls, logger: logger}
}

// ListPeople returns freelancers joined with their profiles, narrowed and
// ordered by filter.
func (s *catalogService) ListPeople(ctx context.Context, filter models.PeopleFilter) ([]*models.Person, error) {
	users, err := s.users.ListByRole(ctx, models.RoleUser)
	if err != nil {
		return nil, err
	}

	people := make([]*models.Person, len(users))
	err = forEach(ctx, len(users), func(ctx context.Context, i int) error {
		profiles, err := s.profiles.ListFreelancer(ctx, users[i].ID)
		if err != nil {
			return err
		}
		for j := range profiles {
			profiles[j].PhotoURL = s.urls.Resolve(ctx, profiles[j].PhotoFile)
		}
		people[i] = &models.Person{User: *users[i], Profiles: profiles}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to join freelancer profiles: %w", err)
	}

	out := FilterPeople(people, filter)
	SortPeople(out, filter.Sort)
	return out, nil
}

// FilterPeople keeps the people satisfying every active predicate of f. A
// bound is satisfied when any one of the person's profiles satisfies it.
func FilterPeople(people []*models.Person, f models.PeopleFilter) []*models.Person {
	out := make([]*models.Person, 0, len(people))
	for _, p := range people {
		if matchesPerson(p, f) {
			out = append(out, p)
		}
	}
	return out
}

func matchesPerson(p *models.Person, f models.PeopleFilter) bool {
	if strings.TrimSpace(f.Query) != "" {
		fields := []string{p.Name}
		for _, prof := range p.Profiles {
			fields = append(fields, prof.Qualification, prof.Skills)
		}
		if !containsFold(f.Query, fields...) {
			return false
		}
	}
	bounds := []struct {
		bound *float64
		ok    func(prof models.FreelancerProfile, v float64) bool
	}{
		{f.MinFee, func(prof models.FreelancerProfile, v float64) bool { return prof.HourlyRate >= v }},
		{f.MaxFee, func(prof models.FreelancerProfile, v float64) bool { return prof.HourlyRate <= v }},
		{f.MinExperience, func(prof models.FreelancerProfile, v float64) bool { return prof.Experience >= v }},
		{f.MaxExperience, func(prof models.FreelancerProfile, v float64) bool { return prof.Experience <= v }},
	}
	for _, b := range bounds {
		if b.bound == nil {
			continue
		}
		satisfied := false
		for _, prof := range p.Profiles {
			if b.ok(prof, *b.bound) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

// SortPeople orders people in place by key. Unknown or empty keys keep the
// fetch order. Ties always keep their relative order.
func SortPeople(people []*models.Person, key string) {
	var less func(a, b *models.Person) bool
	switch key {
	case models.SortAlphabetical:
		less = func(a, b *models.Person) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case models.SortExperience:
		less = func(a, b *models.Person) bool { return maxExperience(a) > maxExperience(b) }
	case models.SortFee:
		less = func(a, b *models.Person) bool { return minFee(a) < minFee(b) }
	default:
		return
	}
	sort.SliceStable(people, func(i, j int) bool { return less(people[i], people[j]) })
}

// maxExperience is -1 for people without profiles so they sort last.
func maxExperience(p *models.Person) float64 {
	best := -1.0
	for _, prof := range p.Profiles {
		if prof.Experience > best {
			best = prof.Experience
		}
	}
	return best
}

// minFee is +Inf for people without profiles so they sort last.
func minFee(p *models.Person) float64 {
	if len(p.Profiles) == 0 {
		return math.Inf(1)
	}
	best := p.Profiles[0].HourlyRate
	for _, prof := range p.Profiles[1:] {
		if prof.HourlyRate < best {
			best = prof.HourlyRate
		}
	}
	return best
}

// ListCompanies returns Company accounts joined with their company
// profiles, filtered by company or account name.
func (s *catalogService) ListCompanies(ctx context.Context, query string) ([]*models.Company, error) {
	users, err := s.users.ListByRole(ctx, models.RoleCompany)
	if err != nil {
		return nil, err
	}

	companies := make([]*models.Company, len(users))
	err = forEach(ctx, len(users), func(ctx context.Context, i int) error {
		profiles, err := s.profiles.ListCompany(ctx, users[i].ID)
		if err != nil {
			return err
		}
		for j := range profiles {
			profiles[j].LogoURL = s.urls.Resolve(ctx, profiles[j].LogoFile)
		}
		companies[i] = &models.Company{User: *users[i], Profiles: profiles}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to join company profiles: %w", err)
	}

	out := make([]*models.Company, 0, len(companies))
	for _, c := range companies {
		fields := []string{c.Name}
		for _, prof := range c.Profiles {
			fields = append(fields, prof.CompanyName)
		}
		if containsFold(query, fields...) {
			out = append(out, c)
		}
	}
	return out, nil
}

// ListJobs returns every Company account's jobs filtered by title or skill.
func (s *catalogService) ListJobs(ctx context.Context, query string) ([]*models.Job, error) {
	users, err := s.users.ListByRole(ctx, models.RoleCompany)
	if err != nil {
		return nil, err
	}

	perEmployer := make([][]*models.Job, len(users))
	err = forEach(ctx, len(users), func(ctx context.Context, i int) error {
		jobs, err := s.jobs.ListByEmployer(ctx, users[i].ID)
		if err != nil {
			return err
		}
		perEmployer[i] = jobs
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	out := []*models.Job{}
	for _, jobs := range perEmployer {
		for _, job := range jobs {
			if containsFold(query, append([]string{job.Title}, job.Skills...)...) {
				out = append(out, job)
			}
		}
	}
	return out, nil
}
