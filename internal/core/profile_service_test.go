package core

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"nexta-backend-go/internal/models"
)

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestUpdateFreelancerProfile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.user(t, "u1", "Ada", models.RoleUser)

	if _, err := env.profiles.UpdateFreelancer(ctx, "u1", models.UpdateFreelancerProfileRequest{Name: strPtr("x")}); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("UpdateFreelancer without a profile: got %v, want ErrProfileNotFound", err)
	}

	created, err := env.profiles.CreateFreelancer(ctx, "u1", models.FreelancerProfileRequest{
		Name:          "Ada",
		Email:         "ada@example.com",
		Skills:        "go",
		Qualification: "BSc",
		HourlyRate:    40,
		Experience:    3,
		GitHub:        "ada",
	})
	if err != nil {
		t.Fatalf("CreateFreelancer: %v", err)
	}

	updated, err := env.profiles.UpdateFreelancer(ctx, "u1", models.UpdateFreelancerProfileRequest{
		Skills:     strPtr("go, sql"),
		GitHub:     strPtr(""),
		HourlyRate: floatPtr(55),
	})
	if err != nil {
		t.Fatalf("UpdateFreelancer: %v", err)
	}
	want := *created
	want.Skills = "go, sql"
	want.GitHub = ""
	want.HourlyRate = 55
	ignoreTime := cmpopts.IgnoreFields(models.FreelancerProfile{}, "UpdatedAt")
	if diff := cmp.Diff(&want, updated, ignoreTime); diff != "" {
		t.Errorf("updated profile (-want +got):\n%s", diff)
	}

	stored, err := env.profiles.GetFreelancer(ctx, "u1")
	if err != nil {
		t.Fatalf("GetFreelancer: %v", err)
	}
	if diff := cmp.Diff(&want, stored, ignoreTime); diff != "" {
		t.Errorf("stored profile (-want +got):\n%s", diff)
	}

	for name, req := range map[string]models.UpdateFreelancerProfileRequest{
		"negative rate":       {HourlyRate: floatPtr(-1)},
		"negative experience": {Experience: floatPtr(-2), Name: strPtr("Changed")},
	} {
		if _, err := env.profiles.UpdateFreelancer(ctx, "u1", req); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: got %v, want ErrInvalidInput", name, err)
		}
	}
	stored, err = env.profiles.GetFreelancer(ctx, "u1")
	if err != nil {
		t.Fatalf("GetFreelancer: %v", err)
	}
	if stored.HourlyRate != 55 || stored.Experience != 3 || stored.Name != "Ada" {
		t.Errorf("rejected update was stored: %+v", stored)
	}
}

func TestUpdateCompanyProfile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.user(t, "c1", "Acme Inc", models.RoleCompany)

	if _, err := env.profiles.CreateCompany(ctx, "c1", models.CompanyProfileRequest{
		CompanyName: "Acme",
		Email:       "hi@acme.test",
		WebsiteURL:  "https://acme.test",
	}); err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}

	if _, err := env.profiles.UpdateCompany(ctx, "c1", models.UpdateCompanyProfileRequest{CompanyName: strPtr("")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("clearing companyName: got %v, want ErrInvalidInput", err)
	}

	updated, err := env.profiles.UpdateCompany(ctx, "c1", models.UpdateCompanyProfileRequest{
		MissionStatement: strPtr("Hire well"),
		WebsiteURL:       strPtr(""),
	})
	if err != nil {
		t.Fatalf("UpdateCompany: %v", err)
	}
	if updated.CompanyName != "Acme" || updated.Email != "hi@acme.test" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if updated.MissionStatement != "Hire well" || updated.WebsiteURL != "" {
		t.Errorf("edited fields not applied: %+v", updated)
	}

	stored, err := env.profiles.GetCompany(ctx, "c1")
	if err != nil {
		t.Fatalf("GetCompany: %v", err)
	}
	if diff := cmp.Diff(updated, stored, cmpopts.IgnoreFields(models.CompanyProfile{}, "UpdatedAt")); diff != "" {
		t.Errorf("stored company (-want +got):\n%s", diff)
	}
}

func TestJobUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.user(t, "c1", "Acme", models.RoleCompany)
	env.user(t, "c2", "Globex", models.RoleCompany)
	env.user(t, "u1", "Ada", models.RoleUser)

	job, err := env.jobs.CreateJob(ctx, "c1", models.CreateJobRequest{
		Title:       "Backend Engineer",
		Description: "APIs",
		Skills:      models.SkillList{"go"},
	})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	skills := models.SkillList{" go ", "k8s"}
	updated, err := env.jobs.UpdateJob(ctx, "c1", job.ID, models.UpdateJobRequest{
		Title:  strPtr("  Senior Backend Engineer "),
		Skills: &skills,
	})
	if err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}
	if updated.Title != "Senior Backend Engineer" || updated.Description != "APIs" {
		t.Errorf("updated job = %+v", updated)
	}
	if diff := cmp.Diff([]string{"go", "k8s"}, updated.Skills); diff != "" {
		t.Errorf("skills (-want +got):\n%s", diff)
	}

	if _, err := env.jobs.UpdateJob(ctx, "c1", job.ID, models.UpdateJobRequest{Title: strPtr("   ")}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("blank title: got %v, want ErrInvalidInput", err)
	}
	if _, err := env.jobs.UpdateJob(ctx, "c2", job.ID, models.UpdateJobRequest{Title: strPtr("Hijacked")}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateJob by another employer: got %v, want ErrNotFound", err)
	}
	if err := env.jobs.DeleteJob(ctx, "c2", job.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteJob by another employer: got %v, want ErrNotFound", err)
	}
	if _, err := env.jobs.UpdateJob(ctx, "u1", job.ID, models.UpdateJobRequest{Title: strPtr("x")}); !errors.Is(err, ErrForbidden) {
		t.Errorf("UpdateJob by a freelancer: got %v, want ErrForbidden", err)
	}

	own, err := env.jobs.ListOwnJobs(ctx, "c1")
	if err != nil {
		t.Fatalf("ListOwnJobs: %v", err)
	}
	if len(own) != 1 || own[0].Title != "Senior Backend Engineer" {
		t.Fatalf("own jobs after edit = %+v", own)
	}

	if err := env.jobs.DeleteJob(ctx, "c1", job.ID); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
	own, err = env.jobs.ListOwnJobs(ctx, "c1")
	if err != nil {
		t.Fatalf("ListOwnJobs: %v", err)
	}
	if len(own) != 0 {
		t.Errorf("own jobs after delete = %+v, want none", own)
	}
	if err := env.jobs.DeleteJob(ctx, "c1", job.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteJob: got %v, want ErrNotFound", err)
	}
}

func TestGetResumeResolvesUploadedFile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.user(t, "u1", "Ada", models.RoleUser)
	if _, err := env.profiles.CreateFreelancer(ctx, "u1", models.FreelancerProfileRequest{Name: "Ada", Email: "ada@example.com"}); err != nil {
		t.Fatalf("CreateFreelancer: %v", err)
	}
	if _, err := env.profiles.GetResume(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetResume without a resume: got %v, want ErrNotFound", err)
	}

	ref, err := env.profiles.Upload(ctx, "u1", UploadResume, "cv.pdf", "application/pdf", strings.NewReader("%PDF"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasPrefix(ref, "resumes/") || !strings.HasSuffix(ref, "-cv.pdf") {
		t.Fatalf("ref = %q", ref)
	}
	updated, err := env.profiles.UpdateFreelancer(ctx, "u1", models.UpdateFreelancerProfileRequest{ResumeFile: &ref})
	if err != nil {
		t.Fatalf("UpdateFreelancer: %v", err)
	}

	want := "http://files.test/" + url.PathEscape(ref)
	if updated.ResumeURL != want {
		t.Errorf("ResumeURL = %q, want %q", updated.ResumeURL, want)
	}
	got, err := env.profiles.GetResume(ctx, "u1")
	if err != nil {
		t.Fatalf("GetResume: %v", err)
	}
	if got != want {
		t.Errorf("GetResume = %q, want %q", got, want)
	}
}
