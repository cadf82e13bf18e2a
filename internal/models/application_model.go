package models

import "time"

// ApplicationStatus is the approval state shared by both application mirrors.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationApproved ApplicationStatus = "Approved"
	ApplicationDenied   ApplicationStatus = "Denied"
)

// CanTransition reports whether an application may move from s to next.
// Only Pending applications can be decided, and never back to Pending.
func (s ApplicationStatus) CanTransition(next ApplicationStatus) bool {
	return s == ApplicationPending && (next == ApplicationApproved || next == ApplicationDenied)
}

// Application is stored twice: under the applicant at applications/{jobId}
// and under the employer at receivedApplications/{applicationId}. Both
// copies carry the same ApplicationID and Status.
type Application struct {
	ApplicationID string            `json:"applicationId" firestore:"applicationId"`
	JobID         string            `json:"jobId" firestore:"jobId"`
	EmployerID    string            `json:"employerId" firestore:"employerId"`
	ApplicantID   string            `json:"applicantId" firestore:"applicantId"`
	CompanyName   string            `json:"companyName" firestore:"companyName"`
	JobTitle      string            `json:"jobTitle" firestore:"jobTitle"`
	Skills        []string          `json:"skills" firestore:"skills"`
	Status        ApplicationStatus `json:"status" firestore:"status"`
	AppliedAt     time.Time         `json:"appliedAt" firestore:"appliedAt"`
	DecidedAt     *time.Time        `json:"decidedAt,omitempty" firestore:"decidedAt,omitempty"`
}

// ApplicationView is an application joined with the counterparty's display
// data for listing.
type ApplicationView struct {
	Application
	CounterpartyName string             `json:"counterpartyName"`
	Freelancer       *FreelancerProfile `json:"freelancer,omitempty"`
}
