package models

import "time"

// Job is posted by a Company user under users/{uid}/jobs.
type Job struct {
	ID          string    `json:"id" firestore:"-"`
	EmployerID  string    `json:"employerId" firestore:"employerId"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	Skills      []string  `json:"skills" firestore:"skills"`
	CompanyName string    `json:"companyName" firestore:"companyName"`
	Applicants  []string  `json:"applicants" firestore:"applicants"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt"`
}
