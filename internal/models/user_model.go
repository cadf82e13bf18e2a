package models

import "time"

// Role tags an account as a freelancer ("User") or an employer ("Company").
type Role string

const (
	RoleUser    Role = "User"
	RoleCompany Role = "Company"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleCompany
}

// User is the role-tagged account document written at first sign-in.
// The Firebase Auth UID is the document ID.
type User struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	Role      Role      `json:"role" firestore:"role"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}
