package models

// Person is a User-role account joined with its freelancer profiles.
type Person struct {
	User
	Profiles []FreelancerProfile `json:"profiles"`
}

// Company is a Company-role account joined with its company profiles.
type Company struct {
	User
	Profiles []CompanyProfile `json:"profiles"`
}
