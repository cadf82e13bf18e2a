package models

import "time"

// FreelancerProfile lives under users/{uid}/freelancer. A user may hold more
// than one; reads and edits use the first.
type FreelancerProfile struct {
	ID            string    `json:"id" firestore:"-"`
	Name          string    `json:"name" firestore:"name"`
	Email         string    `json:"email" firestore:"email"`
	PhotoFile     string    `json:"photoFile" firestore:"photoFile"`
	ResumeFile    string    `json:"resumeFile" firestore:"resumeFile"`
	Address       string    `json:"address" firestore:"address"`
	MobileNo      string    `json:"mobileNo" firestore:"mobileNo"`
	Skills        string    `json:"skills" firestore:"skills"`
	Qualification string    `json:"qualification" firestore:"qualification"`
	HourlyRate    float64   `json:"hourlyRate" firestore:"hourlyRate"`
	Experience    float64   `json:"experience" firestore:"experience"` // years
	WorkingType   string    `json:"workingType" firestore:"workingType"`
	LinkedIn      string    `json:"linkedin" firestore:"linkedin"`
	GitHub        string    `json:"github" firestore:"github"`
	Twitter       string    `json:"twitter" firestore:"twitter"`
	PortfolioURL  string    `json:"portfolioURL" firestore:"portfolioURL"`
	UpdatedAt     time.Time `json:"updatedAt" firestore:"updatedAt"`

	// Resolved at read time, never stored.
	PhotoURL  string `json:"photoURL,omitempty" firestore:"-"`
	ResumeURL string `json:"resumeURL,omitempty" firestore:"-"`
}

// CompanyProfile lives under users/{uid}/companies.
type CompanyProfile struct {
	ID               string    `json:"id" firestore:"-"`
	CompanyName      string    `json:"companyName" firestore:"companyName"`
	CompanyAddress   string    `json:"companyAddress" firestore:"companyAddress"`
	LogoFile         string    `json:"logoFile" firestore:"logoFile"`
	PhoneNumber      string    `json:"phoneNumber" firestore:"phoneNumber"`
	Email            string    `json:"email" firestore:"email"`
	WebsiteURL       string    `json:"websiteURL" firestore:"websiteURL"`
	MissionStatement string    `json:"missionStatement" firestore:"missionStatement"`
	CompanyHistory   string    `json:"companyHistory" firestore:"companyHistory"`
	ProductsServices string    `json:"productsServices" firestore:"productsServices"`
	UpdatedAt        time.Time `json:"updatedAt" firestore:"updatedAt"`

	LogoURL string `json:"logoURL,omitempty" firestore:"-"`
}
