// File: internal/company/model.go
package company

// MLIndicator is one machine-learning-derived pros/cons row for a company.
// The model producing these is an opaque upstream source; the gateway just
// serves the fixed record shape.
type MLIndicator struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
	Year   string `json:"year"`
}

// MLResults groups the indicators into pros and cons.
type MLResults struct {
	Pros []MLIndicator `json:"pros"`
	Cons []MLIndicator `json:"cons"`
}

// Company is a directory entry.
type Company struct {
	ID          string            `json:"id"`
	OwnerID     string            `json:"ownerId"`
	Slug        string            `json:"slug"`
	CompanyName string            `json:"companyName"`
	Address     string            `json:"address,omitempty"`
	City        string            `json:"city,omitempty"`
	State       string            `json:"state,omitempty"`
	Country     string            `json:"country,omitempty"`
	PostalCode  string            `json:"postalCode,omitempty"`
	Website     string            `json:"website,omitempty"`
	LogoURL     string            `json:"logoUrl,omitempty"`
	BannerURL   string            `json:"bannerUrl,omitempty"`
	Industry    string            `json:"industry"`
	FoundedDate string            `json:"foundedDate,omitempty"`
	Description string            `json:"description,omitempty"`
	SocialLinks map[string]string `json:"socialLinks,omitempty"`
	MLResults   MLResults         `json:"mlResults"`
}

// UpsertRequest is the body for creating or updating a company profile.
type UpsertRequest struct {
	CompanyName string            `json:"companyName" binding:"required"`
	Address     string            `json:"address"`
	City        string            `json:"city"`
	State       string            `json:"state"`
	Country     string            `json:"country"`
	PostalCode  string            `json:"postalCode"`
	Website     string            `json:"website"`
	LogoURL     string            `json:"logoUrl"`
	BannerURL   string            `json:"bannerUrl"`
	Industry    string            `json:"industry" binding:"required"`
	FoundedDate string            `json:"foundedDate"`
	Description string            `json:"description"`
	SocialLinks map[string]string `json:"socialLinks"`
}
