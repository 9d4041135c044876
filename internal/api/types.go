// Package api defines the API types and structures shared across the actifly beta API.
package api

// SignupRecord is a single beta signup. Identity is the lowercase-normalized
// email; a later submission with the same email overwrites the record in place.
type SignupRecord struct {
	Email     string `json:"email"`
	Category  string `json:"category"`
	Timestamp string `json:"ts"`
	Country   string `json:"country,omitempty"`
	UserAgent string `json:"ua,omitempty"`
}

// Submission is a normalized, validated beta-signup submission.
type Submission struct {
	Email     string
	Category  string
	Country   string
	UserAgent string
}

// SubmitResult reports the outcome of an admitted submission.
type SubmitResult struct {
	// Total is the list length after the write.
	Total int
	// Updated is true when an existing record was overwritten instead of appended.
	Updated bool
}

// Counts holds per-category aggregate counts over the signup list.
type Counts struct {
	Total   int `json:"total"`
	Android int `json:"android"`
	IOS     int `json:"ios"`
	Google  int `json:"google"`
}

// Quota holds the per-category soft display limits shown by the signup form.
type Quota struct {
	Android int `json:"android"`
	IOS     int `json:"ios"`
	Google  int `json:"google"`
	Total   int `json:"total"`
}

// SignupResponse is the body returned by POST /api/beta-signup on success.
type SignupResponse struct {
	OK     bool `json:"ok"`
	Stored bool `json:"stored"`
	Total  int  `json:"total"`
}

// StatsResponse is the body returned by GET /api/beta-stats.
type StatsResponse struct {
	OK     bool   `json:"ok"`
	Counts Counts `json:"counts"`
	Max    int    `json:"max"`
	Quota  Quota  `json:"quota"`
}

// AdminStatsResponse is the body returned by GET /api/beta-admin?action=stats.
type AdminStatsResponse struct {
	OK             bool   `json:"ok"`
	Counts         Counts `json:"counts"`
	ListKeyVersion string `json:"listKeyVersion"`
}

// AdminListResponse is the body returned by GET /api/beta-admin?action=list.
type AdminListResponse struct {
	OK   bool           `json:"ok"`
	List []SignupRecord `json:"list"`
}

// ContactResponse is the body returned by POST /api/contact on success.
type ContactResponse struct {
	OK bool `json:"ok"`
}

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the standard error body for all endpoints.
// Full and Max are only set on capacity-reached (409) responses.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Full  bool   `json:"full,omitempty"`
	Max   int    `json:"max,omitempty"`
}
