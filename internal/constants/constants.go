// Package constants defines shared constants for the actifly beta API.
package constants

// Environment represents the runtime environment.
type Environment string

const (
	// Production is the deployed Lambda environment.
	Production Environment = "production"
	// Development is the local development environment.
	Development Environment = "development"
)

// Signup categories accepted by the beta registry.
const (
	CategoryAndroid = "android"
	CategoryIOS     = "ios"
	CategoryGoogle  = "google"
)

// Categories returns the set of valid signup categories.
func Categories() []string {
	return []string{CategoryAndroid, CategoryIOS, CategoryGoogle}
}

// IsValidCategory reports whether c is a recognized signup category.
func IsValidCategory(c string) bool {
	switch c {
	case CategoryAndroid, CategoryIOS, CategoryGoogle:
		return true
	}
	return false
}

const (
	// SignupListKey is the fixed, versioned document key for the beta signup list.
	SignupListKey = "beta:list:v1"

	// SignupListKeyVersion identifies the document schema version exposed to admins.
	SignupListKeyVersion = "v1"

	// DefaultMaxCapacity is the hard capacity of the beta list unless BETA_MAX overrides it.
	DefaultMaxCapacity = 100

	// MaxSubmitAttempts bounds the optimistic-concurrency retry loop on submit.
	MaxSubmitAttempts = 3
)

// Quota soft limits for client-side progress display. Independent from the
// hard capacity enforced on submit.
const (
	QuotaAndroid = 34
	QuotaIOS     = 33
	QuotaGoogle  = 33
)

// Contact form attachment limits.
const (
	MaxAttachments       = 3
	MaxAttachmentBytes   = 5 << 20
	MaxContactFormMemory = 8 << 20
)

// ExportFilename is the download filename for the admin CSV export.
const ExportFilename = "actifly-beta-signups.csv"

// RequestIDByteSize is the number of random bytes in a generated request ID.
const RequestIDByteSize = 16
