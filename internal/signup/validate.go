// Package signup implements the beta signup registry: submission validation,
// the capacity-bounded admission algorithm, and aggregation/export over the
// stored list.
package signup

import (
	"regexp"
	"strings"

	"github.com/actifly/api/internal/api"
	"github.com/actifly/api/internal/constants"
	apperrors "github.com/actifly/api/internal/errors"
)

// emailPattern matches a basic local@domain.tld shape. Intentionally loose;
// deliverability is not checked here.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RawSubmission holds the unprocessed form fields of a beta-signup request.
type RawSubmission struct {
	Email     string
	Category  string
	Consent   string
	Country   string
	UserAgent string
}

// ParseSubmission normalizes and validates a raw submission.
// Email and category are trimmed and lowercased before any check runs.
func ParseSubmission(raw RawSubmission) (*api.Submission, error) {
	email := strings.ToLower(strings.TrimSpace(raw.Email))
	category := strings.ToLower(strings.TrimSpace(raw.Category))
	consent := strings.ToLower(strings.TrimSpace(raw.Consent))

	if email == "" || category == "" {
		return nil, apperrors.ErrMissingFields()
	}

	if !emailPattern.MatchString(email) {
		return nil, apperrors.ErrInvalidEmail()
	}

	if !constants.IsValidCategory(category) {
		return nil, apperrors.ErrInvalidCategory()
	}

	// The signup form checkbox sends "on"
	if consent != "on" && consent != "true" && consent != "1" {
		return nil, apperrors.ErrConsentRequired()
	}

	return &api.Submission{
		Email:     email,
		Category:  category,
		Country:   strings.TrimSpace(raw.Country),
		UserAgent: raw.UserAgent,
	}, nil
}
