package signup

import (
	"testing"

	apperrors "github.com/actifly/api/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubmission_Valid(t *testing.T) {
	sub, err := ParseSubmission(RawSubmission{
		Email:     "User@Example.COM",
		Category:  "Android",
		Consent:   "on",
		Country:   " DE ",
		UserAgent: "Mozilla/5.0",
	})

	require.NoError(t, err)
	assert.Equal(t, "user@example.com", sub.Email)
	assert.Equal(t, "android", sub.Category)
	assert.Equal(t, "DE", sub.Country)
	assert.Equal(t, "Mozilla/5.0", sub.UserAgent)
}

func TestParseSubmission_ConsentVariants(t *testing.T) {
	for _, consent := range []string{"on", "true", "1", "ON", "True"} {
		_, err := ParseSubmission(RawSubmission{
			Email:    "a@b.co",
			Category: "ios",
			Consent:  consent,
		})
		assert.NoError(t, err, "consent %q should be accepted", consent)
	}
}

func TestParseSubmission_Errors(t *testing.T) {
	tests := []struct {
		name     string
		raw      RawSubmission
		wantCode string
	}{
		{
			name:     "missing email",
			raw:      RawSubmission{Category: "android", Consent: "on"},
			wantCode: apperrors.ErrCodeMissingFields,
		},
		{
			name:     "missing category",
			raw:      RawSubmission{Email: "a@b.co", Consent: "on"},
			wantCode: apperrors.ErrCodeMissingFields,
		},
		{
			name:     "whitespace-only email",
			raw:      RawSubmission{Email: "   ", Category: "android", Consent: "on"},
			wantCode: apperrors.ErrCodeMissingFields,
		},
		{
			name:     "email without at sign",
			raw:      RawSubmission{Email: "nobody.example.com", Category: "android", Consent: "on"},
			wantCode: apperrors.ErrCodeInvalidEmail,
		},
		{
			name:     "email without tld dot",
			raw:      RawSubmission{Email: "nobody@localhost", Category: "android", Consent: "on"},
			wantCode: apperrors.ErrCodeInvalidEmail,
		},
		{
			name:     "email with spaces",
			raw:      RawSubmission{Email: "no body@example.com", Category: "android", Consent: "on"},
			wantCode: apperrors.ErrCodeInvalidEmail,
		},
		{
			name:     "unknown category",
			raw:      RawSubmission{Email: "a@b.co", Category: "windows", Consent: "on"},
			wantCode: apperrors.ErrCodeInvalidCategory,
		},
		{
			name:     "consent missing",
			raw:      RawSubmission{Email: "a@b.co", Category: "android"},
			wantCode: apperrors.ErrCodeConsentRequired,
		},
		{
			name:     "consent off",
			raw:      RawSubmission{Email: "a@b.co", Category: "android", Consent: "off"},
			wantCode: apperrors.ErrCodeConsentRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := ParseSubmission(tt.raw)
			require.Error(t, err)
			assert.Nil(t, sub)
			assert.Equal(t, tt.wantCode, apperrors.GetErrorCode(err))
		})
	}
}

func TestParseSubmission_ValidationOrder(t *testing.T) {
	// An invalid email with an invalid category reports the email first.
	_, err := ParseSubmission(RawSubmission{
		Email:    "not-an-email",
		Category: "windows",
		Consent:  "off",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidEmail, apperrors.GetErrorCode(err))
}
