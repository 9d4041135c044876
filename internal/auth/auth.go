// Package auth provides the admin access gate for the actifly beta API.
// Authorization is a single static shared secret; no sessions, no expiry.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/actifly/api/internal/constants"
)

// TokenFromRequest extracts the caller-supplied admin token.
// An Authorization: Bearer header takes precedence over the token query
// parameter. Returns empty string when neither is present.
func TokenFromRequest(req *http.Request) string {
	header := req.Header.Get(constants.AuthorizationHeader)
	if len(header) >= len(constants.BearerPrefix) &&
		strings.EqualFold(header[:len(constants.BearerPrefix)], constants.BearerPrefix) {
		if bearer := strings.TrimSpace(header[len(constants.BearerPrefix):]); bearer != "" {
			return bearer
		}
	}

	return strings.TrimSpace(req.URL.Query().Get(constants.TokenQueryParam))
}

// TokenEqual compares a caller token against the configured secret in
// constant time to avoid timing side channels.
func TokenEqual(token, secret string) bool {
	if token == "" || secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1
}
