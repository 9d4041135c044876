package constants

// HTTP header names used across handlers and clients.
const (
	ContentTypeHeader        = "Content-Type"
	ContentDispositionHeader = "Content-Disposition"
	CacheControlHeader       = "Cache-Control"
	AuthorizationHeader      = "Authorization"
	UserAgentHeader          = "User-Agent"

	// ViewerCountryHeader carries the caller's country code when the request
	// passes through CloudFront.
	ViewerCountryHeader = "CloudFront-Viewer-Country"
)

// Content type values.
const (
	ContentTypeJSON = "application/json; charset=utf-8"
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// CacheControlNoStore disables caching of API responses.
const CacheControlNoStore = "no-store"

// BearerPrefix is the Authorization scheme prefix for admin tokens.
const BearerPrefix = "Bearer "

// TokenQueryParam is the fallback query parameter carrying the admin token.
const TokenQueryParam = "token"

// ActionQueryParam selects the admin operation (stats, list or export).
const ActionQueryParam = "action"

// HTTPStatusServerError is the lower bound of server error status codes.
const HTTPStatusServerError = 500
