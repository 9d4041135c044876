package server

import (
	"encoding/json"
	"net/http"

	"github.com/actifly/api/internal/api"
	"github.com/actifly/api/internal/constants"
	apperrors "github.com/actifly/api/internal/errors"
)

// writeJSON writes v as a JSON response with the given status code.
// All JSON responses are marked uncacheable.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
	w.Header().Set(constants.CacheControlHeader, constants.CacheControlNoStore)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the standard error body for an error, mapping the status
// code and machine-readable code from the AppError. Capacity-reached errors
// additionally carry full:true and the configured maximum.
func (r *Router) writeError(w http.ResponseWriter, err error) {
	statusCode := apperrors.GetStatusCode(err)
	body := api.ErrorResponse{
		OK:    false,
		Error: apperrors.GetErrorMessage(err),
		Code:  apperrors.GetErrorCode(err),
	}

	if body.Code == apperrors.ErrCodeRegistryFull {
		body.Full = true
		body.Max = r.registry.MaxCapacity()
	}

	writeJSON(w, statusCode, body)
}

// handleAndLogError logs an error and writes the standardized error response.
// Use this for all service call failures in handlers.
func (r *Router) handleAndLogError(w http.ResponseWriter, req *http.Request, err error, operationName string) {
	logger := r.GetLoggerFromContext(req.Context())

	logger.Error(
		"operation failed",
		"operation", operationName,
		"error", err,
		"status_code", apperrors.GetStatusCode(err),
		"error_code", apperrors.GetErrorCode(err),
	)

	r.writeError(w, err)
}
