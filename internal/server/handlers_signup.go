package server

import (
	"net/http"

	"github.com/actifly/api/internal/api"
	"github.com/actifly/api/internal/constants"
	apperrors "github.com/actifly/api/internal/errors"
	"github.com/actifly/api/internal/signup"
)

// handleBetaSignup handles POST /api/beta-signup: validate the form fields,
// run the admission algorithm, and report the resulting total.
func (r *Router) handleBetaSignup(w http.ResponseWriter, req *http.Request) {
	logger := r.GetLoggerFromContext(req.Context())

	if err := req.ParseForm(); err != nil {
		r.writeError(w, apperrors.ErrBadRequest("Invalid form body", err))
		return
	}

	sub, err := signup.ParseSubmission(signup.RawSubmission{
		Email:     req.PostFormValue("email"),
		Category:  req.PostFormValue("category"),
		Consent:   req.PostFormValue("consent"),
		Country:   req.Header.Get(constants.ViewerCountryHeader),
		UserAgent: req.Header.Get(constants.UserAgentHeader),
	})
	if err != nil {
		logger.Debug("signup submission rejected", "error", err)
		r.writeError(w, err)
		return
	}

	result, err := r.registry.Submit(req.Context(), sub)
	if err != nil {
		if apperrors.GetStatusCode(err) < constants.HTTPStatusServerError {
			// Capacity reached is an expected outcome, not a fault
			logger.Info("signup not admitted", "error_code", apperrors.GetErrorCode(err))
			r.writeError(w, err)
			return
		}
		r.handleAndLogError(w, req, err, "store signup")
		return
	}

	writeJSON(w, http.StatusOK, api.SignupResponse{
		OK:     true,
		Stored: true,
		Total:  result.Total,
	})
}

// handleBetaStats handles GET /api/beta-stats: public aggregate counts plus
// the capacity and display quota the signup form renders progress against.
func (r *Router) handleBetaStats(w http.ResponseWriter, req *http.Request) {
	records, err := r.registry.Snapshot(req.Context())
	if err != nil {
		r.handleAndLogError(w, req, err, "load beta stats")
		return
	}

	writeJSON(w, http.StatusOK, api.StatsResponse{
		OK:     true,
		Counts: signup.Aggregate(records),
		Max:    r.registry.MaxCapacity(),
		Quota:  signup.DefaultQuota(),
	})
}

// handleHealth returns a simple health check response
func (r *Router) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}
