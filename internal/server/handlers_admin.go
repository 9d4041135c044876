package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/actifly/api/internal/api"
	"github.com/actifly/api/internal/auth"
	"github.com/actifly/api/internal/constants"
	apperrors "github.com/actifly/api/internal/errors"
	"github.com/actifly/api/internal/signup"
)

// handleBetaAdmin handles GET /api/beta-admin?action={stats|list|export}.
// Every action sits behind the shared-secret gate; export streams CSV, the
// others return JSON. Unknown actions fall back to stats.
func (r *Router) handleBetaAdmin(w http.ResponseWriter, req *http.Request) {
	logger := r.GetLoggerFromContext(req.Context())

	if r.cfg.AdminToken == "" {
		r.handleAndLogError(w, req, apperrors.ErrMisconfiguration(
			"Server misconfiguration: missing BETA_ADMIN_TOKEN"), "authorize admin request")
		return
	}

	token := auth.TokenFromRequest(req)
	if !auth.TokenEqual(token, r.cfg.AdminToken) {
		logger.Info("admin request rejected", "hasToken", token != "")
		r.writeError(w, apperrors.ErrUnauthorized("Unauthorized", nil))
		return
	}

	records, err := r.registry.Snapshot(req.Context())
	if err != nil {
		r.handleAndLogError(w, req, err, "load signup list")
		return
	}

	action := strings.ToLower(req.URL.Query().Get(constants.ActionQueryParam))
	switch action {
	case "export":
		r.writeExport(w, req, records)
	case "list":
		writeJSON(w, http.StatusOK, api.AdminListResponse{OK: true, List: records})
	default:
		writeJSON(w, http.StatusOK, api.AdminStatsResponse{
			OK:             true,
			Counts:         signup.Aggregate(records),
			ListKeyVersion: constants.SignupListKeyVersion,
		})
	}
}

// writeExport streams the signup list as a CSV attachment.
func (r *Router) writeExport(w http.ResponseWriter, req *http.Request, records []api.SignupRecord) {
	w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeCSV)
	w.Header().Set(constants.ContentDispositionHeader,
		fmt.Sprintf("attachment; filename=%q", constants.ExportFilename))
	w.Header().Set(constants.CacheControlHeader, constants.CacheControlNoStore)
	w.WriteHeader(http.StatusOK)

	if err := signup.WriteCSV(w, records); err != nil {
		// Headers are already sent; all we can do is log
		r.GetLoggerFromContext(req.Context()).Error("failed to stream CSV export", "error", err)
	}
}
