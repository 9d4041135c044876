package signup

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/actifly/api/internal/api"
	"github.com/actifly/api/internal/constants"
	"github.com/actifly/api/internal/database"
	apperrors "github.com/actifly/api/internal/errors"
	"github.com/actifly/api/internal/logger"
)

// Registry admits, deduplicates and counts beta signups against a fixed
// capacity. All state lives in the store; the registry itself is stateless and
// safe for concurrent use.
type Registry struct {
	store       database.SignupStore
	maxCapacity int
	logger      *slog.Logger
	now         func() time.Time
}

// NewRegistry creates a registry over the given store with the given hard capacity.
func NewRegistry(store database.SignupStore, maxCapacity int, log *slog.Logger) *Registry {
	return &Registry{
		store:       store,
		maxCapacity: maxCapacity,
		logger:      log,
		now:         time.Now,
	}
}

// MaxCapacity returns the hard capacity enforced on new signups.
func (r *Registry) MaxCapacity() int {
	return r.maxCapacity
}

// Submit runs the admission algorithm for a validated submission:
// upsert by normalized email (position preserved, capacity not checked) or
// append when under capacity. The whole read-modify-write sequence is guarded
// by the store's version condition and retried a bounded number of times, so
// concurrent submits cannot lose updates or overshoot capacity.
func (r *Registry) Submit(ctx context.Context, sub *api.Submission) (*api.SubmitResult, error) {
	reqLogger := logger.DeriveRequestLogger(ctx, r.logger)

	var lastErr error
	for attempt := 1; attempt <= constants.MaxSubmitAttempts; attempt++ {
		records, version, err := r.store.LoadList(ctx)
		if err != nil {
			return nil, err
		}

		record := api.SignupRecord{
			Email:     sub.Email,
			Category:  sub.Category,
			Timestamp: r.now().UTC().Format(time.RFC3339),
			Country:   sub.Country,
			UserAgent: sub.UserAgent,
		}

		updated := false
		if idx := indexByEmail(records, sub.Email); idx >= 0 {
			// Upserts never count against capacity and keep their position.
			records[idx] = record
			updated = true
		} else {
			if len(records) >= r.maxCapacity {
				return nil, apperrors.ErrRegistryFull()
			}
			records = append(records, record)
		}

		err = r.store.SaveList(ctx, records, version)
		if err == nil {
			reqLogger.Info("signup stored",
				"email", sub.Email,
				"category", sub.Category,
				"updated", updated,
				"total", len(records))
			return &api.SubmitResult{Total: len(records), Updated: updated}, nil
		}

		if !stderrors.Is(err, database.ErrVersionConflict) {
			return nil, err
		}

		lastErr = err
		reqLogger.Debug("submit lost a version race, retrying",
			"attempt", attempt, "version", version)
	}

	reqLogger.Warn("submit retries exhausted", "attempts", constants.MaxSubmitAttempts, "error", lastErr)
	return nil, apperrors.ErrContentionExceeded(
		fmt.Sprintf("signup list contended after %d attempts", constants.MaxSubmitAttempts))
}

// Snapshot returns the current signup list for read endpoints.
func (r *Registry) Snapshot(ctx context.Context) ([]api.SignupRecord, error) {
	records, _, err := r.store.LoadList(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// indexByEmail returns the position of the record with the given normalized
// email, or -1 when absent.
func indexByEmail(records []api.SignupRecord, email string) int {
	for i := range records {
		if records[i].Email == email {
			return i
		}
	}
	return -1
}
