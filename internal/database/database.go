// Package database defines the storage interfaces for the actifly beta API.
package database

import (
	"context"
	"errors"

	"github.com/actifly/api/internal/api"
)

// ErrVersionConflict is returned by SaveList when the conditional write loses
// a race: the stored document version no longer matches the expected version.
// Callers re-read the list and reapply their change.
var ErrVersionConflict = errors.New("signup list version conflict")

// SignupStore persists the beta signup list as a single versioned document
// under a fixed key. The version number increases by one on every successful
// save and is the basis for optimistic concurrency control.
type SignupStore interface {
	// LoadList returns the current records and document version.
	// An absent document yields an empty list at version 0.
	LoadList(ctx context.Context) ([]api.SignupRecord, int64, error)

	// SaveList writes the full list back, conditioned on the document still
	// being at expectedVersion. Returns ErrVersionConflict (possibly wrapped)
	// when the condition fails.
	SaveList(ctx context.Context, records []api.SignupRecord, expectedVersion int64) error
}
