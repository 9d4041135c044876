// Package testutil provides shared testing utilities and fixtures.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/actifly/api/internal/api"
	"github.com/actifly/api/internal/constants"
	"github.com/actifly/api/internal/database"
)

// RecordBuilder provides a fluent interface for building test signup records.
type RecordBuilder struct {
	record api.SignupRecord
}

// NewRecordBuilder creates a new RecordBuilder with sensible defaults.
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{
		record: api.SignupRecord{
			Email:     "test@example.com",
			Category:  constants.CategoryAndroid,
			Timestamp: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC).Format(time.RFC3339),
		},
	}
}

// WithEmail sets the record's email.
func (b *RecordBuilder) WithEmail(email string) *RecordBuilder {
	b.record.Email = email
	return b
}

// WithCategory sets the record's category.
func (b *RecordBuilder) WithCategory(category string) *RecordBuilder {
	b.record.Category = category
	return b
}

// WithTimestamp sets the record's timestamp.
func (b *RecordBuilder) WithTimestamp(ts string) *RecordBuilder {
	b.record.Timestamp = ts
	return b
}

// WithCountry sets the record's country.
func (b *RecordBuilder) WithCountry(country string) *RecordBuilder {
	b.record.Country = country
	return b
}

// WithUserAgent sets the record's user agent.
func (b *RecordBuilder) WithUserAgent(ua string) *RecordBuilder {
	b.record.UserAgent = ua
	return b
}

// Build returns the constructed SignupRecord.
func (b *RecordBuilder) Build() api.SignupRecord {
	return b.record
}

// MemoryStore is an in-memory database.SignupStore for tests.
// It enforces the same version condition as the DynamoDB implementation and
// can inject version conflicts and faults.
type MemoryStore struct {
	mu      sync.Mutex
	records []api.SignupRecord
	version int64

	// ConflictNextSaves makes the next n SaveList calls fail with
	// database.ErrVersionConflict while still bumping the stored version,
	// simulating a concurrent writer winning the race.
	ConflictNextSaves int

	// LoadErr and SaveErr, when set, are returned by the respective calls.
	LoadErr error
	SaveErr error
}

// NewMemoryStore creates a MemoryStore seeded with the given records.
func NewMemoryStore(records ...api.SignupRecord) *MemoryStore {
	s := &MemoryStore{}
	if len(records) > 0 {
		s.records = append(s.records, records...)
		s.version = 1
	}
	return s
}

// LoadList implements database.SignupStore.
func (s *MemoryStore) LoadList(_ context.Context) ([]api.SignupRecord, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.LoadErr != nil {
		return nil, 0, s.LoadErr
	}

	out := make([]api.SignupRecord, len(s.records))
	copy(out, s.records)
	return out, s.version, nil
}

// SaveList implements database.SignupStore.
func (s *MemoryStore) SaveList(_ context.Context, records []api.SignupRecord, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SaveErr != nil {
		return s.SaveErr
	}

	if s.ConflictNextSaves > 0 {
		s.ConflictNextSaves--
		s.version++
		return database.ErrVersionConflict
	}

	if expectedVersion != s.version {
		return database.ErrVersionConflict
	}

	s.records = make([]api.SignupRecord, len(records))
	copy(s.records, records)
	s.version++
	return nil
}

// Records returns a copy of the stored records.
func (s *MemoryStore) Records() []api.SignupRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]api.SignupRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Version returns the current document version.
func (s *MemoryStore) Version() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}
