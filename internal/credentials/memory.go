package credentials

import (
	"context"
)

// MemoryStore keeps the credential table in memory. It is useful for tests
// and for running without a credential file.
type MemoryStore struct {
	records []Record

	// Saves counts successful calls to Save
	Saves int

	// LoadErr and SaveErr, when set, are returned by Load and Save
	LoadErr error
	SaveErr error
}

// NewMemoryStore creates a store holding a copy of records
func NewMemoryStore(records ...Record) *MemoryStore {
	return &MemoryStore{records: append([]Record(nil), records...)}
}

// Load returns a copy of the stored records
func (s *MemoryStore) Load(ctx context.Context) ([]Record, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return append([]Record(nil), s.records...), nil
}

// Save replaces the stored records with a copy of records
func (s *MemoryStore) Save(ctx context.Context, records []Record) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.records = append([]Record(nil), records...)
	s.Saves++
	return nil
}
