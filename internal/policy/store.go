// Package policy provides read-only policy reference data: loaded once at
// process start, read many times, never mutated.
package policy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/claimwise/claimwise/internal/model"
	"gopkg.in/yaml.v3"
)

// Store looks up policy records by policy number. A miss is a normal,
// expected outcome: it means "cannot deterministically validate", not
// "invalid claim".
type Store interface {
	// Lookup returns the record for a policy number, if present
	Lookup(policyNumber string) (model.PolicyRecord, bool)

	// Len returns the number of loaded records
	Len() int
}

// MemoryStore is an immutable in-memory policy table. Write-once at
// construction, so concurrent readers need no locking.
type MemoryStore struct {
	records map[string]model.PolicyRecord
}

// NewMemoryStore creates a store over the given records
func NewMemoryStore(records map[string]model.PolicyRecord) *MemoryStore {
	if records == nil {
		records = map[string]model.PolicyRecord{}
	}
	return &MemoryStore{records: records}
}

// Lookup returns the record for a policy number, if present
func (s *MemoryStore) Lookup(policyNumber string) (model.PolicyRecord, bool) {
	rec, ok := s.records[policyNumber]
	return rec, ok
}

// Len returns the number of loaded records
func (s *MemoryStore) Len() int {
	return len(s.records)
}

// LoadFile loads a policy table from a JSON or YAML file mapping policy
// numbers to records. A missing file yields an empty store, not an error:
// an absent reference dataset only means deterministic validation will
// record notes instead of violations.
func LoadFile(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewMemoryStore(nil), nil
		}
		return nil, fmt.Errorf("read policy file: %w", err)
	}

	records := map[string]model.PolicyRecord{}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse policy YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse policy JSON: %w", err)
		}
	}

	return NewMemoryStore(records), nil
}
