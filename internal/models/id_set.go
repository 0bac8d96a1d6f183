package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// IDSet stores an ordered set of opaque user identifiers, persisted as a JSON
// array. It backs the per-post reaction collections where membership is an
// equality test on the identifier and toggling must never duplicate entries.
type IDSet []string

// Value persists the set as a JSON array. A nil set stores as [] so the
// column never holds non-JSON text, whichever update path writes it.
func (s IDSet) Value() (driver.Value, error) {
	if s == nil {
		s = IDSet{}
	}
	raw, err := json.Marshal([]string(s))
	if err != nil {
		return nil, fmt.Errorf("id set: marshal: %w", err)
	}
	return string(raw), nil
}

// Scan restores the set from a JSON array stored as text or bytes.
func (s *IDSet) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("id set: unsupported column type %T", value)
	}
	if len(raw) == 0 {
		*s = nil
		return nil
	}
	if err := json.Unmarshal(raw, (*[]string)(s)); err != nil {
		return fmt.Errorf("id set: unmarshal: %w", err)
	}
	return nil
}

// GormDataType stores reaction sets as text columns.
func (IDSet) GormDataType() string { return "text" }

// Has reports whether id is a member of the set.
func (s IDSet) Has(id string) bool {
	for _, existing := range s {
		if existing == id {
			return true
		}
	}
	return false
}

// Add inserts id when absent and reports whether the set changed.
func (s *IDSet) Add(id string) bool {
	if id == "" || s.Has(id) {
		return false
	}
	*s = append(*s, id)
	return true
}

// Remove drops id when present and reports whether the set changed.
func (s *IDSet) Remove(id string) bool {
	for i, existing := range *s {
		if existing == id {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle flips membership of id and reports whether it is now present.
func (s *IDSet) Toggle(id string) bool {
	if s.Remove(id) {
		return false
	}
	s.Add(id)
	return true
}
