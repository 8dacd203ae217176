package domain

import (
	"database/sql/driver"
	"encoding/json"
	"sort"
)

// TrackSet holds the distinct track names observed for an album. It
// serializes as a sorted JSON array for deterministic output.
type TrackSet map[string]struct{}

// NewTrackSet creates a TrackSet from the given names, ignoring empty ones.
func NewTrackSet(names ...string) TrackSet {
	s := make(TrackSet, len(names))
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add inserts a track name. Empty names are ignored.
func (s TrackSet) Add(name string) {
	if name == "" {
		return
	}
	s[name] = struct{}{}
}

// Has reports whether name is in the set.
func (s TrackSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the track names in sorted order.
func (s TrackSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a copy of the set.
func (s TrackSet) Clone() TrackSet {
	clone := make(TrackSet, len(s))
	for name := range s {
		clone[name] = struct{}{}
	}
	return clone
}

func (s TrackSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

func (s *TrackSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = NewTrackSet(names...)
	return nil
}

func (s TrackSet) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s.Names())
}

func (s *TrackSet) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil
	}

	if len(data) == 0 || string(data) == "null" {
		*s = nil
		return nil
	}

	return s.UnmarshalJSON(data)
}
