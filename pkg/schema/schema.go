package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/parameter1/omeda-go/pkg/errors"
)

// Record is a raw wire record as decoded by encoding/json. A missing key
// and an explicit JSON null are treated the same.
type Record map[string]any

// Entry names one field of an entity and its coercion kind.
type Entry struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

// Schema is an ordered list of entries describing one entity shape. The
// order only determines field order in the normalized entity.
type Schema []Entry

// Names returns the field names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, e := range s {
		names[i] = e.Name
	}
	return names
}

// Validate checks that every entry has a name and a known type.
func (s Schema) Validate() error {
	seen := make(map[string]bool, len(s))
	for i, e := range s {
		if e.Name == "" {
			return fmt.Errorf("schema entry %d: missing name", i)
		}
		if seen[e.Name] {
			return fmt.Errorf("schema entry %d: duplicate field %q", i, e.Name)
		}
		seen[e.Name] = true
		if !e.Type.Valid() {
			return fmt.Errorf("schema entry %q: %w", e.Name, unknownType(e.Type.String()))
		}
	}
	return nil
}

// Load reads a schema from a JSON array of {"name", "type"} objects.
func Load(r io.Reader) (Schema, error) {
	var s Schema
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, errors.ErrCodeUnknownSchemaType) {
			return nil, err
		}
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Parse is Load over a byte slice.
func Parse(data []byte) (Schema, error) {
	return Load(bytes.NewReader(data))
}

// MustParse is like Parse but panics on error. It is intended for
// package-level schema tables.
func MustParse(data []byte) Schema {
	s, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("schema: %v", err))
	}
	return s
}
