package schema

import (
	"bytes"
	"encoding/json"
	"math"
	"time"
)

// Entity is a normalized record. It is a value: it has no identity beyond
// its fields and cannot be changed after Normalize returns it.
//
// Field values are one of nil, time.Time, string, bool, float64, []any or
// whatever a Builder produced for that field. Integer fields are float64
// so that a non-numeric wire value can be represented as NaN.
type Entity struct {
	names  []string
	values map[string]any
}

// Normalized is implemented by Entity and by every type that embeds it.
type Normalized interface {
	Normalized() Entity
}

// Normalized returns e. Types embedding Entity inherit it, which lets
// nested entities be compared and encoded uniformly.
func (e Entity) Normalized() Entity { return e }

// Fields returns the field names in schema order.
func (e Entity) Fields() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// Len returns the number of fields.
func (e Entity) Len() int { return len(e.names) }

// Has reports whether name is a field of the entity's schema.
func (e Entity) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Get returns the value of a field and whether the field exists. Slices
// are returned as copies.
func (e Entity) Get(name string) (any, bool) {
	v, ok := e.values[name]
	return cloneValue(v), ok
}

// Value returns the value of a field, or nil.
func (e Entity) Value(name string) any {
	return cloneValue(e.values[name])
}

// IsNull reports whether a field is absent or null.
func (e Entity) IsNull(name string) bool {
	return e.values[name] == nil
}

// String returns a string field.
func (e Entity) String(name string) (string, bool) {
	s, ok := e.values[name].(string)
	return s, ok
}

// Bool returns a boolean field.
func (e Entity) Bool(name string) (bool, bool) {
	b, ok := e.values[name].(bool)
	return b, ok
}

// Float returns a numeric field. NaN is returned as is.
func (e Entity) Float(name string) (float64, bool) {
	f, ok := e.values[name].(float64)
	return f, ok
}

// Int returns a numeric field truncated to an integer. It reports false
// for null, NaN and infinite values.
func (e Entity) Int(name string) (int64, bool) {
	f, ok := e.values[name].(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}

// Time returns a date field.
func (e Entity) Time(name string) (time.Time, bool) {
	t, ok := e.values[name].(time.Time)
	return t, ok
}

// Array returns a copy of a slice field. Array and list fields are never
// nil.
func (e Entity) Array(name string) []any {
	arr, ok := e.values[name].([]any)
	if !ok {
		return nil
	}
	return cloneSlice(arr)
}

// Map returns a copy of the fields. Slice values are copied one level
// deep.
func (e Entity) Map() map[string]any {
	out := make(map[string]any, len(e.values))
	for k, v := range e.values {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	if arr, ok := v.([]any); ok {
		return cloneSlice(arr)
	}
	return v
}

// Equal reports whether two entities have the same fields with equal
// values. NaN equals NaN and dates compare by instant.
func (e Entity) Equal(o Entity) bool {
	if len(e.names) != len(o.names) {
		return false
	}
	for i, name := range e.names {
		if o.names[i] != name {
			return false
		}
		if !equalValues(e.values[name], o.values[name]) {
			return false
		}
	}
	return true
}

func equalValues(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case float64:
		y, ok := b.(float64)
		if !ok {
			return false
		}
		return x == y || (math.IsNaN(x) && math.IsNaN(y))
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case Normalized:
		y, ok := b.(Normalized)
		return ok && x.Normalized().Equal(y.Normalized())
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !equalValues(x[i], y[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, v := range x {
			w, exists := y[k]
			if !exists || !equalValues(v, w) {
				return false
			}
		}
		return true
	}
	// Remaining wire values are comparable scalars.
	defer func() { _ = recover() }()
	return a == b
}

// MarshalJSON encodes the entity as a JSON object with keys in schema
// order. NaN and infinite numbers encode as null.
func (e Entity) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range e.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		v := e.values[name]
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			v = nil
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
