package schema

import (
	"fmt"
)

// Field is the input offered to a Builder for one schema entry.
type Field struct {
	Name   string
	Type   Type
	Value  any    // raw wire value, nil when absent
	Parent Record // the whole raw record being normalized
}

// Builder overrides coercion for individual fields. A non-nil result is
// stored verbatim; a nil result falls through to the coercion table.
type Builder interface {
	Build(f Field) (any, error)
}

// BuilderFunc adapts a function to the Builder interface.
type BuilderFunc func(f Field) (any, error)

// Build calls fn(f).
func (fn BuilderFunc) Build(f Field) (any, error) {
	return fn(f)
}

// Builders is a Builder that dispatches on field name. Fields without an
// entry fall through to coercion.
type Builders map[string]BuilderFunc

// Build implements Builder.
func (b Builders) Build(f Field) (any, error) {
	if fn, ok := b[f.Name]; ok && fn != nil {
		return fn(f)
	}
	return nil, nil
}

// Normalize coerces raw against s, producing an immutable Entity whose
// fields follow the schema order.
//
// Every entry's type is checked before the builder sees the field, so a
// schema with an unknown type fails the same way regardless of the data
// or the builder. b may be nil.
func Normalize(s Schema, raw Record, b Builder) (Entity, error) {
	names := make([]string, 0, len(s))
	values := make(map[string]any, len(s))

	for _, e := range s {
		if !e.Type.Valid() {
			return Entity{}, fmt.Errorf("field %q: %w", e.Name, unknownType(e.Type.String()))
		}
		value := raw[e.Name]

		if b != nil {
			built, err := b.Build(Field{Name: e.Name, Type: e.Type, Value: value, Parent: raw})
			if err != nil {
				return Entity{}, fmt.Errorf("build field %q: %w", e.Name, err)
			}
			if built != nil {
				names, values = appendField(names, values, e.Name, built)
				continue
			}
		}

		v, err := coerce(e.Type, value)
		if err != nil {
			return Entity{}, fmt.Errorf("field %q: %w", e.Name, err)
		}
		names, values = appendField(names, values, e.Name, v)
	}
	return Entity{names: names, values: values}, nil
}

func appendField(names []string, values map[string]any, name string, v any) ([]string, map[string]any) {
	if _, dup := values[name]; !dup {
		names = append(names, name)
	}
	values[name] = v
	return names, values
}

// AsArray forces v into a slice: nil becomes an empty slice, a slice is
// returned as is, and any other value becomes a one-element slice.
func AsArray(v any) []any {
	if v == nil {
		return []any{}
	}
	if arr, ok := toSlice(v); ok {
		if arr == nil {
			return []any{}
		}
		return arr
	}
	return []any{v}
}

// AsRecord returns v as a Record, or an empty Record when v is not an
// object.
func AsRecord(v any) Record {
	switch x := v.(type) {
	case Record:
		if x != nil {
			return x
		}
	case map[string]any:
		if x != nil {
			return Record(x)
		}
	}
	return Record{}
}
