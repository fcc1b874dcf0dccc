// Package entity defines the Omeda domain entities.
//
// Each entity is a schema table plus an optional set of field builders,
// normalized with [schema.Normalize]. Entities embed [schema.Entity], so
// every field is available through its generic accessors; the typed
// methods on each entity cover the fields callers use most.
//
// Schema tables live in schemas/*.json and are compiled in with embed.
// Builders handle nested records (a link click's clicks, a demographic's
// values) by constructing child entities from their own schemas.
package entity

import (
	"embed"
	"fmt"
	"path"

	"github.com/parameter1/omeda-go/pkg/schema"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

// mustSchema loads an embedded schema table. A malformed table is a
// programming error and panics at package init.
func mustSchema(name string) schema.Schema {
	data, err := schemaFiles.ReadFile(path.Join("schemas", name+".json"))
	if err != nil {
		panic(fmt.Sprintf("entity: read schema %s: %v", name, err))
	}
	return schema.MustParse(data)
}

// Schemas returns the schema tables by entity name, for tooling that
// inspects or documents them.
func Schemas() map[string]schema.Schema {
	return map[string]schema.Schema{
		"behavior":            behaviorSchema,
		"click":               clickSchema,
		"customer":            customerSchema,
		"customer-email":      customerEmailSchema,
		"demographic":         demographicSchema,
		"demographic-value":   demographicValueSchema,
		"link-click":          linkClickSchema,
		"unreal-click":        unrealClickSchema,
		"unreal-click-reason": unrealClickReasonSchema,
	}
}

// newEntity normalizes raw and wraps the result.
func newEntity[T any](s schema.Schema, b schema.Builder, raw schema.Record, wrap func(schema.Entity) T) (T, error) {
	e, err := schema.Normalize(s, raw, b)
	if err != nil {
		var zero T
		return zero, err
	}
	return wrap(e), nil
}

// buildList constructs one child entity per element of value. Elements
// that are not objects are built from an empty record.
func buildList[T any](value any, ctor func(schema.Record) (T, error)) ([]any, error) {
	items := schema.AsArray(value)
	out := make([]any, 0, len(items))
	for i, item := range items {
		child, err := ctor(schema.AsRecord(item))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, child)
	}
	return out, nil
}

// listOf returns the elements of a built list field that have type T.
func listOf[T any](e schema.Entity, name string) []T {
	items := e.Array(name)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if v, ok := item.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// FromList normalizes every object in a decoded JSON array with ctor.
// It is the usual way to turn a response collection into entities.
func FromList[T any](items []any, ctor func(schema.Record) (T, error)) ([]T, error) {
	out := make([]T, 0, len(items))
	for i, item := range items {
		v, err := ctor(schema.AsRecord(item))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func intField(e schema.Entity, name string) int64 {
	n, _ := e.Int(name)
	return n
}

func stringField(e schema.Entity, name string) string {
	s, _ := e.String(name)
	return s
}
