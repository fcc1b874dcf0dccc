// Package schema normalizes loosely typed Omeda wire records into typed
// entities.
//
// A [Schema] is an ordered list of field names and coercion kinds. The
// Omeda API is inconsistent about how it encodes values (numbers arrive as
// strings, booleans as "0", empty strings stand in for nulls), so
// [Normalize] applies one fixed coercion table to every field:
//
//	datetime, date                    lenient date parse, else nil
//	string, link                      trimmed text; empty becomes nil
//	boolean, short (boolean)          "false" and "0" are false; nil stays nil
//	integer, short, byte, int         leading-integer parse; no digits is NaN
//	decimal, long, double             numeric cast; unparsable is NaN
//	array, list                       slices pass through, else empty
//
// Any other type is an UNKNOWN_SCHEMA_TYPE error.
//
// # Builders
//
// Fields whose shape the table cannot express (nested entities, upstream
// quirks) are handled by a [Builder]. A builder sees each field before
// coercion and may return a replacement value; returning nil leaves the
// field to the table. [Builders] dispatches on field name:
//
//	b := schema.Builders{
//	    "Values": func(f schema.Field) (any, error) {
//	        return buildValues(schema.AsArray(f.Value))
//	    },
//	}
//	e, err := schema.Normalize(s, raw, b)
//
// Integer fields are float64 values. A non-numeric wire value yields NaN
// rather than nil so that bad data stays visible.
package schema
