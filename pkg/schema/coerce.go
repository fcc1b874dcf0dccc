package schema

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// coerce applies the coercion rule for t to a raw wire value. It is the
// only place type conversion happens; entities supply schemas and
// builders but never convert values themselves.
func coerce(t Type, value any) (any, error) {
	switch t {
	case TypeDateTime, TypeDate:
		if d, ok := toDate(value); ok {
			return d, nil
		}
		return nil, nil

	case TypeString, TypeLink:
		if !truthy(value) {
			return nil, nil
		}
		if s := strings.TrimSpace(stringify(value)); s != "" {
			return s, nil
		}
		return nil, nil

	case TypeBoolean, TypeShortBoolean:
		if s, ok := value.(string); ok && (s == "false" || s == "0") {
			return false, nil
		}
		if value == nil {
			return nil, nil
		}
		return truthy(value), nil

	case TypeInteger, TypeShort, TypeByte, TypeInt:
		if value == nil {
			return nil, nil
		}
		return parseInt(stringify(value)), nil

	case TypeDecimal, TypeLong, TypeDouble:
		if value == nil {
			return nil, nil
		}
		return toNumber(value), nil

	case TypeArray, TypeList:
		if arr, ok := toSlice(value); ok && arr != nil {
			return cloneSlice(arr), nil
		}
		return []any{}, nil
	}
	return nil, unknownType(t.String())
}

// truthy follows loose truthiness: nil, false, zero, NaN and the empty
// string are false; every other value, including empty arrays and
// objects, is true.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f := toNumber(x)
		return f != 0 && !math.IsNaN(f)
	}
	if f, ok := toFloat(v); ok {
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// stringify renders a wire value as text. Arrays are joined with commas
// with null elements left empty; objects are rendered as compact JSON.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = stringify(e)
		}
		return strings.Join(parts, ",")
	}
	if f, ok := toFloat(v); ok {
		return formatNumber(f)
	}
	if arr, ok := toSlice(v); ok {
		return stringify(arr)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// formatNumber renders a float64 the way a JSON producer would: whole
// numbers without a fraction, exponent notation outside [1e-6, 1e21).
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// strconv pads the exponent to two digits.
		s = strings.Replace(s, "e-0", "e-", 1)
		return strings.Replace(s, "e+0", "e+", 1)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseInt reads an optionally signed run of decimal digits from the
// start of s, after leading whitespace. Anything following the digits is
// ignored. No digits yields NaN.
func parseInt(s string) float64 {
	s = strings.TrimLeftFunc(s, isJSSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil && !isRangeErr(err) {
		return math.NaN()
	}
	return f
}

var decimalLiteral = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)$`)

// toNumber performs a numeric cast: booleans become 1 or 0, blank strings
// become 0, and anything that is not a complete numeric literal is NaN.
func toNumber(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case bool:
		if x {
			return 1
		}
		return 0
	case json.Number:
		return toNumber(string(x))
	case string:
		return parseNumber(x)
	case time.Time:
		return float64(x.UnixMilli())
	case []any:
		return parseNumber(stringify(x))
	}
	if f, ok := toFloat(v); ok {
		return f
	}
	if arr, ok := toSlice(v); ok {
		return parseNumber(stringify(arr))
	}
	return math.NaN()
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}
	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !isRangeErr(err) {
		return math.NaN()
	}
	return f
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

func isJSSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}

// toFloat converts Go numeric kinds to float64.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}

// toSlice returns v as []any when it is any kind of slice or array.
func toSlice(v any) ([]any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case []any:
		return x, true
	case []Record:
		out := make([]any, len(x))
		for i, r := range x {
			out[i] = r
		}
		return out, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return []any{}, true
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// cloneSlice copies the top level of arr so the result does not share
// storage with the raw record.
func cloneSlice(arr []any) []any {
	out := make([]any, len(arr))
	copy(out, arr)
	return out
}

// toDate parses a wire date leniently. Zone-less values are read as UTC.
// Numbers are treated as Unix timestamps in the precision their digit
// count implies.
func toDate(v any) (time.Time, bool) {
	var s string
	switch x := v.(type) {
	case nil, bool:
		return time.Time{}, false
	case time.Time:
		return x, !x.IsZero()
	case string:
		s = strings.TrimSpace(x)
	default:
		f := toNumber(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return time.Time{}, false
		}
		s = strconv.FormatInt(int64(f), 10)
	}
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
