package schema

import (
	"strings"

	"github.com/parameter1/omeda-go/pkg/errors"
)

// Type is a coercion kind named by a schema entry.
//
// The zero value is not a valid type; normalizing a field with an invalid
// type fails with an UNKNOWN_SCHEMA_TYPE error.
type Type int

// Coercion kinds, in the order Omeda documents them.
const (
	TypeInvalid Type = iota
	TypeDateTime
	TypeDate
	TypeString
	TypeLink
	TypeBoolean
	TypeShortBoolean
	TypeInteger
	TypeShort
	TypeByte
	TypeInt
	TypeDecimal
	TypeLong
	TypeDouble
	TypeArray
	TypeList
)

var typeTokens = [...]string{
	TypeInvalid:      "",
	TypeDateTime:     "datetime",
	TypeDate:         "date",
	TypeString:       "string",
	TypeLink:         "link",
	TypeBoolean:      "boolean",
	TypeShortBoolean: "short (boolean)",
	TypeInteger:      "integer",
	TypeShort:        "short",
	TypeByte:         "byte",
	TypeInt:          "int",
	TypeDecimal:      "decimal",
	TypeLong:         "long",
	TypeDouble:       "double",
	TypeArray:        "array",
	TypeList:         "list",
}

// ParseType returns the Type for an Omeda data type token. Tokens are
// matched case-insensitively, since the Omeda documentation capitalizes
// them inconsistently ("Integer", "string").
func ParseType(token string) (Type, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	for i, tok := range typeTokens {
		if i != int(TypeInvalid) && tok == t {
			return Type(i), nil
		}
	}
	return TypeInvalid, unknownType(token)
}

// Valid reports whether t names a known coercion kind.
func (t Type) Valid() bool {
	return t > TypeInvalid && int(t) < len(typeTokens)
}

// String returns the Omeda token for t.
func (t Type) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return typeTokens[t]
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, unknownType(t.String())
	}
	return []byte(typeTokens[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func unknownType(token string) error {
	return errors.New(errors.ErrCodeUnknownSchemaType, "an unknown Omeda data type was encountered: '%s'", token)
}
