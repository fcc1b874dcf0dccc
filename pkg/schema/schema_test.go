package schema

import (
	"encoding/json"
	"strings"
	"testing"

	omerrors "github.com/parameter1/omeda-go/pkg/errors"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		token   string
		want    Type
		wantErr bool
	}{
		{"datetime", TypeDateTime, false},
		{"date", TypeDate, false},
		{"string", TypeString, false},
		{"link", TypeLink, false},
		{"boolean", TypeBoolean, false},
		{"short (boolean)", TypeShortBoolean, false},
		{"Integer", TypeInteger, false},
		{" short ", TypeShort, false},
		{"byte", TypeByte, false},
		{"int", TypeInt, false},
		{"decimal", TypeDecimal, false},
		{"long", TypeLong, false},
		{"double", TypeDouble, false},
		{"Array", TypeArray, false},
		{"list", TypeList, false},
		{"float", TypeInvalid, true},
		{"", TypeInvalid, true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseType(tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseType(%q) error = %v, wantErr %v", tt.token, err, tt.wantErr)
			}
			if err != nil && !omerrors.Is(err, omerrors.ErrCodeUnknownSchemaType) {
				t.Errorf("ParseType(%q) error code = %v", tt.token, omerrors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("ParseType(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestTypeTextRoundTrip(t *testing.T) {
	for typ := TypeDateTime; typ <= TypeList; typ++ {
		text, err := typ.MarshalText()
		if err != nil {
			t.Fatalf("%v.MarshalText: %v", typ, err)
		}
		var back Type
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%s): %v", text, err)
		}
		if back != typ {
			t.Errorf("round trip %v -> %s -> %v", typ, text, back)
		}
	}

	if _, err := Type(42).MarshalText(); err == nil {
		t.Error("MarshalText of an invalid type should fail")
	}
}

func TestLoad(t *testing.T) {
	s, err := Load(strings.NewReader(`[
		{"name": "Id", "type": "Integer"},
		{"name": "Description", "type": "string"},
		{"name": "Values", "type": "array"}
	]`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := strings.Join(s.Names(), ","); got != "Id,Description,Values" {
		t.Errorf("Names() = %s", got)
	}
	if s[0].Type != TypeInteger {
		t.Errorf("Id type = %v, want integer", s[0].Type)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode omerrors.Code
	}{
		{"unknown type", `[{"name": "Id", "type": "float"}]`, omerrors.ErrCodeUnknownSchemaType},
		{"missing type", `[{"name": "Id"}]`, omerrors.ErrCodeUnknownSchemaType},
		{"missing name", `[{"type": "string"}]`, ""},
		{"duplicate", `[{"name": "Id", "type": "int"}, {"name": "Id", "type": "int"}]`, ""},
		{"not an array", `{"name": "Id"}`, ""},
		{"unknown key", `[{"name": "Id", "type": "int", "required": true}]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if got := omerrors.GetCode(err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on an invalid schema")
		}
	}()
	MustParse([]byte(`[{"name": "Id", "type": "float"}]`))
}

func TestSchemaJSONEncoding(t *testing.T) {
	s := Schema{{Name: "Flag", Type: TypeShortBoolean}}
	got, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != `[{"name":"Flag","type":"short (boolean)"}]` {
		t.Errorf("Marshal() = %s", got)
	}
}
