package omeda

import (
	"reflect"
	"testing"

	"github.com/parameter1/omeda-go/pkg/errors"
	"github.com/parameter1/omeda-go/pkg/schema"
)

const lookupDoc = `{
	"Id": 12,
	"Description": "Acme \"Weekly\"",
	"Active": true,
	"Missing": null,
	"Demographics": [
		{"Id": 1, "Description": "Job"},
		{"Id": 2, "Description": "Industry"}
	],
	"Owner": {"Name": "Ada"},
	"Tag": "single"
}`

func newJSONResponse(t *testing.T, raw string) *JSONResponse {
	t.Helper()
	body, err := parseJSON([]byte(raw))
	if err != nil {
		t.Fatalf("parseJSON: %v", err)
	}
	return &JSONResponse{result: result{raw: []byte(raw)}, body: body}
}

func TestJSONResponseGet(t *testing.T) {
	r := newJSONResponse(t, lookupDoc)

	tests := []struct {
		path string
		def  any
		want any
	}{
		{"Id", nil, float64(12)},
		{"Description", nil, `Acme "Weekly"`},
		{"Active", nil, true},
		{"Missing", "fallback", "fallback"},
		{"Nope", "fallback", "fallback"},
		{"Demographics.1.Description", nil, "Industry"},
		{"Demographics.5.Description", "none", "none"},
		{"Owner.Name", nil, "Ada"},
		{"Owner", nil, map[string]any{"Name": "Ada"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := r.Get(tt.path, tt.def); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Get(%q) = %#v, want %#v", tt.path, got, tt.want)
			}
		})
	}

	whole := r.Get("", nil)
	if m, ok := whole.(map[string]any); !ok || m["Id"] != float64(12) {
		t.Errorf("Get(\"\") = %#v", whole)
	}
}

func TestJSONResponseGetAsArray(t *testing.T) {
	r := newJSONResponse(t, lookupDoc)

	if got := r.GetAsArray("Demographics"); len(got) != 2 {
		t.Errorf("GetAsArray(Demographics) has %d items", len(got))
	}
	if got := r.GetAsArray("Nope"); got == nil || len(got) != 0 {
		t.Errorf("GetAsArray(Nope) = %#v, want empty", got)
	}
	if got := r.GetAsArray("Tag"); !reflect.DeepEqual(got, []any{"single"}) {
		t.Errorf("GetAsArray(Tag) = %#v", got)
	}
}

func TestJSONResponseGetAsObject(t *testing.T) {
	r := newJSONResponse(t, lookupDoc)

	if got := r.GetAsObject("Owner"); got["Name"] != "Ada" {
		t.Errorf("GetAsObject(Owner) = %#v", got)
	}
	for _, path := range []string{"Nope", "Tag", "Demographics"} {
		if got := r.GetAsObject(path); got == nil || len(got) != 0 {
			t.Errorf("GetAsObject(%q) = %#v, want empty record", path, got)
		}
	}
}

func TestJSONResponseDecode(t *testing.T) {
	r := newJSONResponse(t, lookupDoc)

	var out struct {
		ID           int `json:"Id"`
		Demographics []struct {
			Description string
		}
	}
	if err := r.Decode(&out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.ID != 12 || len(out.Demographics) != 2 || out.Demographics[0].Description != "Job" {
		t.Errorf("Decode() = %+v", out)
	}

	var wrong []int
	if err := r.Decode(&wrong); !errors.Is(err, errors.ErrCodeJSONParse) {
		t.Errorf("Decode into wrong type error = %v, want JSON_PARSE", err)
	}
}

func TestResponseVariants(t *testing.T) {
	j, err := newResponse(ContentTypeJSON, map[string]any{}, result{})
	if err != nil {
		t.Fatalf("newResponse(json): %v", err)
	}
	if _, ok := j.(*JSONResponse); !ok {
		t.Errorf("json variant is %T", j)
	}

	txt, err := newResponse(ContentTypeText, "hi", result{})
	if err != nil {
		t.Fatalf("newResponse(text): %v", err)
	}
	if tr, ok := txt.(*TextResponse); !ok || tr.Text() != "hi" {
		t.Errorf("text variant = %#v", txt)
	}

	if _, err := newResponse("xml", nil, result{}); !errors.Is(err, errors.ErrCodeUnsupportedContentType) {
		t.Errorf("newResponse(xml) error = %v", err)
	}
	if _, err := emptyResponse("xml", result{}); !errors.Is(err, errors.ErrCodeUnsupportedContentType) {
		t.Errorf("emptyResponse(xml) error = %v", err)
	}
	if _, err := newResponseError("xml", nil, result{}); !errors.Is(err, errors.ErrCodeUnsupportedContentType) {
		t.Errorf("newResponseError(xml) error = %v", err)
	}
}

func TestNotActiveMatcher(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"Customer 42 is valid but not active.", true},
		{"Email valid but not active", true},
		{"Customer not found", false},
		{"Valid But Not Active", false},
	}

	for _, tt := range tests {
		e := &ResponseError{message: tt.msg}
		if got := e.IsNotActive(); got != tt.want {
			t.Errorf("IsNotActive(%q) = %v, want %v", tt.msg, got, tt.want)
		}
		wantCode := errors.ErrCodeAPIResponse
		if tt.want {
			wantCode = errors.ErrCodeNotActive
		}
		if e.Code() != wantCode {
			t.Errorf("Code(%q) = %s, want %s", tt.msg, e.Code(), wantCode)
		}
	}
}

func TestAsJSON(t *testing.T) {
	txt := &TextResponse{text: "x"}
	if _, err := asJSON(txt, "comp/*"); !errors.Is(err, errors.ErrCodeUnsupportedContentType) {
		t.Errorf("asJSON(text) error = %v", err)
	}
	j := &JSONResponse{body: schema.Record{}}
	if got, err := asJSON(j, "comp/*"); err != nil || got != j {
		t.Errorf("asJSON(json) = %v, %v", got, err)
	}
}
