package omeda

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"

	"github.com/parameter1/omeda-go/pkg/errors"
	"github.com/parameter1/omeda-go/pkg/schema"
)

// ContentType is the classified kind of a request or response body.
type ContentType string

const (
	ContentTypeJSON ContentType = "json"
	ContentTypeText ContentType = "text"
)

// Response is a successful API response: a *JSONResponse or a
// *TextResponse.
type Response interface {
	// ContentType returns "json" or "text".
	ContentType() ContentType
	// Body returns the decoded JSON value or the text.
	Body() any
	// Raw returns the body bytes as received or as cached.
	Raw() []byte
	// HTTPResponse returns the transport response. It is nil for cache
	// hits. Its body has already been consumed.
	HTTPResponse() *http.Response
	// StatusCode returns the HTTP status, or 0 for cache hits.
	StatusCode() int
	// Elapsed returns the time from the start of the call to the result.
	Elapsed() time.Duration
	// ElapsedMs returns Elapsed in fractional milliseconds.
	ElapsedMs() float64
	// FromCache reports whether the response was served from the cache.
	FromCache() bool
}

// result holds what every response and error carries.
type result struct {
	raw       []byte
	http      *http.Response
	elapsed   time.Duration
	fromCache bool
}

func (r result) Raw() []byte                  { return r.raw }
func (r result) HTTPResponse() *http.Response { return r.http }
func (r result) Elapsed() time.Duration       { return r.elapsed }
func (r result) ElapsedMs() float64           { return float64(r.elapsed) / float64(time.Millisecond) }
func (r result) FromCache() bool              { return r.fromCache }

func (r result) StatusCode() int {
	if r.http == nil {
		return 0
	}
	return r.http.StatusCode
}

// JSONResponse is a response with a JSON body.
type JSONResponse struct {
	result
	body any
}

// ContentType returns ContentTypeJSON.
func (r *JSONResponse) ContentType() ContentType { return ContentTypeJSON }

// Body returns the decoded JSON value: map[string]any, []any, string,
// float64, bool or nil.
func (r *JSONResponse) Body() any { return r.body }

// Decode unmarshals the raw body into v.
func (r *JSONResponse) Decode(v any) error {
	if err := json.Unmarshal(r.raw, v); err != nil {
		return &errors.JSONParseError{Body: string(r.raw), Cause: err}
	}
	return nil
}

// Get returns the value at a dot-separated path, or def when the path
// does not exist or holds null. Numeric segments index into arrays:
// "Errors.0.Error".
func (r *JSONResponse) Get(path string, def any) any {
	v, ok := lookup(r.raw, path)
	if !ok {
		return def
	}
	return v
}

// GetAsArray returns the value at path as a slice. A missing value is an
// empty slice and a non-array value is wrapped in a one-element slice.
func (r *JSONResponse) GetAsArray(path string) []any {
	v, _ := lookup(r.raw, path)
	return schema.AsArray(v)
}

// GetAsObject returns the value at path as a record, or an empty record
// when it is missing or not an object.
func (r *JSONResponse) GetAsObject(path string) schema.Record {
	v, _ := lookup(r.raw, path)
	return schema.AsRecord(v)
}

// TextResponse is a response with a text body.
type TextResponse struct {
	result
	text string
}

// ContentType returns ContentTypeText.
func (r *TextResponse) ContentType() ContentType { return ContentTypeText }

// Body returns the text as a string.
func (r *TextResponse) Body() any { return r.text }

// Text returns the body.
func (r *TextResponse) Text() string { return r.text }

var (
	_ Response = (*JSONResponse)(nil)
	_ Response = (*TextResponse)(nil)
)

// newResponse builds the success variant for a classified body.
func newResponse(ct ContentType, body any, res result) (Response, error) {
	switch ct {
	case ContentTypeJSON:
		return &JSONResponse{result: res, body: body}, nil
	case ContentTypeText:
		s, _ := body.(string)
		return &TextResponse{result: res, text: s}, nil
	}
	return nil, unsupportedContentType("response", string(ct))
}

// emptyResponse is the success value returned for a suppressed 404.
func emptyResponse(ct ContentType, res result) (Response, error) {
	switch ct {
	case ContentTypeJSON:
		res.raw = []byte("{}")
		return &JSONResponse{result: res, body: map[string]any{}}, nil
	case ContentTypeText:
		res.raw = []byte{}
		return &TextResponse{result: res}, nil
	}
	return nil, unsupportedContentType("response", string(ct))
}

// responseFromEntry rebuilds a response from a cache entry.
func responseFromEntry(e ContentType, raw []byte, elapsed time.Duration) (Response, error) {
	res := result{raw: raw, elapsed: elapsed, fromCache: true}
	switch e {
	case ContentTypeJSON:
		body, err := parseJSON(raw)
		if err != nil {
			return nil, err
		}
		return &JSONResponse{result: res, body: body}, nil
	case ContentTypeText:
		return &TextResponse{result: res, text: string(raw)}, nil
	}
	return nil, unsupportedContentType("cached", string(e))
}

func parseJSON(raw []byte) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &errors.JSONParseError{Body: string(raw), Cause: err}
	}
	return v, nil
}

// lookup resolves a dot path in a JSON document.
func lookup(data []byte, path string) (any, bool) {
	var keys []string
	if path = strings.Trim(path, "."); path != "" {
		keys = strings.Split(path, ".")
		for i, k := range keys {
			if _, err := strconv.Atoi(k); err == nil {
				keys[i] = "[" + k + "]"
			}
		}
	}

	value, typ, _, err := jsonparser.Get(data, keys...)
	if err != nil || typ == jsonparser.NotExist || typ == jsonparser.Null {
		return nil, false
	}
	if typ == jsonparser.String {
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return nil, false
		}
		return s, true
	}
	var v any
	if err := json.Unmarshal(value, &v); err != nil {
		return nil, false
	}
	return v, true
}
