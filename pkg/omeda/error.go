package omeda

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/parameter1/omeda-go/pkg/errors"
)

// notActivePattern matches the message Omeda returns with a 404 for a
// record that exists but has been deactivated. It is a match on human
// readable text, so it breaks if Omeda rewords the message.
var notActivePattern = regexp.MustCompile(`valid but not active`)

// ErrNotActive matches, via errors.Is, any *ResponseError whose message
// reports a valid but inactive resource.
var ErrNotActive = errors.New(errors.ErrCodeNotActive, "the requested resource is valid but not active")

// ResponseError is a non-2xx API outcome. ContentType tells whether Body
// is a decoded JSON value or text.
type ResponseError struct {
	result
	contentType ContentType
	body        any
	message     string
}

// newResponseError builds the error variant for a classified body.
func newResponseError(ct ContentType, body any, res result) (*ResponseError, error) {
	e := &ResponseError{result: res, contentType: ct, body: body}
	switch ct {
	case ContentTypeJSON:
		e.message = jsonErrorMessage(body)
	case ContentTypeText:
		s, _ := body.(string)
		e.message = strings.TrimSpace(s)
	default:
		return nil, unsupportedContentType("response", string(ct))
	}
	if e.message == "" && res.http != nil {
		e.message = res.http.Status
	}
	return e, nil
}

// jsonErrorMessage joins the Error fields of an Omeda error payload,
// {"Errors":[{"Error":"..."}]}, falling back to a top-level Message.
func jsonErrorMessage(body any) string {
	obj, _ := body.(map[string]any)
	var msgs []string
	if list, ok := obj["Errors"].([]any); ok {
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				if s, ok := m["Error"].(string); ok && s != "" {
					msgs = append(msgs, s)
				}
			}
		}
	}
	if len(msgs) > 0 {
		return strings.Join(msgs, "; ")
	}
	if s, ok := obj["Message"].(string); ok {
		return s
	}
	return ""
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Code(), e.message, e.StatusCode())
}

// Message returns the API error message.
func (e *ResponseError) Message() string { return e.message }

// ContentType returns "json" or "text".
func (e *ResponseError) ContentType() ContentType { return e.contentType }

// Body returns the decoded JSON value or the text.
func (e *ResponseError) Body() any { return e.body }

// IsNotActive reports whether the API rejected the request because the
// resource is valid but not active.
func (e *ResponseError) IsNotActive() bool {
	return notActivePattern.MatchString(e.message)
}

// IsNotFound reports whether the API answered 404.
func (e *ResponseError) IsNotFound() bool {
	return e.StatusCode() == http.StatusNotFound
}

// Code returns NOT_ACTIVE for inactive resources and API_RESPONSE
// otherwise.
func (e *ResponseError) Code() errors.Code {
	if e.IsNotActive() {
		return errors.ErrCodeNotActive
	}
	return errors.ErrCodeAPIResponse
}

// Is lets errors.Is(err, ErrNotActive) select inactive resources.
func (e *ResponseError) Is(target error) bool {
	return target == ErrNotActive && e.IsNotActive()
}

func unsupportedContentType(what, contentType string) error {
	return errors.New(errors.ErrCodeUnsupportedContentType,
		"unsupported %s content type encountered: %q", what, contentType)
}
