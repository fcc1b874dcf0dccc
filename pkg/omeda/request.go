package omeda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elnormous/contenttype"
	"github.com/google/uuid"

	"github.com/parameter1/omeda-go/pkg/errors"
)

const (
	headerAppID       = "X-Omeda-Appid"
	headerInputID     = "X-Omeda-Inputid"
	headerUserAgent   = "User-Agent"
	headerContentType = "Content-Type"
)

// RequestParams describes a single API call.
type RequestParams struct {
	Method   string // defaults to GET
	Endpoint string // path below the brand or client root, e.g. "comp/*"

	// Body is serialized as JSON, or sent as-is when BodyType is
	// ContentTypeText. Nil sends no body and no Content-Type header.
	Body     any
	BodyType ContentType

	// InputID overrides Config.InputID for this call.
	InputID string

	// ErrorOnNotFound controls 404 handling. Nil means true. When false, a
	// 404 becomes an empty successful response, unless the API reports the
	// resource as valid but not active.
	ErrorOnNotFound *bool

	// UseClientURL selects the client-scoped URL.
	UseClientURL bool
}

// Bool returns a pointer to b, for RequestParams.ErrorOnNotFound.
func Bool(b bool) *bool { return &b }

func (p RequestParams) errorOnNotFound() bool {
	return p.ErrorOnNotFound == nil || *p.ErrorOnNotFound
}

// Request performs one API call without consulting the cache.
//
// A 2xx response is returned as a *JSONResponse or *TextResponse. Other
// statuses fail with a *ResponseError, except that a 404 is turned into an
// empty success when ErrorOnNotFound is false and the error does not
// report an inactive resource.
func (c *Client) Request(ctx context.Context, p RequestParams) (Response, error) {
	start := time.Now()

	if err := errors.ValidateEndpoint(p.Endpoint); err != nil {
		return nil, err
	}
	url, err := c.url(p.Endpoint, p.UseClientURL)
	if err != nil {
		return nil, err
	}
	method := p.Method
	if method == "" {
		method = http.MethodGet
	}

	body, mediaType, err := encodeBody(p.Body, p.BodyType)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "build request for %s", url)
	}
	req.Header.Set(headerAppID, c.appID)
	req.Header.Set(headerUserAgent, c.userAgent)
	if iid := firstNonEmpty(p.InputID, c.inputID); iid != "" {
		req.Header.Set(headerInputID, iid)
	}
	if body != nil {
		req.Header.Set(headerContentType, mediaType)
	}

	id := uuid.NewString()
	if c.requestLogger != nil {
		c.requestLogger(ctx, RequestLog{
			ID:           id,
			Method:       method,
			Endpoint:     CleanPath(p.Endpoint),
			URL:          url,
			Headers:      req.Header.Clone(),
			Body:         body,
			Brand:        c.brand,
			ClientAbbrev: c.clientAbbrev,
			UseStaging:   c.useStaging,
		})
	}
	c.log.Debug("request", "id", id, "method", method, "url", url)

	host, path := req.URL.Host, req.URL.Path
	c.hooks.OnRequest(ctx, method, host, path)

	resp, err := c.http.Do(req)
	if err != nil {
		c.hooks.OnError(ctx, method, host, path, err)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "%s %s", method, url)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.hooks.OnError(ctx, method, host, path, err)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read response body of %s %s", method, url)
	}
	elapsed := time.Since(start)
	c.hooks.OnResponse(ctx, method, host, path, resp.StatusCode, elapsed)
	c.log.Debug("response", "id", id, "status", resp.StatusCode, "elapsed", elapsed)

	ct, parsed, err := classify(resp.Header.Get(headerContentType), raw)
	if err != nil {
		return nil, err
	}
	res := result{raw: raw, http: resp, elapsed: elapsed}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return newResponse(ct, parsed, res)
	}

	apiErr, err := newResponseError(ct, parsed, res)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		if apiErr.IsNotActive() {
			return nil, apiErr
		}
		if !p.errorOnNotFound() {
			return emptyResponse(ct, res)
		}
	}
	return nil, apiErr
}

func (c *Client) url(endpoint string, useClientURL bool) (string, error) {
	if useClientURL {
		return c.ClientURL(endpoint)
	}
	return c.BrandURL(endpoint), nil
}

// encodeBody serializes a request body and returns its media type.
func encodeBody(body any, typ ContentType) ([]byte, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch typ {
	case "", ContentTypeJSON:
		if raw, ok := body.(json.RawMessage); ok {
			return raw, "application/json", nil
		}
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeConfiguration, err, "encode request body")
		}
		return data, "application/json", nil
	case ContentTypeText:
		switch v := body.(type) {
		case string:
			return []byte(v), "text/plain; charset=utf-8", nil
		case []byte:
			return v, "text/plain; charset=utf-8", nil
		case fmt.Stringer:
			return []byte(v.String()), "text/plain; charset=utf-8", nil
		}
		return nil, "", errors.New(errors.ErrCodeUnsupportedContentType, "a text request body must be a string, got %T", body)
	}
	return nil, "", unsupportedContentType("request", string(typ))
}

// classify maps a Content-Type header onto json or text and decodes the
// body accordingly. Every other media type is rejected.
func classify(header string, raw []byte) (ContentType, any, error) {
	mt := contenttype.NewMediaType(header)
	typ, sub := strings.ToLower(mt.Type), strings.ToLower(mt.Subtype)
	switch {
	case typ == "application" && (sub == "json" || strings.HasSuffix(sub, "+json")):
		body, err := parseJSON(raw)
		if err != nil {
			return "", nil, err
		}
		return ContentTypeJSON, body, nil
	case typ == "text":
		return ContentTypeText, string(raw), nil
	}
	return "", nil, unsupportedContentType("API response", header)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
