package omeda

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
)

// RequestLog describes one outbound request.
type RequestLog struct {
	ID           string      // per-request uuid
	Method       string      // GET or POST
	Endpoint     string      // cleaned endpoint
	URL          string      // full request URL
	Headers      http.Header // a copy of the request headers
	Body         []byte      // serialized body, nil when absent
	Brand        string
	ClientAbbrev string
	UseStaging   bool
}

// RequestLogger is called synchronously before each request is sent. It
// cannot change or cancel the request.
type RequestLogger func(ctx context.Context, entry RequestLog)

// LogRequests returns a RequestLogger that writes one info line per
// request to l. The App ID header is never logged.
func LogRequests(l *log.Logger) RequestLogger {
	return func(_ context.Context, e RequestLog) {
		kv := []any{
			"id", e.ID,
			"method", e.Method,
			"endpoint", e.Endpoint,
			"brand", e.Brand,
		}
		if e.ClientAbbrev != "" {
			kv = append(kv, "client", e.ClientAbbrev)
		}
		if e.UseStaging {
			kv = append(kv, "staging", true)
		}
		if iid := e.Headers.Get(headerInputID); iid != "" {
			kv = append(kv, "input_id", iid)
		}
		if len(e.Body) > 0 {
			kv = append(kv, "body_bytes", len(e.Body))
		}
		l.Info("omeda request", kv...)
	}
}
