// Package omedatest provides a fake Omeda API server for tests.
//
//	srv := omedatest.NewServer(t, "ACME")
//	srv.JSON(http.MethodGet, "comp/*", http.StatusOK, map[string]any{"Id": 1})
//	client, _ := omeda.New(omeda.Config{AppID: "app", Brand: "ACME", BaseURL: srv.URL})
//
// Routes are registered relative to the brand root
// (/webservices/rest/brand/{brand}/) or, with the Client variants, the
// client root. Every request is counted and recorded.
package omedatest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Request is a recorded request.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Server is an httptest server that routes Omeda API paths.
type Server struct {
	*httptest.Server

	brand  string
	router chi.Router

	mu       sync.Mutex
	hits     map[string]int
	requests []Request
}

// NewServer starts a server for brand. It is closed when the test ends.
func NewServer(t testing.TB, brand string) *Server {
	t.Helper()
	s := &Server{
		brand:  brand,
		router: chi.NewRouter(),
		hits:   make(map[string]int),
	}
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.record)
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"Errors":[{"Error":"No route for `+r.URL.Path+`"}]}`)
	})
	s.Server = httptest.NewServer(s.router)
	t.Cleanup(s.Close)
	return s
}

// BrandPath returns the URL path of a brand endpoint.
func (s *Server) BrandPath(endpoint string) string {
	return "/webservices/rest/brand/" + s.brand + "/" + strings.Trim(endpoint, "/")
}

// ClientPath returns the URL path of a client endpoint.
func ClientPath(client, endpoint string) string {
	return "/webservices/rest/client/" + client + "/" + strings.Trim(endpoint, "/")
}

// Handle registers h for a brand endpoint.
func (s *Server) Handle(method, endpoint string, h http.HandlerFunc) {
	s.router.Method(method, s.BrandPath(endpoint), h)
}

// HandlePath registers h for an absolute URL path.
func (s *Server) HandlePath(method, path string, h http.HandlerFunc) {
	s.router.Method(method, path, h)
}

// JSON answers a brand endpoint with a JSON body.
func (s *Server) JSON(method, endpoint string, status int, body any) {
	s.Handle(method, endpoint, JSONHandler(status, body))
}

// Text answers a brand endpoint with a text/plain body.
func (s *Server) Text(method, endpoint string, status int, body string) {
	s.Handle(method, endpoint, RawHandler(status, "text/plain; charset=utf-8", []byte(body)))
}

// Hits returns how many requests reached a URL path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// TotalHits returns the number of requests received.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Requests returns the recorded requests in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, or the zero Request.
func (s *Server) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.hits[r.URL.Path]++
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// JSONHandler writes body as application/json with status.
func JSONHandler(status int, body any) http.HandlerFunc {
	data, err := json.Marshal(body)
	if err != nil {
		panic("omedatest: marshal body: " + err.Error())
	}
	return RawHandler(status, "application/json; charset=utf-8", data)
}

// RawHandler writes body with the given Content-Type and status. An empty
// contentType sends no Content-Type header.
func RawHandler(status int, contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		} else {
			// Stop net/http from sniffing one.
			w.Header()["Content-Type"] = nil
		}
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}
}

// NotFound answers with Omeda's JSON 404 payload carrying msg.
func NotFound(msg string) http.HandlerFunc {
	return JSONHandler(http.StatusNotFound, ErrorBody(msg))
}

// ErrorBody returns an Omeda error payload: {"Errors":[{"Error":msg}]}.
func ErrorBody(msgs ...string) map[string]any {
	list := make([]any, 0, len(msgs))
	for _, m := range msgs {
		list = append(list, map[string]any{"Error": m})
	}
	return map[string]any{"Errors": list}
}
