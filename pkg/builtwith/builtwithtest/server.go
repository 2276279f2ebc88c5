// Package builtwithtest provides an in-process fake of the BuiltWith APIs
// for tests.
//
// The fake serves every endpoint path the client uses under
// /{path}/api.{format}, records each request and answers with canned
// responses:
//
//	srv := builtwithtest.NewServer("test-key")
//	defer srv.Close()
//	srv.Handle("lists5", builtwithtest.Response{Body: "Error: invalid key"})
//
//	client, _ := builtwith.New("test-key", builtwith.FormatJSON, builtwith.WithBaseURL(srv.URL))
//
// Like the real service, a wrong KEY is answered with a 200 and a plain-text
// error message regardless of the requested format.
package builtwithtest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Paths lists every endpoint path the fake serves.
var Paths = []string{"free1", "v14", "lists5", "rv1", "kw2", "trends/v6", "ctu1"}

// InvalidKeyBody is the text answered for a wrong KEY.
const InvalidKeyBody = "Error: invalid key"

// Request is a request received by the fake.
type Request struct {
	Path     string     // Endpoint path, e.g. "trends/v6"
	Format   string     // Extension of the request path: xml, json or txt
	Query    url.Values // Decoded query parameters
	RawQuery string     // Query string as sent
}

// Response is a canned answer. A zero Status means 200.
type Response struct {
	Status      int
	Body        string
	ContentType string
}

// Server is a fake BuiltWith service backed by an httptest.Server.
// It is safe for concurrent use.
type Server struct {
	*httptest.Server

	key string

	mu        sync.Mutex
	responses map[string]Response
	requests  []Request
}

// NewServer starts a fake that accepts key.
func NewServer(key string) *Server {
	s := &Server{
		key:       key,
		responses: make(map[string]Response),
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	for _, p := range Paths {
		r.Get("/"+p+"/api.{format}", s.handle(p))
	}
	return r
}

// Handle sets the response for an endpoint path, replacing the default.
func (s *Server) Handle(path string, resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[path] = resp
}

// Requests returns a copy of every request received so far, in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request. ok is false if none arrived.
func (s *Server) LastRequest() (req Request, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) handle(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := chi.URLParam(r, "format")

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Path:     path,
			Format:   format,
			Query:    r.URL.Query(),
			RawQuery: r.URL.RawQuery,
		})
		resp, ok := s.responses[path]
		s.mu.Unlock()

		if r.URL.Query().Get("KEY") != s.key {
			resp = Response{Body: InvalidKeyBody, ContentType: "text/plain"}
		} else if !ok {
			resp = defaultResponse(format)
		}
		writeResponse(w, resp)
	}
}

func defaultResponse(format string) Response {
	switch format {
	case "json":
		return Response{Body: `{"Results":[],"Errors":[]}`, ContentType: "application/json"}
	case "xml":
		return Response{Body: `<?xml version="1.0" encoding="utf-8"?><Results/>`, ContentType: "application/xml"}
	default:
		return Response{ContentType: "text/plain"}
	}
}

func writeResponse(w http.ResponseWriter, resp Response) {
	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(resp.Body))
}
