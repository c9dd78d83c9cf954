// Package graphqltest provides a scripted GraphQL endpoint for tests.
package graphqltest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
)

// Request is one operation received by the Server.
type Request struct {
	Operation string
	Query     string
	Variables map[string]any
	Header    http.Header
}

// HandlerFunc returns the "data" object for a request, or an error that is
// reported in the "errors" array.
type HandlerFunc func(req Request) (any, error)

// StatusError makes the Server reply with a bare HTTP status instead of a
// GraphQL response.
type StatusError struct {
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("status %d", e.Code)
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]HandlerFunc
	requests []Request
}

var operationName = regexp.MustCompile(`^\s*(?:query|mutation)\s+(\w+)`)

func NewServer(t testing.TB) *Server {
	s := &Server{handlers: make(map[string]HandlerFunc)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Handle registers h for the operation with the given name.
func (s *Server) Handle(operation string, h HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[operation] = h
}

// Requests returns the received requests for an operation, oldest first.
func (s *Server) Requests(operation string) []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Request
	for _, r := range s.requests {
		if r.Operation == operation {
			out = append(out, r)
		}
	}
	return out
}

// Count returns how many times an operation was received.
func (s *Server) Count(operation string) int {
	return len(s.Requests(operation))
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := Request{
		Query:     body.Query,
		Variables: body.Variables,
		Header:    r.Header.Clone(),
	}
	if m := operationName.FindStringSubmatch(body.Query); m != nil {
		req.Operation = m[1]
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	h := s.handlers[req.Operation]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if h == nil {
		writeErrors(w, fmt.Sprintf("no handler for operation %q", req.Operation))
		return
	}

	data, err := h(req)
	if err != nil {
		if se, ok := err.(StatusError); ok {
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(se.Code)
			_, _ = w.Write([]byte(http.StatusText(se.Code)))
			return
		}
		writeErrors(w, err.Error())
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func writeErrors(w http.ResponseWriter, msg string) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data":   nil,
		"errors": []map[string]any{{"message": msg}},
	})
}
