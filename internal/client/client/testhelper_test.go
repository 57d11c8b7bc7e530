package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// capturedRequest is what the fake backend saw.
type capturedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   string
}

type mockServer struct {
	server   *httptest.Server
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []capturedRequest
}

func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	ms := &mockServer{handlers: make(map[string]http.HandlerFunc)}
	ms.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		ms.mu.Lock()
		ms.requests = append(ms.requests, capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   string(body),
		})
		var handler http.HandlerFunc
		for prefix, h := range ms.handlers {
			if strings.HasPrefix(r.URL.Path, prefix) {
				handler = h
				break
			}
		}
		ms.mu.Unlock()

		if handler == nil {
			http.NotFound(w, r)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(ms.server.Close)
	return ms
}

func (ms *mockServer) handle(prefix string, h http.HandlerFunc) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.handlers[prefix] = h
}

func (ms *mockServer) last(t *testing.T) capturedRequest {
	t.Helper()
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if len(ms.requests) == 0 {
		t.Fatal("no requests captured")
	}
	return ms.requests[len(ms.requests)-1]
}

func (ms *mockServer) count() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.requests)
}

func jsonResponse(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

func rawResponse(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}
