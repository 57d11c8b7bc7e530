package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/embario/jukeclient/internal/client/appmeta"
	"github.com/embario/jukeclient/internal/client/client"
	"github.com/embario/jukeclient/internal/client/credentials"
	"github.com/embario/jukeclient/internal/client/models"
)

type capturedRequest struct {
	Method  string
	Path    string
	RawPath string
	Query   map[string]string
	Header  http.Header
	Body    string
}

// mockServer is a fake Juke backend routing on "METHOD /exact/path/".
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
		query := make(map[string]string)
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}

		ms.mu.Lock()
		ms.requests = append(ms.requests, capturedRequest{
			Method:  r.Method,
			Path:    r.URL.Path,
			RawPath: r.URL.EscapedPath(),
			Query:   query,
			Header:  r.Header.Clone(),
			Body:    string(body),
		})
		h, ok := ms.handlers[r.Method+" "+r.URL.Path]
		ms.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(ms.server.Close)
	return ms
}

func (ms *mockServer) handle(route string, h http.HandlerFunc) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.handlers[route] = h
}

func (ms *mockServer) count() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.requests)
}

// find returns the captured requests for a route.
func (ms *mockServer) find(route string) []capturedRequest {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	var out []capturedRequest
	for _, r := range ms.requests {
		if r.Method+" "+r.Path == route {
			out = append(out, r)
		}
	}
	return out
}

func (ms *mockServer) only(t *testing.T, route string) capturedRequest {
	t.Helper()
	reqs := ms.find(route)
	require.Len(t, reqs, 1, "requests to %s", route)
	return reqs[0]
}

func jsonResponse(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

func statusResponse(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}
}

// recordingScoped records Forget calls.
type recordingScoped struct {
	mu     sync.Mutex
	calls  []string
	forget error
}

func (r *recordingScoped) Forget(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, username)
	return r.forget
}

func (r *recordingScoped) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type fixture struct {
	srv     *mockServer
	store   *credentials.Store
	meta    *appmeta.Store
	exec    *client.HTTPClient
	auth    AuthService
	scoped  *recordingScoped
	catalog CatalogService
	profile ProfileService
}

func newFixture(t *testing.T, opts AuthOptions) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "juke.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	srv := newMockServer(t)
	exec, err := client.NewHTTPClient(srv.server.URL, 5*time.Second)
	require.NoError(t, err)

	f := &fixture{
		srv:    srv,
		store:  credentials.NewStore(db, "juke", nil),
		meta:   appmeta.NewStore(db, "juke"),
		exec:   exec,
		scoped: &recordingScoped{},
	}
	opts.Scoped = append(opts.Scoped, f.scoped, f.meta)
	f.auth = NewAuthService(exec, f.store, opts)
	f.catalog = NewCatalogService(exec, f.auth, nil)
	f.profile = NewProfileService(exec, f.store, f.meta, nil)
	return f
}

func (f *fixture) signIn(t *testing.T, username, token string) {
	t.Helper()
	require.NoError(t, f.store.Save(context.Background(), models.Snapshot{Username: username, Token: token}))
}

func (f *fixture) current(t *testing.T) *models.Snapshot {
	t.Helper()
	snap, err := f.store.Current(context.Background())
	require.NoError(t, err)
	return snap
}

func next(t *testing.T, sub *credentials.Subscription) *models.Snapshot {
	t.Helper()
	select {
	case v, ok := <-sub.Updates():
		require.True(t, ok, "subscription closed")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for session update")
		return nil
	}
}

// expectQuiet fails if sub delivers anything within a short window.
func expectQuiet(t *testing.T, sub *credentials.Subscription) {
	t.Helper()
	select {
	case v, ok := <-sub.Updates():
		if ok {
			t.Fatalf("unexpected session update: %+v", v)
		}
	case <-time.After(100 * time.Millisecond):
	}
}
