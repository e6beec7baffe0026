package api

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/credstore"
)

// newTestServer starts an HTTP server bound to IPv4-only loopback so tests work
// inside restricted sandboxes that forbid IPv6 listeners.
func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("unable to start test server: %v", err)
	}

	server := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	server.Start()
	t.Cleanup(server.Close)
	return server
}

// newTestClient wires a client and a fresh credential store against the server.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *credstore.Store) {
	t.Helper()

	server := newTestServer(t, handler)

	creds, err := credstore.New(filepath.Join(t.TempDir(), "credentials.json"), "test")
	require.NoError(t, err)

	return NewClient(server.URL, creds, nil), creds
}

// writeData wraps the payload in the API's `{ "data": ... }` envelope.
func writeData(t *testing.T, w http.ResponseWriter, payload any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"data": payload}))
}

// writeError produces the API's nested error shape.
func writeError(t *testing.T, w http.ResponseWriter, status int, message string) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]any{"error": map[string]string{"message": message}}
	require.NoError(t, json.NewEncoder(w).Encode(body))
}
