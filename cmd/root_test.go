// ABOUTME: Tests for the root command and shared command helpers
// ABOUTME: Provides a fake-backend harness used by every command test

package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/config"
	"github.com/readsmvp/reads-cli/internal/credstore"
)

// setFlag sets a persistent root flag for one test
func setFlag(t *testing.T, name, value string) {
	t.Helper()
	f := rootCmd.PersistentFlags().Lookup(name)
	if f == nil {
		t.Fatalf("no flag %q", name)
	}
	old, oldChanged := f.Value.String(), f.Changed
	if err := f.Value.Set(value); err != nil {
		t.Fatalf("set %s: %v", name, err)
	}
	f.Changed = true
	t.Cleanup(func() {
		f.Value.Set(old)
		f.Changed = oldChanged
	})
}

// useBackend points commands at url with an isolated config dir. A
// non-empty token is used instead of a saved session.
func useBackend(t *testing.T, url, token string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("READS_TOKEN", token)
	t.Setenv("READS_API_URL", "")
	t.Setenv("READS_OUTPUT", "")
	setFlag(t, "config-dir", dir)
	setFlag(t, "api-url", url)
	return dir
}

// fakeBackend serves canned JSON per path and records request paths
func fakeBackend(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
			return
		}
		h(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respond(status int, v any) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, v)
	}
}

func TestOutputFormat_JSONFlagWins(t *testing.T) {
	cfg := &config.Config{Output: "yaml"}
	if got := outputFormat(cfg); got != "yaml" {
		t.Errorf("expected yaml, got %s", got)
	}

	jsonOutput = true
	defer func() { jsonOutput = false }()

	if !IsJSONOutput(cfg) {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestConfigTokenStore(t *testing.T) {
	dir := t.TempDir()

	s := (&config.Config{ConfigDir: dir, Token: "env-token"}).TokenStore()
	if tok, _ := s.Load(); tok != "env-token" {
		t.Errorf("expected env token, got %q", tok)
	}

	s = (&config.Config{ConfigDir: dir, NoPersist: true}).TokenStore()
	if _, ok := s.(*credstore.MemoryStore); !ok {
		t.Errorf("expected memory store for no-persist, got %T", s)
	}

	s = (&config.Config{ConfigDir: dir}).TokenStore()
	fs, ok := s.(*credstore.FileStore)
	if !ok {
		t.Fatalf("expected file store, got %T", s)
	}
	if fs.Path() != (&config.Config{ConfigDir: dir}).SessionPath() {
		t.Errorf("file store path %s does not match session path", fs.Path())
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"already completed", &client.Error{Kind: client.KindAlreadyCompleted}, exitOutcome},
		{"session invalid", &client.Error{Kind: client.KindSessionInvalid}, exitOutcome},
		{"network", &client.Error{Kind: client.KindNetwork}, exitError},
		{"validation", errUsage("bad %s", "input"), exitError},
		{"plain", errors.New("boom"), exitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewSession_InvalidOutput(t *testing.T) {
	useBackend(t, "http://127.0.0.1:1", "")
	setFlag(t, "output", "xml")

	var buf bytes.Buffer
	if _, ok := newSession(&buf); ok {
		t.Fatal("expected session creation to fail")
	}
	if !strings.Contains(buf.String(), "Error:") {
		t.Errorf("expected error message, got %q", buf.String())
	}
}
