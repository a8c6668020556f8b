// ABOUTME: Tests for the sign-in and registration screens
// ABOUTME: Submits against an httptest backend and checks the stored session

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/credstore"
	"github.com/readsmvp/reads-cli/internal/nav"
	"github.com/readsmvp/reads-cli/internal/tui/screen"
)

func authBackend(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/login":
			r.ParseForm()
			if r.PostForm.Get("username") != "ada@example.com" || r.PostForm.Get("password") != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]any{"detail": "Incorrect email or password"})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-login", "token_type": "bearer"})
		case "/api/auth/signup":
			json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-signup", "token_type": "bearer"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// messages runs a command and flattens one level of batching
func messages(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		if c != nil {
			out = append(out, c())
		}
	}
	return out
}

func done(t *testing.T, cmd tea.Cmd) DoneMsg {
	t.Helper()
	for _, m := range messages(cmd) {
		if d, ok := m.(DoneMsg); ok {
			return d
		}
	}
	t.Fatal("no DoneMsg")
	return DoneMsg{}
}

func TestLoginSuccess(t *testing.T) {
	store := credstore.NewMemoryStore("")
	a := New(client.New(authBackend(t).URL, client.WithTokenStore(store)), nav.ToSection(nav.SectionAuth), "")
	a.email, a.password = " ada@example.com ", "secret"

	msg := done(t, a.submit())
	if msg.Err != nil {
		t.Fatalf("unexpected error: %v", msg.Err)
	}
	if tok, _ := store.Load(); tok != "tok-login" {
		t.Errorf("stored token = %q", tok)
	}

	_, cmd := a.Update(msg)
	var reset, signedIn bool
	for _, m := range messages(cmd) {
		switch m := m.(type) {
		case screen.Navigate:
			reset = m.Reset && m.Route == nav.ToSection(nav.SectionDashboard)
		case screen.SignedIn:
			signedIn = true
		}
	}
	if !reset || !signedIn {
		t.Errorf("expected reset to dashboard and SignedIn, got reset=%v signedIn=%v", reset, signedIn)
	}
}

func TestLoginRejected(t *testing.T) {
	store := credstore.NewMemoryStore("")
	a := New(client.New(authBackend(t).URL, client.WithTokenStore(store)), nav.ToSection(nav.SectionAuth), "")
	a.email, a.password = "ada@example.com", "wrong"

	a.Update(done(t, a.submit()))

	if tok, _ := store.Load(); tok != "" {
		t.Error("a failed login must not store anything")
	}
	if !strings.Contains(a.View(), "Incorrect email or password") {
		t.Errorf("expected backend detail in view:\n%s", a.View())
	}
	if a.password != "" || a.email != "ada@example.com" {
		t.Error("password should be cleared and email kept")
	}
}

func TestSignup(t *testing.T) {
	store := credstore.NewMemoryStore("")
	a := New(client.New(authBackend(t).URL, client.WithTokenStore(store)), nav.ToSignup(), "")
	if !a.signup {
		t.Fatal("signup route should build the signup form")
	}
	a.name, a.email, a.password = "Ada Obi", "ada@example.com", "secret"

	if msg := done(t, a.submit()); msg.Err != nil {
		t.Fatalf("unexpected error: %v", msg.Err)
	}
	if tok, _ := store.Load(); tok != "tok-signup" {
		t.Errorf("stored token = %q", tok)
	}
}

func TestToggleForms(t *testing.T) {
	a := New(nil, nav.ToSection(nav.SectionAuth), "")
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if n := cmd().(screen.Navigate); n.Route != nav.ToSignup() {
		t.Errorf("ctrl+n should open signup, got %v", n.Route)
	}

	s := New(nil, nav.ToSignup(), "")
	_, cmd = s.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if n := cmd().(screen.Navigate); n.Route != nav.ToSection(nav.SectionAuth) {
		t.Errorf("ctrl+n should return to sign in, got %v", n.Route)
	}
}

func TestNoticeShown(t *testing.T) {
	a := New(nil, nav.ToSection(nav.SectionAuth), "Session expired, please sign in again")
	if !strings.Contains(a.View(), "Session expired") {
		t.Errorf("expected notice in view:\n%s", a.View())
	}
}

func TestFieldValidators(t *testing.T) {
	if err := validateEmail("nope"); err == nil {
		t.Error("expected invalid email to fail")
	}
	if err := required("name")(""); err == nil || err.Error() != "name is required" {
		t.Errorf("unexpected error %v", err)
	}
	a := New(nil, nav.ToSignup(), "")
	a.password = "secret"
	if err := a.matchPassword("other"); err == nil {
		t.Error("mismatched confirmation should fail")
	}
}
