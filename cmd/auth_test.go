// ABOUTME: Tests for the auth commands
// ABOUTME: Verifies login persistence, logout, and local session status

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/credstore"
)

func signedToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestLoginCommand_SavesSession(t *testing.T) {
	server := fakeBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		"POST /api/auth/login": func(w http.ResponseWriter, r *http.Request) {
			r.ParseForm()
			if r.PostForm.Get("username") != "ada@example.com" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect email or password"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"access_token": "tok-1", "token_type": "bearer"})
		},
	})
	dir := useBackend(t, server.URL, "")

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf, "ada@example.com", "secret"); code != exitOK {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Signed in as ada@example.com") {
		t.Errorf("unexpected output %q", buf.String())
	}

	tok, err := credstore.NewFileStore(dir).Load()
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if tok != "tok-1" {
		t.Errorf("expected saved token tok-1, got %q", tok)
	}
}

func TestLoginCommand_Rejected(t *testing.T) {
	server := fakeBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		"POST /api/auth/login": respond(http.StatusUnauthorized, map[string]string{"detail": "Incorrect email or password"}),
	})
	dir := useBackend(t, server.URL, "")

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf, "ada@example.com", "wrong"); code != exitError {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "Incorrect email or password") {
		t.Errorf("expected backend detail in output, got %q", buf.String())
	}
	if tok, _ := credstore.NewFileStore(dir).Load(); tok != "" {
		t.Errorf("expected no saved token, got %q", tok)
	}
}

func TestSignupCommand_ValidationSendsNothing(t *testing.T) {
	var hits int
	server := fakeBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		"POST /api/auth/signup": func(w http.ResponseWriter, r *http.Request) {
			hits++
			writeJSON(w, http.StatusOK, map[string]string{"access_token": "tok"})
		},
	})
	useBackend(t, server.URL, "")

	var buf bytes.Buffer
	code := runSignup(context.Background(), &buf, client.SignupInput{Name: "Ada", Email: "not-an-email", Password: "pw"})
	if code != exitError {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if hits != 0 {
		t.Errorf("expected no request, got %d", hits)
	}
}

func TestLogoutCommand_ClearsSession(t *testing.T) {
	dir := useBackend(t, "http://127.0.0.1:1", "")
	store := credstore.NewFileStore(dir)
	if err := store.Save("tok-1"); err != nil {
		t.Fatalf("save: %v", err)
	}

	var buf bytes.Buffer
	if code := runLogout(context.Background(), &buf); code != exitOK {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if tok, _ := store.Load(); tok != "" {
		t.Errorf("expected session cleared, got %q", tok)
	}
}

func TestAuthStatus_JSON(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	useBackend(t, "http://127.0.0.1:1", signedToken(t, "user-7", now.Add(time.Hour)))
	setFlag(t, "output", "json")

	var buf bytes.Buffer
	if code := runAuthStatus(&buf, now); code != exitOK {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}

	var st authStatus
	if err := json.Unmarshal(buf.Bytes(), &st); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if !st.SignedIn || st.Subject != "user-7" || st.Expired {
		t.Errorf("unexpected status %+v", st)
	}
	if st.Session != "" {
		t.Errorf("expected no session file when a token is supplied, got %q", st.Session)
	}
}

func TestFormatAuthStatus_Expired(t *testing.T) {
	now := time.Now()
	exp := now.Add(-time.Minute)
	table := formatAuthStatus(authStatus{SignedIn: true, Backend: "http://x", ExpiresAt: &exp, Expired: true}, now)

	var found bool
	for _, row := range table.Rows {
		if row[0] == "Expires" && strings.Contains(row[1], "(expired)") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected expired marker in rows %v", table.Rows)
	}
}
