// ABOUTME: Tests for the core gateway request path and failure normalization
// ABOUTME: Uses httptest to stub the backend and inspect outgoing requests

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/readsmvp/reads-cli/internal/credstore"
)

func newTestClient(url, token string) (*Client, *credstore.MemoryStore) {
	store := credstore.NewMemoryStore(token)
	return New(url, WithTokenStore(store)), store
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestAuthHeader_PresentWhenTokenStored(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]int{"token_balance": 5})
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	c.Balance(context.Background())

	if got != "Bearer T" {
		t.Errorf("expected Authorization 'Bearer T', got %q", got)
	}
}

func TestAuthHeader_AbsentWithoutToken(t *testing.T) {
	var present bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		writeJSON(w, http.StatusOK, []any{})
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "")
	c.Categories(context.Background())

	if present {
		t.Error("expected no Authorization header when signed out")
	}
}

func TestRequestPath_UsesAPIRoot(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		writeJSON(w, http.StatusOK, []any{})
	}))
	defer server.Close()

	for _, base := range []string{server.URL, server.URL + "/", server.URL + "/api"} {
		c, _ := newTestClient(base, "")
		c.Categories(context.Background())
		if path != "/api/learn/categories" {
			t.Errorf("base %q: expected /api/learn/categories, got %s", base, path)
		}
	}
}

func TestNormalize_StructuredDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Lesson not found"})
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	_, err := c.Lesson(context.Background(), "abc-123")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Lesson not found" {
		t.Errorf("expected detail message, got %q", err.Error())
	}
	if kind, _ := KindOf(err); kind != KindStructured {
		t.Errorf("expected structured kind, got %s", kind)
	}
	if StatusOf(err) != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", StatusOf(err))
	}
}

func TestNormalize_ValidationListDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{
				{"loc": []any{"body", "email"}, "msg": "value is not a valid email address"},
			},
		})
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "")
	_, err := c.Signup(context.Background(), SignupInput{Name: "Ada", Email: "ada@example.com", Password: "pw"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "email: value is not a valid email address") {
		t.Errorf("expected joined validation detail, got %q", err.Error())
	}
}

func TestNormalize_UnstructuredBody(t *testing.T) {
	body := "<html>" + strings.Repeat("gateway timeout ", 40) + "</html>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(body))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	_, err := c.Lesson(context.Background(), "abc-123")
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "backend returned status 502: <html>gateway timeout") {
		t.Errorf("expected status and excerpt, got %q", msg)
	}
	if !strings.HasSuffix(msg, "...") {
		t.Errorf("expected truncated excerpt, got %q", msg)
	}
	if len(msg) > 200 {
		t.Errorf("expected bounded message length, got %d", len(msg))
	}
	if kind, _ := KindOf(err); kind != KindUnstructured {
		t.Errorf("expected unstructured kind, got %s", kind)
	}
}

func TestNormalize_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	_, err := c.Lesson(context.Background(), "abc-123")
	if err == nil || err.Error() != "backend returned status 500" {
		t.Errorf("expected bare status message, got %v", err)
	}
}

func TestNormalize_UnreadableDetailFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		detail any
	}{
		{"null", nil},
		{"empty list", []any{}},
		{"object", map[string]any{}},
		{"number", 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusBadRequest, map[string]any{"detail": tt.detail})
			}))
			defer server.Close()

			c, _ := newTestClient(server.URL, "T")
			_, err := c.Lesson(context.Background(), "abc-123")
			if kind, _ := KindOf(err); kind != KindUnstructured {
				t.Errorf("expected unstructured kind, got %s", kind)
			}
			if err == nil || !strings.HasPrefix(err.Error(), "backend returned status 400: ") {
				t.Errorf("expected status and excerpt, got %v", err)
			}
		})
	}
}

func TestNormalize_StringListDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": []string{"title missing", "content missing"}})
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	_, err := c.Lesson(context.Background(), "abc-123")
	if err == nil || err.Error() != "title missing; content missing" {
		t.Errorf("expected joined detail, got %v", err)
	}
}

func TestConnectionError(t *testing.T) {
	c, _ := newTestClient("http://localhost:99999", "T")
	_, err := c.Lesson(context.Background(), "abc-123")
	if err == nil {
		t.Fatal("expected connection error, got nil")
	}
	if kind, _ := KindOf(err); kind != KindNetwork {
		t.Errorf("expected network kind, got %s", kind)
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		writeJSON(w, http.StatusOK, map[string]string{"id": "x"})
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Lesson(ctx, "abc-123")
	if err == nil {
		t.Fatal("expected error for canceled context, got nil")
	}
	if err.Error() != "request canceled" {
		t.Errorf("expected 'request canceled', got %q", err.Error())
	}
}

func TestDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	_, err := c.Lesson(context.Background(), "abc-123")
	if kind, _ := KindOf(err); kind != KindDecode {
		t.Errorf("expected decode kind, got %v", err)
	}
}

func TestHealth_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/" {
			t.Errorf("expected path /api/, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("health check should not send credentials")
		}
		writeJSON(w, http.StatusOK, HealthResponse{Message: "$READS Backend MVP is running"})
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.Message, "running") {
		t.Errorf("unexpected message %q", resp.Message)
	}
}
