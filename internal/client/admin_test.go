// ABOUTME: Tests for admin role changes, lesson management, and quiz uploads
// ABOUTME: Admin failures must always propagate to the caller

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUsers_ForbiddenPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]string{"detail": "Admin privileges required"})
	}))
	defer server.Close()

	c, store := newTestClient(server.URL, "T")
	_, err := c.Users(context.Background())
	if err == nil || err.Error() != "Admin privileges required" {
		t.Errorf("expected forbidden detail, got %v", err)
	}
	if stored, _ := store.Load(); stored != "T" {
		t.Error("admin failures must not clear the session")
	}
}

func TestSetAdmin_SendsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		if r.URL.Path != "/api/admin/users/u-1/promote" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "User ada@example.com admin status set to " + r.URL.Query().Get("is_admin"),
		})
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	msg, err := c.Promote(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(msg, "true") {
		t.Errorf("expected promote to send is_admin=true, got %q", msg)
	}

	msg, err = c.Demote(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(msg, "false") {
		t.Errorf("expected demote to send is_admin=false, got %q", msg)
	}
}

func TestCreateLesson_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in LessonInput
		json.NewDecoder(r.Body).Decode(&in)
		if in.Title != "Intro" || in.Category != "JAMB" {
			t.Errorf("expected trimmed input, got %+v", in)
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"id": "new-1", "title": in.Title, "category": in.Category, "content": in.Content,
		})
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	lesson, err := c.CreateLesson(context.Background(), LessonInput{
		Category: " JAMB ",
		Title:    "Intro ",
		Content:  "Body",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lesson.ID != "new-1" {
		t.Errorf("expected id new-1, got %s", lesson.ID)
	}
}

func TestCreateLesson_ValidationSendsNothing(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	_, err := c.CreateLesson(context.Background(), LessonInput{Category: "JAMB", VideoURL: "not a url"})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, want := range []string{"title is required", "content is required", "video_url must be a valid URL"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
	if calls != 0 {
		t.Errorf("expected no request, got %d", calls)
	}
}

func TestDeleteLesson_NoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/admin/lessons/l-1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	if err := c.DeleteLesson(context.Background(), "l-1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDeleteQuiz_NotFoundPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Lesson not found"})
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	if err := c.DeleteQuiz(context.Background(), "missing"); err == nil {
		t.Error("expected error")
	}
}

func TestUploadQuiz_ThreeOptionsRejected(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	data := []byte(`[{"question": "2+2?", "options": ["3", "4", "5"], "correct_option": "B"}]`)
	c, _ := newTestClient(server.URL, "T")
	_, err := c.UploadQuiz(context.Background(), "l-1", data)
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "exactly 4") {
		t.Errorf("unexpected message %q", err.Error())
	}
	if calls != 0 {
		t.Errorf("expected no request, got %d", calls)
	}
}

func TestUploadQuiz_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var up QuizUpload
		json.NewDecoder(r.Body).Decode(&up)
		if up.LessonID != "l-1" || len(up.Questions) != 1 || up.Questions[0].CorrectOption != "B" {
			t.Errorf("unexpected upload %+v", up)
		}
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Quiz created successfully"})
	}))
	defer server.Close()

	data := []byte(`
questions:
  - question: "2+2?"
    options: ["3", "4", "5", "6"]
    correct_option: b
`)
	c, _ := newTestClient(server.URL, "T")
	msg, err := c.UploadQuiz(context.Background(), "l-1", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "Quiz created successfully" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestParseQuizFile(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    int
		wantErr bool
	}{
		{"json list", `[{"question":"a","options":["1","2","3","4"],"correct_option":"A"}]`, 1, false},
		{"json object", "{\n\t\"questions\": [{\"question\":\"a\",\"options\":[\"1\",\"2\",\"3\",\"4\"],\"correct_option\":\"A\"}]\n}", 1, false},
		{"yaml list", "- question: a\n  options: [\"1\", \"2\", \"3\", \"4\"]\n  correct_option: A\n- question: b\n  options: [\"1\", \"2\", \"3\", \"4\"]\n  correct_option: C\n", 2, false},
		{"empty object", `{"questions": []}`, 0, true},
		{"garbage", "::: not [ valid", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuizFile([]byte(tt.data))
			if tt.wantErr {
				if !IsValidation(err) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("expected %d questions, got %d", tt.want, len(got))
			}
		})
	}
}
