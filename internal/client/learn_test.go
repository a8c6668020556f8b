// ABOUTME: Tests for categories, lessons, quiz fetch, and quiz submission
// ABOUTME: Covers empty-list defaults and already-completed classification

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func failingServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCategories_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"category": "JAMB", "count": 4},
			{"category": "Chemistry", "count": 1},
		})
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	cats := c.Categories(context.Background())
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(cats))
	}
	if cats[0].Name != "JAMB" || cats[0].Count != 4 || cats[0].Color != "#3B82F6" {
		t.Errorf("unexpected JAMB category %+v", cats[0])
	}
	if cats[1].Color != DefaultCategoryColor {
		t.Errorf("expected default color for Chemistry, got %s", cats[1].Color)
	}
}

func TestListReads_DefaultOnFailure(t *testing.T) {
	server := failingServer(t)
	c, _ := newTestClient(server.URL, "T")
	ctx := context.Background()

	if cats := c.Categories(ctx); cats == nil || len(cats) != 0 {
		t.Errorf("expected empty categories, got %v", cats)
	}
	if lessons := c.Lessons(ctx, "JAMB"); lessons == nil || len(lessons) != 0 {
		t.Errorf("expected empty lessons, got %v", lessons)
	}
	if bal := c.Balance(ctx); bal != 0 {
		t.Errorf("expected zero balance, got %d", bal)
	}
	if hist := c.History(ctx); hist == nil || len(hist) != 0 {
		t.Errorf("expected empty history, got %v", hist)
	}
}

func TestListReads_DefaultOnNetworkError(t *testing.T) {
	c, _ := newTestClient("http://localhost:99999", "T")
	ctx := context.Background()

	if cats := c.Categories(ctx); len(cats) != 0 {
		t.Errorf("expected empty categories, got %v", cats)
	}
	if bal := c.Balance(ctx); bal != 0 {
		t.Errorf("expected zero balance, got %d", bal)
	}
}

func TestLessons_EscapesCategory(t *testing.T) {
	var rawPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawPath = r.URL.EscapedPath()
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": "l-1", "title": "Intro", "category": "POST UTME", "order_index": 0, "video_url": nil, "has_quiz": true},
		})
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	lessons := c.Lessons(context.Background(), "POST UTME")
	if rawPath != "/api/learn/lessons/POST%20UTME" {
		t.Errorf("unexpected path %s", rawPath)
	}
	if len(lessons) != 1 || !lessons[0].HasQuiz || lessons[0].VideoURL != "" {
		t.Errorf("unexpected lessons %+v", lessons)
	}
}

func TestLesson_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/learn/lesson/abc-123" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id": "abc-123", "title": "Intro", "category": "JAMB",
			"content": "# Heading", "video_url": "https://example.com/v", "has_quiz": true,
		})
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	lesson, err := c.Lesson(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lesson.Content != "# Heading" || lesson.VideoURL != "https://example.com/v" {
		t.Errorf("unexpected lesson %+v", lesson)
	}
}

func TestQuiz_AlreadyCompletedByStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{"detail": "Quiz locked"})
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	_, err := c.Quiz(context.Background(), "abc-123")
	if !IsAlreadyCompleted(err) {
		t.Errorf("expected already completed, got %v", err)
	}
}

func TestQuiz_AlreadyCompletedByDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Quiz already completed"})
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	_, err := c.Quiz(context.Background(), "abc-123")
	if !IsAlreadyCompleted(err) {
		t.Errorf("expected already completed, got %v", err)
	}
	if err.Error() != "Quiz already completed" {
		t.Errorf("expected backend detail preserved, got %q", err.Error())
	}
}

func TestQuiz_OtherFailurePropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Lesson not found"})
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	_, err := c.Quiz(context.Background(), "missing")
	if err == nil || IsAlreadyCompleted(err) {
		t.Errorf("expected ordinary failure, got %v", err)
	}
}

func TestQuiz_EmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	questions, err := c.Quiz(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if questions == nil || len(questions) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", questions)
	}
}

func TestSubmitQuiz_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sub QuizSubmission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		if sub.LessonID != "abc-123" || len(sub.Answers) != 2 {
			t.Errorf("unexpected submission %+v", sub)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"score": 100, "correct": 2, "wrong": 0, "tokens_earned": 10, "message": "Passed",
		})
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	result, err := c.SubmitQuiz(context.Background(), QuizSubmission{
		LessonID: "abc-123",
		Answers: []Answer{
			{QuestionID: "q1", Selected: "A"},
			{QuestionID: "q2", Selected: "C"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 100 || result.TokensAwarded != 10 || !result.Passed() {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestSubmitQuiz_AlreadyCompleted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "You have already taken this quiz"})
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	_, err := c.SubmitQuiz(context.Background(), QuizSubmission{
		LessonID: "abc-123",
		Answers:  []Answer{{QuestionID: "q1", Selected: "B"}},
	})
	if !IsAlreadyCompleted(err) {
		t.Errorf("expected already completed, got %v", err)
	}
}

func TestSubmitQuiz_InvalidAnswerSendsNothing(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, "T")
	_, err := c.SubmitQuiz(context.Background(), QuizSubmission{
		LessonID: "abc-123",
		Answers:  []Answer{{QuestionID: "q1", Selected: "E"}},
	})
	if !IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no request, got %d", calls)
	}
}

func TestCategoryColor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"JAMB", "#3B82F6"},
		{"jamb", "#3B82F6"},
		{" WAEC ", "#10B981"},
		{"Post-UTME", "#EC4899"},
		{"Chemistry", DefaultCategoryColor},
		{"", DefaultCategoryColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategoryColor(tt.name); got != tt.want {
				t.Errorf("CategoryColor(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}
