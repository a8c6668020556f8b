// ABOUTME: Tests for the status and profile commands
// ABOUTME: Verifies the dashboard summary output and session-invalid exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/credstore"
)

// learnerRoutes answers the profile reads for a signed-in learner
func learnerRoutes() map[string]func(http.ResponseWriter, *http.Request) {
	return map[string]func(http.ResponseWriter, *http.Request){
		"GET /api/profile": respond(http.StatusOK, map[string]any{
			"id":         "2f4e9a4c-5b1d-4c8e-9d3a-6f7b8c9d0e1f",
			"name":       "Ada Obi",
			"email":      "ada@example.com",
			"is_admin":   false,
			"created_at": "2024-03-01T10:00:00",
		}),
		"GET /api/profile/stats": respond(http.StatusOK, map[string]int{"lessons_completed": 3, "quizzes_taken": 4}),
		"GET /api/wallet/balance": respond(http.StatusOK, map[string]int{"token_balance": 50}),
	}
}

func TestFormatStatusHuman(t *testing.T) {
	sum := &client.Summary{
		Profile: client.Profile{Name: "Ada", IsAdmin: true},
		Stats:   client.Stats{LessonsCompleted: 3, QuizzesTaken: 4},
		Balance: 50,
	}

	output := formatStatusHuman(sum)

	for _, want := range []string{"Welcome back, Ada (admin)", "50 $READS", "3", "4"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestStatusCommand_Success(t *testing.T) {
	server := fakeBackend(t, learnerRoutes())
	useBackend(t, server.URL, "tok")

	var buf bytes.Buffer
	if code := runStatus(context.Background(), &buf); code != exitOK {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Welcome back, Ada Obi") {
		t.Errorf("unexpected output %q", buf.String())
	}
	if !strings.Contains(buf.String(), "50 $READS") {
		t.Errorf("expected balance in output, got %q", buf.String())
	}
}

func TestStatusCommand_JSON(t *testing.T) {
	server := fakeBackend(t, learnerRoutes())
	useBackend(t, server.URL, "tok")
	setFlag(t, "json", "true")

	var buf bytes.Buffer
	if code := runStatus(context.Background(), &buf); code != exitOK {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}

	var sum client.Summary
	if err := json.Unmarshal(buf.Bytes(), &sum); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if sum.Balance != 50 || sum.Stats.QuizzesTaken != 4 || sum.Profile.Email != "ada@example.com" {
		t.Errorf("unexpected summary %+v", sum)
	}
}

func TestStatusCommand_StatsDownStillSucceeds(t *testing.T) {
	routes := learnerRoutes()
	routes["GET /api/profile/stats"] = respond(http.StatusInternalServerError, map[string]string{"detail": "db down"})
	server := fakeBackend(t, routes)
	useBackend(t, server.URL, "tok")

	var buf bytes.Buffer
	if code := runStatus(context.Background(), &buf); code != exitOK {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Quizzes taken:     0") {
		t.Errorf("expected zero stats, got %q", buf.String())
	}
}

func TestProfileCommand_SessionInvalid(t *testing.T) {
	server := fakeBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /api/profile": respond(http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"}),
	})
	dir := useBackend(t, server.URL, "")
	store := credstore.NewFileStore(dir)
	store.Save("stale")

	var buf bytes.Buffer
	if code := runProfile(context.Background(), &buf); code != exitOutcome {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if tok, _ := store.Load(); tok != "" {
		t.Errorf("expected stale session cleared, got %q", tok)
	}
}

func TestProfileCommand_Table(t *testing.T) {
	server := fakeBackend(t, learnerRoutes())
	useBackend(t, server.URL, "tok")

	var buf bytes.Buffer
	if code := runProfile(context.Background(), &buf); code != exitOK {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	for _, want := range []string{"Ada Obi", "learner", "2024-03-01", "ui-avatars.com"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in output:\n%s", want, buf.String())
		}
	}
}
