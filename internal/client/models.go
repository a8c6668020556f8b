// ABOUTME: Wire formats and view models for the $READS backend API
// ABOUTME: Converts raw backend payloads into the shapes screens and commands render

package client

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Token is the credential pair returned by login and signup
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// SignupInput is the registration payload
type SignupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Profile is the authenticated user's identity
type Profile struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Email     string    `json:"email" yaml:"email"`
	IsAdmin   bool      `json:"is_admin" yaml:"is_admin"`
	JoinedAt  time.Time `json:"joined_at" yaml:"joined_at"`
	AvatarURL string    `json:"avatar_url" yaml:"avatar_url"`
}

// Stats aggregates a user's learning progress
type Stats struct {
	LessonsCompleted int `json:"lessons_completed" yaml:"lessons_completed"`
	QuizzesTaken     int `json:"quizzes_taken" yaml:"quizzes_taken"`
}

// Category groups lessons under a display color
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
	Color string `json:"color" yaml:"color"`
}

// LessonSummary is a lesson as it appears in a list
type LessonSummary struct {
	ID         string `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Category   string `json:"category" yaml:"category"`
	OrderIndex int    `json:"order_index" yaml:"order_index"`
	VideoURL   string `json:"video_url,omitempty" yaml:"video_url,omitempty"`
	HasQuiz    bool   `json:"has_quiz" yaml:"has_quiz"`
}

// LessonDetail adds the body to a summary. Content is rendered as-is.
type LessonDetail struct {
	LessonSummary `yaml:",inline"`
	Content       string `json:"content" yaml:"content"`
}

// QuizQuestion never carries the correct answer
type QuizQuestion struct {
	ID       string   `json:"id" yaml:"id"`
	Question string   `json:"question" yaml:"question"`
	Options  []string `json:"options" yaml:"options"`
}

// Answer is one selected option letter for a question
type Answer struct {
	QuestionID string `json:"question_id" validate:"required"`
	Selected   string `json:"selected" validate:"required,oneof=A B C D"`
}

// QuizSubmission is the full set of answers for a lesson's quiz
type QuizSubmission struct {
	LessonID string   `json:"lesson_id" validate:"required"`
	Answers  []Answer `json:"answers" validate:"required,min=1,dive"`
}

// QuizResult is the backend's grading outcome
type QuizResult struct {
	Score         int    `json:"score" yaml:"score"`
	Correct       int    `json:"correct" yaml:"correct"`
	Wrong         int    `json:"wrong" yaml:"wrong"`
	TokensAwarded int    `json:"tokens_awarded" yaml:"tokens_awarded"`
	Message       string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Passed reports whether any tokens were awarded
func (r QuizResult) Passed() bool {
	return r.TokensAwarded > 0
}

// History entry kinds
const (
	HistoryReward = "reward"
	HistoryOther  = "other"
)

// HistoryEntry is one wallet movement. Amount is signed.
type HistoryEntry struct {
	ID     string    `json:"id" yaml:"id"`
	Title  string    `json:"title" yaml:"title"`
	Amount int       `json:"amount" yaml:"amount"`
	Date   time.Time `json:"date" yaml:"date"`
	Kind   string    `json:"kind" yaml:"kind"`
}

// LessonInput is the admin payload for a new lesson
type LessonInput struct {
	Category   string `json:"category" validate:"required"`
	Title      string `json:"title" validate:"required,max=200"`
	Content    string `json:"content" validate:"required"`
	VideoURL   string `json:"video_url,omitempty" validate:"omitempty,url"`
	OrderIndex int    `json:"order_index" validate:"gte=0"`
}

// QuestionInput is one authored question with its answer key
type QuestionInput struct {
	Question      string   `json:"question" yaml:"question" validate:"required"`
	Options       []string `json:"options" yaml:"options" validate:"len=4,dive,required"`
	CorrectOption string   `json:"correct_option" yaml:"correct_option" validate:"required,oneof=A B C D"`
}

// QuizUpload replaces every question on a lesson
type QuizUpload struct {
	LessonID  string          `json:"lesson_id" validate:"required"`
	Questions []QuestionInput `json:"questions" validate:"required,min=1,dive"`
}

// Wire formats as returned by the backend

type profileWire struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
}

type categoryWire struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type lessonWire struct {
	ID         string  `json:"id"`
	Category   string  `json:"category"`
	Title      string  `json:"title"`
	OrderIndex int     `json:"order_index"`
	Content    string  `json:"content"`
	VideoURL   *string `json:"video_url"`
	HasQuiz    bool    `json:"has_quiz"`
}

type balanceWire struct {
	TokenBalance int `json:"token_balance"`
}

type historyWire struct {
	ID           string `json:"id"`
	LessonTitle  string `json:"lesson_title"`
	TokensEarned int    `json:"tokens_earned"`
	CreatedAt    string `json:"created_at"`
	Type         string `json:"type"`
}

type quizResultWire struct {
	Score         int    `json:"score"`
	Correct       int    `json:"correct"`
	Wrong         int    `json:"wrong"`
	TokensAwarded *int   `json:"tokens_awarded"`
	TokensEarned  *int   `json:"tokens_earned"`
	Message       string `json:"message"`
}

type messageWire struct {
	Message string `json:"message"`
}

func (w profileWire) toProfile() Profile {
	return Profile{
		ID:        w.ID,
		Name:      w.Name,
		Email:     w.Email,
		IsAdmin:   w.IsAdmin,
		JoinedAt:  parseTimestamp(w.CreatedAt),
		AvatarURL: AvatarURL(w.Name),
	}
}

func (w categoryWire) toCategory() Category {
	return Category{
		ID:    w.Category,
		Name:  w.Category,
		Count: w.Count,
		Color: CategoryColor(w.Category),
	}
}

func (w lessonWire) toSummary() LessonSummary {
	s := LessonSummary{
		ID:         w.ID,
		Title:      w.Title,
		Category:   w.Category,
		OrderIndex: w.OrderIndex,
		HasQuiz:    w.HasQuiz,
	}
	if w.VideoURL != nil {
		s.VideoURL = *w.VideoURL
	}
	return s
}

func (w lessonWire) toDetail() LessonDetail {
	return LessonDetail{LessonSummary: w.toSummary(), Content: w.Content}
}

func (w historyWire) toEntry() HistoryEntry {
	kind := HistoryOther
	if strings.EqualFold(w.Type, "reward") {
		kind = HistoryReward
	}
	return HistoryEntry{
		ID:     w.ID,
		Title:  w.LessonTitle,
		Amount: w.TokensEarned,
		Date:   parseTimestamp(w.CreatedAt),
		Kind:   kind,
	}
}

func (w quizResultWire) toResult() QuizResult {
	r := QuizResult{
		Score:   w.Score,
		Correct: w.Correct,
		Wrong:   w.Wrong,
		Message: w.Message,
	}
	switch {
	case w.TokensAwarded != nil:
		r.TokensAwarded = *w.TokensAwarded
	case w.TokensEarned != nil:
		r.TokensAwarded = *w.TokensEarned
	}
	return r
}

// avatarBase renders initials avatars for users without uploaded pictures
const avatarBase = "https://ui-avatars.com/api/"

// AvatarURL derives a stable avatar image URL from a display name
func AvatarURL(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "?"
	}
	q := url.Values{}
	q.Set("name", name)
	q.Set("background", "7C3AED")
	q.Set("color", "FFFFFF")
	return fmt.Sprintf("%s?%s", avatarBase, q.Encode())
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02",
}

// parseTimestamp accepts the backend's ISO timestamps with or without zone.
// Unparseable values yield the zero time.
func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
