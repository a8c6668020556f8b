// ABOUTME: Admin operations for user roles, lessons, and quizzes
// ABOUTME: Every admin failure propagates; nothing here falls back to a default

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Users lists every account
func (c *Client) Users(ctx context.Context) ([]Profile, error) {
	var wire []profileWire
	if err := c.get(ctx, "/admin/users", &wire); err != nil {
		return nil, err
	}

	users := make([]Profile, 0, len(wire))
	for _, w := range wire {
		users = append(users, w.toProfile())
	}
	return users, nil
}

// SetAdmin grants or revokes admin rights and returns the backend's message
func (c *Client) SetAdmin(ctx context.Context, userID string, isAdmin bool) (string, error) {
	var msg messageWire
	err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   "/admin/users/" + url.PathEscape(userID) + "/promote",
		query:  url.Values{"is_admin": []string{strconv.FormatBool(isAdmin)}},
	}, &msg)
	if err != nil {
		return "", err
	}
	return msg.Message, nil
}

// Promote grants admin rights
func (c *Client) Promote(ctx context.Context, userID string) (string, error) {
	return c.SetAdmin(ctx, userID, true)
}

// Demote revokes admin rights
func (c *Client) Demote(ctx context.Context, userID string) (string, error) {
	return c.SetAdmin(ctx, userID, false)
}

// AllLessons lists every lesson across categories
func (c *Client) AllLessons(ctx context.Context) ([]LessonSummary, error) {
	var wire []lessonWire
	if err := c.get(ctx, "/admin/lessons", &wire); err != nil {
		return nil, err
	}

	lessons := make([]LessonSummary, 0, len(wire))
	for _, w := range wire {
		lessons = append(lessons, w.toSummary())
	}
	return lessons, nil
}

// CreateLesson validates and publishes a new lesson
func (c *Client) CreateLesson(ctx context.Context, input LessonInput) (*LessonDetail, error) {
	input = normalizeLesson(input)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	var wire lessonWire
	if err := c.sendJSON(ctx, http.MethodPost, "/admin/lessons", input, &wire); err != nil {
		return nil, err
	}
	detail := wire.toDetail()
	return &detail, nil
}

// DeleteLesson removes a lesson with its quiz and rewards
func (c *Client) DeleteLesson(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/admin/lessons/" + url.PathEscape(id)}, nil)
}

// CreateQuiz validates and uploads a quiz, replacing any existing questions
func (c *Client) CreateQuiz(ctx context.Context, upload QuizUpload) (string, error) {
	upload = normalizeQuiz(upload)
	if err := validateStruct(upload); err != nil {
		return "", err
	}

	var msg messageWire
	if err := c.sendJSON(ctx, http.MethodPost, "/admin/quiz", upload, &msg); err != nil {
		return "", err
	}
	return msg.Message, nil
}

// quizFile is the on-disk shape accepted by UploadQuiz. Either a bare list
// of questions or an object with a questions key.
type quizFile struct {
	Questions []QuestionInput `json:"questions" yaml:"questions"`
}

// ParseQuizFile reads questions from JSON or YAML
func ParseQuizFile(data []byte) ([]QuestionInput, error) {
	unmarshal := yaml.Unmarshal
	if json.Valid(data) {
		unmarshal = json.Unmarshal
	}

	var list []QuestionInput
	if err := unmarshal(data, &list); err == nil && len(list) > 0 {
		return list, nil
	}

	var file quizFile
	if err := unmarshal(data, &file); err != nil {
		return nil, validationError(fmt.Sprintf("quiz file is not valid JSON or YAML: %v", err))
	}
	if len(file.Questions) == 0 {
		return nil, validationError("quiz file contains no questions")
	}
	return file.Questions, nil
}

// UploadQuiz parses a question file and uploads it for a lesson
func (c *Client) UploadQuiz(ctx context.Context, lessonID string, data []byte) (string, error) {
	questions, err := ParseQuizFile(data)
	if err != nil {
		return "", err
	}
	return c.CreateQuiz(ctx, QuizUpload{LessonID: lessonID, Questions: questions})
}

// DeleteQuiz removes every question on a lesson
func (c *Client) DeleteQuiz(ctx context.Context, lessonID string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/admin/quiz/" + url.PathEscape(lessonID)}, nil)
}
