// ABOUTME: Learning content: categories, lessons, quizzes, and quiz submission
// ABOUTME: List reads default to empty; lesson, quiz, and submit failures propagate

package client

import (
	"context"
	"net/http"
	"net/url"
)

// Categories lists lesson categories, or none when unavailable
func (c *Client) Categories(ctx context.Context) []Category {
	var wire []categoryWire
	if err := c.get(ctx, "/learn/categories", &wire); err != nil {
		c.swallow("categories", err)
		return []Category{}
	}

	categories := make([]Category, 0, len(wire))
	for _, w := range wire {
		categories = append(categories, w.toCategory())
	}
	return categories
}

// Lessons lists a category's lessons in order, or none when unavailable
func (c *Client) Lessons(ctx context.Context, category string) []LessonSummary {
	var wire []lessonWire
	if err := c.get(ctx, "/learn/lessons/"+url.PathEscape(category), &wire); err != nil {
		c.swallow("lessons", err)
		return []LessonSummary{}
	}

	lessons := make([]LessonSummary, 0, len(wire))
	for _, w := range wire {
		lessons = append(lessons, w.toSummary())
	}
	return lessons
}

// Lesson fetches one lesson's full content
func (c *Client) Lesson(ctx context.Context, id string) (*LessonDetail, error) {
	var wire lessonWire
	if err := c.get(ctx, "/learn/lesson/"+url.PathEscape(id), &wire); err != nil {
		return nil, err
	}
	detail := wire.toDetail()
	return &detail, nil
}

// Quiz fetches a lesson's questions. A quiz the learner already finished
// fails with KindAlreadyCompleted.
func (c *Client) Quiz(ctx context.Context, lessonID string) ([]QuizQuestion, error) {
	var questions []QuizQuestion
	if err := c.get(ctx, "/learn/quiz/"+url.PathEscape(lessonID), &questions); err != nil {
		return nil, markAlreadyCompleted(err)
	}
	if questions == nil {
		questions = []QuizQuestion{}
	}
	return questions, nil
}

// SubmitQuiz sends answers for grading. The score and any token award come
// from the backend; nothing is computed here.
func (c *Client) SubmitQuiz(ctx context.Context, sub QuizSubmission) (*QuizResult, error) {
	if err := ValidateSubmission(sub); err != nil {
		return nil, err
	}

	var wire quizResultWire
	if err := c.sendJSON(ctx, http.MethodPost, "/learn/quiz/submit", sub, &wire); err != nil {
		return nil, markAlreadyCompleted(err)
	}
	result := wire.toResult()
	return &result, nil
}
