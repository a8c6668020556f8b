// ABOUTME: Client-side input validation for forms and admin uploads
// ABOUTME: Rejects malformed input as a validation error before any request is sent

package client

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct runs struct tag validation and reports the first few
// problems as a single validation error
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return validationError(err.Error())
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return validationError(strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "url":
		return field + " must be a valid URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "len":
		return fmt.Sprintf("%s must have exactly %s entries", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// ValidateLesson checks a lesson draft without sending it
func ValidateLesson(input LessonInput) error {
	return validateStruct(normalizeLesson(input))
}

// ValidateQuiz checks a quiz upload without sending it
func ValidateQuiz(upload QuizUpload) error {
	return validateStruct(normalizeQuiz(upload))
}

// ValidateField checks one form value against validator tags, naming the
// field in the message. Used by interactive forms before submit.
func ValidateField(field, value, tags string) error {
	err := validate.Var(strings.TrimSpace(value), tags)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		msg := describeFieldError(fieldErrs[0])
		return validationError(field + strings.TrimPrefix(msg, fieldErrs[0].Namespace()))
	}
	return validationError(err.Error())
}

// ValidateSubmission checks that every answer names a question and a letter
func ValidateSubmission(sub QuizSubmission) error {
	return validateStruct(sub)
}

func normalizeLesson(in LessonInput) LessonInput {
	in.Category = strings.TrimSpace(in.Category)
	in.Title = strings.TrimSpace(in.Title)
	in.VideoURL = strings.TrimSpace(in.VideoURL)
	return in
}

func normalizeQuiz(in QuizUpload) QuizUpload {
	out := QuizUpload{LessonID: strings.TrimSpace(in.LessonID)}
	for _, q := range in.Questions {
		nq := QuestionInput{
			Question:      strings.TrimSpace(q.Question),
			CorrectOption: strings.ToUpper(strings.TrimSpace(q.CorrectOption)),
		}
		for _, opt := range q.Options {
			nq.Options = append(nq.Options, strings.TrimSpace(opt))
		}
		out.Questions = append(out.Questions, nq)
	}
	return out
}
