// ABOUTME: Normalized failure type shared by every gateway operation
// ABOUTME: Turns transport errors and non-2xx responses into one Error with a Kind

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

// Kind classifies a gateway failure
type Kind int

const (
	// KindNetwork means no response was received
	KindNetwork Kind = iota
	// KindStructured means the backend sent a {"detail": ...} body
	KindStructured
	// KindUnstructured means the failure body could not be parsed
	KindUnstructured
	// KindSessionInvalid means the profile fetch rejected the credential
	KindSessionInvalid
	// KindAlreadyCompleted means the quiz for this lesson was already finished
	KindAlreadyCompleted
	// KindValidation means the input was rejected before any request
	KindValidation
	// KindDecode means a successful response had an unreadable body
	KindDecode
)

// String returns the kind's name
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStructured:
		return "structured"
	case KindUnstructured:
		return "unstructured"
	case KindSessionInvalid:
		return "session_invalid"
	case KindAlreadyCompleted:
		return "already_completed"
	case KindValidation:
		return "validation"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// excerptLimit caps the raw body text quoted in unstructured failures
const excerptLimit = 120

// maxErrorBody bounds how much of a failure body is read
const maxErrorBody = 64 << 10

// Error is the single failure shape surfaced to callers
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a gateway error
func KindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}

// StatusOf returns the HTTP status behind a gateway error, or 0
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func isKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsAlreadyCompleted reports whether the quiz was already completed
func IsAlreadyCompleted(err error) bool { return isKind(err, KindAlreadyCompleted) }

// IsSessionInvalid reports whether the stored credential was rejected
func IsSessionInvalid(err error) bool { return isKind(err, KindSessionInvalid) }

// IsValidation reports whether input was rejected client-side
func IsValidation(err error) bool { return isKind(err, KindValidation) }

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// handleRequestError converts transport errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	msg := fmt.Sprintf("cannot connect to backend at %s: %v", c.baseURL, err)
	if errors.Is(ctx.Err(), context.Canceled) {
		msg = "request canceled"
	} else if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		msg = "request timed out"
	}
	return &Error{Kind: KindNetwork, Message: msg, Err: err}
}

type detailBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationDetail struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// normalizeResponse parses a non-2xx response. Bodies of the form
// {"detail": "..."} (or FastAPI's list of validation details) become
// structured errors; anything else is quoted as a truncated excerpt.
func normalizeResponse(resp *http.Response) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if msg, ok := parseDetail(body); ok {
		return &Error{Kind: KindStructured, Status: resp.StatusCode, Message: msg}
	}

	msg := fmt.Sprintf("backend returned status %d", resp.StatusCode)
	if ex := excerpt(body); ex != "" {
		msg += ": " + ex
	}
	return &Error{Kind: KindUnstructured, Status: resp.StatusCode, Message: msg}
}

func parseDetail(body []byte) (string, bool) {
	var parsed detailBody
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Detail) == 0 {
		return "", false
	}

	var text string
	if err := json.Unmarshal(parsed.Detail, &text); err == nil {
		if strings.TrimSpace(text) == "" {
			return "", false
		}
		return text, true
	}

	var details []validationDetail
	if err := json.Unmarshal(parsed.Detail, &details); err == nil && len(details) > 0 {
		parts := make([]string, 0, len(details))
		for _, d := range details {
			if field := lastLoc(d.Loc); field != "" {
				parts = append(parts, field+": "+d.Msg)
			} else {
				parts = append(parts, d.Msg)
			}
		}
		return strings.Join(parts, "; "), true
	}

	var lines []string
	if err := json.Unmarshal(parsed.Detail, &lines); err == nil && len(lines) > 0 {
		return strings.Join(lines, "; "), true
	}

	// null, empty lists, objects, and numbers carry no readable message
	return "", false
}

func lastLoc(loc []any) string {
	if len(loc) == 0 {
		return ""
	}
	return fmt.Sprint(loc[len(loc)-1])
}

// excerpt collapses whitespace and truncates to excerptLimit runes
func excerpt(body []byte) string {
	text := strings.Join(strings.Fields(string(body)), " ")
	if utf8.RuneCountInString(text) <= excerptLimit {
		return text
	}
	runes := []rune(text)
	return string(runes[:excerptLimit]) + "..."
}

// alreadyCompletedMarkers are detail fragments the backend uses when a
// learner retakes a finished quiz
var alreadyCompletedMarkers = []string{
	"already completed",
	"already taken",
	"already submitted",
	"already passed",
}

// markAlreadyCompleted reclassifies quiz failures that signal a finished quiz
func markAlreadyCompleted(err error) error {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return err
	}
	if apiErr.Kind != KindStructured && apiErr.Kind != KindUnstructured {
		return err
	}
	if apiErr.Status == http.StatusConflict {
		apiErr.Kind = KindAlreadyCompleted
		return apiErr
	}
	lower := strings.ToLower(apiErr.Message)
	for _, marker := range alreadyCompletedMarkers {
		if strings.Contains(lower, marker) {
			apiErr.Kind = KindAlreadyCompleted
			return apiErr
		}
	}
	return err
}
