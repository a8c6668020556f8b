// ABOUTME: Argument parsing shared by subcommands
// ABOUTME: Backend ids are UUIDs and are checked before any request

package cmd

import (
	"strings"

	"github.com/google/uuid"
	"github.com/readsmvp/reads-cli/internal/client"
)

// parseID validates a UUID argument and returns its canonical form
func parseID(kind, raw string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", errUsage("invalid %s id %q: expected a UUID", kind, raw)
	}
	return id.String(), nil
}

// parseAnswers turns "questionID=B" pairs into answers
func parseAnswers(pairs []string) ([]client.Answer, error) {
	answers := make([]client.Answer, 0, len(pairs))
	for _, p := range pairs {
		qid, letter, ok := strings.Cut(p, "=")
		qid = strings.TrimSpace(qid)
		letter = strings.ToUpper(strings.TrimSpace(letter))
		if !ok || qid == "" || letter == "" {
			return nil, errUsage("invalid answer %q: expected <question-id>=<A-D>", p)
		}
		answers = append(answers, client.Answer{QuestionID: qid, Selected: letter})
	}
	return answers, nil
}
