package dialog

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/teambot/internal/common"
)

var (
	// ErrMissingLabels reports that the question or answer label is absent.
	ErrMissingLabels = fmt.Errorf("missing question/answer labels: %w", common.ErrValidation)
	// ErrEmptyQA reports that the question or answer is empty after trimming.
	ErrEmptyQA = fmt.Errorf("empty question or answer: %w", common.ErrValidation)
)

// EventDateLayout is the one date format accepted by the add-event flow,
// e.g. "25.12.2024 15:00".
const EventDateLayout = "02.01.2006 15:04"

var (
	answerLabelRe   = regexp.MustCompile(`(?i)answer:\s*`)
	questionLabelRe = regexp.MustCompile(`(?i)question:\s*`)
)

// ParseQA extracts a question and an answer from a combined message of the
// form "Question: ... Answer: ...". Labels are matched case-insensitively.
//
// The text is split at the first answer label; everything up to and including
// the question label is stripped from the head. Both parts are trimmed. A
// missing label or an empty part yields common.ErrValidation; the caller
// ends the dialog, there is no retry for this step.
func ParseQA(text string) (question, answer string, err error) {
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "question") || !strings.Contains(lower, "answer") {
		return "", "", ErrMissingLabels
	}

	parts := answerLabelRe.Split(text, 2)
	if len(parts) != 2 {
		return "", "", ErrMissingLabels
	}

	head := parts[0]
	if loc := questionLabelRe.FindStringIndex(head); loc != nil {
		head = head[loc[1]:]
	}

	question = strings.TrimSpace(head)
	answer = strings.TrimSpace(parts[1])
	if question == "" || answer == "" {
		return "", "", ErrEmptyQA
	}
	return question, answer, nil
}

// ParseEventDate parses the fixed-format event date. Unlike ParseQA, a
// failure here keeps the dialog in the date-awaiting state so the user can
// retry.
func ParseEventDate(text string) (time.Time, error) {
	t, err := time.Parse(EventDateLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, fmt.Errorf("bad event date %q: %w", text, common.ErrValidation)
	}
	return t, nil
}
