package triage

import "time"

type Action string

const (
	ActionNone          Action = "none"
	ActionAutoReply     Action = "auto_reply"
	ActionFlagImportant Action = "flag_important"
	ActionMarkSpam      Action = "mark_spam"
)

// ActionOutcome is the result of one mutating call against the mailbox.
type ActionOutcome struct {
	Success bool
	Message string
	Error   string

	SentMessageID string
	ThreadID      string
	LabelIDs      []string
}

func Succeeded(message string) ActionOutcome {
	return ActionOutcome{Success: true, Message: message}
}

func Failed(err error) ActionOutcome {
	return ActionOutcome{Success: false, Error: err.Error()}
}

type ProcessingResult struct {
	MessageID      string
	Subject        string
	From           string
	Body           string
	Summary        string
	Category       Category
	Token          string
	Explanation    string
	ContentPreview string
	ProcessedAt    time.Time

	Action Action
	// Reply is the drafted auto-response, set only for ActionAutoReply.
	Reply   string
	Outcome *ActionOutcome
}

func NewProcessingResult(msg *Message, summary string, cr CategoryResult, at time.Time) *ProcessingResult {
	return &ProcessingResult{
		MessageID:      msg.ID,
		Subject:        msg.Subject,
		From:           msg.From,
		Body:           msg.Body,
		Summary:        summary,
		Category:       cr.Category,
		Token:          cr.Token,
		Explanation:    cr.Explanation,
		ContentPreview: cr.ContentPreview,
		ProcessedAt:    at,
		Action:         ActionNone,
	}
}

// Attach records the outcome of the single disposition action.
func (r *ProcessingResult) Attach(action Action, outcome ActionOutcome) {
	r.Action = action
	r.Outcome = &outcome
}

func (r *ProcessingResult) Succeeded() bool {
	return r.Outcome == nil || r.Outcome.Success
}

type Stats map[Category]int

func NewStats(results []*ProcessingResult) Stats {
	stats := make(Stats)
	for _, r := range results {
		stats[r.Category]++
	}
	return stats
}

func (s Stats) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}
