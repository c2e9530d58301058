package triage

import (
	"context"

	"mailtriage/internal/domain/triage"
)

type Completer interface {
	Complete(ctx context.Context, prompt triage.Prompt) (string, error)
}

type Mailbox interface {
	ListInbox(ctx context.Context, maxResults int64) ([]string, error)
	FetchMessage(ctx context.Context, messageID string) (*triage.Message, error)
	ModifyLabels(ctx context.Context, messageID string, add, remove []string) error
	SendMessage(ctx context.Context, raw []byte, threadID string) (*triage.SentMessage, error)
	ListLabels(ctx context.Context) ([]triage.Label, error)
	CreateLabel(ctx context.Context, spec triage.LabelSpec) (*triage.Label, error)
}

// RunRecorder receives every finished run, partial runs included.
type RunRecorder interface {
	SaveRun(ctx context.Context, run *triage.RunReport) error
}
