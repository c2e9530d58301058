package triage

import (
	"context"
	"fmt"
	"log"
	"sync"

	"mailtriage/internal/domain/triage"
)

// DefaultHumanLabel marks messages that wait for a personal answer.
const DefaultHumanLabel = "NEEDS_HUMAN_RESPONSE"

type Flagger struct {
	mailbox   Mailbox
	labelName string

	mu      sync.Mutex
	labelID string
}

func NewFlagger(mailbox Mailbox, labelName string) *Flagger {
	if labelName == "" {
		labelName = DefaultHumanLabel
	}
	return &Flagger{
		mailbox:   mailbox,
		labelName: labelName,
	}
}

// Prepare resolves the custom label up front. Flagging resolves it lazily
// when Prepare was skipped or failed.
func (f *Flagger) Prepare(ctx context.Context) error {
	_, err := f.humanLabelID(ctx)
	return err
}

func (f *Flagger) humanLabelID(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.labelID != "" {
		return f.labelID, nil
	}

	labels, err := f.mailbox.ListLabels(ctx)
	if err != nil {
		return "", fmt.Errorf("list labels: %w", err)
	}
	for _, l := range labels {
		if l.Name == f.labelName {
			f.labelID = l.ID
			return f.labelID, nil
		}
	}

	created, err := f.mailbox.CreateLabel(ctx, triage.LabelSpec{
		Name:                  f.labelName,
		LabelListVisibility:   "labelShow",
		MessageListVisibility: "show",
		BackgroundColor:       "#fb4c2f",
		TextColor:             "#ffffff",
	})
	if err != nil {
		return "", fmt.Errorf("create label %q: %w", f.labelName, err)
	}

	log.Printf("Created new label: %s", f.labelName)
	f.labelID = created.ID
	return f.labelID, nil
}

// FlagHumanNeeded marks the message important, stars it and applies the
// custom label in a single modify call, so repeating it is harmless.
func (f *Flagger) FlagHumanNeeded(ctx context.Context, messageID string) triage.ActionOutcome {
	labelID, err := f.humanLabelID(ctx)
	if err != nil {
		log.Printf("Error flagging email %s: %v", messageID, err)
		return triage.Failed(err)
	}

	add := []string{triage.LabelImportant, labelID, triage.LabelStarred}
	remove := []string{triage.LabelUnimportant}

	if err := f.mailbox.ModifyLabels(ctx, messageID, add, remove); err != nil {
		log.Printf("Error flagging email %s: %v", messageID, err)
		return triage.Failed(fmt.Errorf("modify labels: %w", err))
	}

	out := triage.Succeeded(fmt.Sprintf("Email %s flagged as important and requiring human response", messageID))
	out.LabelIDs = add
	return out
}

func (f *Flagger) MarkSpam(ctx context.Context, messageID string) triage.ActionOutcome {
	add := []string{triage.LabelSpam}
	remove := []string{triage.LabelInbox, triage.LabelUnspam}

	if err := f.mailbox.ModifyLabels(ctx, messageID, add, remove); err != nil {
		log.Printf("Error marking email as spam %s: %v", messageID, err)
		return triage.Failed(fmt.Errorf("modify labels: %w", err))
	}

	out := triage.Succeeded(fmt.Sprintf("Email %s marked as spam", messageID))
	out.LabelIDs = add
	return out
}
