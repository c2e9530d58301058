package triage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"mailtriage/internal/domain/triage"
)

// ErrEmptyBody is returned by Execute for messages without body text.
var ErrEmptyBody = errors.New("empty message body")

type TriageUseCase struct {
	mailbox     Mailbox
	summarizer  *Summarizer
	categorizer *Categorizer
	responder   *Responder
	flagger     *Flagger
	recorder    RunRecorder
	now         func() time.Time
}

// NewTriageUseCase wires the pipeline. recorder may be nil.
func NewTriageUseCase(
	mailbox Mailbox,
	llm Completer,
	flagger *Flagger,
	recorder RunRecorder,
) *TriageUseCase {
	return &TriageUseCase{
		mailbox:     mailbox,
		summarizer:  NewSummarizer(llm),
		categorizer: NewCategorizer(llm),
		responder:   NewResponder(llm, mailbox),
		flagger:     flagger,
		recorder:    recorder,
		now:         time.Now,
	}
}

// Run triages up to maxEmails inbox messages in the order the mailbox lists them.
// A listing or read fault is logged and skips only what it touches; the run
// stops early only when ctx is cancelled, and the report then holds every
// result produced before that.
func (uc *TriageUseCase) Run(ctx context.Context, maxEmails int64) (*triage.RunReport, error) {
	report := uc.newReport()

	ids, err := uc.mailbox.ListInbox(ctx, maxEmails)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("run interrupted: %w", ctxErr)
			uc.finish(ctx, report, err)
			return report, err
		}
		log.Printf("Error listing emails: %v", err)
		ids = nil
	}
	if maxEmails > 0 && int64(len(ids)) > maxEmails {
		ids = ids[:maxEmails]
	}

	log.Printf("Processing %d emails", len(ids))

	err = uc.process(ctx, report, ids)
	uc.finish(ctx, report, err)
	return report, err
}

// ProcessMessages triages the given message ids in order.
func (uc *TriageUseCase) ProcessMessages(ctx context.Context, messageIDs []string) (*triage.RunReport, error) {
	report := uc.newReport()
	err := uc.process(ctx, report, messageIDs)
	uc.finish(ctx, report, err)
	return report, err
}

// Execute triages a single message. Messages without body text are skipped
// with ErrEmptyBody.
func (uc *TriageUseCase) Execute(ctx context.Context, messageID string) (*triage.ProcessingResult, error) {
	msg, err := uc.mailbox.FetchMessage(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("read message %s: %w", messageID, err)
	}

	if msg.Body == "" {
		return nil, fmt.Errorf("read message %s: %w", messageID, ErrEmptyBody)
	}

	summary := uc.summarizer.Summarize(ctx, msg.Body)
	categorized := uc.categorizer.Categorize(ctx, msg.Body)

	result := triage.NewProcessingResult(msg, summary, categorized, uc.now())
	uc.dispatch(ctx, result)

	log.Printf("OK: %s - category=%s action=%s", messageID, result.Category, result.Action)
	return result, nil
}

func (uc *TriageUseCase) dispatch(ctx context.Context, result *triage.ProcessingResult) {
	switch result.Category {
	case triage.CategoryAutoReply:
		reply := uc.responder.DraftReply(ctx, result.Body, result.Summary)
		if reply == "" {
			log.Printf("No reply drafted for %s, nothing sent", result.MessageID)
			return
		}
		result.Reply = reply
		result.Attach(triage.ActionAutoReply, uc.responder.SendReply(ctx, result.MessageID, reply))

	case triage.CategoryHumanNeeded:
		log.Printf("Flagging email %s as needing human response", result.MessageID)
		result.Attach(triage.ActionFlagImportant, uc.flagger.FlagHumanNeeded(ctx, result.MessageID))

	case triage.CategoryNoResponse:
		log.Printf("Moving email %s to spam", result.MessageID)
		result.Attach(triage.ActionMarkSpam, uc.flagger.MarkSpam(ctx, result.MessageID))

	default:
		log.Printf("No action for %s (category=%s token=%q)", result.MessageID, result.Category, result.Token)
	}

	if !result.Succeeded() {
		log.Printf("Failed to process email %s: %s", result.MessageID, result.Outcome.Error)
	}
}

func (uc *TriageUseCase) process(ctx context.Context, report *triage.RunReport, messageIDs []string) error {
	for _, id := range messageIDs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run interrupted: %w", err)
		}

		result, err := uc.Execute(ctx, id)
		if errors.Is(err, ErrEmptyBody) {
			log.Printf("Empty body for %s, skipping", id)
			continue
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return fmt.Errorf("run interrupted: %w", ctxErr)
			}
			log.Printf("Error reading email %s: %v", id, err)
			continue
		}
		report.Results = append(report.Results, result)
	}
	return nil
}

func (uc *TriageUseCase) newReport() *triage.RunReport {
	return &triage.RunReport{
		ID:        uuid.NewString(),
		StartedAt: uc.now(),
	}
}

func (uc *TriageUseCase) finish(ctx context.Context, report *triage.RunReport, err error) {
	report.Finish(uc.now(), err)

	if err != nil {
		log.Printf("Run %s stopped after %d results: %v", report.ID, len(report.Results), err)
	}

	if uc.recorder == nil {
		return
	}
	if err := uc.recorder.SaveRun(context.WithoutCancel(ctx), report); err != nil {
		log.Printf("Failed to save run %s: %v", report.ID, err)
	}
}
