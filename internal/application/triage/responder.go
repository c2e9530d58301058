package triage

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"mailtriage/internal/domain/triage"
)

const (
	replySystemPrompt = "You are a professional email assistant. Generate helpful, clear, and appropriate responses."
	replyTemperature  = 0.7
)

const replyUserPrompt = `Generate a professional and helpful email response. The response should:
1. Be concise but friendly
2. Address the main points/questions
3. Use appropriate tone based on the original email
4. Include a professional signature
5. Be self-contained (recipient shouldn't need to see original email)

Context:
Original Email: %s
Summary: %s`

type Responder struct {
	llm     Completer
	mailbox Mailbox
	now     func() time.Time
}

func NewResponder(llm Completer, mailbox Mailbox) *Responder {
	return &Responder{
		llm:     llm,
		mailbox: mailbox,
		now:     time.Now,
	}
}

// DraftReply returns an empty string when the completion fails.
func (r *Responder) DraftReply(ctx context.Context, content, summary string) string {
	if summary == "" {
		summary = "Not provided"
	}

	reply, err := r.llm.Complete(ctx, triage.Prompt{
		System:      replySystemPrompt,
		User:        fmt.Sprintf(replyUserPrompt, content, summary),
		Temperature: replyTemperature,
	})
	if err != nil {
		log.Printf("Error generating response: %v", err)
		return ""
	}
	return strings.TrimSpace(reply)
}

// SendReply answers originalID in its own thread, addressed to the original sender.
func (r *Responder) SendReply(ctx context.Context, originalID, text string) triage.ActionOutcome {
	original, err := r.mailbox.FetchMessage(ctx, originalID)
	if err != nil {
		log.Printf("Error sending response to %s: %v", originalID, err)
		return triage.Failed(fmt.Errorf("fetch original: %w", err))
	}

	reply := triage.NewReply(original, text)

	raw, err := composeReply(reply, r.now())
	if err != nil {
		log.Printf("Error sending response to %s: %v", originalID, err)
		return triage.Failed(fmt.Errorf("compose reply: %w", err))
	}

	sent, err := r.mailbox.SendMessage(ctx, raw, reply.ThreadID)
	if err != nil {
		log.Printf("Error sending response to %s: %v", originalID, err)
		return triage.Failed(fmt.Errorf("send reply: %w", err))
	}

	out := triage.Succeeded(fmt.Sprintf("Reply to %s sent to %s", originalID, reply.To))
	out.SentMessageID = sent.ID
	out.ThreadID = reply.ThreadID
	return out
}
