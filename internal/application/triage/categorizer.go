package triage

import (
	"context"
	"fmt"
	"log"

	"mailtriage/internal/domain/triage"
)

const (
	categorizeSystemPrompt = "You are an expert email analyst who categorizes emails accurately."
	categorizeTemperature  = 0.3
)

const categorizeUserPrompt = `Analyze this email and categorize it into one of these categories:
1. HUMAN_NEEDED: Requires personal attention and human response
2. AUTO_REPLY: Can be handled with an automated response
3. NO_RESPONSE: No response required

Consider these guidelines:
- HUMAN_NEEDED: Complex inquiries, important business matters, personal matters,
  negotiations, complaints, or anything requiring human judgment
- AUTO_REPLY: Simple inquiries, confirmations, routine requests, status updates,
  or anything with standard/predictable responses
- NO_RESPONSE: FYI emails, newsletters, marketing, notifications, or spam

Respond with only the category (HUMAN_NEEDED, AUTO_REPLY, or NO_RESPONSE)
on the first line, followed by a brief explanation.

Email content:
%s`

type Categorizer struct {
	llm Completer
}

func NewCategorizer(llm Completer) *Categorizer {
	return &Categorizer{llm: llm}
}

// Categorize never fails: completion faults come back as CategoryError.
func (c *Categorizer) Categorize(ctx context.Context, content string) triage.CategoryResult {
	resp, err := c.llm.Complete(ctx, triage.Prompt{
		System:      categorizeSystemPrompt,
		User:        fmt.Sprintf(categorizeUserPrompt, content),
		Temperature: categorizeTemperature,
	})
	if err != nil {
		log.Printf("Error in categorization: %v", err)
		return triage.NewErrorResult(err, content)
	}

	return triage.ParseCategoryResponse(resp, content)
}
