package triage

import (
	"context"
	"log"

	"mailtriage/internal/domain/triage"
)

const (
	summarizeSystemPrompt = "You are a helpful assistant that summarizes emails concisely."
	summarizeMaxTokens    = 150
)

type Summarizer struct {
	llm Completer
}

func NewSummarizer(llm Completer) *Summarizer {
	return &Summarizer{llm: llm}
}

// Summarize returns an empty string when no summary could be produced.
func (s *Summarizer) Summarize(ctx context.Context, content string) string {
	summary, err := s.llm.Complete(ctx, triage.Prompt{
		System:    summarizeSystemPrompt,
		User:      "Please summarize this email in 2-3 sentences:\n\n" + content,
		MaxTokens: summarizeMaxTokens,
	})
	if err != nil {
		log.Printf("Error in summarization: %v", err)
		return ""
	}
	return summary
}
