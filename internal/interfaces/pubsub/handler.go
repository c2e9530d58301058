package pubsub

import (
	"context"
	"log"
	"sync"

	"mailtriage/internal/interfaces/worker"
)

type HistoryFetcher interface {
	FetchNewMessagesSince(ctx context.Context, historyID uint64) ([]string, error)
}

type BatchSubmitter interface {
	Submit(ctx context.Context, batch worker.Batch) bool
}

// Handler turns Gmail history notifications into triage batches. It lists
// history from the last id it has seen, starting at the id returned by the
// watch call, since a notification carries the mailbox's new history id.
type Handler struct {
	queue        BatchSubmitter
	gmailFetcher HistoryFetcher

	mu     sync.Mutex
	cursor uint64
}

func NewHandler(queue BatchSubmitter, gmailFetcher HistoryFetcher, startHistoryID uint64) *Handler {
	return &Handler{
		queue:        queue,
		gmailFetcher: gmailFetcher,
		cursor:       startHistoryID,
	}
}

func (h *Handler) HandleNotification(ctx context.Context, historyID uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	start := h.cursor
	if start == 0 {
		start = historyID
	}

	messageIDs, err := h.gmailFetcher.FetchNewMessagesSince(ctx, start)
	if err != nil {
		log.Printf("Fetch history error: %v", err)
		return
	}
	h.cursor = max(start, historyID)

	if len(messageIDs) == 0 {
		log.Printf("No new messages since historyID: %d", start)
		return
	}

	log.Printf("Found %d new message(s) since historyID: %d", len(messageIDs), start)

	if !h.queue.Submit(ctx, worker.Batch{HistoryID: historyID, MessageIDs: messageIDs}) {
		log.Printf("Dropped historyID %d: shutting down", historyID)
	}
}

// Cursor is the history id the next notification will list from.
func (h *Handler) Cursor() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}
