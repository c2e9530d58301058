package worker

import (
	"context"
	"log"
	"sync"

	"mailtriage/internal/domain/triage"
)

// Batch is a set of message ids to triage in order.
type Batch struct {
	HistoryID  uint64
	MessageIDs []string
}

type Processor interface {
	ProcessMessages(ctx context.Context, messageIDs []string) (*triage.RunReport, error)
}

// Queue runs batches one after another on a single worker, so messages are
// never triaged concurrently.
type Queue struct {
	jobs      chan Batch
	processor Processor
	onReport  func(*triage.RunReport)
	wg        sync.WaitGroup
}

// NewQueue creates a queue. onReport, if set, receives every finished batch.
func NewQueue(processor Processor, onReport func(*triage.RunReport)) *Queue {
	return &Queue{
		jobs:      make(chan Batch, 100),
		processor: processor,
		onReport:  onReport,
	}
}

func (q *Queue) Start(ctx context.Context) {
	log.Println("Triage queue started")

	q.wg.Add(1)
	go q.worker(ctx)
}

// Submit enqueues a batch. It returns false if ctx ends first.
func (q *Queue) Submit(ctx context.Context, batch Batch) bool {
	select {
	case q.jobs <- batch:
		return true
	case <-ctx.Done():
		return false
	}
}

func (q *Queue) Shutdown() {
	close(q.jobs)
	q.wg.Wait()
	log.Println("Triage queue shut down")
}

func (q *Queue) worker(ctx context.Context) {
	defer q.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case batch, ok := <-q.jobs:
			if !ok {
				return
			}

			report, err := q.processor.ProcessMessages(ctx, batch.MessageIDs)
			if err != nil {
				log.Printf("Error processing historyID %d: %v", batch.HistoryID, err)
			}
			if report != nil && q.onReport != nil {
				q.onReport(report)
			}
		}
	}
}
