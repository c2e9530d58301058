package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/nalgeon/be"
	"mailtriage/internal/domain/triage"
)

type recordingProcessor struct {
	mu      sync.Mutex
	batches [][]string
	active  int
	overlap bool
	err     error
}

func (p *recordingProcessor) ProcessMessages(_ context.Context, ids []string) (*triage.RunReport, error) {
	p.mu.Lock()
	p.active++
	if p.active > 1 {
		p.overlap = true
	}
	p.batches = append(p.batches, ids)
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.active--
		p.mu.Unlock()
	}()

	report := &triage.RunReport{ID: ids[0]}
	report.Finish(report.StartedAt, p.err)
	return report, p.err
}

func TestQueueProcessesBatchesInOrder(t *testing.T) {
	proc := &recordingProcessor{}
	var mu sync.Mutex
	var reports []string

	q := NewQueue(proc, func(r *triage.RunReport) {
		mu.Lock()
		reports = append(reports, r.ID)
		mu.Unlock()
	})

	ctx := context.Background()
	q.Start(ctx)
	be.True(t, q.Submit(ctx, Batch{HistoryID: 1, MessageIDs: []string{"a", "b"}}))
	be.True(t, q.Submit(ctx, Batch{HistoryID: 2, MessageIDs: []string{"c"}}))
	be.True(t, q.Submit(ctx, Batch{HistoryID: 3, MessageIDs: []string{"d"}}))
	q.Shutdown()

	be.Equal(t, proc.batches, [][]string{{"a", "b"}, {"c"}, {"d"}})
	be.Equal(t, reports, []string{"a", "c", "d"})
	be.True(t, !proc.overlap)
}

func TestQueueReportsFailedBatches(t *testing.T) {
	proc := &recordingProcessor{err: errors.New("read message x: boom")}
	var got *triage.RunReport

	q := NewQueue(proc, func(r *triage.RunReport) { got = r })

	ctx := context.Background()
	q.Start(ctx)
	q.Submit(ctx, Batch{HistoryID: 7, MessageIDs: []string{"x"}})
	q.Shutdown()

	be.True(t, got != nil)
	be.True(t, got.Partial())
}

func TestQueueSubmitAfterCancel(t *testing.T) {
	q := NewQueue(&recordingProcessor{}, nil)
	q.jobs = make(chan Batch)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	be.True(t, !q.Submit(ctx, Batch{MessageIDs: []string{"a"}}))
}
