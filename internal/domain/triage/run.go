package triage

import "time"

// RunReport is everything one triage run produced, in processing order.
type RunReport struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []*ProcessingResult
	Stats      Stats
	// Err is set when the run stopped before every message was handled.
	Err error
}

func (r *RunReport) Partial() bool {
	return r.Err != nil
}

func (r *RunReport) Finish(at time.Time, err error) {
	r.FinishedAt = at
	r.Err = err
	r.Stats = NewStats(r.Results)
}
