package scoring

import (
	"context"
	"fmt"

	"github.com/okian/slotcap/internal/domain/model"
	"github.com/okian/slotcap/pkg/metrics"
)

// Cursor abstracts the agent-sorted stat stream consumed by the fold.
// Implementations must yield records in ascending agent id order: the fold
// detects group boundaries from contiguous runs of one agent.
type Cursor interface {
	// Next advances the cursor. It returns false at end of stream or when
	// the stream failed; Err distinguishes the two.
	Next(ctx context.Context) bool

	// Stat returns the record at the current position.
	Stat() model.AgentJobStat

	// Err returns the terminal stream error, if any, after Next returned
	// false.
	Err() error
}

// Emit receives one agent's completed accumulation.
type Emit func(ctx context.Context, pts model.AgentPoints) error

// Fold drives a single pass over the stat cursor, accumulating each agent's
// total submissions and net points relative to the per-job baselines, and
// emits once per agent.
//
// An agent matching a job's average approval ratio contributes zero net
// points for that job; over- or under-performing contributes a signed
// delta, summed across every job the agent worked in the window.
//
// The final group is flushed on end of stream, so a stream holding N
// distinct agents produces exactly N emits.
func Fold(ctx context.Context, cur Cursor, baselines map[string]model.JobBaseline, emit Emit) error {
	var (
		acc  model.AgentPoints
		open bool
	)

	for cur.Next(ctx) {
		r := cur.Stat()
		metrics.RecordStatStreamed()

		if !open {
			acc = model.AgentPoints{AgentID: r.AgentID}
			open = true
		} else if r.AgentID != acc.AgentID {
			if err := emit(ctx, acc); err != nil {
				return err
			}
			acc = model.AgentPoints{AgentID: r.AgentID}
		}

		b, ok := baselines[r.JobID]
		if !ok || b.Total == 0 {
			return fmt.Errorf("%w: job %s", ErrMissingBaseline, r.JobID)
		}

		acc.TotalSubmissions += r.Total
		acc.NetPoints += float64(r.Pass) - float64(r.Total)*b.ApprovalRatio
	}
	if err := cur.Err(); err != nil {
		return fmt.Errorf("advance stat stream: %w", err)
	}

	if open {
		if err := emit(ctx, acc); err != nil {
			return err
		}
	}
	return nil
}
