// Package repository defines the review and budget store contracts.
package repository

import (
	"context"

	"github.com/okian/slotcap/internal/domain/model"
	"github.com/okian/slotcap/internal/domain/window"
)

// ReviewStore provides read access to submission review history for one run.
//
// Both queries select the same set: submissions carrying at least one
// expert-review event inside the window, excluding submissions flagged as
// inevitable disqualifications. The earliest qualifying event is the
// submission's representative; its review outcome supplies the pass
// indicator.
type ReviewStore interface {
	// JobBaselines aggregates the selected submissions grouped by job and
	// returns the fully materialized result. Every returned baseline has
	// Total >= 1.
	JobBaselines(ctx context.Context, w window.Window) (map[string]model.JobBaseline, error)

	// AgentJobStats returns a cursor over per-agent-per-job aggregates of
	// the same selected set. Records are ordered by agent id ascending,
	// job id ascending within an agent. The ordering is a contract:
	// consumers fold contiguous runs of one agent and flush on boundary.
	AgentJobStats(ctx context.Context, w window.Window) (StatCursor, error)
}

// StatCursor is a lazy, single-pass stream of agent/job aggregates.
type StatCursor interface {
	// Next advances to the following record, returning false at end of
	// stream or on failure.
	Next(ctx context.Context) bool

	// Stat returns the current record.
	Stat() model.AgentJobStat

	// Err returns the terminal error after Next returned false, or nil on
	// a clean end of stream.
	Err() error

	// Close releases the stream. Safe to call more than once.
	Close()
}

// BudgetStore reads and writes per-agent slot budgets.
type BudgetStore interface {
	// Budget returns the budget for an agent, or ErrAgentNotFound.
	Budget(ctx context.Context, agentID string) (model.AgentBudget, error)

	// SetMaxSlots writes a new slot count for an existing agent and
	// reports the write outcome. Returns ErrAgentNotFound when no budget
	// record exists.
	SetMaxSlots(ctx context.Context, agentID string, maxSlots int) (model.UpdateResult, error)
}
