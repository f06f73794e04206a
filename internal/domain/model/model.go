// Package model contains domain models passed between layers.
package model

import "time"

// Review event status tags recorded on a submission's history.
const (
	StatusSubmitted      = "submitted"
	StatusExpertReviewed = "expert_reviewed"
	StatusWithdrawn      = "withdrawn"
)

// ReviewEvent is one immutable entry in a submission's review history.
type ReviewEvent struct {
	Status string    // status tag, e.g. "expert_reviewed"
	At     time.Time // when the status was recorded
}

// Review captures the outcome recorded on a submission.
type Review struct {
	Pass       bool // expert approved the candidate
	Inevitable bool // inevitable disqualification; excludes the submission outright
}

// Submission is one candidate submitted by an agent against a job.
type Submission struct {
	ID        string
	AgentID   string // submitting agent (recruiter)
	JobID     string // target opening
	Review    Review
	CreatedAt time.Time
	Events    []ReviewEvent // ordered review history
}

// JobBaseline is a job's aggregate approval performance inside one window.
// Undefined when Total is zero; producers never emit such a baseline.
type JobBaseline struct {
	Total         int
	Pass          int
	ApprovalRatio float64 // Pass / Total
}

// AgentJobStat is one agent's aggregate for one job inside the window.
type AgentJobStat struct {
	AgentID string
	JobID   string
	Total   int // >= 1 by construction
	Pass    int // <= Total
}

// AgentPoints accumulates one agent's relative performance across jobs.
type AgentPoints struct {
	AgentID          string
	TotalSubmissions int
	NetPoints        float64 // cumulative deviation from per-job baselines
}

// AgentBudget is the persisted per-agent submission capacity.
type AgentBudget struct {
	AgentID  string
	MaxSlots int // floor-clamped at 1 on every write
}

// UpdateResult reports the outcome of one budget write in a generic
// upsert-result shape.
type UpdateResult struct {
	Inserted int64
	Matched  int64
	Modified int64
	Deleted  int64
	Upserted int64
}

// RunSummary aggregates write outcomes across all agents in one run.
// Skipped counts agents left untouched (missing budget or failed write);
// it is deliberately separate from the write-outcome counters.
type RunSummary struct {
	Inserted int64
	Matched  int64
	Modified int64
	Deleted  int64
	Upserted int64
	Skipped  int64
}

// Add folds one write outcome into the summary.
func (s *RunSummary) Add(r UpdateResult) {
	s.Inserted += r.Inserted
	s.Matched += r.Matched
	s.Modified += r.Modified
	s.Deleted += r.Deleted
	s.Upserted += r.Upserted
}
