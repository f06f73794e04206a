// Package service orchestrates one scoring run: window selection, baseline
// materialization, the streaming per-agent fold, and budget updates.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/slotcap/internal/adapters/repository"
	"github.com/okian/slotcap/internal/domain/model"
	"github.com/okian/slotcap/internal/domain/scoring"
	"github.com/okian/slotcap/internal/domain/window"
	"github.com/okian/slotcap/pkg/logger"
	"github.com/okian/slotcap/pkg/metrics"
)

// minSlots is the floor every budget write is clamped to.
const minSlots = 1

// Service runs the weekly scoring pass over submission review history.
type Service struct {
	reviews repository.ReviewStore
	budgets repository.BudgetStore

	clock       func() time.Time
	windowWeeks int

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(reviews repository.ReviewStore, budgets repository.BudgetStore, opts ...Option) *Service {
	s := &Service{
		reviews:     reviews,
		budgets:     budgets,
		clock:       time.Now,
		windowWeeks: window.DefaultWeeks,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("run")
	}

	return s
}

// Run performs one full batch pass and returns the accumulated write
// summary. The snapshot time is read from the clock exactly once, so the
// whole run is bounded by a single window.
//
// A failing aggregation query aborts the run: no partial summary is
// meaningful without the baseline. Per-agent budget problems (missing
// record, failed write) are logged, counted as skipped, and do not stop
// processing of subsequent agents.
func (s *Service) Run(ctx context.Context) (model.RunSummary, error) {
	start := time.Now()
	metrics.RecordRunStarted()

	w := window.At(s.clock(), s.windowWeeks)
	s.logger.Info(ctx, "scoring run started",
		logger.Time("from", w.From),
		logger.Time("to", w.To),
	)

	baselines, err := s.reviews.JobBaselines(ctx, w)
	if err != nil {
		metrics.RecordRunFailed()
		return model.RunSummary{}, fmt.Errorf("materialize job baselines: %w", err)
	}
	metrics.UpdateBaselineJobs(len(baselines))

	cur, err := s.reviews.AgentJobStats(ctx, w)
	if err != nil {
		metrics.RecordRunFailed()
		return model.RunSummary{}, fmt.Errorf("open agent stat stream: %w", err)
	}
	defer cur.Close()

	var summary model.RunSummary
	err = scoring.Fold(ctx, cur, baselines, func(ctx context.Context, pts model.AgentPoints) error {
		return s.applyPoints(ctx, &summary, pts)
	})
	if err != nil {
		metrics.RecordRunFailed()
		return model.RunSummary{}, fmt.Errorf("fold agent stats: %w", err)
	}

	elapsed := time.Since(start)
	metrics.RecordRunCompleted()
	metrics.RecordRunDuration(elapsed.Seconds())
	s.logger.Info(ctx, "scoring run completed",
		logger.Duration("elapsed", elapsed),
		logger.Int("jobs", len(baselines)),
		logger.Int64("matched", summary.Matched),
		logger.Int64("modified", summary.Modified),
		logger.Int64("skipped", summary.Skipped),
	)
	return summary, nil
}

// applyPoints transforms one agent's accumulated points into a slot delta
// and applies it to the persisted budget.
func (s *Service) applyPoints(ctx context.Context, sum *model.RunSummary, pts model.AgentPoints) error {
	delta, err := scoring.SlotDelta(pts.TotalSubmissions, pts.NetPoints)
	if err != nil {
		// Zero volume here means the fold emitted an empty group; fail
		// loudly rather than write a bogus budget.
		metrics.RecordTransformError()
		return fmt.Errorf("slot delta for agent %s: %w", pts.AgentID, err)
	}
	metrics.RecordAgentScored()
	metrics.RecordSlotDelta(delta)

	budget, err := s.budgets.Budget(ctx, pts.AgentID)
	if err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			s.logger.Warn(ctx, "no budget record for agent; skipping",
				logger.String("agent", pts.AgentID),
			)
		} else {
			s.logger.Error(ctx, "budget read failed; skipping agent",
				logger.String("agent", pts.AgentID),
				logger.Error(err),
			)
		}
		metrics.RecordAgentSkipped()
		sum.Skipped++
		return nil
	}

	next := budget.MaxSlots + delta
	if next < minSlots {
		next = minSlots
	}

	res, err := s.budgets.SetMaxSlots(ctx, pts.AgentID, next)
	if err != nil {
		s.logger.Error(ctx, "budget write failed; skipping agent",
			logger.String("agent", pts.AgentID),
			logger.Int("maxSlots", next),
			logger.Error(err),
		)
		metrics.RecordBudgetWrite("failed")
		metrics.RecordAgentSkipped()
		sum.Skipped++
		return nil
	}

	outcome := "matched"
	if res.Modified > 0 {
		outcome = "modified"
	}
	metrics.RecordBudgetWrite(outcome)
	sum.Add(res)

	s.logger.Debug(ctx, "budget updated",
		logger.String("agent", pts.AgentID),
		logger.Int("submissions", pts.TotalSubmissions),
		logger.Float64("netPoints", pts.NetPoints),
		logger.Int("delta", delta),
		logger.Int("maxSlots", next),
	)
	return nil
}
