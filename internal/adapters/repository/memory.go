package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/okian/slotcap/internal/domain/model"
	"github.com/okian/slotcap/internal/domain/window"
)

// Default stream configuration constants.
const (
	defaultStreamBuffer = 64
)

// MemoryReviewStore implements ReviewStore over an in-memory submission set.
type MemoryReviewStore struct {
	mu          sync.RWMutex
	submissions []model.Submission
	buffer      int
}

// NewMemoryReviewStore creates an in-memory review store with options.
func NewMemoryReviewStore(opts ...ReviewOption) *MemoryReviewStore {
	s := &MemoryReviewStore{
		buffer: defaultStreamBuffer,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Add appends submissions to the store.
func (s *MemoryReviewStore) Add(subs ...model.Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions = append(s.submissions, subs...)
}

// representative returns the earliest expert-review event inside the window.
// A submission with no such event is outside the run's scope even if it has
// review history elsewhere in time.
func representative(sub *model.Submission, w window.Window) (model.ReviewEvent, bool) {
	var best model.ReviewEvent
	found := false
	for _, ev := range sub.Events {
		if ev.Status != model.StatusExpertReviewed || !w.Contains(ev.At) {
			continue
		}
		if !found || ev.At.Before(best.At) {
			best = ev
			found = true
		}
	}
	return best, found
}

// selected reports whether the submission participates in the window's
// aggregates: not an inevitable disqualification, and expert-reviewed
// inside the window.
func selected(sub *model.Submission, w window.Window) bool {
	if sub.Review.Inevitable {
		return false
	}
	_, ok := representative(sub, w)
	return ok
}

// JobBaselines aggregates the selected submissions grouped by job.
func (s *MemoryReviewStore) JobBaselines(ctx context.Context, w window.Window) (map[string]model.JobBaseline, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]model.JobBaseline)
	for i := range s.submissions {
		sub := &s.submissions[i]
		if !selected(sub, w) {
			continue
		}
		b := out[sub.JobID]
		b.Total++
		if sub.Review.Pass {
			b.Pass++
		}
		out[sub.JobID] = b
	}
	for job, b := range out {
		b.ApprovalRatio = float64(b.Pass) / float64(b.Total)
		out[job] = b
	}
	return out, nil
}

// AgentJobStats aggregates the selected submissions grouped by (agent, job)
// and streams the result through a bounded channel, ordered by agent id
// ascending and job id ascending within an agent.
func (s *MemoryReviewStore) AgentJobStats(ctx context.Context, w window.Window) (StatCursor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	type key struct{ agent, job string }
	groups := make(map[key]model.AgentJobStat)
	for i := range s.submissions {
		sub := &s.submissions[i]
		if !selected(sub, w) {
			continue
		}
		k := key{agent: sub.AgentID, job: sub.JobID}
		g := groups[k]
		g.AgentID = sub.AgentID
		g.JobID = sub.JobID
		g.Total++
		if sub.Review.Pass {
			g.Pass++
		}
		groups[k] = g
	}
	s.mu.RUnlock()

	stats := make([]model.AgentJobStat, 0, len(groups))
	for _, g := range groups {
		stats = append(stats, g)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].AgentID != stats[j].AgentID {
			return stats[i].AgentID < stats[j].AgentID
		}
		return stats[i].JobID < stats[j].JobID
	})

	ch := make(chan model.AgentJobStat, s.buffer)
	done := make(chan struct{})
	go func() {
		defer close(ch)
		for _, st := range stats {
			select {
			case ch <- st:
			case <-done:
				return
			}
		}
	}()

	return &chanCursor{ch: ch, done: done}, nil
}

// chanCursor adapts a producer-fed channel to the StatCursor contract.
type chanCursor struct {
	ch   <-chan model.AgentJobStat
	done chan struct{}
	once sync.Once

	stat model.AgentJobStat
	err  error
}

func (c *chanCursor) Next(ctx context.Context) bool {
	if c.err != nil {
		return false
	}
	// Check cancellation before racing it against a buffered record, so a
	// cancelled consumer stops deterministically.
	select {
	case <-ctx.Done():
		c.err = ctx.Err()
		return false
	default:
	}

	select {
	case st, ok := <-c.ch:
		if !ok {
			return false
		}
		c.stat = st
		return true
	case <-ctx.Done():
		c.err = ctx.Err()
		return false
	}
}

func (c *chanCursor) Stat() model.AgentJobStat {
	return c.stat
}

func (c *chanCursor) Err() error {
	return c.err
}

func (c *chanCursor) Close() {
	c.once.Do(func() {
		close(c.done)
	})
}
