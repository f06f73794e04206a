package repository

import (
	"context"
	"sync"

	"github.com/okian/slotcap/internal/domain/model"
)

// MemoryBudgetStore implements BudgetStore over an in-memory map.
type MemoryBudgetStore struct {
	mu      sync.RWMutex
	budgets map[string]model.AgentBudget
}

// NewMemoryBudgetStore creates an in-memory budget store with options.
func NewMemoryBudgetStore(opts ...BudgetOption) *MemoryBudgetStore {
	s := &MemoryBudgetStore{
		budgets: make(map[string]model.AgentBudget),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Budget returns the budget for an agent, or ErrAgentNotFound.
func (s *MemoryBudgetStore) Budget(ctx context.Context, agentID string) (model.AgentBudget, error) {
	if err := ctx.Err(); err != nil {
		return model.AgentBudget{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.budgets[agentID]
	if !ok {
		return model.AgentBudget{}, ErrAgentNotFound
	}
	return b, nil
}

// SetMaxSlots writes a new slot count for an existing agent. The outcome
// mirrors a generic upsert result: Matched is always 1 for an existing
// record, Modified is 1 only when the value actually changed.
func (s *MemoryBudgetStore) SetMaxSlots(ctx context.Context, agentID string, maxSlots int) (model.UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return model.UpdateResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.budgets[agentID]
	if !ok {
		return model.UpdateResult{}, ErrAgentNotFound
	}

	res := model.UpdateResult{Matched: 1}
	if b.MaxSlots != maxSlots {
		b.MaxSlots = maxSlots
		s.budgets[agentID] = b
		res.Modified = 1
	}
	return res, nil
}
