package repository

import "github.com/okian/slotcap/internal/domain/model"

// ReviewOption applies a configuration option to the MemoryReviewStore.
type ReviewOption func(*MemoryReviewStore)

// WithSubmissions seeds the store with submissions.
func WithSubmissions(subs []model.Submission) ReviewOption {
	return func(s *MemoryReviewStore) {
		s.submissions = append(s.submissions, subs...)
	}
}

// WithStreamBuffer sets the stat stream's channel buffer.
func WithStreamBuffer(n int) ReviewOption {
	return func(s *MemoryReviewStore) {
		if n > 0 {
			s.buffer = n
		}
	}
}

// BudgetOption applies a configuration option to the MemoryBudgetStore.
type BudgetOption func(*MemoryBudgetStore)

// WithBudgets seeds the store with agent budgets.
func WithBudgets(budgets []model.AgentBudget) BudgetOption {
	return func(s *MemoryBudgetStore) {
		for _, b := range budgets {
			s.budgets[b.AgentID] = b
		}
	}
}
