package repository

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/okian/slotcap/internal/domain/model"
)

// Fixture is the YAML document the in-memory stores load at startup. The
// seed tool produces the same shape.
type Fixture struct {
	Submissions []FixtureSubmission `yaml:"submissions"`
	Budgets     []FixtureBudget     `yaml:"budgets"`
}

// FixtureSubmission is one submission row in a fixture file.
type FixtureSubmission struct {
	ID         string         `yaml:"id"`
	Agent      string         `yaml:"agent"`
	Job        string         `yaml:"job"`
	Pass       bool           `yaml:"pass"`
	Inevitable bool           `yaml:"inevitable,omitempty"`
	CreatedAt  time.Time      `yaml:"created_at"`
	Events     []FixtureEvent `yaml:"events"`
}

// FixtureEvent is one review history entry in a fixture file.
type FixtureEvent struct {
	Status string    `yaml:"status"`
	At     time.Time `yaml:"at"`
}

// FixtureBudget is one agent budget row in a fixture file.
type FixtureBudget struct {
	Agent    string `yaml:"agent"`
	MaxSlots int    `yaml:"max_slots"`
}

// LoadFixture reads and validates a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var f Fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadFixture, err)
	}

	for i, sub := range f.Submissions {
		if sub.Agent == "" || sub.Job == "" {
			return nil, fmt.Errorf("%w: submission %d missing agent or job", ErrBadFixture, i)
		}
	}
	for i, b := range f.Budgets {
		if b.Agent == "" {
			return nil, fmt.Errorf("%w: budget %d missing agent", ErrBadFixture, i)
		}
		if b.MaxSlots < 1 {
			return nil, fmt.Errorf("%w: budget for %s below floor", ErrBadFixture, b.Agent)
		}
	}
	return &f, nil
}

// ModelSubmissions converts fixture rows to domain submissions.
func (f *Fixture) ModelSubmissions() []model.Submission {
	out := make([]model.Submission, 0, len(f.Submissions))
	for _, sub := range f.Submissions {
		events := make([]model.ReviewEvent, 0, len(sub.Events))
		for _, ev := range sub.Events {
			events = append(events, model.ReviewEvent{Status: ev.Status, At: ev.At})
		}
		out = append(out, model.Submission{
			ID:        sub.ID,
			AgentID:   sub.Agent,
			JobID:     sub.Job,
			Review:    model.Review{Pass: sub.Pass, Inevitable: sub.Inevitable},
			CreatedAt: sub.CreatedAt,
			Events:    events,
		})
	}
	return out
}

// ModelBudgets converts fixture rows to domain budgets.
func (f *Fixture) ModelBudgets() []model.AgentBudget {
	out := make([]model.AgentBudget, 0, len(f.Budgets))
	for _, b := range f.Budgets {
		out = append(out, model.AgentBudget{AgentID: b.Agent, MaxSlots: b.MaxSlots})
	}
	return out
}
