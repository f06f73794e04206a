// Package seedreviews generates review-history fixtures for local runs.
package seedreviews

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/okian/slotcap/internal/adapters/repository"
	"github.com/okian/slotcap/internal/domain/model"
)

// Generation defaults.
const (
	DefaultAgents       = 20
	DefaultJobs         = 5
	DefaultPerAgent     = 12
	DefaultSeed         = 42
	defaultMaxSlots     = 5
	maxSlotsSpread      = 6
	staleReviewFraction = 0.1  // reviewed before the window opens
	inevitableFraction  = 0.05 // flagged as inevitable disqualifications
	pendingFraction     = 0.05 // never reached expert review
)

// Pass probabilities per agent cohort. Spreading agents across cohorts
// guarantees non-trivial deviations from each job's baseline.
var cohortPassRates = []float64{0.9, 0.65, 0.5, 0.3, 0.15} //nolint:gochecknoglobals // fixed cohort table

// Params controls fixture generation.
type Params struct {
	Agents   int
	Jobs     int
	PerAgent int
	Seed     int64
	Now      time.Time
}

// Generate produces a deterministic fixture for the given parameters.
func Generate(p Params) *repository.Fixture {
	if p.Agents <= 0 {
		p.Agents = DefaultAgents
	}
	if p.Jobs <= 0 {
		p.Jobs = DefaultJobs
	}
	if p.PerAgent <= 0 {
		p.PerAgent = DefaultPerAgent
	}
	if p.Now.IsZero() {
		p.Now = time.Now().UTC()
	}

	rng := rand.New(rand.NewSource(p.Seed)) //nolint:gosec // deterministic fixtures

	f := &repository.Fixture{}
	for a := 0; a < p.Agents; a++ {
		agent := fmt.Sprintf("agent-%03d", a+1)
		passRate := cohortPassRates[a%len(cohortPassRates)]

		f.Budgets = append(f.Budgets, repository.FixtureBudget{
			Agent:    agent,
			MaxSlots: defaultMaxSlots + rng.Intn(maxSlotsSpread),
		})

		for i := 0; i < p.PerAgent; i++ {
			job := fmt.Sprintf("job-%02d", rng.Intn(p.Jobs)+1)
			created := p.Now.Add(-time.Duration(rng.Intn(9*24)+24) * time.Hour)

			sub := repository.FixtureSubmission{
				ID:        uuid.NewString(),
				Agent:     agent,
				Job:       job,
				Pass:      rng.Float64() < passRate,
				CreatedAt: created,
				Events: []repository.FixtureEvent{
					{Status: model.StatusSubmitted, At: created},
				},
			}

			switch r := rng.Float64(); {
			case r < inevitableFraction:
				sub.Inevitable = true
				sub.Events = append(sub.Events, reviewedWithin(rng, p.Now, 0, 7))
			case r < inevitableFraction+staleReviewFraction:
				// Reviewed before the window opened; must not count.
				sub.Events = append(sub.Events, reviewedWithin(rng, p.Now, 8, 20))
			case r < inevitableFraction+staleReviewFraction+pendingFraction:
				// Still awaiting expert review.
			default:
				sub.Events = append(sub.Events, reviewedWithin(rng, p.Now, 0, 7))
			}

			f.Submissions = append(f.Submissions, sub)
		}
	}
	return f
}

// reviewedWithin returns an expert-review event between minDays and maxDays
// before now.
func reviewedWithin(rng *rand.Rand, now time.Time, minDays, maxDays int) repository.FixtureEvent {
	span := (maxDays - minDays) * 24
	if span < 1 {
		span = 1
	}
	hoursBack := minDays*24 + rng.Intn(span)
	at := now.Add(-time.Duration(hoursBack)*time.Hour - time.Minute)
	return repository.FixtureEvent{Status: model.StatusExpertReviewed, At: at}
}
