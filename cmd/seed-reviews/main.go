package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/slotcap/internal/seedreviews"
	"github.com/okian/slotcap/pkg/logger"
)

func main() {
	var (
		agents   = flag.Int("agents", seedreviews.DefaultAgents, "Number of agents to generate")
		jobs     = flag.Int("jobs", seedreviews.DefaultJobs, "Number of jobs to spread submissions across")
		perAgent = flag.Int("per-agent", seedreviews.DefaultPerAgent, "Submissions per agent")
		seed     = flag.Int64("seed", seedreviews.DefaultSeed, "Random seed for deterministic output")
		out      = flag.String("out", "", "Output fixture path (default: reviews_TIMESTAMP.yaml)")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()
	ctx := context.Background()

	path := *out
	if path == "" {
		path = "reviews_" + time.Now().Format("20060102_150405") + ".yaml"
	}

	fixture := seedreviews.Generate(seedreviews.Params{
		Agents:   *agents,
		Jobs:     *jobs,
		PerAgent: *perAgent,
		Seed:     *seed,
	})

	if err := seedreviews.Write(path, fixture); err != nil {
		log.Error(ctx, "failed to write fixture", logger.Error(err))
		os.Exit(1)
	}

	log.Info(ctx, "fixture written",
		logger.String("path", path),
		logger.Int("submissions", len(fixture.Submissions)),
		logger.Int("budgets", len(fixture.Budgets)),
	)
}
