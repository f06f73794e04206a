package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/slotcap/internal/adapters/http/ops"
	"github.com/okian/slotcap/internal/adapters/repository"
	service "github.com/okian/slotcap/internal/app"
	"github.com/okian/slotcap/internal/config"
	"github.com/okian/slotcap/pkg/logger"
)

// Shutdown timeout for the ops HTTP server.
const opsShutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	reviews := repository.NewMemoryReviewStore()
	budgets := repository.NewMemoryBudgetStore()
	if cfg.FixturePath != "" {
		fixture, err := repository.LoadFixture(cfg.FixturePath)
		if err != nil {
			log.Error(ctx, "failed to load fixture", logger.String("path", cfg.FixturePath), logger.Error(err))
			return 1
		}
		reviews = repository.NewMemoryReviewStore(
			repository.WithSubmissions(fixture.ModelSubmissions()),
		)
		budgets = repository.NewMemoryBudgetStore(
			repository.WithBudgets(fixture.ModelBudgets()),
		)
		log.Info(ctx, "fixture loaded",
			logger.String("path", cfg.FixturePath),
			logger.Int("submissions", len(fixture.Submissions)),
			logger.Int("budgets", len(fixture.Budgets)),
		)
	}

	// Optional ops server: keeps run metrics scrapeable while the process
	// is up.
	var opsSrv *http.Server
	if cfg.OpsAddr != "" {
		opsSrv = ops.NewServer(ctx, cfg.OpsAddr)
		go func() {
			log.Info(ctx, "starting ops server", logger.String("addr", cfg.OpsAddr))
			if err := opsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error(ctx, "ops server failed", logger.Error(err))
			}
		}()
	}

	svc := service.New(reviews, budgets,
		service.WithWindowWeeks(cfg.WindowWeeks),
		service.WithLogger(log.Named("run")),
	)

	summary, err := svc.Run(ctx)
	if err != nil {
		log.Error(ctx, "scoring run failed", logger.Error(err))
		shutdownOps(opsSrv, log)
		return 1
	}

	log.Info(ctx, "run summary",
		logger.Int64("inserted", summary.Inserted),
		logger.Int64("matched", summary.Matched),
		logger.Int64("modified", summary.Modified),
		logger.Int64("deleted", summary.Deleted),
		logger.Int64("upserted", summary.Upserted),
		logger.Int64("skipped", summary.Skipped),
	)

	// With an ops server configured, stay up for scraping until signaled.
	if opsSrv != nil {
		<-ctx.Done()
		shutdownOps(opsSrv, log)
	}
	return 0
}

func shutdownOps(srv *http.Server, log logger.Logger) {
	if srv == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), opsShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn(shutdownCtx, "ops server shutdown failed", logger.Error(err))
	}
}
