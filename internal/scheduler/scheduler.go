package scheduler

import (
	"context"
	"loki-mcp/config"
	"loki-mcp/internal/health"
	"loki-mcp/internal/loki"
	"loki-mcp/internal/metrics"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

// NewReadinessProbe returns the job that checks Loki's /ready endpoint and
// records the outcome in status and the backend_ready gauge.
func NewReadinessProbe(client loki.Client, status *health.Status, timeout time.Duration) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := client.Ready(ctx)
		status.Record(time.Now().UTC(), err)
		if err != nil {
			metrics.BackendReady.Set(0)
			log.Warn().Err(err).Msg("Loki readiness check failed")
			return
		}
		metrics.BackendReady.Set(1)
		log.Debug().Msg("Loki is ready")
	}
}

func NewScheduler(lc fx.Lifecycle, cfg *config.Config, client loki.Client, status *health.Status) *cron.Cron {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.DowOptional | cron.Descriptor)
	c := cron.New(cron.WithParser(parser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	probe := NewReadinessProbe(client, status, cfg.Loki.Timeout)
	schedule := cfg.Health.Schedule
	_, err := c.AddFunc(schedule, probe)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", schedule).Msg("Failed to add cron job")
		return nil
	}
	log.Info().Str("schedule", schedule).Msg("Scheduled Loki readiness probe")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msg("Starting cron scheduler")
			go probe()
			c.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Stopping cron scheduler...")
			stopCtx := c.Stop()
			select {
			case <-stopCtx.Done():
				log.Info().Msg("Cron scheduler stopped gracefully.")
				return nil
			case <-ctx.Done():
				log.Error().Msg("Context cancelled while waiting for cron scheduler to stop.")
				return ctx.Err()
			}
		},
	})

	return c
}
