package worker

// scheduler.go
// In-process robfig/cron schedule that enqueues the daily report job.
// Specs carry a seconds field: "0 35 6 * * *" runs every day at 06:35:00.

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron"
	"github.com/rs/zerolog/log"
)

type reporteEnqueuer interface {
	EnqueueReporte(ctx context.Context, payload ReporteJobPayload) error
}

// StartReportScheduler registers spec in loc and starts the scheduler. It
// stops when ctx is cancelled. An empty spec disables the schedule and
// returns a nil *cron.Cron.
func StartReportScheduler(ctx context.Context, spec string, loc *time.Location, q reporteEnqueuer) (*cron.Cron, error) {
	if spec == "" {
		log.Info().Msg("scheduler: REPORT_CRON empty, daily report schedule disabled")
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	c := cron.NewWithLocation(loc)
	if err := c.AddFunc(spec, func() { enqueueScheduled(ctx, q, time.Now().In(loc)) }); err != nil {
		return nil, fmt.Errorf("scheduler: invalid REPORT_CRON %q: %w", spec, err)
	}
	c.Start()
	log.Info().Str("spec", spec).Str("tz", loc.String()).Msg("scheduler: daily report scheduled")

	go func() {
		<-ctx.Done()
		c.Stop()
		log.Info().Msg("scheduler: stopped")
	}()
	return c, nil
}

func enqueueScheduled(ctx context.Context, q reporteEnqueuer, now time.Time) {
	payload := ReporteJobPayload{Trigger: "cron", ScheduledAt: now.Format(time.RFC3339)}
	if err := q.EnqueueReporte(ctx, payload); err != nil {
		log.Error().Err(err).Msg("scheduler: failed to enqueue daily report")
		return
	}
	log.Info().Str("scheduled_at", payload.ScheduledAt).Msg("scheduler: daily report enqueued")
}
