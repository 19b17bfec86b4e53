package worker

// reporte_worker.go
// Processes jobs from QueueReporte: builds the daily cash report of the last
// finished window, renders it and mails it to the configured recipient.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/45061/Hotelregistryapp/internal/service"

	"github.com/rs/zerolog/log"
)

type ReporteWorker struct {
	svc service.ReporteService
}

func NewReporteWorker(svc service.ReporteService) *ReporteWorker {
	return &ReporteWorker{svc: svc}
}

func (w *ReporteWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReporteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("reporte_worker: invalid payload: %w", err)
	}
	r, err := w.svc.Enviar(ctx, scheduledAt(payload))
	if err != nil {
		return err
	}
	log.Info().Str("trigger", payload.Trigger).Str("fecha", r.Fecha).Msg("reporte_worker: report sent")
	return nil
}

// scheduledAt is the instant the job was enqueued for. The window is taken
// from it so a job that waited past the next cutoff still reports its own day.
// Manual jobs carry no timestamp and run at the current time.
func scheduledAt(p ReporteJobPayload) time.Time {
	if p.ScheduledAt == "" {
		return time.Now()
	}
	t, err := time.Parse(time.RFC3339, p.ScheduledAt)
	if err != nil {
		log.Warn().Str("scheduled_at", p.ScheduledAt).Msg("reporte_worker: unparsable scheduled_at, using current time")
		return time.Now()
	}
	return t
}
