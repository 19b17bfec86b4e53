package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueReporte = "jobs:reporte"

	JobReporte = "reporte"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ReporteJobPayload asks a worker to build and mail the daily report.
type ReporteJobPayload struct {
	Trigger     string `json:"trigger"`      // "cron" | "manual"
	ScheduledAt string `json:"scheduled_at"` // ISO 8601
}

// Handler processes the payload of one job type. A returned error sends the
// job to the DLQ; jobs are never retried.
type Handler interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueReporte pushes a daily report job to Redis.
func (d *Dispatcher) EnqueueReporte(ctx context.Context, payload ReporteJobPayload) error {
	return d.enqueue(ctx, QueueReporte, JobReporte, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	encoded, err := encodeJob(jobType, payload)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

func encodeJob(jobType string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("worker: marshal %s payload: %w", jobType, err)
	}
	return json.Marshal(Job{Type: jobType, Payload: data})
}

type deadLetterFunc func(ctx context.Context, e DLQEntry)

// Pool consumes the job queues with a fixed number of goroutines.
type Pool struct {
	rdb        *redis.Client
	handlers   map[string]Handler
	deadLetter deadLetterFunc
}

func NewPool(rdb *redis.Client, handlers map[string]Handler) *Pool {
	dlq := NewDeadLetterQueue(rdb)
	p := &Pool{rdb: rdb, handlers: handlers}
	p.deadLetter = func(ctx context.Context, e DLQEntry) {
		if err := dlq.Push(ctx, e); err != nil {
			log.Error().Err(err).Str("queue", e.Queue).Msg("dlq: push failed")
			return
		}
		log.Warn().Str("queue", e.Queue).Str("job_type", e.JobType).Str("stage", e.Stage).
			Str("reason", e.Reason).Msg("job moved to dead letter queue")
	}
	return p
}

// Start launches numWorkers goroutines consuming the report queue.
// Each goroutine blocks on BRPOP.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	for i := 0; i < numWorkers; i++ {
		go p.run(ctx, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func (p *Pool) run(ctx context.Context, id int) {
	queues := []string{QueueReporte}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop: waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			p.processJob(ctx, result[0], result[1])
		}
	}
}

func (p *Pool) processJob(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		p.deadLetter(ctx, DLQEntry{Queue: queue, JobType: "unknown", Payload: invalidPayload(raw), Stage: StageDecode, Reason: err.Error()})
		return
	}
	h, ok := p.handlers[job.Type]
	if !ok {
		log.Error().Str("type", job.Type).Str("queue", queue).Msg("no handler for job type")
		p.deadLetter(ctx, DLQEntry{Queue: queue, JobType: job.Type, Payload: job.Payload, Stage: StageDispatch, Reason: "no handler for job type"})
		return
	}

	log.Info().Str("type", job.Type).Str("queue", queue).Msg("processing job")
	if err := h.Process(ctx, job.Payload); err != nil {
		log.Error().Err(err).Str("type", job.Type).Str("queue", queue).Msg("job failed")
		p.deadLetter(ctx, DLQEntry{Queue: queue, JobType: job.Type, Payload: job.Payload, Stage: StageHandler, Reason: err.Error()})
	}
}

// invalidPayload keeps an undecodable job as a JSON string so the entry stays
// valid JSON.
func invalidPayload(raw string) json.RawMessage {
	b, _ := json.Marshal(raw)
	return b
}
