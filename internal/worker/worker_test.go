package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/45061/Hotelregistryapp/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct{ entries []DLQEntry }

func (r *recorder) push(_ context.Context, e DLQEntry) {
	r.entries = append(r.entries, e)
}

type handlerFunc func(ctx context.Context, payload json.RawMessage) error

func (f handlerFunc) Process(ctx context.Context, payload json.RawMessage) error {
	return f(ctx, payload)
}

func newTestPool(handlers map[string]Handler) (*Pool, *recorder) {
	rec := &recorder{}
	return &Pool{handlers: handlers, deadLetter: rec.push}, rec
}

func encoded(t *testing.T, jobType string, payload interface{}) string {
	t.Helper()
	b, err := encodeJob(jobType, payload)
	require.NoError(t, err)
	return string(b)
}

func TestProcessJob_DispatchesByType(t *testing.T) {
	var got ReporteJobPayload
	pool, rec := newTestPool(map[string]Handler{
		JobReporte: handlerFunc(func(_ context.Context, raw json.RawMessage) error {
			return json.Unmarshal(raw, &got)
		}),
	})

	pool.processJob(context.Background(), QueueReporte, encoded(t, JobReporte, ReporteJobPayload{Trigger: "cron"}))

	assert.Equal(t, "cron", got.Trigger)
	assert.Empty(t, rec.entries)
}

func TestProcessJob_FailureGoesToDLQWithoutRetry(t *testing.T) {
	calls := 0
	pool, rec := newTestPool(map[string]Handler{
		JobReporte: handlerFunc(func(context.Context, json.RawMessage) error {
			calls++
			return errors.New("smtp down")
		}),
	})

	pool.processJob(context.Background(), QueueReporte, encoded(t, JobReporte, ReporteJobPayload{}))

	assert.Equal(t, 1, calls)
	require.Len(t, rec.entries, 1)
	e := rec.entries[0]
	assert.Equal(t, QueueReporte, e.Queue)
	assert.Equal(t, JobReporte, e.JobType)
	assert.Equal(t, StageHandler, e.Stage)
	assert.Equal(t, "smtp down", e.Reason)
}

func TestProcessJob_BadEnvelopeAndUnknownType(t *testing.T) {
	pool, rec := newTestPool(map[string]Handler{})

	pool.processJob(context.Background(), QueueReporte, "{not json")
	pool.processJob(context.Background(), QueueReporte, encoded(t, "otro", struct{}{}))

	require.Len(t, rec.entries, 2)
	assert.Equal(t, "unknown", rec.entries[0].JobType)
	assert.Equal(t, StageDecode, rec.entries[0].Stage)
	assert.True(t, json.Valid(rec.entries[0].Payload))
	assert.Equal(t, "otro", rec.entries[1].JobType)
	assert.Equal(t, StageDispatch, rec.entries[1].Stage)
}

type fakeReporteService struct {
	err   error
	calls int
	at    time.Time
}

func (s *fakeReporteService) Generar(context.Context, time.Time) (*dto.ReporteDiario, error) {
	return &dto.ReporteDiario{}, nil
}

func (s *fakeReporteService) Enviar(_ context.Context, now time.Time) (*dto.ReporteDiario, error) {
	s.calls++
	s.at = now
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ReporteDiario{Fecha: "2024-03-09 06:30 AM"}, nil
}

func TestReporteWorker(t *testing.T) {
	svc := &fakeReporteService{}
	w := NewReporteWorker(svc)

	require.NoError(t, w.Process(context.Background(), json.RawMessage(`{"trigger":"manual"}`)))
	assert.Equal(t, 1, svc.calls)

	svc.err = errors.New("boom")
	assert.Error(t, w.Process(context.Background(), json.RawMessage(`{}`)))

	assert.Error(t, w.Process(context.Background(), json.RawMessage(`[`)))
	assert.Equal(t, 2, svc.calls)
}

func TestReporteWorker_UsesScheduledInstant(t *testing.T) {
	svc := &fakeReporteService{}
	w := NewReporteWorker(svc)

	require.NoError(t, w.Process(context.Background(), json.RawMessage(`{"trigger":"cron","scheduled_at":"2024-03-10T06:35:00-05:00"}`)))
	assert.True(t, time.Date(2024, 3, 10, 11, 35, 0, 0, time.UTC).Equal(svc.at))

	antes := time.Now()
	require.NoError(t, w.Process(context.Background(), json.RawMessage(`{"trigger":"manual"}`)))
	assert.False(t, svc.at.Before(antes))

	require.NoError(t, w.Process(context.Background(), json.RawMessage(`{"trigger":"cron","scheduled_at":"ayer"}`)))
	assert.False(t, svc.at.Before(antes))
}

type fakeEnqueuer struct {
	payloads []ReporteJobPayload
	err      error
}

func (q *fakeEnqueuer) EnqueueReporte(_ context.Context, p ReporteJobPayload) error {
	q.payloads = append(q.payloads, p)
	return q.err
}

func TestStartReportScheduler(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c, err := StartReportScheduler(ctx, "", time.UTC, &fakeEnqueuer{})
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = StartReportScheduler(ctx, "every day", time.UTC, &fakeEnqueuer{})
	assert.Error(t, err)

	c, err = StartReportScheduler(ctx, "0 35 6 * * *", time.UTC, &fakeEnqueuer{})
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Len(t, c.Entries(), 1)
	next := c.Entries()[0].Next
	assert.Equal(t, 6, next.Hour())
	assert.Equal(t, 35, next.Minute())
}

func TestEnqueueScheduled(t *testing.T) {
	q := &fakeEnqueuer{}
	at := time.Date(2024, 3, 10, 6, 35, 0, 0, time.UTC)
	enqueueScheduled(context.Background(), q, at)

	require.Len(t, q.payloads, 1)
	assert.Equal(t, "cron", q.payloads[0].Trigger)
	assert.Equal(t, "2024-03-10T06:35:00Z", q.payloads[0].ScheduledAt)
}

func TestDecodeEntries_SkipsGarbage(t *testing.T) {
	good, err := json.Marshal(DLQEntry{Queue: QueueReporte, JobType: JobReporte, Stage: StageHandler, Reason: "smtp down"})
	require.NoError(t, err)

	entries := decodeEntries([]string{string(good), "{broken"})
	require.Len(t, entries, 1)
	assert.Equal(t, "smtp down", entries[0].Reason)
}
