package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ── Dead letter queue ────────────────────────────────────────────────────────
// One Redis list per source queue, dlq:{queue}, newest first. Entries are kept
// for inspection and never replayed.

const (
	DLQPrefix = "dlq:"
	// dlqMaxLen caps each list; older entries are trimmed.
	dlqMaxLen = 500
)

// Where a job failed.
const (
	StageDecode   = "decode"
	StageDispatch = "dispatch"
	StageHandler  = "handler"
)

type DLQEntry struct {
	Queue    string          `json:"queue"`
	JobType  string          `json:"job_type"`
	Payload  json.RawMessage `json:"payload"`
	Stage    string          `json:"stage"`
	Reason   string          `json:"reason"`
	FailedAt string          `json:"failed_at"` // RFC 3339, UTC
}

type DeadLetterQueue struct {
	rdb *redis.Client
}

func NewDeadLetterQueue(rdb *redis.Client) *DeadLetterQueue {
	return &DeadLetterQueue{rdb: rdb}
}

// Push stores e at the head of its queue's list.
func (q *DeadLetterQueue) Push(ctx context.Context, e DLQEntry) error {
	if e.FailedAt == "" {
		e.FailedAt = time.Now().UTC().Format(time.RFC3339)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("dlq: marshal: %w", err)
	}
	key := DLQPrefix + e.Queue
	_, err = q.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, dlqMaxLen-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("dlq: push %s: %w", key, err)
	}
	return nil
}

// Recent returns up to n entries of queue, newest first. Entries that no
// longer decode are skipped.
func (q *DeadLetterQueue) Recent(ctx context.Context, queue string, n int64) ([]DLQEntry, error) {
	if n <= 0 {
		n = 20
	}
	raw, err := q.rdb.LRange(ctx, DLQPrefix+queue, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("dlq: list %s: %w", queue, err)
	}
	return decodeEntries(raw), nil
}

func (q *DeadLetterQueue) Len(ctx context.Context, queue string) (int64, error) {
	return q.rdb.LLen(ctx, DLQPrefix+queue).Result()
}

func decodeEntries(raw []string) []DLQEntry {
	entries := make([]DLQEntry, 0, len(raw))
	for _, s := range raw {
		var e DLQEntry
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			log.Warn().Err(err).Msg("dlq: skipping undecodable entry")
			continue
		}
		entries = append(entries, e)
	}
	return entries
}
