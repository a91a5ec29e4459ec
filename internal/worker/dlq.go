package worker

// dlq.go — dead letter queue.
// Mail jobs that exhaust their retry budget land here for manual inspection.
// One Redis list per source queue: dlq:{original_queue}

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// DLQEntry wraps a failed mail job with enough context to resend it by hand.
// OrderNumber and Recipient are lifted out of the payload so an operator can
// grep the list without decoding every entry.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	OrderNumber   int             `json:"order_number,omitempty"`
	Recipient     string          `json:"recipient,omitempty"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      string          `json:"failed_at"` // ISO 8601
	Attempts      int             `json:"attempts"`
}

func buildDLQEntry(queue, jobType string, payload json.RawMessage, reason string, attempts int, failedAt time.Time) DLQEntry {
	entry := DLQEntry{
		OriginalQueue: queue,
		JobType:       jobType,
		Payload:       payload,
		Reason:        reason,
		FailedAt:      failedAt.UTC().Format(time.RFC3339),
		Attempts:      attempts,
	}
	if jobType == "order_mail" {
		var mail OrderMailPayload
		if json.Unmarshal(payload, &mail) == nil {
			entry.OrderNumber = mail.OrderNumber
			entry.Recipient = mail.ToEmail
		}
	}
	return entry
}

// SendToDLQ pushes a failed job to the dead letter queue.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, jobType string, payload json.RawMessage, reason string, attempts int) {
	entry := buildDLQEntry(queue, jobType, payload, reason, attempts, time.Now())

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: failed to marshal entry")
		return
	}

	dlqKey := DLQPrefix + queue
	if err := rdb.LPush(ctx, dlqKey, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", dlqKey).Msg("dlq: failed to push to DLQ")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Int("order_number", entry.OrderNumber).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("dlq: job moved to dead letter queue")
}

// DLQLength returns the number of entries in a DLQ for monitoring.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}
