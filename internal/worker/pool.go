package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueOrderMail = "jobs:order_mail"

	maxMailAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// OrderMailPayload is the job body for order confirmation mails.
type OrderMailPayload struct {
	ToEmail     string `json:"to_email"`
	OrderNumber int    `json:"order_number"`
	Customer    string `json:"customer"`
	Total       string `json:"total"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueOrderMail pushes an order confirmation mail job to Redis.
func (d *Dispatcher) EnqueueOrderMail(ctx context.Context, payload OrderMailPayload) error {
	return d.enqueue(ctx, QueueOrderMail, "order_mail", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handlers groups the processors the pool dispatches to.
type Handlers struct {
	OrderMail *MailWorker
}

// StartPool launches numWorkers goroutines consuming the job queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartPool(ctx context.Context, rdb *redis.Client, handlers *Handlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *Handlers, id int) {
	queues := []string{QueueOrderMail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers *Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	switch job.Type {
	case "order_mail":
		if handlers == nil || handlers.OrderMail == nil {
			log.Warn().Str("type", job.Type).Msg("no handler wired for job type")
			return
		}
		if err := handlers.OrderMail.Process(ctx, job.Payload); err != nil {
			job.Attempts++
			if job.Attempts >= maxMailAttempts {
				SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
				return
			}
			if encoded, mErr := json.Marshal(job); mErr == nil {
				_ = rdb.LPush(ctx, queue, encoded).Err()
			}
		}
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("unknown job type")
	}
}
