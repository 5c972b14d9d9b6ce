package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"report-approval-service/internal/domain/notify"
)

const defaultQueueKey = "notify:queue"

// RedisEnqueuer pushes notification envelopes onto a redis list consumed
// by the delivery subsystem. The engine never waits on delivery.
type RedisEnqueuer struct {
	rdb *redis.Client
	key string
}

func NewRedisEnqueuer(rdb *redis.Client) *RedisEnqueuer {
	return &RedisEnqueuer{rdb: rdb, key: defaultQueueKey}
}

type envelope struct {
	RecipientID string `json:"recipient_id"`
	EventType   string `json:"event_type"`
	ReportID    string `json:"report_id"`
	At          string `json:"at"`
}

func (e *RedisEnqueuer) Enqueue(ctx context.Context, recipientID string, event notify.EventType, reportID string) error {
	payload, err := json.Marshal(envelope{
		RecipientID: recipientID,
		EventType:   string(event),
		ReportID:    reportID,
		At:          time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	return e.rdb.LPush(ctx, e.key, payload).Err()
}
