package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yaghiashraf/pet-alert/internal/domain"
	"github.com/yaghiashraf/pet-alert/pkg/e"
)

// NotifyQueue is a Redis-backed list carrying notification intents from
// the claim transition to the sender worker.
type NotifyQueue struct {
	client *redis.Client
	key    string
}

func NewNotifyQueue(client *redis.Client, key string) *NotifyQueue {
	return &NotifyQueue{client: client, key: key}
}

func (q *NotifyQueue) Enqueue(ctx context.Context, intent domain.NotificationIntent) error {
	b, err := json.Marshal(intent)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, b).Err()
}

func (q *NotifyQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.NotificationIntent, error) {
	var intent domain.NotificationIntent

	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return intent, e.ErrNotifyQueueEmpty
		}
		return intent, err
	}
	if len(res) < 2 {
		return intent, redis.Nil
	}
	if err := json.Unmarshal([]byte(res[1]), &intent); err != nil {
		return intent, err
	}
	return intent, nil
}
