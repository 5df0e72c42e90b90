package db

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshQueueKey = "tickersight:queue:refresh"

// RefreshQueue is a Redis-backed list of symbols awaiting an on-demand
// pipeline run.
type RefreshQueue struct {
	client *redis.Client
}

func ConnectRefreshQueue(redisURL string) (*RefreshQueue, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &RefreshQueue{client: client}, nil
}

func (q *RefreshQueue) Close() error {
	return q.client.Close()
}

func (q *RefreshQueue) Push(ctx context.Context, symbol string) error {
	return q.client.LPush(ctx, refreshQueueKey, symbol).Err()
}

// Pop blocks until a symbol is available or the timeout elapses. An empty
// string with nil error means the timeout fired.
func (q *RefreshQueue) Pop(ctx context.Context, timeout time.Duration) (string, error) {
	result, err := q.client.BRPop(ctx, timeout, refreshQueueKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return result[1], nil
}

func (q *RefreshQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, refreshQueueKey).Result()
}
