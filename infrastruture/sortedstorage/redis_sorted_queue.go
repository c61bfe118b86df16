// Package sortedstorage provides a Redis sorted set used as a shared, score ordered index.
package sortedstorage

import (
	"context"
	"time"

	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const lockSuffix = ":prune_lock"

var _ i.SortedQueue = &RedisSortedQueue{}

// RedisSortedQueue keeps members in a Redis sorted set. The whole set expires once it has
// not been written to for ttl.
type RedisSortedQueue struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisSortedQueue wraps client. A non positive ttlSeconds keeps the set forever.
func NewRedisSortedQueue(client *redis.Client, ttlSeconds int) *RedisSortedQueue {
	return &RedisSortedQueue{
		client: client,
		locker: redsync.New(goredis.NewPool(client)),
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// Enqueue adds member with score and pushes the expiry of the set forward.
func (q *RedisSortedQueue) Enqueue(ctx context.Context, queueKey string, score float64, member string) error {
	pipe := q.client.TxPipeline()
	pipe.ZAdd(ctx, queueKey, redis.Z{Score: score, Member: member})
	if q.ttl > 0 {
		pipe.Expire(ctx, queueKey, q.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// DequeTops removes and returns up to amount members with the lowest scores. Concurrent
// callers are serialised with a distributed lock so no member is handed out twice.
func (q *RedisSortedQueue) DequeTops(ctx context.Context, queueKey string, amount int64) ([]string, error) {
	if amount <= 0 {
		return nil, nil
	}

	mutex := q.locker.NewMutex(queueKey + lockSuffix)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	popped, err := q.client.ZPopMin(ctx, queueKey, amount).Result()
	if err != nil {
		return nil, err
	}
	members := make([]string, 0, len(popped))
	for _, z := range popped {
		if m, ok := z.Member.(string); ok {
			members = append(members, m)
		}
	}
	return members, nil
}

// Count returns the number of members, zero when Redis cannot be reached.
func (q *RedisSortedQueue) Count(ctx context.Context, queueKey string) int64 {
	return q.client.ZCard(ctx, queueKey).Val()
}
