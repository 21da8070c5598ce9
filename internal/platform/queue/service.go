package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const ratingEventsQueue = "rating:events"

// RatingEvent is published whenever a rating is created or its score
// changes. The worker consumes these to refresh the movie's aggregate
// score columns.
type RatingEvent struct {
	MovieUUID string `json:"movie_uuid"`
}

type RedisQueue struct {
	client *redis.Client
}

func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client}
}

// PublishRatingEvent pushes a rating-changed event onto the queue.
func (q *RedisQueue) PublishRatingEvent(ctx context.Context, movieUUID string) error {
	payload, err := json.Marshal(RatingEvent{MovieUUID: movieUUID})
	if err != nil {
		return fmt.Errorf("failed to marshal rating event: %w", err)
	}

	if err := q.client.LPush(ctx, ratingEventsQueue, payload).Err(); err != nil {
		return fmt.Errorf("failed to push rating event: %w", err)
	}
	return nil
}

// ConsumeRatingEvent pops the next event, blocking up to five seconds so
// the worker loop can notice context cancellation. A nil event with a nil
// error means no work was available.
func (q *RedisQueue) ConsumeRatingEvent(ctx context.Context) (*RatingEvent, error) {
	result, err := q.client.BRPop(ctx, 5*time.Second, ratingEventsQueue).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to pop rating event: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid queue response")
	}

	var event RatingEvent
	if err := json.Unmarshal([]byte(result[1]), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rating event: %w", err)
	}
	return &event, nil
}
