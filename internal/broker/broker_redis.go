package broker

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Redis implements EventBroker over Redis Pub/Sub, letting multiple API
// replicas serve websocket subscribers for a run regardless of which
// replica is running its optimize handler (ancestor's RedisBroker).
type Redis struct {
	rdb *redis.Client
}

// NewRedis builds a Redis-backed broker against rdb.
func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (b *Redis) Subscribe(runID string) chan RoundEvent {
	ch := make(chan RoundEvent, 16)
	ctx := context.Background()
	ps := b.rdb.Subscribe(ctx, b.channel(runID))
	_, _ = ps.Receive(ctx)
	go func() {
		defer close(ch)
		for msg := range ps.Channel() {
			var evt RoundEvent
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err == nil {
				select {
				case ch <- evt:
				default:
				}
			}
		}
	}()
	return ch
}

func (b *Redis) Unsubscribe(runID string, ch chan RoundEvent) {
	close(ch)
}

func (b *Redis) Publish(runID string, evt RoundEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	data, _ := json.Marshal(evt)
	_ = b.rdb.Publish(ctx, b.channel(runID), data).Err()
}

func (b *Redis) channel(runID string) string { return "vrpls:run:" + runID }
