/*
Package pubsub hands persisted messages to the external fan-out transport.

Live delivery to connected clients is not this server's concern; it only
publishes each saved message to a per-room Redis channel and lets whatever
subscribes there worry about connections. Publishing is best-effort: a failed
publish is logged and forgotten, because the message is already durable.
*/
package pubsub

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"chatapp/internal/app/message"
	"chatapp/internal/pkg/logx"
)

// channelPrefix namespaces the per-room channels.
const channelPrefix = "chat.room."

// RedisPublisher publishes messages to Redis pub/sub channels.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher connects a publisher to the Redis instance at addr.
func NewRedisPublisher(addr string) *RedisPublisher {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisPublisher{client: client}
}

// Publish sends the message JSON to the channel of its room.
func (p *RedisPublisher) Publish(ctx context.Context, m *message.Message) {
	payload, err := json.Marshal(m)
	if err != nil {
		logx.Error(err, "Failed to encode message for publishing", "room_id", m.RoomID)
		return
	}

	if err := p.client.Publish(ctx, channelPrefix+m.RoomID, payload).Err(); err != nil {
		logx.Error(err, "Failed to publish message", "room_id", m.RoomID)
	}
}

// Close releases the Redis connection.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
