// Package events broadcasts admin activity over Redis Pub/Sub so every
// connected admin sees writes made by any server instance.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/careerpath/admin-backend/internal/config"
	"github.com/careerpath/admin-backend/internal/model"
)

const publishTimeout = 2 * time.Second

type actorKey struct{}

// WithActor returns a context carrying the uid of the admin making the request.
func WithActor(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, actorKey{}, uid)
}

// ActorFrom returns the uid stored by WithActor, or "".
func ActorFrom(ctx context.Context) string {
	uid, _ := ctx.Value(actorKey{}).(string)
	return uid
}

// Bus publishes and subscribes to admin events. A Bus without a Redis client
// drops every event.
type Bus struct {
	rdb     *redis.Client
	channel string
	log     zerolog.Logger
	now     func() time.Time
}

// NewBus creates a Bus. rdb may be nil.
func NewBus(rdb *redis.Client, log zerolog.Logger) *Bus {
	return &Bus{
		rdb:     rdb,
		channel: config.CacheKey.AdminEventsChannel(),
		log:     log.With().Str("component", "event_bus").Logger(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Enabled reports whether events are delivered anywhere.
func (b *Bus) Enabled() bool {
	return b != nil && b.rdb != nil
}

// Publish sends evt on the admin channel. Failures are logged and never
// returned: the write the event describes has already committed.
func (b *Bus) Publish(ctx context.Context, evt model.AdminEvent) {
	if !b.Enabled() {
		return
	}
	if evt.At.IsZero() {
		evt.At = b.now()
	}
	if evt.ActorID == "" {
		evt.ActorID = ActorFrom(ctx)
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		b.log.Error().Err(err).Msg("Failed to encode admin event")
		return
	}

	// The request may already be finishing; keep its values but not its deadline.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := b.rdb.Publish(pubCtx, b.channel, payload).Err(); err != nil {
		b.log.Warn().Err(err).
			Str("entity", evt.Entity).
			Str("type", string(evt.Action)).
			Msg("Failed to publish admin event")
	}
}

// Subscribe returns a subscription to the admin channel, or nil when the bus
// is disabled. The caller must Close it.
func (b *Bus) Subscribe(ctx context.Context) *redis.PubSub {
	if !b.Enabled() {
		return nil
	}
	return b.rdb.Subscribe(ctx, b.channel)
}
