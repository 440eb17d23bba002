package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"whispr-server/pkg/events"
	"whispr-server/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

// Broker publishes event envelopes over Redis pub/sub and feeds them back to
// in-process subscribers. Delivery is best-effort and out-of-band from
// storage; there is no retry.
type Broker struct {
	client *goredis.Client
	logger *logger.Logger
}

func NewBroker(client *goredis.Client, l *logger.Logger) *Broker {
	return &Broker{client: client, logger: l}
}

func (b *Broker) Publish(ctx context.Context, channel string, event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return b.client.Publish(ctx, channel, data).Err()
}

// Subscribe blocks on the given channel patterns until ctx is cancelled,
// invoking handler for every decodable envelope.
func (b *Broker) Subscribe(ctx context.Context, patterns []string, handler events.Handler) error {
	sub := b.client.PSubscribe(ctx, patterns...)
	defer sub.Close()

	for {
		msg, err := sub.ReceiveMessage(ctx)
		if err != nil {
			return err
		}
		var event events.Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			if b.logger != nil {
				b.logger.Warnf("dropping undecodable event on %s: %s", msg.Channel, err)
			}
			continue
		}
		handler(msg.Channel, event)
	}
}
