package websocket

import (
	"context"
	"encoding/json"

	"whispr-server/pkg/events"
)

// Frame is what connected clients receive: the envelope plus the channel it
// arrived on, so clients can route without a channel-per-socket mapping.
type Frame struct {
	Channel string `json:"channel"`
	events.Event
}

// RedisBridge forwards broker envelopes into the hub. One pattern
// subscription covers every chat and user channel.
type RedisBridge struct {
	subscriber events.Subscriber
	hub        *Hub
}

func NewRedisBridge(subscriber events.Subscriber, hub *Hub) *RedisBridge {
	return &RedisBridge{subscriber: subscriber, hub: hub}
}

func (b *RedisBridge) Run(ctx context.Context) error {
	patterns := []string{"chat:*", "user:*"}
	return b.subscriber.Subscribe(ctx, patterns, func(channel string, event events.Event) {
		payload, err := json.Marshal(Frame{Channel: channel, Event: event})
		if err != nil {
			return
		}
		b.hub.Broadcast(channel, payload)
	})
}
