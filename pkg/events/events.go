package events

import "context"

// Event is the wire envelope published on a channel. Connected clients
// dispatch on the event name, so names are part of the client contract.
type Event struct {
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

type Handler func(channel string, event Event)

type Broadcaster interface {
	Publish(ctx context.Context, channel string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, patterns []string, handler Handler) error
}

type Broker interface {
	Broadcaster
	Subscriber
}
