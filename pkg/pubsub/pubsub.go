package pubsub

import (
	"context"
	"time"
)

// Pack is one message on the queue. Key carries the routing identity (the
// guild id for outgoing bot messages) so consumers keep per-guild ordering.
type Pack struct {
	Key []byte
	Msg []byte
}

type Publisher interface {
	Publish(ctx context.Context, topic string, pack *Pack) error
	Stop(ctx context.Context) error
}

type SubscribeHandler func(context.Context, *Pack, time.Time)

type Subscriber interface {
	Subscribe(ctx context.Context)
	Stop(ctx context.Context) error
}
