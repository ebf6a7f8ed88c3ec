package bus

import (
	"context"

	"sarvasva/internal/realtime"
)

// Bus carries realtime messages to every server process that may hold subscribers for a room.
type Bus interface {
	Publish(ctx context.Context, msg realtime.Message) error
	// StartForwarder delivers messages received from the bus to the local hub until ctx ends.
	StartForwarder(ctx context.Context) error
	Close() error
}

type localBus struct {
	hub *realtime.Hub
}

// NewLocalBus delivers straight to hub. Used when a single server process is running.
func NewLocalBus(hub *realtime.Hub) Bus {
	return &localBus{hub: hub}
}

func (b *localBus) Publish(ctx context.Context, msg realtime.Message) error {
	b.hub.Broadcast(msg)
	return nil
}

func (b *localBus) StartForwarder(ctx context.Context) error {
	return nil
}

func (b *localBus) Close() error {
	return nil
}
