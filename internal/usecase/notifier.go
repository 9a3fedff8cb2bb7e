package usecase

import (
	"context"
	"sync"

	"github.com/trannm-ct/channel-chat/internal/models"
)

type EventKind string

// The dependency set of the view refresh trigger. Each kind maps to one
// state change that must force a full re-read of the visible channel.
const (
	EventChannelChanged    EventKind = "channel_changed"
	EventModeChanged       EventKind = "mode_changed"
	EventLocalStoreChanged EventKind = "local_store_changed"
	EventRemoteWrite       EventKind = "remote_write"
	EventIdentityChanged   EventKind = "identity_changed"
)

type Event struct {
	Kind    EventKind
	Message *models.Message
}

// Notifier fans change events out to subscribers synchronously, so a
// publisher returns only after every dependent view has re-derived its
// state. Subscribers must not publish from their handler.
type Notifier struct {
	mu   sync.RWMutex
	subs []func(context.Context, Event)
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Subscribe(fn func(context.Context, Event)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}

func (n *Notifier) Publish(ctx context.Context, ev Event) {
	n.mu.RLock()
	subs := make([]func(context.Context, Event), len(n.subs))
	copy(subs, n.subs)
	n.mu.RUnlock()

	for _, fn := range subs {
		fn(ctx, ev)
	}
}
