package messagestore

import (
	"context"
	"sync"

	"github.com/trannm-ct/channel-chat/internal/models"
)

// Router routes reads and writes to either the local or the remote store
// depending on the active mode. Switching modes never migrates data; the
// other backend's content simply becomes unreachable until the mode is
// selected again.
type Router struct {
	mu        sync.RWMutex
	useRemote bool
	lastWrite *models.Message

	local  Store
	remote Store
}

func NewRouter(local, remote Store, useRemote bool) *Router {
	return &Router{
		local:     local,
		remote:    remote,
		useRemote: useRemote,
	}
}

func (r *Router) UseRemote() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.useRemote
}

func (r *Router) SetMode(useRemote bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.useRemote = useRemote
}

// Toggle flips the mode and returns the new value.
func (r *Router) Toggle() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.useRemote = !r.useRemote
	return r.useRemote
}

func (r *Router) active() Store {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.useRemote {
		return r.remote
	}
	return r.local
}

// Remote exposes the remote backend directly for operations that bypass the
// mode switch, such as bulk seeding.
func (r *Router) Remote() Store {
	return r.remote
}

func (r *Router) GetMessagesForChannel(ctx context.Context, channel string) ([]models.Message, error) {
	return r.active().GetMessagesForChannel(ctx, channel)
}

// Append writes through the active store. A successful remote write updates
// the last-write marker so dependents can force a re-read.
func (r *Router) Append(ctx context.Context, msg models.Message) error {
	r.mu.RLock()
	useRemote := r.useRemote
	store := r.local
	if useRemote {
		store = r.remote
	}
	r.mu.RUnlock()

	if err := store.Append(ctx, msg); err != nil {
		return err
	}
	if useRemote {
		r.mu.Lock()
		r.lastWrite = &msg
		r.mu.Unlock()
	}
	return nil
}

// LastRemoteWrite returns the most recent message successfully written to
// the remote store by this process, or nil.
func (r *Router) LastRemoteWrite() *models.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastWrite
}
