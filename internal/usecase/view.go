package usecase

import (
	"context"
	"sync"

	"github.com/carousell/ct-go/pkg/logger"

	"github.com/trannm-ct/channel-chat/internal/models"
	"github.com/trannm-ct/channel-chat/internal/repo/messagestore"
)

var _ Viewer = (*ChannelView)(nil)

// ChannelView is the refresh trigger: it owns the visible message set for
// the selected channel and re-derives it in full whenever any of its
// dependencies change (selected channel, storage mode, local store
// contents, last remote write, signed-in identity). Each refresh replaces
// the visible set wholesale; there is no incremental update.
type ChannelView struct {
	mu       sync.RWMutex
	channels models.ChannelList
	selected string
	visible  []models.Message
	identity models.Identity

	store    *messagestore.Router
	notifier *Notifier
	log      *logger.Logger
}

func NewChannelView(channels models.ChannelList, defaultChannel string, store *messagestore.Router, notifier *Notifier) *ChannelView {
	v := &ChannelView{
		channels: channels,
		selected: defaultChannel,
		visible:  make([]models.Message, 0),
		store:    store,
		notifier: notifier,
		log:      logger.MustNamed("view"),
	}
	notifier.Subscribe(v.handleEvent)
	return v
}

// handleEvent re-runs the channel query for every dependency change. A
// failed refresh keeps the previous visible set; the next trigger tries
// again.
func (v *ChannelView) handleEvent(ctx context.Context, ev Event) {
	if err := v.Refresh(ctx); err != nil {
		v.log.Warnw("refresh after event failed", "event", ev.Kind, "error", err)
	}
}

// SelectChannel switches the view to one of the fixed channels. The change
// goes out as an event, so the re-read follows the same path as every other
// dependency change.
func (v *ChannelView) SelectChannel(ctx context.Context, name string) error {
	v.mu.Lock()
	if !v.channels.Contains(name) {
		v.mu.Unlock()
		return models.ErrUnknownChannel
	}
	v.selected = name
	v.mu.Unlock()

	v.notifier.Publish(ctx, Event{Kind: EventChannelChanged})
	return nil
}

func (v *ChannelView) SelectedChannel() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.selected
}

func (v *ChannelView) Channels() models.ChannelList {
	return v.channels
}

// SetIdentity records the signed-in user; a change re-reads the channel.
func (v *ChannelView) SetIdentity(ctx context.Context, ident models.Identity) {
	v.mu.Lock()
	changed := v.identity != ident
	v.identity = ident
	v.mu.Unlock()

	if changed {
		v.notifier.Publish(ctx, Event{Kind: EventIdentityChanged})
	}
}

func (v *ChannelView) Identity() models.Identity {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.identity
}

// ShowPending adds a message to the visible set before persistence is
// attempted. There is no rollback path: if persistence later fails the
// message simply stays visible until the next successful refresh.
func (v *ChannelView) ShowPending(msg models.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible = append(v.visible, msg)
}

// Refresh re-runs the full channel query and replaces the visible set.
func (v *ChannelView) Refresh(ctx context.Context) error {
	channel := v.SelectedChannel()

	messages, err := v.store.GetMessagesForChannel(ctx, channel)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.visible = messages
	v.mu.Unlock()

	if len(messages) > 0 {
		newest := messages[len(messages)-1]
		v.log.Debugw("refreshed channel view",
			"channel", channel, "count", len(messages), "newest", newest.DocID())
	} else {
		v.log.Debugw("refreshed channel view", "channel", channel, "count", 0)
	}
	return nil
}

// Visible returns a copy of the current visible message set.
func (v *ChannelView) Visible() []models.Message {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]models.Message, len(v.visible))
	copy(out, v.visible)
	return out
}
