package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trannm-ct/channel-chat/internal/models"
	"github.com/trannm-ct/channel-chat/internal/repo/messagestore"
)

func newViewFixture(remote *fakeStore) (*ChannelView, *Notifier) {
	notifier := NewNotifier()
	router := messagestore.NewRouter(newFakeStore(), remote, true)
	return NewChannelView(testChannels, "Food", router, notifier), notifier
}

func TestSelectChannelValidatesName(t *testing.T) {
	view, _ := newViewFixture(newFakeStore())

	err := view.SelectChannel(context.Background(), "Gossip")
	assert.ErrorIs(t, err, models.ErrUnknownChannel)
	assert.Equal(t, "Food", view.SelectedChannel())

	require.NoError(t, view.SelectChannel(context.Background(), "Outdoors"))
	assert.Equal(t, "Outdoors", view.SelectedChannel())
}

func TestSelectChannelReplacesVisibleSetWholesale(t *testing.T) {
	ctx := context.Background()
	remote := newFakeStore()
	require.NoError(t, remote.Append(ctx, models.Message{Channel: "Food", Content: "food msg", Timestamp: 1}))
	require.NoError(t, remote.Append(ctx, models.Message{Channel: "Arts", Content: "arts msg", Timestamp: 2}))

	view, _ := newViewFixture(remote)
	require.NoError(t, view.Refresh(ctx))
	require.Len(t, view.Visible(), 1)
	assert.Equal(t, "food msg", view.Visible()[0].Content)

	require.NoError(t, view.SelectChannel(ctx, "Arts"))
	visible := view.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "arts msg", visible[0].Content)
}

func TestEventsTriggerRefresh(t *testing.T) {
	ctx := context.Background()
	remote := newFakeStore()
	view, notifier := newViewFixture(remote)

	assert.Empty(t, view.Visible())

	require.NoError(t, remote.Append(ctx, models.Message{Channel: "Food", Content: "new", Timestamp: 1}))
	notifier.Publish(ctx, Event{Kind: EventRemoteWrite})

	visible := view.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "new", visible[0].Content)
}

func TestFailedRefreshKeepsPreviousSet(t *testing.T) {
	ctx := context.Background()
	remote := newFakeStore()
	require.NoError(t, remote.Append(ctx, models.Message{Channel: "Food", Content: "kept", Timestamp: 1}))

	view, notifier := newViewFixture(remote)
	require.NoError(t, view.Refresh(ctx))
	require.Len(t, view.Visible(), 1)

	remote.getErr = errors.New("store down")
	notifier.Publish(ctx, Event{Kind: EventModeChanged})

	// The previous visible set survives until a refresh succeeds.
	visible := view.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "kept", visible[0].Content)

	remote.getErr = nil
	require.NoError(t, remote.Append(ctx, models.Message{Channel: "Food", Content: "fresh", Timestamp: 2}))
	notifier.Publish(ctx, Event{Kind: EventRemoteWrite})
	assert.Len(t, view.Visible(), 2)
}

func TestSetIdentityRefreshesOnlyOnChange(t *testing.T) {
	ctx := context.Background()
	remote := newFakeStore()
	view, _ := newViewFixture(remote)

	ident := models.Identity{Email: "alice@example.com", Verified: true}
	require.NoError(t, remote.Append(ctx, models.Message{Channel: "Food", Content: "hello", Timestamp: 1}))

	view.SetIdentity(ctx, ident)
	assert.Len(t, view.Visible(), 1)
	assert.Equal(t, ident, view.Identity())

	// Same identity again: no re-read.
	require.NoError(t, remote.Append(ctx, models.Message{Channel: "Food", Content: "later", Timestamp: 2}))
	view.SetIdentity(ctx, ident)
	assert.Len(t, view.Visible(), 1)

	// Signing out is a change and re-reads.
	view.SetIdentity(ctx, models.Identity{})
	assert.Len(t, view.Visible(), 2)
}

func TestShowPendingAppendsWithoutPersisting(t *testing.T) {
	remote := newFakeStore()
	view, _ := newViewFixture(remote)

	pending := models.NewMessage("alice@example.com", "Food", "not yet stored")
	view.ShowPending(pending)

	visible := view.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "not yet stored", visible[0].Content)
	assert.Empty(t, remote.order)
}

func TestVisibleReturnsCopy(t *testing.T) {
	view, _ := newViewFixture(newFakeStore())
	view.ShowPending(models.Message{Channel: "Food", Content: "original", Timestamp: 1})

	snapshot := view.Visible()
	snapshot[0].Content = "mutated"

	assert.Equal(t, "original", view.Visible()[0].Content)
}
