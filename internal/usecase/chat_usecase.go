package usecase

import (
	"context"
	"fmt"
	"io"

	log "github.com/carousell/ct-go/pkg/logger/log_context"

	"github.com/trannm-ct/channel-chat/internal/identity"
	"github.com/trannm-ct/channel-chat/internal/models"
	"github.com/trannm-ct/channel-chat/internal/repo/blob"
	"github.com/trannm-ct/channel-chat/internal/repo/messagestore"
	"github.com/trannm-ct/channel-chat/internal/repo/mongodb"
)

type ChatUsecase interface {
	Channels() models.ChannelList
	GetMessagesForChannel(ctx context.Context, channel string) ([]models.Message, error)
	PostMessage(ctx context.Context, draft models.ComposeDraft) (*models.Message, error)
	SetStorageMode(ctx context.Context, useRemote bool)
	ToggleStorageMode(ctx context.Context) bool
	UsingRemote() bool
	SeedRemote(ctx context.Context) error
	DeleteAttachment(ctx context.Context, docID string)
}

// Viewer is the chat flow's window into the active channel view. The
// usecase pushes optimistic messages and identity updates out through it
// without knowing how the view renders.
type Viewer interface {
	SelectedChannel() string
	ShowPending(msg models.Message)
	SetIdentity(ctx context.Context, ident models.Identity)
}

// AttachmentStore is the blob backend for image uploads.
type AttachmentStore interface {
	ObjectKey(docID string) string
	Upload(ctx context.Context, key string, body io.Reader, size int64) <-chan blob.UploadEvent
	Delete(ctx context.Context, key string) error
}

type chatUsecase struct {
	channels models.ChannelList
	store    *messagestore.Router
	seedRepo mongodb.MessageRepository
	blobs    AttachmentStore
	files    blob.FileResolver
	viewer   Viewer
	notifier *Notifier
	alerter  Alerter
}

func NewChatUsecase(
	channels models.ChannelList,
	store *messagestore.Router,
	seedRepo mongodb.MessageRepository,
	blobs AttachmentStore,
	files blob.FileResolver,
	viewer Viewer,
	notifier *Notifier,
	alerter Alerter,
) ChatUsecase {
	return &chatUsecase{
		channels: channels,
		store:    store,
		seedRepo: seedRepo,
		blobs:    blobs,
		files:    files,
		viewer:   viewer,
		notifier: notifier,
		alerter:  alerter,
	}
}

func (uc *chatUsecase) Channels() models.ChannelList {
	return uc.channels
}

func (uc *chatUsecase) GetMessagesForChannel(ctx context.Context, channel string) ([]models.Message, error) {
	return uc.store.GetMessagesForChannel(ctx, channel)
}

// PostMessage assembles a message for the currently selected channel and
// persists it through the active store. Ordering contract for image posts:
// the upload must reach its terminal success event and yield the durable
// URL before the message is handed to the store. An upload failure aborts
// the post entirely, so no message with an unconfirmed attachment is ever
// persisted.
func (uc *chatUsecase) PostMessage(ctx context.Context, draft models.ComposeDraft) (*models.Message, error) {
	ident, ok := identity.FromContext(ctx)
	if !ok {
		return nil, models.ErrNotSignedIn
	}
	if !ident.Verified {
		return nil, models.ErrNotVerified
	}
	uc.viewer.SetIdentity(ctx, ident)

	msg := models.NewMessage(ident.Email, uc.viewer.SelectedChannel(), draft.Content)

	// Optimistic visibility: the composer sees the message before any
	// persistence attempt, unconditionally. Nothing below rolls it back.
	uc.viewer.ShowPending(msg)

	if draft.HasImage() {
		url, err := uc.uploadAttachment(ctx, msg.DocID(), draft.LocalImageURI)
		if err != nil {
			log.Errorf(ctx, "upload for message %s failed: %v", msg.DocID(), err)
			return nil, err
		}
		msg.ImageURL = url
	}

	if err := uc.store.Append(ctx, msg); err != nil {
		uc.alerter.Alert(ctx, fmt.Sprintf("error when posting message: %v", err))
		return nil, err
	}

	if uc.store.UseRemote() {
		uc.notifier.Publish(ctx, Event{Kind: EventRemoteWrite, Message: &msg})
	} else {
		uc.notifier.Publish(ctx, Event{Kind: EventLocalStoreChanged})
	}

	log.Infof(ctx, "posted message %s to channel %s", msg.DocID(), msg.Channel)
	return &msg, nil
}

func (uc *chatUsecase) uploadAttachment(ctx context.Context, docID, localURI string) (models.RemoteImageURL, error) {
	body, size, err := uc.files.Resolve(localURI)
	if err != nil {
		return "", err
	}
	defer body.Close()

	key := uc.blobs.ObjectKey(docID)
	log.Infof(ctx, "uploading image for message %s", docID)

	events := uc.blobs.Upload(ctx, key, body, size)
	url, err := blob.Wait(events, func(ev blob.UploadEvent) {
		if ev.Total > 0 {
			log.Debugf(ctx, "upload %s is %d%% done", key, ev.Transferred*100/ev.Total)
		}
	})
	if err != nil {
		return "", err
	}

	log.Infof(ctx, "image for message %s available at %s", docID, url)
	return url, nil
}

func (uc *chatUsecase) SetStorageMode(ctx context.Context, useRemote bool) {
	uc.store.SetMode(useRemote)
	uc.notifier.Publish(ctx, Event{Kind: EventModeChanged})
}

func (uc *chatUsecase) ToggleStorageMode(ctx context.Context) bool {
	useRemote := uc.store.Toggle()
	uc.notifier.Publish(ctx, Event{Kind: EventModeChanged})
	return useRemote
}

func (uc *chatUsecase) UsingRemote() bool {
	return uc.store.UseRemote()
}

// SeedRemote bulk-writes the fixture message set to the remote store,
// keyed by timestamp like any other write.
func (uc *chatUsecase) SeedRemote(ctx context.Context) error {
	if err := uc.seedRepo.SeedMessages(ctx, models.SeedMessages()); err != nil {
		return fmt.Errorf("seed remote store: %w", err)
	}
	return nil
}

// DeleteAttachment removes an uploaded blob. Failures are logged and
// swallowed; orphaned blobs are accepted over surfacing the error.
func (uc *chatUsecase) DeleteAttachment(ctx context.Context, docID string) {
	key := uc.blobs.ObjectKey(docID)
	if err := uc.blobs.Delete(ctx, key); err != nil {
		log.Errorf(ctx, "delete attachment %s failed: %v", key, err)
		return
	}
	log.Infof(ctx, "deleted attachment %s", key)
}
