package messagestore

import (
	"context"

	"github.com/trannm-ct/channel-chat/internal/models"
)

// Store is a channel-scoped message store. Both the in-memory and the
// remote document-collection backends implement it.
//
// GetMessagesForChannel reflects the backing store's state at call time;
// there is no cache in front of it, so repeated calls may see different
// results as data changes underneath. A channel with no messages yields an
// empty slice, never an error.
type Store interface {
	GetMessagesForChannel(ctx context.Context, channel string) ([]models.Message, error)
	Append(ctx context.Context, msg models.Message) error
}
