// Package identity carries the signed-in user through request contexts.
// Authentication itself happens at the HTTP boundary; everything below it
// only ever reads the identity.
package identity

import (
	"context"

	"github.com/trannm-ct/channel-chat/internal/models"
	"github.com/trannm-ct/channel-chat/pkg/ctxval"
)

type identityKey struct{}

// Inject returns a context carrying ident.
func Inject(ctx context.Context, ident models.Identity) context.Context {
	ctx = ctxval.Wrap(ctx)
	ctxval.Set(ctx, identityKey{}, ident)
	return ctx
}

// FromContext reports the current signed-in identity, if any.
func FromContext(ctx context.Context) (models.Identity, bool) {
	ident, ok := ctxval.Get[identityKey, models.Identity](ctx, identityKey{})
	if !ok || !ident.SignedIn() {
		return models.Identity{}, false
	}
	return ident, true
}
