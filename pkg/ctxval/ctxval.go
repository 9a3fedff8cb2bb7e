// Package ctxval attaches a small mutable bag of values to a context, so
// request-scoped state set deep in a middleware chain stays visible to
// everything sharing the request context.
package ctxval

import (
	"context"
	"sync"
)

type bagKey struct{}

type bag struct {
	mu     sync.Mutex
	values map[any]any
}

// Wrap attaches an empty bag to ctx. Wrapping an already wrapped context
// returns it unchanged.
func Wrap(ctx context.Context) context.Context {
	if _, ok := ctx.Value(bagKey{}).(*bag); ok {
		return ctx
	}
	return context.WithValue(ctx, bagKey{}, &bag{values: make(map[any]any)})
}

// Set stores v under k. A context that was never wrapped silently drops
// the value.
func Set[K comparable, V any](ctx context.Context, k K, v V) {
	b, ok := ctx.Value(bagKey{}).(*bag)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[k] = v
}

// Get reads the value stored under k, if one exists and has type V.
func Get[K comparable, V any](ctx context.Context, k K) (V, bool) {
	b, ok := ctx.Value(bagKey{}).(*bag)
	if !ok {
		return *new(V), false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.values[k].(V)
	return v, ok
}
