package session

import (
	"context"
	"fmt"
)

var storeCtxKey = &contextKey{"session.store"}

type contextKey struct {
	name string
}

// WithContext sets the Store in the given context, establishing the provider
// scope consumers read the session through.
func WithContext(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, storeCtxKey, store)
}

// FromContext finds the store from the context. Accessing the session
// outside a provider scope is a contract violation and fails with
// ErrOutsideProvider.
func FromContext(ctx context.Context) (*Store, error) {
	store, ok := ctx.Value(storeCtxKey).(*Store)
	if !ok || store == nil {
		return nil, ErrOutsideProvider
	}
	return store, nil
}

// MustFromContext is FromContext for call sites that own the wiring; it
// panics on misuse instead of returning the error.
func MustFromContext(ctx context.Context) *Store {
	store, err := FromContext(ctx)
	if err != nil {
		panic(fmt.Sprintf(
			"go-session: store accessed outside provider scope; wrap the context with session.WithContext first: %v",
			err,
		))
	}
	return store
}
