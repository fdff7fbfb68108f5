package port

import "context"

// KeyValueStore is the persistent document store the cart is written to.
// Values are whole documents: Set overwrites, last write wins.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}
