// Package slot defines the single key-value location the tracker state is
// persisted to, together with the local drivers.
package slot

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when nothing was stored under the key.
var ErrNotFound = errors.New("slot not found")

// ErrQuotaExceeded is returned by Set when the driver refuses the payload size.
var ErrQuotaExceeded = errors.New("slot quota exceeded")

// Slot is a string key-value store.
type Slot interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
