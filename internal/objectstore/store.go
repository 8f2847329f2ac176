// Package objectstore keeps the original bytes of uploaded resume
// documents. Extracted text lives in Postgres; only the raw document
// goes here.
package objectstore

import (
	"context"
	"time"
)

const DefaultPresignTTL = 15 * time.Minute

// Store persists immutable blobs under opaque keys.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// PresignGet returns a time-limited download URL for key.
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
}
