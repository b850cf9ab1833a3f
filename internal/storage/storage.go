// Package storage defines the key-value port that session and preference
// state is persisted through.
//
// The platform's browser build keeps this state in localStorage; here the
// same contract is expressed as a small interface so the concrete store is
// injected rather than reached for globally. Production wiring uses the
// SQLite adapter in storage/sqlite; tests substitute Memory.
//
// Semantics are whole-value replace at single-key granularity: a Set fully
// overwrites the previous value, and concurrent writers for the same key are
// last-write-wins. There are no transactions — callers that read-modify-write
// a blob are assumed to be the sole writer for their key.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get for keys that have never been set (or
// have been deleted). Callers distinguish it from real storage failures with
// errors.Is.
var ErrKeyNotFound = errors.New("storage: key not found")

// Store is the key-value port. Values are opaque strings — every caller in
// this module stores JSON-serialized blobs.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
