// Package storage defines the durable key-value store backing the client
// session cache. It is the local analogue of browser storage: a handful of
// string keys that survive restarts.
package storage

import "context"

// Store persists string values by key.
//
// A missing key is reported through the ok return, never as an error.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	// Close releases underlying resources.
	Close() error
}
