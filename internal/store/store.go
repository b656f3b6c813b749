// Package store abstracts the keyed document storage behind the config and
// session services. Records are JSON blobs addressed by (userID, key), where
// the key encodes the record kind: "user", "config#<id>", "session#<id>".
//
// Backends guard only their own structures. Callers do unlocked
// read-modify-write over whole records, so two concurrent mutations of the
// same record are last-write-wins and a concurrent distraction append can be
// lost. Request volume is one interactive user per account.
package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("record not found")

const (
	UserKey       = "user"
	ConfigPrefix  = "config#"
	SessionPrefix = "session#"
)

func ConfigKey(id string) string {
	return ConfigPrefix + id
}

func SessionKey(id string) string {
	return SessionPrefix + id
}

type Store interface {
	// Get returns the value stored under (userID, key) or ErrNotFound.
	Get(ctx context.Context, userID, key string) ([]byte, error)
	// Put stores value under (userID, key), replacing any existing value.
	Put(ctx context.Context, userID, key string, value []byte) error
	// Delete removes (userID, key); ErrNotFound when nothing was stored.
	Delete(ctx context.Context, userID, key string) error
	// QueryPrefix returns all values whose key starts with prefix, in
	// ascending key order. Keys embed creation millis, so this is
	// chronological insertion order.
	QueryPrefix(ctx context.Context, userID, prefix string) ([][]byte, error)
	Close() error
}
