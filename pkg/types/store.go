package types

import "errors"

// Store defines backend-agnostic access to the Tabula collections.
// Callers attach to a backend, access collections by name, and detach
// when done. A Store is safe for use from multiple goroutines.
type Store interface {
	// Collection returns the Collection for the given name.
	// Returns ErrCollectionNotFound if the name is not a standard collection.
	Collection(name string) (Collection, error)

	// Clicks returns the append-only click-event log.
	// Returns ErrStoreDetached if the store is not attached.
	Clicks() (ClickLog, error)

	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist and runs the seed loader
	// on first attach against an empty store. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations on collections return ErrStoreDetached.
	Detach() error

	// Destroy performs a factory reset: it detaches and deletes the
	// persisted database, seed data included. A subsequent Attach starts
	// from an empty store and re-runs the seed loader.
	Destroy() error
}

// Store lifecycle errors.
var (
	ErrStoreDetached      = errors.New("store is detached")
	ErrAlreadyAttached    = errors.New("store is already attached")
	ErrCollectionNotFound = errors.New("collection not found")
)
