// Package store holds the four persisted domain stores of the storefront:
// cart, wishlist, checkout and auth. Each store is dual-mode: guest state
// lives only in local storage, signed-in state is kept in lockstep with the
// remote API (the server response always replaces local state wholesale).
//
// Mutating actions never panic or return raw errors across the store
// boundary; they report a Result and leave user-facing presentation to the
// caller. Mutexes guard in-memory state against concurrent handlers but are
// never held across a network call, so rapid concurrent mutations keep
// last-response-wins semantics.
package store

import (
	"github.com/sweetnest/storefront/internal/logger"
	"github.com/sweetnest/storefront/internal/storage"
)

// Result the outcome of a mutating store action
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func ok() Result {
	return Result{Success: true}
}

func okMsg(message string) Result {
	return Result{Success: true, Message: message}
}

func fail(message string) Result {
	return Result{Success: false, Message: message}
}

// Persister is the subscription boundary between domain stores and
// persistence: stores hand over a whitelisted snapshot after every state
// transition and stay otherwise persistence-agnostic.
type Persister interface {
	Persist(key string, snapshot interface{})
}

// StoragePersister writes snapshots through the local state store
type StoragePersister struct {
	store *storage.Store
}

// NewStoragePersister creates the storage-backed persister
func NewStoragePersister(store *storage.Store) *StoragePersister {
	return &StoragePersister{store: store}
}

// Persist serializes the snapshot under its key. Failures are logged, never
// propagated into domain logic.
func (p *StoragePersister) Persist(key string, snapshot interface{}) {
	if p == nil || p.store == nil {
		return
	}
	if err := p.store.Save(key, snapshot); err != nil {
		logger.Errorw("state_persist_failed", "key", key, "error", err)
	}
}
