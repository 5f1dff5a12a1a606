// Package sync replicates the local database to a remote document
// store. Replication is best-effort: local writes never wait for the
// remote and never fail because of it.
package sync

import (
	"context"
	"encoding/json"
)

// Collections mirrored to the remote store.
const (
	CollectionExpenses = "expenses"
	CollectionBudgets  = "budgets"
	CollectionSettings = "settings"

	// SettingsDocID is the fixed document id of the settings collection,
	// which only ever holds one document.
	SettingsDocID = "general"
)

// Store is a remote document store, one collection per local table.
type Store interface {
	Upsert(ctx context.Context, collection, id string, document any) error
	Delete(ctx context.Context, collection, id string) error

	// QueryOnce returns all documents of a collection keyed by id.
	QueryOnce(ctx context.Context, collection string) (map[string]json.RawMessage, error)

	// Subscribe registers fn to be called with the full document set
	// whenever the collection changes remotely. The returned function
	// cancels the subscription.
	Subscribe(collection string, fn func(map[string]json.RawMessage)) (cancel func())
}

// ApplyFunc replaces a local collection with the remote document set.
// Remote changes win wholesale, there is no merging.
type ApplyFunc func(collection string, documents map[string]json.RawMessage)

// Snapshot is the local data uploaded when a user signs in to an empty
// remote store.
type Snapshot struct {
	Expenses map[string]any
	Budgets  map[string]any
	Settings any
}
