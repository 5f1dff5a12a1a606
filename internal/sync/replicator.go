package sync

import (
	"context"
	"encoding/json"
	"fmt"
	gosync "sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

var replicationFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sync_failures_total",
		Help: "How many replication operations failed, partitioned by collection and operation.",
	},
	[]string{"collection", "operation"},
)

// RegisterMetrics registers the replication metrics with the default
// Prometheus registry.
func RegisterMetrics() error {
	if err := prometheus.Register(replicationFailures); err != nil {
		return fmt.Errorf("could not register %v with Prometheus", replicationFailures)
	}

	return nil
}

// UnregisterMetrics unregisters the replication metrics.
//
// This is needed to cleanly exit.
func UnregisterMetrics() bool {
	return prometheus.Unregister(replicationFailures)
}

// Replicator mirrors local mutations to the remote store for the
// signed-in user. While signed out every call is a no-op.
type Replicator struct {
	store   Store
	apply   ApplyFunc
	log     zerolog.Logger
	timeout time.Duration

	mu      gosync.Mutex
	uid     string
	cancels []func()
}

// NewReplicator returns a signed-out replicator. apply is called with
// the remote document set whenever a subscribed collection changes.
func NewReplicator(store Store, apply ApplyFunc, log zerolog.Logger) *Replicator {
	return &Replicator{
		store:   store,
		apply:   apply,
		log:     log,
		timeout: 10 * time.Second,
	}
}

// Enabled reports whether a user is signed in.
func (r *Replicator) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uid != ""
}

// path scopes a collection to the signed-in user.
func path(uid, collection string) string {
	return fmt.Sprintf("users/%s/%s", uid, collection)
}

// Upserted mirrors a local create or update. It returns immediately,
// the write happens in the background and failures are only logged and
// counted.
func (r *Replicator) Upserted(collection, id string, document any) {
	r.background(collection, "upsert", func(ctx context.Context, uid string) error {
		return r.store.Upsert(ctx, path(uid, collection), id, document)
	})
}

// Deleted mirrors a local delete.
func (r *Replicator) Deleted(collection, id string) {
	r.background(collection, "delete", func(ctx context.Context, uid string) error {
		return r.store.Delete(ctx, path(uid, collection), id)
	})
}

func (r *Replicator) background(collection, operation string, fn func(ctx context.Context, uid string) error) {
	r.mu.Lock()
	uid := r.uid
	r.mu.Unlock()

	if uid == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := fn(ctx, uid); err != nil {
			replicationFailures.WithLabelValues(collection, operation).Inc()
			r.log.Error().Err(err).Str("collection", collection).Str("operation", operation).Msg("replication failed")
		}
	}()
}

// SwitchUser changes the signed-in user. An empty uid signs out and
// stops replication.
//
// When the new user's remote ledger is empty, the local snapshot is
// uploaded once so that a fresh account starts from the local data.
// Otherwise the remote data is authoritative and the subscriptions
// replace the local collections.
func (r *Replicator) SwitchUser(ctx context.Context, uid string, snapshot func() (Snapshot, error)) error {
	r.mu.Lock()
	for _, cancel := range r.cancels {
		cancel()
	}
	r.cancels = nil
	r.uid = uid
	r.mu.Unlock()

	if uid == "" {
		return nil
	}

	existing, err := r.store.QueryOnce(ctx, path(uid, CollectionExpenses))
	if err != nil {
		return fmt.Errorf("checking the remote ledger failed: %w", err)
	}

	if len(existing) == 0 {
		local, err := snapshot()
		if err != nil {
			return err
		}

		if err := r.upload(ctx, uid, local); err != nil {
			return err
		}
	}

	var cancels []func()
	for _, collection := range []string{CollectionExpenses, CollectionBudgets, CollectionSettings} {
		cancel := r.store.Subscribe(path(uid, collection), func(documents map[string]json.RawMessage) {
			r.apply(collection, documents)
		})
		cancels = append(cancels, cancel)
	}

	r.mu.Lock()
	r.cancels = cancels
	r.mu.Unlock()

	return nil
}

func (r *Replicator) upload(ctx context.Context, uid string, local Snapshot) error {
	for id, document := range local.Expenses {
		if err := r.store.Upsert(ctx, path(uid, CollectionExpenses), id, document); err != nil {
			return fmt.Errorf("uploading the ledger failed: %w", err)
		}
	}

	for id, document := range local.Budgets {
		if err := r.store.Upsert(ctx, path(uid, CollectionBudgets), id, document); err != nil {
			return fmt.Errorf("uploading the budgets failed: %w", err)
		}
	}

	if local.Settings != nil {
		if err := r.store.Upsert(ctx, path(uid, CollectionSettings), SettingsDocID, local.Settings); err != nil {
			return fmt.Errorf("uploading the settings failed: %w", err)
		}
	}

	return nil
}
