package v1

import (
	"github.com/xpense-app/backend/internal/notify"
	"github.com/xpense-app/backend/internal/sync"
)

// Package level dependencies, set once at startup. Both are optional:
// without a replicator the API is local only, without a scheduler the
// notification toggle only persists the setting.
var (
	replicator *sync.Replicator
	scheduler  notify.Scheduler
)

// Configure wires the replicator and the reminder scheduler into the
// API handlers.
func Configure(r *sync.Replicator, s notify.Scheduler) {
	replicator = r
	scheduler = s
}

func replicateUpsert(collection, id string, document any) {
	if replicator != nil {
		replicator.Upserted(collection, id, document)
	}
}

func replicateDelete(collection, id string) {
	if replicator != nil {
		replicator.Deleted(collection, id)
	}
}
