// Package memory provides an in-memory document store. It backs the
// replicator in tests and in deployments without a remote store.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	gosync "sync"
)

// Store holds collections of JSON documents in memory. It is safe for
// concurrent use.
type Store struct {
	mu          gosync.Mutex
	collections map[string]map[string]json.RawMessage
	subscribers map[string]map[int]func(map[string]json.RawMessage)
	nextID      int
}

// New returns an empty store.
func New() *Store {
	return &Store{
		collections: make(map[string]map[string]json.RawMessage),
		subscribers: make(map[string]map[int]func(map[string]json.RawMessage)),
	}
}

func (s *Store) Upsert(_ context.Context, collection, id string, document any) error {
	raw, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("marshaling document %s failed: %w", id, err)
	}

	s.mu.Lock()
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]json.RawMessage)
		s.collections[collection] = docs
	}
	docs[id] = raw
	s.mu.Unlock()

	s.notify(collection)
	return nil
}

func (s *Store) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	delete(s.collections[collection], id)
	s.mu.Unlock()

	s.notify(collection)
	return nil
}

func (s *Store) QueryOnce(_ context.Context, collection string) (map[string]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot(collection), nil
}

func (s *Store) Subscribe(collection string, fn func(map[string]json.RawMessage)) (cancel func()) {
	s.mu.Lock()
	subscribers, ok := s.subscribers[collection]
	if !ok {
		subscribers = make(map[int]func(map[string]json.RawMessage))
		s.subscribers[collection] = subscribers
	}

	id := s.nextID
	s.nextID++
	subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers[collection], id)
		s.mu.Unlock()
	}
}

// snapshot copies a collection. The caller must hold the mutex.
func (s *Store) snapshot(collection string) map[string]json.RawMessage {
	docs := make(map[string]json.RawMessage, len(s.collections[collection]))
	for id, raw := range s.collections[collection] {
		docs[id] = raw
	}

	return docs
}

func (s *Store) notify(collection string) {
	s.mu.Lock()
	docs := s.snapshot(collection)
	var fns []func(map[string]json.RawMessage)
	for _, fn := range s.subscribers[collection] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(docs)
	}
}
