package docstore

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type collections map[string]map[string]map[string]any

// MemoryStore keeps documents in process memory. It backs local development
// (STORE_DRIVER=memory) and every package's tests.
type MemoryStore struct {
	mu    sync.RWMutex
	colls collections
	now   func() time.Time
}

// NewMemory creates an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		colls: make(collections),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the time used for ServerTimestamp.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.colls.get(collection, id)
}

func (s *MemoryStore) List(_ context.Context, collection string) ([]*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.colls.where(collection, "", nil), nil
}

func (s *MemoryStore) Where(_ context.Context, collection, field string, value any) ([]*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.colls.where(collection, field, value), nil
}

func (s *MemoryStore) Add(_ context.Context, collection string, data map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.colls.put(collection, id, resolveCreate(data, s.now()))
	return id, nil
}

func (s *MemoryStore) Set(_ context.Context, collection, id string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.colls[collection][id]
	if !ok {
		s.colls.put(collection, id, resolveCreate(data, s.now()))
		return nil
	}
	doc = copyDoc(doc)
	applyFields(doc, data, s.now())
	s.colls.put(collection, id, doc)
	return nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.colls.update(collection, id, fields, s.now())
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.colls.delete(collection, id)
}

func (s *MemoryStore) Count(_ context.Context, collection string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.colls[collection])), nil
}

func (s *MemoryStore) NewID(string) string {
	return uuid.NewString()
}

// RunTransaction holds the store lock for the whole of fn and works on a copy
// of the data, which replaces the live data only when fn succeeds.
func (s *MemoryStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{colls: s.colls.clone(), now: s.now()}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	s.colls = tx.colls
	return nil
}

func (s *MemoryStore) Close() error { return nil }

type memoryTx struct {
	colls collections
	now   time.Time
}

func (t *memoryTx) Get(collection, id string) (*Snapshot, error) {
	return t.colls.get(collection, id)
}

func (t *memoryTx) Where(collection, field string, value any) ([]*Snapshot, error) {
	return t.colls.where(collection, field, value), nil
}

func (t *memoryTx) Create(collection, id string, data map[string]any) error {
	if _, ok := t.colls[collection][id]; ok {
		return ErrAlreadyExists
	}
	t.colls.put(collection, id, resolveCreate(data, t.now))
	return nil
}

func (t *memoryTx) Update(collection, id string, fields map[string]any) error {
	return t.colls.update(collection, id, fields, t.now)
}

func (t *memoryTx) Delete(collection, id string) error {
	return t.colls.delete(collection, id)
}

// ─── collections helpers (callers hold the lock) ───────────────────────

func (c collections) get(collection, id string) (*Snapshot, error) {
	doc, ok := c[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return NewSnapshot(id, copyDoc(doc)), nil
}

// where with an empty field matches every document.
func (c collections) where(collection, field string, value any) []*Snapshot {
	docs := c[collection]
	ids := make([]string, 0, len(docs))
	for id, doc := range docs {
		if field == "" || reflect.DeepEqual(doc[field], value) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	out := make([]*Snapshot, 0, len(ids))
	for _, id := range ids {
		out = append(out, NewSnapshot(id, copyDoc(docs[id])))
	}
	return out
}

func (c collections) put(collection, id string, doc map[string]any) {
	if c[collection] == nil {
		c[collection] = make(map[string]map[string]any)
	}
	c[collection][id] = doc
}

func (c collections) update(collection, id string, fields map[string]any, now time.Time) error {
	doc, ok := c[collection][id]
	if !ok {
		return ErrNotFound
	}
	doc = copyDoc(doc)
	applyFields(doc, fields, now)
	c[collection][id] = doc
	return nil
}

func (c collections) delete(collection, id string) error {
	if _, ok := c[collection][id]; !ok {
		return ErrNotFound
	}
	delete(c[collection], id)
	return nil
}

// clone copies the collection and document maps. Field values are shared,
// which is safe because writes replace values instead of mutating them.
func (c collections) clone() collections {
	out := make(collections, len(c))
	for name, docs := range c {
		copied := make(map[string]map[string]any, len(docs))
		for id, doc := range docs {
			copied[id] = doc
		}
		out[name] = copied
	}
	return out
}
