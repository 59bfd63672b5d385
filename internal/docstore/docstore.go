// Package docstore is the collection/document layer every repository talks to.
// It mirrors the subset of Firestore semantics the admin API relies on so the
// same repositories run against Firestore, PostgreSQL (JSONB) or memory.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrAlreadyExists is returned when creating a document whose id is taken.
	ErrAlreadyExists = errors.New("document already exists")
)

// Store is a collection/document database.
type Store interface {
	// Get returns a single document or ErrNotFound.
	Get(ctx context.Context, collection, id string) (*Snapshot, error)
	// List returns every document of a collection ordered by document id.
	List(ctx context.Context, collection string) ([]*Snapshot, error)
	// Where returns the documents whose field equals value, ordered by document id.
	Where(ctx context.Context, collection, field string, value any) ([]*Snapshot, error)
	// Add creates a document with a generated id and returns the id.
	Add(ctx context.Context, collection string, data map[string]any) (string, error)
	// Set creates the document or merges data into the existing one.
	Set(ctx context.Context, collection, id string, data map[string]any) error
	// Update merges fields into an existing document or returns ErrNotFound.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	// Delete removes an existing document or returns ErrNotFound.
	Delete(ctx context.Context, collection, id string) error
	// Count returns the number of documents in a collection.
	Count(ctx context.Context, collection string) (int64, error)
	// NewID reserves a fresh document id for use inside a transaction.
	NewID(collection string) string
	// RunTransaction runs fn atomically. Reads must happen before writes.
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Close() error
}

// Tx is the view of the store inside RunTransaction.
type Tx interface {
	Get(collection, id string) (*Snapshot, error)
	Where(collection, field string, value any) ([]*Snapshot, error)
	Create(collection, id string, data map[string]any) error
	Update(collection, id string, fields map[string]any) error
	Delete(collection, id string) error
}

// Snapshot is a document read from the store.
type Snapshot struct {
	ID   string
	data map[string]any
}

// NewSnapshot wraps raw document data. Decoding goes through encoding/json for
// every backend, so destination structs need json tags matching the stored
// field names.
func NewSnapshot(id string, data map[string]any) *Snapshot {
	return &Snapshot{ID: id, data: data}
}

// Data returns the raw document fields.
func (s *Snapshot) Data() map[string]any {
	return s.data
}

// DataTo decodes the document into v, which must be a pointer to a struct.
func (s *Snapshot) DataTo(v any) error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", s.ID, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode document %s: %w", s.ID, err)
	}
	return nil
}

// ─── Field transforms ──────────────────────────────────────────────────

type serverTimestamp struct{}

// ServerTimestamp is replaced by the commit time of the write.
var ServerTimestamp any = serverTimestamp{}

type arrayUnion struct{ elems []any }

// ArrayUnion appends each element to the stored array unless an equal element
// is already present.
func ArrayUnion(elems ...any) any {
	return arrayUnion{elems: elems}
}

type arrayRemove struct{ elems []any }

// ArrayRemove removes every stored element equal to one of elems.
func ArrayRemove(elems ...any) any {
	return arrayRemove{elems: elems}
}
