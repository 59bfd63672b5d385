package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore is the production Store backed by Cloud Firestore.
type FirestoreStore struct {
	client      *firestore.Client
	maxAttempts int
}

// NewFirestore wraps an existing client. maxAttempts bounds the retries
// Firestore performs on contended transactions.
func NewFirestore(client *firestore.Client, maxAttempts int) *FirestoreStore {
	if maxAttempts <= 0 {
		maxAttempts = firestore.DefaultTransactionMaxAttempts
	}
	return &FirestoreStore{client: client, maxAttempts: maxAttempts}
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (*Snapshot, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapFirestoreError(err)
	}
	return fromFirestore(snap), nil
}

func (s *FirestoreStore) List(ctx context.Context, collection string) ([]*Snapshot, error) {
	snaps, err := s.client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, mapFirestoreError(err)
	}
	return fromFirestoreAll(snaps), nil
}

func (s *FirestoreStore) Where(ctx context.Context, collection, field string, value any) ([]*Snapshot, error) {
	snaps, err := s.client.Collection(collection).Where(field, "==", value).Documents(ctx).GetAll()
	if err != nil {
		return nil, mapFirestoreError(err)
	}
	return fromFirestoreAll(snaps), nil
}

func (s *FirestoreStore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, toFirestoreData(data))
	if err != nil {
		return "", mapFirestoreError(err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Set(ctx context.Context, collection, id string, data map[string]any) error {
	if !validID(id) {
		return fmt.Errorf("invalid document id %q", id)
	}
	_, err := s.client.Collection(collection).Doc(id).Set(ctx, toFirestoreData(data), firestore.MergeAll)
	return mapFirestoreError(err)
}

func (s *FirestoreStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if !validID(id) {
		return ErrNotFound
	}
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, toFirestoreUpdates(fields))
	return mapFirestoreError(err)
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	_, err := s.client.Collection(collection).Doc(id).Delete(ctx, firestore.Exists)
	return mapFirestoreError(err)
}

func (s *FirestoreStore) Count(ctx context.Context, collection string) (int64, error) {
	res, err := s.client.Collection(collection).NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, mapFirestoreError(err)
	}
	v, ok := res["all"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("count %s: unexpected aggregation result %T", collection, res["all"])
	}
	return v.GetIntegerValue(), nil
}

func (s *FirestoreStore) NewID(collection string) string {
	return s.client.Collection(collection).NewDoc().ID
}

func (s *FirestoreStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	err := s.client.RunTransaction(ctx, func(ctx context.Context, t *firestore.Transaction) error {
		return fn(ctx, &firestoreTx{client: s.client, tx: t})
	}, firestore.MaxAttempts(s.maxAttempts))
	return mapFirestoreError(err)
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

type firestoreTx struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

func (t *firestoreTx) Get(collection, id string) (*Snapshot, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	snap, err := t.tx.Get(t.client.Collection(collection).Doc(id))
	if err != nil {
		return nil, mapFirestoreError(err)
	}
	return fromFirestore(snap), nil
}

func (t *firestoreTx) Where(collection, field string, value any) ([]*Snapshot, error) {
	snaps, err := t.tx.Documents(t.client.Collection(collection).Where(field, "==", value)).GetAll()
	if err != nil {
		return nil, mapFirestoreError(err)
	}
	return fromFirestoreAll(snaps), nil
}

func (t *firestoreTx) Create(collection, id string, data map[string]any) error {
	return t.tx.Create(t.client.Collection(collection).Doc(id), toFirestoreData(data))
}

func (t *firestoreTx) Update(collection, id string, fields map[string]any) error {
	if !validID(id) {
		return ErrNotFound
	}
	return t.tx.Update(t.client.Collection(collection).Doc(id), toFirestoreUpdates(fields))
}

func (t *firestoreTx) Delete(collection, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	return t.tx.Delete(t.client.Collection(collection).Doc(id), firestore.Exists)
}

// ─── Conversion helpers ────────────────────────────────────────────────

func fromFirestore(snap *firestore.DocumentSnapshot) *Snapshot {
	return NewSnapshot(snap.Ref.ID, snap.Data())
}

func fromFirestoreAll(snaps []*firestore.DocumentSnapshot) []*Snapshot {
	out := make([]*Snapshot, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, fromFirestore(snap))
	}
	return out
}

func toFirestoreValue(v any) any {
	switch t := v.(type) {
	case serverTimestamp:
		return firestore.ServerTimestamp
	case arrayUnion:
		return firestore.ArrayUnion(t.elems...)
	case arrayRemove:
		return firestore.ArrayRemove(t.elems...)
	default:
		return v
	}
}

func toFirestoreData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = toFirestoreValue(v)
	}
	return out
}

func toFirestoreUpdates(fields map[string]any) []firestore.Update {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: toFirestoreValue(v)})
	}
	return updates
}

// validID rejects ids that would address a different path. Such ids can never
// name an existing document.
func validID(id string) bool {
	return id != "" && !strings.Contains(id, "/")
}

func mapFirestoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyExists) {
		return err
	}
	switch status.Code(err) {
	case codes.DeadlineExceeded:
		return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
	case codes.NotFound:
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %v", ErrAlreadyExists, err)
	}
	return err
}
