package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestStore() *MemoryStore {
	s := NewMemory()
	s.SetClock(func() time.Time { return fixedNow })
	return s
}

func TestMemoryStore_AddGetResolvesServerTimestamp(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	id, err := s.Add(ctx, "institutions", map[string]any{
		"name":      "NUL",
		"createdAt": ServerTimestamp,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	snap, err := s.Get(ctx, "institutions", id)
	require.NoError(t, err)
	assert.Equal(t, id, snap.ID)
	assert.Equal(t, "NUL", snap.Data()["name"])
	assert.Equal(t, fixedNow, snap.Data()["createdAt"])

	var out struct {
		Name      string     `json:"name"`
		CreatedAt *time.Time `json:"createdAt"`
	}
	require.NoError(t, snap.DataTo(&out))
	assert.Equal(t, "NUL", out.Name)
	require.NotNil(t, out.CreatedAt)
	assert.True(t, fixedNow.Equal(*out.CreatedAt))
}

func TestMemoryStore_MissingDocuments(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	_, err := s.Get(ctx, "users", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, "users", "nope", map[string]any{"a": 1}), ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "users", "nope"), ErrNotFound)
}

func TestMemoryStore_WhereAndListOrderByID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.NoError(t, s.Set(ctx, "companies", "c", map[string]any{"name": "Acme"}))
	require.NoError(t, s.Set(ctx, "companies", "a", map[string]any{"name": "Acme"}))
	require.NoError(t, s.Set(ctx, "companies", "b", map[string]any{"name": "Other"}))

	matches, err := s.Where(ctx, "companies", "name", "Acme")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "a", matches[0].ID)
	assert.Equal(t, "c", matches[1].ID)

	all, err := s.List(ctx, "companies")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	n, err := s.Count(ctx, "companies")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestMemoryStore_SetMergesExisting(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.NoError(t, s.Set(ctx, "users", "u1", map[string]any{"name": "Lerato", "role": "student"}))
	require.NoError(t, s.Set(ctx, "users", "u1", map[string]any{"role": "admin"}))

	snap, err := s.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Lerato", snap.Data()["name"])
	assert.Equal(t, "admin", snap.Data()["role"])
}

func TestMemoryStore_ArrayTransforms(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.NoError(t, s.Set(ctx, "faculties", "f1", map[string]any{"courses": []any{}}))

	entry := map[string]any{"id": "c1", "name": "Maths"}
	require.NoError(t, s.Update(ctx, "faculties", "f1", map[string]any{"courses": ArrayUnion(entry)}))
	// A second union of an equal value is a no-op.
	require.NoError(t, s.Update(ctx, "faculties", "f1", map[string]any{
		"courses": ArrayUnion(map[string]string{"name": "Maths", "id": "c1"}),
	}))

	snap, err := s.Get(ctx, "faculties", "f1")
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"id": "c1", "name": "Maths"}}, snap.Data()["courses"])

	require.NoError(t, s.Update(ctx, "faculties", "f1", map[string]any{"courses": ArrayRemove(entry)}))
	snap, err = s.Get(ctx, "faculties", "f1")
	require.NoError(t, err)
	assert.Empty(t, snap.Data()["courses"])
}

func TestMemoryStore_ArrayUnionOnMissingField(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.NoError(t, s.Set(ctx, "faculties", "f1", map[string]any{"name": "Science"}))
	require.NoError(t, s.Update(ctx, "faculties", "f1", map[string]any{"courses": ArrayUnion("x")}))

	snap, err := s.Get(ctx, "faculties", "f1")
	require.NoError(t, err)
	assert.Equal(t, []any{"x"}, snap.Data()["courses"])
}

func TestMemoryStore_TransactionCommits(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	require.NoError(t, s.Set(ctx, "faculties", "f1", map[string]any{"courses": []any{}}))

	err := s.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
		if _, err := tx.Get("faculties", "f1"); err != nil {
			return err
		}
		if err := tx.Create("courses", "c1", map[string]any{"name": "Maths", "facultyId": "f1"}); err != nil {
			return err
		}
		return tx.Update("faculties", "f1", map[string]any{"courses": ArrayUnion(map[string]any{"id": "c1", "name": "Maths"})})
	})
	require.NoError(t, err)

	_, err = s.Get(ctx, "courses", "c1")
	assert.NoError(t, err)
	snap, err := s.Get(ctx, "faculties", "f1")
	require.NoError(t, err)
	assert.Len(t, snap.Data()["courses"], 1)
}

func TestMemoryStore_TransactionRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	require.NoError(t, s.Set(ctx, "admissions", "a1", map[string]any{"published": false}))

	boom := errors.New("boom")
	err := s.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.Update("admissions", "a1", map[string]any{"published": true}); err != nil {
			return err
		}
		if err := tx.Create("courses", "c1", map[string]any{"name": "x"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	snap, err := s.Get(ctx, "admissions", "a1")
	require.NoError(t, err)
	assert.Equal(t, false, snap.Data()["published"])
	_, err = s.Get(ctx, "courses", "c1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_TransactionCreateExisting(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	require.NoError(t, s.Set(ctx, "users", "u1", map[string]any{"name": "a"}))

	err := s.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
		return tx.Create("users", "u1", map[string]any{"name": "b"})
	})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestMemoryStore_SnapshotsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	require.NoError(t, s.Set(ctx, "users", "u1", map[string]any{"name": "a"}))

	snap, err := s.Get(ctx, "users", "u1")
	require.NoError(t, err)
	snap.Data()["name"] = "mutated"

	again, err := s.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.Equal(t, "a", again.Data()["name"])
}
