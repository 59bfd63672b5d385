package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps every collection in the single `documents` table
// (see migrations/) with the document body in a JSONB column.
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgres creates a PostgresStore on an existing pool.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		pool: pool,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (s *PostgresStore) Get(ctx context.Context, collection, id string) (*Snapshot, error) {
	return pgGet(ctx, s.pool, collection, id, false)
}

func (s *PostgresStore) List(ctx context.Context, collection string) ([]*Snapshot, error) {
	return pgSelect(ctx, s.pool,
		`SELECT id, data FROM documents WHERE collection = $1 ORDER BY id`,
		collection)
}

func (s *PostgresStore) Where(ctx context.Context, collection, field string, value any) ([]*Snapshot, error) {
	return pgSelect(ctx, s.pool,
		`SELECT id, data FROM documents WHERE collection = $1 AND data @> $2 ORDER BY id`,
		collection, map[string]any{field: value})
}

func (s *PostgresStore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := uuid.NewString()
	if err := pgInsert(ctx, s.pool, collection, id, resolveCreate(data, s.now())); err != nil {
		return "", err
	}
	return id, nil
}

func (s *PostgresStore) Set(ctx context.Context, collection, id string, data map[string]any) error {
	return s.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
		_, err := tx.Get(collection, id)
		if errors.Is(err, ErrNotFound) {
			return tx.Create(collection, id, data)
		}
		if err != nil {
			return err
		}
		return tx.Update(collection, id, data)
	})
}

func (s *PostgresStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	return s.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
		return tx.Update(collection, id, fields)
	})
}

func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	return pgDelete(ctx, s.pool, collection, id)
}

func (s *PostgresStore) Count(ctx context.Context, collection string) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM documents WHERE collection = $1`, collection,
	).Scan(&n)
	return n, err
}

func (s *PostgresStore) NewID(string) string {
	return uuid.NewString()
}

// RunTransaction locks every document it reads (SELECT ... FOR UPDATE), so
// concurrent transactions touching the same parent document serialize.
func (s *PostgresStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return fn(ctx, &postgresTx{ctx: ctx, tx: tx, now: s.now()})
	})
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

type postgresTx struct {
	ctx context.Context
	tx  pgx.Tx
	now time.Time
}

func (t *postgresTx) Get(collection, id string) (*Snapshot, error) {
	return pgGet(t.ctx, t.tx, collection, id, true)
}

func (t *postgresTx) Where(collection, field string, value any) ([]*Snapshot, error) {
	return pgSelect(t.ctx, t.tx,
		`SELECT id, data FROM documents WHERE collection = $1 AND data @> $2 ORDER BY id FOR UPDATE`,
		collection, map[string]any{field: value})
}

func (t *postgresTx) Create(collection, id string, data map[string]any) error {
	return pgInsert(t.ctx, t.tx, collection, id, resolveCreate(data, t.now))
}

func (t *postgresTx) Update(collection, id string, fields map[string]any) error {
	snap, err := pgGet(t.ctx, t.tx, collection, id, true)
	if err != nil {
		return err
	}
	doc := copyDoc(snap.Data())
	applyFields(doc, fields, t.now)

	_, err = t.tx.Exec(t.ctx,
		`UPDATE documents SET data = $3, updated_at = NOW() WHERE collection = $1 AND id = $2`,
		collection, id, doc)
	return err
}

func (t *postgresTx) Delete(collection, id string) error {
	return pgDelete(t.ctx, t.tx, collection, id)
}

// ─── SQL helpers ───────────────────────────────────────────────────────

func pgGet(ctx context.Context, q querier, collection, id string, lock bool) (*Snapshot, error) {
	sql := `SELECT data FROM documents WHERE collection = $1 AND id = $2`
	if lock {
		sql += ` FOR UPDATE`
	}
	var data map[string]any
	if err := q.QueryRow(ctx, sql, collection, id).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return NewSnapshot(id, data), nil
}

func pgSelect(ctx context.Context, q querier, sql string, args ...any) ([]*Snapshot, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Snapshot
	for rows.Next() {
		var (
			id   string
			data map[string]any
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		out = append(out, NewSnapshot(id, data))
	}
	return out, rows.Err()
}

func pgInsert(ctx context.Context, q querier, collection, id string, doc map[string]any) error {
	_, err := q.Exec(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)`,
		collection, id, doc)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyExists
	}
	return err
}

func pgDelete(ctx context.Context, q querier, collection, id string) error {
	tag, err := q.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
