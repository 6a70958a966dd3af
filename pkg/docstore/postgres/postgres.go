// Package postgres is a docstore.Store backed by a PostgreSQL documents table
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"upanddown-server/pkg/docstore"
)

const (
	pqSerializationFailure pq.ErrorCode = "40001"
	pqDeadlockDetected     pq.ErrorCode = "40P01"
)

// Store is a PostgreSQL backed docstore.Store
// Transactions on the same root are serialized with a transaction scoped advisory lock.
type Store struct {
	db     *sql.DB
	logger logrus.FieldLogger
}

// New returns a new store
func New(db *sql.DB, logger logrus.FieldLogger) *Store {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Store{
		db:     db,
		logger: logger,
	}
}

// RunTransaction runs fn inside of a database transaction holding the lock for root
func (s *Store) RunTransaction(ctx context.Context, root string, fn func(ctx context.Context, tx docstore.Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err)
	}

	if _, err := sqlTx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, root); err != nil {
		s.rollback(sqlTx)
		return mapError(err)
	}

	tx := &pgTx{tx: sqlTx}
	if err := fn(ctx, tx); err != nil {
		s.rollback(sqlTx)
		return err
	}

	if err := tx.batch.Validate(root); err != nil {
		s.rollback(sqlTx)
		return err
	}

	if err := apply(ctx, sqlTx, root, tx.batch.Ops); err != nil {
		s.rollback(sqlTx)
		return mapError(err)
	}

	if err := sqlTx.Commit(); err != nil {
		return mapError(err)
	}

	return nil
}

func (s *Store) rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		s.logger.WithError(err).Error("could not rollback transaction")
	}
}

func apply(ctx context.Context, tx *sql.Tx, root string, ops []docstore.Op) error {
	const setQuery = `
INSERT INTO documents (path, root, value)
VALUES ($1, $2, $3)
ON CONFLICT (path) DO UPDATE
SET value = EXCLUDED.value,
    updated = (NOW() AT TIME ZONE 'utc')`

	const deleteQuery = `
DELETE FROM documents
WHERE path = $1
   OR path LIKE $2`

	const incrementQuery = `
INSERT INTO documents (path, root, value)
VALUES ($1, $2, TO_JSONB($3::BIGINT))
ON CONFLICT (path) DO UPDATE
SET value = TO_JSONB((documents.value #>> '{}')::BIGINT + $3::BIGINT),
    updated = (NOW() AT TIME ZONE 'utc')`

	for _, op := range ops {
		var err error
		switch op.Kind {
		case docstore.OpSet:
			_, err = tx.ExecContext(ctx, setQuery, op.Path, root, string(op.Value))
		case docstore.OpDelete:
			_, err = tx.ExecContext(ctx, deleteQuery, op.Path, likePrefix(op.Path+"/"))
		case docstore.OpIncrement:
			_, err = tx.ExecContext(ctx, incrementQuery, op.Path, root, op.Delta)
		default:
			panic(fmt.Sprintf("unknown op: %d", op.Kind))
		}

		if err != nil {
			return fmt.Errorf("could not apply %s: %w", op.Path, err)
		}
	}

	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePrefix returns a LIKE pattern matching every path that starts with prefix
// The pattern has a constant prefix so the text_pattern_ops index on path can be used.
func likePrefix(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}

// mapError translates retryable database failures into docstore.ErrConflict
func mapError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqSerializationFailure, pqDeadlockDetected:
			return fmt.Errorf("%w: %s", docstore.ErrConflict, pqErr.Message)
		}
	}

	return err
}

type pgTx struct {
	tx    *sql.Tx
	batch docstore.Batch
}

func (t *pgTx) Get(ctx context.Context, path string, v interface{}) error {
	const query = `
SELECT value
FROM documents
WHERE path = $1`

	var raw []byte
	if err := t.tx.QueryRowContext(ctx, query, path).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return docstore.ErrNotFound
		}

		return mapError(err)
	}

	return json.Unmarshal(raw, v)
}

func (t *pgTx) List(ctx context.Context, prefix string) (map[string]json.RawMessage, error) {
	const query = `
SELECT path, value
FROM documents
WHERE path LIKE $1`

	rows, err := t.tx.QueryContext(ctx, query, likePrefix(prefix))
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	docs := make(map[string]json.RawMessage)
	for rows.Next() {
		var path string
		var raw []byte
		if err := rows.Scan(&path, &raw); err != nil {
			return nil, err
		}

		docs[path] = raw
	}

	return docs, rows.Err()
}

func (t *pgTx) Set(path string, v interface{}) {
	t.batch.Set(path, v)
}

func (t *pgTx) Delete(path string) {
	t.batch.Delete(path)
}

func (t *pgTx) Increment(path string, delta int) {
	t.batch.Increment(path, delta)
}
