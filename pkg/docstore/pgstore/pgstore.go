// Package pgstore implements docstore.Store on PostgreSQL. Documents live in a
// single JSONB table keyed by (collection, id); partial merges use the jsonb
// concatenation operator and batches run inside one transaction.
package pgstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"regexp"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/campushub/campus-hub-api/pkg/docstore"
)

var fieldPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// dbErr wraps a database failure, tagging connection-level errors with
// docstore.ErrUnavailable so callers can tell an unreachable store from a
// bad query.
func dbErr(err error, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if isConnErr(err) {
		return fmt.Errorf("%s: %w: %w", msg, docstore.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func isConnErr(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// Store persists documents in a PostgreSQL JSONB table.
type Store struct {
	db *sqlx.DB
}

// New constructs a Store over the given database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the documents table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS documents (
        collection TEXT NOT NULL,
        id TEXT NOT NULL,
        data JSONB NOT NULL,
        PRIMARY KEY (collection, id)
    )`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return dbErr(err, "ensure documents table")
	}
	return nil
}

// List implements docstore.Store.
func (s *Store) List(ctx context.Context, collection string, q docstore.Query) ([]docstore.Keyed, error) {
	query := "SELECT id, data FROM documents WHERE collection = $1"
	args := []interface{}{collection}

	for _, f := range q.Filters {
		if !fieldPattern.MatchString(f.Field) {
			return nil, fmt.Errorf("list %s: invalid filter field %q", collection, f.Field)
		}
		args = append(args, fmt.Sprint(f.Value))
		switch f.Op {
		case docstore.FilterEq:
			query += fmt.Sprintf(" AND data->>'%s' = $%d", f.Field, len(args))
		case docstore.FilterNeq:
			// <> is NULL-filtered, so documents missing the field drop out,
			// matching the in-memory store.
			query += fmt.Sprintf(" AND data->>'%s' <> $%d", f.Field, len(args))
		default:
			return nil, fmt.Errorf("list %s: unsupported filter op %q", collection, f.Op)
		}
	}

	if len(q.Keys) > 0 {
		args = append(args, pq.Array(q.Keys))
		query += fmt.Sprintf(" AND id = ANY($%d)", len(args))
	}

	if q.OrderBy != "" {
		if !fieldPattern.MatchString(q.OrderBy) {
			return nil, fmt.Errorf("list %s: invalid order field %q", collection, q.OrderBy)
		}
		direction := "ASC"
		if q.Desc {
			direction = "DESC"
		}
		query += fmt.Sprintf(" ORDER BY data->>'%s' %s NULLS LAST", q.OrderBy, direction)
	} else {
		query += " ORDER BY id"
	}

	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Limit)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, dbErr(err, "list %s", collection)
	}
	defer rows.Close()

	var result []docstore.Keyed
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, dbErr(err, "scan %s row", collection)
		}
		var doc docstore.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
		}
		result = append(result, docstore.Keyed{Key: id, Data: doc})
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr(err, "list %s", collection)
	}
	return result, nil
}

// Get implements docstore.Store.
func (s *Store) Get(ctx context.Context, collection, key string) (docstore.Document, error) {
	var raw []byte
	err := s.db.GetContext(ctx, &raw, "SELECT data FROM documents WHERE collection = $1 AND id = $2", collection, key)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, docstore.ErrNotFound
		}
		return nil, dbErr(err, "get %s/%s", collection, key)
	}
	var doc docstore.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", collection, key, err)
	}
	return doc, nil
}

// Add implements docstore.Store.
func (s *Store) Add(ctx context.Context, collection string, data docstore.Document) (string, error) {
	key := uuid.NewString()
	if err := s.applyOp(ctx, s.db, docstore.Op{Kind: docstore.OpPut, Collection: collection, Key: key, Data: data}); err != nil {
		return "", err
	}
	return key, nil
}

// Put implements docstore.Store.
func (s *Store) Put(ctx context.Context, collection, key string, data docstore.Document) error {
	return s.applyOp(ctx, s.db, docstore.Op{Kind: docstore.OpPut, Collection: collection, Key: key, Data: data})
}

// Update implements docstore.Store.
func (s *Store) Update(ctx context.Context, collection, key string, patch docstore.Document) error {
	return s.applyOp(ctx, s.db, docstore.Op{Kind: docstore.OpUpdate, Collection: collection, Key: key, Data: patch})
}

// Delete implements docstore.Store.
func (s *Store) Delete(ctx context.Context, collection, key string) error {
	return s.applyOp(ctx, s.db, docstore.Op{Kind: docstore.OpDelete, Collection: collection, Key: key})
}

// Batch implements docstore.Store. All operations run in one transaction.
func (s *Store) Batch(ctx context.Context, ops []docstore.Op) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return dbErr(err, "begin batch")
	}
	for _, op := range ops {
		if err := s.applyOp(ctx, tx, op); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return dbErr(err, "commit batch")
	}
	return nil
}

func (s *Store) applyOp(ctx context.Context, ext sqlx.ExtContext, op docstore.Op) error {
	switch op.Kind {
	case docstore.OpAdd:
		op.Key = uuid.NewString()
		fallthrough
	case docstore.OpPut:
		raw, err := json.Marshal(op.Data)
		if err != nil {
			return fmt.Errorf("encode %s/%s: %w", op.Collection, op.Key, err)
		}
		const upsert = `INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)
            ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data`
		if _, err := ext.ExecContext(ctx, upsert, op.Collection, op.Key, raw); err != nil {
			return dbErr(err, "put %s/%s", op.Collection, op.Key)
		}
		return nil
	case docstore.OpUpdate:
		raw, err := json.Marshal(op.Data)
		if err != nil {
			return fmt.Errorf("encode patch %s/%s: %w", op.Collection, op.Key, err)
		}
		res, err := ext.ExecContext(ctx, "UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND id = $2", op.Collection, op.Key, raw)
		if err != nil {
			return dbErr(err, "update %s/%s", op.Collection, op.Key)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return dbErr(err, "update %s/%s", op.Collection, op.Key)
		}
		if affected == 0 {
			return fmt.Errorf("update %s/%s: %w", op.Collection, op.Key, docstore.ErrNotFound)
		}
		return nil
	case docstore.OpDelete:
		if _, err := ext.ExecContext(ctx, "DELETE FROM documents WHERE collection = $1 AND id = $2", op.Collection, op.Key); err != nil {
			return dbErr(err, "delete %s/%s", op.Collection, op.Key)
		}
		return nil
	default:
		return fmt.Errorf("unknown op kind %q", op.Kind)
	}
}

var _ docstore.Store = (*Store)(nil)
