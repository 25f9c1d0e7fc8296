package pgstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-hub-api/pkg/docstore"
)

func newStoreMock(t *testing.T) (*Store, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return New(sqlx.NewDb(db, "sqlmock")), mock, func() { db.Close() }
}

func TestStoreList(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	data, _ := json.Marshal(map[string]interface{}{"firstName": "Alice"})
	rows := sqlmock.NewRows([]string{"id", "data"}).AddRow("s1", data)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, data FROM documents WHERE collection = $1 ORDER BY id")).
		WithArgs("students").
		WillReturnRows(rows)

	docs, err := store.List(context.Background(), "students", docstore.Query{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "s1", docs[0].Key)
	assert.Equal(t, "Alice", docs[0].Data["firstName"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreListWithFilterOrderLimit(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	data, _ := json.Marshal(map[string]interface{}{"grade": "A-", "date": "2024-05-10"})
	rows := sqlmock.NewRows([]string{"id", "data"}).AddRow("g1", data)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, data FROM documents WHERE collection = $1 AND data->>'grade' <> $2 ORDER BY data->>'date' DESC NULLS LAST LIMIT 3")).
		WithArgs("grades", "Pending").
		WillReturnRows(rows)

	docs, err := store.List(context.Background(), "grades", docstore.Query{
		Filters: []docstore.Filter{{Field: "grade", Op: docstore.FilterNeq, Value: "Pending"}},
		OrderBy: "date",
		Desc:    true,
		Limit:   3,
	})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreListRejectsUnsafeField(t *testing.T) {
	store, _, cleanup := newStoreMock(t)
	defer cleanup()

	_, err := store.List(context.Background(), "grades", docstore.Query{
		Filters: []docstore.Filter{{Field: "grade'; DROP TABLE documents;--", Op: docstore.FilterEq, Value: "x"}},
	})
	require.Error(t, err)
}

func TestStoreTagsConnectionFailureUnavailable(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, data FROM documents WHERE collection = $1 ORDER BY id")).
		WithArgs("students").
		WillReturnError(sql.ErrConnDone)

	_, err := store.List(context.Background(), "students", docstore.Query{})
	require.Error(t, err)
	assert.ErrorIs(t, err, docstore.ErrUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreGetNotFound(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM documents WHERE collection = $1 AND id = $2")).
		WithArgs("students", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	_, err := store.Get(context.Background(), "students", "missing")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreUpdateMissingKey(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND id = $2")).
		WithArgs("notifications", "missing", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Update(context.Background(), "notifications", "missing", docstore.Document{"read": true})
	assert.ErrorIs(t, err, docstore.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreBatchCommits(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents WHERE collection = $1 AND id = $2")).
		WithArgs("students", "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents WHERE collection = $1 AND id = $2")).
		WithArgs("enrollments", "e1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.Batch(context.Background(), []docstore.Op{
		{Kind: docstore.OpDelete, Collection: "students", Key: "s1"},
		{Kind: docstore.OpDelete, Collection: "enrollments", Key: "e1"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreBatchRollsBackOnFailure(t *testing.T) {
	store, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents WHERE collection = $1 AND id = $2")).
		WithArgs("students", "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND id = $2")).
		WithArgs("enrollments", "missing", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := store.Batch(context.Background(), []docstore.Op{
		{Kind: docstore.OpDelete, Collection: "students", Key: "s1"},
		{Kind: docstore.OpUpdate, Collection: "enrollments", Key: "missing", Data: docstore.Document{"x": 1}},
	})
	assert.ErrorIs(t, err, docstore.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
