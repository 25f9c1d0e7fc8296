package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-hub-api/pkg/docstore"
)

func TestAddThenList(t *testing.T) {
	store := New()
	ctx := context.Background()

	key, err := store.Add(ctx, "students", docstore.Document{"firstName": "Alice"})
	require.NoError(t, err)
	require.NotEmpty(t, key)

	docs, err := store.List(ctx, "students", docstore.Query{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, key, docs[0].Key)
	assert.Equal(t, "Alice", docs[0].Data["firstName"])
}

func TestListEmptyCollectionSucceeds(t *testing.T) {
	store := New()

	docs, err := store.List(context.Background(), "students", docstore.Query{})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestGetNotFound(t *testing.T) {
	store := New()

	_, err := store.Get(context.Background(), "students", "missing")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestUpdatePartialMergePreservesFields(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "notifications", "n1", docstore.Document{
		"sender":  "Registrar",
		"message": "hello",
		"read":    false,
	}))

	require.NoError(t, store.Update(ctx, "notifications", "n1", docstore.Document{"read": true}))

	doc, err := store.Get(ctx, "notifications", "n1")
	require.NoError(t, err)
	assert.Equal(t, true, doc["read"])
	assert.Equal(t, "Registrar", doc["sender"])
	assert.Equal(t, "hello", doc["message"])
}

func TestUpdateMissingKey(t *testing.T) {
	store := New()

	err := store.Update(context.Background(), "notifications", "missing", docstore.Document{"read": true})
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "courses", "CS101", docstore.Document{"name": "Intro"}))
	require.NoError(t, store.Delete(ctx, "courses", "CS101"))
	require.NoError(t, store.Delete(ctx, "courses", "CS101"))

	_, err := store.Get(ctx, "courses", "CS101")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestListFilters(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "grades", "g1", docstore.Document{"grade": "A-", "date": "2024-05-10"}))
	require.NoError(t, store.Put(ctx, "grades", "g2", docstore.Document{"grade": "Pending", "date": "N/A"}))
	require.NoError(t, store.Put(ctx, "grades", "g3", docstore.Document{"grade": "B+", "date": "2024-05-12"}))

	posted, err := store.List(ctx, "grades", docstore.Query{
		Filters: []docstore.Filter{{Field: "grade", Op: docstore.FilterNeq, Value: "Pending"}},
		OrderBy: "date",
		Desc:    true,
	})
	require.NoError(t, err)
	require.Len(t, posted, 2)
	assert.Equal(t, "g3", posted[0].Key)
	assert.Equal(t, "g1", posted[1].Key)

	pending, err := store.List(ctx, "grades", docstore.Query{
		Filters: []docstore.Filter{{Field: "grade", Op: docstore.FilterEq, Value: "Pending"}},
	})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "g2", pending[0].Key)
}

func TestListOrderAndLimit(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "notifications", "a", docstore.Document{"timestamp": "2024-01-01T00:00:00Z"}))
	require.NoError(t, store.Put(ctx, "notifications", "b", docstore.Document{"timestamp": "2024-03-01T00:00:00Z"}))
	require.NoError(t, store.Put(ctx, "notifications", "c", docstore.Document{"timestamp": "2024-02-01T00:00:00Z"}))

	docs, err := store.List(ctx, "notifications", docstore.Query{OrderBy: "timestamp", Desc: true, Limit: 2})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "b", docs[0].Key)
	assert.Equal(t, "c", docs[1].Key)
}

func TestListByKeys(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "students", "s1", docstore.Document{"firstName": "Alice"}))
	require.NoError(t, store.Put(ctx, "students", "s2", docstore.Document{"firstName": "Bob"}))
	require.NoError(t, store.Put(ctx, "students", "s3", docstore.Document{"firstName": "Charlie"}))

	docs, err := store.List(ctx, "students", docstore.Query{Keys: []string{"s1", "s3"}})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "s1", docs[0].Key)
	assert.Equal(t, "s3", docs[1].Key)
}

func TestBatchAllOrNothing(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "students", "s1", docstore.Document{"firstName": "Alice"}))
	require.NoError(t, store.Put(ctx, "enrollments", "e1", docstore.Document{"studentId": "s1"}))

	err := store.Batch(ctx, []docstore.Op{
		{Kind: docstore.OpDelete, Collection: "students", Key: "s1"},
		{Kind: docstore.OpUpdate, Collection: "enrollments", Key: "missing", Data: docstore.Document{"x": 1}},
	})
	require.Error(t, err)

	// The failing update must leave the delete unapplied.
	_, err = store.Get(ctx, "students", "s1")
	assert.NoError(t, err)
}

func TestBatchUpdateAfterDeleteFails(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "students", "s1", docstore.Document{"firstName": "Alice"}))

	err := store.Batch(ctx, []docstore.Op{
		{Kind: docstore.OpDelete, Collection: "students", Key: "s1"},
		{Kind: docstore.OpUpdate, Collection: "students", Key: "s1", Data: docstore.Document{"major": "Literature"}},
	})
	require.ErrorIs(t, err, docstore.ErrNotFound)

	// Nothing from the rejected batch may stick.
	doc, err := store.Get(ctx, "students", "s1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", doc["firstName"])
	assert.NotContains(t, doc, "major")
}

func TestBatchUpdateAfterPutSucceeds(t *testing.T) {
	store := New()
	ctx := context.Background()

	err := store.Batch(ctx, []docstore.Op{
		{Kind: docstore.OpPut, Collection: "students", Key: "s1", Data: docstore.Document{"firstName": "Alice"}},
		{Kind: docstore.OpUpdate, Collection: "students", Key: "s1", Data: docstore.Document{"major": "Literature"}},
	})
	require.NoError(t, err)

	doc, err := store.Get(ctx, "students", "s1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", doc["firstName"])
	assert.Equal(t, "Literature", doc["major"])
}

func TestBatchCascadeDelete(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "students", "s1", docstore.Document{"firstName": "Alice"}))
	require.NoError(t, store.Put(ctx, "enrollments", "e1", docstore.Document{"studentId": "s1"}))
	require.NoError(t, store.Put(ctx, "enrollments", "e2", docstore.Document{"studentId": "s1"}))

	err := store.Batch(ctx, []docstore.Op{
		{Kind: docstore.OpDelete, Collection: "students", Key: "s1"},
		{Kind: docstore.OpDelete, Collection: "enrollments", Key: "e1"},
		{Kind: docstore.OpDelete, Collection: "enrollments", Key: "e2"},
	})
	require.NoError(t, err)

	enrollments, err := store.List(ctx, "enrollments", docstore.Query{})
	require.NoError(t, err)
	assert.Empty(t, enrollments)
}

func TestReadsReturnCopies(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "students", "s1", docstore.Document{"firstName": "Alice"}))

	doc, err := store.Get(ctx, "students", "s1")
	require.NoError(t, err)
	doc["firstName"] = "Mallory"

	again, err := store.Get(ctx, "students", "s1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", again["firstName"])
}
