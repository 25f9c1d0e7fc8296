// Package docstore defines the collection-oriented document store contract the
// rest of the application is written against. A store addresses records by
// (collection, key), supports equality/ordering/limit filters on list, partial
// merges on update, and an atomic multi-operation batch. Implementations live
// in the memstore and pgstore subpackages.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a read addresses a missing key. Callers must
// treat it as a first-class outcome, distinct from a transport failure.
var ErrNotFound = errors.New("docstore: document not found")

// ErrUnavailable marks failures where the backing store could not be
// reached, as opposed to a bad request or a bug. Implementations wrap
// connection-level errors with it so callers can surface them separately.
var ErrUnavailable = errors.New("docstore: backing store unavailable")

// Document is the raw record payload. The storage key lives outside the
// payload and is carried by Keyed.
type Document map[string]interface{}

// Keyed pairs a document with its storage key.
type Keyed struct {
	Key  string
	Data Document
}

// FilterOp is a comparison operator for list filters.
type FilterOp string

const (
	FilterEq  FilterOp = "=="
	FilterNeq FilterOp = "!="
)

// Filter constrains a list to documents whose field compares against the
// value. Comparison happens on the JSON text form of the field.
type Filter struct {
	Field string
	Op    FilterOp
	Value interface{}
}

// Query shapes a List call. The zero value lists the whole collection.
type Query struct {
	Filters []Filter
	Keys    []string // restrict to these storage keys; empty means no restriction
	OrderBy string
	Desc    bool
	Limit   int
}

// OpKind discriminates batch operations.
type OpKind string

const (
	OpAdd    OpKind = "add"
	OpPut    OpKind = "put"
	OpUpdate OpKind = "update"
	OpDelete OpKind = "delete"
)

// Op is one element of an atomic batch. Key is ignored for OpAdd (the store
// assigns one); Data holds the full document for add/put and the merge patch
// for update.
type Op struct {
	Kind       OpKind
	Collection string
	Key        string
	Data       Document
}

// Store is the minimal remote document database contract.
type Store interface {
	// List returns the documents of a collection matching the query, each
	// tagged with its storage key. An empty result is a successful outcome.
	List(ctx context.Context, collection string, q Query) ([]Keyed, error)

	// Get fetches a single document. Returns ErrNotFound for a missing key.
	Get(ctx context.Context, collection, key string) (Document, error)

	// Add inserts a document under a newly assigned key and returns the key.
	Add(ctx context.Context, collection string, data Document) (string, error)

	// Put inserts or replaces a document under a caller-chosen key.
	Put(ctx context.Context, collection, key string, data Document) error

	// Update merges the patch into an existing document. Fields absent from
	// the patch are preserved. Returns ErrNotFound for a missing key.
	Update(ctx context.Context, collection, key string, patch Document) error

	// Delete removes a document. Deleting a missing key is a no-op.
	Delete(ctx context.Context, collection, key string) error

	// Batch applies all operations atomically: either every operation takes
	// effect or none does.
	Batch(ctx context.Context, ops []Op) error
}
