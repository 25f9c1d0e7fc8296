// Package memstore provides an in-memory docstore.Store. It backs unit tests
// and local development where no PostgreSQL instance is available.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/campushub/campus-hub-api/pkg/docstore"
)

// Store is a mutex-guarded in-memory document store.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]docstore.Document
}

// New constructs an empty Store.
func New() *Store {
	return &Store{collections: make(map[string]map[string]docstore.Document)}
}

// List implements docstore.Store.
func (s *Store) List(ctx context.Context, collection string, q docstore.Query) ([]docstore.Keyed, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keySet := map[string]struct{}{}
	for _, k := range q.Keys {
		keySet[k] = struct{}{}
	}

	var result []docstore.Keyed
	for key, doc := range s.collections[collection] {
		if len(keySet) > 0 {
			if _, ok := keySet[key]; !ok {
				continue
			}
		}
		if !matches(doc, q.Filters) {
			continue
		}
		result = append(result, docstore.Keyed{Key: key, Data: clone(doc)})
	}

	if q.OrderBy != "" {
		sort.SliceStable(result, func(i, j int) bool {
			a, aok := fieldText(result[i].Data, q.OrderBy)
			b, bok := fieldText(result[j].Data, q.OrderBy)
			if aok != bok {
				return aok // documents missing the field sort last
			}
			if q.Desc {
				return a > b
			}
			return a < b
		})
	} else {
		sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	}

	if q.Limit > 0 && len(result) > q.Limit {
		result = result[:q.Limit]
	}
	return result, nil
}

// Get implements docstore.Store.
func (s *Store) Get(ctx context.Context, collection, key string) (docstore.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][key]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return clone(doc), nil
}

// Add implements docstore.Store.
func (s *Store) Add(ctx context.Context, collection string, data docstore.Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := uuid.NewString()
	s.ensure(collection)[key] = clone(data)
	return key, nil
}

// Put implements docstore.Store.
func (s *Store) Put(ctx context.Context, collection, key string, data docstore.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensure(collection)[key] = clone(data)
	return nil
}

// Update implements docstore.Store.
func (s *Store) Update(ctx context.Context, collection, key string, patch docstore.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.merge(collection, key, patch)
}

// Delete implements docstore.Store.
func (s *Store) Delete(ctx context.Context, collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], key)
	return nil
}

// Batch implements docstore.Store. Operations are validated before any of
// them is applied, so a failing update leaves the store untouched.
func (s *Store) Batch(ctx context.Context, ops []docstore.Op) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validation tracks what earlier ops in the batch will have done, so an
	// update against a key the batch itself deletes fails up front.
	type docRef struct{ collection, key string }
	written := make(map[docRef]bool)
	deleted := make(map[docRef]bool)
	for _, op := range ops {
		ref := docRef{op.Collection, op.Key}
		switch op.Kind {
		case docstore.OpAdd:
		case docstore.OpPut:
			written[ref] = true
			delete(deleted, ref)
		case docstore.OpDelete:
			deleted[ref] = true
			delete(written, ref)
		case docstore.OpUpdate:
			_, exists := s.collections[op.Collection][op.Key]
			if deleted[ref] || (!exists && !written[ref]) {
				return fmt.Errorf("batch update %s/%s: %w", op.Collection, op.Key, docstore.ErrNotFound)
			}
		default:
			return fmt.Errorf("batch: unknown op kind %q", op.Kind)
		}
	}

	for _, op := range ops {
		switch op.Kind {
		case docstore.OpAdd:
			s.ensure(op.Collection)[uuid.NewString()] = clone(op.Data)
		case docstore.OpPut:
			s.ensure(op.Collection)[op.Key] = clone(op.Data)
		case docstore.OpUpdate:
			if err := s.merge(op.Collection, op.Key, op.Data); err != nil {
				return fmt.Errorf("batch update %s/%s: %w", op.Collection, op.Key, err)
			}
		case docstore.OpDelete:
			delete(s.collections[op.Collection], op.Key)
		}
	}
	return nil
}

func (s *Store) ensure(collection string) map[string]docstore.Document {
	coll, ok := s.collections[collection]
	if !ok {
		coll = make(map[string]docstore.Document)
		s.collections[collection] = coll
	}
	return coll
}

func (s *Store) merge(collection, key string, patch docstore.Document) error {
	doc, ok := s.collections[collection][key]
	if !ok {
		return docstore.ErrNotFound
	}
	for k, v := range patch {
		doc[k] = cloneValue(v)
	}
	return nil
}

func matches(doc docstore.Document, filters []docstore.Filter) bool {
	for _, f := range filters {
		text, ok := fieldText(doc, f.Field)
		want := fmt.Sprint(f.Value)
		switch f.Op {
		case docstore.FilterEq:
			if !ok || text != want {
				return false
			}
		case docstore.FilterNeq:
			if !ok || text == want {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func fieldText(doc docstore.Document, field string) (string, bool) {
	v, ok := doc[field]
	if !ok || v == nil {
		return "", false
	}
	return fmt.Sprint(v), true
}

func clone(doc docstore.Document) docstore.Document {
	out := make(docstore.Document, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return map[string]interface{}(clone(t))
	case docstore.Document:
		return clone(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
