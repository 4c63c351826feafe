package database

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process Store used in tests and local development.
// Documents round-trip through bson so that decode behaviour matches the
// MongoDB-backed store.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: map[string]map[string][]byte{}}
}

// coll creates the collection on demand; callers must hold the write lock.
func (s *MemoryStore) coll(name string) map[string][]byte {
	c, ok := s.collections[name]
	if !ok {
		c = map[string][]byte{}
		s.collections[name] = c
	}
	return c
}

func (s *MemoryStore) Get(_ context.Context, collection, id string, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.collections[collection][id]
	if !ok {
		return &PersistenceError{Op: "get", Collection: collection, Err: ErrDocNotFound}
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		return &PersistenceError{Op: "get", Collection: collection, Err: err}
	}
	return nil
}

func (s *MemoryStore) Set(_ context.Context, collection, id string, doc any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return &PersistenceError{Op: "set", Collection: collection, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.coll(collection)[id] = raw
	return nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.coll(collection)
	raw, ok := c[id]
	if !ok {
		return &PersistenceError{Op: "update", Collection: collection, Err: ErrDocNotFound}
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return &PersistenceError{Op: "update", Collection: collection, Err: err}
	}
	for k, v := range fields {
		doc[k] = v
	}
	updated, err := bson.Marshal(doc)
	if err != nil {
		return &PersistenceError{Op: "update", Collection: collection, Err: err}
	}
	c[id] = updated
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.coll(collection)
	if _, ok := c[id]; !ok {
		return &PersistenceError{Op: "delete", Collection: collection, Err: ErrDocNotFound}
	}
	delete(c, id)
	return nil
}

func (s *MemoryStore) Find(_ context.Context, collection string, q Query, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type entry struct {
		raw []byte
		doc bson.M
	}
	var matched []entry
	for _, raw := range s.collections[collection] {
		var doc bson.M
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return &PersistenceError{Op: "find", Collection: collection, Err: err}
		}
		if matchesFilter(doc, q.Filter) {
			matched = append(matched, entry{raw: raw, doc: doc})
		}
	}

	if q.SortBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			if q.SortDesc {
				i, j = j, i
			}
			return lessValue(matched[i].doc[q.SortBy], matched[j].doc[q.SortBy])
		})
	}

	// out must be a pointer to a slice; decode each matched document into a
	// fresh element.
	slice := reflect.ValueOf(out).Elem()
	slice.Set(reflect.MakeSlice(slice.Type(), 0, len(matched)))
	elemType := slice.Type().Elem()
	for _, e := range matched {
		elem := reflect.New(elemType)
		if err := bson.Unmarshal(e.raw, elem.Interface()); err != nil {
			return &PersistenceError{Op: "find", Collection: collection, Err: err}
		}
		slice.Set(reflect.Append(slice, elem.Elem()))
	}
	return nil
}

func matchesFilter(doc bson.M, filter map[string]any) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok {
			return false
		}
		if !looselyEqual(got, want) {
			return false
		}
	}
	return true
}

// looselyEqual compares a decoded bson value with a native Go filter value,
// tolerating the numeric widening bson applies on round-trip and the loss of
// named string types (a role constant decodes back as a plain string).
func looselyEqual(got, want any) bool {
	if gf, ok := toFloat(got); ok {
		if wf, ok := toFloat(want); ok {
			return gf == wf
		}
	}
	gv, wv := reflect.ValueOf(got), reflect.ValueOf(want)
	if gv.Kind() == reflect.String && wv.Kind() == reflect.String {
		return gv.String() == wv.String()
	}
	return reflect.DeepEqual(got, want)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func lessValue(a, b any) bool {
	if at, ok := a.(primitive.DateTime); ok {
		if bt, ok := b.(primitive.DateTime); ok {
			return at < bt
		}
	}
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af < bf
		}
	}
	as, _ := a.(string)
	bs, _ := b.(string)
	return as < bs
}
