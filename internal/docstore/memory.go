package docstore

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"govportal/pkg/platform/sentinel"
)

type memoryCollection struct {
	docs  map[string]Document
	order []string
}

// InMemoryStore keeps collections in process memory. Documents are copied on
// the way in and out so callers never share state with the store.
type InMemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{collections: make(map[string]*memoryCollection)}
}

func (s *InMemoryStore) collection(name string) *memoryCollection {
	c, ok := s.collections[name]
	if !ok {
		c = &memoryCollection{docs: make(map[string]Document)}
		s.collections[name] = c
	}
	return c
}

func (s *InMemoryStore) Create(_ context.Context, collection, id string, doc Document) error {
	stored, err := normalizeDocument(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collection(collection)
	if _, exists := c.docs[id]; exists {
		return fmt.Errorf("document %s/%s: %w", collection, id, sentinel.ErrConflict)
	}
	c.docs[id] = stored
	c.order = append(c.order, id)
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, collection, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[collection]
	if !ok {
		return nil, fmt.Errorf("document %s/%s: %w", collection, id, sentinel.ErrNotFound)
	}
	doc, ok := c.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %s/%s: %w", collection, id, sentinel.ErrNotFound)
	}
	return copyDocument(doc), nil
}

func (s *InMemoryStore) Query(_ context.Context, collection, field string, value any) ([]Document, error) {
	want, err := normalize(value)
	if err != nil {
		return nil, fmt.Errorf("normalize query value: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[collection]
	if !ok {
		return []Document{}, nil
	}
	out := make([]Document, 0)
	for _, id := range c.order {
		doc := c.docs[id]
		got, present := doc[field]
		if present && reflect.DeepEqual(got, want) {
			out = append(out, copyDocument(doc))
		}
	}
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, collection, id string, fields Document) error {
	normalized, err := normalizeDocument(fields)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[collection]
	if !ok {
		return fmt.Errorf("document %s/%s: %w", collection, id, sentinel.ErrNotFound)
	}
	doc, ok := c.docs[id]
	if !ok {
		return fmt.Errorf("document %s/%s: %w", collection, id, sentinel.ErrNotFound)
	}
	merged := copyDocument(doc)
	for k, v := range normalized {
		merged[k] = v
	}
	c.docs[id] = merged
	return nil
}

func (s *InMemoryStore) Replace(_ context.Context, collection, id string, doc Document) error {
	stored, err := normalizeDocument(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collection(collection)
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = stored
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[collection]
	if !ok {
		return fmt.Errorf("document %s/%s: %w", collection, id, sentinel.ErrNotFound)
	}
	if _, ok := c.docs[id]; !ok {
		return fmt.Errorf("document %s/%s: %w", collection, id, sentinel.ErrNotFound)
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *InMemoryStore) List(_ context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[collection]
	if !ok {
		return []Document{}, nil
	}
	out := make([]Document, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, copyDocument(c.docs[id]))
	}
	return out, nil
}

// copyDocument deep-copies a normalized document.
func copyDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, inner := range t {
			m[k] = copyValue(inner)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, inner := range t {
			s[i] = copyValue(inner)
		}
		return s
	default:
		return v
	}
}
