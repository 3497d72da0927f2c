// Package store persists case records through the document store. It is the
// only place that knows the stored document layout of each case family.
package store

import (
	"context"
	"fmt"

	"govportal/internal/cases/models"
	"govportal/internal/docstore"
	"govportal/pkg/platform/sentinel"
)

// Repository reads and writes one case family in one collection.
type Repository[T models.Case] struct {
	docs       docstore.Store
	collection string
	encode     func(T) any
	decode     func(docstore.Document) (T, error)
}

func newRepository[T models.Case, D any](docs docstore.Store, collection string, encode func(T) any, decode func(*D) T) *Repository[T] {
	return &Repository[T]{
		docs:       docs,
		collection: collection,
		encode:     encode,
		decode: func(doc docstore.Document) (T, error) {
			var d D
			if err := docstore.Decode(doc, &d); err != nil {
				var zero T
				return zero, err
			}
			return decode(&d), nil
		},
	}
}

// NewApplicationRepository stores applications in collection.
func NewApplicationRepository(docs docstore.Store, collection string) *Repository[*models.Application] {
	return newRepository(docs, collection, encodeApplication, decodeApplication)
}

// NewComplaintRepository stores complaints in collection.
func NewComplaintRepository(docs docstore.Store, collection string) *Repository[*models.Complaint] {
	return newRepository(docs, collection, encodeComplaint, decodeComplaint)
}

// NewHealthServiceRepository stores health service requests in collection.
func NewHealthServiceRepository(docs docstore.Store, collection string) *Repository[*models.HealthService] {
	return newRepository(docs, collection, encodeHealthService, decodeHealthService)
}

// Collection returns the collection this repository writes to.
func (r *Repository[T]) Collection() string {
	return r.collection
}

// Create inserts a new case keyed by its ID.
func (r *Repository[T]) Create(ctx context.Context, c T) error {
	doc, err := docstore.Encode(r.encode(c))
	if err != nil {
		return err
	}
	if err := r.docs.Create(ctx, r.collection, c.Base().ID, doc); err != nil {
		return fmt.Errorf("create case: %w", err)
	}
	return nil
}

// FindByID loads a case by its ID.
func (r *Repository[T]) FindByID(ctx context.Context, id string) (T, error) {
	doc, err := r.docs.Get(ctx, r.collection, id)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("find case by id: %w", err)
	}
	return r.decode(doc)
}

// FindByTrackingID loads the first case carrying trackingID.
func (r *Repository[T]) FindByTrackingID(ctx context.Context, trackingID string) (T, error) {
	var zero T
	docs, err := r.docs.Query(ctx, r.collection, FieldTrackingID, trackingID)
	if err != nil {
		return zero, fmt.Errorf("find case by tracking id: %w", err)
	}
	if len(docs) == 0 {
		return zero, fmt.Errorf("tracking id %s: %w", trackingID, sentinel.ErrNotFound)
	}
	return r.decode(docs[0])
}

// ListByUser returns every case owned by userID, possibly none.
func (r *Repository[T]) ListByUser(ctx context.Context, userID string) ([]T, error) {
	docs, err := r.docs.Query(ctx, r.collection, FieldUserID, userID)
	if err != nil {
		return nil, fmt.Errorf("list cases by user: %w", err)
	}
	return r.decodeAll(docs)
}

// ListAll returns every case in the collection.
func (r *Repository[T]) ListAll(ctx context.Context) ([]T, error) {
	docs, err := r.docs.List(ctx, r.collection)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	return r.decodeAll(docs)
}

// Save writes only the named document fields of c.
func (r *Repository[T]) Save(ctx context.Context, c T, fields ...string) error {
	doc, err := docstore.Encode(r.encode(c))
	if err != nil {
		return err
	}
	if err := r.docs.Update(ctx, r.collection, c.Base().ID, docstore.Pick(doc, fields...)); err != nil {
		return fmt.Errorf("save case: %w", err)
	}
	return nil
}

func (r *Repository[T]) decodeAll(docs []docstore.Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		c, err := r.decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
