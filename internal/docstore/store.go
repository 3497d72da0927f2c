// Package docstore is the document-store contract every case family and the
// profile store persist through, plus its in-memory and Postgres backends.
//
// A Document is a JSON object. Values are normalized to their JSON shapes
// (strings, float64, bool, nil, []any, map[string]any) before they are stored,
// so every backend returns identical documents for identical writes.
package docstore

import (
	"context"
)

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// Document is one stored JSON object.
type Document map[string]any

// Store persists documents grouped into named collections.
//
// Errors: sentinel.ErrNotFound when the addressed document does not exist,
// sentinel.ErrConflict when Create targets an existing id. Anything else is
// a storage failure.
type Store interface {
	// Create inserts doc under id. It never overwrites.
	Create(ctx context.Context, collection, id string, doc Document) error
	// Get returns the document stored under id.
	Get(ctx context.Context, collection, id string) (Document, error)
	// Query returns every document whose top-level field equals value, oldest first.
	Query(ctx context.Context, collection, field string, value any) ([]Document, error)
	// Update merges fields into the top level of an existing document.
	Update(ctx context.Context, collection, id string, fields Document) error
	// Replace writes doc under id, overwriting whatever was there.
	Replace(ctx context.Context, collection, id string, doc Document) error
	// Delete removes the document stored under id.
	Delete(ctx context.Context, collection, id string) error
	// List returns every document in the collection, oldest first.
	List(ctx context.Context, collection string) ([]Document, error)
}
