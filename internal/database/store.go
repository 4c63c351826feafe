package database

import (
	"context"
	"errors"
	"fmt"
)

// Collection names used across the application.
const (
	Products       = "products"
	Bills          = "bills"
	CreditParties  = "credit-parties"
	Transactions   = "credit-transactions"
	Staff          = "staff"
	Users          = "users"
	Settings       = "settings"
	StockMovements = "stock-movements"
)

// ErrDocNotFound is wrapped in a PersistenceError when the referenced
// document does not exist.
var ErrDocNotFound = errors.New("document not found")

// PersistenceError wraps any failure of the backing document store,
// including decode failures at the store boundary.
type PersistenceError struct {
	Op         string
	Collection string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a store-level "document not found".
func IsNotFound(err error) bool { return errors.Is(err, ErrDocNotFound) }

// Query is an equality filter plus an optional single-field sort. Filter
// keys are document field names (bson names).
type Query struct {
	Filter   map[string]any
	SortBy   string
	SortDesc bool
}

// Store is the document-database contract: collections of documents
// addressed by string id. Documents are decoded into typed structs at this
// boundary; a decode failure surfaces as a PersistenceError, never as a
// silently defaulted value.
type Store interface {
	// Get decodes the document with the given id into out.
	Get(ctx context.Context, collection, id string, out any) error
	// Set creates or fully replaces the document with the given id.
	Set(ctx context.Context, collection, id string, doc any) error
	// Update applies a partial field update to an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	// Delete removes the document. Deleting a missing document is an error.
	Delete(ctx context.Context, collection, id string) error
	// Find decodes every document matching q into out, which must be a
	// pointer to a slice.
	Find(ctx context.Context, collection string, q Query, out any) error
}
