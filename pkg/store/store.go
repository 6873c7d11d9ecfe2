// Package store persists rendered layout documents for the HTTP API.
//
// A layout document bundles a graph's wire form with its rendered DOT and
// SVG artifacts under a stable ID, so a graph imported once can be fetched
// and shared without re-rendering. The causal graph itself stays an
// in-memory value; the store holds render products, not live graph state.
//
// Backends:
//   - memory: in-process map for development and tests
//   - mongo: document storage for server deployments
package store

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/causeway/pkg/graphio"
)

// ErrNotFound is returned when a layout document does not exist.
var ErrNotFound = errors.New("layout not found")

// Layout is a stored render document.
type Layout struct {
	ID        string        `json:"id" bson:"_id"`
	Name      string        `json:"name" bson:"name"`
	Graph     graphio.Graph `json:"graph" bson:"graph"`
	DOT       string        `json:"dot" bson:"dot"`
	SVG       string        `json:"svg" bson:"svg"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}

// Store is the interface for layout storage backends.
type Store interface {
	// Put inserts or replaces a layout document by ID.
	Put(ctx context.Context, l *Layout) error

	// Get retrieves a layout by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Layout, error)

	// List returns all stored layouts, newest first.
	List(ctx context.Context) ([]*Layout, error)

	// Delete removes a layout. Deleting an absent ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
