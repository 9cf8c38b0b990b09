package store

import (
	"context"
	"errors"

	"github.com/chaigney/golftrip/internal/models"
)

// ErrNotFound marks a missing trip so handlers can map it to a 404 without
// string matching.
var ErrNotFound = errors.New("trip not found")

// Store defines the interface for shared trip-document persistence.
// Implementations can back this with in-memory storage, JSON files on disk,
// or Firestore. Writes are whole-document, last write wins; MutateTrip gives
// callers a read-modify-write round-trip against the freshest copy the
// backend holds.
type Store interface {
	CreateTrip(ctx context.Context, t *models.Trip) error
	GetTrip(ctx context.Context, id string) (*models.Trip, error)
	UpdateTrip(ctx context.Context, t *models.Trip) error
	ListTrips(ctx context.Context) ([]*models.Trip, error)
	DeleteTrip(ctx context.Context, id string) error

	// MutateTrip loads the trip, applies fn, and persists the result if fn
	// returns nil. The returned trip is the post-mutation document.
	MutateTrip(ctx context.Context, id string, fn func(*models.Trip) error) (*models.Trip, error)
}
