package store

import (
	"context"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/chaigney/golftrip/internal/models"
)

const tripsCollection = "trips"

// FirestoreStore backs the Store interface with Google Cloud Firestore, one
// document per trip. Firestore's last-write-wins document semantics is the
// only cross-device concurrency control the product relies on.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore connects to Firestore. databaseID may be empty for the
// default database. Credentials come from GOOGLE_APPLICATION_CREDENTIALS or,
// if set, the FIRESTORE_CREDENTIALS_JSON env var.
func NewFirestoreStore(ctx context.Context, projectID, databaseID string) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if creds := os.Getenv("FIRESTORE_CREDENTIALS_JSON"); creds != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	}

	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) doc(id string) *firestore.DocumentRef {
	return s.client.Collection(tripsCollection).Doc(id)
}

func (s *FirestoreStore) CreateTrip(ctx context.Context, t *models.Trip) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.Normalize()

	if _, err := s.doc(t.ID).Create(ctx, t); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("trip %s already exists", t.ID)
		}
		return fmt.Errorf("creating trip %s: %w", t.ID, err)
	}
	return nil
}

func (s *FirestoreStore) GetTrip(ctx context.Context, id string) (*models.Trip, error) {
	snap, err := s.doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("trip %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("reading trip %s: %w", id, err)
	}

	var t models.Trip
	if err := snap.DataTo(&t); err != nil {
		return nil, fmt.Errorf("decoding trip %s: %w", id, err)
	}
	t.Normalize()
	return &t, nil
}

func (s *FirestoreStore) UpdateTrip(ctx context.Context, t *models.Trip) error {
	t.UpdatedAt = time.Now()
	t.Normalize()

	if _, err := s.doc(t.ID).Set(ctx, t); err != nil {
		return fmt.Errorf("writing trip %s: %w", t.ID, err)
	}
	return nil
}

func (s *FirestoreStore) ListTrips(ctx context.Context) ([]*models.Trip, error) {
	trips := make([]*models.Trip, 0)
	iter := s.client.Collection(tripsCollection).Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing trips: %w", err)
		}
		var t models.Trip
		if err := snap.DataTo(&t); err != nil {
			continue // skip documents that no longer decode
		}
		t.Normalize()
		trips = append(trips, &t)
	}
	return trips, nil
}

func (s *FirestoreStore) DeleteTrip(ctx context.Context, id string) error {
	if _, err := s.doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("deleting trip %s: %w", id, err)
	}
	return nil
}

// MutateTrip applies fn inside a Firestore transaction so the read-modify-
// write round-trip lands on the freshest document version.
func (s *FirestoreStore) MutateTrip(ctx context.Context, id string, fn func(*models.Trip) error) (*models.Trip, error) {
	var result *models.Trip
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(s.doc(id))
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("trip %s: %w", id, ErrNotFound)
			}
			return err
		}
		var t models.Trip
		if err := snap.DataTo(&t); err != nil {
			return fmt.Errorf("decoding trip %s: %w", id, err)
		}
		t.Normalize()
		if err := fn(&t); err != nil {
			return err
		}
		t.UpdatedAt = time.Now()
		result = &t
		return tx.Set(s.doc(id), &t)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ImportTrip writes a trip preserving its original timestamps, used by the
// migration tool.
func (s *FirestoreStore) ImportTrip(ctx context.Context, t *models.Trip) error {
	if _, err := s.doc(t.ID).Create(ctx, t); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("trip %s already exists", t.ID)
		}
		return fmt.Errorf("importing trip %s: %w", t.ID, err)
	}
	return nil
}
