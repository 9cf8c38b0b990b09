package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chaigney/golftrip/internal/models"
)

// FileStore persists each trip as a JSON file on disk.
// Files are stored as {dir}/{trip-id}.json.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(id string) string {
	return filepath.Join(f.dir, id+".json")
}

func (f *FileStore) readTrip(id string) (*models.Trip, error) {
	data, err := os.ReadFile(f.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("trip %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("reading trip %s: %w", id, err)
	}

	var t models.Trip
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decoding trip %s: %w", id, err)
	}
	// Normalize: documents written by older clients may omit maps entirely.
	t.Normalize()
	return &t, nil
}

func (f *FileStore) writeTrip(t *models.Trip) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding trip %s: %w", t.ID, err)
	}

	// Write to temp file then rename for atomic writes
	tmp := f.path(t.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing trip %s: %w", t.ID, err)
	}
	if err := os.Rename(tmp, f.path(t.ID)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming trip file %s: %w", t.ID, err)
	}
	return nil
}

func (f *FileStore) CreateTrip(_ context.Context, t *models.Trip) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := os.Stat(f.path(t.ID)); err == nil {
		return fmt.Errorf("trip %s already exists", t.ID)
	}

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.Normalize()

	return f.writeTrip(t)
}

func (f *FileStore) GetTrip(_ context.Context, id string) (*models.Trip, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.readTrip(id)
}

func (f *FileStore) UpdateTrip(_ context.Context, t *models.Trip) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := os.Stat(f.path(t.ID)); os.IsNotExist(err) {
		return fmt.Errorf("trip %s: %w", t.ID, ErrNotFound)
	}

	t.UpdatedAt = time.Now()
	t.Normalize()
	return f.writeTrip(t)
}

func (f *FileStore) ListTrips(_ context.Context) ([]*models.Trip, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("listing data directory: %w", err)
	}

	trips := make([]*models.Trip, 0)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" || strings.HasPrefix(entry.Name(), "_") {
			continue
		}
		id := entry.Name()[:len(entry.Name())-5] // strip .json
		t, err := f.readTrip(id)
		if err != nil {
			continue // skip corrupt files
		}
		trips = append(trips, t)
	}
	return trips, nil
}

func (f *FileStore) DeleteTrip(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := f.path(id)
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return fmt.Errorf("trip %s: %w", id, ErrNotFound)
	}

	if err := os.Remove(p); err != nil {
		return fmt.Errorf("deleting trip %s: %w", id, err)
	}
	return nil
}

func (f *FileStore) MutateTrip(_ context.Context, id string, fn func(*models.Trip) error) (*models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, err := f.readTrip(id)
	if err != nil {
		return nil, err
	}
	if err := fn(t); err != nil {
		return nil, err
	}
	t.UpdatedAt = time.Now()
	if err := f.writeTrip(t); err != nil {
		return nil, err
	}
	return t, nil
}
