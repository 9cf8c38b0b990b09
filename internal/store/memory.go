package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chaigney/golftrip/internal/models"
)

type MemoryStore struct {
	mu    sync.RWMutex
	trips map[string]*models.Trip
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{trips: make(map[string]*models.Trip)}
}

func (m *MemoryStore) CreateTrip(_ context.Context, t *models.Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.trips[t.ID]; exists {
		return fmt.Errorf("trip %s already exists", t.ID)
	}

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.Normalize()

	// Deep copy to avoid external mutation
	m.trips[t.ID] = t.Clone()
	return nil
}

func (m *MemoryStore) GetTrip(_ context.Context, id string) (*models.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.trips[id]
	if !ok {
		return nil, fmt.Errorf("trip %s: %w", id, ErrNotFound)
	}
	return t.Clone(), nil
}

func (m *MemoryStore) UpdateTrip(_ context.Context, t *models.Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.trips[t.ID]; !ok {
		return fmt.Errorf("trip %s: %w", t.ID, ErrNotFound)
	}

	t.UpdatedAt = time.Now()
	t.Normalize()
	m.trips[t.ID] = t.Clone()
	return nil
}

func (m *MemoryStore) ListTrips(_ context.Context) ([]*models.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*models.Trip, 0, len(m.trips))
	for _, t := range m.trips {
		result = append(result, t.Clone())
	}
	return result, nil
}

func (m *MemoryStore) DeleteTrip(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.trips[id]; !ok {
		return fmt.Errorf("trip %s: %w", id, ErrNotFound)
	}

	delete(m.trips, id)
	return nil
}

func (m *MemoryStore) MutateTrip(_ context.Context, id string, fn func(*models.Trip) error) (*models.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.trips[id]
	if !ok {
		return nil, fmt.Errorf("trip %s: %w", id, ErrNotFound)
	}

	updated := t.Clone()
	updated.Normalize()
	if err := fn(updated); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now()
	m.trips[id] = updated
	return updated.Clone(), nil
}
