package results

import (
	"context"
	"sync"
)

type inMemoryRepository struct {
	mu       sync.RWMutex
	records  map[string]*Record
	byWinner map[string][]string // teamID -> record IDs
}

// NewInMemoryRepository creates a new in-memory result repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		records:  make(map[string]*Record),
		byWinner: make(map[string][]string),
	}
}

// Create stores a new record
func (r *inMemoryRepository) Create(_ context.Context, record *Record) error {
	if err := validate(record); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[record.ID]; exists {
		return errExists(record.ID)
	}

	r.records[record.ID] = record.clone()
	for _, teamID := range record.Winners {
		r.byWinner[teamID] = append(r.byWinner[teamID], record.ID)
	}

	return nil
}

// Get retrieves a record by ID
func (r *inMemoryRepository) Get(_ context.Context, id string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return nil, errNotFound(id)
	}

	return record.clone(), nil
}

// List returns the most recent records first
func (r *inMemoryRepository) List(_ context.Context, limit int) ([]*Record, error) {
	r.mu.RLock()
	out := make([]*Record, 0, len(r.records))
	for _, record := range r.records {
		out = append(out, record.clone())
	}
	r.mu.RUnlock()

	newestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListByWinner returns the records a team won
func (r *inMemoryRepository) ListByWinner(_ context.Context, teamID string) ([]*Record, error) {
	r.mu.RLock()
	ids := r.byWinner[teamID]
	out := make([]*Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.records[id].clone())
	}
	r.mu.RUnlock()

	newestFirst(out)
	return out, nil
}
