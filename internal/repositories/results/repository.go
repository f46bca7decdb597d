package results

//go:generate mockgen -destination=mock/mock_repository.go -package=mockresults -source=repository.go

import (
	"context"
	"slices"
	"time"
)

// Record is the stored outcome of one finished combat. It is a summary for
// reporting, not a combat that can be resumed.
type Record struct {
	ID        string    `json:"id"`
	Scenario  string    `json:"scenario"`
	Seed      int64     `json:"seed"`
	Winners   []string  `json:"winners"`
	Events    int       `json:"events"`
	Survivors []string  `json:"survivors"`
	Log       []string  `json:"log,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Draw reports whether nobody won
func (r *Record) Draw() bool { return len(r.Winners) == 0 }

func (r *Record) clone() *Record {
	out := *r
	out.Winners = slices.Clone(r.Winners)
	out.Survivors = slices.Clone(r.Survivors)
	out.Log = slices.Clone(r.Log)
	return &out
}

// Repository defines the interface for combat result storage
type Repository interface {
	// Create stores a new record; the id must be unused
	Create(ctx context.Context, record *Record) error

	// Get retrieves a record by ID
	Get(ctx context.Context, id string) (*Record, error)

	// List returns the most recent records first. A limit of zero or less
	// returns everything.
	List(ctx context.Context, limit int) ([]*Record, error)

	// ListByWinner returns every record that team won, most recent first
	ListByWinner(ctx context.Context, teamID string) ([]*Record, error)
}

func validate(record *Record) error {
	if record == nil {
		return errInvalid("record cannot be nil")
	}
	if record.ID == "" {
		return errInvalid("record ID cannot be empty")
	}
	return nil
}

func newestFirst(records []*Record) {
	slices.SortStableFunc(records, func(a, b *Record) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
