package db

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrUnknownCategory = errors.New("unknown category")

// Category classifies a fact by the presence of numbers in its text.
type Category string

var (
	NumberIncluded Category = "number_included"
	NumberExcluded Category = "number_excluded"
)

func (c Category) String() string {
	return string(c)
}

func AsCategory(s string) (Category, error) {
	switch Category(s) {
	case NumberIncluded:
		return NumberIncluded, nil
	case NumberExcluded:
		return NumberExcluded, nil
	default:
		return Category(s), fmt.Errorf("%w: %s", ErrUnknownCategory, s)
	}
}

// Fact is a stored knowledge snippet.
type Fact struct {
	Id        int
	Fact      string
	Category  Category
	Version   int
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (f Fact) Equal(other Fact) bool {
	return f.Id == other.Id &&
		f.Fact == other.Fact &&
		f.Category == other.Category &&
		f.Version == other.Version &&
		f.IsDeleted == other.IsDeleted &&
		f.CreatedAt.Equal(other.CreatedAt) &&
		f.UpdatedAt.Equal(other.UpdatedAt)
}

// NewFact is a fact pulled from the source, cleaned and categorized,
// but not stored yet.
type NewFact struct {
	Fact     string
	Category Category
}

// FactUpdate rewrites an existing fact in place, bumping its version.
type FactUpdate struct {
	Id       int
	Fact     string
	Category Category

	// new value of the version column, not a delta.
	Version int
}

// SyncPlan is the outcome of matching an incoming batch against
// the facts already stored.
//
// Applying a SyncPlan is atomic: either all of its updates, inserts and
// soft-deletes take effect, or none of them do.
type SyncPlan struct {
	Updates     []FactUpdate
	Inserts     []NewFact
	SoftDeletes []int // ids of facts to be soft-deleted
}

// Empty returns true when applying the plan would not change the store.
func (p SyncPlan) Empty() bool {
	return len(p.Updates) == 0 && len(p.Inserts) == 0 && len(p.SoftDeletes) == 0
}

type FactFindQuery struct {
	// when not nil, facts in the category only.
	Category *Category

	// when true, soft-deleted facts are included.
	IncludeDeleted bool
}

type FactInterface interface {
	// GetLive retrieves all facts which are not soft-deleted, in id order.
	//
	// Args
	//
	// - context.Context
	//
	// Returns
	//
	// - []Fact
	//
	// - error
	GetLive(context.Context) ([]Fact, error)

	// Find retrieves facts matching query, in id order.
	Find(context.Context, FactFindQuery) ([]Fact, error)

	// Get retrieves a single fact by id.
	//
	// Returns
	//
	// - Fact
	//
	// - error: ErrMissing (wrapped) when no fact has the id.
	Get(ctx context.Context, id int) (Fact, error)

	// Sync applies plan in a single transaction.
	//
	// Args
	//
	// - context.Context
	//
	// - SyncPlan
	//
	// Returns
	//
	// - SyncStats: how many rows were updated/inserted/soft-deleted.
	//
	// - error
	Sync(context.Context, SyncPlan) (SyncStats, error)

	// SoftDelete marks a single fact as deleted.
	//
	// Returns ErrMissing (wrapped) when no live fact has the id.
	SoftDelete(ctx context.Context, id int) error

	// Purge removes soft-deleted facts whose updated_at is before deadline.
	//
	// Returns
	//
	// - int: how many rows are removed
	//
	// - error
	Purge(ctx context.Context, deadline time.Time) (int, error)
}

// SyncStats counts rows affected by FactInterface.Sync.
type SyncStats struct {
	Updated     int
	Inserted    int
	SoftDeleted int
}
