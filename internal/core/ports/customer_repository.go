package ports

import (
	"context"

	"github.com/insighthq/customer-intelligence/internal/core/domain"
)

// ListCustomersFilter carries all query parameters for listing customers.
// All filters are optional and conjunctive (AND).
type ListCustomersFilter struct {
	SubscriptionTier string // exact tier match
	HealthScoreMin   *int   // inclusive lower bound
	HealthScoreMax   *int   // inclusive upper bound
	Company          string // case-insensitive substring on company
	SearchTerm       string // case-insensitive substring on name, company or email

	SortBy    string // any scalar customer field; empty = insertion order
	SortOrder string // "asc" (default) or "desc"

	Page  int // 1-based
	Limit int // rows per page (defaulted and capped by the service)
}

// CustomerRepository defines storage operations for customers.
//
// Implementations must make every call atomic with respect to every other
// call: no two mutations may interleave mid-validation. Filtering and
// sorting are applied before pagination, with a stable order for ties.
type CustomerRepository interface {
	// Create assigns the next id, enforces email uniqueness and stores c.
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	// Update applies fn to a copy of the stored record under the store's
	// lock. If fn returns an error the store is left unchanged. Email
	// uniqueness is re-checked against the mutated record before commit.
	Update(ctx context.Context, id string, fn func(c *domain.Customer) error) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error

	// List returns one page of customers matching filter plus the total
	// pre-pagination match count.
	List(ctx context.Context, filter ListCustomersFilter) ([]domain.Customer, int, error)
	Search(ctx context.Context, term string) ([]domain.Customer, error)
	FindByHealthScoreRange(ctx context.Context, min, max int) ([]domain.Customer, error)
	FindByTier(ctx context.Context, tier domain.SubscriptionTier) ([]domain.Customer, error)
	Stats(ctx context.Context) (*domain.CustomerStats, error)

	// Reset replaces the collection with seed and re-seeds the id counter
	// above it. Intended for startup seeding and test isolation.
	Reset(ctx context.Context, seed []domain.Customer) error
}
