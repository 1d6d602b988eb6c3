package ports

import (
	"context"

	"github.com/insighthq/customer-intelligence/internal/core/domain"
)

// CreateCustomerInput carries all data needed to create a customer.
type CreateCustomerInput struct {
	Name             string
	Company          string
	Email            string
	SubscriptionTier string
	Domains          []string
}

// UpdateCustomerPatch is a field-level partial update. Nil means "leave
// unchanged"; a present field is validated with the same rules as create.
//
// Precedence rule: when SubscriptionTier or Domains is part of the patch the
// health score is recomputed after the merge, and that recompute overrides an
// explicit HealthScore supplied in the same patch.
type UpdateCustomerPatch struct {
	Name             *string
	Company          *string
	Email            *string // empty string clears the stored email
	SubscriptionTier *string
	Domains          *[]string
	HealthScore      *int
}

// ListCustomersResult is one page of customers plus pagination metadata.
type ListCustomersResult struct {
	Customers  []domain.Customer
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// SearchCustomersResult is the outcome of a free-text search.
type SearchCustomersResult struct {
	Results    []domain.Customer
	SearchTerm string
	TotalFound int // matches before the limit was applied
	Limit      int
}

// CustomerService defines the use-case operations over the customer
// collection. Every method returns typed domain errors; nothing panics
// across this boundary.
type CustomerService interface {
	ListCustomers(ctx context.Context, filter ListCustomersFilter) (*ListCustomersResult, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id string, patch UpdateCustomerPatch) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
	SearchCustomers(ctx context.Context, term string, limit int) (*SearchCustomersResult, error)
	CustomersByHealthScoreRange(ctx context.Context, min, max int) ([]domain.Customer, error)
	CustomersByTier(ctx context.Context, tier string) ([]domain.Customer, error)
	Stats(ctx context.Context) (*domain.CustomerStats, error)
}
