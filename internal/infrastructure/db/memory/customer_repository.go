// Package memory implements the customer repository port on a mutex-guarded
// in-process slice. State lives only in process memory and resets on restart;
// there is deliberately no persistence behind it.
package memory

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/insighthq/customer-intelligence/internal/core/domain"
	"github.com/insighthq/customer-intelligence/internal/core/ports"
)

// CustomerRepository holds the ordered customer collection and the monotonic
// id counter. Every operation takes the lock for its whole duration, so
// operations are atomic with respect to each other and ids are never reused.
type CustomerRepository struct {
	mu        sync.RWMutex
	customers []domain.Customer
	nextID    int64
}

// NewCustomerRepository creates a store pre-loaded with seed (may be nil).
func NewCustomerRepository(seed []domain.Customer) *CustomerRepository {
	r := &CustomerRepository{}
	_ = r.Reset(context.Background(), seed)
	return r
}

// Create assigns the next id and appends the customer. Fails with
// ErrDuplicateEmail when a non-empty email collides (case-insensitive) with
// an existing record; nothing is stored in that case.
func (r *CustomerRepository) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.Email != "" && r.emailTakenLocked(c.Email, "") {
		return nil, domain.ErrDuplicateEmail
	}

	stored := cloneCustomer(*c)
	stored.ID = strconv.FormatInt(r.nextID, 10)
	r.nextID++
	if stored.Domains == nil {
		stored.Domains = []string{}
	}
	r.customers = append(r.customers, stored)

	out := cloneCustomer(stored)
	return &out, nil
}

func (r *CustomerRepository) FindByID(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return nil, domain.ErrCustomerNotFound
	}
	out := cloneCustomer(r.customers[idx])
	return &out, nil
}

// Update mutates a copy of the stored record through fn under the write lock.
// If fn fails, or the mutated email collides with a different customer, the
// collection is left untouched.
func (r *CustomerRepository) Update(_ context.Context, id string, fn func(c *domain.Customer) error) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return nil, domain.ErrCustomerNotFound
	}

	updated := cloneCustomer(r.customers[idx])
	if err := fn(&updated); err != nil {
		return nil, err
	}
	if updated.Email != "" && r.emailTakenLocked(updated.Email, id) {
		return nil, domain.ErrDuplicateEmail
	}

	// Immutable by contract, regardless of what fn did.
	updated.ID = r.customers[idx].ID
	updated.CreatedAt = r.customers[idx].CreatedAt
	if updated.Domains == nil {
		updated.Domains = []string{}
	}

	r.customers[idx] = cloneCustomer(updated)
	return &updated, nil
}

func (r *CustomerRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return domain.ErrCustomerNotFound
	}
	r.customers = append(r.customers[:idx], r.customers[idx+1:]...)
	return nil
}

// List filters, sorts and then paginates, returning the page slice and the
// pre-pagination match count. Ties keep insertion order (stable sort).
func (r *CustomerRepository) List(_ context.Context, filter ports.ListCustomersFilter) ([]domain.Customer, int, error) {
	r.mu.RLock()
	matched := make([]domain.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		if matchesFilter(c, filter) {
			matched = append(matched, cloneCustomer(c))
		}
	}
	r.mu.RUnlock()

	if filter.SortBy != "" {
		sortCustomers(matched, filter.SortBy, filter.SortOrder == "desc")
	}

	total := len(matched)
	limit := filter.Limit
	if limit <= 0 {
		limit = total
	}
	start := (filter.Page - 1) * limit
	if start < 0 {
		start = 0
	}
	if start >= total {
		return []domain.Customer{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *CustomerRepository) Search(_ context.Context, term string) ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(term)
	out := []domain.Customer{}
	for _, c := range r.customers {
		if containsFold(c.Name, needle) || containsFold(c.Company, needle) || containsFold(c.Email, needle) {
			out = append(out, cloneCustomer(c))
		}
	}
	return out, nil
}

func (r *CustomerRepository) FindByHealthScoreRange(_ context.Context, min, max int) ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Customer{}
	for _, c := range r.customers {
		if c.HealthScore >= min && c.HealthScore <= max {
			out = append(out, cloneCustomer(c))
		}
	}
	return out, nil
}

func (r *CustomerRepository) FindByTier(_ context.Context, tier domain.SubscriptionTier) ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Customer{}
	for _, c := range r.customers {
		if c.SubscriptionTier == tier {
			out = append(out, cloneCustomer(c))
		}
	}
	return out, nil
}

func (r *CustomerRepository) Stats(_ context.Context) (*domain.CustomerStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &domain.CustomerStats{Total: len(r.customers)}
	if stats.Total == 0 {
		return stats, nil
	}

	sum := 0
	for _, c := range r.customers {
		sum += c.HealthScore

		switch c.SubscriptionTier {
		case domain.TierBasic:
			stats.ByTier.Basic++
		case domain.TierPremium:
			stats.ByTier.Premium++
		case domain.TierEnterprise:
			stats.ByTier.Enterprise++
		}

		switch domain.HealthBand(c.HealthScore) {
		case "healthy":
			stats.HealthDistribution.Healthy++
		case "warning":
			stats.HealthDistribution.Warning++
		case "critical":
			stats.HealthDistribution.Critical++
		}
	}
	stats.AverageHealthScore = int(math.Round(float64(sum) / float64(stats.Total)))
	return stats, nil
}

// Reset replaces the collection with seed and re-seeds the counter above the
// highest seeded id.
func (r *CustomerRepository) Reset(_ context.Context, seed []domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.customers = make([]domain.Customer, 0, len(seed))
	r.nextID = 1
	for _, c := range seed {
		stored := cloneCustomer(c)
		if stored.Domains == nil {
			stored.Domains = []string{}
		}
		r.customers = append(r.customers, stored)
		if id, err := strconv.ParseInt(c.ID, 10, 64); err == nil && id >= r.nextID {
			r.nextID = id + 1
		}
	}
	return nil
}

// --- locked helpers ---

func (r *CustomerRepository) indexLocked(id string) int {
	for i := range r.customers {
		if r.customers[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *CustomerRepository) emailTakenLocked(email, excludeID string) bool {
	email = strings.ToLower(email)
	for i := range r.customers {
		if r.customers[i].ID == excludeID {
			continue
		}
		if r.customers[i].Email != "" && strings.ToLower(r.customers[i].Email) == email {
			return true
		}
	}
	return false
}

// --- filtering and sorting ---

func matchesFilter(c domain.Customer, f ports.ListCustomersFilter) bool {
	if f.SubscriptionTier != "" && string(c.SubscriptionTier) != f.SubscriptionTier {
		return false
	}
	if f.HealthScoreMin != nil && c.HealthScore < *f.HealthScoreMin {
		return false
	}
	if f.HealthScoreMax != nil && c.HealthScore > *f.HealthScoreMax {
		return false
	}
	if f.Company != "" && !containsFold(c.Company, strings.ToLower(f.Company)) {
		return false
	}
	if f.SearchTerm != "" {
		needle := strings.ToLower(f.SearchTerm)
		if !containsFold(c.Name, needle) && !containsFold(c.Company, needle) && !containsFold(c.Email, needle) {
			return false
		}
	}
	return true
}

// containsFold reports whether haystack contains needle, with needle already
// lowercased by the caller.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// sortCustomers stable-sorts by the given scalar field. String fields use a
// locale-aware, case-folding collation; absent values (empty email) sort
// lowest. An unknown field leaves insertion order untouched.
func sortCustomers(customers []domain.Customer, field string, desc bool) {
	col := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(customers, func(i, j int) bool {
		cmp := compareByField(customers[i], customers[j], field, col)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareByField(a, b domain.Customer, field string, col *collate.Collator) int {
	switch field {
	case "id":
		return compareIDs(a.ID, b.ID, col)
	case "name":
		return col.CompareString(a.Name, b.Name)
	case "company":
		return col.CompareString(a.Company, b.Company)
	case "email":
		// Missing email sorts as lowest.
		switch {
		case a.Email == "" && b.Email == "":
			return 0
		case a.Email == "":
			return -1
		case b.Email == "":
			return 1
		}
		return col.CompareString(a.Email, b.Email)
	case "subscriptionTier":
		return col.CompareString(string(a.SubscriptionTier), string(b.SubscriptionTier))
	case "healthScore":
		return compareInts(a.HealthScore, b.HealthScore)
	case "createdAt":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "updatedAt":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	}
	return 0
}

// compareIDs orders counter-assigned ids numerically, falling back to
// collation when either side is not a number.
func compareIDs(a, b string, col *collate.Collator) int {
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	if aerr != nil || berr != nil {
		return col.CompareString(a, b)
	}
	switch {
	case ai < bi:
		return -1
	case ai > bi:
		return 1
	}
	return 0
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cloneCustomer(c domain.Customer) domain.Customer {
	out := c
	if c.Domains != nil {
		out.Domains = append([]string(nil), c.Domains...)
	}
	return out
}
