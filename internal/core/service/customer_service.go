package service

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/insighthq/customer-intelligence/internal/core/domain"
	"github.com/insighthq/customer-intelligence/internal/core/ports"
)

const (
	maxNameLength   = 100
	maxEmailLength  = 254
	maxDomainLength = 253
	maxDomains      = 10

	defaultPageLimit = 20
	maxPageLimit     = 100
)

// emailPattern mirrors the permissive "local@host.tld" shape accepted at the
// transport layer; the service re-checks so direct callers get the same rules.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// dnsDomainPattern matches a syntactically valid DNS name: dot-separated
// labels of up to 63 chars, ending in an alphabetic TLD.
var dnsDomainPattern = regexp.MustCompile(`^(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

type CustomerService struct {
	repo   ports.CustomerRepository
	logger zerolog.Logger
}

func NewCustomerService(repo ports.CustomerRepository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{repo: repo, logger: logger}
}

// CreateCustomer validates input, derives the initial health score and stores
// the new customer. The id is assigned by the repository; email uniqueness is
// enforced there as well, so validation and commit happen atomically.
func (s *CustomerService) CreateCustomer(ctx context.Context, input ports.CreateCustomerInput) (*domain.Customer, error) {
	name, err := validateRequiredText("name", input.Name)
	if err != nil {
		return nil, err
	}
	company, err := validateRequiredText("company", input.Company)
	if err != nil {
		return nil, err
	}
	email, err := validateEmail(input.Email)
	if err != nil {
		return nil, err
	}
	tier, err := resolveTier(input.SubscriptionTier)
	if err != nil {
		return nil, err
	}
	domains, err := validateDomains(input.Domains)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	customer := &domain.Customer{
		Name:             name,
		Company:          company,
		Email:            email,
		SubscriptionTier: tier,
		Domains:          domains,
		// Account age is zero at creation, so the age bonus never
		// contributes here.
		HealthScore: domain.HealthScore(tier, len(domains), email != "", 0),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("customer_id", created.ID).
		Str("tier", string(created.SubscriptionTier)).
		Int("health_score", created.HealthScore).
		Msg("customer created")

	return created, nil
}

// GetCustomer returns a single customer by id.
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	id, err := validateID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// UpdateCustomer applies a field-level patch. When the patch touches
// subscriptionTier or domains, the health score is recomputed after the merge
// and wins over any explicit healthScore in the same patch.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, patch ports.UpdateCustomerPatch) (*domain.Customer, error) {
	id, err := validateID(id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, func(c *domain.Customer) error {
		if patch.Name != nil {
			name, err := validateRequiredText("name", *patch.Name)
			if err != nil {
				return err
			}
			c.Name = name
		}
		if patch.Company != nil {
			company, err := validateRequiredText("company", *patch.Company)
			if err != nil {
				return err
			}
			c.Company = company
		}
		if patch.Email != nil {
			email, err := validateEmail(*patch.Email)
			if err != nil {
				return err
			}
			c.Email = email
		}
		if patch.SubscriptionTier != nil {
			tier := domain.SubscriptionTier(strings.TrimSpace(*patch.SubscriptionTier))
			if !tier.IsValid() {
				return domain.NewValidationError("subscriptionTier",
					"must be one of: basic, premium, enterprise")
			}
			c.SubscriptionTier = tier
		}
		if patch.Domains != nil {
			domains, err := validateDomains(*patch.Domains)
			if err != nil {
				return err
			}
			c.Domains = domains
		}

		// A provided healthScore is validated even when a recompute is about
		// to override its value.
		if patch.HealthScore != nil && (*patch.HealthScore < 0 || *patch.HealthScore > 100) {
			return domain.NewValidationErrorCode("healthScore",
				domain.CodeInvalidHealthScore, "must be between 0 and 100")
		}

		switch {
		case patch.SubscriptionTier != nil || patch.Domains != nil:
			// Tier/domain changes win over an explicit healthScore
			// supplied in the same patch.
			c.HealthScore = domain.HealthScore(
				c.SubscriptionTier, len(c.Domains), c.Email != "", time.Since(c.CreatedAt))
		case patch.HealthScore != nil:
			c.HealthScore = *patch.HealthScore
		}

		c.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("customer_id", updated.ID).
		Int("health_score", updated.HealthScore).
		Msg("customer updated")

	return updated, nil
}

// DeleteCustomer removes a customer. The id is never reused afterwards.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	id, err := validateID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("customer_id", id).Msg("customer deleted")
	return nil
}

// ListCustomers returns one page of the filtered, sorted collection.
func (s *CustomerService) ListCustomers(ctx context.Context, filter ports.ListCustomersFilter) (*ports.ListCustomersResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	if filter.SortOrder != "desc" {
		filter.SortOrder = "asc"
	}

	customers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListCustomersResult{
		Customers:  customers,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// SearchCustomers matches term against name, company and email,
// case-insensitively. An empty or whitespace term yields an empty result,
// not the full collection.
func (s *CustomerService) SearchCustomers(ctx context.Context, term string, limit int) (*ports.SearchCustomersResult, error) {
	term = strings.TrimSpace(term)
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	if term == "" {
		return &ports.SearchCustomersResult{Results: []domain.Customer{}, Limit: limit}, nil
	}

	matches, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	results := matches
	if len(results) > limit {
		results = results[:limit]
	}
	return &ports.SearchCustomersResult{
		Results:    results,
		SearchTerm: term,
		TotalFound: len(matches),
		Limit:      limit,
	}, nil
}

// CustomersByHealthScoreRange returns all customers whose score lies in
// [min,max]. The bounds themselves are validated; an inverted range is an
// error rather than an empty result.
func (s *CustomerService) CustomersByHealthScoreRange(ctx context.Context, min, max int) ([]domain.Customer, error) {
	if min < 0 || min > 100 || max < 0 || max > 100 {
		return nil, domain.NewValidationErrorCode("healthScore",
			domain.CodeInvalidHealthScore, "bounds must be between 0 and 100")
	}
	if min > max {
		return nil, domain.NewValidationError("healthScore",
			fmt.Sprintf("min (%d) cannot exceed max (%d)", min, max))
	}
	return s.repo.FindByHealthScoreRange(ctx, min, max)
}

// CustomersByTier returns all customers on the given subscription tier.
func (s *CustomerService) CustomersByTier(ctx context.Context, tier string) ([]domain.Customer, error) {
	t := domain.SubscriptionTier(strings.TrimSpace(tier))
	if !t.IsValid() {
		return nil, domain.NewValidationError("subscriptionTier",
			"must be one of: basic, premium, enterprise")
	}
	return s.repo.FindByTier(ctx, t)
}

// Stats returns aggregate counts over the whole collection.
func (s *CustomerService) Stats(ctx context.Context) (*domain.CustomerStats, error) {
	return s.repo.Stats(ctx)
}

// --- validation helpers ---

func validateID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", domain.NewValidationError("id", "cannot be empty")
	}
	return id, nil
}

func validateRequiredText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domain.NewValidationError(field, "cannot be empty")
	}
	if utf8.RuneCountInString(value) > maxNameLength {
		return "", domain.NewValidationError(field,
			fmt.Sprintf("cannot exceed %d characters", maxNameLength))
	}
	return value, nil
}

// validateEmail normalises and checks an optional email. The empty string is
// valid (no email on file) and is how a patch clears the field.
func validateEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", nil
	}
	if utf8.RuneCountInString(email) > maxEmailLength {
		return "", domain.NewValidationErrorCode("email", domain.CodeInvalidEmail,
			fmt.Sprintf("cannot exceed %d characters", maxEmailLength))
	}
	if !emailPattern.MatchString(email) {
		return "", domain.NewValidationErrorCode("email", domain.CodeInvalidEmail,
			"must be a valid email address")
	}
	return email, nil
}

func resolveTier(tier string) (domain.SubscriptionTier, error) {
	tier = strings.TrimSpace(tier)
	if tier == "" {
		return domain.TierBasic, nil
	}
	t := domain.SubscriptionTier(tier)
	if !t.IsValid() {
		return "", domain.NewValidationError("subscriptionTier",
			"must be one of: basic, premium, enterprise")
	}
	return t, nil
}

// validateDomains normalises a domain list: entries are trimmed and
// lowercased, must be syntactically valid DNS names, at most 10 per customer,
// with no duplicates within the list.
func validateDomains(domains []string) ([]string, error) {
	if len(domains) > maxDomains {
		return nil, domain.NewValidationErrorCode("domains", domain.CodeInvalidDomain,
			fmt.Sprintf("cannot exceed %d entries", maxDomains))
	}
	out := make([]string, 0, len(domains))
	seen := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if utf8.RuneCountInString(d) > maxDomainLength || !dnsDomainPattern.MatchString(d) {
			return nil, domain.NewValidationErrorCode("domains", domain.CodeInvalidDomain,
				fmt.Sprintf("%q is not a valid domain", d))
		}
		if _, dup := seen[d]; dup {
			return nil, domain.NewValidationErrorCode("domains", domain.CodeInvalidDomain,
				fmt.Sprintf("duplicate entry %q", d))
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out, nil
}
