package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"pgregory.net/rapid"

	"github.com/insighthq/customer-intelligence/internal/core/domain"
	"github.com/insighthq/customer-intelligence/internal/core/ports"
	"github.com/insighthq/customer-intelligence/internal/infrastructure/db/memory"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestService() *CustomerService {
	return NewCustomerService(memory.NewCustomerRepository(nil), zerolog.Nop())
}

func minimalInput(name, company string) ports.CreateCustomerInput {
	return ports.CreateCustomerInput{Name: name, Company: company}
}

func mustCreate(t *testing.T, svc *CustomerService, input ports.CreateCustomerInput) *domain.Customer {
	t.Helper()
	c, err := svc.CreateCustomer(context.Background(), input)
	if err != nil {
		t.Fatalf("seed create: %v", err)
	}
	return c
}

func isValidationError(err error) bool {
	var ve *domain.ValidationError
	return errors.As(err, &ve)
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// ---------------------------------------------------------------------------
// CreateCustomer
// ---------------------------------------------------------------------------

func TestCreateCustomer_Defaults(t *testing.T) {
	svc := newTestService()

	c := mustCreate(t, svc, minimalInput("Jane Doe", "Acme"))

	if c.ID != "1" {
		t.Errorf("first id: want %q, got %q", "1", c.ID)
	}
	if c.SubscriptionTier != domain.TierBasic {
		t.Errorf("tier must default to basic, got %q", c.SubscriptionTier)
	}
	if c.Domains == nil || len(c.Domains) != 0 {
		t.Errorf("domains must default to an empty list, got %#v", c.Domains)
	}
	// 50 base + 5 basic, no email, no domains.
	if c.HealthScore != 55 {
		t.Errorf("initial health score: want 55, got %d", c.HealthScore)
	}
	if c.CreatedAt.IsZero() || !c.CreatedAt.Equal(c.UpdatedAt) {
		t.Errorf("timestamps: createdAt=%v updatedAt=%v", c.CreatedAt, c.UpdatedAt)
	}
}

func TestCreateCustomer_InitialHealthScore(t *testing.T) {
	svc := newTestService()

	c := mustCreate(t, svc, ports.CreateCustomerInput{
		Name:             "Jane Doe",
		Company:          "Acme",
		Email:            "jane@acme.com",
		SubscriptionTier: "premium",
		Domains:          []string{"acme.com"},
	})

	// 50 + 15 (premium) + 5 (one domain) + 10 (email) = 80.
	if c.HealthScore != 80 {
		t.Errorf("health score: want 80, got %d", c.HealthScore)
	}
}

func TestCreateCustomer_TrimsAndLowercases(t *testing.T) {
	svc := newTestService()

	c := mustCreate(t, svc, ports.CreateCustomerInput{
		Name:    "  Jane Doe  ",
		Company: " Acme ",
		Email:   " Jane@ACME.com ",
		Domains: []string{" ACME.com "},
	})

	if c.Name != "Jane Doe" || c.Company != "Acme" {
		t.Errorf("name/company not trimmed: %q / %q", c.Name, c.Company)
	}
	if c.Email != "jane@acme.com" {
		t.Errorf("email not lowercased: %q", c.Email)
	}
	if c.Domains[0] != "acme.com" {
		t.Errorf("domain not normalised: %q", c.Domains[0])
	}
}

func TestCreateCustomer_Validation(t *testing.T) {
	svc := newTestService()

	cases := []struct {
		name  string
		input ports.CreateCustomerInput
	}{
		{"missing name", minimalInput("", "Acme")},
		{"whitespace name", minimalInput("   ", "Acme")},
		{"missing company", minimalInput("Jane", "")},
		{"name too long", minimalInput(strings.Repeat("x", 101), "Acme")},
		{"bad email", ports.CreateCustomerInput{Name: "Jane", Company: "Acme", Email: "not-an-email"}},
		{"email too long", ports.CreateCustomerInput{Name: "Jane", Company: "Acme",
			Email: strings.Repeat("x", 250) + "@a.com"}},
		{"bad tier", ports.CreateCustomerInput{Name: "Jane", Company: "Acme", SubscriptionTier: "platinum"}},
		{"bad domain", ports.CreateCustomerInput{Name: "Jane", Company: "Acme", Domains: []string{"not a domain"}}},
		{"duplicate domains", ports.CreateCustomerInput{Name: "Jane", Company: "Acme",
			Domains: []string{"acme.com", "ACME.com"}}},
		{"too many domains", ports.CreateCustomerInput{Name: "Jane", Company: "Acme",
			Domains: manyDomains(11)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateCustomer(context.Background(), tc.input)
			if !isValidationError(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateCustomer_LengthLimitsCountCharacters(t *testing.T) {
	svc := newTestService()

	// 100 multibyte characters is 200 bytes but exactly at the limit.
	name := strings.Repeat("é", 100)
	c := mustCreate(t, svc, minimalInput(name, "Acme"))
	if c.Name != name {
		t.Errorf("100-character multibyte name must be stored unchanged")
	}

	_, err := svc.CreateCustomer(context.Background(), minimalInput(strings.Repeat("é", 101), "Acme"))
	if !isValidationError(err) {
		t.Errorf("101-character name must be rejected, got %v", err)
	}
}

func TestCreateCustomer_InvalidEmailCode(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateCustomer(context.Background(),
		ports.CreateCustomerInput{Name: "Jane", Company: "Acme", Email: "not-an-email"})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Code != domain.CodeInvalidEmail {
		t.Errorf("code: want %q, got %q", domain.CodeInvalidEmail, ve.Code)
	}
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	svc := newTestService()
	mustCreate(t, svc, ports.CreateCustomerInput{Name: "Jane", Company: "Acme", Email: "jane@acme.com"})

	_, err := svc.CreateCustomer(context.Background(),
		ports.CreateCustomerInput{Name: "Imposter", Company: "Evil Corp", Email: "JANE@ACME.COM"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// The failed create must not have mutated state.
	stats, _ := svc.Stats(context.Background())
	if stats.Total != 1 {
		t.Errorf("collection mutated by failed create: total=%d", stats.Total)
	}
}

func manyDomains(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("site%d.example.com", i)
	}
	return out
}

// ---------------------------------------------------------------------------
// GetCustomer
// ---------------------------------------------------------------------------

func TestGetCustomer_RoundTrip(t *testing.T) {
	svc := newTestService()
	created := mustCreate(t, svc, ports.CreateCustomerInput{
		Name: "Jane", Company: "Acme", Email: "jane@acme.com",
		SubscriptionTier: "premium", Domains: []string{"acme.com"},
	})

	got, err := svc.GetCustomer(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != created.ID || got.Name != created.Name || got.Email != created.Email ||
		got.HealthScore != created.HealthScore || !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("round trip mismatch:\ncreated %+v\ngot     %+v", created, got)
	}
}

func TestGetCustomer_NotFound(t *testing.T) {
	svc := newTestService()
	_, err := svc.GetCustomer(context.Background(), "999")
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestGetCustomer_EmptyID(t *testing.T) {
	svc := newTestService()
	_, err := svc.GetCustomer(context.Background(), "   ")
	if !isValidationError(err) {
		t.Errorf("expected validation error for whitespace id, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// UpdateCustomer
// ---------------------------------------------------------------------------

func TestUpdateCustomer_PartialPatch(t *testing.T) {
	svc := newTestService()
	created := mustCreate(t, svc, ports.CreateCustomerInput{
		Name: "Jane", Company: "Acme", Email: "jane@acme.com",
	})

	time.Sleep(5 * time.Millisecond)
	updated, err := svc.UpdateCustomer(context.Background(), created.ID,
		ports.UpdateCustomerPatch{Name: strPtr("Jane Smith")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Name != "Jane Smith" {
		t.Errorf("name not updated: %q", updated.Name)
	}
	if updated.Company != "Acme" || updated.Email != "jane@acme.com" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("createdAt must never change")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("updatedAt must be refreshed: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
}

func TestUpdateCustomer_TierChangeRecomputesScore(t *testing.T) {
	svc := newTestService()
	created := mustCreate(t, svc, ports.CreateCustomerInput{
		Name: "Jane", Company: "Acme", Email: "jane@acme.com",
		SubscriptionTier: "premium", Domains: []string{"acme.com"},
	})
	if created.HealthScore != 80 {
		t.Fatalf("precondition: want 80, got %d", created.HealthScore)
	}

	updated, err := svc.UpdateCustomer(context.Background(), created.ID,
		ports.UpdateCustomerPatch{SubscriptionTier: strPtr("enterprise")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 50 + 30 (enterprise) + 5 (domain) + 10 (email); the account is seconds
	// old, so the age bonus rounds away.
	if updated.HealthScore != 95 {
		t.Errorf("recomputed score: want 95, got %d", updated.HealthScore)
	}
}

func TestUpdateCustomer_RecomputeOverridesExplicitScore(t *testing.T) {
	svc := newTestService()
	created := mustCreate(t, svc, ports.CreateCustomerInput{
		Name: "Jane", Company: "Acme", Email: "jane@acme.com",
		SubscriptionTier: "premium", Domains: []string{"acme.com"},
	})

	// Tier change and explicit score in the same patch: the recompute wins.
	updated, err := svc.UpdateCustomer(context.Background(), created.ID,
		ports.UpdateCustomerPatch{
			SubscriptionTier: strPtr("enterprise"),
			HealthScore:      intPtr(10),
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.HealthScore != 95 {
		t.Errorf("recompute must override explicit score: want 95, got %d", updated.HealthScore)
	}

	// An out-of-range score is rejected even though the recompute would have
	// overridden its value.
	_, err = svc.UpdateCustomer(context.Background(), created.ID,
		ports.UpdateCustomerPatch{
			SubscriptionTier: strPtr("basic"),
			HealthScore:      intPtr(500),
		})
	if !isValidationError(err) {
		t.Errorf("out-of-range score alongside a tier change must fail validation, got %v", err)
	}

	// The failed patch must not have applied the tier change.
	got, _ := svc.GetCustomer(context.Background(), created.ID)
	if got.SubscriptionTier != domain.TierEnterprise {
		t.Errorf("failed update mutated state: tier=%q", got.SubscriptionTier)
	}
}

func TestUpdateCustomer_ExplicitScoreWithoutTierChange(t *testing.T) {
	svc := newTestService()
	created := mustCreate(t, svc, minimalInput("Jane", "Acme"))

	updated, err := svc.UpdateCustomer(context.Background(), created.ID,
		ports.UpdateCustomerPatch{HealthScore: intPtr(42)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.HealthScore != 42 {
		t.Errorf("explicit score: want 42, got %d", updated.HealthScore)
	}

	_, err = svc.UpdateCustomer(context.Background(), created.ID,
		ports.UpdateCustomerPatch{HealthScore: intPtr(101)})
	if !isValidationError(err) {
		t.Errorf("expected validation error for score 101, got %v", err)
	}
}

func TestUpdateCustomer_EmptyNameRejected(t *testing.T) {
	svc := newTestService()
	created := mustCreate(t, svc, minimalInput("Jane", "Acme"))

	_, err := svc.UpdateCustomer(context.Background(), created.ID,
		ports.UpdateCustomerPatch{Name: strPtr("")})
	if !isValidationError(err) {
		t.Errorf("explicitly present empty name must be rejected, got %v", err)
	}

	// The failed patch must not have applied anything.
	got, _ := svc.GetCustomer(context.Background(), created.ID)
	if got.Name != "Jane" {
		t.Errorf("failed update mutated state: %q", got.Name)
	}
}

func TestUpdateCustomer_DuplicateEmail(t *testing.T) {
	svc := newTestService()
	mustCreate(t, svc, ports.CreateCustomerInput{Name: "Jane", Company: "Acme", Email: "jane@acme.com"})
	other := mustCreate(t, svc, ports.CreateCustomerInput{Name: "Bob", Company: "Globex", Email: "bob@globex.com"})

	_, err := svc.UpdateCustomer(context.Background(), other.ID,
		ports.UpdateCustomerPatch{Email: strPtr("Jane@Acme.com")})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// Re-submitting a customer's own email is not a collision.
	_, err = svc.UpdateCustomer(context.Background(), other.ID,
		ports.UpdateCustomerPatch{Email: strPtr("bob@globex.com")})
	if err != nil {
		t.Errorf("own email must not collide: %v", err)
	}
}

func TestUpdateCustomer_ClearEmail(t *testing.T) {
	svc := newTestService()
	created := mustCreate(t, svc, ports.CreateCustomerInput{Name: "Jane", Company: "Acme", Email: "jane@acme.com"})

	updated, err := svc.UpdateCustomer(context.Background(), created.ID,
		ports.UpdateCustomerPatch{Email: strPtr("")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Email != "" {
		t.Errorf("email should be cleared, got %q", updated.Email)
	}
}

func TestUpdateCustomer_NotFound(t *testing.T) {
	svc := newTestService()
	_, err := svc.UpdateCustomer(context.Background(), "999",
		ports.UpdateCustomerPatch{Name: strPtr("Nobody")})
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("expected ErrCustomerNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// DeleteCustomer
// ---------------------------------------------------------------------------

func TestDeleteCustomer(t *testing.T) {
	svc := newTestService()
	created := mustCreate(t, svc, minimalInput("Jane", "Acme"))

	if err := svc.DeleteCustomer(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.GetCustomer(context.Background(), created.ID)
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("deleted customer still retrievable: %v", err)
	}

	// Second delete fails cleanly, it does not crash.
	if err := svc.DeleteCustomer(context.Background(), created.ID); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("second delete: expected ErrCustomerNotFound, got %v", err)
	}
}

func TestDeleteCustomer_IDNeverReused(t *testing.T) {
	svc := newTestService()
	first := mustCreate(t, svc, minimalInput("Jane", "Acme"))

	if err := svc.DeleteCustomer(context.Background(), first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	second := mustCreate(t, svc, minimalInput("Bob", "Globex"))
	if second.ID == first.ID {
		t.Errorf("id %q was reused after deletion", first.ID)
	}
}

// ---------------------------------------------------------------------------
// ListCustomers
// ---------------------------------------------------------------------------

func seedEight(t *testing.T, svc *CustomerService) {
	t.Helper()
	for i := 0; i < 8; i++ {
		mustCreate(t, svc, minimalInput(fmt.Sprintf("Customer %d", i), fmt.Sprintf("Company %d", i)))
	}
}

func TestListCustomers_Pagination(t *testing.T) {
	svc := newTestService()
	seedEight(t, svc)

	res, err := svc.ListCustomers(context.Background(), ports.ListCustomersFilter{Page: 1, Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Customers) != 5 {
		t.Errorf("page 1: want 5 items, got %d", len(res.Customers))
	}
	if res.Page != 1 || res.Limit != 5 || res.Total != 8 || res.TotalPages != 2 {
		t.Errorf("pagination: got {page:%d limit:%d total:%d totalPages:%d}, want {1 5 8 2}",
			res.Page, res.Limit, res.Total, res.TotalPages)
	}

	res2, _ := svc.ListCustomers(context.Background(), ports.ListCustomersFilter{Page: 2, Limit: 5})
	if len(res2.Customers) != 3 {
		t.Errorf("page 2: want 3 items, got %d", len(res2.Customers))
	}
}

func TestListCustomers_DefaultAndCappedLimit(t *testing.T) {
	svc := newTestService()

	res, err := svc.ListCustomers(context.Background(), ports.ListCustomersFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Limit != 20 || res.Page != 1 {
		t.Errorf("defaults: got limit=%d page=%d, want 20/1", res.Limit, res.Page)
	}

	res, err = svc.ListCustomers(context.Background(), ports.ListCustomersFilter{Limit: 999})
	if err != nil {
		t.Fatal(err)
	}
	if res.Limit != 100 {
		t.Errorf("cap: got limit=%d, want 100", res.Limit)
	}
}

func TestListCustomers_Filters(t *testing.T) {
	svc := newTestService()
	mustCreate(t, svc, ports.CreateCustomerInput{Name: "Jane", Company: "Acme Rockets",
		Email: "jane@acme.com", SubscriptionTier: "enterprise", Domains: []string{"acme.com"}})
	mustCreate(t, svc, ports.CreateCustomerInput{Name: "Bob", Company: "Globex",
		SubscriptionTier: "basic"})
	mustCreate(t, svc, ports.CreateCustomerInput{Name: "Ana", Company: "Acme Labs",
		SubscriptionTier: "premium", Email: "ana@acmelabs.com"})

	ctx := context.Background()

	res, _ := svc.ListCustomers(ctx, ports.ListCustomersFilter{SubscriptionTier: "enterprise"})
	if res.Total != 1 {
		t.Errorf("tier filter: want 1, got %d", res.Total)
	}

	res, _ = svc.ListCustomers(ctx, ports.ListCustomersFilter{Company: "acme"})
	if res.Total != 2 {
		t.Errorf("company substring filter: want 2, got %d", res.Total)
	}

	// Enterprise+email+domain scores 95; basic bare scores 55.
	res, _ = svc.ListCustomers(ctx, ports.ListCustomersFilter{HealthScoreMin: intPtr(90)})
	if res.Total != 1 {
		t.Errorf("healthScoreMin filter: want 1, got %d", res.Total)
	}
	res, _ = svc.ListCustomers(ctx, ports.ListCustomersFilter{HealthScoreMax: intPtr(60)})
	if res.Total != 1 {
		t.Errorf("healthScoreMax filter: want 1, got %d", res.Total)
	}

	res, _ = svc.ListCustomers(ctx, ports.ListCustomersFilter{SearchTerm: "acme"})
	if res.Total != 2 {
		t.Errorf("searchTerm filter: want 2 (name/company/email match), got %d", res.Total)
	}

	// Filters are conjunctive.
	res, _ = svc.ListCustomers(ctx, ports.ListCustomersFilter{Company: "acme", SubscriptionTier: "premium"})
	if res.Total != 1 {
		t.Errorf("conjunctive filters: want 1, got %d", res.Total)
	}
}

func TestListCustomers_SortLocaleAware(t *testing.T) {
	svc := newTestService()
	mustCreate(t, svc, minimalInput("charlie", "C Co"))
	mustCreate(t, svc, minimalInput("Beta", "B Co"))
	mustCreate(t, svc, minimalInput("alpha", "A Co"))

	res, err := svc.ListCustomers(context.Background(),
		ports.ListCustomersFilter{SortBy: "name", SortOrder: "asc"})
	if err != nil {
		t.Fatal(err)
	}

	// Byte-wise ordering would put "Beta" first; collation must not.
	want := []string{"alpha", "Beta", "charlie"}
	for i, c := range res.Customers {
		if c.Name != want[i] {
			t.Fatalf("sort order: got %v at %d, want %v", c.Name, i, want[i])
		}
	}

	res, _ = svc.ListCustomers(context.Background(),
		ports.ListCustomersFilter{SortBy: "name", SortOrder: "desc"})
	if res.Customers[0].Name != "charlie" {
		t.Errorf("desc sort: want charlie first, got %q", res.Customers[0].Name)
	}
}

func TestListCustomers_SortByHealthScoreStable(t *testing.T) {
	svc := newTestService()
	// Same score for all three: insertion order must be preserved.
	mustCreate(t, svc, minimalInput("First", "One"))
	mustCreate(t, svc, minimalInput("Second", "Two"))
	mustCreate(t, svc, minimalInput("Third", "Three"))

	res, err := svc.ListCustomers(context.Background(),
		ports.ListCustomersFilter{SortBy: "healthScore"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"First", "Second", "Third"}
	for i, c := range res.Customers {
		if c.Name != want[i] {
			t.Fatalf("stable sort violated: got %q at %d", c.Name, i)
		}
	}
}

func TestListCustomers_PagesReconstructCollection(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 40).Draw(rt, "n")
		limit := rapid.IntRange(1, 15).Draw(rt, "limit")

		svc := newTestService()
		ctx := context.Background()
		for i := 0; i < n; i++ {
			_, err := svc.CreateCustomer(ctx, minimalInput(
				fmt.Sprintf("Customer %02d", i), fmt.Sprintf("Company %02d", i)))
			if err != nil {
				rt.Fatalf("create: %v", err)
			}
		}

		full, err := svc.ListCustomers(ctx, ports.ListCustomersFilter{SortBy: "name", Page: 1, Limit: 100})
		if err != nil {
			rt.Fatalf("full list: %v", err)
		}

		var rebuilt []string
		for page := 1; ; page++ {
			res, err := svc.ListCustomers(ctx, ports.ListCustomersFilter{SortBy: "name", Page: page, Limit: limit})
			if err != nil {
				rt.Fatalf("page %d: %v", page, err)
			}
			if len(res.Customers) > limit {
				rt.Fatalf("page %d returned %d items, limit %d", page, len(res.Customers), limit)
			}
			for _, c := range res.Customers {
				rebuilt = append(rebuilt, c.ID)
			}
			if page >= res.TotalPages {
				break
			}
		}

		if len(rebuilt) != len(full.Customers) {
			rt.Fatalf("reconstructed %d items, want %d", len(rebuilt), len(full.Customers))
		}
		for i, c := range full.Customers {
			if rebuilt[i] != c.ID {
				rt.Fatalf("position %d: got id %s, want %s", i, rebuilt[i], c.ID)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// SearchCustomers
// ---------------------------------------------------------------------------

func TestSearchCustomers(t *testing.T) {
	svc := newTestService()
	mustCreate(t, svc, ports.CreateCustomerInput{Name: "Jane Doe", Company: "Acme", Email: "jane@acme.com"})
	mustCreate(t, svc, ports.CreateCustomerInput{Name: "Bob", Company: "Globex", Email: "bob@globex.com"})

	res, err := svc.SearchCustomers(context.Background(), "ACME", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Results) != 1 || res.Results[0].Name != "Jane Doe" {
		t.Errorf("search by company: got %+v", res.Results)
	}
	if res.TotalFound != 1 {
		t.Errorf("totalFound: want 1, got %d", res.TotalFound)
	}
}

func TestSearchCustomers_EmptyTermReturnsNothing(t *testing.T) {
	svc := newTestService()
	seedEight(t, svc)

	for _, term := range []string{"", "   "} {
		res, err := svc.SearchCustomers(context.Background(), term, 10)
		if err != nil {
			t.Fatalf("term %q: %v", term, err)
		}
		if len(res.Results) != 0 {
			t.Errorf("term %q: want empty result, got %d customers", term, len(res.Results))
		}
	}
}

func TestSearchCustomers_LimitTruncates(t *testing.T) {
	svc := newTestService()
	seedEight(t, svc) // all named "Customer N"

	res, err := svc.SearchCustomers(context.Background(), "customer", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Results) != 3 {
		t.Errorf("limit: want 3 results, got %d", len(res.Results))
	}
	if res.TotalFound != 8 {
		t.Errorf("totalFound must count pre-limit matches: want 8, got %d", res.TotalFound)
	}
}

// ---------------------------------------------------------------------------
// Range / tier queries
// ---------------------------------------------------------------------------

func TestCustomersByHealthScoreRange(t *testing.T) {
	svc := newTestService()
	mustCreate(t, svc, minimalInput("Low", "A"))                                     // 55
	mustCreate(t, svc, ports.CreateCustomerInput{Name: "High", Company: "B",
		SubscriptionTier: "enterprise", Email: "high@b.com", Domains: []string{"b.com"}}) // 95

	got, err := svc.CustomersByHealthScoreRange(context.Background(), 55, 60)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Low" {
		t.Errorf("inclusive range [55,60]: got %+v", got)
	}

	if _, err := svc.CustomersByHealthScoreRange(context.Background(), 80, 20); !isValidationError(err) {
		t.Errorf("min>max must fail validation, got %v", err)
	}
	if _, err := svc.CustomersByHealthScoreRange(context.Background(), -1, 50); !isValidationError(err) {
		t.Errorf("negative min must fail validation, got %v", err)
	}
	if _, err := svc.CustomersByHealthScoreRange(context.Background(), 0, 101); !isValidationError(err) {
		t.Errorf("max>100 must fail validation, got %v", err)
	}
}

func TestCustomersByTier(t *testing.T) {
	svc := newTestService()
	mustCreate(t, svc, ports.CreateCustomerInput{Name: "A", Company: "One", SubscriptionTier: "premium"})
	mustCreate(t, svc, ports.CreateCustomerInput{Name: "B", Company: "Two", SubscriptionTier: "basic"})

	got, err := svc.CustomersByTier(context.Background(), "premium")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "A" {
		t.Errorf("byTier: got %+v", got)
	}

	if _, err := svc.CustomersByTier(context.Background(), "platinum"); !isValidationError(err) {
		t.Errorf("unknown tier must fail validation, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Stats
// ---------------------------------------------------------------------------

func TestStats(t *testing.T) {
	svc := newTestService()
	mustCreate(t, svc, ports.CreateCustomerInput{Name: "A", Company: "One",
		SubscriptionTier: "enterprise", Email: "a@one.com", Domains: []string{"one.com"}}) // 95 healthy
	mustCreate(t, svc, ports.CreateCustomerInput{Name: "B", Company: "Two",
		SubscriptionTier: "basic"}) // 55 warning
	mustCreate(t, svc, ports.CreateCustomerInput{Name: "C", Company: "Three",
		SubscriptionTier: "premium", Email: "c@three.com"}) // 75 healthy

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if stats.Total != 3 {
		t.Errorf("total: want 3, got %d", stats.Total)
	}
	if sum := stats.ByTier.Basic + stats.ByTier.Premium + stats.ByTier.Enterprise; sum != stats.Total {
		t.Errorf("tier counts must sum to total: %d != %d", sum, stats.Total)
	}
	if sum := stats.HealthDistribution.Healthy + stats.HealthDistribution.Warning +
		stats.HealthDistribution.Critical; sum != stats.Total {
		t.Errorf("distribution must sum to total: %d != %d", sum, stats.Total)
	}
	// mean(95,55,75) = 75
	if stats.AverageHealthScore != 75 {
		t.Errorf("average: want 75, got %d", stats.AverageHealthScore)
	}
	if stats.HealthDistribution.Healthy != 2 || stats.HealthDistribution.Warning != 1 {
		t.Errorf("bands: %+v", stats.HealthDistribution)
	}
}

func TestStats_EmptyCollection(t *testing.T) {
	svc := newTestService()

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 0 || stats.AverageHealthScore != 0 {
		t.Errorf("empty stats: %+v", stats)
	}
}
