package memory

import (
	"strconv"
	"time"

	"github.com/insighthq/customer-intelligence/internal/core/domain"
)

// SeedCustomers returns the demo dataset loaded at startup when seeding is
// enabled. Health scores are derived with the same formula the service uses
// at create time (zero account age), so seeded and created records are
// indistinguishable.
func SeedCustomers() []domain.Customer {
	now := time.Now().UTC()

	rows := []struct {
		name    string
		company string
		email   string
		tier    domain.SubscriptionTier
		domains []string
		ageDays int
	}{
		{"Sarah Chen", "Acme Rockets", "sarah.chen@acmerockets.com", domain.TierEnterprise,
			[]string{"acmerockets.com", "acme-labs.io", "rockets.dev"}, 120},
		{"Miguel Alvarez", "Globex Corporation", "miguel@globex.com", domain.TierPremium,
			[]string{"globex.com"}, 95},
		{"Priya Nair", "Initech Solutions", "priya.nair@initech.io", domain.TierBasic,
			nil, 80},
		{"Tom Okafor", "Umbrella Research", "", domain.TierEnterprise,
			[]string{"umbrella-research.org", "umbrella.dev"}, 60},
		{"Lena Fischer", "Hooli GmbH", "lena@hooli.de", domain.TierPremium,
			[]string{"hooli.de", "hooli.com", "hooli-cloud.io", "hooli.xyz"}, 45},
		{"Dave Park", "Stark Manufacturing", "", domain.TierBasic,
			nil, 30},
		{"Amira Haddad", "Wayne Logistics", "", domain.TierPremium,
			nil, 14},
		{"Jonas Berg", "Pied Piper AS", "jonas@piedpiper.no", domain.TierBasic,
			[]string{"piedpiper.no", "piedpiper.com"}, 3},
	}

	customers := make([]domain.Customer, 0, len(rows))
	for i, s := range rows {
		createdAt := now.AddDate(0, 0, -s.ageDays)
		domains := s.domains
		if domains == nil {
			domains = []string{}
		}
		customers = append(customers, domain.Customer{
			ID:               strconv.Itoa(i + 1),
			Name:             s.name,
			Company:          s.company,
			Email:            s.email,
			SubscriptionTier: s.tier,
			Domains:          domains,
			HealthScore:      domain.HealthScore(s.tier, len(domains), s.email != "", 0),
			CreatedAt:        createdAt,
			UpdatedAt:        createdAt,
		})
	}
	return customers
}
