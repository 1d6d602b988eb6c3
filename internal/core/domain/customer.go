package domain

import (
	"time"
)

// SubscriptionTier is the customer's subscription level.
type SubscriptionTier string

const (
	TierBasic      SubscriptionTier = "basic"
	TierPremium    SubscriptionTier = "premium"
	TierEnterprise SubscriptionTier = "enterprise"
)

// IsValid reports whether t is one of the known tiers.
func (t SubscriptionTier) IsValid() bool {
	switch t {
	case TierBasic, TierPremium, TierEnterprise:
		return true
	}
	return false
}

// Customer is the core aggregate root.
//
// The id is a monotonic counter rendered as a string and is never reused
// after deletion. Email, when present, is stored lowercased and is unique
// across the collection (case-insensitive). HealthScore is derived (see
// health.go) and always within [0,100].
type Customer struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Company          string           `json:"company"`
	Email            string           `json:"email,omitempty"`
	SubscriptionTier SubscriptionTier `json:"subscriptionTier"`
	Domains          []string         `json:"domains"`
	HealthScore      int              `json:"healthScore"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// TierCounts holds per-tier customer counts.
type TierCounts struct {
	Basic      int `json:"basic"`
	Premium    int `json:"premium"`
	Enterprise int `json:"enterprise"`
}

// HealthDistribution buckets customers into engagement bands:
// healthy >= 71, warning 31..70, critical <= 30.
type HealthDistribution struct {
	Healthy  int `json:"healthy"`
	Warning  int `json:"warning"`
	Critical int `json:"critical"`
}

// CustomerStats is the aggregate view returned by the stats operation.
type CustomerStats struct {
	Total              int                `json:"total"`
	ByTier             TierCounts         `json:"byTier"`
	AverageHealthScore int                `json:"averageHealthScore"`
	HealthDistribution HealthDistribution `json:"healthDistribution"`
}
