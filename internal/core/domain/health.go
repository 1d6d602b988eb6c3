package domain

import (
	"math"
	"time"
)

const (
	healthBase = 50

	domainBonusPerEntry = 5
	domainBonusCap      = 20

	emailBonus = 10

	ageBonusDivisorDays = 10
	ageBonusCap         = 15

	// Band boundaries used by HealthDistribution.
	healthyFloor    = 71
	criticalCeiling = 30
)

// tierBonus maps each subscription tier to its health score contribution.
var tierBonus = map[SubscriptionTier]float64{
	TierBasic:      5,
	TierPremium:    15,
	TierEnterprise: 30,
}

// HealthScore derives the engagement score for a customer:
//
//	50 base
//	+ tier bonus (enterprise 30, premium 15, basic 5, none 0)
//	+ min(5 * domainCount, 20)
//	+ 10 if an email is on file
//	+ min(daysSinceCreated / 10, 15)
//
// rounded and clamped to [0,100]. At creation the account age is zero, so
// the age bonus only ever contributes on later recomputes. Intermediate
// arithmetic is done on reals; only the final result is rounded.
func HealthScore(tier SubscriptionTier, domainCount int, hasEmail bool, accountAge time.Duration) int {
	score := float64(healthBase)
	score += tierBonus[tier]
	score += math.Min(float64(domainCount*domainBonusPerEntry), domainBonusCap)
	if hasEmail {
		score += emailBonus
	}
	days := accountAge.Hours() / 24
	if days > 0 {
		score += math.Min(days/ageBonusDivisorDays, ageBonusCap)
	}
	return clampScore(int(math.Round(score)))
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// HealthBand returns the distribution band a score falls into.
func HealthBand(score int) string {
	switch {
	case score >= healthyFloor:
		return "healthy"
	case score <= criticalCeiling:
		return "critical"
	default:
		return "warning"
	}
}
