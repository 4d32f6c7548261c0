package service

import (
	"footprint/internal/services/api/footprint/domain"
)

// Scoring weights. Product-tuned constants kept compatible with the
// original assessment; the shape of the formula matters more than the
// individual values
const (
	breachPenaltyPer = 15
	breachPenaltyCap = 70

	discoverPenaltyPer = 5
	discoverPenaltyCap = 25

	domainPenaltyPer = 3
	domainPenaltyCap = 20

	suspiciousPenalty  = 20
	credentialsPenalty = 20
	maliciousPenalty   = 10
	blacklistedPenalty = 15

	riskHighPenalty   = 15 // directory risk score >= 8
	riskMediumPenalty = 10 // >= 5
	riskLowPenalty    = 5  // >= 3

	pwMassivePenalty = 30 // pwn count > 100000
	pwHeavyPenalty   = 25 // > 10000
	pwModestPenalty  = 20 // > 1000
	pwAnyPenalty     = 15
)

// scoreFindings maps merged findings to a privacy score in [0, 100].
// Deterministic: same findings always produce the same score
func scoreFindings(f domain.Findings) int {
	score := 100

	if n := len(f.Breaches); n > 0 {
		score -= clampDeduction(n*breachPenaltyPer, breachPenaltyCap)
	}

	// at most one risk tier, highest threshold met
	if f.Analytics != nil {
		switch {
		case f.Analytics.RiskScore >= 8:
			score -= riskHighPenalty
		case f.Analytics.RiskScore >= 5:
			score -= riskMediumPenalty
		case f.Analytics.RiskScore >= 3:
			score -= riskLowPenalty
		}
	}

	if f.DiscoverCount > 0 {
		score -= clampDeduction(f.DiscoverCount*discoverPenaltyPer, discoverPenaltyCap)
	}
	if f.DomainCount > 0 {
		score -= clampDeduction(f.DomainCount*domainPenaltyPer, domainPenaltyCap)
	}

	if rep := f.Reputation; rep != nil {
		if rep.Suspicious {
			score -= suspiciousPenalty
		}
		if rep.Details.CredentialsLeaked {
			score -= credentialsPenalty
		}
		if rep.Details.MaliciousActivity {
			score -= maliciousPenalty
		}
		if rep.Details.Blacklisted {
			score -= blacklistedPenalty
		}
	}

	if f.Password.Checked && f.Password.IsPwned {
		switch {
		case f.Password.PwnCount > 100000:
			score -= pwMassivePenalty
		case f.Password.PwnCount > 10000:
			score -= pwHeavyPenalty
		case f.Password.PwnCount > 1000:
			score -= pwModestPenalty
		default:
			score -= pwAnyPenalty
		}
	}

	if score < 0 {
		score = 0
	}
	return score
}

func clampDeduction(n, limit int) int {
	if n > limit {
		return limit
	}
	return n
}
