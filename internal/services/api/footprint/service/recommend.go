package service

import (
	"footprint/internal/services/api/footprint/domain"
)

// recommendFindings builds the ordered advisory list from merged findings.
// Blocks are appended conditionally in a fixed order: breaches, discovery,
// reputation flags, password exposure, then the minimal-footprint fallback
func recommendFindings(f domain.Findings) []string {
	var recs []string

	if len(f.Breaches) > 0 {
		recs = append(recs,
			"Change passwords for affected accounts immediately",
			"Enable two-factor authentication on all important accounts",
			"Monitor your credit reports regularly",
		)
		if f.Analytics != nil {
			if f.Analytics.RiskScore >= 8 {
				recs = append(recs, "This email carries an elevated breach risk rating - prioritize rotating any reused passwords")
			}
			if f.Analytics.PlaintextPasswords > 0 {
				recs = append(recs, "Some breached services stored your password in plaintext - never reuse it anywhere")
			}
		}
	}

	totalContacts := f.DiscoverCount + f.DomainCount
	if totalContacts > 0 {
		recs = append(recs,
			"Consider using a professional email for business communications only",
			"Review your email privacy settings",
			"Monitor for unauthorized use of your email on public platforms",
		)
	}

	if rep := f.Reputation; rep != nil {
		if rep.Suspicious {
			recs = append(recs, "Email appears suspicious on some checks — review public profiles linked to it")
		}
		if rep.Details.CredentialsLeaked {
			recs = append(recs, "Your email appears in leaked credentials — reset passwords and enable 2FA")
		}
		if rep.Details.Blacklisted {
			recs = append(recs, "Your email is blacklisted by some services — investigate recent activity")
		}
	}

	if f.Password.Checked && f.Password.IsPwned {
		switch {
		case f.Password.PwnCount > 100000:
			recs = append(recs, "This password appears in over 100,000 known breaches - stop using it immediately")
		case f.Password.PwnCount > 10000:
			recs = append(recs, "This password appears in tens of thousands of known breaches - change it everywhere")
		case f.Password.PwnCount > 1000:
			recs = append(recs, "This password appears in thousands of known breaches - change it soon")
		default:
			recs = append(recs, "This password has appeared in known breaches - consider changing it")
		}
		recs = append(recs, "Use a password manager to generate unique passwords")
	}

	suspicious := f.Reputation != nil && f.Reputation.Suspicious
	if len(f.Breaches) == 0 && totalContacts == 0 && !suspicious && !f.Password.IsPwned {
		recs = append(recs,
			"Your digital footprint appears minimal - maintain good privacy practices",
			"Use unique passwords for each account",
		)
	}

	return recs
}
