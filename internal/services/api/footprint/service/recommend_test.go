package service

import (
	"strings"
	"testing"

	"footprint/internal/services/api/footprint/domain"
)

func TestRecommend_MinimalFootprint(t *testing.T) {
	t.Parallel()

	got := recommendFindings(domain.Findings{})
	want := []string{
		"Your digital footprint appears minimal - maintain good privacy practices",
		"Use unique passwords for each account",
	}
	if len(got) != len(want) {
		t.Fatalf("minimal footprint => %d recs, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rec[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRecommend_BlockOrdering(t *testing.T) {
	t.Parallel()

	f := domain.Findings{
		Breaches:      breaches(2),
		DiscoverCount: 1,
		Reputation:    &domain.Reputation{Suspicious: true},
		Password:      domain.PasswordCheck{Checked: true, IsPwned: true, PwnCount: 50},
	}
	got := recommendFindings(f)

	idx := func(substr string) int {
		for i, r := range got {
			if strings.Contains(r, substr) {
				return i
			}
		}
		t.Fatalf("no recommendation containing %q in %v", substr, got)
		return -1
	}

	breachAt := idx("Change passwords for affected accounts")
	discoverAt := idx("professional email for business")
	repAt := idx("appears suspicious")
	pwAt := idx("password manager")

	if !(breachAt < discoverAt && discoverAt < repAt && repAt < pwAt) {
		t.Fatalf("blocks out of order: breach=%d discover=%d rep=%d pw=%d", breachAt, discoverAt, repAt, pwAt)
	}

	// fallback must not appear once anything was found
	for _, r := range got {
		if strings.Contains(r, "appears minimal") {
			t.Fatalf("fallback leaked into non-empty findings: %v", got)
		}
	}
}

func TestRecommend_BreachBlock(t *testing.T) {
	t.Parallel()

	got := recommendFindings(domain.Findings{Breaches: breaches(1)})
	want := []string{
		"Change passwords for affected accounts immediately",
		"Enable two-factor authentication on all important accounts",
		"Monitor your credit reports regularly",
	}
	if len(got) != 3 {
		t.Fatalf("breach-only findings => %d recs, want 3: %v", len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rec[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRecommend_AnalyticsAddenda(t *testing.T) {
	t.Parallel()

	f := domain.Findings{
		Breaches:  breaches(1),
		Analytics: &domain.RiskAnalytics{RiskScore: 9, PlaintextPasswords: 2},
	}
	got := recommendFindings(f)

	var risky, plaintext bool
	for _, r := range got {
		if strings.Contains(r, "elevated breach risk rating") {
			risky = true
		}
		if strings.Contains(r, "stored your password in plaintext") {
			plaintext = true
		}
	}
	if !risky || !plaintext {
		t.Fatalf("analytics addenda missing (risky=%v plaintext=%v): %v", risky, plaintext, got)
	}

	// analytics without breaches adds nothing
	got = recommendFindings(domain.Findings{Analytics: &domain.RiskAnalytics{RiskScore: 9}})
	for _, r := range got {
		if strings.Contains(r, "elevated breach risk") {
			t.Fatalf("analytics addendum without breaches: %v", got)
		}
	}
}

func TestRecommend_PasswordTierPhrasing(t *testing.T) {
	t.Parallel()

	cases := []struct {
		count int
		want  string
	}{
		{200000, "over 100,000 known breaches"},
		{20000, "tens of thousands of known breaches"},
		{2000, "thousands of known breaches"},
		{5, "has appeared in known breaches"},
	}
	for _, tc := range cases {
		f := domain.Findings{Password: domain.PasswordCheck{Checked: true, IsPwned: true, PwnCount: tc.count}}
		got := recommendFindings(f)

		var hit bool
		for _, r := range got {
			if strings.Contains(r, tc.want) {
				hit = true
			}
		}
		if !hit {
			t.Fatalf("pwn count %d: no rec containing %q in %v", tc.count, tc.want, got)
		}
		if got[len(got)-1] != "Use a password manager to generate unique passwords" {
			t.Fatalf("pwn count %d: last rec = %q", tc.count, got[len(got)-1])
		}
	}

	// a clean checked password gets the fallback, not password advice
	f := domain.Findings{Password: domain.PasswordCheck{Checked: true, IsPwned: false}}
	got := recommendFindings(f)
	for _, r := range got {
		if strings.Contains(r, "password manager") {
			t.Fatalf("clean password should not trigger password advice: %v", got)
		}
	}
}
