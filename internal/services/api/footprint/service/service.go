// Package service contains the footprint scan workflow: concurrent source
// fan-out, merge, scoring, and recommendations
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"footprint/internal/adapters/sources/emailrep"
	"footprint/internal/adapters/sources/hibp"
	"footprint/internal/adapters/sources/hunter"
	"footprint/internal/adapters/sources/pwnedpw"
	"footprint/internal/adapters/sources/xposed"
	"footprint/internal/modkit/repokit"
	perr "footprint/internal/platform/errors"
	"footprint/internal/platform/logger"
	"footprint/internal/services/api/footprint/domain"
	"footprint/internal/services/api/footprint/repo"
)

// Source contracts, one per adapter. An error means "source unavailable",
// which degrades that slice of the report instead of failing the scan

// BreachSource is the primary breach directory
type BreachSource interface {
	Fetch(ctx context.Context, email string) ([]hibp.Breach, error)
}

// SecondarySource is the secondary breach directory with risk analytics
type SecondarySource interface {
	Fetch(ctx context.Context, email string) (xposed.Result, error)
}

// DiscoverySource enumerates publicly associated contacts for the email's domain
type DiscoverySource interface {
	Fetch(ctx context.Context, email string) (hunter.Result, error)
}

// ReputationSource scores the address itself; nil result means no opinion
type ReputationSource interface {
	Fetch(ctx context.Context, email string) (*emailrep.Reputation, error)
}

// PasswordSource checks password exposure via k-anonymity
type PasswordSource interface {
	Check(ctx context.Context, password string) (pwnedpw.Result, error)
}

// Sources bundles all adapters consumed by the aggregator
type Sources struct {
	Breaches   BreachSource
	Secondary  SecondarySource
	Discovery  DiscoverySource
	Reputation ReputationSource
	Passwords  PasswordSource
}

// Service defines the footprint service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the footprint service
type Svc struct {
	src  Sources
	Repo repo.Repo
	log  logger.Logger
}

// New constructs a footprint service. db may be nil, in which case
// persistence and deletion are disabled
func New(src Sources, db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	s := &Svc{
		src: src,
		log: *logger.Named("footprint"),
	}
	if db != nil && binder != nil {
		s.Repo = binder.Bind(db)
	}
	return s
}

// settled holds one adapter's outcome after the fan-out completes
type settled[T any] struct {
	val T
	err error
}

// Check runs all sources concurrently, merges their findings, scores them,
// and assembles the report. A failed source contributes neutral data; only
// when every email source fails is the scan itself reported unavailable
func (s *Svc) Check(ctx context.Context, in domain.CheckInput) (*domain.Report, error) {
	s.log.Info().Str("email", in.Email).Msg("checking footprint")

	var (
		wg      sync.WaitGroup
		primary settled[[]hibp.Breach]
		second  settled[xposed.Result]
		disc    settled[hunter.Result]
		rep     settled[*emailrep.Reputation]
		pw      settled[pwnedpw.Result]
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		primary.val, primary.err = s.src.Breaches.Fetch(ctx, in.Email)
	}()
	go func() {
		defer wg.Done()
		second.val, second.err = s.src.Secondary.Fetch(ctx, in.Email)
	}()
	go func() {
		defer wg.Done()
		disc.val, disc.err = s.src.Discovery.Fetch(ctx, in.Email)
	}()
	go func() {
		defer wg.Done()
		rep.val, rep.err = s.src.Reputation.Fetch(ctx, in.Email)
	}()

	checkPassword := in.Password != "" && s.src.Passwords != nil
	if checkPassword {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pw.val, pw.err = s.src.Passwords.Check(ctx, in.Password)
		}()
	}

	wg.Wait()

	if primary.err != nil && second.err != nil && disc.err != nil && rep.err != nil {
		// keep every cause so the error details name each failing source
		causes := errors.Join(primary.err, second.err, disc.err, rep.err)
		return nil, perr.Wrap(causes, perr.ErrorCodeUnavailable, "External API temporarily unavailable")
	}
	s.logDegraded("hibp", primary.err)
	s.logDegraded("xposed", second.err)
	s.logDegraded("hunter", disc.err)
	s.logDegraded("emailrep", rep.err)

	findings, discovery := s.merge(in, primary, second, disc, rep, pw, checkPassword)

	report := &domain.Report{
		Email:           in.Email,
		Score:           scoreFindings(findings),
		BreachCount:     len(findings.Breaches),
		PlatformsFound:  findings.DiscoverCount + findings.DomainCount,
		Breaches:        findings.Breaches,
		HunterData:      discovery,
		EmailRep:        findings.Reputation,
		PasswordCheck:   findings.Password,
		Recommendations: recommendFindings(findings),
	}
	report.Summary = summarize(report)

	s.persist(ctx, in.UserID, report)

	return report, nil
}

// merge normalizes every settled source into domain shapes.
// Failed sources yield empty or nil slices, never errors
func (s *Svc) merge(
	in domain.CheckInput,
	primary settled[[]hibp.Breach],
	second settled[xposed.Result],
	disc settled[hunter.Result],
	rep settled[*emailrep.Reputation],
	pw settled[pwnedpw.Result],
	checkPassword bool,
) (domain.Findings, domain.Discovery) {
	breaches := make([]domain.Breach, 0, len(primary.val))
	if primary.err == nil {
		for _, b := range primary.val {
			dc := b.DataClasses
			if dc == nil {
				dc = []string{}
			}
			breaches = append(breaches, domain.Breach{
				Name:        b.Name,
				Domain:      b.Domain,
				BreachDate:  b.BreachDate,
				PwnCount:    b.PwnCount,
				Description: b.Description,
				DataClasses: dc,
				Source:      "hibp",
			})
		}
	}

	var analytics *domain.RiskAnalytics
	if second.err == nil {
		for _, name := range second.val.Breaches {
			breaches = append(breaches, domain.Breach{
				Name:        name,
				DataClasses: []string{},
				Source:      "xposed",
			})
		}
		if a := second.val.Analytics; a != nil {
			analytics = &domain.RiskAnalytics{
				RiskLabel:          a.RiskLabel,
				RiskScore:          a.RiskScore,
				PlaintextPasswords: a.PlaintextPasswords,
			}
		}
	}

	discovery := domain.Discovery{
		DiscoverEmails:     []domain.Contact{},
		DomainSearchEmails: []domain.Contact{},
	}
	if disc.err == nil {
		d := disc.val
		if d.Domain != "" {
			discovery.Domain = &d.Domain
		}
		if d.Confidence > 0 {
			discovery.Confidence = &d.Confidence
		}
		if d.Country != "" {
			discovery.Country = &d.Country
		}
		discovery.Disposable = d.Disposable
		discovery.Webmail = d.Webmail
		for _, c := range d.DiscoverEmails {
			discovery.DiscoverEmails = append(discovery.DiscoverEmails, domain.Contact{Value: c.Value, Confidence: c.Confidence})
		}
		for _, c := range d.DomainSearchEmails {
			discovery.DomainSearchEmails = append(discovery.DomainSearchEmails, domain.Contact{Value: c.Value, Confidence: c.Confidence})
		}
	}
	discovery.EmailsFound = len(discovery.DiscoverEmails) + len(discovery.DomainSearchEmails)

	var reputation *domain.Reputation
	if rep.err == nil && rep.val != nil {
		reputation = &domain.Reputation{
			Email:      rep.val.Email,
			Reputation: rep.val.Reputation,
			Suspicious: rep.val.Suspicious,
			References: rep.val.References,
			Details: domain.ReputationDetails{
				Blacklisted:       rep.val.Details.Blacklisted,
				MaliciousActivity: rep.val.Details.MaliciousActivity,
				CredentialsLeaked: rep.val.Details.CredentialsLeaked,
				DataBreach:        rep.val.Details.DataBreach,
			},
		}
	}

	password := domain.PasswordCheck{}
	if checkPassword {
		if pw.err != nil {
			s.logDegraded("pwnedpw", pw.err)
		} else {
			password = domain.PasswordCheck{
				Checked:  true,
				IsPwned:  pw.val.Pwned,
				PwnCount: pw.val.Count,
			}
		}
	}

	findings := domain.Findings{
		Breaches:      breaches,
		Analytics:     analytics,
		DiscoverCount: len(discovery.DiscoverEmails),
		DomainCount:   len(discovery.DomainSearchEmails),
		Reputation:    reputation,
		Password:      password,
	}
	return findings, discovery
}

// summarize renders the one-line human summary for the report
func summarize(r *domain.Report) string {
	s := fmt.Sprintf(
		"Found %d data breaches and %d public email exposures. Privacy score: %d/100.",
		r.BreachCount, r.PlatformsFound, r.Score,
	)
	if r.EmailRep != nil && r.EmailRep.Reputation != "" {
		s += " Reputation: " + r.EmailRep.Reputation
	}
	return s
}

// persist stores the summary row when a user id was supplied.
// Failures are logged and never surface to the caller
func (s *Svc) persist(ctx context.Context, userID string, r *domain.Report) {
	if userID == "" || s.Repo == nil {
		return
	}
	err := s.Repo.InsertResult(ctx, repo.ResultRow{
		UserID:         userID,
		Score:          r.Score,
		BreachCount:    r.BreachCount,
		PlatformsFound: strconv.Itoa(r.PlatformsFound),
		Summary:        r.Summary,
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("persist scan summary failed")
	}
}

// DeleteUserData removes all persisted summary rows for the user
func (s *Svc) DeleteUserData(ctx context.Context, userID string) (domain.DeleteResult, error) {
	if userID == "" {
		return domain.DeleteResult{}, perr.InvalidArgf("User ID is required")
	}
	if s.Repo == nil {
		return domain.DeleteResult{}, perr.Unavailablef("persistence is not configured")
	}
	n, err := s.Repo.DeleteByUser(ctx, userID)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	s.log.Info().Str("user_id", userID).Int64("rows", n).Msg("deleted user data")
	return domain.DeleteResult{
		Success: true,
		Message: "All user data deleted successfully",
	}, nil
}

func (s *Svc) logDegraded(source string, err error) {
	if err == nil {
		return
	}
	s.log.Warn().Err(err).Str("source", source).Msg("source unavailable, continuing with partial data")
}
