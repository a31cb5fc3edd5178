// Package verifier implements the deliverability verification engine: given
// a single address it determines, with bounded confidence, whether a mailbox
// exists at the target domain, without ever delivering a message.
//
// The engine is stateless across calls; one verification is a pure function
// of (address, options, live network responses) to a Result.
package verifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"github.com/sirupsen/logrus"
)

// Verifier drives one verification at a time: filters, MX resolution,
// provider fingerprint, SMTP probe, catch-all discrimination and scoring.
// Callers wanting parallelism run independent verifications concurrently.
type Verifier struct {
	Lists        *Lists
	Resolver     MXResolver
	Prober       Prober
	SkipCatchAll SkipPolicy
	// ProbeGap paces the two synthetic catch-all probes. Defaults to 1s.
	ProbeGap time.Duration
	Logger   *logrus.Logger

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

// NewVerifier returns an engine probing from the given HELO hostname and
// MAIL FROM sender, with default lists, resolver and policy.
func NewVerifier(helloName, fromEmail string) *Verifier {
	logger := logrus.New()
	prober := NewSMTPProber(helloName, fromEmail)
	prober.Logger = logger
	return &Verifier{
		Lists:        DefaultLists(),
		Resolver:     NewDNSResolver(5 * time.Second),
		Prober:       prober,
		SkipCatchAll: DefaultSkipPolicy,
		ProbeGap:     defaultProbeGap,
		Logger:       logger,
		sleep:        time.Sleep,
	}
}

// Verify classifies a single address. It never returns an error: every
// failure mode, including an unexpected internal fault, is folded into a
// fully-populated Result.
func (v *Verifier) Verify(email string, opts Options) (result *Result) {
	email = strings.ToLower(strings.TrimSpace(email))
	result = &Result{
		Email:     email,
		Status:    StatusUnknown,
		RiskLevel: RiskUnknown,
	}

	defer func() {
		if r := recover(); r != nil {
			result.Status = StatusUnknown
			result.Reason = fmt.Sprintf("internal fault: %v", r)
			result.ConfidenceScore = 50
			result.RiskLevel = RiskMedium
		}
	}()

	if opts.Debug && v.Logger != nil {
		v.Logger.SetLevel(logrus.DebugLevel)
	}

	// Lexical shape check, then the policy tables. None of this touches
	// the network.
	if !validFormat(email) || checkmail.ValidateFormat(email) != nil {
		result.Status = StatusInvalid
		result.Reason = "Invalid email format"
		result.RiskLevel = RiskHigh
		return result
	}

	localPart, domain, ok := splitAddress(email)
	if !ok {
		result.Status = StatusInvalid
		result.Reason = "Invalid email format"
		result.RiskLevel = RiskHigh
		return result
	}

	if v.Lists.IsDisposable(domain) {
		result.Status = StatusInvalid
		result.Reason = "Disposable email domain"
		result.IsDisposable = true
		result.RiskLevel = RiskHigh
		return result
	}

	result.IsFreeEmail = v.Lists.IsFreeProvider(domain)
	result.IsRoleAccount = v.Lists.IsRoleAccount(localPart)

	records, err := v.Resolver.LookupMX(context.Background(), domain)
	if err != nil || len(records) == 0 {
		result.Status = StatusInvalid
		result.Reason = "No MX records found"
		result.RiskLevel = RiskHigh
		return result
	}
	result.DNSCheck = true
	result.MXRecords = mxHostnames(records)

	provider := FingerprintProvider(result.MXRecords)
	v.debugf(opts, "resolved %d MX records for %s, provider %s", len(records), domain, provider)

	// Only the top-priority exchanger is probed; secondary exchangers are
	// not tried.
	mxHost := records[0].Host
	outcome := v.Prober.Probe(mxHost, email)
	result.SMTPCheck = outcome.Connected

	if !outcome.Connected {
		// The server might be temporarily unreachable, not nonexistent;
		// ambiguity is surfaced as unknown, not invalid.
		result.Status = StatusUnknown
		result.Reason = outcome.Reason
		result.ConfidenceScore = 50
		result.RiskLevel = RiskMedium
		return result
	}

	if !outcome.Accepted {
		result.Status = StatusInvalid
		result.Reason = outcome.Reason
		result.ConfidenceScore = 10
		result.RiskLevel = RiskHigh
		return result
	}

	// The remote accepted the real recipient. Decide whether that can be
	// trusted or whether the domain accepts everything.
	if opts.SkipCatchAll || v.SkipCatchAll(provider) {
		v.debugf(opts, "catch-all check skipped for %s (provider %s)", domain, provider)
		scoreHeuristic(result, localPart, provider)
		return result
	}

	if v.checkCatchAll(mxHost, domain) {
		result.Status = StatusCatchAll
		result.Reason = "Domain accepts any recipient"
		result.IsCatchAll = true
		result.ConfidenceScore = 60
		result.RiskLevel = RiskMedium
		return result
	}

	result.Status = StatusValid
	result.Reason = "Email accepted"
	result.ConfidenceScore = 90
	result.RiskLevel = RiskLow
	return result
}

func (v *Verifier) debugf(opts Options, format string, args ...interface{}) {
	if opts.Debug && v.Logger != nil {
		v.Logger.Debugf(format, args...)
	}
}
