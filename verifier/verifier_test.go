package verifier

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	records []MXRecord
	err     error
	calls   int
}

func (r *fakeResolver) LookupMX(_ context.Context, _ string) ([]MXRecord, error) {
	r.calls++
	return r.records, r.err
}

// fakeProber answers the real address per `real` and synthetic addresses per
// `synthetic`, recording every probed address.
type fakeProber struct {
	real      ProbeOutcome
	synthetic []ProbeOutcome
	probed    []string
}

func (p *fakeProber) Probe(_, address string) ProbeOutcome {
	p.probed = append(p.probed, address)
	if len(p.probed) == 1 {
		return p.real
	}
	out := p.synthetic[0]
	if len(p.synthetic) > 1 {
		p.synthetic = p.synthetic[1:]
	}
	return out
}

func accepted() ProbeOutcome {
	return ProbeOutcome{Connected: true, Accepted: true, Reason: "Email accepted", Code: 250}
}

func rejected() ProbeOutcome {
	return ProbeOutcome{Connected: true, Accepted: false, Reason: "User does not exist", Code: 550}
}

func newTestVerifier(resolver MXResolver, prober Prober) *Verifier {
	return &Verifier{
		Lists:        DefaultLists(),
		Resolver:     resolver,
		Prober:       prober,
		SkipCatchAll: DefaultSkipPolicy,
		ProbeGap:     time.Millisecond,
		Logger:       logrus.New(),
		sleep:        func(time.Duration) {},
	}
}

func consumerMX() []MXRecord {
	return []MXRecord{{Priority: 1, Host: "mta5.am0.yahoodns.net"}}
}

func zohoMX() []MXRecord {
	return []MXRecord{{Priority: 10, Host: "mx.zoho.com"}, {Priority: 20, Host: "mx2.zoho.com"}}
}

func googleMX() []MXRecord {
	return []MXRecord{{Priority: 1, Host: "aspmx.l.google.com"}}
}

func TestVerifyMalformedAddressSkipsNetwork(t *testing.T) {
	resolver := &fakeResolver{}
	prober := &fakeProber{}
	v := newTestVerifier(resolver, prober)

	for _, email := range []string{"", "plainaddress", "missing@tld", "@nodomain.com", "two@@at.com"} {
		result := v.Verify(email, Options{})
		assert.Equal(t, StatusInvalid, result.Status, email)
		assert.Equal(t, 0, result.ConfidenceScore, email)
		assert.Equal(t, RiskHigh, result.RiskLevel, email)
	}
	assert.Zero(t, resolver.calls)
	assert.Empty(t, prober.probed)
}

func TestVerifyDisposableDomain(t *testing.T) {
	resolver := &fakeResolver{records: consumerMX()}
	prober := &fakeProber{real: accepted()}
	v := newTestVerifier(resolver, prober)

	result := v.Verify("someone@mailinator.com", Options{})

	assert.Equal(t, StatusInvalid, result.Status)
	assert.True(t, result.IsDisposable)
	assert.Equal(t, 0, result.ConfidenceScore)
	assert.Equal(t, RiskHigh, result.RiskLevel)
	assert.Zero(t, resolver.calls, "disposable check must not reach DNS")
}

func TestVerifyNoMXRecords(t *testing.T) {
	v := newTestVerifier(&fakeResolver{err: errors.New("no such host")}, &fakeProber{})

	result := v.Verify("alice@no-mail-here.example", Options{})

	assert.Equal(t, StatusInvalid, result.Status)
	assert.Equal(t, "No MX records found", result.Reason)
	assert.False(t, result.DNSCheck)
	assert.Equal(t, 0, result.ConfidenceScore)
	assert.Equal(t, RiskHigh, result.RiskLevel)
}

func TestVerifyProbeCannotConnect(t *testing.T) {
	prober := &fakeProber{real: ProbeOutcome{Connected: false, Reason: "Connection timeout"}}
	v := newTestVerifier(&fakeResolver{records: zohoMX()}, prober)

	result := v.Verify("alice@example.com", Options{})

	assert.Equal(t, StatusUnknown, result.Status)
	assert.Equal(t, "Connection timeout", result.Reason)
	assert.Equal(t, 50, result.ConfidenceScore)
	assert.Equal(t, RiskMedium, result.RiskLevel)
	assert.False(t, result.SMTPCheck)
	assert.True(t, result.DNSCheck)
}

func TestVerifyRecipientRejected(t *testing.T) {
	prober := &fakeProber{real: rejected()}
	v := newTestVerifier(&fakeResolver{records: zohoMX()}, prober)

	result := v.Verify("ghost@example.com", Options{})

	assert.Equal(t, StatusInvalid, result.Status)
	assert.Contains(t, result.Reason, "does not exist")
	assert.Equal(t, 10, result.ConfidenceScore)
	assert.Equal(t, RiskHigh, result.RiskLevel)
	assert.True(t, result.SMTPCheck)
}

func TestVerifyCatchAllDomain(t *testing.T) {
	prober := &fakeProber{real: accepted(), synthetic: []ProbeOutcome{accepted()}}
	v := newTestVerifier(&fakeResolver{records: consumerMX()}, prober)

	result := v.Verify("anyone@acceptsall.example", Options{})

	assert.Equal(t, StatusCatchAll, result.Status)
	assert.True(t, result.IsCatchAll)
	assert.Equal(t, 60, result.ConfidenceScore)
	assert.Equal(t, RiskMedium, result.RiskLevel)

	// Real probe plus two synthetic probes at the same domain.
	require.Len(t, prober.probed, 3)
	for _, addr := range prober.probed[1:] {
		local, domain, ok := splitAddress(addr)
		require.True(t, ok)
		assert.Equal(t, "acceptsall.example", domain)
		assert.Len(t, local, 32)
	}
	assert.NotEqual(t, prober.probed[1], prober.probed[2])
}

func TestVerifySyntheticRejectedMeansValid(t *testing.T) {
	prober := &fakeProber{real: accepted(), synthetic: []ProbeOutcome{rejected(), accepted()}}
	v := newTestVerifier(&fakeResolver{records: consumerMX()}, prober)

	result := v.Verify("alice@normal.example", Options{})

	assert.Equal(t, StatusValid, result.Status)
	assert.False(t, result.IsCatchAll)
	assert.Equal(t, 90, result.ConfidenceScore)
	assert.Equal(t, RiskLow, result.RiskLevel)
}

func TestVerifyProviderPolicyOverridesFlag(t *testing.T) {
	run := func(skip bool) (*Result, int) {
		prober := &fakeProber{real: accepted(), synthetic: []ProbeOutcome{accepted()}}
		v := newTestVerifier(&fakeResolver{records: googleMX()}, prober)
		return v.Verify("alice.smith@corp.example", Options{SkipCatchAll: skip}), len(prober.probed)
	}

	withFlag, probesWithFlag := run(true)
	withoutFlag, probesWithoutFlag := run(false)

	// google_workspace always skips synthetic probing, flag or not.
	assert.Equal(t, 1, probesWithFlag)
	assert.Equal(t, 1, probesWithoutFlag)
	assert.Equal(t, withFlag, withoutFlag)
	assert.Equal(t, StatusValid, withFlag.Status)
}

func TestVerifyDeterministicGivenFixedResponses(t *testing.T) {
	build := func() *Verifier {
		return newTestVerifier(
			&fakeResolver{records: zohoMX()},
			&fakeProber{real: accepted(), synthetic: []ProbeOutcome{rejected()}},
		)
	}

	first := build().Verify("alice@example.com", Options{})
	second := build().Verify("alice@example.com", Options{})

	assert.Equal(t, first, second)
}

func TestVerifyCatchAllTrueOnlyWithCatchAllStatus(t *testing.T) {
	cases := []struct {
		prober *fakeProber
	}{
		{&fakeProber{real: accepted(), synthetic: []ProbeOutcome{accepted()}}},
		{&fakeProber{real: accepted(), synthetic: []ProbeOutcome{rejected()}}},
		{&fakeProber{real: rejected()}},
	}

	for _, tc := range cases {
		v := newTestVerifier(&fakeResolver{records: consumerMX()}, tc.prober)
		result := v.Verify("alice@example.com", Options{})
		assert.Equal(t, result.Status == StatusCatchAll, result.IsCatchAll)
	}
}

type panickyResolver struct{}

func (panickyResolver) LookupMX(context.Context, string) ([]MXRecord, error) {
	panic("resolver blew up")
}

func TestVerifyFoldsInternalFault(t *testing.T) {
	v := newTestVerifier(panickyResolver{}, &fakeProber{})

	result := v.Verify("alice@example.com", Options{})

	assert.Equal(t, StatusUnknown, result.Status)
	assert.Equal(t, 50, result.ConfidenceScore)
	assert.Equal(t, RiskMedium, result.RiskLevel)
	assert.Contains(t, result.Reason, "resolver blew up")
}

func TestVerifyScoreAlwaysBounded(t *testing.T) {
	probers := []*fakeProber{
		{real: accepted(), synthetic: []ProbeOutcome{accepted()}},
		{real: accepted(), synthetic: []ProbeOutcome{rejected()}},
		{real: rejected()},
		{real: ProbeOutcome{Connected: false, Reason: "Connection timeout"}},
	}
	emails := []string{
		"alice@example.com",
		"a@example.com",
		"info@gmail.com",
		strings.Repeat("x", 25) + "@example.com",
	}

	for _, p := range probers {
		for _, email := range emails {
			v := newTestVerifier(&fakeResolver{records: googleMX()}, &fakeProber{real: p.real, synthetic: p.synthetic})
			result := v.Verify(email, Options{})
			assert.GreaterOrEqual(t, result.ConfidenceScore, 0)
			assert.LessOrEqual(t, result.ConfidenceScore, 100)
			if result.RiskLevel == RiskHigh {
				assert.LessOrEqual(t, result.ConfidenceScore, 10)
			}
		}
	}
}
