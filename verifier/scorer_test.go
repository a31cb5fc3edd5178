package verifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scored(localPart string, provider Provider, mutate func(*Result)) *Result {
	r := &Result{
		Email:     localPart + "@example.com",
		SMTPCheck: true,
		DNSCheck:  true,
	}
	if mutate != nil {
		mutate(r)
	}
	scoreHeuristic(r, localPart, provider)
	return r
}

func TestScoreGoogleWorkspaceHumanName(t *testing.T) {
	// 40 smtp + 20 dns + 20 provider + 10 name pattern = 90
	r := scored("jane.doe", ProviderGoogleWorkspace, nil)
	assert.Equal(t, 90, r.ConfidenceScore)
	assert.Equal(t, StatusValid, r.Status)
	assert.Equal(t, RiskLow, r.RiskLevel)
}

func TestScoreCorporateSingleWord(t *testing.T) {
	// 40 + 20 + 15 + 10 = 85
	r := scored("jane", ProviderCorporate, nil)
	assert.Equal(t, 85, r.ConfidenceScore)
	assert.Equal(t, StatusValid, r.Status)
	assert.Equal(t, RiskLow, r.RiskLevel)
}

func TestScoreRoleAccountPenalty(t *testing.T) {
	// 40 + 20 + 20 - 10 role + 10 word = 80
	withRole := scored("billing", ProviderGoogleWorkspace, func(r *Result) { r.IsRoleAccount = true })
	without := scored("billing", ProviderGoogleWorkspace, nil)
	assert.Equal(t, without.ConfidenceScore-10, withRole.ConfidenceScore)
}

func TestScoreShortLocalPart(t *testing.T) {
	// 40 + 20 + 20 - 10 short + 10 word = 80
	r := scored("jd", ProviderGoogleWorkspace, nil)
	assert.Equal(t, 80, r.ConfidenceScore)
}

func TestScoreRandomTokenPenalty(t *testing.T) {
	// 40 + 20 + 20 - 15 token = 65, likely valid
	r := scored("x7f3k9a2m5q8r1t4w6y0", ProviderGoogleWorkspace, nil)
	assert.Equal(t, 65, r.ConfidenceScore)
	assert.Equal(t, StatusValid, r.Status)
	assert.Equal(t, RiskMedium, r.RiskLevel)
	assert.Equal(t, "Likely valid", r.Reason)
}

func TestScoreFreeProviderPenalty(t *testing.T) {
	// 40 + 20 + 0 provider + 10 name - 5 free = 65
	r := scored("jane.doe", ProviderConsumer, func(r *Result) { r.IsFreeEmail = true })
	assert.Equal(t, 65, r.ConfidenceScore)
	assert.Equal(t, RiskMedium, r.RiskLevel)
}

func TestScoreInconclusiveBelowFifty(t *testing.T) {
	// 40 smtp only + 10 word = 50... drop dns to force low: 40 + 10 = 50 is
	// still "likely valid"; use a random token without dns: 40 - 15 = 25.
	r := scored("x7f3k9a2m5q8r1t4w6y0", ProviderConsumer, func(r *Result) { r.DNSCheck = false })
	assert.Equal(t, 25, r.ConfidenceScore)
	assert.Equal(t, StatusUnknown, r.Status)
	assert.Equal(t, RiskMedium, r.RiskLevel)
}

func TestScoreNeverNegative(t *testing.T) {
	r := scored("x7", ProviderConsumer, func(r *Result) {
		r.SMTPCheck = false
		r.DNSCheck = false
		r.IsRoleAccount = true
		r.IsFreeEmail = true
	})
	assert.Equal(t, 0, r.ConfidenceScore)
	assert.Equal(t, StatusUnknown, r.Status)
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, clampScore(-20))
	assert.Equal(t, 100, clampScore(130))
	assert.Equal(t, 42, clampScore(42))
}
