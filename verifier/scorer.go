package verifier

import "regexp"

var (
	// 20+ lowercase alphanumerics with no separators reads like a
	// machine-generated token, not a person.
	randomTokenRegex = regexp.MustCompile(`^[a-z0-9]{20,}$`)
	// firstname.lastname or a single lowercase word.
	humanNameRegex = regexp.MustCompile(`^[a-z]+\.[a-z]+$|^[a-z]+$`)
)

// scoreHeuristic fills in the confidence score, status and risk tier for
// verifications that skipped the catch-all discriminator. It only ever
// grades between unknown and valid; a hard invalid can only originate from
// the filters, the resolver or the probe.
func scoreHeuristic(result *Result, localPart string, provider Provider) {
	score := 0

	if result.SMTPCheck {
		score += 40
	}
	if result.DNSCheck {
		score += 20
	}

	switch provider {
	case ProviderGoogleWorkspace, ProviderMicrosoft365:
		score += 20
	case ProviderCorporate:
		score += 15
	}

	if result.IsRoleAccount {
		score -= 10
	}
	if len(localPart) < 3 {
		score -= 10
	}
	if randomTokenRegex.MatchString(localPart) {
		score -= 15
	} else if humanNameRegex.MatchString(localPart) {
		score += 10
	}
	if result.IsFreeEmail {
		score -= 5
	}

	result.ConfidenceScore = clampScore(score)

	switch {
	case result.ConfidenceScore >= 75:
		result.Status = StatusValid
		result.RiskLevel = RiskLow
		result.Reason = "Email accepted"
	case result.ConfidenceScore >= 50:
		result.Status = StatusValid
		result.RiskLevel = RiskMedium
		result.Reason = "Likely valid"
	default:
		result.Status = StatusUnknown
		result.RiskLevel = RiskMedium
		result.Reason = "Inconclusive verification"
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
