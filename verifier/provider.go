package verifier

import "strings"

// FingerprintProvider classifies a domain's mail infrastructure from its MX
// hostnames. Pure substring matching, case-insensitive; corporate is the safe
// default for unrecognized single-tenant infrastructure.
func FingerprintProvider(mxHosts []string) Provider {
	hosts := strings.ToLower(strings.Join(mxHosts, " "))

	switch {
	case strings.Contains(hosts, "google") || strings.Contains(hosts, "googlemail"):
		return ProviderGoogleWorkspace
	case strings.Contains(hosts, "outlook") || strings.Contains(hosts, "microsoft") || strings.Contains(hosts, "office365"):
		return ProviderMicrosoft365
	case strings.Contains(hosts, "zoho"):
		return ProviderZoho
	case strings.Contains(hosts, "protonmail"):
		return ProviderProtonMail
	case strings.Contains(hosts, "gmail") || strings.Contains(hosts, "yahoo") || strings.Contains(hosts, "hotmail"):
		return ProviderConsumer
	default:
		return ProviderCorporate
	}
}
