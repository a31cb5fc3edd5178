package verifier

// Status is the final classification of a verified address.
type Status string

const (
	StatusValid    Status = "valid"
	StatusInvalid  Status = "invalid"
	StatusCatchAll Status = "catch_all"
	StatusUnknown  Status = "unknown"
)

// RiskLevel is a qualitative tier derived from the confidence score.
type RiskLevel string

const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskUnknown RiskLevel = "unknown"
)

// Provider classifies a domain's mail infrastructure from its MX hostnames.
type Provider string

const (
	ProviderGoogleWorkspace Provider = "google_workspace"
	ProviderMicrosoft365    Provider = "microsoft365"
	ProviderZoho            Provider = "zoho"
	ProviderProtonMail      Provider = "protonmail"
	ProviderConsumer        Provider = "consumer"
	ProviderCorporate       Provider = "corporate"
)

// Options control a single verification call.
type Options struct {
	// Debug enables step-by-step logging of the verification.
	Debug bool
	// SkipCatchAll forces the catch-all discriminator to be skipped even
	// when the provider policy would allow it.
	SkipCatchAll bool
}

// ProbeOutcome is the result of one SMTP dialogue against one address.
// It lives only within a single verification and is never persisted.
type ProbeOutcome struct {
	// Connected is true when the dialogue reached the RCPT TO stage.
	Connected bool
	// Accepted is true when the server accepted the recipient.
	Accepted bool
	// Reason is a human-readable cause for the outcome.
	Reason string
	// Code is the last 3-digit SMTP reply code observed, 0 if none.
	Code int
}

// Result is the engine's sole output, constructed fresh per call.
type Result struct {
	Email           string    `json:"email"`
	Status          Status    `json:"status"`
	Reason          string    `json:"reason"`
	IsCatchAll      bool      `json:"is_catch_all"`
	IsDisposable    bool      `json:"is_disposable"`
	IsFreeEmail     bool      `json:"is_free_email"`
	IsRoleAccount   bool      `json:"is_role_account"`
	MXRecords       []string  `json:"mx_records"`
	SMTPCheck       bool      `json:"smtp_check"`
	DNSCheck        bool      `json:"dns_check"`
	ConfidenceScore int       `json:"confidence_score"`
	RiskLevel       RiskLevel `json:"risk_level"`
}
