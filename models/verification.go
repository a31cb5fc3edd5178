package models

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"mailprobe/verifier"
)

// EmailVerification represents one verification job (single, bulk or CSV import).
type EmailVerification struct {
	gorm.Model
	ClientID uint `gorm:"not null;index" json:"client_id"`

	Name        string     `json:"name"`
	Status      string     `gorm:"default:'pending'" json:"status"` // pending, processing, completed, failed
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// Per-status counters
	ValidCount    int `gorm:"default:0" json:"valid_count"`
	InvalidCount  int `gorm:"default:0" json:"invalid_count"`
	CatchAllCount int `gorm:"default:0" json:"catch_all_count"`
	UnknownCount  int `gorm:"default:0" json:"unknown_count"`

	// Relations
	VerificationRecords []VerificationRecord `gorm:"foreignKey:VerificationID" json:"results"`
}

// VerificationRecord is the persisted audit row for one verified address,
// keyed by address and timestamp (gorm.Model.CreatedAt).
type VerificationRecord struct {
	gorm.Model
	VerificationID uint   `gorm:"not null;index" json:"verification_id"`
	Email          string `gorm:"not null;index" json:"email"`

	Status string `gorm:"not null" json:"status"` // valid, invalid, catch_all, unknown
	Reason string `json:"reason"`

	IsCatchAll    bool `gorm:"default:false" json:"is_catch_all"`
	IsDisposable  bool `gorm:"default:false" json:"is_disposable"`
	IsFreeEmail   bool `gorm:"default:false" json:"is_free_email"`
	IsRoleAccount bool `gorm:"default:false" json:"is_role_account"`

	MXRecords string `json:"mx_records"` // comma-joined hostnames, priority order
	SMTPCheck bool   `gorm:"default:false" json:"smtp_check"`
	DNSCheck  bool   `gorm:"default:false" json:"dns_check"`

	ConfidenceScore int    `gorm:"default:0" json:"confidence_score"`
	RiskLevel       string `gorm:"default:'unknown'" json:"risk_level"`
}

// NewVerificationRecord maps an engine result onto a persistable row.
func NewVerificationRecord(verificationID uint, r *verifier.Result) VerificationRecord {
	return VerificationRecord{
		VerificationID:  verificationID,
		Email:           r.Email,
		Status:          string(r.Status),
		Reason:          r.Reason,
		IsCatchAll:      r.IsCatchAll,
		IsDisposable:    r.IsDisposable,
		IsFreeEmail:     r.IsFreeEmail,
		IsRoleAccount:   r.IsRoleAccount,
		MXRecords:       strings.Join(r.MXRecords, ","),
		SMTPCheck:       r.SMTPCheck,
		DNSCheck:        r.DNSCheck,
		ConfidenceScore: r.ConfidenceScore,
		RiskLevel:       string(r.RiskLevel),
	}
}
