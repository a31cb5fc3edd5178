package worker

import (
	"context"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"mailprobe/models"
	"mailprobe/verifier"
)

// ReverifyWorker retries recently inconclusive results. The engine itself
// never retries; addresses that came back unknown (greylisting, transient
// transport failures) are re-verified here after the remote has had time to
// settle.
type ReverifyWorker struct {
	DB       *gorm.DB
	Verifier *verifier.Verifier
	Logger   *log.Logger

	// Interval between scans.
	Interval time.Duration
	// MaxAge bounds how old an unknown result may be and still get retried.
	MaxAge time.Duration
	// BatchSize caps how many addresses one scan re-probes.
	BatchSize int
}

func NewReverifyWorker(db *gorm.DB, v *verifier.Verifier, logger *log.Logger, interval, maxAge time.Duration) *ReverifyWorker {
	return &ReverifyWorker{
		DB:        db,
		Verifier:  v,
		Logger:    logger,
		Interval:  interval,
		MaxAge:    maxAge,
		BatchSize: 50,
	}
}

func (rw *ReverifyWorker) Start(ctx context.Context) {
	// Initial delay to let the server start up
	time.Sleep(10 * time.Second)

	rw.Logger.Println("Reverify worker started")

	ticker := time.NewTicker(rw.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			rw.Logger.Println("Reverify worker shutting down...")
			return
		case <-ticker.C:
			rw.processUnknownResults()
		}
	}
}

func (rw *ReverifyWorker) processUnknownResults() {
	cutoff := time.Now().Add(-rw.MaxAge)

	var records []models.VerificationRecord
	err := rw.DB.
		Where("status = ? AND updated_at > ?", string(verifier.StatusUnknown), cutoff).
		Order("updated_at asc").
		Limit(rw.BatchSize).
		Find(&records).Error
	if err != nil {
		rw.Logger.Printf("Error fetching unknown results: %v", err)
		return
	}

	if len(records) == 0 {
		return
	}
	rw.Logger.Printf("Re-verifying %d inconclusive addresses", len(records))

	for _, record := range records {
		result := rw.Verifier.Verify(record.Email, verifier.Options{})

		updates := map[string]interface{}{
			"status":           string(result.Status),
			"reason":           result.Reason,
			"is_catch_all":     result.IsCatchAll,
			"mx_records":       strings.Join(result.MXRecords, ","),
			"smtp_check":       result.SMTPCheck,
			"dns_check":        result.DNSCheck,
			"confidence_score": result.ConfidenceScore,
			"risk_level":       string(result.RiskLevel),
		}
		if err := rw.DB.Model(&models.VerificationRecord{}).
			Where("id = ?", record.ID).
			Updates(updates).Error; err != nil {
			rw.Logger.Printf("Error updating record %d: %v", record.ID, err)
		}

		if result.Status != verifier.StatusUnknown {
			rw.Logger.Printf("Address %s settled to %s on retry", record.Email, result.Status)
		}
	}
}
