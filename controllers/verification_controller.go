// controller/verification_controller.go
package controller

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/likexian/whois"
	"gorm.io/gorm"

	"mailprobe/models"
	"mailprobe/utils"
	"mailprobe/verifier"
)

type VerificationController struct {
	DB       *gorm.DB
	Logger   *log.Logger
	Verifier *verifier.Verifier
	// Workers is the bulk pool size.
	Workers int
}

func NewVerificationController(db *gorm.DB, v *verifier.Verifier, workers int, logger *log.Logger) *VerificationController {
	if workers <= 0 {
		workers = 10
	}
	return &VerificationController{
		DB:       db,
		Logger:   logger,
		Verifier: v,
		Workers:  workers,
	}
}

// singleVerifyResponse decorates the engine result with WHOIS data for the
// single-address endpoint.
type singleVerifyResponse struct {
	*verifier.Result
	WHOIS string `json:"whois,omitempty"`
}

// VerifyEmail handles single email verification
func (vc *VerificationController) VerifyEmail(c *fiber.Ctx) error {
	client := c.Locals("client").(*models.APIClient)
	email := c.Query("email")

	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email address is required",
		})
	}

	// Check if the client has enough verification credits
	if client.VerifyCredits < 1 {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error": "Insufficient verification credits",
		})
	}

	opts := verifier.Options{
		Debug:        c.QueryBool("debug"),
		SkipCatchAll: c.QueryBool("skip_catch_all"),
	}

	result := vc.Verifier.Verify(email, opts)

	// Deduct credit
	client.VerifyCredits -= 1
	if err := vc.DB.Save(client).Error; err != nil {
		vc.Logger.Printf("Failed to update client credits: %v", err)
	}

	// Persist the audit row; single verifications share one implicit job per client
	record := models.NewVerificationRecord(0, result)
	if err := vc.DB.Create(&record).Error; err != nil {
		vc.Logger.Printf("Failed to persist verification for %s: %v", result.Email, err)
	}

	response := singleVerifyResponse{Result: result}
	if domain := utils.ExtractDomain(result.Email); domain != "" {
		if whoisInfo, err := whois.Whois(domain); err == nil {
			response.WHOIS = whoisInfo
		}
	}

	return c.JSON(response)
}

// BulkVerify handles batch email verification
func (vc *VerificationController) BulkVerify(c *fiber.Ctx) error {
	client := c.Locals("client").(*models.APIClient)

	var request struct {
		Emails []string `json:"emails" validate:"required,min=1,max=10000"`
	}

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}
	if err := utils.ValidateStruct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return vc.startBulkJob(c, client, request.Emails, "Bulk verification "+time.Now().Format("2006-01-02"))
}

// ImportAndVerify accepts a contact CSV upload and verifies every address in it.
func (vc *VerificationController) ImportAndVerify(c *fiber.Ctx) error {
	client := c.Locals("client").(*models.APIClient)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "CSV file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}
	defer file.Close()

	emails, err := utils.ExtractEmailsFromCSV(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return vc.startBulkJob(c, client, emails, "CSV import "+fileHeader.Filename)
}

func (vc *VerificationController) startBulkJob(c *fiber.Ctx, client *models.APIClient, emails []string, name string) error {
	// Check credit balance
	if client.VerifyCredits < len(emails) {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error": "Insufficient verification credits",
		})
	}

	now := time.Now()
	verification := models.EmailVerification{
		ClientID:  client.ID,
		Name:      name,
		Status:    "processing",
		StartedAt: &now,
	}

	if err := vc.DB.Create(&verification).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create verification job",
		})
	}

	// Process in background
	go vc.processBulkVerification(verification.ID, emails, client.ID)

	return c.JSON(fiber.Map{
		"message":         "Verification started",
		"verification_id": verification.ID,
		"email_count":     len(emails),
	})
}

func (vc *VerificationController) processBulkVerification(verificationID uint, emails []string, clientID uint) {
	var (
		valid, invalid, catchAll, unknown int
		records                           []models.VerificationRecord
		mu                                sync.Mutex
		wg                                sync.WaitGroup
	)

	// Worker pool: each verification is independent and stateless, so the
	// pool is the only concurrency in play.
	emailChan := make(chan string, len(emails))
	resultChan := make(chan *verifier.Result, len(emails))

	for i := 0; i < vc.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for email := range emailChan {
				resultChan <- vc.Verifier.Verify(email, verifier.Options{})
			}
		}()
	}

	// Feed emails to workers
	go func() {
		for _, email := range emails {
			emailChan <- email
		}
		close(emailChan)
	}()

	// Collect results
	go func() {
		wg.Wait()
		close(resultChan)
	}()

	for result := range resultChan {
		mu.Lock()
		switch result.Status {
		case verifier.StatusValid:
			valid++
		case verifier.StatusInvalid:
			invalid++
		case verifier.StatusCatchAll:
			catchAll++
		default:
			unknown++
		}
		records = append(records, models.NewVerificationRecord(verificationID, result))
		mu.Unlock()
	}

	completedAt := time.Now()
	verification := models.EmailVerification{
		Model:         gorm.Model{ID: verificationID},
		Status:        "completed",
		ValidCount:    valid,
		InvalidCount:  invalid,
		CatchAllCount: catchAll,
		UnknownCount:  unknown,
		CompletedAt:   &completedAt,
	}

	// Use transaction for atomic updates
	err := vc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.EmailVerification{}).Where("id = ?", verificationID).Updates(&verification).Error; err != nil {
			return err
		}

		if err := tx.CreateInBatches(records, 100).Error; err != nil {
			return err
		}

		// Deduct credits
		return tx.Model(&models.APIClient{}).Where("id = ?", clientID).
			Update("verify_credits", gorm.Expr("verify_credits - ?", len(emails))).
			Error
	})

	if err != nil {
		vc.Logger.Printf("Failed to complete verification job %d: %v", verificationID, err)
		utils.LogError("bulk_verification_failed", err, map[string]interface{}{
			"verification_id": verificationID,
			"client_id":       clientID,
		})
	}
}

// GetVerificationResults retrieves verification job results
func (vc *VerificationController) GetVerificationResults(c *fiber.Ctx) error {
	client := c.Locals("client").(*models.APIClient)
	verificationID := c.Params("id")

	var verification models.EmailVerification
	if err := vc.DB.Preload("VerificationRecords").
		Where("id = ? AND client_id = ?", verificationID, client.ID).
		First(&verification).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Verification not found",
		})
	}

	return c.JSON(verification)
}
