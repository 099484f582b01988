package services

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"gorm.io/gorm"

	"github.com/example/doffers/internal/config"
	"github.com/example/doffers/internal/models"
	"github.com/example/doffers/internal/utils"
)

// OTPService issues and consumes one-time codes. Codes are single-use,
// expire after cfg.OTPExpiry and at most one live code exists per phone.
type OTPService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewOTPService constructs an OTPService.
func NewOTPService(db *gorm.DB, cfg *config.Config) *OTPService {
	return &OTPService{db: db, cfg: cfg}
}

// Generate produces a numeric code of the configured length using a
// cryptographically secure source, uniform over all n-digit strings.
func (s *OTPService) Generate() (string, error) {
	length := s.cfg.OTPLength
	if length <= 0 {
		length = 6
	}

	max := big.NewInt(1)
	for i := 0; i < length; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}

// Issue invalidates any existing codes for phone and persists a fresh one.
// The plaintext code is returned for delivery. Delete-then-insert runs in
// one transaction; concurrent issuance for the same phone remains
// last-write-wins.
func (s *OTPService) Issue(phone string) (string, error) {
	code, err := s.Generate()
	if err != nil {
		return "", err
	}

	record := models.OneTimeCode{
		Phone:     phone,
		Code:      code,
		ExpiresAt: time.Now().Add(s.cfg.OTPExpiry),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("phone = ?", phone).Delete(&models.OneTimeCode{}).Error; err != nil {
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return "", err
	}

	return code, nil
}

// Consume verifies submitted against the most recent code for phone and
// deletes it on success. Stale records are deleted as a side effect. Any
// failure collapses to ErrInvalidOrExpiredOTP so callers cannot tell a
// wrong code from a missing or expired one.
func (s *OTPService) Consume(phone, submitted string) error {
	var record models.OneTimeCode
	err := s.db.Where("phone = ?", phone).
		Order("created_at desc").
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrInvalidOrExpiredOTP
		}
		return err
	}

	if time.Now().After(record.ExpiresAt) {
		if err := s.db.Delete(&record).Error; err != nil {
			log.Printf("failed to delete expired code for %s: %v", phone, err)
		}
		return ErrInvalidOrExpiredOTP
	}

	if !utils.ConstantTimeEquals(submitted, record.Code) {
		return ErrInvalidOrExpiredOTP
	}

	return s.db.Delete(&record).Error
}

// PeekLatest returns the most recent code for phone without consuming it.
// Diagnostic use only; the route exposing it is never registered in
// production.
func (s *OTPService) PeekLatest(phone string) (*models.OneTimeCode, error) {
	var record models.OneTimeCode
	err := s.db.Where("phone = ?", phone).
		Order("created_at desc").
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// StartCleanup runs an hourly goroutine that deletes expired codes.
// Expiry is already enforced at read time; this just keeps the table small.
func (s *OTPService) StartCleanup(done chan struct{}) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				result := s.db.Where("expires_at < ?", time.Now()).Delete(&models.OneTimeCode{})
				if result.Error != nil {
					log.Printf("otp cleanup failed: %v", result.Error)
				} else if result.RowsAffected > 0 {
					log.Printf("otp cleanup deleted %d expired codes", result.RowsAffected)
				}
			case <-done:
				return
			}
		}
	}()
}
