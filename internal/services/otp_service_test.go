package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/doffers/internal/models"
)

func TestGenerateCode(t *testing.T) {
	svc := NewOTPService(newTestDB(t), newTestConfig())

	for i := 0; i < 20; i++ {
		code, err := svc.Generate()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "non-digit in code %q", code)
		}
	}
}

func TestIssueReplacesPriorCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewOTPService(db, newTestConfig())

	first, err := svc.Issue("9876543210")
	require.NoError(t, err)
	second, err := svc.Issue("9876543210")
	require.NoError(t, err)

	// Only one live code remains.
	var count int64
	require.NoError(t, db.Model(&models.OneTimeCode{}).Where("phone = ?", "9876543210").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The first code no longer verifies.
	assert.ErrorIs(t, svc.Consume("9876543210", first), ErrInvalidOrExpiredOTP)
	assert.NoError(t, svc.Consume("9876543210", second))
}

func TestConsumeIsSingleUse(t *testing.T) {
	svc := NewOTPService(newTestDB(t), newTestConfig())

	code, err := svc.Issue("9876543210")
	require.NoError(t, err)

	require.NoError(t, svc.Consume("9876543210", code))
	assert.ErrorIs(t, svc.Consume("9876543210", code), ErrInvalidOrExpiredOTP)
}

func TestConsumeRejectsWrongCode(t *testing.T) {
	svc := NewOTPService(newTestDB(t), newTestConfig())

	code, err := svc.Issue("9876543210")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	assert.ErrorIs(t, svc.Consume("9876543210", wrong), ErrInvalidOrExpiredOTP)

	// The live code survives a failed attempt.
	assert.NoError(t, svc.Consume("9876543210", code))
}

func TestConsumeUnknownPhone(t *testing.T) {
	svc := NewOTPService(newTestDB(t), newTestConfig())
	assert.ErrorIs(t, svc.Consume("9876543210", "123456"), ErrInvalidOrExpiredOTP)
}

func TestConsumeExpiredCodeDeletesRecord(t *testing.T) {
	db := newTestDB(t)
	svc := NewOTPService(db, newTestConfig())

	code, err := svc.Issue("9876543210")
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.OneTimeCode{}).
		Where("phone = ?", "9876543210").
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	assert.ErrorIs(t, svc.Consume("9876543210", code), ErrInvalidOrExpiredOTP)

	var count int64
	require.NoError(t, db.Model(&models.OneTimeCode{}).Where("phone = ?", "9876543210").Count(&count).Error)
	assert.Equal(t, int64(0), count, "stale record should be deleted on read")
}

func TestPeekLatestRoundTrip(t *testing.T) {
	cfg := newTestConfig()
	svc := NewOTPService(newTestDB(t), cfg)

	before := time.Now()
	code, err := svc.Issue("9876543210")
	require.NoError(t, err)

	record, err := svc.PeekLatest("9876543210")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, code, record.Code)

	expectedExpiry := before.Add(cfg.OTPExpiry)
	assert.WithinDuration(t, expectedExpiry, record.ExpiresAt, 5*time.Second)
}

func TestPeekLatestUnknownPhone(t *testing.T) {
	svc := NewOTPService(newTestDB(t), newTestConfig())

	record, err := svc.PeekLatest("9876543210")
	require.NoError(t, err)
	assert.Nil(t, record)
}
