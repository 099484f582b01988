package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "999999", cfg.MasterOTP)
	assert.Equal(t, 6, cfg.OTPLength)
	assert.Equal(t, 10*time.Minute, cfg.OTPExpiry)
	assert.False(t, cfg.SendOTPViaSMS)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("OTP_LENGTH", "4")
	t.Setenv("OTP_EXPIRY_MINUTES", "5")

	cfg := Load()

	assert.Equal(t, "9090", cfg.AppPort)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, 4, cfg.OTPLength)
	assert.Equal(t, 5*time.Minute, cfg.OTPExpiry)
}
