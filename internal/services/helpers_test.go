package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/doffers/internal/config"
	"github.com/example/doffers/internal/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Env:          "test",
		JWTSecret:    "test-secret",
		TokenExpires: time.Hour,
		MasterOTP:    "999999",
		OTPLength:    6,
		OTPExpiry:    10 * time.Minute,
	}
}

// newPincodeStub serves the India Post response shape for any pincode.
func newPincodeStub(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"Status":"Success","PostOffice":[{"Name":"Connaught Place","Block":"New Delhi","District":"Central Delhi","State":"Delhi"}]}]`)
	}))
	t.Cleanup(srv.Close)

	return srv
}

// recordingSender captures outbound SMS messages.
type recordingSender struct {
	sent []string
	err  error
}

func (s *recordingSender) Send(ctx context.Context, phone, message string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, phone)
	return nil
}
