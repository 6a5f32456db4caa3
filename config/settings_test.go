package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	s, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "8080", s.ServerPort)
	assert.Equal(t, "mysql", s.StorageDriver)
	assert.Equal(t, "local", s.UploadDriver)
	assert.Equal(t, 10*time.Second, s.GatewayTimeout)
	assert.Equal(t, 24*time.Hour, s.JWTLifetime())
	assert.Equal(t, "USD", s.DefaultCurrency)
	assert.False(t, s.IsProduction())
	assert.False(t, s.MailEnabled())
	assert.Contains(t, s.DSN(), "loc=UTC")
}

func TestParseRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "  ")
	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestParseRejectsUnknownDrivers(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	t.Setenv("STORAGE_DRIVER", "postgres")
	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_DRIVER")

	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("UPLOAD_DRIVER", "s3")
	_, err = Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_BUCKET")

	t.Setenv("S3_BUCKET", "papers")
	s, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "memory", s.StorageDriver)
	assert.Equal(t, "s3", s.UploadDriver)
}

func TestFeeSchedule(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("REGISTRATION_FEES", "150, 75.50,")

	s, err := Parse()
	require.NoError(t, err)
	fees := s.FeeSchedule()
	require.Len(t, fees, 2)
	assert.True(t, fees[0].Equal(decimal.NewFromInt(150)))
	assert.True(t, fees[1].Equal(decimal.RequireFromString("75.5")))

	t.Setenv("REGISTRATION_FEES", "150,-10")
	_, err = Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REGISTRATION_FEES")
}

func TestParseSQLiteDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE_DRIVER", " SQLite ")

	s, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", s.StorageDriver)
	assert.Equal(t, "portal.db", s.SQLitePath)
	assert.Empty(t, s.FeeSchedule())

	t.Setenv("SQLITE_PATH", " ")
	_, err = Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SQLITE_PATH")
}

func TestListsAndMail(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("SMTP_HOST", "smtp.example.org")
	t.Setenv("SMTP_FROM", "portal@example.org")
	t.Setenv("ENVIRONMENT", "Production")
	t.Setenv("JWT_EXPIRE_HOURS", "0")

	s, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, s.KafkaBrokers)
	assert.True(t, s.MailEnabled())
	assert.True(t, s.IsProduction())
	assert.Equal(t, 24*time.Hour, s.JWTLifetime())
}
