package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Settings is the process configuration decoded from the environment.
type Settings struct {
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`
	GinMode     string `env:"GIN_MODE" envDefault:"debug"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	StorageDriver  string        `env:"STORAGE_DRIVER" envDefault:"mysql"`
	DBHost         string        `env:"DB_HOST" envDefault:"127.0.0.1"`
	DBPort         string        `env:"DB_PORT" envDefault:"3306"`
	DBDatabase     string        `env:"DB_DATABASE" envDefault:"conference_portal"`
	DBUsername     string        `env:"DB_USERNAME" envDefault:"root"`
	DBPassword     string        `env:"DB_PASSWORD"`
	DebugSQL       bool          `env:"DEBUG_SQL" envDefault:"false"`
	AutoMigrate    bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`
	GatewayTimeout time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"10s"`
	SQLitePath     string        `env:"SQLITE_PATH" envDefault:"portal.db"`

	UploadDriver string `env:"UPLOAD_DRIVER" envDefault:"local"`
	UploadPath   string `env:"UPLOAD_PATH" envDefault:"./uploads"`
	S3Bucket     string `env:"S3_BUCKET"`
	S3Region     string `env:"S3_REGION" envDefault:"us-east-1"`
	S3AccessKey  string `env:"S3_ACCESS_KEY"`
	S3SecretKey  string `env:"S3_SECRET_KEY"`
	S3Endpoint   string `env:"S3_ENDPOINT"`

	JWTSecret      string `env:"JWT_SECRET"`
	JWTExpireHours int    `env:"JWT_EXPIRE_HOURS" envDefault:"24"`

	SMTPHost          string `env:"SMTP_HOST"`
	SMTPPort          int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser          string `env:"SMTP_USER"`
	SMTPPass          string `env:"SMTP_PASS"`
	SMTPFrom          string `env:"SMTP_FROM"`
	SMTPSkipTLSVerify bool   `env:"SMTP_SKIP_TLS_VERIFY" envDefault:"false"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	CORSOrigins  []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	LogsToken    string   `env:"LOGS_TOKEN"`
	LogFile      string   `env:"LOG_FILE" envDefault:"logs/portal-api.log"`

	RegistrationFees []string `env:"REGISTRATION_FEES" envSeparator:","`
	DefaultCurrency  string   `env:"DEFAULT_CURRENCY" envDefault:"USD"`

	fees []decimal.Decimal
}

// Load reads .env when present and decodes the environment into Settings.
func Load() (*Settings, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return Parse()
}

// Parse decodes the current environment without touching .env.
func Parse() (*Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) validate() error {
	s.StorageDriver = strings.ToLower(strings.TrimSpace(s.StorageDriver))
	s.UploadDriver = strings.ToLower(strings.TrimSpace(s.UploadDriver))

	switch s.StorageDriver {
	case "mysql", "memory":
	case "sqlite":
		if strings.TrimSpace(s.SQLitePath) == "" {
			return errors.New("SQLITE_PATH: required when STORAGE_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER: unsupported value %q (mysql|memory|sqlite)", s.StorageDriver)
	}
	switch s.UploadDriver {
	case "local":
	case "s3":
		if strings.TrimSpace(s.S3Bucket) == "" {
			return errors.New("S3_BUCKET: required when UPLOAD_DRIVER=s3")
		}
	default:
		return fmt.Errorf("UPLOAD_DRIVER: unsupported value %q (local|s3)", s.UploadDriver)
	}
	if strings.TrimSpace(s.JWTSecret) == "" {
		return errors.New("JWT_SECRET: required")
	}
	if s.JWTExpireHours <= 0 {
		s.JWTExpireHours = 24
	}
	fees, err := parseFees(s.RegistrationFees)
	if err != nil {
		return err
	}
	s.fees = fees
	return nil
}

// IsProduction reports whether ENVIRONMENT is production.
func (s *Settings) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

// JWTLifetime is the validity of issued tokens.
func (s *Settings) JWTLifetime() time.Duration {
	return time.Duration(s.JWTExpireHours) * time.Hour
}

// FeeSchedule is REGISTRATION_FEES as parsed by Parse. An empty list means any positive amount
// is accepted.
func (s *Settings) FeeSchedule() []decimal.Decimal {
	return s.fees
}

func parseFees(values []string) ([]decimal.Decimal, error) {
	fees := make([]decimal.Decimal, 0, len(values))
	for _, raw := range values {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		fee, err := decimal.NewFromString(raw)
		if err != nil || !fee.IsPositive() {
			return nil, fmt.Errorf("REGISTRATION_FEES: invalid fee %q", raw)
		}
		fees = append(fees, fee)
	}
	return fees, nil
}

// DSN is the MySQL data source name.
func (s *Settings) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		s.DBUsername,
		s.DBPassword,
		s.DBHost,
		s.DBPort,
		s.DBDatabase,
	)
}

// MailEnabled reports whether SMTP is configured.
func (s *Settings) MailEnabled() bool {
	return strings.TrimSpace(s.SMTPHost) != "" && strings.TrimSpace(s.SMTPFrom) != ""
}
