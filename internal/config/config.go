package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from environment variables
// and, optionally, a config file named by CONFIG_FILE.
type Config struct {
	AppEnv       string
	ServerPort   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	DBDriver string
	DBDSN    string
	ResetDB  bool

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret    string
	JWTAccessTTL time.Duration

	ConfirmationCodeLength int
	ConfirmationCodeTTL    time.Duration

	PageSize int

	MailBackend  string
	MailFrom     string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	SwaggerHost string
}

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"

	MailBackendLog  = "log"
	MailBackendSMTP = "smtp"
)

var defaults = map[string]any{
	"APP_ENV":                  "development",
	"SERVER_PORT":              "8080",
	"HTTP_READ_TIMEOUT":        "15s",
	"HTTP_WRITE_TIMEOUT":       "30s",
	"DB_DRIVER":                DriverMySQL,
	"DB_DSN":                   "user:password@tcp(localhost:3306)/yamdb?charset=utf8mb4&parseTime=True&loc=Local",
	"RESET_DB":                 false,
	"REDIS_ADDR":               "localhost:6379",
	"REDIS_DB":                 0,
	"REDIS_PASSWORD":           "",
	"JWT_SECRET":               "change-me",
	"JWT_ACCESS_TTL":           "24h",
	"CONFIRMATION_CODE_LENGTH": 8,
	"CONFIRMATION_CODE_TTL":    "24h",
	"PAGE_SIZE":                10,
	"MAIL_BACKEND":             MailBackendLog,
	"MAIL_FROM":                "noreply@yamdb.local",
	"SMTP_HOST":                "localhost",
	"SMTP_PORT":                25,
	"SMTP_USERNAME":            "",
	"SMTP_PASSWORD":            "",
	"SWAGGER_HOST":             "",
}

// Load builds Config from environment with sensible defaults.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	v.SetDefault("CONFIG_FILE", "")
	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		AppEnv:                 strings.ToLower(v.GetString("APP_ENV")),
		ServerPort:             v.GetString("SERVER_PORT"),
		ReadTimeout:            v.GetDuration("HTTP_READ_TIMEOUT"),
		WriteTimeout:           v.GetDuration("HTTP_WRITE_TIMEOUT"),
		DBDriver:               strings.ToLower(v.GetString("DB_DRIVER")),
		DBDSN:                  v.GetString("DB_DSN"),
		ResetDB:                v.GetBool("RESET_DB"),
		RedisAddr:              v.GetString("REDIS_ADDR"),
		RedisDB:                v.GetInt("REDIS_DB"),
		RedisPass:              v.GetString("REDIS_PASSWORD"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		JWTAccessTTL:           v.GetDuration("JWT_ACCESS_TTL"),
		ConfirmationCodeLength: v.GetInt("CONFIRMATION_CODE_LENGTH"),
		ConfirmationCodeTTL:    v.GetDuration("CONFIRMATION_CODE_TTL"),
		PageSize:               v.GetInt("PAGE_SIZE"),
		MailBackend:            strings.ToLower(v.GetString("MAIL_BACKEND")),
		MailFrom:               v.GetString("MAIL_FROM"),
		SMTPHost:               v.GetString("SMTP_HOST"),
		SMTPPort:               v.GetInt("SMTP_PORT"),
		SMTPUsername:           v.GetString("SMTP_USERNAME"),
		SMTPPassword:           v.GetString("SMTP_PASSWORD"),
		SwaggerHost:            v.GetString("SWAGGER_HOST"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.HasPrefix(c.AppEnv, "prod")
}

func (c *Config) validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.DBDriver != DriverMySQL && c.DBDriver != DriverPostgres {
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverMySQL, DriverPostgres, c.DBDriver)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProduction() && c.JWTSecret == defaults["JWT_SECRET"] {
		return fmt.Errorf("JWT_SECRET must be changed in production")
	}
	if c.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be positive")
	}
	if c.ConfirmationCodeLength < 4 || c.ConfirmationCodeLength > 64 {
		return fmt.Errorf("CONFIRMATION_CODE_LENGTH must be between 4 and 64")
	}
	if c.ConfirmationCodeTTL <= 0 {
		return fmt.Errorf("CONFIRMATION_CODE_TTL must be positive")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("PAGE_SIZE must be at least 1")
	}
	if c.MailBackend != MailBackendLog && c.MailBackend != MailBackendSMTP {
		return fmt.Errorf("MAIL_BACKEND must be %q or %q", MailBackendLog, MailBackendSMTP)
	}
	return nil
}
