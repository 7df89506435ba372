package config

import (
	"fmt"
	"fullauth/internal/core/domain/settings"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	MailTransportSES    = "ses"
	MailTransportResend = "resend"
	MailTransportLog    = "log"
)

const productionEnv = "production"

type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"development"`
	IsTestMode bool   `env:"TEST_MODE"`
	Port       uint16 `env:"PORT" envDefault:"8000"`

	AllowedOrigin string `env:"ALLOWED_ORIGIN,required,notEmpty"`

	PostgresqlURL  string `env:"POSTGRESQL_URL,required,notEmpty"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`
	RedisURL       string `env:"REDIS_URL,required,notEmpty"`

	RabbitmqURL              string `env:"RABBITMQ_URL"`
	RabbitmqSecurityExchange string `env:"RABBITMQ_SECURITY_EXCHANGE" envDefault:"security"`

	MailTransport string `env:"MAIL_TRANSPORT" envDefault:"log"`
	MailFrom      string `env:"MAIL_FROM" envDefault:"no-reply@localhost"`
	ResendAPIKey  string `env:"RESEND_API_KEY"`
	AwsRegion     string `env:"AWS_REGION"`
	AwsAccessKey  string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey  string `env:"AWS_SECRET_KEY"`

	Argon2MemoryKiB   uint32 `env:"ARGON2_MEMORY_KIB" envDefault:"65536"`
	Argon2Iterations  uint32 `env:"ARGON2_ITERATIONS" envDefault:"3"`
	Argon2Parallelism uint8  `env:"ARGON2_PARALLELISM" envDefault:"4"`
	PasswordSecret    string `env:"PASSWORD_SECRET"`

	PasswordResetRequestsPerHour uint16 `env:"PASSWORD_RESET_REQUESTS_PER_HOUR" envDefault:"3"`
}

// Load reads the configuration from the environment. Outside production
// a .env file in the working directory is read first if it exists.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != productionEnv {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("could not read .env file: %w", err)
		}
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == productionEnv
}

// Get implements settings.Source for the keys the services read at runtime.
func (c *Config) Get(key settings.Key) (string, error) {
	var value string
	switch key {
	case settings.AllowedOrigin:
		value = c.AllowedOrigin
	}
	if value == "" {
		return "", &settings.MissingKeyError{Key: key}
	}
	return value, nil
}

func (c *Config) validate() error {
	switch c.MailTransport {
	case MailTransportSES:
		if c.AwsRegion == "" {
			return fmt.Errorf("AWS_REGION must be set for MAIL_TRANSPORT=%s", c.MailTransport)
		}
	case MailTransportResend:
		if c.ResendAPIKey == "" {
			return fmt.Errorf("RESEND_API_KEY must be set for MAIL_TRANSPORT=%s", c.MailTransport)
		}
	case MailTransportLog:
	default:
		return fmt.Errorf("invalid MAIL_TRANSPORT value: %q", c.MailTransport)
	}
	if c.PasswordResetRequestsPerHour == 0 {
		return fmt.Errorf("PASSWORD_RESET_REQUESTS_PER_HOUR must be positive")
	}
	return nil
}
