package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/finvoice/finvoice/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	Cache      CacheConfig
	Invoice    InvoiceConfig
	Sentry     SentryConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// PostgresConfig requires the connection URL at process start. A missing
// URL is a fatal configuration error.
type PostgresConfig struct {
	URL string `validate:"required"`
}

type AuthConfig struct {
	// Secret signs session tokens
	Secret string `validate:"required"`
	// DashboardPrefix is the path prefix that requires an authenticated session
	DashboardPrefix string
}

type CacheConfig struct {
	Enabled bool
}

// InvoiceConfig fixes the store-error policy per mutation. The defaults
// mirror the dashboard's historical behavior: a failed insert is logged
// and the flow continues, a failed update halts and reports.
type InvoiceConfig struct {
	CreateErrorPolicy types.StoreErrorPolicy
	UpdateErrorPolicy types.StoreErrorPolicy
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

func NewConfig() (*Configuration, error) {
	// Load .env if present; real env vars win
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/finvoice")

	v.SetEnvPrefix("FINVOICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	v.SetDefault("deployment.mode", types.ModeAPI)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("auth.dashboardprefix", "/dashboard")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("invoice.createerrorpolicy", types.StoreErrorPolicySwallow)
	v.SetDefault("invoice.updateerrorpolicy", types.StoreErrorPolicySurface)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	if !c.Invoice.CreateErrorPolicy.Validate() {
		return fmt.Errorf("invalid invoice create error policy: %s", c.Invoice.CreateErrorPolicy)
	}
	if !c.Invoice.UpdateErrorPolicy.Validate() {
		return fmt.Errorf("invalid invoice update error policy: %s", c.Invoice.UpdateErrorPolicy)
	}

	return nil
}

func (c PostgresConfig) GetDSN() string {
	return c.URL
}

// GetDefaultConfig returns a default configuration for local development
// and tests
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Auth: AuthConfig{
			Secret:          "test-secret",
			DashboardPrefix: "/dashboard",
		},
		Cache: CacheConfig{Enabled: true},
		Invoice: InvoiceConfig{
			CreateErrorPolicy: types.StoreErrorPolicySwallow,
			UpdateErrorPolicy: types.StoreErrorPolicySurface,
		},
	}
}
