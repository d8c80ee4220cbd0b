// Package config loads configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	APIName          string `env:"APT_API_APP_NAME" default:"Apartments API"`
	APIVersion       string `env:"APT_API_APP_VERSION" default:"1.0.0"`
	ServerPort       string `env:"APT_API_SERVER_PORT" default:"3000"`
	ServerLogLevel   string `env:"APT_API_SERVER_LOG_LEVEL" default:"info"`
	PostgresDsn      string `env:"APT_API_PG_DSN" required:"true"`
	PostgresLogLevel string `env:"APT_API_PG_LOG_LEVEL" default:"warn"`
	RedisURL         string `env:"APT_API_REDIS_URL"`
	SessionTTLHours  string `env:"APT_API_SESSION_TTL_HOURS" default:"24"`
	PublicDir        string `env:"APT_API_PUBLIC_DIR" default:"public"`
	SeedUsername     string `env:"APT_API_SEED_USERNAME" default:"admin"`
	SeedPassword     string `env:"APT_API_SEED_PASSWORD" default:"admin"`
}

var (
	SingleLine string = "--------------------------------------------------"
)

var (
	instance *Config
	once     sync.Once
	loadErr  error
)

// Get returns the application configuration
func Get() (*Config, error) {
	once.Do(func() {
		instance, loadErr = loadConfig()
	})
	return instance, loadErr
}

// loadConfig loads configuration from a .env file, if present, and the environment
func loadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromEnv fills the struct from env tags, applying defaults and
// erroring on missing required values
func (c *Config) loadFromEnv() error {
	t := reflect.TypeOf(*c)
	v := reflect.ValueOf(c).Elem()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		envTag := field.Tag.Get("env")
		if envTag == "" {
			return fmt.Errorf("missing env tag for field %s", field.Name)
		}

		value := os.Getenv(envTag)
		if value == "" {
			value = field.Tag.Get("default")
		}
		if value == "" && field.Tag.Get("required") == "true" {
			return fmt.Errorf("env variable %s is required but not set", envTag)
		}

		v.Field(i).SetString(value)
	}

	return nil
}

// String returns the configuration as a string, masking sensitive values
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n" + SingleLine + "\n")
	sb.WriteString("Configuration:\n")
	sb.WriteString(SingleLine + "\n")

	t := reflect.TypeOf(*c)
	v := reflect.ValueOf(*c)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i).String()
		value = maskSensitiveField(field.Name, value)
		sb.WriteString(fmt.Sprintf("  %s:  %s\n", field.Name, value))
	}

	sb.WriteString(SingleLine + "\n")

	return sb.String()
}

func maskSensitiveField(fieldName, value string) string {
	sensitiveFields := []string{"dsn", "password", "url"}

	fieldNameLower := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFields {
		if strings.Contains(fieldNameLower, sensitive) {
			return maskValue(value)
		}
	}

	return value
}

func maskValue(value string) string {
	if len(value) <= 3 {
		return strings.Repeat("*", 7)
	}
	return value[:3] + strings.Repeat("*", 7)
}
