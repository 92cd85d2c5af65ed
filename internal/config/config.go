package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// MaxTermMonths - верхняя граница MAX_MONTHS (100 лет)
const MaxTermMonths = 1200

// Config содержит конфигурацию сервиса
type Config struct {
	Port             int
	MaxPrincipal     float64
	MaxRate          float64
	MinMonths        int
	MaxMonths        int
	DefaultRateBasis string
	DefaultMethod    string
	OTELEndpoint     string
	OTELServiceName  string
	LogLevel         string
	RedisAddr        string
	ResultTTL        time.Duration
}

// fileOverlay - необязательный YAML-файл с ограничениями калькулятора.
// Заданные в нем поля перекрывают значения из окружения.
type fileOverlay struct {
	Limits struct {
		MaxPrincipal *float64 `yaml:"max_principal"`
		MaxRate      *float64 `yaml:"max_rate"`
		MinMonths    *int     `yaml:"min_months"`
		MaxMonths    *int     `yaml:"max_months"`
	} `yaml:"limits"`
	Defaults struct {
		RateBasis *string `yaml:"rate_basis"`
		Method    *string `yaml:"method"`
	} `yaml:"defaults"`
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnvInt("PORT", 8000),
		MaxPrincipal:     getEnvFloat("MAX_PRINCIPAL", 1e12),
		MaxRate:          getEnvFloat("MAX_RATE", 200),
		MinMonths:        getEnvInt("MIN_MONTHS", 1),
		MaxMonths:        getEnvInt("MAX_MONTHS", 300),
		DefaultRateBasis: getEnvString("DEFAULT_RATE_BASIS", "yearly"),
		DefaultMethod:    getEnvString("DEFAULT_METHOD", "annuity"),
		OTELEndpoint:     getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName:  getEnvString("OTEL_SERVICE_NAME", "estate-loan-calculator"),
		LogLevel:         getEnvString("LOG_LEVEL", "info"),
		RedisAddr:        getEnvString("REDIS_ADDR", ""),
		ResultTTL:        getEnvDuration("RESULT_TTL", 30*time.Minute),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	var overlay fileOverlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if v := overlay.Limits.MaxPrincipal; v != nil {
		c.MaxPrincipal = *v
	}
	if v := overlay.Limits.MaxRate; v != nil {
		c.MaxRate = *v
	}
	if v := overlay.Limits.MinMonths; v != nil {
		c.MinMonths = *v
	}
	if v := overlay.Limits.MaxMonths; v != nil {
		c.MaxMonths = *v
	}
	if v := overlay.Defaults.RateBasis; v != nil {
		c.DefaultRateBasis = *v
	}
	if v := overlay.Defaults.Method; v != nil {
		c.DefaultMethod = *v
	}
	return nil
}

func (c *Config) validate() error {
	if c.MinMonths < 1 {
		return fmt.Errorf("min months must be at least 1, got %d", c.MinMonths)
	}
	if c.MaxMonths < c.MinMonths {
		return fmt.Errorf("max months %d is below min months %d", c.MaxMonths, c.MinMonths)
	}
	if c.MaxMonths > MaxTermMonths {
		return fmt.Errorf("max months must not exceed %d, got %d", MaxTermMonths, c.MaxMonths)
	}
	if c.MaxRate <= 0 {
		return fmt.Errorf("max rate must be positive, got %g", c.MaxRate)
	}
	if c.MaxPrincipal <= 0 {
		return fmt.Errorf("max principal must be positive, got %g", c.MaxPrincipal)
	}
	if c.ResultTTL <= 0 {
		return fmt.Errorf("result ttl must be positive, got %s", c.ResultTTL)
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
