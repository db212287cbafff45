package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix префикс переменных окружения, переопределяющих значения из файла
const EnvPrefix = "BOOKFIND"

// DefaultPath путь к конфигу, если не задан ни флагом, ни BOOKFIND_CONFIG
const DefaultPath = "bookfind.yaml"

// CatalogConfig настройки внешнего API каталога книг
type CatalogConfig struct {
	URL           string        `yaml:"url" envconfig:"url"`
	Timeout       time.Duration `yaml:"timeout" envconfig:"timeout"`
	RatePerSecond float64       `yaml:"rate_per_second" envconfig:"rate_per_second"`
	Burst         int           `yaml:"burst" envconfig:"burst"`
}

// DebounceConfig настройки подавления ввода
type DebounceConfig struct {
	QuietPeriod time.Duration `yaml:"quiet_period" envconfig:"quiet_period"`
	MinLength   int           `yaml:"min_length" envconfig:"min_length"`
}

// RenderConfig настройки отображения результатов
type RenderConfig struct {
	DescriptionLimit int `yaml:"description_limit" envconfig:"description_limit"`
}

// LogConfig настройки логгера
type LogConfig struct {
	Level string `yaml:"level" envconfig:"level"`
	Path  string `yaml:"path" envconfig:"path"` // пусто: stderr (в TUI логи отключены)
	JSON  bool   `yaml:"json" envconfig:"json"`
}

// MetricsConfig настройки для экспортера метрик
type MetricsConfig struct {
	Port int `yaml:"port" envconfig:"port"`
}

// Config корень дерева конфигурации, соответствующий bookfind.yaml
type Config struct {
	Catalog  CatalogConfig  `yaml:"catalog" envconfig:"catalog"`
	Debounce DebounceConfig `yaml:"debounce" envconfig:"debounce"`
	Render   RenderConfig   `yaml:"render" envconfig:"render"`
	Log      LogConfig      `yaml:"log" envconfig:"log"`
	Metrics  MetricsConfig  `yaml:"metrics" envconfig:"metrics"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Catalog: CatalogConfig{
			URL:           "https://www.googleapis.com/books/v1/volumes",
			Timeout:       15 * time.Second,
			RatePerSecond: 2,
			Burst:         1,
		},
		Debounce: DebounceConfig{
			QuietPeriod: 300 * time.Millisecond,
			MinLength:   2,
		},
		Render: RenderConfig{DescriptionLimit: 100},
		Log:    LogConfig{Level: "warn"},
	}
}

type invalidErr string

func (e invalidErr) Error() string { return "invalid config: " + string(e) }

// ErrInvalid builds a validation error.
func ErrInvalid(msg string) error { return invalidErr(msg) }

// IsInvalid reports whether err came from Validate.
func IsInvalid(err error) bool {
	var ie invalidErr
	return errors.As(err, &ie)
}

func (c Config) Validate() error {
	if c.Catalog.URL == "" {
		return ErrInvalid("catalog.url is required")
	}
	if c.Catalog.Timeout < 0 {
		return ErrInvalid("catalog.timeout must not be negative")
	}
	if c.Catalog.RatePerSecond > 0 && c.Catalog.Burst < 1 {
		return ErrInvalid("catalog.burst must be at least 1 when rate_per_second is set")
	}
	if c.Debounce.QuietPeriod < 0 {
		return ErrInvalid("debounce.quiet_period must not be negative")
	}
	if c.Debounce.MinLength < 1 {
		return ErrInvalid("debounce.min_length must be at least 1")
	}
	if c.Render.DescriptionLimit < 1 {
		return ErrInvalid("render.description_limit must be at least 1")
	}
	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return ErrInvalid(fmt.Sprintf("metrics.port %d out of range", c.Metrics.Port))
	}
	return nil
}

// Path resolves the config file location: explicit flag, then BOOKFIND_CONFIG, then DefaultPath.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the YAML file at path over the defaults and applies BOOKFIND_* overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(f, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("env overrides: %w", err)
	}
	return cfg, cfg.Validate()
}

// Address возвращает host:port экспортера метрик (только loopback)
func (c MetricsConfig) Address() string {
	return fmt.Sprintf("127.0.0.1:%d", c.Port)
}
