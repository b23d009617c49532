// Package config loads the application configuration from a YAML file,
// applies environment variable overrides, and validates the result. Every
// field has a built-in default so the tools run without any config file at
// all.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"pizzetta/internal/domain"
)

// DefaultPath is where Load looks for the config file when the caller does
// not override it.
const DefaultPath = "config/pizzetta.yaml"

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the pizzetta tools.
type Config struct {
	Storage Storage `yaml:"storage"`
	Logging Logging `yaml:"logging"`
	Menu    Menu    `yaml:"menu"`
}

// Storage holds paths for data persistence.
type Storage struct {
	DataDir    string `yaml:"data_dir" validate:"required"`
	OrdersFile string `yaml:"orders_file" validate:"required"`
	SQLitePath string `yaml:"sqlite_path"`
	ArchiveDir string `yaml:"archive_dir"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// Menu defines the sizes and toppings orders may be built from. Prices are
// plain floats here; ToDomain converts them to decimals for the engine.
type Menu struct {
	Sizes        []SizeConfig `yaml:"sizes" validate:"min=1,unique=Name,dive"`
	Toppings     []string     `yaml:"toppings" validate:"min=1,unique,dive,required"`
	ToppingPrice float64      `yaml:"topping_price" validate:"gte=0"`
}

// SizeConfig is a single pizza size and its base price.
type SizeConfig struct {
	Name      string  `yaml:"name" validate:"required"`
	BasePrice float64 `yaml:"base_price" validate:"gt=0"`
}

// ---------------------------------------------------------------------------
// Defaults
// ---------------------------------------------------------------------------

// Default returns the built-in configuration used when no config file exists.
// The menu matches domain.DefaultMenu.
func Default() *Config {
	dm := domain.DefaultMenu()
	sizes := make([]SizeConfig, len(dm.Sizes))
	for i, s := range dm.Sizes {
		sizes[i] = SizeConfig{Name: s.Name, BasePrice: s.Base.InexactFloat64()}
	}
	return &Config{
		Storage: Storage{
			DataDir:    "data",
			OrdersFile: "orders.json",
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Menu: Menu{
			Sizes:        sizes,
			Toppings:     dm.Toppings,
			ToppingPrice: dm.ToppingPrice.InexactFloat64(),
		},
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load builds the configuration in three layers: built-in defaults, then the
// YAML file at path when it exists, then environment variable overrides. The
// merged result is validated before it is returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No config file; defaults plus environment are enough.
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PIZZETTA_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}

	if v := os.Getenv("PIZZETTA_ORDERS_FILE"); v != "" {
		cfg.Storage.OrdersFile = v
	}

	if v := os.Getenv("PIZZETTA_SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}

	if v := os.Getenv("PIZZETTA_ARCHIVE_DIR"); v != "" {
		cfg.Storage.ArchiveDir = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

// Path returns the config file path, honouring the PIZZETTA_CONFIG
// environment variable.
func Path() string {
	if v := os.Getenv("PIZZETTA_CONFIG"); v != "" {
		return v
	}
	return DefaultPath
}

// ---------------------------------------------------------------------------
// Derived paths and conversions
// ---------------------------------------------------------------------------

// OrdersPath returns the full path of the orders JSON file.
func (s Storage) OrdersPath() string {
	return filepath.Join(s.DataDir, s.OrdersFile)
}

// DBPath returns the status log database path, defaulting to
// <data_dir>/pizzetta.db when sqlite_path is not set.
func (s Storage) DBPath() string {
	if s.SQLitePath != "" {
		return s.SQLitePath
	}
	return filepath.Join(s.DataDir, "pizzetta.db")
}

// ArchivePath returns the parquet archive directory, defaulting to
// <data_dir>/archive when archive_dir is not set.
func (s Storage) ArchivePath() string {
	if s.ArchiveDir != "" {
		return s.ArchiveDir
	}
	return filepath.Join(s.DataDir, "archive")
}

// ToDomain converts the configured menu into the domain Menu the engine
// consumes.
func (m Menu) ToDomain() domain.Menu {
	sizes := make([]domain.SizePrice, len(m.Sizes))
	for i, s := range m.Sizes {
		sizes[i] = domain.SizePrice{Name: s.Name, Base: decimal.NewFromFloat(s.BasePrice)}
	}
	return domain.Menu{
		Sizes:        sizes,
		Toppings:     append([]string(nil), m.Toppings...),
		ToppingPrice: decimal.NewFromFloat(m.ToppingPrice),
	}
}
