// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"porte-calc/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Tariff contains tariff source settings
	Tariff TariffConfig `json:"tariff"`

	// Output contains output settings
	Output OutputConfig `json:"output"`

	// Sheets contains Google Sheets settings
	Sheets SheetsConfig `json:"sheets,omitempty"`

	// Storage contains run history settings
	Storage StorageConfig `json:"storage,omitempty"`

	// Zones contains the radial zone schedule
	Zones ZonesConfig `json:"zones"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// TariffConfig contains tariff source settings
type TariffConfig struct {
	// Source is the default tariff source descriptor
	Source string `json:"source"`

	// ValidateSchema validates JSON tariff documents against the embedded schema
	ValidateSchema bool `json:"validate_schema"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json, csv)
	DefaultFormat string `json:"default_format"`

	// AppendLog appends each run to a CSV log file when set
	AppendLog string `json:"append_log,omitempty"`
}

// SheetsConfig contains Google Sheets settings
type SheetsConfig struct {
	// CredentialsFile is the path to the service account JSON key
	CredentialsFile string `json:"credentials_file,omitempty"`

	// SpreadsheetID is the default spreadsheet key
	SpreadsheetID string `json:"spreadsheet_id,omitempty"`

	// Worksheet is the default worksheet name
	Worksheet string `json:"worksheet"`
}

// StorageConfig contains run history settings
type StorageConfig struct {
	// Backend selects the store (memory, postgres)
	Backend string `json:"backend"`

	// DatabaseURL is the Postgres connection string
	DatabaseURL string `json:"database_url,omitempty"`
}

// ZoneBand is one radial pricing band
type ZoneBand struct {
	// LimitKM is the inclusive outer boundary of the band
	LimitKM float64 `json:"limit_km"`

	// Price is the flat price for the band
	Price float64 `json:"price"`
}

// ZonesConfig contains the radial zone schedule
type ZonesConfig struct {
	// Bands are the pricing bands, inner to outer
	Bands []ZoneBand `json:"bands"`

	// ExtraPerKM is charged per km beyond the last band
	ExtraPerKM float64 `json:"extra_per_km"`

	// ExtraFromKM is where extra-km counting starts
	ExtraFromKM float64 `json:"extra_from_km"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Tariff: TariffConfig{
			ValidateSchema: true,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Sheets: SheetsConfig{
			Worksheet: "logs",
		},
		Storage: StorageConfig{
			Backend: "memory",
		},
		Zones: ZonesConfig{
			Bands: []ZoneBand{
				{LimitKM: 3, Price: 25},
				{LimitKM: 5, Price: 35},
				{LimitKM: 10, Price: 50},
				{LimitKM: 20, Price: 70},
			},
			ExtraPerKM: 1,
			// Extra kilometers are counted from the second band boundary,
			// matching the published tariff card.
			ExtraFromKM: 5,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
