package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// API settings for the remote invoice service
	API APIConfig `yaml:"api"`

	// UI settings (persisted theme preference)
	UI UIConfig `yaml:"ui"`

	// Invoice defaults
	Invoice InvoiceConfig `yaml:"invoice"`

	// Local drafts database
	Database DatabaseConfig `yaml:"database"`

	// Log settings
	Log LogConfig `yaml:"log"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`        // e.g. http://localhost:3001/api
	TimeoutSeconds int    `yaml:"timeout_seconds"` // per-request timeout
}

type UIConfig struct {
	Theme string `yaml:"theme"` // "light" or "dark"
}

type InvoiceConfig struct {
	DefaultTerms string `yaml:"default_terms"` // Payment terms for new invoices
	OutputDir    string `yaml:"output_dir"`    // Directory for exported PDFs
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to the encrypted drafts database
}

type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"` // debug, info, warn, error
}

// DarkMode reports the persisted theme preference
func (c *Config) DarkMode() bool {
	return c.UI.Theme == "dark"
}

// SetDarkMode updates the in-memory preference. Callers persist it with Save.
func (c *Config) SetDarkMode(dark bool) {
	if dark {
		c.UI.Theme = "dark"
	} else {
		c.UI.Theme = "light"
	}
}

// DefaultConfigPath returns ~/.config/billfold/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "billfold", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "billfold", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	confDir := filepath.Join(homeDir, ".config", "billfold")

	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:3001/api",
			TimeoutSeconds: 30,
		},
		UI: UIConfig{
			Theme: "light",
		},
		Invoice: InvoiceConfig{
			DefaultTerms: "Net 30 Days",
			OutputDir:    filepath.Join(confDir, "exports"),
		},
		Database: DatabaseConfig{
			Path: filepath.Join(confDir, "billfold.db"),
		},
		Log: LogConfig{
			Path:  filepath.Join(confDir, "billfold.log"),
			Level: "info",
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the directories for exports, the database, and logs
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{
		filepath.Dir(c.Database.Path),
		filepath.Dir(c.Log.Path),
		c.Invoice.OutputDir,
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
