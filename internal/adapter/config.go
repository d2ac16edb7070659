package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "cinesearch"

// DefaultOMDbURL is the public OMDb endpoint
const DefaultOMDbURL = "https://www.omdbapi.com/"

// Config holds all application configuration
type Config struct {
	OMDb    OMDbConfig    `mapstructure:"omdb"`
	Storage StorageConfig `mapstructure:"storage"`
	Browser BrowserConfig `mapstructure:"browser"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// OMDbConfig holds movie catalog configuration
type OMDbConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"` // 0 disables the limiter
	Retries           uint          `mapstructure:"retries"`             // Attempts per request, including the first
}

// StorageConfig holds on-device storage configuration
type StorageConfig struct {
	Dir string `mapstructure:"dir"` // Empty keeps the watchlist in memory only
}

// BrowserConfig holds the command used to open web pages
type BrowserConfig struct {
	Command string   `mapstructure:"command"` // Empty uses the system default
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		OMDb: OMDbConfig{
			BaseURL:           DefaultOMDbURL,
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
			Retries:           3,
		},
		Storage: StorageConfig{
			Dir: DefaultDataPath(),
		},
		Browser: BrowserConfig{
			Args: []string{},
		},
		Logging: LoggingConfig{
			File:       filepath.Join(DefaultDataPath(), appName+".log"),
			Level:      "INFO",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}
}

// DefaultDataPath returns the directory holding the database and log for the current OS
func DefaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// setDefaults registers every key so env overrides apply even without a config file
func setDefaults(cfg *Config) {
	viper.SetDefault("omdb.api_key", cfg.OMDb.APIKey)
	viper.SetDefault("omdb.base_url", cfg.OMDb.BaseURL)
	viper.SetDefault("omdb.timeout", cfg.OMDb.Timeout)
	viper.SetDefault("omdb.requests_per_second", cfg.OMDb.RequestsPerSecond)
	viper.SetDefault("omdb.retries", cfg.OMDb.Retries)
	viper.SetDefault("storage.dir", cfg.Storage.Dir)
	viper.SetDefault("browser.command", cfg.Browser.Command)
	viper.SetDefault("browser.args", cfg.Browser.Args)
	viper.SetDefault("logging.file", cfg.Logging.File)
	viper.SetDefault("logging.level", cfg.Logging.Level)
	viper.SetDefault("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", cfg.Logging.MaxBackups)
}

// LoadConfig loads configuration from file and environment.
// An empty path searches the default config directory and the working directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(cfg)

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(defaultConfigPath())
		viper.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. CINESEARCH_OMDB_API_KEY
	viper.SetEnvPrefix(strings.ToUpper(appName))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Storage.Dir = expandHome(cfg.Storage.Dir)
	cfg.Logging.File = expandHome(cfg.Logging.File)
	return cfg, nil
}

// ConfigFile returns the file SaveConfig writes to
func ConfigFile() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// SaveConfig saves the configuration to the file it was loaded from,
// or the default location when none was found
func SaveConfig(cfg *Config) error {
	configFile := ConfigFile()

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("omdb.api_key", cfg.OMDb.APIKey)
	viper.Set("omdb.base_url", cfg.OMDb.BaseURL)
	viper.Set("omdb.timeout", cfg.OMDb.Timeout.String())
	viper.Set("omdb.requests_per_second", cfg.OMDb.RequestsPerSecond)
	viper.Set("omdb.retries", cfg.OMDb.Retries)

	viper.Set("storage.dir", cfg.Storage.Dir)

	viper.Set("browser.command", cfg.Browser.Command)
	viper.Set("browser.args", cfg.Browser.Args)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)
	viper.Set("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	viper.Set("logging.max_backups", cfg.Logging.MaxBackups)

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if an OMDb API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.OMDb.APIKey) != ""
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
