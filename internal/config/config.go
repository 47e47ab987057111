package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jfmyers9/srfsongs/pkg/srf"
	"github.com/spf13/viper"
)

// Store backends
const (
	StoreCSV    = "csv"
	StoreSQLite = "sqlite"
)

// Config holds application configuration
type Config struct {
	// Credential store backend: "csv" (default) or "sqlite"
	Store string

	// Path to the CSV credential table
	// Default: "users.csv"
	UsersFile string

	// Path to the SQLite credential database (store: sqlite)
	SQLitePath string

	// Pad or truncate song lines to this many columns (0 = off)
	OutputWidth int

	// Log level (debug, info, warn, error) and optional log file
	LogLevel string
	LogFile  string

	Auth AuthConfig
	Feed FeedConfig
	TUI  TUIConfig
}

// AuthConfig holds login settings
type AuthConfig struct {
	MaxAttempts int
}

// FeedConfig holds song list endpoint settings
type FeedConfig struct {
	URL string

	// Request timeout in seconds (0 = no timeout)
	Timeout int
}

// TUIConfig holds full-screen viewer settings
type TUIConfig struct {
	// Refresh interval in seconds (0 = manual refresh only)
	RefreshInterval int
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("store", StoreCSV)
	v.SetDefault("users_file", "users.csv")
	v.SetDefault("sqlite_path", "users.db")
	v.SetDefault("output_width", 0)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_file", "")
	v.SetDefault("auth.max_attempts", 5)
	v.SetDefault("feed.url", srf.DefaultURL)
	v.SetDefault("feed.timeout", 0)
	v.SetDefault("tui.refresh_interval", 30)

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables, e.g. SRFSONGS_FEED_URL
	v.SetEnvPrefix("SRFSONGS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Map config to struct
	cfg := &Config{
		Store:       v.GetString("store"),
		UsersFile:   v.GetString("users_file"),
		SQLitePath:  v.GetString("sqlite_path"),
		OutputWidth: v.GetInt("output_width"),
		LogLevel:    v.GetString("log_level"),
		LogFile:     v.GetString("log_file"),
		Auth: AuthConfig{
			MaxAttempts: v.GetInt("auth.max_attempts"),
		},
		Feed: FeedConfig{
			URL:     v.GetString("feed.url"),
			Timeout: v.GetInt("feed.timeout"),
		},
		TUI: TUIConfig{
			RefreshInterval: v.GetInt("tui.refresh_interval"),
		},
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "srfsongs")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// Save writes configuration to file
func (c *Config) Save() error {
	v := viper.New()

	configFile := filepath.Join(getConfigDir(), "config.yaml")

	v.Set("store", c.Store)
	v.Set("users_file", c.UsersFile)
	v.Set("sqlite_path", c.SQLitePath)
	v.Set("output_width", c.OutputWidth)
	v.Set("log_level", c.LogLevel)
	v.Set("log_file", c.LogFile)
	v.Set("auth.max_attempts", c.Auth.MaxAttempts)
	v.Set("feed.url", c.Feed.URL)
	v.Set("feed.timeout", c.Feed.Timeout)
	v.Set("tui.refresh_interval", c.TUI.RefreshInterval)

	return v.WriteConfigAs(configFile)
}
