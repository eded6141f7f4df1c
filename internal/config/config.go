// Package config handles dash's configuration and data file paths.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"

	"github.com/dashtrack/dash/internal/timeutil"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Settings SettingsConfig `mapstructure:"settings"`
		Display  DisplayConfig  `mapstructure:"display"`
	}

	// SettingsConfig holds behavioural settings.
	SettingsConfig struct {
		// Cmd is an arbitrary command executed after each state-changing
		// command (start, end, project, remove-last).
		Cmd string `mapstructure:"cmd"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		TwentyFourHour bool `mapstructure:"24hr_clock"`
		DarkTheme      bool `mapstructure:"dark_theme"`
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.2.0"

var (
	configDir      = "dash"
	configFileName = "config.yml"
	dbFileName     = "dash.db"
	logFileName    = "dash.log"
	dbFilePath     string
	configFilePath string
	logFilePath    string
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

func Dir() string {
	return configDir
}

func DBFilePath() string {
	return dbFilePath
}

func LogFilePath() string {
	return logFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

// InitializePaths resolves the per-user config, database, and log file
// paths, creating parent directories as needed. A DASH_ENV value
// suffixes all file names so tests and scratch environments never
// touch real data.
func InitializePaths() {
	dashEnv := strings.TrimSpace(os.Getenv("DASH_ENV"))
	if dashEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", dashEnv)
		dbFileName = fmt.Sprintf("dash_%s.db", dashEnv)
		logFileName = fmt.Sprintf("dash_%s.log", dashEnv)
	}

	var err error

	configFilePath, err = xdg.ConfigFile(filepath.Join(configDir, configFileName))
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath, err = xdg.DataFile(filepath.Join(configDir, dbFileName))
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	logFilePath, err = xdg.DataFile(filepath.Join(configDir, "log", logFileName))
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

// TimestampFormat returns the layout used to render record timestamps.
func (c *Config) TimestampFormat() string {
	if c.Display.TwentyFourHour {
		return timeutil.Format24Hour
	}

	return timeutil.Format12Hour
}

// New creates a new Config with default values and applies options.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("config option error: %w", err)
		}
	}

	return cfg, nil
}

// Get loads the user configuration from the resolved config file path,
// writing a default config file on first run.
func Get() (*Config, error) {
	return New(WithViperConfig(configFilePath))
}
