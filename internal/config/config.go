// Package config handles the configuration directory and the config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "streamtasks"

	// ConfigFile is the config filename inside the config directory.
	ConfigFile = "config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. STREAMTASKS_FILEPATH.
	EnvPrefix = "STREAMTASKS"
)

// Defaults.
const (
	DefaultFilepath       = "tasklist.json"
	DefaultSendMessagesAs = "Streamer"
	DefaultLogLevel       = "info"
	DefaultListenAddr     = "127.0.0.1:8787"
	DefaultPollInterval   = 5 * time.Second
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `mapstructure:"-"`

	// Filepath is the task list document.
	Filepath string `mapstructure:"filepath"`

	// SendMessagesAs is the chat account for messages.
	SendMessagesAs string `mapstructure:"send_messages_as"`

	// CommandHelpText overrides the chat help text.
	CommandHelpText string `mapstructure:"command_help_text"`

	// LogLevel is the minimum log level.
	LogLevel string `mapstructure:"log_level"`

	// ListenAddr is the overlay server address.
	ListenAddr string `mapstructure:"listen_addr"`

	// PollInterval is how often the overlay rereads the document.
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// Default returns the configuration used when nothing is configured.
func Default(dir string) *Config {
	return &Config{
		Dir:            dir,
		Filepath:       DefaultFilepath,
		SendMessagesAs: DefaultSendMessagesAs,
		LogLevel:       DefaultLogLevel,
		ListenAddr:     DefaultListenAddr,
		PollInterval:   DefaultPollInterval,
	}
}

// Load reads config.yaml from configDir, applying environment overrides.
// If configDir is empty, uses XDG_CONFIG_HOME/streamtasks or $HOME/.config/streamtasks.
// A missing config file is not an error.
func Load(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := Default(dir)

	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, ConfigFile))
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("filepath", cfg.Filepath)
	v.SetDefault("send_messages_as", cfg.SendMessagesAs)
	v.SetDefault("command_help_text", cfg.CommandHelpText)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("listen_addr", cfg.ListenAddr)
	v.SetDefault("poll_interval", cfg.PollInterval)

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Join(dir, ConfigFile), err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("invalid config: poll_interval must be positive, got %s", cfg.PollInterval)
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Path returns the path to the config file.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// HasFile checks if the config file exists.
func (c *Config) HasFile() bool {
	_, err := os.Stat(c.Path())
	return err == nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}
