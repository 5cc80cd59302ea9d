package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Shortener ShortenerConfig `yaml:"shortener"`
	Routing   RoutingConfig   `yaml:"routing"`
}

// HTTPConfig contains webhook receiver settings
type HTTPConfig struct {
	Port          int    `yaml:"port"`
	WebhookSecret string `yaml:"webhook_secret"`
}

// ShortenerConfig points at the URL-shortening service; an empty endpoint
// disables shortening
type ShortenerConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// RoutingConfig maps repository slugs to the IRC channels that receive
// their notifications
type RoutingConfig struct {
	DefaultChannels []string            `yaml:"default_channels"`
	Repos           map[string][]string `yaml:"repos"`
}

// ChannelsFor returns the channels configured for a repository, falling
// back to the default channels.
func (r RoutingConfig) ChannelsFor(repo string) []string {
	if channels, ok := r.Repos[repo]; ok && len(channels) > 0 {
		return channels
	}
	return r.DefaultChannels
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port: 8976,
		},
		Routing: RoutingConfig{
			DefaultChannels: []string{"#dev"},
			Repos:           make(map[string][]string),
		},
	}
}

// ConfigDir returns the config directory path (~/.config/gitirc)
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "gitirc"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DataDir returns the data directory path (~/.local/share/gitirc)
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "gitirc"), nil
}

// QueueDir returns the outbound notification spool directory
func QueueDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "queue"), nil
}

// Load reads and parses the config file
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads and parses a config file at an explicit path
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s (run gitirc init to create)", path)
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http port must be between 1 and 65535")
	}

	for _, channel := range c.Routing.DefaultChannels {
		if !validChannel(channel) {
			return fmt.Errorf("invalid default channel %q", channel)
		}
	}
	for repo, channels := range c.Routing.Repos {
		if repo == "" {
			return fmt.Errorf("routing repo name must not be empty")
		}
		for _, channel := range channels {
			if !validChannel(channel) {
				return fmt.Errorf("invalid channel %q for repo %s", channel, repo)
			}
		}
	}

	return nil
}

func validChannel(channel string) bool {
	return strings.HasPrefix(channel, "#") && len(channel) > 1 && !strings.ContainsAny(channel, " ,")
}

// InitConfig creates a default config file and necessary directories
func InitConfig() error {
	configDir, err := ConfigDir()
	if err != nil {
		return err
	}

	dataDir, err := DataDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configPath)
	fmt.Printf("Created data directory at %s\n", dataDir)
	fmt.Println("\nEdit the config file to set the webhook secret and channel routing.")

	return nil
}
