/*
Package config manages TOML config for chemseek services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/veldt-labs/chemseek/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Search SearchConfig `toml:"search"`
	Client ClientConfig `toml:"client"`
	CLI    CliConfig    `toml:"cli"`
}

// SearchConfig has incremental-search component options.
type SearchConfig struct {
	DebounceMs   int  `toml:"debounce_ms"`
	MaxLimit     int  `toml:"max_limit"`
	MinQuery     int  `toml:"min_query"`
	MaxQuery     int  `toml:"max_query"`
	EnableFilter bool `toml:"enable_filter"`
}

// ClientConfig holds remote search endpoint options.
type ClientConfig struct {
	BaseURL       string  `toml:"base_url"`
	TimeoutMs     int     `toml:"timeout_ms"`
	Retries       int     `toml:"retries"`
	MinSimilarity float64 `toml:"min_similarity"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int `toml:"default_limit"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "chemseek")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "chemseek")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/chemseek/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			DebounceMs:   300,
			MaxLimit:     24,
			MinQuery:     1,
			MaxQuery:     60,
			EnableFilter: true,
		},
		Client: ClientConfig{
			BaseURL:       "http://localhost:8080",
			TimeoutMs:     5000,
			Retries:       3,
			MinSimilarity: 0.70,
		},
		CLI: CliConfig{
			DefaultLimit: 10,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages whatever valid sections a broken TOML file holds
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	parsed, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if searchSection, ok := utils.ExtractSection(parsed, "search"); ok {
		extractSearchConfig(searchSection, &config.Search)
	}
	if clientSection, ok := utils.ExtractSection(parsed, "client"); ok {
		extractClientConfig(clientSection, &config.Client)
	}
	if cliSection, ok := utils.ExtractSection(parsed, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	return config, nil
}

// extractSearchConfig extracts search configuration from a map
func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.ExtractInt64(data, "debounce_ms"); ok {
		search.DebounceMs = val
	}
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		search.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_query"); ok {
		search.MinQuery = val
	}
	if val, ok := utils.ExtractInt64(data, "max_query"); ok {
		search.MaxQuery = val
	}
	if val, ok := utils.ExtractBool(data, "enable_filter"); ok {
		search.EnableFilter = val
	}
}

// extractClientConfig extracts remote endpoint configuration from a map
func extractClientConfig(data map[string]any, client *ClientConfig) {
	if val, ok := utils.ExtractString(data, "base_url"); ok {
		client.BaseURL = val
	}
	if val, ok := utils.ExtractInt64(data, "timeout_ms"); ok {
		client.TimeoutMs = val
	}
	if val, ok := utils.ExtractInt64(data, "retries"); ok {
		client.Retries = val
	}
	if val, ok := utils.ExtractFloat64(data, "min_similarity"); ok {
		client.MinSimilarity = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	config := DefaultConfig()
	return utils.SaveTOMLFile(config, defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
