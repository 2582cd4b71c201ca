// Config loading for the tabula CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend    = "backend"
	cfgKeyDataDir    = "data_dir"
	cfgKeyListenAddr = "listen_addr"
	cfgKeyLogLevel   = "log_level"
	cfgKeyLogPretty  = "log_pretty"

	defaultBackend    = "sqlite"
	defaultListenAddr = "127.0.0.1:8713"
	defaultLogLevel   = "info"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Tabula configuration

# Backend selection
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Address the API server listens on
listen_addr: 127.0.0.1:8713

# Logging
log_level: info
log_pretty: false
`

// configView wraps viper so subcommands read settings without touching
// viper directly.
type configView struct {
	v *viper.Viper
}

func (c configView) listenAddr() string { return c.v.GetString(cfgKeyListenAddr) }
func (c configView) logPretty() bool    { return c.v.GetBool(cfgKeyLogPretty) }

// logLevel returns the effective log level: --log-level flag > config.yaml.
func (c configView) logLevel() string {
	if flagLogLevel != "" {
		return flagLogLevel
	}
	return c.v.GetString(cfgKeyLogLevel)
}

// loadConfig reads config.yaml from the resolved config directory using Viper.
// It creates the config directory and a default config.yaml on first run.
// A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyListenAddr, defaultListenAddr)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
