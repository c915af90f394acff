package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var (
	globalConfig     *Config      //nolint:gochecknoglobals // Singleton pattern for configuration
	globalConfigMu   sync.RWMutex //nolint:gochecknoglobals // Protects globalConfig
	globalConfigInit bool         //nolint:gochecknoglobals // Tracks if global config has been initialized
)

// InitGlobalConfig loads the global configuration once.
func InitGlobalConfig() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	if globalConfigInit {
		return
	}
	globalConfig = New()
	globalConfigInit = true
}

// ResetGlobalConfigForTest drops the global config so the next access
// reloads it.
func ResetGlobalConfigForTest() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	globalConfig = nil
	globalConfigInit = false
}

// GetGlobalConfig returns the global configuration, initializing it if needed.
func GetGlobalConfig() *Config {
	InitGlobalConfig()

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// GetDefaultOutputFormat returns the configured default output format.
func GetDefaultOutputFormat() string {
	return GetGlobalConfig().Output.DefaultFormat
}

// GetConfigDir returns $CARBONWISE_HOME or ~/.carbonwise.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName), nil
}

// EnsureConfigDir creates the configuration directory if needed.
func EnsureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}
