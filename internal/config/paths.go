package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/classboard/internal/constants"
	"github.com/mrz1836/classboard/internal/errors"
)

// GlobalConfigDir returns the global classboard directory, ~/.classboard.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.ClassboardHome), nil
}

// ProjectConfigDir returns the project configuration directory, relative to
// the working directory.
func ProjectConfigDir() string {
	return constants.ClassboardHome
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// ProjectConfigPath returns the relative path to the project configuration file.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), constants.GlobalConfigName)
}

// StoreDir returns the configured store root, or the global directory.
func (c *Config) StoreDir() (string, error) {
	if c.Store.Dir != "" {
		return c.Store.Dir, nil
	}
	return GlobalConfigDir()
}

// LogFile returns the configured log file path, or the default one under
// the global directory.
func (c *Config) LogFile() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.LogsDir, constants.CLILogFileName), nil
}
