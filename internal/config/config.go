package config

import (
	"os"
	"path/filepath"
)

const (
	AppName        = "rangepick"
	ConfigFileName = "config.yaml"
)

// DataDir returns the path to the rangepick data directory (~/.rangepick/)
// Creates the directory if it doesn't exist
// Can be overridden with RANGEPICK_DATA_DIR environment variable (primarily for testing)
func DataDir() (string, error) {
	if dataDir := os.Getenv("RANGEPICK_DATA_DIR"); dataDir != "" {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return "", err
		}
		return dataDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dataDir := filepath.Join(home, "."+AppName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// ConfigPath returns the path to the picker config file (~/.rangepick/config.yaml)
// Can be overridden with RANGEPICK_CONFIG
func ConfigPath() (string, error) {
	if path := os.Getenv("RANGEPICK_CONFIG"); path != "" {
		return path, nil
	}

	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dataDir, ConfigFileName), nil
}

// LogDir returns the path to the log directory (~/.rangepick/logs/)
// Creates the directory if it doesn't exist
func LogDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", err
	}

	return logDir, nil
}
