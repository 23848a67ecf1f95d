package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Paintersrp/dictcheck/internal/constants"
)

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

// EnsureConfigExists creates an empty settings file at configPath when none
// exists yet, so first runs start from the defaults.
func EnsureConfigExists(configPath string) error {
	if configPath == "" {
		return &ConfigInitError{msg: "config path cannot be empty"}
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		file, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		file.Close()
	} else if err != nil {
		return fmt.Errorf("failed to check config file existence: %w", err)
	}

	return nil
}
