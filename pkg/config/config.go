// Package config provides configuration utilities for the title card packages.
package config

import (
	"os"
	"path/filepath"
)

// GetDataPath returns the data directory path.
// It checks for DATA_PATH environment variable, otherwise uses a default.
func GetDataPath() string {
	if path := os.Getenv("DATA_PATH"); path != "" {
		return path
	}

	// Default to current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return filepath.Join(cwd, ".data")
}

// GetCardTypePath returns the directory the host scans for installed style
// packages. It checks for CARD_TYPE_PATH environment variable, otherwise
// uses a default.
func GetCardTypePath() string {
	if path := os.Getenv("CARD_TYPE_PATH"); path != "" {
		return path
	}

	return filepath.Join(GetDataPath(), "card_types")
}

// GetCardOutputPath returns the directory rendered cards are written to.
// It checks for CARD_OUTPUT_PATH environment variable, otherwise uses a
// default.
func GetCardOutputPath() string {
	if path := os.Getenv("CARD_OUTPUT_PATH"); path != "" {
		return path
	}

	return filepath.Join(GetDataPath(), "cards")
}

// GetSourcePath returns the directory episode source images are read from.
// It checks for SOURCE_PATH environment variable, otherwise uses a default.
func GetSourcePath() string {
	if path := os.Getenv("SOURCE_PATH"); path != "" {
		return path
	}

	return filepath.Join(GetDataPath(), "source")
}
