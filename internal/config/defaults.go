package config

import (
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/uetest/internal/testset"
)

// Default configuration values.
const (
	DefaultMalformed = string(testset.MalformedReject)
	DefaultLogLevel  = "info"
)

// ApplyDefaults fills in default values for unset configuration fields.
// Workdir is always made absolute.
func ApplyDefaults(cfg *Config) error {
	if cfg.Workdir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		cfg.Workdir = wd
	}
	wd, err := filepath.Abs(cfg.Workdir)
	if err != nil {
		return err
	}
	cfg.Workdir = wd
	if cfg.Malformed == "" {
		cfg.Malformed = DefaultMalformed
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	return nil
}
