package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	uerrors "github.com/AndreyAkinshin/uetest/internal/errors"
	"github.com/AndreyAkinshin/uetest/internal/logging"
	"github.com/AndreyAkinshin/uetest/internal/testset"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors and returns warnings for
// non-fatal issues. Errors have KindValidation.
func Validate(cfg *Config) (warnings []string, err error) {
	checks := []func(*Config) *ValidationError{
		validateEditor,
		validateProject,
		validateTestList,
		validateTimeout,
		validateMalformed,
		validateLogLevel,
	}
	for _, check := range checks {
		if ve := check(cfg); ve != nil {
			return nil, &uerrors.Error{Kind: uerrors.KindValidation, Message: ve.Error(), Cause: ve}
		}
	}

	if cfg.Project != "" && !strings.EqualFold(filepath.Ext(cfg.Project), ".uproject") {
		warnings = append(warnings, fmt.Sprintf("project %q does not have a .uproject extension", cfg.Project))
	}
	if cfg.Report.Prefix != "" && cfg.Report.Bucket == "" {
		warnings = append(warnings, "report.prefix is set without report.bucket (ignored)")
	}
	return warnings, nil
}

func validateEditor(cfg *Config) *ValidationError {
	if cfg.EnginePath == "" && cfg.Editor == "" {
		return &ValidationError{Field: "engine_path", Message: "is required (or set editor)"}
	}
	return nil
}

func validateProject(cfg *Config) *ValidationError {
	if cfg.Project == "" {
		return &ValidationError{Field: "project", Message: "is required"}
	}
	return nil
}

func validateTestList(cfg *Config) *ValidationError {
	if strings.TrimSpace(cfg.TestList) == "" && cfg.TestListFile == "" {
		return &ValidationError{Field: "test_list", Message: "is required (or set test_list_file)"}
	}
	return nil
}

func validateTimeout(cfg *Config) *ValidationError {
	if cfg.Timeout == "" {
		return nil
	}
	d, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return &ValidationError{Field: "timeout", Message: fmt.Sprintf("must be a duration such as 30m: %v", err)}
	}
	if d < 0 {
		return &ValidationError{Field: "timeout", Message: "must not be negative"}
	}
	return nil
}

func validateMalformed(cfg *Config) *ValidationError {
	if _, ok := testset.ParseMalformedPolicy(cfg.Malformed); !ok {
		return &ValidationError{Field: "malformed", Message: `must be "reject" or "skip"`}
	}
	return nil
}

func validateLogLevel(cfg *Config) *ValidationError {
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return &ValidationError{Field: "log_level", Message: "must be debug, info, warn or error"}
	}
	return nil
}
