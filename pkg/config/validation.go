package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate validates the configuration using struct tags and custom rules.
//
// This function uses go-playground/validator for declarative validation
// via struct tags, with additional custom validation for complex rules
// that cannot be expressed in tags.
//
// Note: Log level normalization is handled in ApplyDefaults, not here.
// Validation accepts both uppercase and lowercase log levels.
//
// Returns an error describing validation failures.
func Validate(cfg *Config) error {
	// Run struct tag validation
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	// Custom validation rules that can't be expressed in tags
	if err := validateCustomRules(cfg); err != nil {
		return err
	}

	return nil
}

// validateCustomRules performs custom validation beyond struct tags.
func validateCustomRules(cfg *Config) error {
	// NFS options are joined with commas into a single option string,
	// so an option containing a comma or whitespace would corrupt it
	for i, opt := range cfg.Mount.NFSOptions {
		if opt == "" {
			return fmt.Errorf("mount.nfs_options[%d]: option must not be empty", i)
		}
		if strings.ContainsAny(opt, ", \t") {
			return fmt.Errorf("mount.nfs_options[%d]: option %q must not contain commas or whitespace", i, opt)
		}
	}

	// Journal needs somewhere to live when enabled
	if cfg.Journal.Enabled && cfg.Journal.DBPath == "" {
		return fmt.Errorf("journal: db_path is required when journal is enabled")
	}

	// Metrics need somewhere to be written when enabled
	if cfg.Metrics.Enabled && cfg.Metrics.TextfilePath == "" {
		return fmt.Errorf("metrics: textfile_path is required when metrics are enabled")
	}

	return nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		// Return the first validation error with context
		if len(validationErrs) > 0 {
			e := validationErrs[0]
			return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
				e.Namespace(), e.Tag(), e.Value())
		}
	}
	return err
}
