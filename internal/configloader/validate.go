package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/yaklabco/mdhighlight/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "format").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., an unknown style).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownColorModes lists valid color values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownColorModes = map[string]bool{
	config.ColorAuto:   true,
	config.ColorAlways: true,
	config.ColorNever:  true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.addError("flavor", cfg.Flavor,
			fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor))
	}

	if cfg.Input != "" && !cfg.Input.IsValid() {
		result.addError("input", cfg.Input,
			fmt.Sprintf("invalid input %q; must be one of: markdown, tree", cfg.Input))
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format,
			fmt.Sprintf("invalid format %q; must be one of: html, ansi, tree, dump", cfg.Format))
	}

	if cfg.Color != "" && !knownColorModes[cfg.Color] {
		result.addError("color", cfg.Color,
			fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color))
	}

	if strings.ContainsFunc(cfg.ClassPrefix, isClassSeparator) {
		result.addError("class_prefix", cfg.ClassPrefix,
			fmt.Sprintf("invalid class prefix %q; must not contain whitespace or quotes", cfg.ClassPrefix))
	}

	if cfg.Style != "" && !IsValidStyle(cfg.Style) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "style",
			Value:   cfg.Style,
			Message: fmt.Sprintf("unknown style %q; the default style will be used", cfg.Style),
		})
	}

	if cfg.Input == config.InputTree && cfg.DetectLanguageEnabled() {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "detect_language",
			Value:   true,
			Message: "language detection has no effect on tree input",
		})
	}

	return result
}

func (r *ValidationResult) addError(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}

func isClassSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '"', '\'':
		return true
	default:
		return false
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidStyle returns true if name is a registered chroma style.
func IsValidStyle(name string) bool {
	return slices.Contains(styles.Names(), name)
}
