package configloader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/yaklabco/mdhighlight/pkg/config"
)

// envVarPrefix is the prefix for all mdhighlight environment variables.
const envVarPrefix = "MDHIGHLIGHT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FLAVOR":          {field: "flavor", typ: envTypeString, description: "Markdown flavor: commonmark or gfm"},
	"INPUT":           {field: "input", typ: envTypeString, description: "Input format: markdown or tree"},
	"FORMAT":          {field: "format", typ: envTypeString, description: "Output format: html, ansi, tree, or dump"},
	"STYLE":           {field: "style", typ: envTypeString, description: "Chroma style for terminal colors"},
	"COLOR":           {field: "color", typ: envTypeString, description: "Colorize output: auto, always, or never"},
	"CLASS_PREFIX":    {field: "class_prefix", typ: envTypeString, description: "Prefix for token and line classes"},
	"DETECT_LANGUAGE": {field: "detect_language", typ: envTypeBool, description: "Detect languages of unlabeled code blocks"},
	"MULTILINE":       {field: "multiline", typ: envTypeBool, description: "Wrap highlighted lines in line spans"},
	"NESTING":         {field: "nesting", typ: envTypeBool, description: "Nest tokens in category spans"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDHIGHLIGHT_ (e.g., MDHIGHLIGHT_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "input":
		cfg.Input = config.InputFormat(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "style":
		cfg.Style = value
	case "color":
		cfg.Color = value
	case "class_prefix":
		cfg.ClassPrefix = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "detect_language":
		cfg.DetectLanguage = config.Bool(value)
	case "multiline":
		cfg.Multiline = config.Bool(value)
	case "nesting":
		cfg.Nesting = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
