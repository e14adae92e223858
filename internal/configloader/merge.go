package configloader

import "github.com/yaklabco/mdhighlight/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Strings: override overwrites base if non-empty
//   - Boolean options: override overwrites base if set, so false can win
//   - Nil values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Input != "" {
		result.Input = override.Input
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Style != "" {
		result.Style = override.Style
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.ClassPrefix != "" {
		result.ClassPrefix = override.ClassPrefix
	}
	if override.Output != "" {
		result.Output = override.Output
	}

	if override.DetectLanguage != nil {
		result.DetectLanguage = config.Bool(*override.DetectLanguage)
	}
	if override.Multiline != nil {
		result.Multiline = config.Bool(*override.Multiline)
	}
	if override.Nesting != nil {
		result.Nesting = config.Bool(*override.Nesting)
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
