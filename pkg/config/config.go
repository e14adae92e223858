// Package config defines core configuration types for mdhighlight.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}

// InputFormat specifies how the input document is read.
type InputFormat string

const (
	// InputMarkdown parses the input as Markdown.
	InputMarkdown InputFormat = "markdown"

	// InputTree reads a YAML document tree.
	InputTree InputFormat = "tree"
)

// IsValid returns true if the input format is known.
func (f InputFormat) IsValid() bool {
	switch f {
	case InputMarkdown, InputTree:
		return true
	default:
		return false
	}
}

// OutputFormat specifies the rendering of the highlighted tree.
type OutputFormat string

const (
	FormatHTML OutputFormat = "html"
	FormatANSI OutputFormat = "ansi"
	FormatTree OutputFormat = "tree"
	FormatDump OutputFormat = "dump"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatHTML, FormatANSI, FormatTree, FormatDump:
		return true
	default:
		return false
	}
}

// Color modes for terminal output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// Config is the root configuration structure for mdhighlight.
//
// Boolean options are pointers so that a file or flag can turn an option off
// over a value set by a lower-precedence source.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor,omitempty"`

	// Input selects how the input is read ("markdown" or "tree").
	Input InputFormat `yaml:"input,omitempty"`

	// Format selects the output rendering.
	Format OutputFormat `yaml:"format,omitempty"`

	// Style names the chroma style used for terminal colors.
	Style string `yaml:"style,omitempty"`

	// Color controls colorized terminal output: auto, always, never.
	Color string `yaml:"color,omitempty"`

	// ClassPrefix is prepended to every token and line class.
	ClassPrefix string `yaml:"class_prefix,omitempty"`

	// DetectLanguage enables language detection for code blocks without an
	// info string.
	DetectLanguage *bool `yaml:"detect_language,omitempty"`

	// Multiline enables line re-segmentation of highlighted blocks.
	Multiline *bool `yaml:"multiline,omitempty"`

	// Nesting makes the tokenizer wrap runs of one token category in a
	// category span.
	Nesting *bool `yaml:"nesting,omitempty"`

	// CLI-level options (not persisted to config files).

	// Output is the destination file; empty means standard output.
	Output string `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:         FlavorGFM,
		Input:          InputMarkdown,
		Format:         FormatHTML,
		Style:          DefaultStyle,
		Color:          ColorAuto,
		DetectLanguage: Bool(false),
		Multiline:      Bool(true),
		Nesting:        Bool(false),
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// BoolValue dereferences p, returning def when p is nil.
func BoolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// DetectLanguageEnabled reports whether language detection is on.
func (c *Config) DetectLanguageEnabled() bool {
	return BoolValue(c.DetectLanguage, false)
}

// MultilineEnabled reports whether line re-segmentation is on.
func (c *Config) MultilineEnabled() bool {
	return BoolValue(c.Multiline, true)
}

// NestingEnabled reports whether category nesting is on.
func (c *Config) NestingEnabled() bool {
	return BoolValue(c.Nesting, false)
}
