package render

import (
	"io"
	"os"
)

// DefaultStyle is the chroma style used for terminal output.
const DefaultStyle = "monokai"

// Options configures renderer behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized terminal output.
	// Values: "auto" (default), "always", "never"
	Color string

	// Style names the chroma style whose colors are used for token classes
	// in terminal output.
	Style string

	// ClassPrefix is the prefix the highlighter applied to token classes.
	ClassPrefix string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer: os.Stdout,
		Format: FormatHTML,
		Color:  "auto",
		Style:  DefaultStyle,
	}
}
