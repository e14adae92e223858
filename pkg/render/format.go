package render

import "fmt"

// Format represents an output format.
type Format string

// Output formats supported by the renderers.
const (
	FormatHTML Format = "html"
	FormatANSI Format = "ansi"
	FormatTree Format = "tree"
	FormatDump Format = "dump"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	switch formatStr {
	case "html", "":
		return FormatHTML, nil
	case "ansi":
		return FormatANSI, nil
	case "tree":
		return FormatTree, nil
	case "dump":
		return FormatDump, nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: html, ansi, tree, dump", formatStr)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatHTML, FormatANSI, FormatTree, FormatDump:
		return true
	default:
		return false
	}
}
