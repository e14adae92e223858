// Package render serializes highlighted document trees as HTML, styled
// terminal text, a YAML tree or a compact debug dump.
package render

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdhighlight/pkg/doctree"
)

// Renderer writes a document tree to the configured output.
type Renderer interface {
	Render(ctx context.Context, root *doctree.Node) error
}

// New creates a Renderer for the specified options.
//
//nolint:ireturn // Returns the renderer for the selected format
func New(opts Options) (Renderer, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatHTML
	}

	switch format {
	case FormatHTML:
		return NewHTMLRenderer(opts), nil
	case FormatANSI:
		return NewANSIRenderer(opts), nil
	case FormatTree:
		return NewTreeRenderer(opts), nil
	case FormatDump:
		return NewDumpRenderer(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
