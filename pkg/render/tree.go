package render

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/mdhighlight/pkg/doctree"
)

// TreeRenderer writes the document tree as YAML, readable again with
// doctree.FromYAML.
type TreeRenderer struct {
	w io.Writer
}

// NewTreeRenderer creates a YAML tree renderer.
func NewTreeRenderer(opts Options) *TreeRenderer {
	return &TreeRenderer{w: opts.Writer}
}

// Render implements Renderer.
func (r *TreeRenderer) Render(_ context.Context, root *doctree.Node) error {
	data, err := doctree.ToYAML(root)
	if err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}
	if _, err := r.w.Write(data); err != nil {
		return fmt.Errorf("write tree: %w", err)
	}
	return nil
}

// DumpRenderer writes the single-line debug form of the tree.
type DumpRenderer struct {
	w io.Writer
}

// NewDumpRenderer creates a dump renderer.
func NewDumpRenderer(opts Options) *DumpRenderer {
	return &DumpRenderer{w: opts.Writer}
}

// Render implements Renderer.
func (r *DumpRenderer) Render(_ context.Context, root *doctree.Node) error {
	if _, err := fmt.Fprintln(r.w, doctree.Dump(root)); err != nil {
		return fmt.Errorf("write dump: %w", err)
	}
	return nil
}
