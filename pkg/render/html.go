package render

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/mdhighlight/pkg/doctree"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// HTMLRenderer writes a document tree as an HTML fragment.
type HTMLRenderer struct {
	w io.Writer
}

// NewHTMLRenderer creates an HTML renderer.
func NewHTMLRenderer(opts Options) *HTMLRenderer {
	return &HTMLRenderer{w: opts.Writer}
}

// Render writes root as HTML. A document root contributes no element of its
// own; each top-level block is followed by a newline.
func (r *HTMLRenderer) Render(_ context.Context, root *doctree.Node) error {
	bw := bufio.NewWriterSize(r.w, bufWriterSize)

	nodes := []*doctree.Node{root}
	if root.Element == doctree.ElementDocument {
		nodes = root.Children
	}

	for _, n := range nodes {
		if err := html.Render(bw, ToHTML(n)); err != nil {
			return fmt.Errorf("render html: %w", err)
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return fmt.Errorf("render html: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

// ToHTML converts a document tree to an html.Node tree. Raw elements become
// raw nodes written without escaping.
func ToHTML(n *doctree.Node) *html.Node {
	if n.IsText() {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}
	if n.Element == doctree.ElementRaw {
		return &html.Node{Type: html.RawNode, Data: n.Flatten()}
	}

	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Element,
		DataAtom: atom.Lookup([]byte(n.Element)),
	}
	if n.ID != "" {
		el.Attr = append(el.Attr, html.Attribute{Key: "id", Val: n.ID})
	}
	if len(n.Classes) > 0 {
		el.Attr = append(el.Attr, html.Attribute{Key: "class", Val: n.ClassAttr()})
	}
	for _, key := range slices.Sorted(maps.Keys(n.Attrs)) {
		el.Attr = append(el.Attr, html.Attribute{Key: key, Val: n.Attrs[key]})
	}

	for _, child := range n.Children {
		el.AppendChild(ToHTML(child))
	}
	return el
}
