package render

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdhighlight/pkg/doctree"
)

const (
	quoteBar   = "│ "
	ruleWidth  = 20
	bullet     = "• "
	cellSep    = " │ "
	imageLabel = "image: "
)

// ANSIRenderer writes a document tree as styled terminal text. Token classes
// are colored with a chroma style palette.
type ANSIRenderer struct {
	w       io.Writer
	color   bool
	base    lipgloss.Style
	styles  *Styles
	palette *Palette
}

// NewANSIRenderer creates a terminal renderer.
func NewANSIRenderer(opts Options) *ANSIRenderer {
	color := IsColorEnabled(opts.Color, opts.Writer)
	r := NewTermRenderer(opts.Writer, color)

	styleName := opts.Style
	if styleName == "" {
		styleName = DefaultStyle
	}

	return &ANSIRenderer{
		w:       opts.Writer,
		color:   color,
		base:    r.NewStyle(),
		styles:  NewStyles(r),
		palette: NewPalette(r, styleName, opts.ClassPrefix),
	}
}

// Render implements Renderer.
func (r *ANSIRenderer) Render(_ context.Context, root *doctree.Node) error {
	var out string
	if root.Element == doctree.ElementDocument {
		out = r.blocks(root.Children, "\n\n")
	} else {
		out = r.block(root)
	}

	if _, err := io.WriteString(r.w, out+"\n"); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func (r *ANSIRenderer) blocks(nodes []*doctree.Node, sep string) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, r.block(n))
	}
	return strings.Join(parts, sep)
}

func (r *ANSIRenderer) block(n *doctree.Node) string {
	if n.IsText() {
		return r.inline([]*doctree.Node{n}, r.base)
	}

	switch n.Element {
	case doctree.ElementParagraph:
		return r.inline(n.Children, r.base)

	case doctree.ElementCodeBlock:
		return strings.TrimSuffix(r.inline(n.Children, r.base), "\n")

	case doctree.ElementBlockquote:
		return prefixLines(r.blocks(n.Children, "\n\n"), r.paint(r.styles.Quote, quoteBar))

	case doctree.ElementList, doctree.ElementOrderedList:
		return r.list(n)

	case doctree.ElementThematicBreak:
		return r.paint(r.styles.Rule, strings.Repeat("─", ruleWidth))

	case doctree.ElementTable:
		return r.table(n)

	case doctree.ElementRaw:
		return strings.TrimSuffix(n.Flatten(), "\n")
	}

	if level := headingLevel(n.Element); level > 0 {
		marker := strings.Repeat("#", level) + " "
		return r.paint(r.styles.Heading, marker) + r.inline(n.Children, r.styles.Heading)
	}

	return r.inline([]*doctree.Node{n}, r.base)
}

func (r *ANSIRenderer) list(n *doctree.Node) string {
	start := 1
	if v, ok := n.Attr("start"); ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			start = parsed
		}
	}

	lines := make([]string, 0, len(n.Children))
	for i, item := range n.Children {
		marker := bullet
		if n.Element == doctree.ElementOrderedList {
			marker = strconv.Itoa(start+i) + ". "
		}

		var content string
		if hasBlockChild(item) {
			content = r.blocks(item.Children, "\n")
		} else {
			content = r.inline(item.Children, r.base)
		}

		indent := strings.Repeat(" ", len([]rune(marker)))
		lines = append(lines, r.paint(r.styles.Marker, marker)+indentContinuation(content, indent))
	}
	return strings.Join(lines, "\n")
}

func (r *ANSIRenderer) table(n *doctree.Node) string {
	var rows []string
	for _, row := range doctree.FindAll(n, func(c *doctree.Node) bool { return c.Element == doctree.ElementTableRow }) {
		cells := make([]string, 0, len(row.Children))
		for _, cell := range row.Children {
			style := r.base
			if cell.Element == doctree.ElementTableHeading {
				style = r.styles.Strong
			}
			cells = append(cells, r.inline(cell.Children, style))
		}
		rows = append(rows, strings.Join(cells, r.paint(r.styles.Rule, cellSep)))
	}
	return strings.Join(rows, "\n")
}

// inline renders inline content. Styles accumulate from outer to inner
// elements and are applied to text leaves only.
func (r *ANSIRenderer) inline(nodes []*doctree.Node, parent lipgloss.Style) string {
	var b strings.Builder
	for _, n := range nodes {
		if n.IsText() {
			b.WriteString(r.paint(parent, n.Text))
			continue
		}

		switch n.Element {
		case doctree.ElementHardBreak:
			// The break's newline is its own text leaf.
		case doctree.ElementImage:
			alt, _ := n.Attr("alt")
			b.WriteString(r.paint(parent, "["+imageLabel+alt+"]"))
		case doctree.ElementCheckbox:
			mark := "[ ] "
			if _, checked := n.Attr("checked"); checked {
				mark = "[x] "
			}
			b.WriteString(r.paint(parent, mark))
		case doctree.ElementRaw:
			b.WriteString(n.Flatten())
		default:
			b.WriteString(r.inline(n.Children, r.styleOf(n).Inherit(parent)))
		}
	}
	return b.String()
}

func (r *ANSIRenderer) styleOf(n *doctree.Node) lipgloss.Style {
	switch n.Element {
	case doctree.ElementEmphasis:
		return r.styles.Emphasis
	case doctree.ElementStrong:
		return r.styles.Strong
	case doctree.ElementStrikethrough:
		return r.styles.Strikethrough
	case doctree.ElementLink:
		return r.styles.Link
	case doctree.ElementCodeSpan:
		if n.Meta.HighlightLanguage != "" {
			return r.base
		}
		return r.styles.Code
	}
	if s, ok := r.palette.Lookup(n.Classes); ok {
		return s
	}
	return r.base
}

// paint applies style to s line by line, leaving line breaks and empty
// lines unstyled. Without color, s is returned unchanged.
func (r *ANSIRenderer) paint(style lipgloss.Style, s string) string {
	if !r.color || s == "" {
		return s
	}

	style = style.TabWidth(lipgloss.NoTabConversion)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func headingLevel(element string) int {
	if len(element) == 2 && element[0] == 'h' && element[1] >= '1' && element[1] <= '6' {
		return int(element[1] - '0')
	}
	return 0
}

func hasBlockChild(n *doctree.Node) bool {
	for _, c := range n.Children {
		switch c.Element {
		case doctree.ElementParagraph, doctree.ElementCodeBlock, doctree.ElementBlockquote,
			doctree.ElementList, doctree.ElementOrderedList, doctree.ElementThematicBreak,
			doctree.ElementTable:
			return true
		}
		if headingLevel(c.Element) > 0 {
			return true
		}
	}
	return false
}

func prefixLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func indentContinuation(s, indent string) string {
	return strings.ReplaceAll(s, "\n", "\n"+indent)
}
