package goldmark

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/mdhighlight/pkg/doctree"
)

// languageClassPrefix marks the language of code elements, as CommonMark
// renderers do.
const languageClassPrefix = "language-"

// mapper converts a goldmark AST into a document tree.
type mapper struct {
	content  []byte
	detector LanguageDetector
}

// mapDocument converts a goldmark document node to a document tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *doctree.Node {
	return doctree.NewDocument(m.mapChildren(gmDoc)...)
}

// mapChildren maps all children of a goldmark node, joining adjacent text.
func (m *mapper) mapChildren(gmParent ast.Node) []*doctree.Node {
	var out []*doctree.Node
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		for _, n := range m.mapNode(child) {
			if last := len(out) - 1; last >= 0 && n.IsText() && out[last].IsText() {
				out[last] = out[last].WithText(out[last].Text + n.Text)
				continue
			}
			out = append(out, n)
		}
	}
	return out
}

func (m *mapper) composite(element string, gmNode ast.Node) *doctree.Node {
	return doctree.NewComposite(element, m.mapChildren(gmNode)...)
}

// mapNode converts a single goldmark node. Transparent containers yield
// their children; text with a trailing line break yields the text and the break.
func (m *mapper) mapNode(gmNode ast.Node) []*doctree.Node {
	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		return one(m.composite(doctree.HeadingElement(gmn.Level), gmn))

	case *ast.Paragraph:
		return one(m.composite(doctree.ElementParagraph, gmn))

	case *ast.TextBlock:
		return m.mapChildren(gmn)

	case *ast.List:
		return one(m.mapList(gmn))

	case *ast.ListItem:
		return one(m.composite(doctree.ElementListItem, gmn))

	case *ast.Blockquote:
		return one(m.composite(doctree.ElementBlockquote, gmn))

	case *ast.FencedCodeBlock:
		return one(m.mapCodeBlock(gmn, string(gmn.Language(m.content))))

	case *ast.CodeBlock:
		return one(m.mapCodeBlock(gmn, ""))

	case *ast.ThematicBreak:
		return one(doctree.NewComposite(doctree.ElementThematicBreak))

	case *ast.HTMLBlock:
		return one(m.mapHTMLBlock(gmn))

	// Inline-level nodes.
	case *ast.Text:
		return m.mapText(gmn)

	case *ast.String:
		return one(doctree.NewText(string(gmn.Value)))

	case *ast.Emphasis:
		if gmn.Level == 2 {
			return one(m.composite(doctree.ElementStrong, gmn))
		}
		return one(m.composite(doctree.ElementEmphasis, gmn))

	case *ast.CodeSpan:
		return one(m.mapCodeSpan(gmn))

	case *ast.Link:
		return one(m.mapLink(gmn))

	case *ast.Image:
		return one(m.mapImage(gmn))

	case *ast.AutoLink:
		return one(m.mapAutoLink(gmn))

	case *ast.RawHTML:
		return one(m.mapRawHTML(gmn))

	// GFM extension nodes.
	case *east.Strikethrough:
		return one(m.composite(doctree.ElementStrikethrough, gmn))

	case *east.TaskCheckBox:
		return one(mapTaskCheckBox(gmn))

	case *east.Table:
		return one(m.mapTable(gmn))

	case *east.TableHeader:
		return one(doctree.NewComposite(doctree.ElementTableHead, m.mapRow(gmn, doctree.ElementTableHeading)))

	case *east.TableRow:
		return one(m.mapRow(gmn, doctree.ElementTableCell))

	default:
		return m.mapChildren(gmNode)
	}
}

func one(n *doctree.Node) []*doctree.Node {
	return []*doctree.Node{n}
}

// mapList converts a goldmark List to ul or ol.
func (m *mapper) mapList(list *ast.List) *doctree.Node {
	if !list.IsOrdered() {
		return m.composite(doctree.ElementList, list)
	}
	node := m.composite(doctree.ElementOrderedList, list)
	if list.Start != 1 {
		node = node.WithAttr("start", strconv.Itoa(list.Start))
	}
	return node
}

// mapCodeBlock converts a code block to pre > code. The code element carries
// the highlight request: the info string language, or a detected language
// when detection is enabled.
func (m *mapper) mapCodeBlock(block ast.Node, language string) *doctree.Node {
	code := m.linesText(block)

	if language == "" && m.detector != nil {
		if detected, ok := m.detector.Detect(code); ok {
			language = detected
		}
	}

	inner := doctree.NewComposite(doctree.ElementCodeSpan, doctree.NewText(code))
	if language != "" {
		inner = inner.
			WithClass(languageClassPrefix + language).
			WithMeta(doctree.Meta{HighlightLanguage: language})
	}

	return doctree.NewComposite(doctree.ElementCodeBlock, inner)
}

func (m *mapper) linesText(block ast.Node) string {
	var b strings.Builder
	lines := block.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		b.Write(seg.Value(m.content))
	}
	return b.String()
}

// mapHTMLBlock keeps block HTML verbatim in a raw element.
func (m *mapper) mapHTMLBlock(block *ast.HTMLBlock) *doctree.Node {
	raw := m.linesText(block)
	if block.HasClosure() {
		raw += string(block.ClosureLine.Value(m.content))
	}
	return doctree.NewComposite(doctree.ElementRaw, doctree.NewText(raw)).
		WithMeta(doctree.Meta{SuppressHighlight: true})
}

// mapText converts a goldmark Text node, followed by its line break if any.
func (m *mapper) mapText(textNode *ast.Text) []*doctree.Node {
	out := []*doctree.Node{doctree.NewText(string(textNode.Value(m.content)))}

	switch {
	case textNode.HardLineBreak():
		out = append(out, doctree.NewComposite(doctree.ElementHardBreak), doctree.NewText("\n"))
	case textNode.SoftLineBreak():
		out = append(out, doctree.NewText("\n"))
	}

	return out
}

// mapCodeSpan converts an inline code span; its content is a single leaf.
func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan) *doctree.Node {
	var b strings.Builder
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			b.Write(c.Value(m.content))
		case *ast.String:
			b.Write(c.Value)
		}
	}
	return doctree.NewComposite(doctree.ElementCodeSpan, doctree.NewText(b.String()))
}

func (m *mapper) mapLink(link *ast.Link) *doctree.Node {
	node := m.composite(doctree.ElementLink, link).WithAttr("href", string(link.Destination))
	if len(link.Title) > 0 {
		node = node.WithAttr("title", string(link.Title))
	}
	return node
}

// mapImage converts an image; its description becomes the alt attribute and
// the element has no children.
func (m *mapper) mapImage(img *ast.Image) *doctree.Node {
	alt := doctree.NewComposite(doctree.ElementSpan, m.mapChildren(img)...).Flatten()
	node := doctree.NewComposite(doctree.ElementImage).
		WithAttr("src", string(img.Destination)).
		WithAttr("alt", alt)
	if len(img.Title) > 0 {
		node = node.WithAttr("title", string(img.Title))
	}
	return node
}

func (m *mapper) mapAutoLink(al *ast.AutoLink) *doctree.Node {
	href := string(al.URL(m.content))
	if al.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(href), "mailto:") {
		href = "mailto:" + href
	}
	return doctree.NewComposite(doctree.ElementLink, doctree.NewText(string(al.Label(m.content)))).
		WithAttr("href", href)
}

// mapRawHTML keeps inline HTML verbatim in a raw element.
func (m *mapper) mapRawHTML(raw *ast.RawHTML) *doctree.Node {
	var b strings.Builder
	for i := range raw.Segments.Len() {
		seg := raw.Segments.At(i)
		b.Write(seg.Value(m.content))
	}
	return doctree.NewComposite(doctree.ElementRaw, doctree.NewText(b.String())).
		WithMeta(doctree.Meta{SuppressHighlight: true})
}

func mapTaskCheckBox(cb *east.TaskCheckBox) *doctree.Node {
	node := doctree.NewComposite(doctree.ElementCheckbox).
		WithAttr("type", "checkbox").
		WithAttr("disabled", "")
	if cb.IsChecked {
		node = node.WithAttr("checked", "")
	}
	return node
}

// mapTable converts a GFM table to table > thead, tbody.
func (m *mapper) mapTable(table *east.Table) *doctree.Node {
	var head, rows []*doctree.Node
	for _, n := range m.mapChildren(table) {
		if n.Element == doctree.ElementTableHead {
			head = append(head, n)
			continue
		}
		rows = append(rows, n)
	}
	if len(rows) > 0 {
		head = append(head, doctree.NewComposite(doctree.ElementTableBody, rows...))
	}
	return doctree.NewComposite(doctree.ElementTable, head...)
}

// mapRow converts a header or body row; cells become cellElement.
func (m *mapper) mapRow(row ast.Node, cellElement string) *doctree.Node {
	var cells []*doctree.Node
	for child := row.FirstChild(); child != nil; child = child.NextSibling() {
		tc, ok := child.(*east.TableCell)
		if !ok {
			continue
		}
		cell := m.composite(cellElement, tc)
		if tc.Alignment != east.AlignNone {
			cell = cell.WithAttr("align", tc.Alignment.String())
		}
		cells = append(cells, cell)
	}
	return doctree.NewComposite(doctree.ElementTableRow, cells...)
}
