// Package doctree defines the document tree consumed and produced by the
// highlighter: text leaves and composite inline elements.
//
// Trees are persistent. Every transformation builds new nodes and leaves its
// inputs untouched, so a subtree may be shared between an original tree and a
// rebuilt one.
package doctree

import (
	"strconv"
	"strings"
)

// NodeKind classifies a document node.
type NodeKind uint8

// Node kinds.
const (
	// NodeText is a leaf holding plain text.
	NodeText NodeKind = iota

	// NodeComposite is an element with an ordered list of children.
	NodeComposite
)

// String returns a human-readable name for the kind.
func (k NodeKind) String() string {
	switch k {
	case NodeText:
		return "text"
	case NodeComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Element names used by the parser and renderers.
const (
	ElementDocument      = "document"
	ElementParagraph     = "p"
	ElementBlockquote    = "blockquote"
	ElementList          = "ul"
	ElementOrderedList   = "ol"
	ElementListItem      = "li"
	ElementCodeBlock     = "pre"
	ElementThematicBreak = "hr"
	ElementEmphasis      = "em"
	ElementStrong        = "strong"
	ElementCodeSpan      = "code"
	ElementLink          = "a"
	ElementImage         = "img"
	ElementStrikethrough = "del"
	ElementHardBreak     = "br"
	ElementRaw           = "raw"
	ElementTable         = "table"
	ElementTableHead     = "thead"
	ElementTableBody     = "tbody"
	ElementTableRow      = "tr"
	ElementTableCell     = "td"
	ElementTableHeading  = "th"
	ElementCheckbox      = "input"

	// ElementSpan is the element of wrapper nodes created for style classes.
	ElementSpan = "span"
)

// HeadingElement returns the element name of a heading of the given level,
// clamped to 1..6.
func HeadingElement(level int) string {
	return "h" + strconv.Itoa(min(max(level, 1), 6))
}

// Meta carries highlighting directives.
type Meta struct {
	// HighlightLanguage requests highlighting of the node's flattened text
	// using this language tag.
	HighlightLanguage string

	// SuppressHighlight excludes the node and its descendants from any
	// enclosing highlight request.
	SuppressHighlight bool
}

// Node is a document tree node.
//
// A NodeText node uses only Text. A NodeComposite node uses Children and the
// element attributes. Lengths and offsets are always derived; nothing about a
// node's position is stored in it.
type Node struct {
	// Kind identifies the node variant.
	Kind NodeKind

	// Text is the content of a text leaf.
	Text string

	// Element names the inline or block element, e.g. "strong" or "span".
	Element string

	// Classes are the style classes of the element, in order.
	Classes []string

	// ID is the optional element identifier.
	ID string

	// Attrs holds element-specific attributes such as href or src.
	Attrs map[string]string

	// Meta holds highlighting directives.
	Meta Meta

	// Children is the ordered list of child nodes.
	Children []*Node
}

// IsText reports whether n is a text leaf.
func (n *Node) IsText() bool {
	return n.Kind == NodeText
}

// Len returns the number of bytes of flattened text under n.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	if n.Kind == NodeText {
		return len(n.Text)
	}

	length := 0
	for _, child := range n.Children {
		length += child.Len()
	}
	return length
}

// Flatten concatenates the text of all leaves under n in order.
func (n *Node) Flatten() string {
	var b strings.Builder
	n.flattenInto(&b)
	return b.String()
}

func (n *Node) flattenInto(b *strings.Builder) {
	if n == nil {
		return
	}
	if n.Kind == NodeText {
		b.WriteString(n.Text)
		return
	}
	for _, child := range n.Children {
		child.flattenInto(b)
	}
}

// HasClass reports whether class is one of the node's style classes.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// ClassAttr returns the style classes joined by spaces.
func (n *Node) ClassAttr() string {
	return strings.Join(n.Classes, " ")
}

// Attr returns the value of an element attribute.
func (n *Node) Attr(key string) (string, bool) {
	if n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[key]
	return v, ok
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.Children)
}
