package doctree

import (
	"strconv"
	"strings"
)

// Dump renders a compact single-line form of the tree, used in logs and tests.
//
// Text leaves are Go-quoted strings. Composites are parenthesized:
//
//	(element.class1.class2#id@language! child child ...)
//
// where "@language" marks a highlight request and "!" a suppressed region.
func Dump(n *Node) string {
	var b strings.Builder
	dumpInto(&b, n)
	return b.String()
}

// DumpAll renders a sequence of nodes separated by spaces.
func DumpAll(nodes []*Node) string {
	var b strings.Builder
	for i, n := range nodes {
		if i > 0 {
			b.WriteByte(' ')
		}
		dumpInto(&b, n)
	}
	return b.String()
}

func dumpInto(b *strings.Builder, n *Node) {
	if n == nil {
		b.WriteString("nil")
		return
	}
	if n.Kind == NodeText {
		b.WriteString(strconv.Quote(n.Text))
		return
	}

	b.WriteByte('(')
	b.WriteString(n.Element)
	for _, c := range n.Classes {
		b.WriteByte('.')
		b.WriteString(c)
	}
	if n.ID != "" {
		b.WriteByte('#')
		b.WriteString(n.ID)
	}
	if n.Meta.HighlightLanguage != "" {
		b.WriteByte('@')
		b.WriteString(n.Meta.HighlightLanguage)
	}
	if n.Meta.SuppressHighlight {
		b.WriteByte('!')
	}
	for _, child := range n.Children {
		b.WriteByte(' ')
		dumpInto(b, child)
	}
	b.WriteByte(')')
}
