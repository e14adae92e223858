// Package annotation decodes the classified markup produced by a tokenizer
// into a tree of labeled spans.
//
// The accepted grammar is deliberately narrow: plain text, and
// <span class="NAME">...</span> elements nested to any depth. Text may use the
// entities &lt; &gt; &quot; &amp; and &#NN;.
package annotation

import "strings"

// SpanKind distinguishes text runs from labeled elements.
type SpanKind uint8

// Span kinds.
const (
	// SpanText is a run of plain decoded text.
	SpanText SpanKind = iota

	// SpanElement is a labeled range with nested spans.
	SpanElement
)

// Span is a node of the annotation tree.
type Span struct {
	// Kind identifies the span variant.
	Kind SpanKind

	// Class is the style class of an element. It is empty for text runs and
	// for transparent groups.
	Class string

	// Text is the decoded content of a text run.
	Text string

	// Children are the nested spans of an element.
	Children []*Span
}

// Text creates a text run.
func Text(text string) *Span {
	return &Span{Kind: SpanText, Text: text}
}

// Element creates a labeled element.
func Element(class string, children ...*Span) *Span {
	return &Span{Kind: SpanElement, Class: class, Children: children}
}

// Group creates a transparent element without a class. The decoder's top-level
// output is wrapped in a group before analysis.
func Group(children ...*Span) *Span {
	return &Span{Kind: SpanElement, Children: children}
}

// Len returns the number of bytes of decoded text covered by s.
func (s *Span) Len() int {
	if s.Kind == SpanText {
		return len(s.Text)
	}
	length := 0
	for _, child := range s.Children {
		length += child.Len()
	}
	return length
}

// PlainText concatenates the decoded text of spans in order.
func PlainText(spans []*Span) string {
	var b strings.Builder
	for _, s := range spans {
		s.writeText(&b)
	}
	return b.String()
}

func (s *Span) writeText(b *strings.Builder) {
	if s.Kind == SpanText {
		b.WriteString(s.Text)
		return
	}
	for _, child := range s.Children {
		child.writeText(b)
	}
}
