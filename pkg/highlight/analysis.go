// Package highlight merges tokenizer classifications into an existing document
// tree without breaking its structure or changing its text.
//
// Both trees are projected onto the same flattened byte stream: Analysis
// describes document nodes, SpanRange describes annotation spans. Exclusions
// clip spans out of suppressed regions, Merge injects the remaining spans as
// wrapper nodes, splitting document nodes where span boundaries fall inside
// them, and Resegment re-partitions multi-line blocks into line units.
package highlight

import (
	"github.com/yaklabco/mdhighlight/pkg/annotation"
	"github.com/yaklabco/mdhighlight/pkg/doctree"
)

// Analysis is the range of a document node over the flattened text.
// It is only valid for the node it was computed from; any structural edit
// requires a fresh analysis.
type Analysis struct {
	Node   *doctree.Node
	Offset int
	Length int

	// Highlight is false when the node itself is excluded from highlighting.
	Highlight bool

	// HighlightAll is true when the node and all its descendants are eligible.
	HighlightAll bool

	// Children is nil for text leaves.
	Children []*Analysis
}

// End returns the offset just past the node's text.
func (a *Analysis) End() int {
	return a.Offset + a.Length
}

// AnalyzeDocument computes the range analysis of node starting at offset.
//
// The node is eligible unless it is suppressed. Its descendants are also
// ineligible when they carry their own highlight request, since their content
// is highlighted in their own language.
func AnalyzeDocument(node *doctree.Node, offset int) *Analysis {
	a := analyzeNode(node, offset)
	a.Highlight = !node.Meta.SuppressHighlight
	a.HighlightAll = a.HighlightAll && a.Highlight
	return a
}

func analyzeNode(node *doctree.Node, offset int) *Analysis {
	if node.IsText() {
		return &Analysis{
			Node:         node,
			Offset:       offset,
			Length:       len(node.Text),
			Highlight:    true,
			HighlightAll: true,
		}
	}

	a := &Analysis{
		Node:         node,
		Offset:       offset,
		Highlight:    true,
		HighlightAll: true,
		Children:     make([]*Analysis, 0, len(node.Children)),
	}

	for _, child := range node.Children {
		ca := analyzeNode(child, offset+a.Length)
		if !eligible(child) {
			ca.Highlight = false
			ca.HighlightAll = false
		}
		if !ca.HighlightAll {
			a.HighlightAll = false
		}
		a.Length += ca.Length
		a.Children = append(a.Children, ca)
	}

	return a
}

func eligible(n *doctree.Node) bool {
	if n.IsText() {
		return true
	}
	return !n.Meta.SuppressHighlight && n.Meta.HighlightLanguage == ""
}

// SpanRange is the range of an annotation span over the flattened text.
// Text runs are not represented; only labeled ranges and groups are.
type SpanRange struct {
	// Class is empty for transparent groups and placeholders.
	Class    string
	Offset   int
	Length   int
	Children []*SpanRange
}

// End returns the offset just past the span.
func (s *SpanRange) End() int {
	return s.Offset + s.Length
}

// IsEmpty reports whether the span carries neither a class nor nested spans.
func (s *SpanRange) IsEmpty() bool {
	return s.Class == "" && len(s.Children) == 0
}

// AnalyzeAnnotation computes the span ranges of span starting at offset.
func AnalyzeAnnotation(span *annotation.Span, offset int) *SpanRange {
	if span.Kind == annotation.SpanText {
		return &SpanRange{Offset: offset, Length: len(span.Text)}
	}

	r := &SpanRange{Class: span.Class, Offset: offset}

	for _, child := range span.Children {
		if child.Kind == annotation.SpanText {
			r.Length += len(child.Text)
			continue
		}
		cr := AnalyzeAnnotation(child, offset+r.Length)
		r.Length += cr.Length
		r.Children = append(r.Children, cr)
	}

	return r
}
