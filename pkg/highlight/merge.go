package highlight

import (
	"fmt"
	"slices"

	"github.com/yaklabco/mdhighlight/pkg/doctree"
)

// MergeResult is the outcome of merging a span into a node: either a single
// replacement node, or an ordered run of nodes that replaces the original
// node among its siblings.
type MergeResult struct {
	nodes []*doctree.Node
	many  bool
}

// Single returns a result holding one replacement node.
func Single(node *doctree.Node) MergeResult {
	return MergeResult{nodes: []*doctree.Node{node}}
}

// Many returns a result holding a run of sibling nodes.
func Many(nodes []*doctree.Node) MergeResult {
	return MergeResult{nodes: nodes, many: true}
}

// IsMany reports whether the result is a run of siblings.
func (r MergeResult) IsMany() bool {
	return r.many
}

// Node returns the replacement node of a single result, or nil.
func (r MergeResult) Node() *doctree.Node {
	if r.many || len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// Nodes returns the nodes to splice in place of the original node.
func (r MergeResult) Nodes() []*doctree.Node {
	return r.nodes
}

// Merge injects span into the analyzed node. The span range must lie within
// the node's range.
//
// Spans without a class and without nested spans, and empty spans, leave the
// node untouched. A text leaf may expand into several siblings; a composite
// always yields a single rebuilt node.
func Merge(doc *Analysis, span *SpanRange) (MergeResult, error) {
	if span.Offset < doc.Offset || span.End() > doc.End() {
		return MergeResult{}, &RangeError{
			Op:     "merge",
			Offset: span.Offset,
			End:    span.End(),
			Reason: fmt.Sprintf("span outside node range [%d,%d)", doc.Offset, doc.End()),
		}
	}

	if span.IsEmpty() || span.Length == 0 {
		return Single(doc.Node), nil
	}

	if doc.Node.IsText() {
		return mergeText(doc, span)
	}

	node, err := mergeComposite(doc, span)
	if err != nil {
		return MergeResult{}, err
	}
	return Single(node), nil
}

// mergeInto merges span into a composite node placed at offset.
func mergeInto(node *doctree.Node, offset int, span *SpanRange) (*doctree.Node, error) {
	res, err := Merge(AnalyzeDocument(node, offset), span)
	if err != nil {
		return nil, err
	}
	if res.IsMany() {
		return nil, &RangeError{
			Op:     "merge",
			Offset: span.Offset,
			End:    span.End(),
			Reason: "composite expanded into siblings",
		}
	}
	return res.Node(), nil
}

func mergeComposite(doc *Analysis, span *SpanRange) (*doctree.Node, error) {
	first, last := overlapping(doc.Children, span)
	if first < 0 {
		return nil, &RangeError{
			Op:     "merge",
			Offset: span.Offset,
			End:    span.End(),
			Reason: "no child overlaps span",
		}
	}

	firstChild, lastChild := doc.Children[first], doc.Children[last]

	if first == last {
		res, err := Merge(firstChild, span)
		if err != nil {
			return nil, err
		}
		children := slices.Replace(nodesOf(doc.Children), first, first+1, res.Nodes()...)
		return doc.Node.WithChildren(children), nil
	}

	if last == first+1 && span.Offset != firstChild.Offset && span.End() != lastChild.End() {
		return mergeStraddling(doc, span, firstChild.End())
	}

	node := doc.Node
	if span.Class != "" {
		wrapped, err := wrapChildren(doc, span, first, last)
		if err != nil {
			return nil, err
		}
		node = wrapped
	}

	for _, child := range span.Children {
		merged, err := mergeInto(node, doc.Offset, child)
		if err != nil {
			return nil, err
		}
		node = merged
	}

	return node, nil
}

// overlapping returns the inclusive index range of children overlapping span,
// or -1, -1 if there is none.
func overlapping(children []*Analysis, span *SpanRange) (int, int) {
	first := -1
	for i, child := range children {
		if child.End() > span.Offset {
			first = i
			break
		}
	}
	if first < 0 {
		return -1, -1
	}

	last := first
	for i := first + 1; i < len(children) && children[i].Offset < span.End(); i++ {
		last = i
	}
	return first, last
}

// mergeStraddling handles a span that straddles exactly two children without
// being aligned to either outer edge. Each half is merged against the whole
// node, and the two results are joined at the boundary between the children.
func mergeStraddling(doc *Analysis, span *SpanRange, boundary int) (*doctree.Node, error) {
	leftSpan, rightSpan, err := splitSpan(span, boundary)
	if err != nil {
		return nil, err
	}

	leftNode, err := mergeInto(doc.Node, doc.Offset, leftSpan)
	if err != nil {
		return nil, err
	}
	rightNode, err := mergeInto(doc.Node, doc.Offset, rightSpan)
	if err != nil {
		return nil, err
	}

	var children []*doctree.Node
	for _, child := range AnalyzeDocument(leftNode, doc.Offset).Children {
		if child.Offset < boundary {
			children = append(children, child.Node)
		}
	}
	for _, child := range AnalyzeDocument(rightNode, doc.Offset).Children {
		if child.Offset >= boundary {
			children = append(children, child.Node)
		}
	}

	return doc.Node.WithChildren(children), nil
}

// wrapChildren replaces children first..last with a wrapper carrying the
// span's class. Children cut by the span's edges are split, and the parts
// outside the span stay next to the wrapper.
func wrapChildren(doc *Analysis, span *SpanRange, first, last int) (*doctree.Node, error) {
	inner := nodesOf(doc.Children[first : last+1])
	var before, after []*doctree.Node

	if firstChild := doc.Children[first]; span.Offset != firstChild.Offset {
		l, r, err := Split(firstChild, span.Offset)
		if err != nil {
			return nil, err
		}
		before = append(before, l.Node)
		inner[0] = r.Node
	}

	if lastChild := doc.Children[last]; span.End() != lastChild.End() {
		l, r, err := Split(lastChild, span.End())
		if err != nil {
			return nil, err
		}
		inner[len(inner)-1] = l.Node
		after = append(after, r.Node)
	}

	replacement := slices.Concat(before, []*doctree.Node{doctree.NewSpan(span.Class, inner...)}, after)
	children := slices.Replace(nodesOf(doc.Children), first, last+1, replacement...)
	return doc.Node.WithChildren(children), nil
}

func mergeText(doc *Analysis, span *SpanRange) (MergeResult, error) {
	text := doc.Node.Text
	rel := func(offset int) int { return offset - doc.Offset }

	if span.Offset != doc.Offset || span.End() != doc.End() {
		var out []*doctree.Node
		if span.Offset > doc.Offset {
			out = append(out, doc.Node.WithText(text[:rel(span.Offset)]))
		}

		matched := doc.Node.WithText(text[rel(span.Offset):rel(span.End())])
		res, err := mergeText(AnalyzeDocument(matched, span.Offset), span)
		if err != nil {
			return MergeResult{}, err
		}
		out = append(out, res.Nodes()...)

		if span.End() < doc.End() {
			out = append(out, doc.Node.WithText(text[rel(span.End()):]))
		}
		return Many(out), nil
	}

	parts := []*doctree.Node{doc.Node}
	if len(span.Children) > 0 {
		parts = nil
		pos := span.Offset
		for _, child := range span.Children {
			if child.Length == 0 {
				continue
			}
			if child.Offset < pos {
				return MergeResult{}, &RangeError{
					Op:     "merge",
					Offset: child.Offset,
					End:    child.End(),
					Reason: fmt.Sprintf("nested span overlaps previous sibling ending at %d", pos),
				}
			}
			if child.Offset > pos {
				parts = append(parts, doc.Node.WithText(text[rel(pos):rel(child.Offset)]))
			}

			fragment := doc.Node.WithText(text[rel(child.Offset):rel(child.End())])
			res, err := Merge(AnalyzeDocument(fragment, child.Offset), child)
			if err != nil {
				return MergeResult{}, err
			}
			parts = append(parts, res.Nodes()...)
			pos = child.End()
		}
		if pos < doc.End() {
			parts = append(parts, doc.Node.WithText(text[rel(pos):]))
		}
	}

	if span.Class == "" {
		return Many(parts), nil
	}
	return Single(doctree.NewSpan(span.Class, parts...)), nil
}

func nodesOf(analyses []*Analysis) []*doctree.Node {
	nodes := make([]*doctree.Node, len(analyses))
	for i, a := range analyses {
		nodes[i] = a.Node
	}
	return nodes
}
