package highlight

import (
	"fmt"

	"github.com/yaklabco/mdhighlight/pkg/doctree"
)

// Split cuts the analyzed node into two clones at offset at, which must lie
// strictly inside the node. Composites are cut recursively through the child
// that straddles at. The flattened texts of the halves concatenate to the
// original text.
func Split(a *Analysis, at int) (*Analysis, *Analysis, error) {
	if at <= a.Offset || at >= a.End() {
		return nil, nil, &RangeError{
			Op:     "split",
			Offset: a.Offset,
			End:    a.End(),
			Reason: fmt.Sprintf("offset %d not inside node", at),
		}
	}

	left, right := splitNode(a, at)
	return AnalyzeDocument(left, a.Offset), AnalyzeDocument(right, at), nil
}

// splitNode is Split without the interior check: at may equal either end of
// the node, which yields an empty half.
func splitNode(a *Analysis, at int) (*doctree.Node, *doctree.Node) {
	node := a.Node
	if node.IsText() {
		cut := at - a.Offset
		return node.WithText(node.Text[:cut]), node.WithText(node.Text[cut:])
	}

	var left, right []*doctree.Node
	for _, child := range a.Children {
		switch {
		case child.End() <= at:
			left = append(left, child.Node)
		case child.Offset >= at:
			right = append(right, child.Node)
		default:
			l, r := splitNode(child, at)
			left = append(left, l)
			right = append(right, r)
		}
	}

	return node.WithChildren(left), node.WithChildren(right)
}
