package highlight

import (
	"strings"

	"github.com/yaklabco/mdhighlight/pkg/doctree"
)

// Line-segmentation classes, before any class prefix is applied.
const (
	LineClass      = "line"
	MultilineClass = "multiline"
)

// Resegment re-partitions the content of a highlighted composite into one
// line unit per source line, separated by explicit "\n" leaves, and adds
// multilineClass to the node. Line units are wrappers carrying lineClass.
// Nodes without a line break, and text leaves, are returned unchanged.
func Resegment(node *doctree.Node, lineClass, multilineClass string) *doctree.Node {
	if node.IsText() {
		return node
	}

	text := node.Flatten()
	if !strings.Contains(text, "\n") {
		return node
	}

	rest := AnalyzeDocument(doctree.NewSpan(lineClass, node.Children...), 0)
	var children []*doctree.Node

	for {
		i := strings.IndexByte(text[rest.Offset:], '\n')
		if i < 0 {
			break
		}
		at := rest.Offset + i

		line, tail := splitNode(rest, at)
		children = append(children, line, doctree.NewText("\n"))

		// Drop the break itself from the remainder.
		_, after := splitNode(AnalyzeDocument(tail, at), at+1)
		rest = AnalyzeDocument(after, at+1)
	}
	children = append(children, rest.Node)

	return node.WithChildren(children).WithClass(multilineClass)
}
