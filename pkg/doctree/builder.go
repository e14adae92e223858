package doctree

import (
	"maps"
	"slices"
)

// NewText creates a text leaf.
func NewText(text string) *Node {
	return &Node{Kind: NodeText, Text: text}
}

// NewComposite creates a composite element with the given children.
// The children slice is copied.
func NewComposite(element string, children ...*Node) *Node {
	return &Node{
		Kind:     NodeComposite,
		Element:  element,
		Children: slices.Clone(children),
	}
}

// NewDocument creates a document root.
func NewDocument(children ...*Node) *Node {
	return NewComposite(ElementDocument, children...)
}

// NewSpan creates a wrapper element carrying a single style class.
func NewSpan(class string, children ...*Node) *Node {
	span := NewComposite(ElementSpan, children...)
	if class != "" {
		span.Classes = []string{class}
	}
	return span
}

// Clone returns a shallow copy of n. Slices and maps owned by the node are
// copied; children are shared, not cloned.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Classes = slices.Clone(n.Classes)
	c.Children = slices.Clone(n.Children)
	if n.Attrs != nil {
		c.Attrs = maps.Clone(n.Attrs)
	}
	return &c
}

// WithText returns a copy of n holding text instead of its own.
func (n *Node) WithText(text string) *Node {
	c := n.Clone()
	c.Text = text
	return c
}

// WithChildren returns a copy of n with the given children.
// The children slice is copied.
func (n *Node) WithChildren(children []*Node) *Node {
	c := n.Clone()
	c.Children = slices.Clone(children)
	return c
}

// WithClass returns a copy of n with class appended to its style classes.
// The copy is returned unchanged if the class is already present.
func (n *Node) WithClass(class string) *Node {
	c := n.Clone()
	if class != "" && !c.HasClass(class) {
		c.Classes = append(c.Classes, class)
	}
	return c
}

// WithAttr returns a copy of n with an element attribute set.
func (n *Node) WithAttr(key, value string) *Node {
	c := n.Clone()
	if c.Attrs == nil {
		c.Attrs = make(map[string]string)
	}
	c.Attrs[key] = value
	return c
}

// WithMeta returns a copy of n with the given highlighting directives.
func (n *Node) WithMeta(meta Meta) *Node {
	c := n.Clone()
	c.Meta = meta
	return c
}
