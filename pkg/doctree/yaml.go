package doctree

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlNode is the YAML form of a Node. A text leaf may also be written as a
// bare scalar.
type yamlNode struct {
	Text        *string           `yaml:"text,omitempty"`
	Element     string            `yaml:"element,omitempty"`
	Classes     []string          `yaml:"classes,omitempty"`
	ID          string            `yaml:"id,omitempty"`
	Attrs       map[string]string `yaml:"attrs,omitempty"`
	Highlight   string            `yaml:"highlight,omitempty"`
	NoHighlight bool              `yaml:"no_highlight,omitempty"`
	Children    []*yamlNode       `yaml:"children,omitempty"`
}

// UnmarshalYAML accepts either a scalar (text leaf) or a mapping.
func (y *yamlNode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		text := value.Value
		y.Text = &text
		return nil
	}

	type plain yamlNode
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*y = yamlNode(p)
	return nil
}

// MarshalYAML writes text leaves as double-quoted scalars. Block scalars
// would drop or fold line breaks at the edges of a leaf.
func (y *yamlNode) MarshalYAML() (any, error) {
	if y.Text != nil {
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Style: yaml.DoubleQuotedStyle,
			Tag:   "!!str",
			Value: *y.Text,
		}, nil
	}
	type plain yamlNode
	return (*plain)(y), nil
}

// FromYAML decodes a tree from YAML.
//
//	element: p
//	children:
//	  - "int a="
//	  - element: strong
//	    no_highlight: true
//	    children: ["1"]
//	  - ";"
func FromYAML(data []byte) (*Node, error) {
	var root yamlNode
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse yaml tree: %w", err)
	}
	node, err := root.toNode()
	if err != nil {
		return nil, fmt.Errorf("parse yaml tree: %w", err)
	}
	return node, nil
}

// ToYAML encodes a tree as YAML.
func ToYAML(n *Node) ([]byte, error) {
	if n == nil {
		return nil, errors.New("encode yaml tree: nil node")
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(fromNode(n)); err != nil {
		return nil, fmt.Errorf("encode yaml tree: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

func (y *yamlNode) toNode() (*Node, error) {
	if y.Text != nil {
		if len(y.Children) > 0 {
			return nil, errors.New("text node cannot have children")
		}
		return NewText(*y.Text), nil
	}

	element := y.Element
	if element == "" {
		element = ElementSpan
	}

	children := make([]*Node, 0, len(y.Children))
	for _, c := range y.Children {
		if c == nil {
			continue
		}
		child, err := c.toNode()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	node := NewComposite(element, children...)
	node.Classes = y.Classes
	node.ID = y.ID
	node.Attrs = y.Attrs
	node.Meta = Meta{
		HighlightLanguage: y.Highlight,
		SuppressHighlight: y.NoHighlight,
	}
	return node, nil
}

func fromNode(n *Node) *yamlNode {
	if n.Kind == NodeText {
		text := n.Text
		return &yamlNode{Text: &text}
	}

	y := &yamlNode{
		Element:     n.Element,
		Classes:     n.Classes,
		ID:          n.ID,
		Attrs:       n.Attrs,
		Highlight:   n.Meta.HighlightLanguage,
		NoHighlight: n.Meta.SuppressHighlight,
	}
	for _, child := range n.Children {
		y.Children = append(y.Children, fromNode(child))
	}
	return y
}
