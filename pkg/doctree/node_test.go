package doctree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhighlight/pkg/doctree"
)

func sampleTree() *doctree.Node {
	bold := doctree.NewComposite(doctree.ElementStrong, doctree.NewText("1"))
	return doctree.NewComposite(doctree.ElementParagraph,
		doctree.NewText("int a="),
		bold,
		doctree.NewText(";"),
	)
}

func TestNode_LenAndFlatten(t *testing.T) {
	t.Parallel()

	root := sampleTree()

	assert.Equal(t, 8, root.Len())
	assert.Equal(t, "int a=1;", root.Flatten())
	assert.Equal(t, 1, root.Children[1].Len())
	assert.Equal(t, 0, doctree.NewComposite(doctree.ElementSpan).Len())
}

func TestNode_IsText(t *testing.T) {
	t.Parallel()

	assert.True(t, doctree.NewText("x").IsText())
	assert.False(t, doctree.NewSpan("kw").IsText())
}

func TestNodeKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "text", doctree.NodeText.String())
	assert.Equal(t, "composite", doctree.NodeComposite.String())
	assert.Equal(t, "unknown", doctree.NodeKind(42).String())
}

func TestNewSpan(t *testing.T) {
	t.Parallel()

	span := doctree.NewSpan("kw", doctree.NewText("int"))
	assert.Equal(t, doctree.ElementSpan, span.Element)
	assert.Equal(t, []string{"kw"}, span.Classes)

	bare := doctree.NewSpan("")
	assert.Empty(t, bare.Classes)
}

func TestNode_WithChildrenDoesNotAlias(t *testing.T) {
	t.Parallel()

	root := sampleTree()
	children := []*doctree.Node{doctree.NewText("x")}

	c := root.WithChildren(children)
	children[0] = doctree.NewText("changed")

	assert.Equal(t, "x", c.Flatten())
	assert.Equal(t, "int a=1;", root.Flatten(), "original must be untouched")
}

func TestNode_CloneCopiesOwnedState(t *testing.T) {
	t.Parallel()

	orig := doctree.NewComposite(doctree.ElementLink, doctree.NewText("go"))
	orig.Classes = []string{"ext"}
	orig.ID = "l1"
	orig.Attrs = map[string]string{"href": "https://go.dev"}
	orig.Meta = doctree.Meta{HighlightLanguage: "go", SuppressHighlight: true}

	c := orig.Clone()
	c.Classes[0] = "int"
	c.Attrs["href"] = "x"

	assert.Equal(t, []string{"ext"}, orig.Classes)
	assert.Equal(t, "https://go.dev", orig.Attrs["href"])
	assert.Equal(t, orig.ID, c.ID)
	assert.Equal(t, orig.Meta, c.Meta)
	assert.Same(t, orig.Children[0], c.Children[0], "children are shared")
}

func TestNode_WithText(t *testing.T) {
	t.Parallel()

	leaf := doctree.NewText("hello")
	right := leaf.WithText("llo")

	assert.Equal(t, "hello", leaf.Text)
	assert.Equal(t, "llo", right.Text)
	assert.Equal(t, doctree.NodeText, right.Kind)
}

func TestNode_WithClass(t *testing.T) {
	t.Parallel()

	pre := doctree.NewComposite(doctree.ElementCodeBlock)
	pre.Classes = []string{"code"}

	tagged := pre.WithClass("multiline")
	assert.Equal(t, []string{"code", "multiline"}, tagged.Classes)
	assert.Equal(t, []string{"code"}, pre.Classes)

	again := tagged.WithClass("multiline")
	assert.Equal(t, []string{"code", "multiline"}, again.Classes)
	assert.Equal(t, "code multiline", again.ClassAttr())
}

func TestNode_WithAttrAndMeta(t *testing.T) {
	t.Parallel()

	link := doctree.NewComposite(doctree.ElementLink)
	withHref := link.WithAttr("href", "/x")

	_, ok := link.Attr("href")
	assert.False(t, ok)

	href, ok := withHref.Attr("href")
	require.True(t, ok)
	assert.Equal(t, "/x", href)

	suppressed := link.WithMeta(doctree.Meta{SuppressHighlight: true})
	assert.True(t, suppressed.Meta.SuppressHighlight)
	assert.False(t, link.Meta.SuppressHighlight)
}

func TestDump(t *testing.T) {
	t.Parallel()

	root := sampleTree()
	root.Meta.HighlightLanguage = "c"
	root.Children[1] = root.Children[1].WithMeta(doctree.Meta{SuppressHighlight: true})

	assert.Equal(t, `(p@c "int a=" (strong! "1") ";")`, doctree.Dump(root))

	span := doctree.NewSpan("kw", doctree.NewText("int"))
	span.ID = "k"
	assert.Equal(t, `(span.kw#k "int") "x"`, doctree.DumpAll([]*doctree.Node{span, doctree.NewText("x")}))
	assert.Equal(t, "nil", doctree.Dump(nil))
}

func TestWalkAndFind(t *testing.T) {
	t.Parallel()

	root := doctree.NewDocument(
		doctree.NewSpan("kw", doctree.NewText("int")),
		doctree.NewText(" "),
		doctree.NewSpan("kw", doctree.NewText("return")),
	)

	var visited int
	require.NoError(t, doctree.Walk(root, func(*doctree.Node) error {
		visited++
		return nil
	}))
	assert.Equal(t, 6, visited)

	assert.Len(t, doctree.FindByClass(root, "kw"), 2)
	assert.Len(t, doctree.Leaves(root), 3)

	var order []string
	require.NoError(t, doctree.WalkWithContext(root.Children[0],
		func(n *doctree.Node) error {
			order = append(order, "enter:"+n.Kind.String())
			return nil
		},
		func(n *doctree.Node) error {
			order = append(order, "leave:"+n.Kind.String())
			return nil
		},
	))
	assert.Equal(t, []string{"enter:composite", "enter:text", "leave:text", "leave:composite"}, order)
}
