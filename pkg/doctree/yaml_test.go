package doctree_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhighlight/pkg/doctree"
)

func TestFromYAML(t *testing.T) {
	t.Parallel()

	input := `
element: p
highlight: c
children:
  - "int a="
  - element: strong
    no_highlight: true
    children: ["1"]
  - text: ";"
`
	root, err := doctree.FromYAML([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, `(p@c "int a=" (strong! "1") ";")`, doctree.Dump(root))
}

func TestFromYAML_DefaultsToSpan(t *testing.T) {
	t.Parallel()

	root, err := doctree.FromYAML([]byte("classes: [kw]\nchildren: [int]\n"))
	require.NoError(t, err)

	assert.Equal(t, `(span.kw "int")`, doctree.Dump(root))
}

func TestFromYAML_Errors(t *testing.T) {
	t.Parallel()

	_, err := doctree.FromYAML([]byte("text: x\nchildren: [y]\n"))
	require.Error(t, err)

	_, err = doctree.FromYAML([]byte("children: [\n"))
	require.Error(t, err)
}

func TestToYAML_RoundTrip(t *testing.T) {
	t.Parallel()

	root := doctree.NewComposite(doctree.ElementCodeBlock,
		doctree.NewSpan("kw", doctree.NewText("int")),
		doctree.NewText(" a\n"),
	)
	root.Meta.HighlightLanguage = "c"
	root.Attrs = map[string]string{"data-x": "1"}

	data, err := doctree.ToYAML(root)
	require.NoError(t, err)

	back, err := doctree.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, doctree.Dump(root), doctree.Dump(back))
	assert.Equal(t, "1", back.Attrs["data-x"])
}

func TestToYAML_LineBreakLeaves(t *testing.T) {
	t.Parallel()

	for _, leaf := range []string{"\n", "\n\n", "a\n", "\na", "  ", " x ", "\t\r\n", ""} {
		t.Run(fmt.Sprintf("%q", leaf), func(t *testing.T) {
			t.Parallel()

			root := doctree.NewComposite(doctree.ElementCodeBlock,
				doctree.NewText("x"),
				doctree.NewText(leaf),
				doctree.NewText("y"),
			)

			data, err := doctree.ToYAML(root)
			require.NoError(t, err)

			back, err := doctree.FromYAML(data)
			require.NoError(t, err, string(data))
			assert.Equal(t, root.Flatten(), back.Flatten(), string(data))
			assert.Equal(t, doctree.Dump(root), doctree.Dump(back))
		})
	}
}

func TestToYAML_Nil(t *testing.T) {
	t.Parallel()

	_, err := doctree.ToYAML(nil)
	require.Error(t, err)
}
