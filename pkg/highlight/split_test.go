package highlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhighlight/pkg/doctree"
	"github.com/yaklabco/mdhighlight/pkg/highlight"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	root := el("p", text("int a="), suppressed(el("strong", text("12"))), text(";"))

	tests := []struct {
		name      string
		node      *doctree.Node
		at        int
		wantLeft  string
		wantRight string
	}{
		{
			name:      "text leaf",
			node:      text("abcd"),
			at:        1,
			wantLeft:  `"a"`,
			wantRight: `"bcd"`,
		},
		{
			name:      "inside first child",
			node:      root,
			at:        4,
			wantLeft:  `(p "int ")`,
			wantRight: `(p "a=" (strong! "12") ";")`,
		},
		{
			name:      "between children",
			node:      root,
			at:        6,
			wantLeft:  `(p "int a=")`,
			wantRight: `(p (strong! "12") ";")`,
		},
		{
			name:      "inside nested child keeps meta",
			node:      root,
			at:        7,
			wantLeft:  `(p "int a=" (strong! "1"))`,
			wantRight: `(p (strong! "2") ";")`,
		},
		{
			name:      "attributes are kept on both halves",
			node:      el("a", text("link")).WithAttr("href", "/x").WithClass("ext"),
			at:        2,
			wantLeft:  `(a.ext "li")`,
			wantRight: `(a.ext "nk")`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a := highlight.AnalyzeDocument(tc.node, 3)
			left, right, err := highlight.Split(a, tc.at+3)
			require.NoError(t, err)

			assert.Equal(t, tc.wantLeft, doctree.Dump(left.Node))
			assert.Equal(t, tc.wantRight, doctree.Dump(right.Node))
			assert.Equal(t, 3, left.Offset)
			assert.Equal(t, tc.at+3, left.End())
			assert.Equal(t, tc.at+3, right.Offset)
			assert.Equal(t, a.End(), right.End())
			assert.Equal(t, tc.node.Flatten(), left.Node.Flatten()+right.Node.Flatten())

			wantHref, _ := tc.node.Attr("href")
			gotHref, _ := left.Node.Attr("href")
			assert.Equal(t, wantHref, gotHref)
		})
	}
}

func TestSplit_OutOfRange(t *testing.T) {
	t.Parallel()

	a := highlight.AnalyzeDocument(el("p", text("abc")), 0)
	for _, at := range []int{-1, 0, 3, 4} {
		_, _, err := highlight.Split(a, at)

		var rangeErr *highlight.RangeError
		require.ErrorAs(t, err, &rangeErr, "at %d", at)
		assert.Equal(t, "split", rangeErr.Op)
	}
}

func TestSplit_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	root := el("p", text("ab"), el("em", text("cd")))
	before := doctree.Dump(root)

	_, _, err := highlight.Split(highlight.AnalyzeDocument(root, 0), 3)
	require.NoError(t, err)
	assert.Equal(t, before, doctree.Dump(root))
}
