package highlight_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhighlight/pkg/doctree"
	"github.com/yaklabco/mdhighlight/pkg/highlight"
)

// FuzzSplit splits random trees over the fuzzed content at the fuzzed offset
// and checks that no text is lost or moved.
func FuzzSplit(f *testing.F) {
	seeds := []struct {
		content string
		seed    uint64
		at      int
	}{
		{"int a=1;", 1, 6},
		{"ab\ncd", 2, 2},
		{"a\n\nb", 3, 1},
		{"héllo wörld", 4, 3},
		{"x", 5, 0},
		{"", 6, 0},
	}
	for _, s := range seeds {
		f.Add(s.content, s.seed, s.at)
	}

	f.Fuzz(func(t *testing.T, content string, seed uint64, at int) {
		root := doctree.NewComposite("p")
		if content != "" {
			r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
			root = randomTree(r, "p", content, 0)
		}
		require.Equal(t, content, root.Flatten())

		doc := highlight.AnalyzeDocument(root, 0)
		if len(content) < 2 || at <= 0 || at >= len(content) {
			_, _, err := highlight.Split(doc, min(max(at, 0), len(content)))
			var rangeErr *highlight.RangeError
			require.ErrorAs(t, err, &rangeErr)
			return
		}

		left, right, err := highlight.Split(doc, at)
		require.NoError(t, err)

		assert.Equal(t, content[:at], left.Node.Flatten())
		assert.Equal(t, content[at:], right.Node.Flatten())
		assert.Equal(t, at, left.Length)
		assert.Equal(t, at, right.Offset)
		assert.Equal(t, content, root.Flatten(), "input tree modified")
	})
}
