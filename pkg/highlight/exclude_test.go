package highlight

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhighlight/pkg/doctree"
)

// rangeString renders span ranges as "class[off,end)(children)".
func rangeString(spans ...*SpanRange) string {
	parts := make([]string, 0, len(spans))
	for _, s := range spans {
		str := fmt.Sprintf("%s[%d,%d)", s.Class, s.Offset, s.End())
		if len(s.Children) > 0 {
			str += "(" + rangeString(s.Children...) + ")"
		}
		parts = append(parts, str)
	}
	return strings.Join(parts, " ")
}

func TestClip(t *testing.T) {
	t.Parallel()

	nested := &SpanRange{Class: "s", Offset: 2, Length: 8, Children: []*SpanRange{
		{Class: "a", Offset: 2, Length: 2},
		{Class: "b", Offset: 5, Length: 3},
		{Class: "c", Offset: 9, Length: 1},
	}}

	tests := []struct {
		name       string
		span       *SpanRange
		begin, end int
		want       string
	}{
		{name: "before", span: nested, begin: 12, end: 14, want: "s[2,10)(a[2,4) b[5,8) c[9,10))"},
		{name: "touching end", span: nested, begin: 10, end: 11, want: "s[2,10)(a[2,4) b[5,8) c[9,10))"},
		{name: "after", span: nested, begin: 0, end: 2, want: "s[2,10)(a[2,4) b[5,8) c[9,10))"},
		{name: "covered", span: nested, begin: 1, end: 10, want: ""},
		{name: "exactly covered", span: nested, begin: 2, end: 10, want: ""},
		{name: "left edge", span: nested, begin: 0, end: 6, want: "s[6,10)(b[6,8) c[9,10))"},
		{name: "right edge", span: nested, begin: 6, end: 12, want: "s[2,6)(a[2,4) b[5,6))"},
		{name: "inside", span: nested, begin: 4, end: 9, want: "s[2,4)(a[2,4)) s[9,10)(c[9,10))"},
		{name: "split point", span: nested, begin: 6, end: 6, want: "s[2,6)(a[2,4) b[5,6)) s[6,10)(b[6,8) c[9,10))"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := clip(tc.span, tc.begin, tc.end)
			assert.Equal(t, tc.want, rangeString(got...))
		})
	}

	assert.Equal(t, "s[2,10)(a[2,4) b[5,8) c[9,10))", rangeString(nested), "input is not modified")
}

func TestClipNormalized(t *testing.T) {
	t.Parallel()

	span := &SpanRange{Class: "s", Offset: 0, Length: 6}

	dropped := clipNormalized(span, 0, 6)
	assert.Equal(t, "[0,6)", rangeString(dropped))
	assert.True(t, dropped.IsEmpty())

	assert.Equal(t, "s[0,2)", rangeString(clipNormalized(span, 2, 8)))
	assert.Equal(t, "[0,6)(s[0,2) s[4,6))", rangeString(clipNormalized(span, 2, 4)))
}

func TestSplitSpan(t *testing.T) {
	t.Parallel()

	span := &SpanRange{Class: "s", Offset: 2, Length: 4}

	left, right, err := splitSpan(span, 4)
	require.NoError(t, err)
	assert.Equal(t, "s[2,4)", rangeString(left))
	assert.Equal(t, "s[4,6)", rangeString(right))

	for _, at := range []int{1, 2, 6, 7} {
		_, _, err := splitSpan(span, at)
		var rangeErr *RangeError
		require.ErrorAs(t, err, &rangeErr, "at %d", at)
		assert.Equal(t, "split span", rangeErr.Op)
	}
}

func TestApplyExclusions(t *testing.T) {
	t.Parallel()

	root := doctree.NewComposite("p",
		doctree.NewText("int a="),
		doctree.NewComposite("strong", doctree.NewText("1")).WithMeta(doctree.Meta{SuppressHighlight: true}),
		doctree.NewText(";"),
	)
	doc := AnalyzeDocument(root, 0)

	t.Run("disjoint spans pass through", func(t *testing.T) {
		t.Parallel()

		span := &SpanRange{Class: "kw", Offset: 0, Length: 3}
		assert.Same(t, span, ApplyExclusions(doc, span))
	})

	t.Run("span under suppressed region dropped", func(t *testing.T) {
		t.Parallel()

		span := &SpanRange{Offset: 0, Length: 8, Children: []*SpanRange{
			{Class: "kw", Offset: 0, Length: 3},
			{Class: "num", Offset: 6, Length: 1},
		}}
		assert.Equal(t, "[0,8)([0,6)(kw[0,3)) [7,8))", rangeString(ApplyExclusions(doc, span)))
	})

	t.Run("span across suppressed region split", func(t *testing.T) {
		t.Parallel()

		span := &SpanRange{Offset: 0, Length: 8, Children: []*SpanRange{{Class: "s", Offset: 4, Length: 4}}}
		assert.Equal(t, "[0,8)([0,6)(s[4,6)) [7,8)(s[7,8)))", rangeString(ApplyExclusions(doc, span)))
	})

	t.Run("suppressed root", func(t *testing.T) {
		t.Parallel()

		root := doctree.NewComposite("pre", doctree.NewText("abc")).WithMeta(doctree.Meta{SuppressHighlight: true})
		span := &SpanRange{Offset: 0, Length: 3, Children: []*SpanRange{{Class: "s", Offset: 0, Length: 3}}}
		got := ApplyExclusions(AnalyzeDocument(root, 0), span)
		assert.True(t, got.IsEmpty())
		assert.Equal(t, 3, got.Length)
	})
}
