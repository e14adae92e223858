package highlight_test

import (
	"fmt"
	"html"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhighlight/pkg/annotation"
	"github.com/yaklabco/mdhighlight/pkg/doctree"
	"github.com/yaklabco/mdhighlight/pkg/highlight"
)

func text(s string) *doctree.Node {
	return doctree.NewText(s)
}

func el(element string, children ...*doctree.Node) *doctree.Node {
	return doctree.NewComposite(element, children...)
}

func suppressed(n *doctree.Node) *doctree.Node {
	return n.WithMeta(doctree.Meta{SuppressHighlight: true})
}

func lang(n *doctree.Node, language string) *doctree.Node {
	return n.WithMeta(doctree.Meta{HighlightLanguage: language})
}

// annotate decodes tokenizer markup into an analyzed span group at offset 0.
func annotate(t *testing.T, markup string) *highlight.SpanRange {
	t.Helper()

	spans, err := annotation.Decode(markup)
	require.NoError(t, err)
	return highlight.AnalyzeAnnotation(annotation.Group(spans...), 0)
}

// mergeMarkup runs exclusions and merge of markup over root and dumps the result.
func mergeMarkup(t *testing.T, root *doctree.Node, markup string) string {
	t.Helper()

	doc := highlight.AnalyzeDocument(root, 0)
	span := highlight.ApplyExclusions(doc, annotate(t, markup))

	res, err := highlight.Merge(doc, span)
	require.NoError(t, err)
	return doctree.DumpAll(res.Nodes())
}

// fakeTokenizer returns canned markup per text, and escaped plain text
// otherwise. The language "none" is unsupported.
type fakeTokenizer struct {
	markup map[string]string
	calls  []string
}

func (f *fakeTokenizer) Tokenize(text, language string) (string, error) {
	f.calls = append(f.calls, language+":"+text)
	if language == "none" {
		return "", fmt.Errorf("language %q: %w", language, highlight.ErrUnsupportedLanguage)
	}
	if m, ok := f.markup[language+":"+text]; ok {
		return m, nil
	}
	return html.EscapeString(text), nil
}

// probingTokenizer additionally reports support for a fixed set of languages.
type probingTokenizer struct {
	fakeTokenizer
	languages map[string]bool
}

func (p *probingTokenizer) Supports(language string) bool {
	return p.languages[language]
}
