// Package tokenize classifies source code with chroma lexers and emits the
// span markup consumed by the annotation decoder.
package tokenize

import (
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/yaklabco/mdhighlight/pkg/highlight"
)

// Option configures a Chroma tokenizer.
type Option func(*Chroma)

// WithNesting groups runs of tokens of the same category under a span
// carrying the category class, with each token's own class nested inside.
func WithNesting(enabled bool) Option {
	return func(c *Chroma) {
		c.nesting = enabled
	}
}

// Chroma is a highlight.Tokenizer backed by chroma lexers. Classes are
// chroma's short CSS class names ("k", "kt", "s2", ...).
type Chroma struct {
	nesting bool
}

var (
	_ highlight.Tokenizer      = (*Chroma)(nil)
	_ highlight.LanguageProber = (*Chroma)(nil)
)

// NewChroma creates a chroma tokenizer.
func NewChroma(opts ...Option) *Chroma {
	c := &Chroma{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Supports reports whether a lexer is registered for language.
func (c *Chroma) Supports(language string) bool {
	return lexers.Get(language) != nil
}

// Tokenize classifies text as language.
func (c *Chroma) Tokenize(text, language string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", fmt.Errorf("language %q: %w", language, highlight.ErrUnsupportedLanguage)
	}

	iter, err := chroma.Coalesce(lexer).Tokenise(&chroma.TokeniseOptions{State: "root"}, text)
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", language, err)
	}

	tokens := clamp(iter.Tokens(), len(text))
	if joined := joinValues(tokens); joined != text {
		return "", fmt.Errorf("lexer %s changed the source text (%d bytes in, %d out)", language, len(text), len(joined))
	}

	var b strings.Builder
	b.Grow(len(text) * 2)

	for i := 0; i < len(tokens); {
		category := categoryClass(tokens[i].Type)
		if !c.nesting || category == "" {
			writeToken(&b, tokens[i], "")
			i++
			continue
		}

		j := i + 1
		for j < len(tokens) && categoryClass(tokens[j].Type) == category {
			j++
		}

		openSpan(&b, category)
		for _, tok := range tokens[i:j] {
			writeToken(&b, tok, category)
		}
		b.WriteString("</span>")
		i = j
	}

	return b.String(), nil
}

// Languages returns the names of all registered lexers, sorted.
func Languages() []string {
	names := lexers.Names(false)
	slices.Sort(names)
	return names
}

// clamp drops what a lexer appended past the first n bytes, such as the
// trailing newline some lexers add.
func clamp(tokens []chroma.Token, n int) []chroma.Token {
	out := make([]chroma.Token, 0, len(tokens))
	pos := 0
	for _, tok := range tokens {
		if pos >= n {
			break
		}
		if pos+len(tok.Value) > n {
			tok.Value = tok.Value[:n-pos]
		}
		pos += len(tok.Value)
		out = append(out, tok)
	}
	return out
}

func joinValues(tokens []chroma.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Value)
	}
	return b.String()
}

// writeToken writes tok, wrapped in its class unless the class is empty or
// equal to the enclosing class.
func writeToken(b *strings.Builder, tok chroma.Token, enclosing string) {
	class := tokenClass(tok.Type)
	if class == "" || class == enclosing {
		b.WriteString(html.EscapeString(tok.Value))
		return
	}
	openSpan(b, class)
	b.WriteString(html.EscapeString(tok.Value))
	b.WriteString("</span>")
}

func openSpan(b *strings.Builder, class string) {
	b.WriteString(`<span class="`)
	b.WriteString(class)
	b.WriteString(`">`)
}

// tokenClass returns the CSS class of t, falling back to its sub-category
// and category.
func tokenClass(t chroma.TokenType) string {
	for _, tt := range []chroma.TokenType{t, t.SubCategory(), t.Category()} {
		if class, ok := chroma.StandardTypes[tt]; ok {
			return class
		}
	}
	return ""
}

func categoryClass(t chroma.TokenType) string {
	return chroma.StandardTypes[t.Category()]
}
