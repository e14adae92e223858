// Package goldmark parses Markdown into a document tree using the goldmark
// library. Fenced code blocks become highlight requests for their info
// string language.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdhighlight/pkg/doctree"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// LanguageDetector guesses the language of a code block without an info
// string.
type LanguageDetector interface {
	Detect(code string) (string, bool)
}

// Option configures a Parser.
type Option func(*Parser)

// WithDetector enables language detection for untagged code blocks.
func WithDetector(detector LanguageDetector) Option {
	return func(p *Parser) {
		p.detector = detector
	}
}

// Parser converts Markdown to document trees.
type Parser struct {
	flavor   string
	md       goldmark.Markdown
	detector LanguageDetector
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
func New(flavor string, opts ...Option) *Parser {
	f := flavorOrDefault(flavor)
	p := &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse converts Markdown content into a document tree rooted at a
// "document" composite.
func (p *Parser) Parse(ctx context.Context, content []byte) (*doctree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	gmDoc := p.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	m := &mapper{content: content, detector: p.detector}
	return m.mapDocument(gmDoc), nil
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	switch flavor {
	case FlavorGFM:
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}
