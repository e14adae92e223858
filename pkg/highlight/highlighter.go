package highlight

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/mdhighlight/internal/logging"
	"github.com/yaklabco/mdhighlight/pkg/annotation"
	"github.com/yaklabco/mdhighlight/pkg/doctree"
)

// Tokenizer classifies source text in a language. The output is the text
// itself, escaped, with classified ranges wrapped in <span class="NAME">
// elements. A tokenizer that cannot handle the language returns an error
// wrapping ErrUnsupportedLanguage.
type Tokenizer interface {
	Tokenize(text, language string) (string, error)
}

// LanguageProber is optionally implemented by a Tokenizer that can report
// language support without tokenizing.
type LanguageProber interface {
	Supports(language string) bool
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithClassPrefix prefixes every class the highlighter creates, including
// line classes, as "prefix-class".
func WithClassPrefix(prefix string) Option {
	return func(h *Highlighter) {
		h.classPrefix = prefix
	}
}

// WithMultiline controls line re-segmentation of multi-line blocks.
// It is enabled by default.
func WithMultiline(enabled bool) Option {
	return func(h *Highlighter) {
		h.multiline = enabled
	}
}

// Highlighter applies a tokenizer to the highlight requests of a document tree.
type Highlighter struct {
	tokenizer   Tokenizer
	classPrefix string
	multiline   bool
}

// New creates a Highlighter using tokenizer.
func New(tokenizer Tokenizer, opts ...Option) *Highlighter {
	h := &Highlighter{
		tokenizer: tokenizer,
		multiline: true,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Highlight returns a copy of root in which every composite carrying a
// supported highlight language has been highlighted. Requests nested inside
// another request are highlighted first and are then left alone by the
// enclosing one. Outermost requests spanning several lines are re-segmented
// into line units.
//
// root is not modified.
func (h *Highlighter) Highlight(ctx context.Context, root *doctree.Node) (*doctree.Node, error) {
	return h.visit(ctx, root, false)
}

func (h *Highlighter) visit(ctx context.Context, node *doctree.Node, inner bool) (*doctree.Node, error) {
	if node.IsText() {
		return node, nil
	}

	language := node.Meta.HighlightLanguage
	requested := language != "" && h.supports(language)

	visited, err := h.visitChildren(ctx, node, requested || inner)
	if err != nil {
		return nil, err
	}

	if !requested {
		return visited, nil
	}

	highlighted, err := h.HighlightNode(ctx, visited, language)
	if errors.Is(err, ErrUnsupportedLanguage) {
		logging.FromContext(ctx).Debug("skipping block", logging.FieldLanguage, language)
		if inner {
			return visited, nil
		}
		// Descendants were visited as part of this block; visit them again
		// as outermost requests.
		return h.visitChildren(ctx, node, inner)
	}
	if err != nil {
		return nil, fmt.Errorf("highlight %q block: %w", language, err)
	}

	if inner || !h.multiline {
		return highlighted, nil
	}
	resegmented := Resegment(highlighted, h.className(LineClass), h.className(MultilineClass))
	if resegmented != highlighted {
		logging.FromContext(ctx).Debug("split block into lines",
			logging.FieldLanguage, language,
			logging.FieldClass, h.className(MultilineClass),
		)
	}
	return resegmented, nil
}

// visitChildren visits the children of node and returns node with the
// visited children, or node itself when none changed.
func (h *Highlighter) visitChildren(ctx context.Context, node *doctree.Node, inner bool) (*doctree.Node, error) {
	var children []*doctree.Node
	for i, child := range node.Children {
		visited, err := h.visit(ctx, child, inner)
		if err != nil {
			return nil, err
		}
		if visited != child && children == nil {
			children = append(make([]*doctree.Node, 0, len(node.Children)), node.Children[:i]...)
		}
		if children != nil {
			children = append(children, visited)
		}
	}
	if children == nil {
		return node, nil
	}
	return node.WithChildren(children), nil
}

// HighlightNode classifies the flattened text of a composite node and merges
// the classification into it. Suppressed descendants and descendants with
// their own highlight request receive no classes.
func (h *Highlighter) HighlightNode(ctx context.Context, node *doctree.Node, language string) (*doctree.Node, error) {
	if node.IsText() {
		return nil, &RangeError{Op: "highlight", End: node.Len(), Reason: "target must be a composite node"}
	}

	text := node.Flatten()

	markup, err := h.tokenizer.Tokenize(text, language)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}

	spans, err := annotation.Decode(markup, annotation.WithClassPrefix(h.classPrefix))
	if err != nil {
		return nil, fmt.Errorf("decode tokenizer output: %w", err)
	}
	if annotation.PlainText(spans) != text {
		return nil, &RangeError{Op: "decode", End: len(text), Reason: "tokenizer output text differs from document text"}
	}

	doc := AnalyzeDocument(node, 0)
	span := ApplyExclusions(doc, AnalyzeAnnotation(annotation.Group(spans...), 0))

	res, err := Merge(doc, span)
	if err != nil {
		return nil, err
	}
	out := res.Node()
	if out == nil || out.Flatten() != text {
		return nil, &RangeError{Op: "merge", End: len(text), Reason: "merged tree does not preserve document text"}
	}

	logging.FromContext(ctx).Debug("highlighted block",
		logging.FieldLanguage, language,
		logging.FieldLength, len(text),
		logging.FieldSpans, countSpans(span),
	)

	return out, nil
}

func (h *Highlighter) supports(language string) bool {
	if prober, ok := h.tokenizer.(LanguageProber); ok {
		return prober.Supports(language)
	}
	return true
}

func (h *Highlighter) className(class string) string {
	if h.classPrefix == "" {
		return class
	}
	return h.classPrefix + "-" + class
}

func countSpans(span *SpanRange) int {
	n := 0
	if span.Class != "" {
		n++
	}
	for _, child := range span.Children {
		n += countSpans(child)
	}
	return n
}
