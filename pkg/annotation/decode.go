package annotation

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// spanOpenPattern is the only accepted form of an opening tag.
var spanOpenPattern = regexp.MustCompile(`^<span class="([^"]+)">$`)

const spanClose = "</span>"

// MalformedError reports tokenizer output that does not follow the span
// grammar. It indicates a broken tokenizer, not bad user input.
type MalformedError struct {
	// Offset is the byte offset in the tokenizer output.
	Offset int

	// Reason describes the violation.
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed annotation at offset %d: %s", e.Offset, e.Reason)
}

// Option configures Decode.
type Option func(*decoder)

// WithClassPrefix prefixes every decoded class as "prefix-class".
func WithClassPrefix(prefix string) Option {
	return func(d *decoder) {
		d.prefix = prefix
	}
}

// Decode parses tokenizer output into a sequence of spans.
func Decode(markup string, opts ...Option) ([]*Span, error) {
	d := &decoder{
		z:   html.NewTokenizer(strings.NewReader(markup)),
		src: markup,
	}
	for _, opt := range opts {
		opt(d)
	}

	return d.parseSequence(0)
}

type decoder struct {
	z      *html.Tokenizer
	src    string
	pos    int
	prefix string
}

// parseSequence reads spans until the close tag matching the current depth,
// or until end of input at depth zero.
func (d *decoder) parseSequence(depth int) ([]*Span, error) {
	var spans []*Span

	for {
		tt := d.z.Next()
		if tt == html.ErrorToken {
			return spans, d.finish(depth)
		}

		start := d.pos
		raw := string(d.z.Raw())
		d.pos += len(raw)

		switch tt {
		case html.TextToken:
			if raw == "" {
				continue
			}
			spans = append(spans, Text(DecodeEntities(raw)))

		case html.StartTagToken:
			match := spanOpenPattern.FindStringSubmatch(raw)
			if match == nil {
				return nil, &MalformedError{Offset: start, Reason: fmt.Sprintf("unexpected opening tag %q", raw)}
			}
			children, err := d.parseSequence(depth + 1)
			if err != nil {
				return nil, err
			}
			spans = append(spans, Element(d.className(match[1]), children...))

		case html.EndTagToken:
			if raw != spanClose {
				return nil, &MalformedError{Offset: start, Reason: fmt.Sprintf("unexpected closing tag %q", raw)}
			}
			if depth == 0 {
				return nil, &MalformedError{Offset: start, Reason: "closing tag without opening tag"}
			}
			return spans, nil

		case html.ErrorToken, html.SelfClosingTagToken, html.CommentToken, html.DoctypeToken:
			return nil, &MalformedError{Offset: start, Reason: fmt.Sprintf("unexpected markup %q", raw)}
		}
	}
}

func (d *decoder) finish(depth int) error {
	if err := d.z.Err(); !errors.Is(err, io.EOF) {
		return &MalformedError{Offset: d.pos, Reason: err.Error()}
	}
	if d.pos != len(d.src) {
		return &MalformedError{Offset: d.pos, Reason: "truncated tag"}
	}
	if depth > 0 {
		return &MalformedError{Offset: d.pos, Reason: "missing closing tag"}
	}
	return nil
}

func (d *decoder) className(name string) string {
	if d.prefix == "" {
		return name
	}
	return d.prefix + "-" + name
}
