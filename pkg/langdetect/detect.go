// Package langdetect guesses the language of code blocks that carry no
// language tag, so they can still be highlighted.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// DefaultCandidates are the languages the classifier chooses between.
//
//nolint:gochecknoglobals // Read-only candidate list
var DefaultCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// Option configures a Detector.
type Option func(*Detector)

// WithCandidates replaces the classifier candidates. Names are go-enry
// (linguist) language names.
func WithCandidates(candidates ...string) Option {
	return func(d *Detector) {
		d.candidates = candidates
	}
}

// WithSupported restricts results to languages accepted by supported,
// typically a tokenizer's language probe.
func WithSupported(supported func(language string) bool) Option {
	return func(d *Detector) {
		d.supported = supported
	}
}

// Detector guesses a language tag from code.
type Detector struct {
	candidates []string
	supported  func(language string) bool
}

// New creates a Detector.
func New(opts ...Option) *Detector {
	d := &Detector{candidates: DefaultCandidates}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect returns a lowercase language tag for code, and false when no
// language could be determined with confidence.
//
// Interpreter lines and editor modelines are trusted first, then a few
// unambiguous source patterns, then the go-enry classifier.
func (d *Detector) Detect(code string) (string, bool) {
	if strings.TrimSpace(code) == "" {
		return "", false
	}
	content := []byte(code)

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return d.accept(normalize(lang))
	}
	if lang, safe := enry.GetLanguageByModeline(content); safe {
		return d.accept(normalize(lang))
	}
	if lang := matchPattern(code); lang != "" {
		return d.accept(lang)
	}
	if lang, safe := enry.GetLanguageByClassifier(content, d.candidates); safe && lang != "" {
		return d.accept(normalize(lang))
	}

	return "", false
}

func (d *Detector) accept(lang string) (string, bool) {
	if d.supported != nil && !d.supported(lang) {
		return "", false
	}
	return lang, true
}

type pattern struct {
	language string
	match    func(code, trimmed string) bool
}

// patterns are checked in order; earlier entries are more specific.
//
//nolint:gochecknoglobals // Read-only rule table
var patterns = []pattern{
	{"go", func(_, trimmed string) bool {
		return strings.HasPrefix(trimmed, "package ")
	}},
	{"python", func(code, _ string) bool {
		if strings.Contains(code, "def ") && strings.Contains(code, "):") {
			return true
		}
		return strings.Contains(code, "__name__") || strings.Contains(code, "__main__")
	}},
	{"html", func(_, trimmed string) bool {
		lower := strings.ToLower(trimmed)
		return strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html")
	}},
	{"json", func(_, trimmed string) bool {
		return (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) &&
			strings.Contains(trimmed, `"`) && !strings.Contains(trimmed, "=")
	}},
	{"dockerfile", func(code, trimmed string) bool {
		return strings.HasPrefix(trimmed, "FROM ") ||
			(strings.Contains(code, "WORKDIR ") && strings.Contains(code, "COPY "))
	}},
	{"sql", func(_, trimmed string) bool {
		upper := strings.ToUpper(trimmed)
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(code, _ string) bool {
		return strings.Contains(code, "fn main()") || strings.Contains(code, "println!") ||
			strings.Contains(code, "let mut ")
	}},
	{"javascript", func(code, _ string) bool {
		return strings.Contains(code, "=>") || strings.Contains(code, "console.log")
	}},
}

func matchPattern(code string) string {
	trimmed := strings.TrimSpace(code)
	for _, p := range patterns {
		if p.match(code, trimmed) {
			return p.language
		}
	}
	return ""
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	case "C#":
		return "csharp"
	}
	return strings.ToLower(lang)
}
