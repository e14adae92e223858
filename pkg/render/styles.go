package render

import (
	"io"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Styles contains the terminal styles of document elements.
type Styles struct {
	Heading       lipgloss.Style
	Emphasis      lipgloss.Style
	Strong        lipgloss.Style
	Code          lipgloss.Style
	Link          lipgloss.Style
	Strikethrough lipgloss.Style
	Quote         lipgloss.Style
	Rule          lipgloss.Style
	Marker        lipgloss.Style
}

// NewStyles creates element styles bound to renderer r.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Heading:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Emphasis:      r.NewStyle().Italic(true),
		Strong:        r.NewStyle().Bold(true),
		Code:          r.NewStyle().Foreground(lipgloss.Color("11")),
		Link:          r.NewStyle().Underline(true).Foreground(lipgloss.Color("14")),
		Strikethrough: r.NewStyle().Strikethrough(true),
		Quote:         r.NewStyle().Foreground(lipgloss.Color("8")),
		Rule:          r.NewStyle().Foreground(lipgloss.Color("8")),
		Marker:        r.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// Palette maps token classes to terminal styles taken from a chroma style.
type Palette struct {
	styles map[string]lipgloss.Style
}

// NewPalette builds the palette of the named chroma style for classes
// produced with classPrefix. Unknown style names fall back to chroma's
// default style.
func NewPalette(r *lipgloss.Renderer, styleName, classPrefix string) *Palette {
	style := styles.Get(styleName)
	p := &Palette{styles: make(map[string]lipgloss.Style, len(chroma.StandardTypes))}

	for tokenType, class := range chroma.StandardTypes {
		if class == "" {
			continue
		}
		entry := style.Get(tokenType)
		if !entry.Colour.IsSet() && entry.Bold != chroma.Yes && entry.Italic != chroma.Yes && entry.Underline != chroma.Yes {
			continue
		}

		s := r.NewStyle()
		if entry.Colour.IsSet() {
			s = s.Foreground(lipgloss.Color(entry.Colour.String()))
		}
		if entry.Bold == chroma.Yes {
			s = s.Bold(true)
		}
		if entry.Italic == chroma.Yes {
			s = s.Italic(true)
		}
		if entry.Underline == chroma.Yes {
			s = s.Underline(true)
		}

		if classPrefix != "" {
			class = classPrefix + "-" + class
		}
		p.styles[class] = s
	}

	return p
}

// Lookup returns the style of the first class with one.
func (p *Palette) Lookup(classes []string) (lipgloss.Style, bool) {
	for _, class := range classes {
		if s, ok := p.styles[class]; ok {
			return s, true
		}
	}
	return lipgloss.Style{}, false
}

// NewTermRenderer creates a lipgloss renderer for w, with colors forced on
// or off.
func NewTermRenderer(w io.Writer, colorEnabled bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if colorEnabled {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
