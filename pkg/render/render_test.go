package render_test

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhighlight/pkg/doctree"
	"github.com/yaklabco/mdhighlight/pkg/render"
)

var sgr = regexp.MustCompile("\x1b\\[[0-9;]*m")

func text(s string) *doctree.Node { return doctree.NewText(s) }

func el(element string, children ...*doctree.Node) *doctree.Node {
	return doctree.NewComposite(element, children...)
}

func sampleDocument() *doctree.Node {
	code := el("code",
		doctree.NewSpan("line", doctree.NewSpan("kw", text("int")), text(" x;")),
		text("\n"),
		doctree.NewSpan("line"),
	).WithClass("language-c").WithClass("multiline").WithMeta(doctree.Meta{HighlightLanguage: "c"})

	return doctree.NewDocument(
		el("h1", text("Title")),
		el("p", text("a<b "), el("em", text("it")), text(" "), el("strong", text("bold"))),
		el("pre", code),
		el("ul", el("li", text("one")), el("li", text("two"))),
		el("blockquote", el("p", text("q"))),
		el("hr"),
	)
}

func renderString(t *testing.T, opts render.Options, root *doctree.Node) string {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf

	r, err := render.New(opts)
	require.NoError(t, err)
	require.NoError(t, r.Render(context.Background(), root))
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"html", "ansi", "tree", "dump"} {
		f, err := render.ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, name, f.String())
		assert.True(t, f.IsValid())
	}

	f, err := render.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, render.FormatHTML, f)

	_, err = render.ParseFormat("pdf")
	require.Error(t, err)
	assert.False(t, render.Format("pdf").IsValid())
}

func TestNew_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := render.New(render.Options{Writer: &bytes.Buffer{}, Format: "pdf"})
	require.Error(t, err)
}

func TestHTMLRenderer(t *testing.T) {
	t.Parallel()

	got := renderString(t, render.Options{Format: render.FormatHTML}, sampleDocument())

	want := "<h1>Title</h1>\n" +
		"<p>a&lt;b <em>it</em> <strong>bold</strong></p>\n" +
		`<pre><code class="language-c multiline"><span class="line"><span class="kw">int</span> x;</span>` + "\n" +
		`<span class="line"></span></code></pre>` + "\n" +
		"<ul><li>one</li><li>two</li></ul>\n" +
		"<blockquote><p>q</p></blockquote>\n" +
		"<hr/>\n"
	assert.Equal(t, want, got)
}

func TestHTMLRenderer_Attributes(t *testing.T) {
	t.Parallel()

	root := el("p",
		el("a", text("go")).WithAttr("title", `"Go"`).WithAttr("href", "https://go.dev"),
		el("img").WithAttr("src", "x.png").WithAttr("alt", "pic"),
		el("raw", text("<b>raw</b>")),
	)

	got := renderString(t, render.Options{Format: render.FormatHTML}, root)
	assert.Equal(t,
		`<p><a href="https://go.dev" title="&#34;Go&#34;">go</a><img alt="pic" src="x.png"/><b>raw</b></p>`+"\n",
		got)
}

func TestANSIRenderer_Plain(t *testing.T) {
	t.Parallel()

	got := renderString(t, render.Options{Format: render.FormatANSI, Color: "never"}, sampleDocument())

	want := "# Title\n\n" +
		"a<b it bold\n\n" +
		"int x;\n\n" +
		"• one\n• two\n\n" +
		"│ q\n\n" +
		"────────────────────\n"
	assert.Equal(t, want, got)
}

func TestANSIRenderer_Color(t *testing.T) {
	t.Parallel()

	plain := renderString(t, render.Options{Format: render.FormatANSI, Color: "never"}, sampleDocument())
	colored := renderString(t, render.Options{Format: render.FormatANSI, Color: "always", Style: "monokai"}, sampleDocument())

	assert.Contains(t, colored, "\x1b[")
	assert.Equal(t, plain, sgr.ReplaceAllString(colored, ""))
}

func TestANSIRenderer_Lists(t *testing.T) {
	t.Parallel()

	root := doctree.NewDocument(
		el("ol", el("li", text("a")), el("li", el("p", text("b")), el("p", text("c")))).WithAttr("start", "3"),
		el("ul", el("li", el("input").WithAttr("checked", ""), text("done"))),
	)

	got := renderString(t, render.Options{Format: render.FormatANSI, Color: "never"}, root)
	assert.Equal(t, "3. a\n4. b\n   c\n\n• [x] done\n", got)
}

func TestTreeRenderer_RoundTrip(t *testing.T) {
	t.Parallel()

	root := sampleDocument()
	got := renderString(t, render.Options{Format: render.FormatTree}, root)

	back, err := doctree.FromYAML([]byte(got))
	require.NoError(t, err)
	assert.Equal(t, doctree.Dump(root), doctree.Dump(back))
}

func TestDumpRenderer(t *testing.T) {
	t.Parallel()

	got := renderString(t, render.Options{Format: render.FormatDump}, el("p", text("x")))
	assert.Equal(t, "(p \"x\")\n", got)
}
