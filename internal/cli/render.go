package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdhighlight/internal/configloader"
	"github.com/yaklabco/mdhighlight/internal/logging"
	"github.com/yaklabco/mdhighlight/pkg/config"
	"github.com/yaklabco/mdhighlight/pkg/doctree"
	"github.com/yaklabco/mdhighlight/pkg/fsutil"
	"github.com/yaklabco/mdhighlight/pkg/highlight"
	"github.com/yaklabco/mdhighlight/pkg/langdetect"
	goldmarkparser "github.com/yaklabco/mdhighlight/pkg/parser/goldmark"
	"github.com/yaklabco/mdhighlight/pkg/render"
	"github.com/yaklabco/mdhighlight/pkg/tokenize"
)

type renderFlags struct {
	format         string
	style          string
	flavor         string
	input          string
	classPrefix    string
	output         string
	detectLanguage bool
	noMultiline    bool
	nesting        bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Highlight a Markdown document",
		Long:  renderLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	addRenderFlags(cmd, flags)

	return cmd
}

const renderLongDescription = `Highlight the code in a Markdown document and write the result.

The document is read from the given file, or from standard input when no
file is given or the file is "-". Fenced code blocks are highlighted in the
language of their info string.

Examples:
  mdhighlight render README.md                 # HTML on standard output
  mdhighlight render --format ansi README.md   # Colored terminal output
  mdhighlight render -o out.html README.md     # Write HTML to a file
  cat doc.md | mdhighlight render --format tree
  mdhighlight render --input tree tree.yaml    # Highlight a YAML document tree`

func addRenderFlags(cmd *cobra.Command, flags *renderFlags) {
	cmd.Flags().StringVarP(&flags.format, "format", "f", string(config.FormatHTML),
		"output format: html, ansi, tree, dump")
	cmd.Flags().StringVar(&flags.style, "style", config.DefaultStyle, "chroma style for terminal colors")
	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorGFM), "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVar(&flags.input, "input", string(config.InputMarkdown), "input format: markdown, tree")
	cmd.Flags().StringVar(&flags.classPrefix, "class-prefix", "", "prefix for token and line classes")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to a file instead of standard output")
	cmd.Flags().BoolVar(&flags.detectLanguage, "detect-language", false,
		"detect the language of code blocks without an info string")
	cmd.Flags().BoolVar(&flags.noMultiline, "no-multiline", false, "do not wrap highlighted lines in line spans")
	cmd.Flags().BoolVar(&flags.nesting, "nesting", false, "nest tokens in spans of their category")
}

// cliConfig returns the configuration set by flags given on the command line.
func (f *renderFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{Output: f.output}
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if changed("style") {
		cfg.Style = f.style
	}
	if changed("flavor") {
		cfg.Flavor = config.Flavor(f.flavor)
	}
	if changed("input") {
		cfg.Input = config.InputFormat(f.input)
	}
	if changed("class-prefix") {
		cfg.ClassPrefix = f.classPrefix
	}
	if changed("color") {
		cfg.Color, _ = cmd.Flags().GetString("color")
	}
	if changed("detect-language") {
		cfg.DetectLanguage = config.Bool(f.detectLanguage)
	}
	if changed("no-multiline") {
		cfg.Multiline = config.Bool(!f.noMultiline)
	}
	if changed("nesting") {
		cfg.Nesting = config.Bool(f.nesting)
	}
	return cfg
}

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: configPath,
		CLIConfig:    flags.cliConfig(cmd),
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}
	cfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldConfigFiles, loadResult.LoadedFrom)
	}

	path := ""
	if len(args) > 0 && args[0] != "-" {
		path = args[0]
	}

	content, err := readInput(ctx, cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	tokenizer := tokenize.NewChroma(tokenize.WithNesting(cfg.NestingEnabled()))

	root, err := parseInput(ctx, cfg, tokenizer, content)
	if err != nil {
		return err
	}

	highlighter := highlight.New(tokenizer,
		highlight.WithClassPrefix(cfg.ClassPrefix),
		highlight.WithMultiline(cfg.MultilineEnabled()),
	)

	highlighted, err := highlighter.Highlight(ctx, root)
	if err != nil {
		return fmt.Errorf("highlight: %w", err)
	}

	logger.Debug("rendering",
		logging.FieldFormat, cfg.Format,
		logging.FieldStyle, cfg.Style,
		logging.FieldOutput, cfg.Output,
	)

	return writeOutput(ctx, cmd.OutOrStdout(), cfg, highlighted)
}

// readInput reads the document from path, or from in when path is empty.
// A terminal is never read from.
func readInput(ctx context.Context, in io.Reader, path string) ([]byte, error) {
	if path != "" {
		content, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return content, nil
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, ErrInteractiveInput
	}

	content, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read standard input: %w", err)
	}
	return content, nil
}

func parseInput(
	ctx context.Context,
	cfg *config.Config,
	tokenizer *tokenize.Chroma,
	content []byte,
) (*doctree.Node, error) {
	logger := logging.FromContext(ctx)
	logger.Debug("parsing input", logging.FieldInput, cfg.Input, logging.FieldFlavor, cfg.Flavor)

	if cfg.Input == config.InputTree {
		root, err := doctree.FromYAML(content)
		if err != nil {
			return nil, fmt.Errorf("read tree: %w", err)
		}
		return root, nil
	}

	var opts []goldmarkparser.Option
	if cfg.DetectLanguageEnabled() {
		opts = append(opts, goldmarkparser.WithDetector(loggedDetector{
			detector: langdetect.New(langdetect.WithSupported(tokenizer.Supports)),
			logger:   logger,
		}))
	}

	root, err := goldmarkparser.New(string(cfg.Flavor), opts...).Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("parse markdown: %w", err)
	}
	return root, nil
}

type loggedDetector struct {
	detector goldmarkparser.LanguageDetector
	logger   *log.Logger
}

func (d loggedDetector) Detect(code string) (string, bool) {
	language, ok := d.detector.Detect(code)
	if ok {
		d.logger.Debug("detected code block language",
			logging.FieldDetected, language,
			logging.FieldLength, len(code),
		)
	}
	return language, ok
}

// writeOutput renders root to cfg.Output when set, or to stdout.
func writeOutput(ctx context.Context, stdout io.Writer, cfg *config.Config, root *doctree.Node) error {
	var buf bytes.Buffer
	w := stdout
	if cfg.Output != "" {
		w = &buf
	}

	renderer, err := render.New(render.Options{
		Writer:      w,
		Format:      render.Format(cfg.Format),
		Color:       cfg.Color,
		Style:       cfg.Style,
		ClassPrefix: cfg.ClassPrefix,
	})
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	if err := renderer.Render(ctx, root); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if cfg.Output == "" {
		return nil
	}
	if err := fsutil.WriteAtomic(ctx, cfg.Output, buf.Bytes(), 0); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logging.FromContext(ctx).Debug("wrote output", logging.FieldPath, cfg.Output)
	return nil
}
