package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-hclog"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/supermueller/accoutrement-color/internal/adjust"
	"github.com/supermueller/accoutrement-color/internal/colour"
	"github.com/supermueller/accoutrement-color/internal/config"
	"github.com/supermueller/accoutrement-color/internal/contrast"
	"github.com/supermueller/accoutrement-color/internal/palette"
	"github.com/supermueller/accoutrement-color/internal/plugin"
	"github.com/supermueller/accoutrement-color/internal/resolve"
)

// app holds global flag values and the state built from them before a
// command runs.
type app struct {
	configPath string
	palettes   []string
	sets       []string
	plugins    []string
	verbose    bool
	quiet      bool
	logLevel   string
	format     *enumValue
	preview    *enumValue

	cfg      *config.Config
	logger   hclog.Logger
	registry *adjust.Registry
	host     *plugin.Host
	resolver *resolve.Resolver
	engine   *contrast.Engine
	palette  palette.Palette
}

func newApp() *app {
	return &app{
		format:  newEnum(config.FormatHex, config.FormatHex, config.FormatRGB, config.FormatJSON),
		preview: newEnum(config.PreviewAuto, config.PreviewAuto, config.PreviewAlways, config.PreviewNever),
	}
}

// runE wraps a command body with setup and teardown of plugins and palette.
func (a *app) runE(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.setup(cmd); err != nil {
			return err
		}
		defer a.close()
		return fn(cmd, args)
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if !cmd.Flags().Changed("format") {
		_ = a.format.Set(cfg.Format)
	}
	if !cmd.Flags().Changed("preview") {
		_ = a.preview.Set(cfg.Preview)
	}

	a.logger, err = newLogger(cmd.ErrOrStderr(), a.verbose, a.quiet, a.logLevel)
	if err != nil {
		return err
	}
	if cfg.Path() != "" {
		a.logger.Debug("loaded config", "path", cfg.Path())
	}

	a.registry = adjust.NewDefault()
	a.host = plugin.NewHost(a.logger)
	if err := a.host.LoadAll(pick(a.plugins, cfg.Plugins), a.registry); err != nil {
		a.close()
		return err
	}

	a.resolver = resolve.New(a.registry, resolve.WithLogger(a.logger.Named("resolve")))
	a.engine = contrast.NewEngine(a.resolver)

	a.palette, err = a.loadPalette(pick(a.palettes, cfg.Palettes))
	if err != nil {
		a.close()
		return err
	}
	return nil
}

func (a *app) close() {
	if a.host != nil {
		a.host.Close()
	}
}

// pick returns flagged values when given, otherwise configured ones.
func pick(flagged, configured []string) []string {
	if len(flagged) > 0 {
		return flagged
	}
	return configured
}

func (a *app) loadPalette(paths []string) (palette.Palette, error) {
	p, err := palette.LoadFiles(paths...)
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		a.logger.Debug("loaded palette", "path", path)
	}

	if len(a.sets) > 0 {
		entries := make(map[string]palette.Description, len(a.sets))
		for _, set := range a.sets {
			name, expr, ok := strings.Cut(set, "=")
			name = strings.TrimSpace(name)
			if !ok || name == "" {
				return nil, fmt.Errorf("--set %q: want name=expression", set)
			}
			desc, err := palette.ParseExpression(expr)
			if err != nil {
				return nil, fmt.Errorf("--set %s: %w", name, err)
			}
			entries[name] = desc
		}
		p = p.With(entries)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	a.logger.Debug("palette ready", "colors", p.Len())
	return p, nil
}

// newLogger builds the CLI logger: warnings by default, debug with
// --verbose, errors only with --quiet. An explicit --log-level wins.
func newLogger(w io.Writer, verbose, quiet bool, level string) (hclog.Logger, error) {
	lvl := hclog.Warn
	switch {
	case level != "":
		lvl = hclog.LevelFromString(level)
		if lvl == hclog.NoLevel {
			return nil, fmt.Errorf("unknown log level %q", level)
		}
	case verbose:
		lvl = hclog.Debug
	case quiet:
		lvl = hclog.Error
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "accoutrement",
		Output: w,
		Level:  lvl,
	}), nil
}

// previewEnabled reports whether swatches should be drawn on w.
func (a *app) previewEnabled(w io.Writer) bool {
	if a.format.String() == config.FormatJSON {
		return false
	}
	switch a.preview.String() {
	case config.PreviewAlways:
		return true
	case config.PreviewNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// renderer returns a lipgloss renderer for w. Forced previews always get
// true colour, even when w is not a terminal.
func (a *app) renderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if a.preview.String() == config.PreviewAlways {
		r.SetColorProfile(termenv.TrueColor)
	}
	return r
}

// textColour picks the swatch label colour for background c from the
// palette's contrast-light and contrast-dark entries.
func (a *app) textColour(c colour.RGBA) colour.RGBA {
	fg, err := a.engine.Select(palette.Literal(c), nil, a.palette)
	if err != nil {
		a.logger.Debug("falling back to black and white swatch text", "error", err)
		if colour.IsLight(c) {
			return colour.Black
		}
		return colour.White
	}
	return fg
}

// swatch renders c as a short coloured block labelled in its best text colour.
func (a *app) swatch(r *lipgloss.Renderer, c colour.RGBA, label string) string {
	bg := colour.New(c.R, c.G, c.B)
	fg := a.textColour(bg)
	return r.NewStyle().
		Background(lipgloss.Color(bg.Hex())).
		Foreground(lipgloss.Color(colour.New(fg.R, fg.G, fg.B).Hex())).
		Padding(0, 1).
		Render(label)
}
