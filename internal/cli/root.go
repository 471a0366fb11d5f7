package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/wonders/internal/version"
	"github.com/arthur-debert/wonders/pkg/config"
	"github.com/arthur-debert/wonders/pkg/logging"
	"github.com/arthur-debert/wonders/pkg/render"
)

// options is the state shared by the root command and its subcommands.
type options struct {
	configPath string
	color      string
	verbosity  int

	cfg *config.Config
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

// Execute runs the CLI with argv and reports failures on stderr. It returns
// the process exit code.
func Execute(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	opts := &options{}
	rootCmd := newRootCmd(opts)
	rootCmd.SetArgs(argv)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		mode := opts.color
		if opts.cfg != nil {
			mode = opts.cfg.Color
		}
		fmt.Fprint(stderr, FormatError(err, ColorProfile(mode, stderr)))
		return 1
	}
	return 0
}

func newRootCmd(opts *options) *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "wonders",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.load(); err != nil {
				return err
			}
			log.Debug().Str("command", cmd.Name()).Str("config", opts.cfg.Source).Msg("Command started")
			return nil
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&opts.color, "color", "", MsgFlagColor)

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newDemoCmd(opts))
	rootCmd.AddCommand(newRenderCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	if err := installTopics(rootCmd, opts); err != nil {
		panic(err)
	}

	return rootCmd
}

// load reads the settings, letting flags override them, and sets up logging.
func (o *options) load() error {
	overrides := map[string]interface{}{}
	if o.color != "" {
		overrides["color"] = o.color
	}
	if o.verbosity > 0 {
		overrides["logging.verbosity"] = o.verbosity
	}

	cfg, err := config.Load(o.configPath, overrides)
	if err != nil {
		return err
	}
	o.cfg = cfg

	logging.SetupLogger(cfg.Logging.Verbosity, cfg.Logging.File)
	return nil
}

// renderer builds a renderer for output written to w.
func (o *options) renderer(w io.Writer) *render.Renderer {
	cfg := o.cfg
	if cfg == nil {
		if def, err := config.Default(); err == nil {
			cfg = def
		} else {
			cfg = &config.Config{
				Color:    config.ColorAuto,
				Bullet:   render.DefaultBullet,
				Markdown: config.Markdown{Style: "notty", Width: 80},
			}
		}
	}
	return render.New(
		render.WithProfile(ColorProfile(cfg.Color, w)),
		render.WithBullet(cfg.Bullet),
		render.WithMarkdownStyle(cfg.Markdown.Style, cfg.Markdown.Width),
		render.WithLogger(logging.GetLogger("render")),
	)
}
