package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arthur-debert/wonders/internal/demo"
	"github.com/arthur-debert/wonders/internal/version"
	"github.com/arthur-debert/wonders/pkg/dispatch"
	"github.com/arthur-debert/wonders/pkg/errors"
	"github.com/arthur-debert/wonders/pkg/logging"
)

func newDemoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "demo [command] [args...]",
		Short:   MsgDemoShort,
		Long:    MsgDemoLong,
		Example: MsgDemoExample,
		// The sample program parses its own arguments.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Root flags given before "demo" arrive unparsed.
			rootFlags := cmd.Root().PersistentFlags()
			leading, args := splitLeadingFlags(rootFlags, args)
			if len(leading) > 0 {
				if err := rootFlags.Parse(leading); err != nil {
					return errors.Wrap(err, errors.ErrInvalidInput, "invalid flag")
				}
				if err := opts.load(); err != nil {
					return err
				}
			}

			if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
				return cmd.Help()
			}

			out := cmd.OutOrStdout()
			d := dispatch.New(
				dispatch.WithRenderer(opts.renderer(out)),
				dispatch.WithLogger(logging.GetLogger("dispatch")),
			)
			if err := d.Render(cmd.Context(), demo.Program(version.Version, args), out); err != nil {
				return err
			}

			// The program adds no framing; keep the shell prompt on its own line.
			if isTerminal(out) {
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

// splitLeadingFlags returns the prefix of args made of flags defined in fs,
// values included, and the remaining arguments.
func splitLeadingFlags(fs *pflag.FlagSet, args []string) (leading, rest []string) {
	i := 0
	for i < len(args) {
		n := flagTokens(fs, args[i])
		if n == 0 || i+n > len(args) {
			break
		}
		i += n
	}
	return args[:i], args[i:]
}

// flagTokens reports how many arguments the flag in arg spans: 1 when the
// value is attached or not needed, 2 when it is the next argument, and 0
// when arg is not a flag of fs.
func flagTokens(fs *pflag.FlagSet, arg string) int {
	switch {
	case arg == "-" || arg == "--" || !strings.HasPrefix(arg, "-"):
		return 0

	case strings.HasPrefix(arg, "--"):
		name, _, hasValue := strings.Cut(arg[2:], "=")
		f := fs.Lookup(name)
		if f == nil {
			return 0
		}
		if hasValue || f.NoOptDefVal != "" {
			return 1
		}
		return 2

	default:
		shorts := arg[1:]
		for j := 0; j < len(shorts); j++ {
			c := shorts[j]
			if c == '=' || c >= 0x80 {
				return 0
			}
			f := fs.ShorthandLookup(string(c))
			if f == nil {
				return 0
			}
			if f.NoOptDefVal == "" {
				if j < len(shorts)-1 {
					return 1
				}
				return 2
			}
		}
		return 1
	}
}
