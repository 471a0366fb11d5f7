package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/wonders/pkg/errors"
	"github.com/arthur-debert/wonders/pkg/logging"
)

func newRenderCmd(opts *options) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:     "render [markup]",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		Example: MsgRenderExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.render")

			src, err := readSource(cmd.InOrStdin(), file, args)
			if err != nil {
				return err
			}

			node, err := newMarkupParser().Parse(src)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			out, err := opts.renderer(w).Render(node)
			if err != nil {
				return err
			}
			logger.Debug().Int("bytes", len(out)).Msg("Rendered markup")

			return writeString(w, out)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", MsgFlagFile)
	return cmd
}

// readSource picks the markup from the argument, the file or stdin.
func readSource(stdin io.Reader, file string, args []string) (string, error) {
	switch {
	case len(args) == 1 && file != "":
		return "", errors.New(errors.ErrInvalidInput, "give the markup as an argument or with --file, not both")
	case len(args) == 1:
		return args[0], nil
	case file == "" || file == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInvalidInput, "cannot read standard input")
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(file)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot read %s", file).
				WithDetail("path", file)
		}
		return string(data), nil
	}
}
