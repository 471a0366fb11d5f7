package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/wonders/pkg/config"
	"github.com/arthur-debert/wonders/pkg/errors"
)

func newConfigCmd(opts *options) *cobra.Command {
	var (
		format   string
		defaults bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Long:  MsgConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if defaults {
				_, err := fmt.Fprintln(out, config.GenerateConfigContent())
				return err
			}

			data, err := config.Encode(opts.cfg, format)
			if err != nil {
				return err
			}
			if _, err := out.Write(data); err != nil {
				return errors.Wrap(err, errors.ErrOutput, "failed to write settings")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", config.FormatTOML, MsgFlagFormat)
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}
