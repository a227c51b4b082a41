package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mstcc/pkg/config"
	"github.com/matzehuels/mstcc/pkg/errors"
	"github.com/matzehuels/mstcc/pkg/pipeline"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config [FILE]",
		Short: "Print solver parameters as a config file",
		Long: `Config prints the default solver parameters in TOML or YAML, ready to be
edited and passed to "solve --config". Given a FILE, it loads and validates
that file and prints the effective parameters instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := config.Format(format)
			if f != config.FormatTOML && f != config.FormatYAML {
				return errors.New(errors.ErrCodeInvalidParam, "invalid format %q (must be one of: toml, yaml)", format)
			}
			opts := pipeline.DefaultOptions()
			if len(args) == 1 {
				if err := config.Load(args[0], &opts); err != nil {
					return err
				}
				c.Logger.Debug("Loaded config", "path", args[0], "options", opts.String())
			}
			return config.Encode(c.Out, f, opts)
		},
	}

	cmd.Flags().StringVar(&format, "format", string(config.FormatTOML), "output format: toml, yaml")

	return cmd
}
