package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(rootOpts, cmd)
		},
	})
	return cmd
}

func runConfigShow(opts *RootOptions, cmd *cobra.Command) error {
	e, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	if e.out.Format == "json" {
		return e.out.Success(e.cfg.Redact())
	}
	data, err := e.cfg.YAML()
	if err != nil {
		return outputError(e.out, ErrCodeConfig, ExitFailure, "failed to render configuration", err)
	}
	_, err = fmt.Fprint(e.out.Writer, string(data))
	return err
}
