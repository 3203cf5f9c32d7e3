// Package configcmder provides the config command for inspecting the
// effective qdemos configuration.
package configcmder

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"qdemos/pkg/config"
)

const configLongDesc string = `Inspect the qdemos configuration.

Configuration is read from config.toml (the working directory first, then
the user config directory, or the file given with --config). Environment
variables override file values, e.g. QDEMOS_QFT_QUBITS=4 or
QDEMOS_SERVER_LISTEN=:9000. Command flags override both.

Keys use dotted notation matching the TOML section structure:
  server.listen,
  qft.qubits, qft.swap_policy,
  errdetect.a, errdetect.b, errdetect.seed,
  log.json, log.pretty`

const configShortDesc string = "Inspect the qdemos configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newShowCmd())

	return cmd
}

const showLongDesc string = `Print the effective configuration as TOML.

The output is a valid config.toml with every default, file value and
environment override applied.

Examples:
  qdemos config show
  qdemos config show > config.toml`

const showShortDesc string = "Print the effective configuration"

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: showShortDesc,
		Long:  showLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			return runShow(cmd.OutOrStdout(), path)
		},
	}

	return cmd
}

func runShow(out io.Writer, path string) error {
	v, err := config.InitViper(path)
	if err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	text, err := config.ToTOML(cfg)
	if err != nil {
		return err
	}

	if f := v.ConfigFileUsed(); f != "" {
		fmt.Fprintf(out, "# from %s\n", f)
	}
	_, err = io.WriteString(out, text)
	return err
}
