// Package qdemoscmder
package qdemoscmder

import (
	"github.com/spf13/cobra"

	configcmder "qdemos/cmd/qdemos/config"
	errdetectcmder "qdemos/cmd/qdemos/errdetect"
	qftcmder "qdemos/cmd/qdemos/qft"
	servecmder "qdemos/cmd/qdemos/serve"
	tuicmder "qdemos/cmd/qdemos/tui"
	versioncmder "qdemos/cmd/version"
)

const qdemosLongDesc string = `qdemos runs two small quantum computing demos on a state-vector simulator:
the quantum Fourier transform of a user supplied state, and bit-flip error
detection on a three qubit repetition code.

Run the demos using:
  qdemos serve        Serve the web form
  qdemos tui          Open the terminal form
  qdemos qft          Run the QFT demo once and print the result
  qdemos errdetect    Run the error-detection demo once and print the result`

const qdemosShortDesc string = "qdemos - quantum circuit demos"

func NewQdemosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "qdemos",
		Short:         qdemosShortDesc,
		Long:          qdemosLongDesc,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to config.toml (default: ./config.toml, then the user config dir)")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(tuicmder.NewTUICmd())
	cmd.AddCommand(qftcmder.NewQFTCmd())
	cmd.AddCommand(errdetectcmder.NewErrDetectCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
