// Package tuicmder provides the tui command.
package tuicmder

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"qdemos/cmd/qdemos/cmdenv"
	"qdemos/pkg/config"
	"qdemos/pkg/logger"
	"qdemos/tui"
)

type tuiCommander struct {
	flags config.FlagSet

	qubits   int
	policy   string
	a        float64
	b        float64
	seed     uint64
	savePath string
	logFile  string
}

var tuiFlags = []string{
	config.FlagQubits,
	config.FlagSwapPolicy,
	config.FlagA,
	config.FlagB,
	config.FlagSeed,
}

const tuiLongDesc string = `Open the terminal form.

Both demos are tabs (ctrl+t switches). Enter simulates, ctrl+s saves the last
circuit as OpenQASM, ctrl+r resets the inputs and esc quits.

Logs would garble the screen, so they are discarded unless --log-file is set.`

const tuiShortDesc string = "Open the terminal form"

func NewTUICmd() *cobra.Command {
	cmder := &tuiCommander{flags: config.Flags}

	cmd := &cobra.Command{
		Use:   "tui",
		Short: tuiShortDesc,
		Long:  tuiLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := cmdenv.Load(cmd, tuiFlags...)
			if err != nil {
				return err
			}
			return cmder.run(cmd, env)
		},
	}

	config.AddIntFlag(cmd, cmder.flags, config.FlagQubits, &cmder.qubits)
	config.AddStringFlag(cmd, cmder.flags, config.FlagSwapPolicy, &cmder.policy)
	config.AddFloat64Flag(cmd, cmder.flags, config.FlagA, &cmder.a)
	config.AddFloat64Flag(cmd, cmder.flags, config.FlagB, &cmder.b)
	config.AddUint64Flag(cmd, cmder.flags, config.FlagSeed, &cmder.seed)
	cmd.Flags().StringVarP(&cmder.savePath, "out", "o", tui.DefaultSavePath, "File ctrl+s writes the last circuit to")
	cmd.Flags().StringVar(&cmder.logFile, "log-file", "", "Append logs to this file")

	return cmd
}

func (c *tuiCommander) run(cmd *cobra.Command, env *cmdenv.Env) error {
	var w io.Writer = io.Discard
	if c.logFile != "" {
		f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	debug, _ := cmd.Flags().GetBool("debug")
	log := logger.New(
		logger.WithDebug(debug),
		logger.WithJSON(env.Config.Log.JSON),
		logger.WithWriter(w),
	)

	cfg := env.Config
	model := tui.New(tui.Options{
		QFT:      env.QFT,
		Detector: env.Detector,
		Logger:   log,
		Qubits:   cfg.QFT.Qubits,
		Policy:   cfg.SwapPolicy(),
		A:        cfg.ErrDetect.A,
		B:        cfg.ErrDetect.B,
		SavePath: c.savePath,
	})

	log.Info("starting terminal form", "qubits", cfg.QFT.Qubits, "policy", cfg.SwapPolicy().String())
	return tui.Run(model)
}
