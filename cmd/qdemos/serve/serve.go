// Package servecmder provides the serve command for the web form.
package servecmder

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"qdemos/cmd/qdemos/cmdenv"
	"qdemos/pkg/config"
	"qdemos/web"
)

type serveCommander struct {
	flags config.FlagSet

	listen   string
	qubits   int
	policy   string
	a        float64
	b        float64
	seed     uint64
	jsonLogs bool
}

var serveFlags = []string{
	config.FlagListen,
	config.FlagQubits,
	config.FlagSwapPolicy,
	config.FlagA,
	config.FlagB,
	config.FlagSeed,
	config.FlagJSONLogs,
}

const serveLongDesc string = `Serve the demo web form.

The page offers both demos as tabs. The same operations are available as JSON:
  POST /api/qft          {"qubits": 3, "state": "1,0,0,0,0,0,0,0"}
  POST /api/errdetect    {"a": 0.6, "b": 0.8}
  GET  /ping`

const serveShortDesc string = "Serve the demo web form"

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{flags: config.Flags}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := cmdenv.Load(cmd, serveFlags...)
			if err != nil {
				return err
			}
			return cmder.run(env)
		},
	}

	config.AddStringFlag(cmd, cmder.flags, config.FlagListen, &cmder.listen)
	config.AddIntFlag(cmd, cmder.flags, config.FlagQubits, &cmder.qubits)
	config.AddStringFlag(cmd, cmder.flags, config.FlagSwapPolicy, &cmder.policy)
	config.AddFloat64Flag(cmd, cmder.flags, config.FlagA, &cmder.a)
	config.AddFloat64Flag(cmd, cmder.flags, config.FlagB, &cmder.b)
	config.AddUint64Flag(cmd, cmder.flags, config.FlagSeed, &cmder.seed)
	config.AddBoolFlag(cmd, cmder.flags, config.FlagJSONLogs, &cmder.jsonLogs)

	return cmd
}

func (c *serveCommander) run(env *cmdenv.Env) error {
	cfg := env.Config

	server, err := web.NewServer(web.Config{
		ListenAddr: cfg.Server.Listen,
		Qubits:     cfg.QFT.Qubits,
		SwapPolicy: cfg.SwapPolicy(),
		A:          cfg.ErrDetect.A,
		B:          cfg.ErrDetect.B,
	}, env.QFT, env.Detector, env.Logger)
	if err != nil {
		return fmt.Errorf("creating web server: %w", err)
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("web server error: %w", err)
		}
	}()

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		env.Logger.Info("received signal, shutting down", "signal", sig.String())
		return server.Shutdown()
	}
}
