// Package cmdenv builds the config, logger and demo runners shared by the
// qdemos commands.
package cmdenv

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"qdemos/pkg/config"
	"qdemos/pkg/diagram"
	"qdemos/pkg/errdetect"
	"qdemos/pkg/logger"
	"qdemos/pkg/qft"
	"qdemos/pkg/simulator"
)

// faultStream keeps the fault draws apart from the simulator's samples when
// both are seeded from the same value.
const faultStream = 0x9e3779b97f4a7c15

// Env is everything a command needs to run a demo.
type Env struct {
	Config   *config.Config
	Logger   *slog.Logger
	QFT      qft.Runner
	Detector *errdetect.Runner
}

// Load reads --debug and --config, resolves the configuration with the given
// registry flags bound on top, and wires the runners.
func Load(cmd *cobra.Command, flagKeys ...string) (*Env, error) {
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return nil, fmt.Errorf("could not get debug flag: %w", err)
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not get config flag: %w", err)
	}

	v, err := config.InitViper(path)
	if err != nil {
		return nil, err
	}
	config.BindRegisteredFlags(v, cmd, config.Flags, flagKeys)

	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	log := logger.New(
		logger.WithDebug(debug),
		logger.WithJSON(cfg.Log.JSON),
		logger.WithPretty(cfg.Log.Pretty),
	)
	if f := v.ConfigFileUsed(); f != "" {
		log.Debug("using config file", "path", f)
	}

	sim, detector := newRunners(cfg.ErrDetect.Seed)

	return &Env{
		Config:   cfg,
		Logger:   log,
		QFT:      qft.Runner{Sim: sim, Policy: cfg.SwapPolicy()},
		Detector: detector,
	}, nil
}

// newRunners seeds the simulator and the fault draw from seed, or randomly
// when seed is 0.
func newRunners(seed uint64) (*simulator.StateVector, *errdetect.Runner) {
	if seed == 0 {
		sim := simulator.NewStateVector()
		return sim, errdetect.NewRunner(sim, nil)
	}

	sim := simulator.NewStateVector(simulator.WithSeed(seed))
	return sim, errdetect.NewRunner(sim, rand.New(rand.NewPCG(seed^faultStream, seed)))
}

// DiagramStyle colors diagrams written to a terminal and keeps them plain
// when out is a pipe, a file or a buffer.
func DiagramStyle(out io.Writer) diagram.Style {
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return diagram.Styled()
	}
	return diagram.Plain
}
