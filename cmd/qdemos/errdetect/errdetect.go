// Package errdetectcmder provides the errdetect command, a one-shot run of the
// bit-flip error-detection demo.
package errdetectcmder

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"qdemos/cmd/qdemos/cmdenv"
	"qdemos/pkg/config"
	"qdemos/pkg/diagram"
	"qdemos/pkg/errdetect"
)

type errdetectCommander struct {
	flags config.FlagSet

	a      float64
	b      float64
	seed   uint64
	fault  string
	asJSON bool
}

var errdetectFlags = []string{
	config.FlagA,
	config.FlagB,
	config.FlagSeed,
}

const errdetectLongDesc string = `Encode a|0> + b|1> on three qubits, inject at most one bit-flip, measure
the two parity ancillas and print the circuit, the injected error and the
measured syndrome.

The error is drawn uniformly from: none, or a flip on qubit 0, 1 or 2.
--fault forces one of them; --seed makes the draw repeatable.

Examples:
  qdemos errdetect --a 0.6 --b 0.8
  qdemos errdetect --fault q1
  qdemos errdetect --seed 42 --json`

const errdetectShortDesc string = "Run the error-detection demo once"

// Output is the --json form of one run.
type Output struct {
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Fault     string  `json:"fault"`
	Syndrome  string  `json:"syndrome"`
	M1        int     `json:"m1"`
	M2        int     `json:"m2"`
	Diagnosis string  `json:"diagnosis"`
}

func NewErrDetectCmd() *cobra.Command {
	cmder := &errdetectCommander{flags: config.Flags}

	cmd := &cobra.Command{
		Use:   "errdetect",
		Short: errdetectShortDesc,
		Long:  errdetectLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := cmdenv.Load(cmd, errdetectFlags...)
			if err != nil {
				return err
			}
			return cmder.run(cmd.OutOrStdout(), env)
		},
	}

	config.AddFloat64Flag(cmd, cmder.flags, config.FlagA, &cmder.a)
	config.AddFloat64Flag(cmd, cmder.flags, config.FlagB, &cmder.b)
	config.AddUint64Flag(cmd, cmder.flags, config.FlagSeed, &cmder.seed)
	cmd.Flags().StringVarP(&cmder.fault, "fault", "f", "", "Force the injected error: none, q0, q1 or q2 (default random)")
	cmd.Flags().BoolVar(&cmder.asJSON, "json", false, "Print the result as JSON")

	return cmd
}

func (c *errdetectCommander) run(out io.Writer, env *cmdenv.Env) error {
	a, b := env.Config.ErrDetect.A, env.Config.ErrDetect.B

	var (
		res *errdetect.Result
		err error
	)
	if c.fault != "" {
		f, perr := errdetect.ParseFault(c.fault)
		if perr != nil {
			return perr
		}
		res, err = env.Detector.RunWithFault(a, b, f)
	} else {
		res, err = env.Detector.Run(a, b)
	}
	if err != nil {
		return err
	}
	env.Logger.Debug("error detection simulated", "fault", res.Fault.String(), "syndrome", res.Syndrome.String())

	if c.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(Output{
			A:         a,
			B:         b,
			Fault:     res.Fault.String(),
			Syndrome:  res.Syndrome.String(),
			M1:        res.Syndrome.M1,
			M2:        res.Syndrome.M2,
			Diagnosis: res.Syndrome.Diagnose().String(),
		})
	}

	_, err = fmt.Fprintf(out, "%s\n\nInjected error: %s\nMeasurement:    m1 = %d, m2 = %d\nSyndrome says:  %s\n",
		diagram.Render(res.Circuit, cmdenv.DiagramStyle(out)), res.Fault, res.Syndrome.M1, res.Syndrome.M2, res.Syndrome.Diagnose())
	return err
}
