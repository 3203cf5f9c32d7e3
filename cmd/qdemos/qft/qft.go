// Package qftcmder provides the qft command, a one-shot run of the QFT demo.
package qftcmder

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"qdemos/cmd/qdemos/cmdenv"
	"qdemos/pkg/circuit"
	"qdemos/pkg/config"
	"qdemos/pkg/diagram"
	"qdemos/pkg/qft"
	"qdemos/pkg/statevec"
)

type qftCommander struct {
	flags config.FlagSet

	qubits int
	policy string
	state  string
	qasm   bool
}

var qftFlags = []string{
	config.FlagQubits,
	config.FlagSwapPolicy,
}

const qftLongDesc string = `Apply the quantum Fourier transform to an initial state and print the
circuit, the final state vector and each qubit's probabilities.

The state is a comma separated list of 2^n complex amplitudes, most
significant qubit first. It must be normalized. Without --state the input
is |0...0>.

Examples:
  qdemos qft -n 2 --state "0,1,0,0"
  qdemos qft -n 3 --swap-policy per-iteration
  qdemos qft -n 4 --qasm > qft4.qasm`

const qftShortDesc string = "Run the QFT demo once"

func NewQFTCmd() *cobra.Command {
	cmder := &qftCommander{flags: config.Flags}

	cmd := &cobra.Command{
		Use:   "qft",
		Short: qftShortDesc,
		Long:  qftLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := cmdenv.Load(cmd, qftFlags...)
			if err != nil {
				return err
			}
			return cmder.run(cmd.OutOrStdout(), env)
		},
	}

	config.AddIntFlag(cmd, cmder.flags, config.FlagQubits, &cmder.qubits)
	config.AddStringFlag(cmd, cmder.flags, config.FlagSwapPolicy, &cmder.policy)
	cmd.Flags().StringVarP(&cmder.state, "state", "s", "", "Initial state amplitudes (default |0...0>)")
	cmd.Flags().BoolVar(&cmder.qasm, "qasm", false, "Print only the OpenQASM 2.0 circuit")

	return cmd
}

func (c *qftCommander) run(out io.Writer, env *cmdenv.Env) error {
	n := env.Config.QFT.Qubits
	res, err := env.QFT.Run(n, c.state)
	if err != nil {
		return err
	}
	env.Logger.Debug("qft simulated", "qubits", n, "policy", env.QFT.Policy.String(), "gates", res.Circuit.Len())

	if c.qasm {
		_, err := io.WriteString(out, res.QASM)
		return err
	}
	return printResult(out, res, env.QFT.Policy)
}

func printResult(out io.Writer, res *qft.Result, policy qft.SwapPolicy) error {
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(out, format, args...)
		}
	}

	printf("Circuit: %d gates, depth %d, swap network %s\n\n", res.Circuit.Len(), circuit.Depth(res.Circuit), policy)
	printf("%s\n\n", diagram.Render(res.Circuit, cmdenv.DiagramStyle(out)))

	printf("Final state:\n%s\n\n", res.Rounded.Format(qft.Decimals))
	for _, t := range res.Final.Terms() {
		printf("  %s  %s  P %5.1f%%  phase %+.3f\n", t.Ket, statevec.FormatAmplitude(t.Amplitude, qft.Decimals), 100*t.Prob, t.Phase)
	}

	printf("\nQubit probabilities:\n")
	for q, p := range res.QubitProbabilities {
		printf("  q[%d]  P(0) %5.1f%%  P(1) %5.1f%%\n", q, 100*p.Prob0, 100*p.Prob1)
	}
	return err
}
