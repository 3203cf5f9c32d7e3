package qft

import (
	"fmt"
	"strings"

	"qdemos/pkg/circuit"
	"qdemos/pkg/diagram"
	"qdemos/pkg/simulator"
	"qdemos/pkg/statevec"
)

// Decimals is the rounding applied to the displayed final state.
const Decimals = 3

// Result is everything the QFT demo displays.
type Result struct {
	Circuit            *circuit.Circuit
	Diagram            string
	QASM               string
	Initial            *statevec.Vector
	Final              *statevec.Vector
	Rounded            *statevec.Vector
	QubitProbabilities []statevec.QubitProbability
}

// Runner runs the QFT pipeline against an injected simulator.
type Runner struct {
	Sim    simulator.Simulator
	Policy SwapPolicy
}

// Run validates n, parses stateText (empty means |0...0>), builds the circuit
// and simulates it. Validation errors abort before simulation.
func (r Runner) Run(n int, stateText string) (*Result, error) {
	if !ValidQubits(n) {
		return nil, fmt.Errorf("%w, got %d", ErrQubitCount, n)
	}

	var initial *statevec.Vector
	if strings.TrimSpace(stateText) == "" {
		initial = statevec.Zero(n)
	} else {
		v, err := statevec.Parse(stateText, n)
		if err != nil {
			return nil, err
		}
		initial = v
	}

	c, _, err := Build(n, r.Policy)
	if err != nil {
		return nil, err
	}

	final, err := r.Sim.SimulateState(c, initial)
	if err != nil {
		return nil, fmt.Errorf("simulate qft: %w", err)
	}

	rounded := final.Round(Decimals)
	return &Result{
		Circuit:            c,
		Diagram:            diagram.Render(c, diagram.Plain),
		QASM:               circuit.ToQASM(c),
		Initial:            initial,
		Final:              final,
		Rounded:            rounded,
		QubitProbabilities: final.QubitProbabilities(),
	}, nil
}
