// Package qft builds the quantum Fourier transform circuit and runs the QFT
// demo pipeline: parse the initial state, build, simulate, round.
package qft

import (
	"errors"
	"fmt"
	"math"

	"qdemos/pkg/circuit"
)

const (
	MinQubits = 2
	MaxQubits = 10
)

// ErrQubitCount is returned for a qubit count outside [MinQubits, MaxQubits].
var ErrQubitCount = fmt.Errorf("qft: qubit count must be between %d and %d", MinQubits, MaxQubits)

// SwapPolicy selects where the bit-reversal swap network goes.
type SwapPolicy int

const (
	// SwapOnce appends the swap network once, after every rotation.
	SwapOnce SwapPolicy = iota
	// SwapPerIteration appends a full swap network after the rotations of
	// every outer iteration. Its output generally differs from the DFT.
	SwapPerIteration
)

func (p SwapPolicy) String() string {
	switch p {
	case SwapOnce:
		return "once"
	case SwapPerIteration:
		return "per-iteration"
	default:
		return fmt.Sprintf("SwapPolicy(%d)", int(p))
	}
}

// ErrSwapPolicy is returned by ParseSwapPolicy for an unrecognised name.
var ErrSwapPolicy = errors.New("qft: unknown swap policy")

// ParseSwapPolicy accepts "once" (or "") and "per-iteration".
func ParseSwapPolicy(s string) (SwapPolicy, error) {
	switch s {
	case "", "once":
		return SwapOnce, nil
	case "per-iteration", "per_iteration":
		return SwapPerIteration, nil
	}
	return SwapOnce, fmt.Errorf("%w %q (want once or per-iteration)", ErrSwapPolicy, s)
}

// ValidQubits reports whether n is an accepted qubit count.
func ValidQubits(n int) bool {
	return n >= MinQubits && n <= MaxQubits
}

// PhaseAngle is the controlled-phase angle between qubits i < j: pi / 2^(j-i).
func PhaseAngle(i, j int) float64 {
	return math.Pi / float64(int(1)<<(j-i))
}

// Build returns the frozen QFT circuit over n qubits and the ordered qubit
// indices it acts on.
func Build(n int, policy SwapPolicy) (*circuit.Circuit, []int, error) {
	if !ValidQubits(n) {
		return nil, nil, fmt.Errorf("%w, got %d", ErrQubitCount, n)
	}

	c := circuit.New(n)
	for i := range n {
		c.Append(circuit.H(i))
		for j := i + 1; j < n; j++ {
			c.Append(circuit.CP(j, i, PhaseAngle(i, j)))
		}
		if policy == SwapPerIteration {
			appendSwaps(c, n)
		}
	}
	if policy == SwapOnce {
		appendSwaps(c, n)
	}

	return c.Freeze(), c.Qubits(), nil
}

// appendSwaps adds the bit-reversal network: k <-> n-1-k.
func appendSwaps(c *circuit.Circuit, n int) {
	for k := range n / 2 {
		c.Append(circuit.SWAP(k, n-1-k))
	}
}
