// Package errdetect is the bit-flip detection demo: one logical qubit spread
// over three physical qubits, one optional injected fault, and two parity
// checks read out through ancillas.
package errdetect

import (
	"errors"
	"fmt"
	"math"

	"qdemos/pkg/circuit"
)

// Qubit layout.
const (
	NumQubits = 5
	ancillaA  = 3 // parity of qubits 0 and 1
	ancillaB  = 4 // parity of qubits 0 and 2

	KeyM1 = "m1"
	KeyM2 = "m2"
)

// Fault is the error injected into the encoded qubits.
type Fault int

const (
	NoError Fault = iota
	BitFlip0
	BitFlip1
	BitFlip2
)

var faultLabels = map[Fault]string{
	NoError:  "No Error",
	BitFlip0: "Bit-flip on qubit 0",
	BitFlip1: "Bit-flip on qubit 1",
	BitFlip2: "Bit-flip on qubit 2",
}

func (f Fault) String() string {
	if l, ok := faultLabels[f]; ok {
		return l
	}
	return fmt.Sprintf("Fault(%d)", int(f))
}

// Qubit returns the qubit the fault flips, or -1 for NoError.
func (f Fault) Qubit() int {
	switch f {
	case BitFlip0:
		return 0
	case BitFlip1:
		return 1
	case BitFlip2:
		return 2
	default:
		return -1
	}
}

// ErrFault is returned by ParseFault for an unrecognised name.
var ErrFault = errors.New("errdetect: unknown fault")

// ParseFault accepts none, q0, q1 and q2.
func ParseFault(s string) (Fault, error) {
	switch s {
	case "none", "no-error":
		return NoError, nil
	case "q0", "0":
		return BitFlip0, nil
	case "q1", "1":
		return BitFlip1, nil
	case "q2", "2":
		return BitFlip2, nil
	}
	return NoError, fmt.Errorf("%w %q (want none, q0, q1 or q2)", ErrFault, s)
}

// FaultForDraw maps a uniform draw in [0,1) to a fault by quartile.
// Draws outside the interval are clamped onto it.
func FaultForDraw(p float64) Fault {
	switch {
	case p < 0.25:
		return NoError
	case p < 0.5:
		return BitFlip0
	case p < 0.75:
		return BitFlip1
	default:
		return BitFlip2
	}
}

// Angles returns the rotations that prepare qubit 0: theta = 2*arccos(|a|)
// and phi = arg(b) for a real b.
func Angles(a, b float64) (theta, phi float64) {
	theta = 2 * math.Acos(math.Min(math.Abs(a), 1))
	if b < 0 {
		phi = math.Pi
	}
	return theta, phi
}

// Build returns the frozen 5-qubit detection circuit for amplitudes a, b with
// fault f injected after encoding.
func Build(a, b float64, f Fault) *circuit.Circuit {
	theta, phi := Angles(a, b)

	c := circuit.New(NumQubits)
	c.AppendAll(
		circuit.RY(0, theta),
		circuit.RZ(0, phi),
		circuit.CX(0, 1),
		circuit.CX(0, 2),
	)
	if q := f.Qubit(); q >= 0 {
		c.Append(circuit.X(q))
	}
	c.AppendAll(
		circuit.CX(0, ancillaA),
		circuit.CX(1, ancillaA),
		circuit.CX(0, ancillaB),
		circuit.CX(2, ancillaB),
		circuit.M(ancillaA, KeyM1),
		circuit.M(ancillaB, KeyM2),
	)
	return c.Freeze()
}

// Syndrome is the pair of parity bits read from the ancillas.
type Syndrome struct {
	M1 int `json:"m1"`
	M2 int `json:"m2"`
}

// Diagnose returns the fault the syndrome points at.
func (s Syndrome) Diagnose() Fault {
	switch {
	case s.M1 == 1 && s.M2 == 1:
		return BitFlip0
	case s.M1 == 1:
		return BitFlip1
	case s.M2 == 1:
		return BitFlip2
	default:
		return NoError
	}
}

func (s Syndrome) String() string {
	return fmt.Sprintf("%d%d", s.M1, s.M2)
}

// RangeError reports an amplitude parameter outside [-1, 1].
type RangeError struct {
	Name  string
	Value float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be between -1 and 1, got %g", e.Name, e.Value)
}

// Validate checks both amplitude parameters.
func Validate(a, b float64) error {
	if math.IsNaN(a) || a < -1 || a > 1 {
		return &RangeError{Name: "a", Value: a}
	}
	if math.IsNaN(b) || b < -1 || b > 1 {
		return &RangeError{Name: "b", Value: b}
	}
	return nil
}
