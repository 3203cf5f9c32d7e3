// Package circuit holds the small gate model shared by the QFT and
// error-detection demos.
package circuit

import (
	"fmt"
	"slices"
)

// Kind identifies the operation a Gate performs.
type Kind int

const (
	Hadamard Kind = iota
	CPhase
	Swap
	RotY
	RotZ
	CNOT
	PauliX
	Measure
)

var kindNames = map[Kind]string{
	Hadamard: "H",
	CPhase:   "CPHASE",
	Swap:     "SWAP",
	RotY:     "RY",
	RotZ:     "RZ",
	CNOT:     "CX",
	PauliX:   "X",
	Measure:  "MEASURE",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Arity returns the number of qubits a gate of this kind acts on.
func (k Kind) Arity() int {
	switch k {
	case CPhase, Swap, CNOT:
		return 2
	default:
		return 1
	}
}

// Gate is a single operation placed on the circuit.
type Gate struct {
	Kind   Kind
	Qubits []int   // [target] or [control, target]; Swap is symmetric
	Angle  float64 // RotY, RotZ and CPhase only
	Key    string  // measurement key, Measure only
}

// Target returns the qubit the gate acts on (the last listed qubit).
func (g Gate) Target() int {
	return g.Qubits[len(g.Qubits)-1]
}

// Control returns the control qubit of a two-qubit gate, or -1.
func (g Gate) Control() int {
	if len(g.Qubits) < 2 {
		return -1
	}
	return g.Qubits[0]
}

// references reports whether the gate touches the given qubit.
func (g Gate) references(qubit int) bool {
	return slices.Contains(g.Qubits, qubit)
}

// Span returns the lowest and highest qubit the gate touches.
func (g Gate) Span() (lo, hi int) {
	return slices.Min(g.Qubits), slices.Max(g.Qubits)
}

// Constructors. They do no range checking; Circuit.Append does.

func H(q int) Gate { return Gate{Kind: Hadamard, Qubits: []int{q}} }

func X(q int) Gate { return Gate{Kind: PauliX, Qubits: []int{q}} }

func RY(q int, theta float64) Gate { return Gate{Kind: RotY, Qubits: []int{q}, Angle: theta} }

func RZ(q int, phi float64) Gate { return Gate{Kind: RotZ, Qubits: []int{q}, Angle: phi} }

// CP is a controlled phase rotation by theta, equivalently CZ^(theta/pi).
func CP(control, target int, theta float64) Gate {
	return Gate{Kind: CPhase, Qubits: []int{control, target}, Angle: theta}
}

func SWAP(a, b int) Gate { return Gate{Kind: Swap, Qubits: []int{a, b}} }

func CX(control, target int) Gate { return Gate{Kind: CNOT, Qubits: []int{control, target}} }

func M(q int, key string) Gate { return Gate{Kind: Measure, Qubits: []int{q}, Key: key} }

// Circuit is an ordered, append-only sequence of gates over NumQubits qubits.
// Once frozen it can no longer be changed.
type Circuit struct {
	NumQubits int
	gates     []Gate
	frozen    bool
}

// New returns an empty circuit over n qubits.
func New(n int) *Circuit {
	return &Circuit{NumQubits: n}
}

// Append adds a gate to the end of the circuit.
// It panics on a frozen circuit or an invalid gate; both are programming errors
// in the builders that call it.
func (c *Circuit) Append(g Gate) {
	if c.frozen {
		panic("circuit: append to frozen circuit")
	}
	if err := c.check(g); err != nil {
		panic(err)
	}
	g.Qubits = slices.Clone(g.Qubits)
	c.gates = append(c.gates, g)
}

// AppendAll appends gates in order.
func (c *Circuit) AppendAll(gates ...Gate) {
	for _, g := range gates {
		c.Append(g)
	}
}

func (c *Circuit) check(g Gate) error {
	if len(g.Qubits) != g.Kind.Arity() {
		return fmt.Errorf("circuit: %s needs %d qubits, got %d", g.Kind, g.Kind.Arity(), len(g.Qubits))
	}
	for _, q := range g.Qubits {
		if q < 0 || q >= c.NumQubits {
			return fmt.Errorf("circuit: %s qubit %d out of range [0,%d)", g.Kind, q, c.NumQubits)
		}
	}
	if len(g.Qubits) == 2 && g.Qubits[0] == g.Qubits[1] {
		return fmt.Errorf("circuit: %s on duplicate qubit %d", g.Kind, g.Qubits[0])
	}
	if g.Kind == Measure && g.Key == "" {
		return fmt.Errorf("circuit: measurement on qubit %d has no key", g.Qubits[0])
	}
	return nil
}

// Freeze marks the circuit immutable and returns it.
func (c *Circuit) Freeze() *Circuit {
	c.frozen = true
	return c
}

// Frozen reports whether Freeze has been called.
func (c *Circuit) Frozen() bool {
	return c.frozen
}

// Len returns the number of gates.
func (c *Circuit) Len() int {
	return len(c.gates)
}

// Ops returns a copy of the gate sequence.
func (c *Circuit) Ops() []Gate {
	out := make([]Gate, len(c.gates))
	for i, g := range c.gates {
		g.Qubits = slices.Clone(g.Qubits)
		out[i] = g
	}
	return out
}

// Gate returns the i-th gate.
func (c *Circuit) Gate(i int) Gate {
	return c.gates[i]
}

// Count returns how many gates of the given kind the circuit holds.
func (c *Circuit) Count(kind Kind) int {
	n := 0
	for _, g := range c.gates {
		if g.Kind == kind {
			n++
		}
	}
	return n
}

// Qubits returns the ordered qubit indices [0, NumQubits).
func (c *Circuit) Qubits() []int {
	qs := make([]int, c.NumQubits)
	for i := range qs {
		qs[i] = i
	}
	return qs
}

// MeasurementKeys returns measurement keys in circuit order.
func (c *Circuit) MeasurementKeys() []string {
	var keys []string
	for _, g := range c.gates {
		if g.Kind == Measure {
			keys = append(keys, g.Key)
		}
	}
	return keys
}

// HasMeasurements reports whether any gate is a measurement.
func (c *Circuit) HasMeasurements() bool {
	return c.Count(Measure) > 0
}
