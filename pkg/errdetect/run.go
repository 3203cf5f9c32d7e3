package errdetect

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"qdemos/pkg/circuit"
	"qdemos/pkg/diagram"
	"qdemos/pkg/simulator"
)

// Result is everything the detection demo displays.
type Result struct {
	Circuit  *circuit.Circuit
	Diagram  string
	QASM     string
	Fault    Fault
	Syndrome Syndrome
}

// Runner runs the detection pipeline. Rand supplies the fault draw; a nil
// Rand uses a randomly seeded source.
type Runner struct {
	Sim  simulator.Simulator
	Rand *rand.Rand

	mu sync.Mutex
}

// NewRunner returns a runner drawing faults from r.
func NewRunner(sim simulator.Simulator, r *rand.Rand) *Runner {
	return &Runner{Sim: sim, Rand: r}
}

// Run draws a fault and runs the circuit once.
func (r *Runner) Run(a, b float64) (*Result, error) {
	if err := Validate(a, b); err != nil {
		return nil, err
	}
	return r.RunWithFault(a, b, FaultForDraw(r.draw()))
}

// RunWithFault runs the circuit once with the given fault injected.
func (r *Runner) RunWithFault(a, b float64, f Fault) (*Result, error) {
	if err := Validate(a, b); err != nil {
		return nil, err
	}

	c := Build(a, b, f)
	m, err := r.Sim.Sample(c, 1)
	if err != nil {
		return nil, fmt.Errorf("sample error detection circuit: %w", err)
	}
	m1, ok1 := m.First(KeyM1)
	m2, ok2 := m.First(KeyM2)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("sample error detection circuit: missing measurement keys in %v", m)
	}

	return &Result{
		Circuit:  c,
		Diagram:  diagram.Render(c, diagram.Plain),
		QASM:     circuit.ToQASM(c),
		Fault:    f,
		Syndrome: Syndrome{M1: m1, M2: m2},
	}, nil
}

func (r *Runner) draw() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Rand == nil {
		r.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return r.Rand.Float64()
}
