// Package simulator defines the simulation capability the demos depend on and
// ships a reference state-vector implementation of it.
package simulator

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"qdemos/pkg/circuit"
	"qdemos/pkg/statevec"
)

var (
	ErrNotFrozen              = errors.New("simulator: circuit is not frozen")
	ErrQubitMismatch          = errors.New("simulator: initial state does not match circuit qubit count")
	ErrMeasurementInStateMode = errors.New("simulator: circuit contains measurements; use Sample")
	ErrRepetitions            = errors.New("simulator: repetitions must be at least 1")
)

// Measurements maps a measurement key to the bit recorded in each repetition.
type Measurements map[string][]int

// First returns the bit recorded for key in the first repetition.
func (m Measurements) First(key string) (int, bool) {
	bits, ok := m[key]
	if !ok || len(bits) == 0 {
		return 0, false
	}
	return bits[0], true
}

// Simulator computes final states and samples measurements for a circuit.
type Simulator interface {
	// SimulateState returns the final state vector. A nil initial state
	// means |0...0>.
	SimulateState(c *circuit.Circuit, initial *statevec.Vector) (*statevec.Vector, error)

	// Sample runs the circuit repetitions times and returns the measured bits.
	Sample(c *circuit.Circuit, repetitions int) (Measurements, error)
}

// Option configures a StateVector simulator.
type Option func(*StateVector)

// WithRand sets the random source used to sample measurement outcomes.
func WithRand(r *rand.Rand) Option {
	return func(s *StateVector) {
		s.rng = r
	}
}

// WithSeed seeds the random source deterministically.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// StateVector is the reference simulator: exact state-vector propagation
// through the gate sequence.
type StateVector struct {
	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

var _ Simulator = (*StateVector)(nil)

// NewStateVector returns a reference simulator. Without WithRand or WithSeed
// it samples from a randomly seeded source.
func NewStateVector(opts ...Option) *StateVector {
	s := &StateVector{}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// SimulateState implements Simulator.
func (s *StateVector) SimulateState(c *circuit.Circuit, initial *statevec.Vector) (*statevec.Vector, error) {
	if !c.Frozen() {
		return nil, ErrNotFrozen
	}
	if c.HasMeasurements() {
		return nil, ErrMeasurementInStateMode
	}

	var state *statevec.Vector
	if initial == nil {
		state = statevec.Zero(c.NumQubits)
	} else {
		if initial.NumQubits != c.NumQubits || len(initial.Amplitudes) != 1<<c.NumQubits {
			return nil, fmt.Errorf("%w: state has %d qubits, circuit has %d", ErrQubitMismatch, initial.NumQubits, c.NumQubits)
		}
		state = initial.Clone()
	}

	for _, g := range c.Ops() {
		apply(state, g)
	}
	return state, nil
}

// Sample implements Simulator.
func (s *StateVector) Sample(c *circuit.Circuit, repetitions int) (Measurements, error) {
	if !c.Frozen() {
		return nil, ErrNotFrozen
	}
	if repetitions < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrRepetitions, repetitions)
	}

	ops := c.Ops()
	out := make(Measurements)
	for _, key := range c.MeasurementKeys() {
		out[key] = make([]int, 0, repetitions)
	}

	for range repetitions {
		state := statevec.Zero(c.NumQubits)
		for _, g := range ops {
			if g.Kind != circuit.Measure {
				apply(state, g)
				continue
			}
			bit := s.measure(state, g.Target())
			out[g.Key] = append(out[g.Key], bit)
		}
	}

	return out, nil
}

// measure samples qubit q and collapses the state onto the outcome.
func (s *StateVector) measure(state *statevec.Vector, q int) int {
	p1 := probOne(state, q)

	s.mu.Lock()
	draw := s.rng.Float64()
	s.mu.Unlock()

	if draw < p1 {
		collapse(state, q, 1, p1)
		return 1
	}
	collapse(state, q, 0, 1-p1)
	return 0
}
