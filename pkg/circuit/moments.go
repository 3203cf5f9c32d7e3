package circuit

// Moment is a set of gates that can be drawn in the same column.
type Moment struct {
	Step  int
	Gates []Gate
}

// Moments layers the circuit into columns. A gate goes into the earliest
// step after every previous gate on the qubits it spans; a two-qubit gate
// spans every qubit between its endpoints so its connector never crosses
// another gate's box.
func Moments(c *Circuit) []Moment {
	// next free step per qubit
	free := make([]int, c.NumQubits)
	var moments []Moment

	for _, g := range c.gates {
		lo, hi := g.Span()
		step := 0
		for q := lo; q <= hi; q++ {
			step = max(step, free[q])
		}
		for q := lo; q <= hi; q++ {
			free[q] = step + 1
		}

		for len(moments) <= step {
			moments = append(moments, Moment{Step: len(moments)})
		}
		moments[step].Gates = append(moments[step].Gates, g)
	}

	return moments
}

// Depth returns the number of columns Moments would produce.
func Depth(c *Circuit) int {
	return len(Moments(c))
}

// GateAt returns the gate in the moment that touches the qubit, if any.
func (m Moment) GateAt(qubit int) (Gate, bool) {
	for _, g := range m.Gates {
		if g.references(qubit) {
			return g, true
		}
	}
	return Gate{}, false
}

// Crossing returns the multi-qubit gate whose connector passes over the
// qubit without touching it, if any.
func (m Moment) Crossing(qubit int) (Gate, bool) {
	for _, g := range m.Gates {
		if len(g.Qubits) < 2 || g.references(qubit) {
			continue
		}
		lo, hi := g.Span()
		if qubit > lo && qubit < hi {
			return g, true
		}
	}
	return Gate{}, false
}
