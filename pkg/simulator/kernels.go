package simulator

import (
	"math"
	"math/cmplx"

	"qdemos/pkg/circuit"
	"qdemos/pkg/statevec"
)

// apply runs one unitary gate on the vector in place.
func apply(s *statevec.Vector, g circuit.Gate) {
	switch g.Kind {
	case circuit.Hadamard:
		applyH(s, g.Target())
	case circuit.PauliX:
		applyX(s, g.Target())
	case circuit.RotY:
		applyRY(s, g.Target(), g.Angle)
	case circuit.RotZ:
		applyRZ(s, g.Target(), g.Angle)
	case circuit.CPhase:
		applyCPhase(s, g.Control(), g.Target(), g.Angle)
	case circuit.Swap:
		applySWAP(s, g.Qubits[0], g.Qubits[1])
	case circuit.CNOT:
		applyCX(s, g.Control(), g.Target())
	}
}

func applyH(s *statevec.Vector, q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	bit := s.Mask(q)
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = hFactor * (a0 + a1)
			s.Amplitudes[j] = hFactor * (a0 - a1)
		}
	}
}

func applyX(s *statevec.Vector, q int) {
	bit := s.Mask(q)
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// applyRY applies exp(-i theta Y / 2).
func applyRY(s *statevec.Vector, q int, theta float64) {
	bit := s.Mask(q)
	c := complex(math.Cos(theta/2), 0)
	sn := complex(math.Sin(theta/2), 0)
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = c*a0 - sn*a1
			s.Amplitudes[j] = sn*a0 + c*a1
		}
	}
}

// applyRZ applies exp(-i phi Z / 2).
func applyRZ(s *statevec.Vector, q int, phi float64) {
	bit := s.Mask(q)
	phase := cmplx.Exp(complex(0, phi/2))
	for i := range s.Amplitudes {
		if i&bit != 0 {
			s.Amplitudes[i] *= phase
		} else {
			s.Amplitudes[i] *= cmplx.Conj(phase)
		}
	}
}

// applyCPhase multiplies |11> on (control, target) by e^{i theta}.
func applyCPhase(s *statevec.Vector, control, target int, theta float64) {
	cBit := s.Mask(control)
	tBit := s.Mask(target)
	phase := cmplx.Exp(complex(0, theta))
	for i := range s.Amplitudes {
		if i&cBit != 0 && i&tBit != 0 {
			s.Amplitudes[i] *= phase
		}
	}
}

func applyCX(s *statevec.Vector, control, target int) {
	cBit := s.Mask(control)
	tBit := s.Mask(target)
	for i := range s.Amplitudes {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func applySWAP(s *statevec.Vector, q1, q2 int) {
	bit1 := s.Mask(q1)
	bit2 := s.Mask(q2)
	for i := range s.Amplitudes {
		if i&bit1 != 0 && i&bit2 == 0 {
			j := (i &^ bit1) | bit2
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// probOne returns the probability of measuring qubit q as 1.
func probOne(s *statevec.Vector, q int) float64 {
	bit := s.Mask(q)
	p := 0.0
	for i, a := range s.Amplitudes {
		if i&bit != 0 {
			p += real(a * cmplx.Conj(a))
		}
	}
	return p
}

// collapse projects qubit q onto outcome and renormalizes.
func collapse(s *statevec.Vector, q, outcome int, prob float64) {
	bit := s.Mask(q)
	norm := complex(1/math.Sqrt(prob), 0)
	for i := range s.Amplitudes {
		set := i&bit != 0
		if set == (outcome == 1) {
			s.Amplitudes[i] *= norm
		} else {
			s.Amplitudes[i] = 0
		}
	}
}
