// Package statevec holds state vectors and parses user-supplied initial states.
//
// Qubit 0 is the most significant bit of a basis-state index, so for three
// qubits the amplitude at index 1 belongs to |001>.
package statevec

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// Vector is a complex amplitude array of length 2^NumQubits.
type Vector struct {
	Amplitudes []complex128
	NumQubits  int
}

// Zero returns the basis state |0...0> over n qubits.
func Zero(n int) *Vector {
	amps := make([]complex128, 1<<n)
	amps[0] = 1
	return &Vector{Amplitudes: amps, NumQubits: n}
}

// Clone returns a deep copy.
func (v *Vector) Clone() *Vector {
	amps := make([]complex128, len(v.Amplitudes))
	copy(amps, v.Amplitudes)
	return &Vector{Amplitudes: amps, NumQubits: v.NumQubits}
}

// Mask returns the index bit that belongs to qubit q.
func (v *Vector) Mask(q int) int {
	return 1 << (v.NumQubits - 1 - q)
}

// Norm returns the sum of squared magnitudes.
func (v *Vector) Norm() float64 {
	sum := 0.0
	for _, a := range v.Amplitudes {
		sum += real(a * cmplx.Conj(a))
	}
	return sum
}

// Probabilities returns |a_i|^2 for every basis state.
func (v *Vector) Probabilities() []float64 {
	probs := make([]float64, len(v.Amplitudes))
	for i, a := range v.Amplitudes {
		probs[i] = real(a * cmplx.Conj(a))
	}
	return probs
}

// QubitProbability holds the marginal probabilities of one qubit.
type QubitProbability struct {
	Prob0 float64 `json:"p0"`
	Prob1 float64 `json:"p1"`
}

// QubitProbabilities returns the marginal P(0) and P(1) of every qubit.
func (v *Vector) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, v.NumQubits)

	for i, a := range v.Amplitudes {
		prob := real(a * cmplx.Conj(a))
		for q := range v.NumQubits {
			if i&v.Mask(q) != 0 {
				probs[q].Prob1 += prob
			} else {
				probs[q].Prob0 += prob
			}
		}
	}

	return probs
}

// Round rounds the real and imaginary part of every amplitude to the given
// number of decimals, returning a new vector.
func (v *Vector) Round(decimals int) *Vector {
	out := v.Clone()
	scale := math.Pow(10, float64(decimals))
	for i, a := range out.Amplitudes {
		out.Amplitudes[i] = complex(roundTo(real(a), scale), roundTo(imag(a), scale))
	}
	return out
}

// roundTo rounds half to even, like numpy's around; it also folds -0 into 0.
func roundTo(x, scale float64) float64 {
	r := math.RoundToEven(x*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}

// Ket returns the basis label of index i, e.g. |011>.
func (v *Vector) Ket(i int) string {
	return fmt.Sprintf("|%0*b⟩", v.NumQubits, i)
}

// FormatAmplitude renders a complex amplitude as "0.354-0.125j".
func FormatAmplitude(a complex128, decimals int) string {
	return fmt.Sprintf("%.*f%+.*fj", decimals, real(a), decimals, imag(a))
}

// Format renders the vector as a bracketed list of amplitudes.
func (v *Vector) Format(decimals int) string {
	parts := make([]string, len(v.Amplitudes))
	for i, a := range v.Amplitudes {
		parts[i] = FormatAmplitude(a, decimals)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Term is one basis state with non-negligible amplitude.
type Term struct {
	Index     int
	Ket       string
	Amplitude complex128
	Prob      float64
	Phase     float64
}

// Terms returns every basis state with probability above 1e-10, in index order.
func (v *Vector) Terms() []Term {
	terms := make([]Term, 0, len(v.Amplitudes))

	for i, a := range v.Amplitudes {
		prob := real(a * cmplx.Conj(a))
		if prob > 1e-10 {
			terms = append(terms, Term{
				Index:     i,
				Ket:       v.Ket(i),
				Amplitude: a,
				Prob:      prob,
				Phase:     cmplx.Phase(a),
			})
		}
	}

	return terms
}
