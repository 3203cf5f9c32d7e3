package statevec

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Normalization tolerance, the same absolute and relative slack numpy's
// isclose applies against 1.0.
const (
	normAbsTol = 1e-8
	normRelTol = 1e-5
)

var errEmptyToken = errors.New("empty token")

// Parse turns a comma-separated list of complex literals into a normalized
// state vector over n qubits. It checks, in order, that every token parses,
// that there are exactly 2^n of them, and that they are normalized.
func Parse(text string, n int) (*Vector, error) {
	tokens := strings.Split(text, ",")
	amps := make([]complex128, 0, len(tokens))

	for i, tok := range tokens {
		a, err := ParseComplex(tok)
		if err != nil {
			return nil, &ParseError{Token: strings.TrimSpace(tok), Index: i, Err: err}
		}
		amps = append(amps, a)
	}

	want := 1 << n
	if len(amps) != want {
		return nil, &LengthMismatchError{Got: len(amps), Want: want}
	}

	v := &Vector{Amplitudes: amps, NumQubits: n}
	if norm := v.Norm(); !IsNormalized(norm) {
		return nil, &NormalizationError{Norm: norm}
	}
	return v, nil
}

// IsNormalized reports whether a sum of squared magnitudes is close enough to 1.
func IsNormalized(norm float64) bool {
	return math.Abs(norm-1) <= normAbsTol+normRelTol
}

// ParseComplex parses a single complex literal. It accepts real numbers
// ("1", "-0.5", "1e-3"), imaginary parts with a j, J or i suffix ("0.5-0.5j",
// "1j", "-j"), and an optional pair of surrounding parentheses.
func ParseComplex(tok string) (complex128, error) {
	s := strings.TrimSpace(tok)
	if s == "" {
		return 0, errEmptyToken
	}
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSpace(s[1 : len(s)-1])
		if s == "" {
			return 0, errEmptyToken
		}
	}

	if last := s[len(s)-1]; last == 'j' || last == 'J' || last == 'i' || last == 'I' {
		s = s[:len(s)-1]
		// a bare unit: "j", "+j", "1-j"
		if s == "" || s == "+" || s == "-" || isBareSign(s) {
			s += "1"
		}
		s += "i"
	}

	if strings.ContainsAny(s, " \t") {
		return 0, strconv.ErrSyntax
	}

	return strconv.ParseComplex(s, 128)
}

// isBareSign reports whether s ends in a sign that separates the real and
// imaginary parts, as opposed to an exponent sign.
func isBareSign(s string) bool {
	n := len(s)
	if n < 2 || (s[n-1] != '+' && s[n-1] != '-') {
		return false
	}
	prev := s[n-2]
	return prev != 'e' && prev != 'E'
}

// Default returns the default form text for n qubits: the basis state |0...0>.
func Default(n int) string {
	parts := make([]string, 1<<n)
	for i := range parts {
		parts[i] = "0"
	}
	parts[0] = "1"
	return strings.Join(parts, ",")
}
