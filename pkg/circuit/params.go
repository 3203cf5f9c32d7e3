package circuit

import (
	"fmt"
	"math"
	"strconv"
)

// piForms lists the multiples of pi FormatAngle recognises.
var piForms = []struct {
	value   float64
	display string
}{
	{2 * math.Pi, "2*pi"},
	{math.Pi, "pi"},
	{math.Pi / 2, "pi/2"},
	{math.Pi / 3, "pi/3"},
	{math.Pi / 4, "pi/4"},
	{math.Pi / 6, "pi/6"},
	{math.Pi / 8, "pi/8"},
	{math.Pi / 16, "pi/16"},
	{math.Pi / 32, "pi/32"},
	{math.Pi / 64, "pi/64"},
	{math.Pi / 128, "pi/128"},
	{math.Pi / 256, "pi/256"},
	{math.Pi / 512, "pi/512"},
	{3 * math.Pi / 4, "3*pi/4"},
	{3 * math.Pi / 2, "3*pi/2"},
	{2 * math.Pi / 3, "2*pi/3"},
}

// FormatAngle formats an angle in radians for a diagram label, using pi
// notation when possible and four significant digits otherwise.
func FormatAngle(val float64) string {
	return formatAngle(val, 4)
}

// QASMAngle formats an angle for QASM output. Angles that are not a known
// multiple of pi keep every digit, so parsing the result gives val back.
func QASMAngle(val float64) string {
	return formatAngle(val, -1)
}

func formatAngle(val float64, prec int) string {
	if val == 0 {
		return "0"
	}
	for _, pf := range piForms {
		if math.Abs(val-pf.value) < 1e-10 {
			return pf.display
		}
		if math.Abs(val+pf.value) < 1e-10 {
			return "-" + pf.display
		}
	}
	return strconv.FormatFloat(val, 'g', prec, 64)
}

// Exponent returns theta/pi, the power a controlled-Z is raised to for a
// controlled phase of theta.
func Exponent(theta float64) float64 {
	return theta / math.Pi
}

// FormatExponent renders a controlled-phase exponent the way circuit
// diagrams usually show it, e.g. "0.5" or "0.0078125".
func FormatExponent(theta float64) string {
	return fmt.Sprintf("%g", Exponent(theta))
}
