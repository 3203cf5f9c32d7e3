// Package diagram draws circuits as text, one column per moment and three
// text rows per qubit.
package diagram

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qdemos/pkg/circuit"
)

// Render draws the circuit. Trailing spaces are trimmed from every line.
func Render(c *circuit.Circuit, st Style) string {
	moments := circuit.Moments(c)

	widths := make([]int, len(moments))
	for i, m := range moments {
		widths[i] = columnWidth(m)
	}

	var sb strings.Builder
	for qubit := range c.NumQubits {
		topLine := strings.Repeat(" ", labelVisualW)
		label := fmt.Sprintf("q[%d]", qubit)
		midLine := st.Label(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for i, m := range moments {
			top, mid, bot := renderCell(m, qubit, widths[i], st)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(strings.TrimRight(topLine, " ") + "\n")
		sb.WriteString(strings.TrimRight(midLine, " ") + "\n")
		sb.WriteString(strings.TrimRight(botLine, " ") + "\n")
	}

	return sb.String()
}

// columnWidth sizes a moment so its widest gate fits with wire on both sides.
// Wire symbols start on the column's centre so the vertical connector lines
// up; a symbol with a suffix therefore needs room to the right of centre.
func columnWidth(m circuit.Moment) int {
	inner := minInnerW
	for _, g := range m.Gates {
		if len(g.Qubits) > 1 {
			for _, q := range g.Qubits {
				inner = max(inner, 2*lipgloss.Width(symbol(g, q))-1)
			}
			continue
		}
		inner = max(inner, lipgloss.Width(label(g))+2)
	}
	return inner + 2*wireMargin
}

// label is the text inside a single-qubit gate box.
func label(g circuit.Gate) string {
	switch g.Kind {
	case circuit.Hadamard:
		return "H"
	case circuit.PauliX:
		return "X"
	case circuit.RotY:
		return "Ry(" + circuit.FormatAngle(g.Angle) + ")"
	case circuit.RotZ:
		return "Rz(" + circuit.FormatAngle(g.Angle) + ")"
	case circuit.Measure:
		return "M:" + g.Key
	default:
		return g.Kind.String()
	}
}

// symbol is the wire symbol a multi-qubit gate draws on one of its qubits.
func symbol(g circuit.Gate, qubit int) string {
	switch g.Kind {
	case circuit.Swap:
		return "×"
	case circuit.CPhase:
		if qubit == g.Control() {
			return "●"
		}
		return "●^" + circuit.FormatExponent(g.Angle)
	default:
		if qubit == g.Control() {
			return "●"
		}
		return "⊕"
	}
}

// renderCell returns 3 lines (top, mid, bot) for one qubit in one moment.
// Each line is exactly width visual characters wide.
func renderCell(m circuit.Moment, qubit, width int, st Style) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", width)
	centre := (width - 1) / 2
	vertRow := strings.Repeat(" ", centre) + st.Connector("│") + strings.Repeat(" ", width-centre-1)

	onWire := func(sym string) string {
		return strings.Repeat("─", centre) + sym + strings.Repeat("─", width-centre-lipgloss.Width(sym))
	}

	if g, ok := m.GateAt(qubit); ok {
		if len(g.Qubits) > 1 {
			lo, hi := g.Span()
			top, bot = emptyRow, emptyRow
			if qubit > lo {
				top = vertRow
			}
			if qubit < hi {
				bot = vertRow
			}
			mid = onWire(st.Gate(symbol(g, qubit)))
			return
		}

		name := label(g)
		nameW := lipgloss.Width(name)
		margin := (width - nameW - 2) / 2
		rightMargin := width - margin - nameW - 2

		top = strings.Repeat(" ", margin) + st.Gate("┌"+strings.Repeat("─", nameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + st.Gate("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + st.Gate("└"+strings.Repeat("─", nameW)+"┘") + strings.Repeat(" ", rightMargin)
		return
	}

	if _, ok := m.Crossing(qubit); ok {
		return vertRow, onWire(st.Connector("┼")), vertRow
	}

	return emptyRow, strings.Repeat("─", width), emptyRow
}
