package circuit

import (
	"fmt"
	"strings"
)

// ToQASM generates OpenQASM 2.0 output from the circuit.
// Each measurement gets its own classical register named after its key.
func ToQASM(c *Circuit) string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", max(c.NumQubits, 1))

	keys := c.MeasurementKeys()
	for _, key := range keys {
		fmt.Fprintf(&sb, "creg %s[1];\n", key)
	}
	sb.WriteString("\n")

	for _, g := range c.gates {
		switch g.Kind {
		case Hadamard:
			fmt.Fprintf(&sb, "h q[%d];\n", g.Target())
		case PauliX:
			fmt.Fprintf(&sb, "x q[%d];\n", g.Target())
		case RotY:
			fmt.Fprintf(&sb, "ry(%s) q[%d];\n", QASMAngle(g.Angle), g.Target())
		case RotZ:
			fmt.Fprintf(&sb, "rz(%s) q[%d];\n", QASMAngle(g.Angle), g.Target())
		case CPhase:
			fmt.Fprintf(&sb, "cu1(%s) q[%d], q[%d];\n", QASMAngle(g.Angle), g.Control(), g.Target())
		case Swap:
			fmt.Fprintf(&sb, "swap q[%d], q[%d];\n", g.Qubits[0], g.Qubits[1])
		case CNOT:
			fmt.Fprintf(&sb, "cx q[%d], q[%d];\n", g.Control(), g.Target())
		case Measure:
			fmt.Fprintf(&sb, "measure q[%d] -> %s[0];\n", g.Target(), g.Key)
		}
	}

	return sb.String()
}
