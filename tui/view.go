package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"qdemos/pkg/diagram"
	"qdemos/pkg/qft"
	"qdemos/pkg/statevec"
)

// Run starts the program on the alternate screen and blocks until it quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	formWidth := max(m.width/3, 30)
	resultWidth := max(m.width-formWidth-4, 30)
	controlsHeight := 4
	bodyHeight := max(m.height-controlsHeight-5, 8)

	var form, result string
	if m.tab == demoQFT {
		form = m.renderQFTForm()
		result = m.renderQFTResult()
	} else {
		form = m.renderErrDetectForm()
		result = m.renderErrDetectResult()
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		formStyle.Width(formWidth).Height(bodyHeight).Render(form),
		resultStyle.Width(resultWidth).Height(bodyHeight).Render(result),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		body,
		m.renderControlsPanel(m.width-4, controlsHeight-2),
	)
}

func (m Model) renderTabs() string {
	names := []string{"QFT visualizer", "Error detection"}
	parts := make([]string, len(names))
	for i, name := range names {
		if demo(i) == m.tab {
			parts[i] = titleStyle.Render("[ " + name + " ]")
		} else {
			parts[i] = dimStyle.Render("  " + name + "  ")
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) fieldLabel(f focus, text string) string {
	if m.focus == f {
		return focusedLabelStyle.Render("▸ " + text)
	}
	return labelStyle.Render("  " + text)
}

func (m Model) renderQFTForm() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Quantum Fourier transform"))
	sb.WriteString("\n\n")

	sb.WriteString(m.fieldLabel(focusQubits, "Qubits"))
	sb.WriteString("  ")
	qubits := fmt.Sprintf("◂ %d ▸", m.qubits)
	if m.focus == focusQubits {
		sb.WriteString(selectedStyle.Render(qubits))
	} else {
		sb.WriteString(normalStyle.Render(qubits))
	}
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  (%d-%d)", qft.MinQubits, qft.MaxQubits)))
	sb.WriteString("\n\n")

	sb.WriteString(m.fieldLabel(focusState, fmt.Sprintf("Initial state (%d amplitudes)", 1<<m.qubits)))
	sb.WriteString("\n")
	sb.WriteString(m.stateInput.View())
	sb.WriteString("\n\n")

	sb.WriteString(m.fieldLabel(focusPolicy, "Swaps"))
	sb.WriteString("  ")
	sb.WriteString(renderChoices(policyChoices, m.policy, m.focus == focusPolicy))
	sb.WriteString("\n")

	m.writeStatus(&sb)
	return sb.String()
}

func (m Model) renderErrDetectForm() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Bit-flip error detection"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("encodes a|0⟩ + b|1⟩ on three qubits"))
	sb.WriteString("\n\n")

	sb.WriteString(m.fieldLabel(focusA, "a"))
	sb.WriteString("  ")
	sb.WriteString(m.aInput.View())
	sb.WriteString("\n")
	sb.WriteString(m.fieldLabel(focusB, "b"))
	sb.WriteString("  ")
	sb.WriteString(m.bInput.View())
	sb.WriteString("\n\n")

	sb.WriteString(m.fieldLabel(focusFault, "Fault"))
	sb.WriteString("  ")
	sb.WriteString(renderChoices(faultChoices, m.fault, m.focus == focusFault))
	sb.WriteString("\n")

	m.writeStatus(&sb)
	return sb.String()
}

func (m Model) writeStatus(sb *strings.Builder) {
	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render("✗ " + m.err.Error()))
		sb.WriteString("\n")
	}
	if m.statusMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(activeStyle.Render(m.statusMsg))
		sb.WriteString("\n")
	}
}

func (m Model) renderQFTResult() string {
	if m.qftResult == nil {
		return dimStyle.Render("Press enter to simulate.")
	}
	res := m.qftResult

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Circuit"))
	sb.WriteString("\n")
	sb.WriteString(diagram.Render(res.Circuit, diagram.Styled()))
	sb.WriteString("\n\n")

	sb.WriteString(titleStyle.Render("Final state"))
	sb.WriteString("\n")
	for i, a := range res.Rounded.Amplitudes {
		sb.WriteString(labelStyle.Render(res.Rounded.Ket(i)))
		sb.WriteString("  ")
		sb.WriteString(normalStyle.Render(statevec.FormatAmplitude(a, qft.Decimals)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(titleStyle.Render("Qubit probabilities"))
	sb.WriteString("\n")
	for q, p := range res.QubitProbabilities {
		fmt.Fprintf(&sb, "q[%d]  P(0) %5.1f%%  P(1) %5.1f%%\n", q, 100*p.Prob0, 100*p.Prob1)
	}
	return sb.String()
}

func (m Model) renderErrDetectResult() string {
	if m.detectResult == nil {
		return dimStyle.Render("Press enter to simulate.")
	}
	res := m.detectResult

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Circuit"))
	sb.WriteString("\n")
	sb.WriteString(diagram.Render(res.Circuit, diagram.Styled()))
	sb.WriteString("\n\n")

	sb.WriteString(labelStyle.Render("Injected error:  "))
	sb.WriteString(normalStyle.Render(res.Fault.String()))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Measurement:     "))
	sb.WriteString(fmt.Sprintf("m1 = %s  m2 = %s",
		bitStyle.Render(fmt.Sprint(res.Syndrome.M1)),
		bitStyle.Render(fmt.Sprint(res.Syndrome.M2))))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Syndrome says:   "))
	sb.WriteString(normalStyle.Render(res.Syndrome.Diagnose().String()))
	sb.WriteString("\n")
	return sb.String()
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeStyle.Render("Navigate: "))
	sb.WriteString("Tab/S-Tab Field  ←→ Choose  +/- Qubits  ^T Switch demo")
	sb.WriteString("\n")

	sb.WriteString(activeStyle.Render("Actions:  "))
	sb.WriteString("⏎ Simulate  ^S Save QASM  ^R Reset  Esc/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}
