// Package tui is the terminal form for both demos.
package tui

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"qdemos/pkg/circuit"
	"qdemos/pkg/errdetect"
	"qdemos/pkg/logger"
	"qdemos/pkg/qft"
	"qdemos/pkg/statevec"
)

// demo is the selected tab.
type demo int

const (
	demoQFT demo = iota
	demoErrDetect
)

// focus represents which field has keyboard input.
type focus int

const (
	focusQubits focus = iota
	focusState
	focusPolicy

	focusA
	focusB
	focusFault
)

var tabFields = map[demo][]focus{
	demoQFT:       {focusQubits, focusState, focusPolicy},
	demoErrDetect: {focusA, focusB, focusFault},
}

// DefaultSavePath is where ctrl+s writes the last circuit.
const DefaultSavePath = "circuit.qasm"

// Options configures a new Model.
type Options struct {
	QFT      qft.Runner
	Detector *errdetect.Runner
	Logger   *slog.Logger

	Qubits   int
	Policy   qft.SwapPolicy
	A        float64
	B        float64
	SavePath string
}

// Model represents the TUI application state.
type Model struct {
	opts Options

	tab    demo
	focus  focus
	width  int
	height int

	qubits     int
	stateInput textarea.Model
	policy     int
	aInput     textinput.Model
	bInput     textinput.Model
	fault      int

	qftResult    *qft.Result
	detectResult *errdetect.Result
	lastCircuit  *circuit.Circuit
	err          error
	statusMsg    string // transient status message (e.g. save confirmation)
}

// New returns the initial model.
func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.SavePath == "" {
		opts.SavePath = DefaultSavePath
	}
	if !qft.ValidQubits(opts.Qubits) {
		opts.Qubits = qft.MinQubits
	}

	ta := textarea.New()
	ta.Placeholder = "1,0,0,0 ..."
	ta.SetWidth(40)
	ta.SetHeight(4)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	a := textinput.New()
	a.CharLimit = 24
	a.Width = 12
	b := textinput.New()
	b.CharLimit = 24
	b.Width = 12

	m := Model{
		opts:       opts,
		stateInput: ta,
		aInput:     a,
		bInput:     b,
	}
	m.reset()
	return m
}

// reset restores every input to its configured default and clears results.
func (m *Model) reset() {
	m.qubits = m.opts.Qubits
	m.stateInput.SetValue(statevec.Default(m.qubits))
	m.policy = int(m.opts.Policy)
	m.aInput.SetValue(strconv.FormatFloat(m.opts.A, 'g', -1, 64))
	m.bInput.SetValue(strconv.FormatFloat(m.opts.B, 'g', -1, 64))
	m.fault = 0

	m.qftResult = nil
	m.detectResult = nil
	m.lastCircuit = nil
	m.err = nil
	m.setFocus(tabFields[m.tab][0])
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.stateInput.Blur()
	m.aInput.Blur()
	m.bInput.Blur()

	switch f {
	case focusState:
		m.stateInput.Focus()
	case focusA:
		m.aInput.Focus()
	case focusB:
		m.bInput.Focus()
	}
}

// moveFocus cycles through the current tab's fields.
func (m *Model) moveFocus(delta int) {
	fields := tabFields[m.tab]
	idx := 0
	for i, f := range fields {
		if f == m.focus {
			idx = i
		}
	}
	m.setFocus(fields[cycle(idx, delta, len(fields))])
}

func (m *Model) setQubits(n int) {
	if !qft.ValidQubits(n) || n == m.qubits {
		return
	}
	m.qubits = n
	m.stateInput.SetValue(statevec.Default(n))
}

// simulate runs the selected demo with the current inputs.
func (m *Model) simulate() {
	m.err = nil

	switch m.tab {
	case demoQFT:
		runner := m.opts.QFT
		runner.Policy = qft.SwapPolicy(policyChoices[m.policy].value)
		res, err := runner.Run(m.qubits, m.stateInput.Value())
		if err != nil {
			m.err = err
			m.opts.Logger.Debug("qft input rejected", "error", err)
			return
		}
		m.qftResult = res
		m.lastCircuit = res.Circuit
		m.opts.Logger.Debug("qft simulated", "qubits", m.qubits, "policy", runner.Policy.String())

	case demoErrDetect:
		a, err := parseAmplitude("a", m.aInput.Value())
		if err != nil {
			m.err = err
			return
		}
		b, err := parseAmplitude("b", m.bInput.Value())
		if err != nil {
			m.err = err
			return
		}

		var res *errdetect.Result
		if f := faultChoices[m.fault].value; f == randomFault {
			res, err = m.opts.Detector.Run(a, b)
		} else {
			res, err = m.opts.Detector.RunWithFault(a, b, errdetect.Fault(f))
		}
		if err != nil {
			m.err = err
			return
		}
		m.detectResult = res
		m.lastCircuit = res.Circuit
		m.opts.Logger.Debug("error detection simulated", "fault", res.Fault.String(), "syndrome", res.Syndrome.String())
	}
}

func parseAmplitude(name, text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", name, text)
	}
	return v, nil
}

func (m *Model) save() {
	if m.lastCircuit == nil {
		m.statusMsg = "Nothing to save yet: simulate first"
		return
	}
	if err := os.WriteFile(m.opts.SavePath, []byte(circuit.ToQASM(m.lastCircuit)), 0o644); err != nil {
		m.statusMsg = fmt.Sprintf("Save error: %v", err)
		return
	}
	m.statusMsg = "Saved " + m.opts.SavePath
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.stateInput.SetWidth(max(msg.Width/3-6, 20))

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		switch key {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+t":
			if m.tab == demoQFT {
				m.tab = demoErrDetect
			} else {
				m.tab = demoQFT
			}
			m.err = nil
			m.setFocus(tabFields[m.tab][0])
			return m, nil
		case "tab":
			m.moveFocus(1)
			return m, nil
		case "shift+tab":
			m.moveFocus(-1)
			return m, nil
		case "enter":
			m.simulate()
			return m, nil
		case "ctrl+s":
			m.save()
			return m, nil
		case "ctrl+r":
			m.reset()
			return m, nil
		}

		switch m.focus {
		case focusQubits:
			switch key {
			case "+", "=", "up", "right", "k", "l":
				m.setQubits(m.qubits + 1)
			case "-", "down", "left", "j", "h":
				m.setQubits(m.qubits - 1)
			}
		case focusPolicy:
			switch key {
			case "left", "h":
				m.policy = cycle(m.policy, -1, len(policyChoices))
			case "right", "l", " ":
				m.policy = cycle(m.policy, 1, len(policyChoices))
			}
		case focusFault:
			switch key {
			case "left", "h":
				m.fault = cycle(m.fault, -1, len(faultChoices))
			case "right", "l", " ":
				m.fault = cycle(m.fault, 1, len(faultChoices))
			}
		case focusState:
			var cmd tea.Cmd
			m.stateInput, cmd = m.stateInput.Update(msg)
			cmds = append(cmds, cmd)
		case focusA:
			var cmd tea.Cmd
			m.aInput, cmd = m.aInput.Update(msg)
			cmds = append(cmds, cmd)
		case focusB:
			var cmd tea.Cmd
			m.bInput, cmd = m.bInput.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}
