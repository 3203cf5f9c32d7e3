package diagram

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	labelVisualW = 7 // visual width of qubit label area: "q[0] ──"
	minInnerW    = 3 // narrowest gate content a column is sized for
	wireMargin   = 2 // wire dashes each side of the widest gate
)

// Style decorates the pieces of a diagram. Every func receives plain text
// whose width has already been measured.
type Style struct {
	Gate      func(string) string
	Label     func(string) string
	Connector func(string) string
}

func identity(s string) string { return s }

// Plain renders without any escape sequences, for the web page and the CLI.
var Plain = Style{Gate: identity, Label: identity, Connector: identity}

var (
	gateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca"))

	qubitLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	connectorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68"))
)

// Styled returns the terminal color scheme.
func Styled() Style {
	return Style{
		Gate:      func(s string) string { return gateStyle.Render(s) },
		Label:     func(s string) string { return qubitLabelStyle.Render(s) },
		Connector: func(s string) string { return connectorStyle.Render(s) },
	}
}
