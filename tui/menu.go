package tui

import (
	"strings"

	"qdemos/pkg/errdetect"
	"qdemos/pkg/qft"
)

// choice is one option of an inline selector.
type choice struct {
	name  string
	value int
}

// randomFault selects a drawn fault rather than a forced one.
const randomFault = -1

var policyChoices = []choice{
	{name: "once", value: int(qft.SwapOnce)},
	{name: "per iteration", value: int(qft.SwapPerIteration)},
}

var faultChoices = []choice{
	{name: "random", value: randomFault},
	{name: "none", value: int(errdetect.NoError)},
	{name: "q0", value: int(errdetect.BitFlip0)},
	{name: "q1", value: int(errdetect.BitFlip1)},
	{name: "q2", value: int(errdetect.BitFlip2)},
}

// cycle moves idx by delta within n options, wrapping at both ends.
func cycle(idx, delta, n int) int {
	return ((idx+delta)%n + n) % n
}

// renderChoices renders a selector row: the selected option highlighted,
// the rest dimmed, separated by bars.
func renderChoices(choices []choice, selected int, focused bool) string {
	var sb strings.Builder
	for i, c := range choices {
		name := " " + c.name + " "
		switch {
		case i == selected && focused:
			sb.WriteString(selectedStyle.Render("▸" + name))
		case i == selected:
			sb.WriteString(activeStyle.Render(name))
		default:
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(choices)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	return sb.String()
}
