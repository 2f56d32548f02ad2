package formatter

import (
	"math"
	"strings"

	"github.com/alexanderramin/pomotodo/internal/timer"
	"github.com/charmbracelet/lipgloss"
)

// MinClockRadius is the smallest radius that leaves room for the readout
// inside the ring.
const MinClockRadius = 3

const (
	ringElapsed   = "●"
	ringRemaining = "·"
)

// RenderClock draws a circular countdown of the given radius in rows.
// Ring cells the arc covers are drawn in style; the rest are dimmed. text
// is centered inside the ring. Columns are doubled so the circle looks
// round in a terminal.
func RenderClock(arc timer.Arc, radius int, text string, style lipgloss.Style) string {
	if radius < MinClockRadius {
		radius = MinClockRadius
	}
	rows := 2*radius + 1
	cols := 4*radius + 1
	cx, cy := 2*radius, radius

	var b strings.Builder
	for row := 0; row < rows; row++ {
		line := make([]string, cols)
		for col := 0; col < cols; col++ {
			dx := float64(col-cx) / 2
			dy := float64(row - cy)
			if math.Abs(math.Hypot(dx, dy)-float64(radius)) > 0.5 {
				line[col] = " "
				continue
			}
			// Screen coordinates: y grows downward, so this is clockwise.
			if arc.Covers(math.Atan2(dy, dx)) {
				line[col] = style.Render(ringElapsed)
			} else {
				line[col] = StyleDim.Render(ringRemaining)
			}
		}
		if row == cy {
			overlay(line, cx, text)
		}
		b.WriteString(strings.TrimRight(strings.Join(line, ""), " "))
		if row < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// overlay writes text centered on column center, one rune per cell.
func overlay(line []string, center int, text string) {
	runes := []rune(text)
	start := center - len(runes)/2
	for i, r := range runes {
		col := start + i
		if col <= 0 || col >= len(line)-1 {
			continue
		}
		line[col] = StyleBold.Render(string(r))
	}
}
