package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// pieGlyphs go from untouched to finished in quarter steps.
var pieGlyphs = []string{"○", "◔", "◑", "◕", "●"}

// RenderProgress renders elapsed progress like [████░░░░]  45%.
// The bar warms from green to red as the countdown runs out.
func RenderProgress(fraction float64, width int) string {
	fraction = clampFraction(fraction)
	if width < 2 {
		width = 2
	}

	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if fraction >= 0.9 {
		style = StyleRed
	} else if fraction >= 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), fraction*100)
}

// PieGlyph returns a one-cell pie for a row listing. Only a finished
// countdown gets the full disc.
func PieGlyph(fraction float64) string {
	fraction = clampFraction(fraction)
	switch {
	case fraction >= 1:
		return pieGlyphs[4]
	case fraction <= 0:
		return pieGlyphs[0]
	case fraction < 0.375:
		return pieGlyphs[1]
	case fraction < 0.625:
		return pieGlyphs[2]
	default:
		return pieGlyphs[3]
	}
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
