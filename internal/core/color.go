package core

// Color represents a foreground color for a screen cell.
// Frontends map it to ANSI codes.
type Color uint8

// Palette used by the runner.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Faded returns the color to draw with at the given opacity.
// Terminals have no alpha, so text dims to gray below half opacity and
// disappears at zero.
func (c Color) Faded(alpha float64) Color {
	switch {
	case alpha <= 0:
		return ColorDefault
	case alpha < 0.5:
		return ColorGray
	default:
		return c
	}
}
