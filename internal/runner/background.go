package runner

// Background is a two-panel infinitely scrolling backdrop. Panels of equal
// width sit side by side; a panel that leaves on the left is moved behind
// the other.
type Background struct {
	X1, X2 float64
	Width  float64
}

// NewBackground creates a backdrop with panels at 0 and width.
func NewBackground(width float64) Background {
	return Background{X1: 0, X2: width, Width: width}
}

// Update scrolls both panels at game speed.
func (b *Background) Update(speed, factor float64) {
	if b.Width <= 0 {
		return
	}
	b.X1 -= speed * factor
	b.X2 -= speed * factor

	if b.X1 <= -b.Width {
		b.X1 = b.X2 + b.Width
	}
	if b.X2 <= -b.Width {
		b.X2 = b.X1 + b.Width
	}
}

// Offset returns how far the pattern has scrolled, in [0, Width).
func (b *Background) Offset() float64 {
	if b.Width <= 0 {
		return 0
	}
	off := -min(b.X1, b.X2)
	for off >= b.Width {
		off -= b.Width
	}
	for off < 0 {
		off += b.Width
	}
	return off
}
