package runner

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/catrun/internal/core"
)

// Visual characters for rendering
const (
	CatChar        = '█'
	CatSlideChar   = '▄'
	CatEarChar     = '▲'
	GroundChar     = '═'
	CrateChar      = '▓'
	BinChar        = '▒'
	ScoreItemChar  = '●'
	ShieldItemChar = '◎'
	ProjectileChar = '●'
	TrailChar      = '·'
)

var droneFrames = []rune{'◇', '◆', '◈', '◆'}

// skyline is the background pattern tiled across one panel.
const skyline = "▁▁▂▂▂▁ ▁▂▂▁▁▁  ▁▂▂▂▂▁ ▁▁▂▁  "

// viewport maps world coordinates to screen cells. Row 0 is the HUD.
type viewport struct {
	sx, sy float64
}

func newViewport(dst *core.Screen, worldW, worldH float64) viewport {
	return viewport{
		sx: float64(dst.Width()) / worldW,
		sy: float64(dst.Height()-1) / worldH,
	}
}

func (v viewport) col(x float64) int { return int(math.Floor(x * v.sx)) }
func (v viewport) row(y float64) int { return 1 + int(math.Floor(y*v.sy)) }

// rect converts a world box to cells, never smaller than one cell.
func (v viewport) rect(b core.Box) core.Rect {
	x0, y0 := v.col(b.X), v.row(b.Y)
	x1 := int(math.Ceil(b.Right() * v.sx))
	y1 := 1 + int(math.Ceil(b.Bottom()*v.sy))
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

// Render draws the current session state to the screen.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() <= 0 || dst.Height() <= 1 {
		return
	}

	st := &s.state
	v := newViewport(dst, s.cfg.World.Width, s.cfg.World.Height)

	s.drawBackground(dst, v)

	for _, it := range st.Items {
		if !it.Deleted {
			drawItem(dst, v, it)
		}
	}
	for _, o := range st.Obstacles {
		if !o.Deleted {
			drawObstacle(dst, v, o)
		}
	}
	for _, pr := range st.Projectiles {
		if !pr.Deleted {
			drawProjectile(dst, v, pr)
		}
	}
	drawPlayer(dst, v, &st.Player)
	for _, m := range st.Messages {
		drawMessage(dst, v, m)
	}

	s.drawHUD(dst)

	switch st.Phase {
	case PhaseNotStarted:
		drawCenteredMessage(dst, "CAT RUNNER", "Press Space to start", core.ColorBrightYellow)
	case PhasePaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume", core.ColorBrightWhite)
	case PhaseGameOver:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", int(st.Score)), core.ColorBrightRed)
	}
}

func (s *Session) drawBackground(dst *core.Screen, v viewport) {
	groundRow := v.row(s.cfg.ObstacleGroundY())
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar, core.ColorGray)

	// The skyline scrolls with the background panels.
	pattern := []rune(skyline)
	skyRow := groundRow - max(dst.Height()/3, 2)
	if skyRow < 1 {
		return
	}
	shift := int(s.state.Background.Offset() * v.sx)
	for x := 0; x < dst.Width(); x++ {
		r := pattern[(x+shift)%len(pattern)]
		if r != ' ' {
			dst.SetColored(x, skyRow, r, core.ColorBlue)
		}
	}
}

func drawPlayer(dst *core.Screen, v viewport, p *Player) {
	// Blink during the grace window.
	if p.Invincible > 0 && int(p.Invincible/100)%2 == 1 {
		return
	}

	color := core.ColorOrange
	if p.Shields > 0 {
		color = core.ColorBrightCyan
	}

	r := v.rect(p.Box())
	fill := CatChar
	if p.Mode == ModeSlide {
		fill = CatSlideChar
	}
	dst.DrawRect(r, fill, color)

	// Ears mark the head; the cat faces right.
	if r.H > 1 && p.Mode != ModeSlide {
		dst.SetColored(r.X, r.Y, CatEarChar, color)
		dst.SetColored(r.Right()-1, r.Y, CatEarChar, color)
		for x := r.X + 1; x < r.Right()-1; x++ {
			dst.SetColored(x, r.Y, ' ', core.ColorDefault)
		}
	}
}

func drawObstacle(dst *core.Screen, v viewport, o *Obstacle) {
	r := v.rect(o.Bounds())
	switch o.Kind {
	case ObstacleGround:
		dst.DrawRect(r, CrateChar, core.ColorYellow)
	case ObstacleGroundLong:
		dst.DrawRect(r, BinChar, core.ColorGreen)
	default:
		color := core.ColorMagenta
		if o.CanFire && !o.Fired {
			color = core.ColorBrightRed
		}
		dst.DrawRect(r, droneFrames[o.Frame%len(droneFrames)], color)
	}
}

func drawItem(dst *core.Screen, v viewport, it *Item) {
	r := v.rect(it.Bounds())
	x, y := r.X+r.W/2, r.Y+r.H/2
	if it.Kind == ItemShield {
		dst.SetColored(x, y, ShieldItemChar, core.ColorBrightCyan)
		return
	}
	dst.SetColored(x, y, ScoreItemChar, core.ColorBrightYellow)
}

func drawProjectile(dst *core.Screen, v viewport, pr *Projectile) {
	for _, pt := range pr.Trail {
		dst.SetColored(v.col(pt.X), v.row(pt.Y), TrailChar, core.ColorRed)
	}
	dst.SetColored(v.col(pr.X), v.row(pr.Y), ProjectileChar, core.ColorBrightRed)
}

func drawMessage(dst *core.Screen, v viewport, m *FloatingMessage) {
	if m.Deleted || m.Alpha <= 0 {
		return
	}
	x := v.col(m.X) - len([]rune(m.Text))/2
	dst.DrawTextColored(x, v.row(m.Y), m.Text, m.Color.Faded(m.Alpha))
}

func (s *Session) drawHUD(dst *core.Screen) {
	st := &s.state
	dst.DrawTextColored(1, 0, fmt.Sprintf(" Score: %d ", int(st.Score)), core.ColorBrightWhite)

	shields := strings.Repeat("◆", st.Player.Shields) + strings.Repeat("◇", max(s.cfg.Player.MaxShields-st.Player.Shields, 0))
	dst.DrawTextColored(16, 0, " "+shields+" ", core.ColorBrightCyan)

	right := fmt.Sprintf(" %.0fm  %s ", st.Distance, s.speedLabel())
	dst.DrawTextColored(dst.Width()-len([]rune(right))-1, 0, right, core.ColorGray)
}

// speedLabel describes the current speed for the HUD.
func (s *Session) speedLabel() string {
	switch {
	case !s.curve.IsEnabled():
		return fmt.Sprintf("Spd: %.1f fixed", s.state.Speed)
	case s.state.Speed >= s.curve.Max():
		return "Spd: MAX"
	default:
		return fmt.Sprintf("Spd: %.1f", s.state.Speed)
	}
}

// drawCenteredMessage draws a boxed two-line message in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, color core.Color) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 4
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)
	dst.DrawTextCentered(boxY+1, title, color)
	dst.DrawTextCentered(boxY+2, subtitle, core.ColorWhite)
}
