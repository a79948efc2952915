package runner

import (
	"math"

	"github.com/vovakirdan/catrun/internal/config"
	"github.com/vovakirdan/catrun/internal/core"
)

// Point is a position in world units.
type Point struct {
	X, Y float64
}

// Projectile is a shot fired by a drone toward where the player was.
type Projectile struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Trail  []Point // Oldest first

	trailLen int
	Deleted  bool
}

// NewProjectile creates a projectile at (x, y) aimed at (tx, ty).
// A target at the origin point sends it straight left.
func NewProjectile(x, y, tx, ty float64, cfg config.ProjectileConfig) *Projectile {
	dx, dy := tx-x, ty-y
	dist := math.Hypot(dx, dy)
	vx, vy := -cfg.Speed, 0.0
	if dist > 0 {
		vx = dx / dist * cfg.Speed
		vy = dy / dist * cfg.Speed
	}
	return &Projectile{
		X:        x,
		Y:        y,
		VX:       vx,
		VY:       vy,
		Radius:   cfg.Radius,
		Trail:    make([]Point, 0, cfg.TrailLength),
		trailLen: cfg.TrailLength,
	}
}

// EntityClass implements Entity.
func (pr *Projectile) EntityClass() Class { return ClassProjectile }

// Bounds implements Entity.
func (pr *Projectile) Bounds() core.Box {
	return core.NewBox(pr.X-pr.Radius, pr.Y-pr.Radius, 2*pr.Radius, 2*pr.Radius)
}

// Animated implements Entity.
func (pr *Projectile) Animated() bool { return false }

func (pr *Projectile) deleted() bool { return pr.Deleted }

func (pr *Projectile) update(factor, worldW, worldH float64) {
	pr.X += pr.VX * factor
	pr.Y += pr.VY * factor

	if pr.trailLen > 0 {
		if len(pr.Trail) == pr.trailLen {
			copy(pr.Trail, pr.Trail[1:])
			pr.Trail = pr.Trail[:len(pr.Trail)-1]
		}
		pr.Trail = append(pr.Trail, Point{pr.X, pr.Y})
	}

	if pr.X < 0 || pr.X > worldW || pr.Y < 0 || pr.Y > worldH {
		pr.Deleted = true
	}
}
