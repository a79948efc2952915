package runner

import (
	"github.com/vovakirdan/catrun/internal/config"
	"github.com/vovakirdan/catrun/internal/core"
)

// Resolver decides whether the player touches an entity. Hitboxes are
// scaled, centered copies of the sprite bounds: the player's is shrunk to
// forgive near misses, items are generous, drones are flat.
type Resolver struct {
	player    float64
	item      float64
	obstacle  config.ObstacleHitScale
	hitRadius float64
}

// NewResolver creates a resolver from the configured hitbox scales.
func NewResolver(cfg config.RunnerConfig) Resolver {
	return Resolver{
		player:    cfg.Player.HitScale,
		item:      cfg.Items.HitScale,
		obstacle:  cfg.Obstacles.HitScale,
		hitRadius: cfg.Player.HitRadius,
	}
}

// PlayerHitBox returns the player's scaled hitbox.
func (r Resolver) PlayerHitBox(p *Player) core.Box {
	return p.Box().Scaled(r.player, r.player)
}

// HitBox returns the scaled hitbox of an entity.
func (r Resolver) HitBox(e Entity) core.Box {
	b := e.Bounds()
	switch e.EntityClass() {
	case ClassItem:
		return b.Scaled(r.item, r.item)
	case ClassObstacle:
		if e.Animated() {
			return b.Scaled(r.obstacle.AirX, r.obstacle.AirY)
		}
		return b.Scaled(r.obstacle.GroundX, r.obstacle.GroundY)
	default:
		return b
	}
}

// Collides reports whether the player touches e. Projectiles use a circle
// test against the player's center; everything else uses scaled boxes.
func (r Resolver) Collides(p *Player, e Entity) bool {
	if e.EntityClass() == ClassProjectile {
		px, py := p.Center()
		ex, ey := e.Bounds().Center()
		radius := e.Bounds().W / 2
		return core.Distance(px, py, ex, ey) < r.hitRadius+radius
	}
	return r.PlayerHitBox(p).Intersects(r.HitBox(e))
}
