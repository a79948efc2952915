package runner

import (
	"math"

	"github.com/vovakirdan/catrun/internal/core"
)

// Class discriminates collidable entities for the collision resolver.
type Class uint8

const (
	ClassObstacle Class = iota
	ClassItem
	ClassProjectile
)

// Entity is anything the player can collide with.
type Entity interface {
	EntityClass() Class
	Bounds() core.Box
	// Animated reports a sprite-animated entity; drones use a flatter hitbox.
	Animated() bool
}

// ObstacleKind selects obstacle geometry.
type ObstacleKind uint8

const (
	ObstacleGround     ObstacleKind = iota // Jump over
	ObstacleGroundLong                     // Jump over, wider
	ObstacleAirLow                         // Slide under
	ObstacleAirHigh                        // Run under
)

// String returns a human-readable kind name.
func (k ObstacleKind) String() string {
	switch k {
	case ObstacleGround:
		return "ground"
	case ObstacleGroundLong:
		return "ground_long"
	case ObstacleAirLow:
		return "air_low"
	case ObstacleAirHigh:
		return "air_high"
	default:
		return "unknown"
	}
}

// IsAir reports whether the kind is a drone.
func (k ObstacleKind) IsAir() bool {
	return k == ObstacleAirLow || k == ObstacleAirHigh
}

// Obstacle is a hazard scrolling toward the player.
type Obstacle struct {
	Kind ObstacleKind
	X, Y float64
	W, H float64

	// Bobbing, drones only
	BaseY    float64
	BobAmp   float64
	BobFreq  float64
	BobPhase float64

	// One-shot projectile
	CanFire bool
	Fired   bool

	Frame      int
	frameTimer float64

	Deleted bool
}

// EntityClass implements Entity.
func (o *Obstacle) EntityClass() Class { return ClassObstacle }

// Bounds implements Entity.
func (o *Obstacle) Bounds() core.Box { return core.NewBox(o.X, o.Y, o.W, o.H) }

// Animated implements Entity.
func (o *Obstacle) Animated() bool { return o.Kind.IsAir() }

func (o *Obstacle) deleted() bool { return o.Deleted }

// update scrolls, bobs and animates the obstacle.
func (o *Obstacle) update(speed, dt, factor, frameInterval float64, frames int) {
	o.X -= speed * factor
	if o.X+o.W < 0 {
		o.Deleted = true
	}

	if o.BobAmp > 0 {
		o.BobPhase += o.BobFreq * factor
		o.Y = o.BaseY + math.Sin(o.BobPhase)*o.BobAmp
	}

	if !o.Animated() || frames <= 0 {
		return
	}
	if o.frameTimer > frameInterval {
		o.Frame = (o.Frame + 1) % frames
		o.frameTimer = 0
	} else {
		o.frameTimer += dt
	}
}

// ReadyToFire reports whether the drone should fire now: armed, fully on
// screen and still ahead of the player.
func (o *Obstacle) ReadyToFire(worldW float64, p *Player) bool {
	return o.CanFire && !o.Fired && o.X+o.W <= worldW && o.X > p.X+p.Width
}
