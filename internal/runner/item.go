package runner

import (
	"math"

	"github.com/vovakirdan/catrun/internal/core"
)

// ItemKind selects the pickup effect.
type ItemKind uint8

const (
	ItemScore  ItemKind = iota // Bonus score
	ItemShield                 // One extra shield
)

// String returns a human-readable kind name.
func (k ItemKind) String() string {
	switch k {
	case ItemScore:
		return "score"
	case ItemShield:
		return "shield"
	default:
		return "unknown"
	}
}

// Item is a floating collectible.
type Item struct {
	Kind  ItemKind
	X, Y  float64
	W, H  float64
	BaseY float64
	Angle float64 // Float phase

	Deleted bool
}

// EntityClass implements Entity.
func (it *Item) EntityClass() Class { return ClassItem }

// Bounds implements Entity.
func (it *Item) Bounds() core.Box { return core.NewBox(it.X, it.Y, it.W, it.H) }

// Animated implements Entity.
func (it *Item) Animated() bool { return false }

func (it *Item) deleted() bool { return it.Deleted }

func (it *Item) update(speed, factor, floatSpeed, amplitude float64) {
	it.X -= speed * factor
	it.Angle += floatSpeed * factor
	it.Y = it.BaseY + math.Sin(it.Angle)*amplitude
	if it.X+it.W < 0 {
		it.Deleted = true
	}
}
