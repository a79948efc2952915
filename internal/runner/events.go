package runner

// Event is a discrete occurrence inside a tick that frontends react to,
// mostly by playing a sound.
type Event uint8

const (
	EventJump        Event = iota // Player left the ground
	EventItem                     // Item collected
	EventShieldBlock              // Shield absorbed an obstacle hit
	EventFire                     // Drone fired a projectile
	EventGameOver                 // Session ended
)

// String returns a human-readable event name.
func (e Event) String() string {
	switch e {
	case EventJump:
		return "jump"
	case EventItem:
		return "item"
	case EventShieldBlock:
		return "shield_block"
	case EventFire:
		return "fire"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
