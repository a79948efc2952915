package runner

import (
	"math"

	"github.com/vovakirdan/catrun/internal/config"
)

// Spawner creates obstacles and items at the right edge of the world and
// schedules the next spawn. All randomness comes from the injected source,
// so a seeded source gives a reproducible run.
type Spawner struct {
	cfg config.RunnerConfig
	rng Rand
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(cfg config.RunnerConfig, rng Rand) *Spawner {
	return &Spawner{cfg: cfg, rng: rng}
}

// SpawnObstacles advances the obstacle timer and spawns when it elapses.
func (s *Spawner) SpawnObstacles(st *State, dt float64) {
	st.ObstacleTimer += dt
	if st.ObstacleTimer <= st.ObstacleInterval {
		return
	}
	o := s.NewObstacle(st.Score)
	st.Obstacles = append(st.Obstacles, o)
	st.ObstacleEdge = o.X + o.W
	st.ObstacleTimer = 0
	st.ObstacleInterval = s.NextObstacleInterval(st.Speed, st.Score)
}

// NextObstacleInterval returns the delay before the next obstacle. Faster
// play and higher score shorten it, down to a floor that itself shrinks
// with speed but never below the hard floor.
func (s *Spawner) NextObstacleInterval(speed, score float64) float64 {
	oc := s.cfg.Obstacles
	initial := s.cfg.Difficulty.InitialSpeed

	dynMin := oc.MinInterval
	if speed > 0 && initial > 0 {
		dynMin = oc.MinInterval / math.Sqrt(speed/initial)
	}
	dynMin = math.Max(dynMin, oc.HardFloor)

	interval := oc.BaseInterval - speed*oc.SpeedCoeff - score*oc.ScoreCoeff
	return math.Max(interval, dynMin) + s.rng.Float64()*oc.RandomDelay
}

// NewObstacle creates an obstacle at the right edge. Drones spawned at
// higher scores bob and may fire.
func (s *Spawner) NewObstacle(score float64) *Obstacle {
	oc := s.cfg.Obstacles
	groundY := s.cfg.ObstacleGroundY()
	o := &Obstacle{X: s.cfg.World.Width}

	if s.rng.Float64() < oc.Probability.Ground {
		o.Kind = ObstacleGround
		o.W = oc.GroundWidth
		if s.rng.Float64() < oc.Probability.GroundLong {
			o.Kind = ObstacleGroundLong
			o.W = oc.GroundLongWidth
		}
		o.H = oc.GroundHeight
		o.Y = groundY - o.H
		o.BaseY = o.Y
		return o
	}

	o.W = oc.AirWidth
	o.H = oc.AirHeight
	gap := oc.AirHighGap
	o.Kind = ObstacleAirHigh
	if s.rng.Float64() < oc.Probability.AirLow {
		o.Kind = ObstacleAirLow
		gap = oc.AirLowGap
	}
	o.Y = groundY - gap - o.H
	o.BaseY = o.Y

	switch {
	case score >= oc.Thresholds.MoveLevel2:
		o.BobAmp, o.BobFreq = oc.BobLevel2.Amplitude, oc.BobLevel2.Frequency
	case score >= oc.Thresholds.MoveLevel1:
		o.BobAmp, o.BobFreq = oc.BobLevel1.Amplitude, oc.BobLevel1.Frequency
	}
	if o.BobAmp > 0 {
		o.BobPhase = s.rng.Float64() * 2 * math.Pi
	}
	o.CanFire = score >= oc.Thresholds.Attack
	return o
}

// SpawnItems advances the item timer. Each time it elapses a spawn is
// attempted with SpawnChance and the interval is redrawn, whether or not
// an item was placed.
func (s *Spawner) SpawnItems(st *State, dt float64) {
	st.ItemTimer += dt
	if st.ItemTimer <= st.ItemInterval {
		return
	}
	st.ItemTimer = 0
	st.ItemInterval = s.NextItemInterval()

	if s.rng.Float64() >= s.cfg.Items.SpawnChance {
		return
	}
	if s.ItemBlocked(st) {
		return
	}
	it := s.NewItem()
	st.Items = append(st.Items, it)
	st.ItemEdge = it.X + it.W
}

// NextItemInterval draws the next item interval uniformly from the
// configured range.
func (s *Spawner) NextItemInterval() float64 {
	ic := s.cfg.Items
	return ic.IntervalMin + s.rng.Float64()*(ic.IntervalMax-ic.IntervalMin)
}

// ItemBlocked reports whether a new item would crowd the spawn edge: the
// most recently spawned obstacle or item still reaches into the safe band,
// or the next obstacle is due within the lookahead window. A spawn that was
// already destroyed or collected still counts.
func (s *Spawner) ItemBlocked(st *State) bool {
	band := s.cfg.World.Width - s.cfg.Items.SafeDistance
	if st.ObstacleEdge > band || st.ItemEdge > band {
		return true
	}
	return st.ObstacleInterval-st.ObstacleTimer < s.cfg.Items.ObstacleLookahead
}

// NewItem creates an item at the right edge, either in the floor band or
// in the jump band.
func (s *Spawner) NewItem() *Item {
	ic := s.cfg.Items
	it := &Item{
		Kind: ItemScore,
		X:    s.cfg.World.Width,
		W:    ic.Size,
		H:    ic.Size,
	}
	if s.rng.Float64() < ic.ShieldChance {
		it.Kind = ItemShield
	}

	floor := s.cfg.World.Height - ic.GroundOffset - ic.Size
	if s.rng.Float64() < ic.AirChance {
		it.Y = floor - ic.JumpHeight
	} else {
		// Lifted by the float amplitude so bobbing never dips into the ground.
		it.Y = floor - ic.FloatAmplitude
	}
	it.BaseY = it.Y
	return it
}
