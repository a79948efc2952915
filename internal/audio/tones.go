package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is an oscillator whose frequency slides linearly from start to end.
type tone struct {
	start, end float64
	wave       Wave
	rate       beep.SampleRate
	phase      float64
	pos        int
	total      int
	rng        *rand.Rand
}

// NewTone creates a finite oscillator. A sweep is made by passing different
// start and end frequencies.
func NewTone(start, end float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{
		start: start,
		end:   end,
		wave:  wave,
		rate:  rate,
		total: rate.N(d),
		rng:   rand.New(rand.NewSource(int64(start*1000 + end))),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		var val float64
		switch t.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			if t.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (t.phase - 0.5)
		case WaveNoise:
			val = t.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(t.pos) / float64(t.total)
		freq := t.start + (t.end-t.start)*progress
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	pos      int
	attack   int
	release  int
	total    int
}

// NewEnvelope wraps s with a linear attack/release envelope.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.pos >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if remaining := e.total - e.pos; e.release > 0 && remaining < e.release {
			vol = math.Min(vol, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// gain scales a stream linearly; 0 is silent.
func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func shaped(start, end float64, d time.Duration, wave Wave, vol float64, rate beep.SampleRate) beep.Streamer {
	osc := NewTone(start, end, d, wave, rate)
	return gain(NewEnvelope(osc, d, 5*time.Millisecond, d/2, rate), vol)
}

// JumpSound is a short upward chirp.
func JumpSound(rate beep.SampleRate) beep.Streamer {
	return shaped(330, 660, 90*time.Millisecond, WaveSquare, 0.15, rate)
}

// ItemSound is a two-partial bell.
func ItemSound(rate beep.SampleRate) beep.Streamer {
	d := 180 * time.Millisecond
	return beep.Mix(
		shaped(880, 880, d, WaveSine, 0.35, rate),
		shaped(1760, 1760, d, WaveSine, 0.15, rate),
	)
}

// ShieldSound is a metallic clank.
func ShieldSound(rate beep.SampleRate) beep.Streamer {
	d := 160 * time.Millisecond
	return beep.Mix(
		shaped(220, 180, d, WaveSaw, 0.2, rate),
		shaped(0, 0, d/2, WaveNoise, 0.1, rate),
	)
}

// FireSound is a falling zap.
func FireSound(rate beep.SampleRate) beep.Streamer {
	return shaped(1200, 400, 120*time.Millisecond, WaveSaw, 0.12, rate)
}

// GameOverSound is a long descending slide.
func GameOverSound(rate beep.SampleRate) beep.Streamer {
	return shaped(440, 110, 600*time.Millisecond, WaveSquare, 0.18, rate)
}
