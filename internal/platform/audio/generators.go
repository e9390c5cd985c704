package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ToneGenerator is a sine sweep from one frequency to another under an
// exponential decay envelope.
type ToneGenerator struct {
	sr    beep.SampleRate
	from  float64
	to    float64
	decay float64 // Envelope rate per second
	pos   int
	phase float64
}

// NewToneGenerator creates a tone that sweeps from -> to over 200ms.
func NewToneGenerator(sr beep.SampleRate, from, to, decay float64) *ToneGenerator {
	return &ToneGenerator{sr: sr, from: from, to: to, decay: decay}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	sweep := float64(g.sr.N(200 * time.Millisecond))
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		k := math.Min(float64(g.pos)/sweep, 1)
		freq := g.from + (g.to-g.from)*k

		// Accumulate phase so the sweep stays continuous
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		sample := 0.25 * math.Exp(-t*g.decay) * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// AmbientGenerator is a slow two-note drone with a swelling envelope.
// One cycle lasts eight seconds; wrap it in beep.Loop to repeat.
type AmbientGenerator struct {
	sr      beep.SampleRate
	pos     int
	samples int
}

// NewAmbientGenerator creates the background drone.
func NewAmbientGenerator(sr beep.SampleRate) *AmbientGenerator {
	return &AmbientGenerator{
		sr:      sr,
		samples: sr.N(8 * time.Second),
	}
}

func (g *AmbientGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.samples {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.samples {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)
		cycle := float64(g.pos) / float64(g.samples)

		swell := 0.5 - 0.5*math.Cos(cycle*2*math.Pi)
		left := 0.06 * swell * (math.Sin(2*math.Pi*110*t) + 0.5*math.Sin(2*math.Pi*164.81*t))
		right := 0.06 * swell * (math.Sin(2*math.Pi*110.5*t) + 0.5*math.Sin(2*math.Pi*220*t))

		samples[i][0] = left
		samples[i][1] = right
		g.pos++
	}
	return len(samples), true
}

func (g *AmbientGenerator) Err() error {
	return nil
}

// Position implements beep.StreamSeeker so beep.Loop can rewind it.
func (g *AmbientGenerator) Position() int {
	return g.pos
}

// Len implements beep.StreamSeeker.
func (g *AmbientGenerator) Len() int {
	return g.samples
}

// Seek implements beep.StreamSeeker.
func (g *AmbientGenerator) Seek(p int) error {
	g.pos = p
	return nil
}
