package anim

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// IdleDriver produces the low-amplitude procedural motion that keeps a
// character from looking frozen: a sinusoidal breathing offset on the
// vertical axis at roughly 15 breaths per minute.
type IdleDriver struct {
	time float32

	BreathingRate      float32
	BreathingAmplitude float32
}

func NewIdleDriver() *IdleDriver {
	return &IdleDriver{
		BreathingRate:      0.25,
		BreathingAmplitude: 0.02,
	}
}

// Update advances the internal clock and returns this frame's breathing
// offset.
func (d *IdleDriver) Update(dt float32) mgl32.Vec3 {
	if dt > 0 {
		d.time += dt
	}
	return d.Offset()
}

// Offset returns the breathing offset at the current time.
func (d *IdleDriver) Offset() mgl32.Vec3 {
	phase := float64(d.time * d.BreathingRate * 2 * math.Pi)
	return mgl32.Vec3{0, float32(math.Sin(phase)) * d.BreathingAmplitude, 0}
}

// Reset rewinds the idle clock.
func (d *IdleDriver) Reset() {
	d.time = 0
}
