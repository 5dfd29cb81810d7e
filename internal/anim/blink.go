package anim

import (
	"math/rand"
)

type BlinkPhase int

const (
	BlinkOpen BlinkPhase = iota
	BlinkClosing
	BlinkClosed
	BlinkOpening
)

const (
	blinkMinGap = 3.0
	blinkMaxGap = 6.0
)

// Blinker is the involuntary blink driver. A timer accumulates frame
// time and fires a blink once it passes a threshold drawn uniformly from
// [3s, 6s); each blink runs a small closing/closed/opening state machine
// and then re-arms with a fresh threshold.
type Blinker struct {
	phase    BlinkPhase
	progress float32

	timer     float32
	threshold float32

	// Duration is the full blink length in seconds.
	Duration float32

	// MinGap and MaxGap bound the random interval between blinks.
	MinGap float32
	MaxGap float32
}

func NewBlinker() *Blinker {
	b := &Blinker{
		Duration: 0.2,
		MinGap:   blinkMinGap,
		MaxGap:   blinkMaxGap,
	}
	b.threshold = b.randomThreshold()
	return b
}

// Trigger starts a blink immediately. Triggers during an active blink
// are ignored.
func (b *Blinker) Trigger() {
	if b.phase == BlinkOpen {
		b.phase = BlinkClosing
		b.progress = 0
	}
}

// Blinking reports whether a blink is in progress.
func (b *Blinker) Blinking() bool {
	return b.phase != BlinkOpen
}

// Update advances the timer and the active blink, returning the current
// eye closure in [0,1] (0 = fully open).
func (b *Blinker) Update(dt float32) float32 {
	if dt < 0 {
		dt = 0
	}

	switch b.phase {
	case BlinkOpen:
		b.timer += dt
		if b.timer >= b.threshold {
			b.phase = BlinkClosing
			b.progress = 0
			b.timer = 0
			b.threshold = b.randomThreshold()
		}

	case BlinkClosing:
		b.progress += dt / (b.Duration * 0.4)
		if b.progress >= 1 {
			b.progress = 1
			b.phase = BlinkClosed
		}

	case BlinkClosed:
		// The hold budget is a tenth of the full duration.
		b.progress += dt / b.Duration
		if b.progress >= 1.1 {
			b.phase = BlinkOpening
			b.progress = 1
		}

	case BlinkOpening:
		b.progress -= dt / (b.Duration * 0.5)
		if b.progress <= 0 {
			b.progress = 0
			b.phase = BlinkOpen
		}
	}

	return b.closure()
}

func (b *Blinker) closure() float32 {
	switch b.phase {
	case BlinkClosing:
		p := b.progress
		return p * (2 - p)
	case BlinkClosed:
		return 1
	case BlinkOpening:
		return b.progress * b.progress
	default:
		return 0
	}
}

func (b *Blinker) randomThreshold() float32 {
	return b.MinGap + rand.Float32()*(b.MaxGap-b.MinGap)
}
