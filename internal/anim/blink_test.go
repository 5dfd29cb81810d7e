package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlinkNeverFiresBeforeThreeSeconds(t *testing.T) {
	b := NewBlinker()

	elapsed := float32(0)
	for elapsed < 2.95 {
		b.Update(1.0 / 60.0)
		elapsed += 1.0 / 60.0
		assert.False(t, b.Blinking(), "blinked at %.2fs", elapsed)
	}
}

func TestBlinkFiresWithinSixSeconds(t *testing.T) {
	b := NewBlinker()

	fired := false
	for elapsed := float32(0); elapsed < 6.1; elapsed += 1.0 / 60.0 {
		b.Update(1.0 / 60.0)
		if b.Blinking() {
			fired = true
			break
		}
	}
	assert.True(t, fired, "no involuntary blink within 6 seconds")
}

func TestBlinkThresholdRange(t *testing.T) {
	b := NewBlinker()
	for i := 0; i < 100; i++ {
		th := b.randomThreshold()
		assert.GreaterOrEqual(t, th, float32(3.0))
		assert.Less(t, th, float32(6.0))
	}
}

func TestTriggerBlinkRunsToCompletion(t *testing.T) {
	b := NewBlinker()
	b.Trigger()
	assert.True(t, b.Blinking())

	maxClosure := float32(0)
	for i := 0; i < 60; i++ {
		c := b.Update(1.0 / 60.0)
		assert.GreaterOrEqual(t, c, float32(0))
		assert.LessOrEqual(t, c, float32(1))
		if c > maxClosure {
			maxClosure = c
		}
		if !b.Blinking() {
			break
		}
	}

	assert.InDelta(t, 1.0, maxClosure, 1e-3, "blink never fully closed")
	assert.False(t, b.Blinking(), "blink did not recover")
	assert.Equal(t, float32(0), b.closure())
}

func TestBlinkClosedHoldIsTenthOfDuration(t *testing.T) {
	b := NewBlinker()
	b.Trigger()

	const dt = 0.001
	held := float32(0)
	for i := 0; i < 1000 && b.Blinking(); i++ {
		if b.Update(dt) >= 1 {
			held += dt
		}
	}

	assert.InDelta(t, float64(b.Duration*0.1), float64(held), 0.005)
}

func TestTriggerDuringBlinkIgnored(t *testing.T) {
	b := NewBlinker()
	b.Trigger()
	b.Update(b.Duration * 0.2)
	phase := b.phase
	progress := b.progress

	b.Trigger()
	assert.Equal(t, phase, b.phase)
	assert.Equal(t, progress, b.progress)
}

func TestBlinkTimerResetsAfterFiring(t *testing.T) {
	b := NewBlinker()
	b.threshold = 3.0

	b.Update(3.1)
	assert.True(t, b.Blinking())
	assert.Equal(t, float32(0), b.timer)
	assert.GreaterOrEqual(t, b.threshold, float32(3.0))
}
