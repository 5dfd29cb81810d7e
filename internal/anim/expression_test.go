package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmotionTableHappy(t *testing.T) {
	target := NeutralExpression().WithEmotion(EmotionHappy, 0.5)

	assert.InDelta(t, 0.5, target.SmileIntensity, 1e-6)
	assert.InDelta(t, 1.1, target.EyeOpenness, 1e-6)
	assert.InDelta(t, 0, target.BrowRaise, 1e-6)
	assert.InDelta(t, 0, target.MouthOpenness, 1e-6)
}

func TestEmotionTableSad(t *testing.T) {
	target := NeutralExpression().WithEmotion(EmotionSad, 1.0)

	assert.InDelta(t, -0.5, target.SmileIntensity, 1e-6)
	assert.InDelta(t, 0.7, target.EyeOpenness, 1e-6)
	assert.InDelta(t, -0.4, target.BrowRaise, 1e-6)
}

func TestEmotionTableSurprised(t *testing.T) {
	target := NeutralExpression().WithEmotion(EmotionSurprised, 1.0)

	assert.InDelta(t, 1.5, target.EyeOpenness, 1e-6)
	assert.InDelta(t, 0.6, target.BrowRaise, 1e-6)
	assert.InDelta(t, 0.3, target.MouthOpenness, 1e-6)
}

func TestEmotionTableThinking(t *testing.T) {
	target := NeutralExpression().WithEmotion(EmotionThinking, 0.5)

	assert.InDelta(t, 0.9, target.EyeOpenness, 1e-6)
	assert.InDelta(t, 0.15, target.BrowRaise, 1e-6)
}

func TestUnmappedEmotionLeavesParametersUnchanged(t *testing.T) {
	base := NeutralExpression().WithEmotion(EmotionHappy, 1.0)
	target := base.WithEmotion(EmotionAngry, 0.8)

	assert.Equal(t, base.SmileIntensity, target.SmileIntensity)
	assert.Equal(t, base.EyeOpenness, target.EyeOpenness)
	assert.Equal(t, EmotionAngry, target.PrimaryEmotion)
	assert.InDelta(t, 0.8, target.Intensity, 1e-6)
}

func TestIntensityClamp(t *testing.T) {
	over := NeutralExpression().WithEmotion(EmotionHappy, 3.0)
	one := NeutralExpression().WithEmotion(EmotionHappy, 1.0)
	assert.Equal(t, one, over)

	under := NeutralExpression().WithEmotion(EmotionSad, -2.0)
	zero := NeutralExpression().WithEmotion(EmotionSad, 0.0)
	assert.Equal(t, zero, under)
}

func TestBlenderMovesTowardTarget(t *testing.T) {
	b := NewBlender()
	b.SetEmotion(EmotionHappy, 1.0)

	// First frame already moves: visible motion starts immediately.
	b.Update(1.0 / 60.0)
	assert.Greater(t, b.Current().SmileIntensity, float32(0))
	assert.Less(t, b.Current().SmileIntensity, float32(1))
}

func TestBlenderMonotonicNoOvershoot(t *testing.T) {
	b := NewBlender()
	b.SetEmotion(EmotionHappy, 1.0)

	prev := b.Current().SmileIntensity
	for i := 0; i < 600; i++ {
		b.Update(1.0 / 60.0)
		cur := b.Current().SmileIntensity
		assert.GreaterOrEqual(t, cur, prev, "frame %d moved away from target", i)
		assert.LessOrEqual(t, cur, float32(1.0), "frame %d overshot", i)
		prev = cur
	}
	assert.True(t, b.Settled())
	assert.InDelta(t, 1.0, b.Current().SmileIntensity, 1e-3)
}

func TestBlenderLargeDtLandsOnTarget(t *testing.T) {
	b := NewBlender()
	b.SetEmotion(EmotionSurprised, 1.0)

	b.Update(10.0)
	assert.InDelta(t, 1.5, b.Current().EyeOpenness, 1e-3)
	assert.LessOrEqual(t, b.Current().EyeOpenness, float32(1.5))
}

func TestBlenderRetargetMidTransition(t *testing.T) {
	b := NewBlender()
	b.SetEmotion(EmotionHappy, 1.0)
	for i := 0; i < 30; i++ {
		b.Update(1.0 / 60.0)
	}

	b.SetEmotion(EmotionSad, 1.0)
	for i := 0; i < 600; i++ {
		b.Update(1.0 / 60.0)
	}
	assert.InDelta(t, -0.5, b.Current().SmileIntensity, 1e-3)
}

func TestSetImmediateSkipsTransition(t *testing.T) {
	b := NewBlender()
	expr := NeutralExpression().WithEmotion(EmotionSurprised, 1.0)
	b.SetImmediate(expr)

	assert.Equal(t, expr, b.Current())
	assert.True(t, b.Settled())
}

func TestMorphWeightsBlinkOverridesOpenness(t *testing.T) {
	expr := NeutralExpression().WithEmotion(EmotionSurprised, 1.0)

	open := MorphWeights(expr, 0)
	assert.InDelta(t, 0, open["eyesClosed"], 1e-6)
	assert.InDelta(t, 0.5, open["eyesWide"], 1e-6)

	closed := MorphWeights(expr, 1.0)
	assert.InDelta(t, 1.0, closed["eyesClosed"], 1e-6)
}
