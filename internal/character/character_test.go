package character

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/normanking/animrig/internal/anim"
	"github.com/normanking/animrig/internal/mesh"
)

const frameDt = float32(1.0 / 60.0)

func TestNewDefaultRegions(t *testing.T) {
	c := NewDefault("hannah")

	for _, name := range []mesh.RegionName{
		mesh.RegionHead, mesh.RegionHair, mesh.RegionLeftEye,
		mesh.RegionRightEye, mesh.RegionMouth, mesh.RegionSkirt,
	} {
		require.NotNil(t, c.Region(name), "missing region %s", name)
	}

	assert.True(t, c.Region(mesh.RegionHair).Simulated())
	assert.True(t, c.Region(mesh.RegionSkirt).Simulated())
	assert.False(t, c.Region(mesh.RegionHead).Simulated())
}

func TestUpdateAdvancesExpression(t *testing.T) {
	c := NewDefault("hannah")
	c.SetEmotion(anim.EmotionHappy, 1.0)

	c.Update(frameDt)
	assert.Greater(t, c.Expression().SmileIntensity, float32(0))

	for i := 0; i < 600; i++ {
		c.Update(frameDt)
	}
	assert.InDelta(t, 1.0, float64(c.Expression().SmileIntensity), 1e-3)
}

func TestUpdateMovesHairUnderGravity(t *testing.T) {
	c := NewDefault("hannah")
	hair := c.Region(mesh.RegionHair)

	// Push the strands sideways so gravity and constraints have work to do.
	c.SetWindForce(mgl32.Vec3{2, 0, 0})

	before := hair.Positions()
	for i := 0; i < 30; i++ {
		c.Update(frameDt)
	}
	after := hair.Positions()

	moved := false
	for i := range before {
		if before[i].Sub(after[i]).Len() > 1e-5 {
			moved = true
			break
		}
	}
	assert.True(t, moved, "hair vertices never moved")

	// Roots are pinned to the scalp and must hold (no skeletal motion here).
	for i := 0; i < 24; i++ {
		assert.InDelta(t, float64(before[i].X()), float64(after[i].X()), 1e-4,
			"pinned root %d drifted", i)
	}
}

func TestUpdateWithoutPhysicsIsStable(t *testing.T) {
	c := New("bare")
	c.AddRegion(mesh.NewSphereRegion(mesh.RegionHead, 8, 4, 0.2, mgl32.Vec3{}))

	// No particle lists anywhere: updates must be silent no-ops for physics.
	for i := 0; i < 10; i++ {
		c.Update(frameDt)
	}

	head := c.Region(mesh.RegionHead)
	assert.False(t, head.Simulated())
}

func TestBreathingOffsetOscillates(t *testing.T) {
	c := New("bare")

	for i := 0; i < 60; i++ {
		c.Update(frameDt)
	}
	peak := c.BreathingOffset().Y()
	assert.Greater(t, peak, float32(0))

	for i := 0; i < 120; i++ {
		c.Update(frameDt)
	}
	assert.Less(t, c.BreathingOffset().Y(), float32(0))
}

func TestFingerPoseSmoothing(t *testing.T) {
	c := New("bare")

	pose := anim.RestFingerPose()
	pose.Bends = [5]float32{1, 1, 1, 1, 1}
	c.AnimateFingers(anim.HandLeft, pose)

	c.Update(frameDt)
	mid := c.FingerPose(anim.HandLeft)
	assert.Greater(t, mid.Bends[0], float32(0))
	assert.Less(t, mid.Bends[0], float32(1))

	// Right hand was never posed and stays at rest.
	assert.Equal(t, float32(0), c.FingerPose(anim.HandRight).Bends[0])
}

func TestTriggerBlink(t *testing.T) {
	c := New("bare")
	c.TriggerBlink()
	assert.True(t, c.Blinking())

	for i := 0; i < 120; i++ {
		c.Update(frameDt)
		if !c.Blinking() {
			break
		}
	}
	assert.False(t, c.Blinking())
}

func TestPassesForStiffness(t *testing.T) {
	assert.Equal(t, 1, passesFor(0))
	assert.Equal(t, 1, passesFor(-1))
	assert.Equal(t, 4, passesFor(1))
	assert.Equal(t, 4, passesFor(2))
	assert.Equal(t, 2, passesFor(0.5))
}
