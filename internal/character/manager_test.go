package character

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/normanking/animrig/internal/anim"
)

func newTestManager() *Manager {
	return NewManager(zerolog.Nop())
}

func TestManagerAddGetRemove(t *testing.T) {
	m := newTestManager()
	m.Add(NewDefault("hannah"))

	require.NotNil(t, m.Get("hannah"))
	assert.Nil(t, m.Get("henry"))
	assert.Equal(t, []ID{"hannah"}, m.IDs())

	m.Remove("hannah")
	assert.Nil(t, m.Get("hannah"))
}

func TestManagerOperationsTakeExplicitID(t *testing.T) {
	m := newTestManager()
	m.Add(NewDefault("hannah"))

	require.NoError(t, m.SetEmotion("hannah", anim.EmotionHappy, 0.5))
	require.NoError(t, m.SetWindForce("hannah", mgl32.Vec3{1, 0, 0}))
	require.NoError(t, m.TriggerBlink("hannah"))
	require.NoError(t, m.AnimateFingers("hannah", anim.HandRight, anim.RestFingerPose()))

	assert.Error(t, m.SetEmotion("ghost", anim.EmotionHappy, 0.5))
	assert.Error(t, m.SetWindForce("ghost", mgl32.Vec3{}))
	assert.Error(t, m.TriggerBlink("ghost"))
	assert.Error(t, m.AnimateFingers("ghost", anim.HandLeft, anim.RestFingerPose()))
}

func TestManagerUpdateAdvancesAllCharacters(t *testing.T) {
	m := newTestManager()
	m.Add(NewDefault("hannah"))
	m.Add(NewDefault("henry"))

	require.NoError(t, m.SetEmotion("hannah", anim.EmotionHappy, 1.0))
	require.NoError(t, m.SetEmotion("henry", anim.EmotionSad, 1.0))

	for i := 0; i < 600; i++ {
		m.Update(frameDt)
	}

	assert.InDelta(t, 1.0, float64(m.Get("hannah").Expression().SmileIntensity), 1e-3)
	assert.InDelta(t, -0.5, float64(m.Get("henry").Expression().SmileIntensity), 1e-3)
}

// Mutators run on the control goroutine while Update runs on the render
// thread; both must serialize on the manager mutex. Run with -race.
func TestManagerMutatorsConcurrentWithUpdate(t *testing.T) {
	m := newTestManager()
	m.Add(NewDefault("hannah"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_ = m.SetEmotion("hannah", anim.EmotionHappy, 1.0)
			_ = m.SetWindForce("hannah", mgl32.Vec3{0.5, 0, 0})
			_ = m.TriggerBlink("hannah")
			_ = m.AnimateFingers("hannah", anim.HandLeft, anim.RestFingerPose())
		}
	}()
	for i := 0; i < 200; i++ {
		m.Update(frameDt)
	}
	<-done

	assert.Equal(t, float32(1.0), m.Get("hannah").Blender().Target().SmileIntensity)
}

func TestManagerTune(t *testing.T) {
	m := newTestManager()
	m.Add(NewDefault("hannah"))

	m.Tune(func(c *Character) {
		c.Blender().Speed = 4.0
		c.HairStiffness = 0.2
	})

	assert.Equal(t, float32(4.0), m.Get("hannah").Blender().Speed)
	assert.Equal(t, float32(0.2), m.Get("hannah").HairStiffness)
}
