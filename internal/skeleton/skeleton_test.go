package skeleton

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanoidHierarchy(t *testing.T) {
	s := NewHumanoid()

	head := s.Find("head")
	require.GreaterOrEqual(t, head, 0)

	// root(0) + spine(1.0) + neck(0.5) + head(0.15)
	pos := s.BonePosition(head)
	assert.InDelta(t, 1.65, float64(pos.Y()), 1e-5)
	assert.InDelta(t, 0, float64(pos.X()), 1e-5)
}

func TestFindMissingBone(t *testing.T) {
	s := NewHumanoid()
	assert.Equal(t, -1, s.Find("tail"))
}

func TestBoneOffsetTracksMotion(t *testing.T) {
	s := NewHumanoid()
	head := s.Find("head")

	assert.Equal(t, mgl32.Vec3{}, s.BoneOffset(head))

	root := s.Find("root")
	s.SetLocalPosition(root, mgl32.Vec3{0.3, 0, 0})

	offset := s.BoneOffset(head)
	assert.InDelta(t, 0.3, float64(offset.X()), 1e-5)
	assert.InDelta(t, 0, float64(offset.Y()), 1e-5)
}

func TestRotationPropagatesToChildren(t *testing.T) {
	s := NewHumanoid()
	spine := s.Find("spine")
	head := s.Find("head")

	s.SetLocalRotation(spine, mgl32.QuatRotate(float32(math.Pi/2), mgl32.Vec3{0, 0, 1}))

	// Neck+head extend 0.65 above the spine joint; after a 90 degree
	// roll they extend along -X instead.
	pos := s.BonePosition(head)
	assert.InDelta(t, -0.65, float64(pos.X()), 1e-4)
	assert.InDelta(t, 1.0, float64(pos.Y()), 1e-4)
}

func TestBoneWorldOutOfRange(t *testing.T) {
	s := NewHumanoid()
	assert.Equal(t, mgl32.Ident4(), s.BoneWorld(99))
	assert.Equal(t, mgl32.Vec3{}, s.BoneOffset(-1))
}
