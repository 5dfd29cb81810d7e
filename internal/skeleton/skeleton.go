// Package skeleton provides the rigid bone hierarchy that anchors the
// soft-body simulation: pinned particles follow the world transform of
// their region's anchor bone.
package skeleton

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Bone is one joint in the hierarchy. Parent indexes into the owning
// skeleton's bone list; the root uses -1. Bones must be ordered so a
// parent always precedes its children.
type Bone struct {
	Name          string
	Parent        int
	LocalPosition mgl32.Vec3
	LocalRotation mgl32.Quat
}

type Skeleton struct {
	Bones []Bone

	world     []mgl32.Mat4
	bindWorld []mgl32.Vec3
	dirty     bool
}

func New(bones []Bone) *Skeleton {
	s := &Skeleton{
		Bones: bones,
		world: make([]mgl32.Mat4, len(bones)),
		dirty: true,
	}
	s.Resolve()
	s.bindWorld = make([]mgl32.Vec3, len(bones))
	for i := range bones {
		s.bindWorld[i] = s.BonePosition(i)
	}
	return s
}

// Find returns the index of the named bone, or -1.
func (s *Skeleton) Find(name string) int {
	for i := range s.Bones {
		if s.Bones[i].Name == name {
			return i
		}
	}
	return -1
}

// SetLocalRotation updates a bone's local rotation and marks the world
// transforms stale.
func (s *Skeleton) SetLocalRotation(i int, rot mgl32.Quat) {
	if i < 0 || i >= len(s.Bones) {
		return
	}
	s.Bones[i].LocalRotation = rot
	s.dirty = true
}

// SetLocalPosition updates a bone's local position.
func (s *Skeleton) SetLocalPosition(i int, pos mgl32.Vec3) {
	if i < 0 || i >= len(s.Bones) {
		return
	}
	s.Bones[i].LocalPosition = pos
	s.dirty = true
}

// Resolve recomputes world transforms in index order, parents first.
func (s *Skeleton) Resolve() {
	for i := range s.Bones {
		b := &s.Bones[i]
		local := mgl32.Translate3D(b.LocalPosition.X(), b.LocalPosition.Y(), b.LocalPosition.Z()).
			Mul4(b.LocalRotation.Mat4())
		if b.Parent >= 0 && b.Parent < i {
			s.world[i] = s.world[b.Parent].Mul4(local)
		} else {
			s.world[i] = local
		}
	}
	s.dirty = false
}

// BoneWorld returns the bone's world transform.
func (s *Skeleton) BoneWorld(i int) mgl32.Mat4 {
	if s.dirty {
		s.Resolve()
	}
	if i < 0 || i >= len(s.world) {
		return mgl32.Ident4()
	}
	return s.world[i]
}

// BonePosition returns the bone's world-space position.
func (s *Skeleton) BonePosition(i int) mgl32.Vec3 {
	m := s.BoneWorld(i)
	return mgl32.Vec3{m[12], m[13], m[14]}
}

// BoneOffset returns how far the bone has moved from its bind pose,
// which is exactly the displacement pinned particles should follow.
func (s *Skeleton) BoneOffset(i int) mgl32.Vec3 {
	if i < 0 || i >= len(s.bindWorld) {
		return mgl32.Vec3{}
	}
	return s.BonePosition(i).Sub(s.bindWorld[i])
}

// NewHumanoid builds the default rig used before a character asset binds
// its own skeleton: spine up to head, plus one hand bone per side.
func NewHumanoid() *Skeleton {
	ident := mgl32.QuatIdent()
	return New([]Bone{
		{Name: "root", Parent: -1, LocalRotation: ident},
		{Name: "spine", Parent: 0, LocalPosition: mgl32.Vec3{0, 1.0, 0}, LocalRotation: ident},
		{Name: "neck", Parent: 1, LocalPosition: mgl32.Vec3{0, 0.5, 0}, LocalRotation: ident},
		{Name: "head", Parent: 2, LocalPosition: mgl32.Vec3{0, 0.15, 0}, LocalRotation: ident},
		{Name: "leftHand", Parent: 1, LocalPosition: mgl32.Vec3{-0.6, 0.2, 0}, LocalRotation: ident},
		{Name: "rightHand", Parent: 1, LocalPosition: mgl32.Vec3{0.6, 0.2, 0}, LocalRotation: ident},
	})
}
