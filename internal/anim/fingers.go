package anim

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Hand int

const (
	HandLeft Hand = iota
	HandRight
)

// FingerPose describes one hand: per-finger bend from thumb to pinky,
// plus the hand's position and rotation.
type FingerPose struct {
	Bends        [5]float32
	HandPosition mgl32.Vec3
	HandRotation mgl32.Quat
}

func RestFingerPose() FingerPose {
	return FingerPose{HandRotation: mgl32.QuatIdent()}
}

// FingerSmoother approaches a target pose with the same exponential law
// the expression blender uses, so hands and face settle with matching
// feel. Rotation is slerped.
type FingerSmoother struct {
	current FingerPose
	target  FingerPose

	// Rate is the approach rate in 1/s.
	Rate float32
}

func NewFingerSmoother() *FingerSmoother {
	pose := RestFingerPose()
	return &FingerSmoother{
		current: pose,
		target:  pose,
		Rate:    10.0,
	}
}

func (f *FingerSmoother) Current() FingerPose {
	return f.current
}

func (f *FingerSmoother) SetTarget(pose FingerPose) {
	for i := range pose.Bends {
		pose.Bends[i] = clamp(pose.Bends[i], 0, 1)
	}
	f.target = pose
}

func (f *FingerSmoother) SetImmediate(pose FingerPose) {
	f.SetTarget(pose)
	f.current = f.target
}

func (f *FingerSmoother) Update(dt float32) {
	if dt <= 0 {
		return
	}

	factor := dt * f.Rate
	if factor > 1 {
		factor = 1
	}

	for i := range f.current.Bends {
		f.current.Bends[i] = approach(f.current.Bends[i], f.target.Bends[i], factor)
	}

	delta := f.target.HandPosition.Sub(f.current.HandPosition)
	f.current.HandPosition = f.current.HandPosition.Add(delta.Mul(factor))

	f.current.HandRotation = mgl32.QuatSlerp(f.current.HandRotation, f.target.HandRotation, factor)
}
