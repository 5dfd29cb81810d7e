// Package character aggregates one animated character (skeleton, mesh
// regions, facial expression, hand poses, and soft-body state) and runs
// the per-frame update in its load-bearing order: idle drivers, blink,
// expression, hands, skeletal anchors, then physics with vertex
// write-back.
package character

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/normanking/animrig/internal/anim"
	"github.com/normanking/animrig/internal/mesh"
	"github.com/normanking/animrig/internal/physics"
	"github.com/normanking/animrig/internal/skeleton"
)

type ID string

// Character owns all of its animation state exclusively; a single
// simulate-then-render context drives it, so no locking happens here.
type Character struct {
	ID ID

	Skeleton *skeleton.Skeleton
	regions  map[mesh.RegionName]*mesh.Region

	expression *anim.Blender
	blinker    *anim.Blinker
	idle       *anim.IdleDriver
	hands      [2]*anim.FingerSmoother

	sim *physics.Simulator

	HairStiffness  float32
	ClothStiffness float32

	// MinPasses is the relaxation pass floor regardless of stiffness.
	MinPasses int

	wind      mgl32.Vec3
	breathing mgl32.Vec3
	blink     float32
}

// New creates an empty character with a default humanoid skeleton.
func New(id ID) *Character {
	return &Character{
		ID:             id,
		Skeleton:       skeleton.NewHumanoid(),
		regions:        make(map[mesh.RegionName]*mesh.Region),
		expression:     anim.NewBlender(),
		blinker:        anim.NewBlinker(),
		idle:           anim.NewIdleDriver(),
		hands:          [2]*anim.FingerSmoother{anim.NewFingerSmoother(), anim.NewFingerSmoother()},
		sim:            physics.NewSimulator(),
		HairStiffness:  0.8,
		ClothStiffness: 0.6,
		MinPasses:      1,
	}
}

// NewDefault creates a character with generated placeholder geometry:
// sphere head and eyes, strand hair anchored to the head bone, and a
// cloth-grid skirt anchored to the spine. Used until an asset is loaded.
func NewDefault(id ID) *Character {
	c := New(id)

	head := c.Skeleton.Find("head")
	spine := c.Skeleton.Find("spine")

	c.AddRegion(mesh.NewSphereRegion(mesh.RegionHead, 32, 16, 0.25, mgl32.Vec3{0, 1.65, 0}))
	c.AddRegion(mesh.NewSphereRegion(mesh.RegionLeftEye, 12, 6, 0.03, mgl32.Vec3{-0.08, 1.68, 0.2}))
	c.AddRegion(mesh.NewSphereRegion(mesh.RegionRightEye, 12, 6, 0.03, mgl32.Vec3{0.08, 1.68, 0.2}))
	c.AddRegion(mesh.NewSphereRegion(mesh.RegionMouth, 12, 6, 0.04, mgl32.Vec3{0, 1.55, 0.2}))

	hair := mesh.NewStrandRegion(mesh.RegionHair, 24, 12, 0.02, 0.04, mgl32.Vec3{0, 1.85, -0.05})
	hair.AnchorBone = head
	c.AddRegion(hair)

	skirt := mesh.NewGridRegion(mesh.RegionSkirt, 16, 10, 0.03, mgl32.Vec3{0, 0.9, 0})
	skirt.AnchorBone = spine
	c.AddRegion(skirt)

	c.EnablePhysics(mesh.RegionHair, 24)
	c.EnablePhysics(mesh.RegionSkirt, 16)

	return c
}

// AddRegion registers a region; an existing region with the same name is
// replaced.
func (c *Character) AddRegion(r *mesh.Region) {
	c.regions[r.Name] = r
}

// Region returns the named region, or nil.
func (c *Character) Region(name mesh.RegionName) *mesh.Region {
	return c.regions[name]
}

// Regions returns all regions. The map is owned by the character;
// callers must not mutate it concurrently with Update.
func (c *Character) Regions() map[mesh.RegionName]*mesh.Region {
	return c.regions
}

// EnablePhysics (re)initializes soft-body state for a region. Unknown
// regions are ignored.
func (c *Character) EnablePhysics(name mesh.RegionName, pinnedCount int) {
	if r, ok := c.regions[name]; ok {
		r.EnablePhysics(pinnedCount)
	}
}

// SetEmotion requests a transition toward the mapped facial target.
// Intensity is clamped; unmapped emotions request no parameter change.
func (c *Character) SetEmotion(emotion anim.Emotion, intensity float32) {
	c.expression.SetEmotion(emotion, intensity)
}

// Expression returns the currently rendered facial parameters.
func (c *Character) Expression() anim.FacialExpression {
	return c.expression.Current()
}

// AnimateFingers sets the target pose for one hand.
func (c *Character) AnimateFingers(hand anim.Hand, pose anim.FingerPose) {
	c.hands[hand].SetTarget(pose)
}

// FingerPose returns the current smoothed pose for one hand.
func (c *Character) FingerPose(hand anim.Hand) anim.FingerPose {
	return c.hands[hand].Current()
}

// SetWindForce sets the ambient wind applied to all simulated regions.
func (c *Character) SetWindForce(wind mgl32.Vec3) {
	c.wind = wind
}

// WindForce returns the current ambient wind.
func (c *Character) WindForce() mgl32.Vec3 {
	return c.wind
}

// TriggerBlink forces a blink this frame.
func (c *Character) TriggerBlink() {
	c.blinker.Trigger()
}

// Blinking reports whether a blink is in progress.
func (c *Character) Blinking() bool {
	return c.blinker.Blinking()
}

// BreathingOffset returns this frame's idle breathing translation, which
// the renderer folds into the model matrix.
func (c *Character) BreathingOffset() mgl32.Vec3 {
	return c.breathing
}

// Simulator exposes the physics tuning knobs (gravity, damping, passes).
func (c *Character) Simulator() *physics.Simulator {
	return c.sim
}

// Blender exposes the expression tuning knobs.
func (c *Character) Blender() *anim.Blender {
	return c.expression
}

// Blinker exposes the blink tuning knobs.
func (c *Character) Blinker() *anim.Blinker {
	return c.blinker
}

// Idle exposes the breathing tuning knobs.
func (c *Character) Idle() *anim.IdleDriver {
	return c.idle
}

// Hand exposes one hand's smoothing knobs.
func (c *Character) Hand(hand anim.Hand) *anim.FingerSmoother {
	return c.hands[hand]
}

// Update advances the whole character by dt seconds. The order is fixed:
// breathing and blink state must be current before they feed the face,
// and the face and skeleton must be current before physics reads any
// pinned boundary positions.
func (c *Character) Update(dt float32) {
	if dt <= 0 {
		return
	}

	c.breathing = c.idle.Update(dt)
	c.blink = c.blinker.Update(dt)
	c.expression.Update(dt)

	for _, h := range c.hands {
		h.Update(dt)
	}

	c.applyMorphs()
	c.advancePhysics(dt)
}

func (c *Character) applyMorphs() {
	weights := anim.MorphWeights(c.expression.Current(), c.blink)
	for _, r := range c.regions {
		r.ApplyMorphWeights(weights)
	}
}

func (c *Character) advancePhysics(dt float32) {
	for _, r := range c.regions {
		if !r.Simulated() {
			continue
		}

		if r.AnchorBone >= 0 {
			r.UpdateAnchors(c.Skeleton.BoneOffset(r.AnchorBone).Add(c.breathing))
		}

		passes := passesFor(c.stiffnessFor(r.Name))
		if passes < c.MinPasses {
			passes = c.MinPasses
		}
		c.sim.Passes = passes
		c.sim.Advance(r.Body, c.wind, dt)
		r.CommitPhysics()
	}
}

func (c *Character) stiffnessFor(name mesh.RegionName) float32 {
	if name == mesh.RegionSkirt || name == mesh.RegionClothing {
		return c.ClothStiffness
	}
	return c.HairStiffness
}

// passesFor maps a stiffness in [0,1] onto relaxation pass counts:
// stiffer material converges harder toward its rest shape each frame.
func passesFor(stiffness float32) int {
	if stiffness <= 0 {
		return 1
	}
	if stiffness > 1 {
		stiffness = 1
	}
	return 1 + int(stiffness*3)
}
