// Package mesh holds the simulation-side mesh data: named regions of a
// character with their vertex/index buffers, morph targets, and (for
// hair and cloth) soft-body state. GPU resource lifecycle lives entirely
// in internal/renderer; this package only exposes vertex data for upload.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/normanking/animrig/internal/physics"
)

type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

type RegionName string

const (
	RegionHead     RegionName = "head"
	RegionHair     RegionName = "hair"
	RegionLeftEye  RegionName = "leftEye"
	RegionRightEye RegionName = "rightEye"
	RegionMouth    RegionName = "mouth"
	RegionClothing RegionName = "clothing"
	RegionSkirt    RegionName = "skirt"
)

// FingerRegion names one finger mesh, e.g. "leftFinger2".
func FingerRegion(side string, index int) RegionName {
	digits := [...]string{"0", "1", "2", "3", "4"}
	if index < 0 || index > 4 {
		index = 0
	}
	return RegionName(side + "Finger" + digits[index])
}

// MorphTarget is a precomputed alternate vertex configuration blended
// fractionally into the base mesh.
type MorphTarget struct {
	Name           string
	PositionDeltas []mgl32.Vec3
}

// Region is a named subset of the character mesh. Hair and skirt regions
// carry soft-body state; face regions carry morph targets; the rest is
// plain geometry. Created once per character load, destroyed with it.
type Region struct {
	Name     RegionName
	Vertices []Vertex
	Indices  []uint32

	MorphTargets []MorphTarget
	morphDeltas  []mgl32.Vec3

	// Constraint topology as vertex index pairs, populated by the loader
	// or a generator before physics is enabled.
	Topology [][2]int

	Body       *physics.Body
	AnchorBone int

	// Bind positions of the pinned particles, captured when physics is
	// enabled, so anchors can follow a moving bone.
	pinnedBind []mgl32.Vec3
}

// NewRegion creates an empty region.
func NewRegion(name RegionName) *Region {
	return &Region{Name: name, AnchorBone: -1}
}

// EnablePhysics (re)initializes the particle set: one particle per vertex
// at its current position, the leading pinnedCount vertices pinned, and a
// distance constraint per topology pair with rest length taken from the
// initial geometry.
func (r *Region) EnablePhysics(pinnedCount int) {
	positions := make([]mgl32.Vec3, len(r.Vertices))
	for i := range r.Vertices {
		positions[i] = r.Vertices[i].Position
	}

	r.Body = physics.NewBody(positions, pinnedCount)
	for _, pair := range r.Topology {
		r.Body.Connect(pair[0], pair[1])
	}

	r.pinnedBind = r.pinnedBind[:0]
	for i := range r.Body.Particles {
		if !r.Body.Particles[i].Pinned {
			break
		}
		r.pinnedBind = append(r.pinnedBind, r.Body.Particles[i].Position)
	}
}

// UpdateAnchors moves every pinned particle to its bind position plus the
// given rigid offset, keeping the dangling simulation attached to the
// skeleton as it moves.
func (r *Region) UpdateAnchors(offset mgl32.Vec3) {
	if r.Body == nil {
		return
	}
	for i, bind := range r.pinnedBind {
		r.Body.SetAnchor(i, bind.Add(offset))
	}
}

// CommitPhysics overwrites vertex positions with particle positions 1:1
// by index. Excess vertices keep their previous positions.
func (r *Region) CommitPhysics() {
	if !r.Simulated() {
		return
	}
	n := len(r.Body.Particles)
	if len(r.Vertices) < n {
		n = len(r.Vertices)
	}
	for i := 0; i < n; i++ {
		r.Vertices[i].Position = r.Body.Particles[i].Position
	}
}

// DisablePhysics drops the particle set; subsequent simulation calls
// become no-ops for this region.
func (r *Region) DisablePhysics() {
	r.Body = nil
}

// Simulated reports whether this region currently has live soft-body state.
func (r *Region) Simulated() bool {
	return r.Body != nil && len(r.Body.Particles) > 0
}

// ApplyMorphWeights blends named morph targets into the region's deltas.
// Unknown names and weight entries without a matching target are ignored;
// a region with no targets is a no-op.
func (r *Region) ApplyMorphWeights(weights map[string]float32) {
	if len(r.MorphTargets) == 0 {
		return
	}
	if len(r.morphDeltas) != len(r.Vertices) {
		r.morphDeltas = make([]mgl32.Vec3, len(r.Vertices))
	}
	for i := range r.morphDeltas {
		r.morphDeltas[i] = mgl32.Vec3{}
	}

	for _, target := range r.MorphTargets {
		weight, ok := weights[target.Name]
		if !ok || weight < 0.001 {
			continue
		}
		for vi, delta := range target.PositionDeltas {
			if vi < len(r.morphDeltas) {
				r.morphDeltas[vi] = r.morphDeltas[vi].Add(delta.Mul(weight))
			}
		}
	}
}

// PositionAt returns the rendered position of vertex i: the base (or
// physics-written) position plus any active morph deltas.
func (r *Region) PositionAt(i int) mgl32.Vec3 {
	pos := r.Vertices[i].Position
	if i < len(r.morphDeltas) {
		pos = pos.Add(r.morphDeltas[i])
	}
	return pos
}

// Positions returns the finalized vertex positions for this frame. The
// returned slice is owned by the caller; the renderer uploads it after
// simulation has fully completed.
func (r *Region) Positions() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(r.Vertices))
	for i := range r.Vertices {
		out[i] = r.PositionAt(i)
	}
	return out
}
