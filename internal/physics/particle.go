// Package physics implements the soft-body core: Verlet particles,
// distance-constraint relaxation, and per-region simulation used for
// hair and cloth secondary motion.
package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Particle is one simulated point mass. Velocity is implicit in the
// difference between Position and PrevPosition.
type Particle struct {
	Position     mgl32.Vec3
	PrevPosition mgl32.Vec3
	Acceleration mgl32.Vec3
	Mass         float32
	Pinned       bool
}

// Constraint keeps two particles at RestLength apart. A and B index into
// the owning Body's particle slice; there is no separate identity.
type Constraint struct {
	A          int
	B          int
	RestLength float32
}

// Body is the particle arena for one mesh region plus its constraint graph.
type Body struct {
	Particles   []Particle
	Constraints []Constraint
}

// NewBody creates one particle per position, at rest (prev == pos, zero
// acceleration, unit mass). The first pinnedCount particles are pinned,
// anchoring the body to whatever rigid geometry owns those vertices.
func NewBody(positions []mgl32.Vec3, pinnedCount int) *Body {
	b := &Body{
		Particles: make([]Particle, len(positions)),
	}
	for i, pos := range positions {
		b.Particles[i] = Particle{
			Position:     pos,
			PrevPosition: pos,
			Mass:         1.0,
			Pinned:       i < pinnedCount,
		}
	}
	return b
}

// Connect adds a distance constraint between particles a and b with rest
// length taken from their current separation. Invalid indices are ignored.
func (b *Body) Connect(a, c int) {
	if a < 0 || c < 0 || a >= len(b.Particles) || c >= len(b.Particles) || a == c {
		return
	}
	rest := b.Particles[c].Position.Sub(b.Particles[a].Position).Len()
	b.Constraints = append(b.Constraints, Constraint{A: a, B: c, RestLength: rest})
}

// SetAnchor moves a pinned particle to a new boundary position. Unpinned
// particles are left to the integrator.
func (b *Body) SetAnchor(i int, pos mgl32.Vec3) {
	if i < 0 || i >= len(b.Particles) || !b.Particles[i].Pinned {
		return
	}
	b.Particles[i].Position = pos
	b.Particles[i].PrevPosition = pos
}

// Positions returns a snapshot of current particle positions.
func (b *Body) Positions() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(b.Particles))
	for i := range b.Particles {
		out[i] = b.Particles[i].Position
	}
	return out
}
