package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Simulator advances soft bodies with semi-implicit Verlet integration
// followed by Gauss-Seidel constraint relaxation. It is deliberately
// tolerant: empty bodies, stale constraint indices, and degenerate
// geometry all degrade to no-ops rather than errors, because a dropped
// correction only costs a frame of visual accuracy.
type Simulator struct {
	Gravity mgl32.Vec3
	Damping float32
	Passes  int
}

// NewSimulator returns a simulator with standard gravity, 0.99 velocity
// damping, and a single relaxation pass per frame.
func NewSimulator() *Simulator {
	return &Simulator{
		Gravity: mgl32.Vec3{0, -9.81, 0},
		Damping: 0.99,
		Passes:  1,
	}
}

// Advance integrates every unpinned particle and relaxes all constraints.
// Pinned particles are boundary conditions: excluded from both the
// velocity estimate and the position update.
func (s *Simulator) Advance(b *Body, wind mgl32.Vec3, dt float32) {
	if b == nil || len(b.Particles) == 0 || dt <= 0 {
		return
	}

	dt2 := dt * dt
	for i := range b.Particles {
		p := &b.Particles[i]
		if p.Pinned {
			continue
		}

		velocity := p.Position.Sub(p.PrevPosition)
		p.Acceleration = s.Gravity.Add(wind)

		next := p.Position.Add(velocity.Mul(s.Damping)).Add(p.Acceleration.Mul(dt2))
		p.PrevPosition = p.Position
		p.Position = next
	}

	passes := s.Passes
	if passes < 1 {
		passes = 1
	}
	for i := 0; i < passes; i++ {
		s.relax(b)
	}
}

// relax runs one pass over the constraint list in order, moving each
// unpinned endpoint by half the correction. Convergence is approximate
// after one pass and improves with more passes or more frames.
func (s *Simulator) relax(b *Body) {
	for _, c := range b.Constraints {
		if c.A < 0 || c.B < 0 || c.A >= len(b.Particles) || c.B >= len(b.Particles) {
			continue
		}

		p1 := &b.Particles[c.A]
		p2 := &b.Particles[c.B]

		delta := p2.Position.Sub(p1.Position)
		distance := delta.Len()
		if distance == 0 {
			continue
		}

		diff := (c.RestLength - distance) / distance
		translate := delta.Mul(diff * 0.5)

		if !p1.Pinned {
			p1.Position = p1.Position.Sub(translate)
		}
		if !p2.Pinned {
			p2.Position = p2.Position.Add(translate)
		}
	}
}

// WriteBack copies particle positions into out, 1:1 by index. A region
// with more vertices than particles keeps its excess vertices untouched.
func (s *Simulator) WriteBack(b *Body, out []mgl32.Vec3) {
	if b == nil {
		return
	}
	n := len(b.Particles)
	if len(out) < n {
		n = len(out)
	}
	for i := 0; i < n; i++ {
		out[i] = b.Particles[i].Position
	}
}
