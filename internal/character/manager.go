package character

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"github.com/normanking/animrig/internal/anim"
)

// Manager holds every live character keyed by ID. All external mutators
// (the control server, host bindings) go through it; per-frame simulation
// stays on the render thread via Update. The mutex exists because the
// control goroutine sets targets while the frame loop runs; targets are
// consumed on the next frame, never mid-step.
type Manager struct {
	mu    sync.Mutex
	chars map[ID]*Character
	log   zerolog.Logger
}

func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		chars: make(map[ID]*Character),
		log:   log.With().Str("component", "characters").Logger(),
	}
}

// Add registers a character, replacing any previous one with the same ID.
func (m *Manager) Add(c *Character) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chars[c.ID] = c
	m.log.Info().Str("character", string(c.ID)).Int("regions", len(c.regions)).Msg("character added")
}

// Get returns the character with the given ID, or nil.
func (m *Manager) Get(id ID) *Character {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chars[id]
}

// Remove drops a character.
func (m *Manager) Remove(id ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.chars, id)
}

// IDs lists the registered character IDs.
func (m *Manager) IDs() []ID {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]ID, 0, len(m.chars))
	for id := range m.chars {
		ids = append(ids, id)
	}
	return ids
}

// Update advances every character by dt. Called once per frame from the
// render thread; GPU upload must wait until this returns.
func (m *Manager) Update(dt float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.chars {
		c.Update(dt)
	}
}

// Tune applies a tuning function to every character, used when the
// configuration file changes at runtime.
func (m *Manager) Tune(fn func(*Character)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.chars {
		fn(c)
	}
}

// SetEmotion maps a discrete emotion onto the character's facial target.
// Lookup and mutation share one critical section so target writes are
// serialized against Update; the same holds for the mutators below.
func (m *Manager) SetEmotion(id ID, emotion anim.Emotion, intensity float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.chars[id]
	if c == nil {
		return fmt.Errorf("unknown character %q", id)
	}
	c.SetEmotion(emotion, intensity)
	m.log.Debug().Str("character", string(id)).Str("emotion", string(emotion)).
		Float32("intensity", intensity).Msg("emotion set")
	return nil
}

// AnimateFingers sets the target pose for one hand.
func (m *Manager) AnimateFingers(id ID, hand anim.Hand, pose anim.FingerPose) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.chars[id]
	if c == nil {
		return fmt.Errorf("unknown character %q", id)
	}
	c.AnimateFingers(hand, pose)
	return nil
}

// SetWindForce sets the ambient wind for the character's soft bodies.
func (m *Manager) SetWindForce(id ID, wind mgl32.Vec3) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.chars[id]
	if c == nil {
		return fmt.Errorf("unknown character %q", id)
	}
	c.SetWindForce(wind)
	return nil
}

// TriggerBlink forces a blink on the character.
func (m *Manager) TriggerBlink(id ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.chars[id]
	if c == nil {
		return fmt.Errorf("unknown character %q", id)
	}
	c.TriggerBlink()
	return nil
}
