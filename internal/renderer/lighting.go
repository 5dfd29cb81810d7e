// internal/renderer/lighting.go
//
// Point light rig for character rendering
package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Light is a point light source
type Light struct {
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

// LightingRig is the set of lights illuminating the scene
type LightingRig struct {
	Lights       []Light
	AmbientColor mgl32.Vec3
}

// NewPortraitLighting builds a key/fill/rim rig framed around a
// standing character.
func NewPortraitLighting() *LightingRig {
	return &LightingRig{
		Lights: []Light{
			{
				Position:  mgl32.Vec3{1.5, 2.2, 1.5},
				Color:     mgl32.Vec3{1.0, 0.98, 0.95},
				Intensity: 8.0,
			},
			{
				Position:  mgl32.Vec3{-1.2, 1.6, 1.2},
				Color:     mgl32.Vec3{0.95, 0.97, 1.0},
				Intensity: 4.0,
			},
			{
				Position:  mgl32.Vec3{0, 2.2, -1.0},
				Color:     mgl32.Vec3{1.0, 0.95, 0.9},
				Intensity: 3.0,
			},
		},
		AmbientColor: mgl32.Vec3{0.15, 0.15, 0.18},
	}
}

// SetLightUniforms sets light uniforms on a shader
func (rig *LightingRig) SetLightUniforms(s *Shader) {
	for i, light := range rig.Lights {
		prefix := fmt.Sprintf("uLights[%d].", i)
		s.SetVec3(prefix+"position", light.Position)
		s.SetVec3(prefix+"color", light.Color)
		s.SetFloat(prefix+"intensity", light.Intensity)
	}
	s.SetInt("uLightCount", int32(len(rig.Lights)))
	s.SetVec3("uAmbientColor", rig.AmbientColor)
}
