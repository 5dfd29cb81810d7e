package renderer

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/normanking/animrig/internal/character"
	"github.com/normanking/animrig/internal/mesh"
)

type Config struct {
	Width     int
	Height    int
	Title     string
	VSync     bool
	MSAA      int
	Frameless bool

	// ShaderDir, when set, loads character.vert/character.frag from this
	// directory instead of the embedded sources and hot-reloads on change.
	ShaderDir string
}

func DefaultConfig() Config {
	return Config{
		Width:  800,
		Height: 600,
		Title:  "AnimRig",
		VSync:  true,
		MSAA:   4,
	}
}

// Renderer owns the window, GL context, and every GPU handle. The
// simulation side hands over plain vertex data and never sees GL.
type Renderer struct {
	window *glfw.Window
	config Config

	characterShader *Shader
	shaderWatcher   *ShaderWatcher

	camera      *Camera
	lightingRig *LightingRig

	projectionMatrix mgl32.Mat4
	viewMatrix       mgl32.Mat4

	// Per character+region GPU meshes, built lazily on first draw.
	meshes map[string]*Mesh

	drawCalls int
	triangles int

	fbWidth  int
	fbHeight int
}

func New(cfg Config) (*Renderer, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	if cfg.MSAA > 0 {
		glfw.WindowHint(glfw.Samples, cfg.MSAA)
	}

	if cfg.Frameless {
		glfw.WindowHint(glfw.Decorated, glfw.False)
	}

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	r := &Renderer{
		window: window,
		config: cfg,
		meshes: make(map[string]*Mesh),
	}

	fbW, fbH := window.GetFramebufferSize()
	r.fbWidth = fbW
	r.fbHeight = fbH

	if cfg.ShaderDir != "" {
		r.characterShader, err = NewShaderFromFiles(
			filepath.Join(cfg.ShaderDir, "character.vert"),
			filepath.Join(cfg.ShaderDir, "character.frag"),
		)
		if err != nil {
			return nil, fmt.Errorf("character shader: %w", err)
		}
		r.shaderWatcher, err = NewShaderWatcher()
		if err != nil {
			return nil, fmt.Errorf("shader watcher: %w", err)
		}
		if err := r.shaderWatcher.Watch(r.characterShader); err != nil {
			return nil, fmt.Errorf("watch shaders: %w", err)
		}
	} else {
		r.characterShader, err = NewShaderFromSource(characterVertSrc, characterFragSrc)
		if err != nil {
			return nil, fmt.Errorf("character shader: %w", err)
		}
	}

	r.camera = NewPortraitCamera(float32(cfg.Width) / float32(cfg.Height))
	r.lightingRig = NewPortraitLighting()

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	if cfg.MSAA > 0 {
		gl.Enable(gl.MULTISAMPLE)
	}

	return r, nil
}

// DrainShaderReloads recompiles any shader whose source file changed.
// No-op unless a shader directory is configured. Render thread only.
func (r *Renderer) DrainShaderReloads(onError func(error)) {
	if r.shaderWatcher != nil {
		r.shaderWatcher.DrainReloads(onError)
	}
}

func (r *Renderer) BeginFrame() {
	r.drawCalls = 0
	r.triangles = 0

	gl.ClearColor(0.1, 0.1, 0.12, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.projectionMatrix = r.camera.ProjectionMatrix()
	r.viewMatrix = r.camera.ViewMatrix()

	r.characterShader.Use()
	r.characterShader.SetMat4("uProjection", r.projectionMatrix)
	r.characterShader.SetMat4("uView", r.viewMatrix)
	r.characterShader.SetVec3("uCameraPos", r.camera.Position)
	r.lightingRig.SetLightUniforms(r.characterShader)
}

// DrawCharacter syncs each region's deformed vertices to the GPU and
// draws them. Simulated regions carry breathing through their pinned
// anchors, so only rigid regions take the breathing translation in the
// model matrix; doubling it up would make hair and cloth bob twice.
func (r *Renderer) DrawCharacter(c *character.Character) {
	for name, region := range c.Regions() {
		if len(region.Vertices) == 0 {
			continue
		}

		key := string(c.ID) + "/" + string(name)
		gpuMesh, ok := r.meshes[key]
		if !ok {
			gpuMesh = NewMesh(region)
			r.meshes[key] = gpuMesh
		} else {
			gpuMesh.Sync(region)
		}

		r.characterShader.SetMat4("uModel", modelMatrix(c, region))
		r.characterShader.SetVec3("uColor", regionColor(name))
		gpuMesh.Draw()

		r.drawCalls++
		r.triangles += gpuMesh.Triangles()
	}
}

// DropCharacter releases the GPU meshes of a removed character.
func (r *Renderer) DropCharacter(id character.ID) {
	prefix := string(id) + "/"
	for key, gpuMesh := range r.meshes {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			gpuMesh.Delete()
			delete(r.meshes, key)
		}
	}
}

// modelMatrix picks the per-region model transform. Simulated regions
// already carry breathing through their pinned anchors, so only rigid
// regions take the breathing translation; doubling it up would make
// hair and cloth bob twice.
func modelMatrix(c *character.Character, region *mesh.Region) mgl32.Mat4 {
	if region.Simulated() {
		return mgl32.Ident4()
	}
	off := c.BreathingOffset()
	return mgl32.Translate3D(off.X(), off.Y(), off.Z())
}

func regionColor(name mesh.RegionName) mgl32.Vec3 {
	switch name {
	case mesh.RegionHair:
		return mgl32.Vec3{0.25, 0.16, 0.10}
	case mesh.RegionLeftEye, mesh.RegionRightEye:
		return mgl32.Vec3{0.95, 0.95, 0.98}
	case mesh.RegionMouth:
		return mgl32.Vec3{0.75, 0.35, 0.35}
	case mesh.RegionSkirt, mesh.RegionClothing:
		return mgl32.Vec3{0.25, 0.30, 0.55}
	default:
		return mgl32.Vec3{0.92, 0.76, 0.65}
	}
}

func (r *Renderer) Present() {
	r.window.SwapBuffers()
	glfw.PollEvents()
}

func (r *Renderer) ShouldClose() bool {
	return r.window.ShouldClose()
}

func (r *Renderer) Window() *glfw.Window {
	return r.window
}

func (r *Renderer) Camera() *Camera {
	return r.camera
}

func (r *Renderer) GetStats() (drawCalls, triangles int) {
	return r.drawCalls, r.triangles
}

func (r *Renderer) Shutdown() {
	if r.shaderWatcher != nil {
		r.shaderWatcher.Close()
	}
	for _, gpuMesh := range r.meshes {
		gpuMesh.Delete()
	}
	r.characterShader.Delete()
	r.window.Destroy()
}

var characterVertSrc = `#version 410 core

layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;

out vec3 vPosition;
out vec3 vNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

void main() {
    vec4 worldPos = uModel * vec4(aPosition, 1.0);
    vPosition = worldPos.xyz;

    mat3 normalMatrix = transpose(inverse(mat3(uModel)));
    vNormal = normalize(normalMatrix * aNormal);

    gl_Position = uProjection * uView * worldPos;
}
` + "\x00"

var characterFragSrc = `#version 410 core

in vec3 vPosition;
in vec3 vNormal;

out vec4 FragColor;

uniform vec3 uCameraPos;
uniform vec3 uColor;

struct Light {
    vec3 position;
    vec3 color;
    float intensity;
};

#define MAX_LIGHTS 4
uniform Light uLights[MAX_LIGHTS];
uniform int uLightCount;
uniform vec3 uAmbientColor;

void main() {
    vec3 N = normalize(vNormal);
    vec3 V = normalize(uCameraPos - vPosition);

    vec3 Lo = vec3(0.0);

    for (int i = 0; i < uLightCount && i < MAX_LIGHTS; i++) {
        vec3 L = normalize(uLights[i].position - vPosition);
        float distance = length(uLights[i].position - vPosition);
        float attenuation = 1.0 / (distance * distance);

        float NdotL = abs(dot(N, L));
        vec3 diffuse = uColor * NdotL;

        vec3 H = normalize(V + L);
        float spec = pow(max(dot(N, H), 0.0), 32.0);
        vec3 specular = vec3(0.25) * spec;

        vec3 radiance = uLights[i].color * uLights[i].intensity * attenuation;
        Lo += (diffuse + specular) * radiance;
    }

    vec3 ambient = uAmbientColor * uColor;
    FragColor = vec4(ambient + Lo, 1.0);
}
` + "\x00"
