package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"github.com/normanking/animrig/internal/anim"
	"github.com/normanking/animrig/internal/character"
	"github.com/normanking/animrig/internal/config"
	"github.com/normanking/animrig/internal/control"
	"github.com/normanking/animrig/internal/logging"
	"github.com/normanking/animrig/internal/mesh"
	"github.com/normanking/animrig/internal/renderer"
)

func init() {
	runtime.LockOSThread()
}

type flags struct {
	CharacterID string
	ModelPath   string
	ShaderDir   string
	Demo        bool
	ShowFPS     bool
}

func main() {
	fl := parseFlags()

	logger, err := logging.New(nil)
	if err != nil {
		os.Exit(1)
	}
	defer logger.Close()
	log := logger.Component("main")

	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Msg("Config load failed, using defaults")
	}

	if err := glfw.Init(); err != nil {
		log.Fatal().Err(err).Msg("GLFW init failed")
	}
	defer glfw.Terminate()

	rend, err := renderer.New(renderer.Config{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Title:     cfg.Window.Title,
		VSync:     cfg.Window.VSync,
		MSAA:      cfg.Window.MSAA,
		Frameless: cfg.Window.Frameless,
		ShaderDir: fl.ShaderDir,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Renderer init failed")
	}
	defer rend.Shutdown()

	chars := character.NewManager(logger.Component("character"))
	chars.Add(buildCharacter(fl, log))
	applyTuning(chars, cfg)

	config.Watch(func(next *config.Config) {
		applyTuning(chars, next)
		log.Info().Msg("Config reloaded")
	}, func(err error) {
		log.Warn().Err(err).Msg("Config reload failed")
	})

	if cfg.Control.Enabled {
		srv := control.NewServer(cfg.Control.ListenAddr, chars, logger.Component("control"))
		go func() {
			if err := srv.Start(); err != nil {
				log.Error().Err(err).Msg("Control server failed")
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
	}

	wireCameraInput(rend)

	log.Info().
		Str("character", fl.CharacterID).
		Bool("demo", fl.Demo).
		Msg("Engine running, close window or Ctrl+C to exit")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	frameStart := time.Now()
	var totalTime float32

	frameCount := 0
	fpsTimer := time.Now()

	for !rend.ShouldClose() {
		select {
		case <-sigChan:
			log.Info().Msg("Shutdown signal received")
			return
		default:
		}

		now := time.Now()
		dt := float32(now.Sub(frameStart).Seconds())
		frameStart = now
		totalTime += dt

		// A stall (window drag, debugger) must not explode the physics.
		if dt > 0.1 {
			dt = 0.1
		}

		if fl.Demo {
			runDemo(chars, character.ID(fl.CharacterID), totalTime)
		}

		chars.Update(dt)

		rend.DrainShaderReloads(func(err error) {
			log.Warn().Err(err).Msg("Shader reload failed")
		})

		rend.BeginFrame()
		for _, id := range chars.IDs() {
			if c := chars.Get(id); c != nil {
				rend.DrawCharacter(c)
			}
		}
		rend.Present()

		frameCount++
		if fl.ShowFPS && time.Since(fpsTimer) >= time.Second {
			draws, tris := rend.GetStats()
			log.Debug().
				Int("fps", frameCount).
				Int("draws", draws).
				Int("triangles", tris).
				Msg("Frame stats")
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	log.Info().Msg("Render loop ended")
}

// buildCharacter assembles the startup character, swapping the generated
// head for a glTF mesh when -model is given. A bad model file keeps the
// generated head rather than aborting.
func buildCharacter(fl *flags, log zerolog.Logger) *character.Character {
	c := character.NewDefault(character.ID(fl.CharacterID))

	if fl.ModelPath != "" {
		head, err := mesh.LoadRegionFromGLTF(fl.ModelPath, mesh.RegionHead)
		if err != nil {
			log.Warn().Err(err).Str("path", fl.ModelPath).Msg("Model load failed, keeping generated head")
			return c
		}
		c.AddRegion(head)
		log.Info().
			Str("path", fl.ModelPath).
			Int("vertices", len(head.Vertices)).
			Int("morphTargets", len(head.MorphTargets)).
			Msg("Head mesh loaded")
	}

	return c
}

// applyTuning pushes file-backed settings onto every live character.
func applyTuning(chars *character.Manager, cfg *config.Config) {
	chars.Tune(func(c *character.Character) {
		sim := c.Simulator()
		sim.Gravity = mgl32.Vec3{0, -float32(cfg.Physics.Gravity), 0}
		sim.Damping = float32(cfg.Physics.Damping)
		c.MinPasses = cfg.Physics.SolverPasses

		c.Blender().Speed = float32(cfg.Animation.ExpressionSpeed)

		blinker := c.Blinker()
		blinker.MinGap = float32(cfg.Animation.BlinkMinGap)
		blinker.MaxGap = float32(cfg.Animation.BlinkMaxGap)
		blinker.Duration = float32(cfg.Animation.BlinkDuration)

		idle := c.Idle()
		idle.BreathingRate = float32(cfg.Animation.BreathingRate)
		idle.BreathingAmplitude = float32(cfg.Animation.BreathingAmplitude)

		c.Hand(anim.HandLeft).Rate = float32(cfg.Animation.FingerSmoothing)
		c.Hand(anim.HandRight).Rate = float32(cfg.Animation.FingerSmoothing)
	})
}

func wireCameraInput(rend *renderer.Renderer) {
	var lastX, lastY float64
	var dragging bool

	window := rend.Window()

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft {
			dragging = action == glfw.Press
			lastX, lastY = w.GetCursorPos()
		}
	})

	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		if dragging {
			rend.Camera().Orbit(float32(x-lastX)*0.5, float32(y-lastY)*0.5)
		}
		lastX, lastY = x, y
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		rend.Camera().Zoom(float32(yoff) * 0.1)
	})
}

var demoEmotions = []struct {
	emotion   anim.Emotion
	intensity float32
}{
	{anim.EmotionHappy, 0.8},
	{anim.EmotionSurprised, 1.0},
	{anim.EmotionThinking, 0.6},
	{anim.EmotionSad, 0.7},
	{anim.EmotionNeutral, 0.5},
}

var lastDemoChange float32
var demoIdx = -1

// runDemo cycles through the emotion table and gusts of wind so the
// whole pipeline is visible without an external controller.
func runDemo(chars *character.Manager, id character.ID, t float32) {
	if t-lastDemoChange < 4.0 {
		return
	}
	lastDemoChange = t
	demoIdx = (demoIdx + 1) % len(demoEmotions)

	step := demoEmotions[demoIdx]
	chars.SetEmotion(id, step.emotion, step.intensity)

	if demoIdx%2 == 0 {
		chars.SetWindForce(id, mgl32.Vec3{1.5, 0, 0.5})
	} else {
		chars.SetWindForce(id, mgl32.Vec3{})
	}
}

func parseFlags() *flags {
	fl := &flags{}

	flag.StringVar(&fl.CharacterID, "character", "hannah", "Character ID")
	flag.StringVar(&fl.ModelPath, "model", "", "Load the head mesh from a glTF file")
	flag.StringVar(&fl.ShaderDir, "shaders", "", "Load shaders from this directory and hot-reload on change")
	flag.BoolVar(&fl.Demo, "demo", false, "Cycle emotions and wind automatically")
	flag.BoolVar(&fl.ShowFPS, "fps", false, "Log frame stats every second")

	flag.Parse()

	return fl
}
