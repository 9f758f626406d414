// Package viewer shows a tube trail following an animated point in an
// SDL2/OpenGL window.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/tubetrail/internal/config"
	"github.com/Faultbox/tubetrail/internal/engine/camera"
	"github.com/Faultbox/tubetrail/internal/engine/glmesh"
	"github.com/Faultbox/tubetrail/internal/engine/input"
	"github.com/Faultbox/tubetrail/internal/engine/shader"
	"github.com/Faultbox/tubetrail/internal/engine/window"
	"github.com/Faultbox/tubetrail/internal/logger"
	"github.com/Faultbox/tubetrail/internal/motion"
	"github.com/Faultbox/tubetrail/internal/tube"
	"github.com/Faultbox/tubetrail/pkg/math"
)

// maxRingSegments bounds the +/- ring resolution keys.
const maxRingSegments = 64

// Viewer owns the window, GL resources and the trail being displayed.
type Viewer struct {
	cfg     *config.Config
	log     *zap.Logger
	window  *window.Window
	input   *input.Input
	camera  *camera.OrbitCamera
	program *shader.Program
	mesh    *glmesh.Mesh
	gen     *tube.Generator
	trail   *tube.Trail
	sampler *motion.Sampler
	paused  bool
	width   int
	height  int
}

// New opens the window and prepares the trail.
func New(cfg *config.Config) (*Viewer, error) {
	path, err := motion.PathFromConfig(cfg.Motion)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		cfg:     cfg,
		log:     logger.Named("viewer"),
		input:   input.New(),
		camera:  camera.NewOrbitCamera(),
		sampler: motion.NewSampler(path, cfg.Motion.Speed),
	}

	v.window, err = window.New(window.Config{
		Title:      "tubeview",
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	if err := v.initGL(); err != nil {
		v.window.Close()
		return nil, err
	}

	opts := append(cfg.GeneratorOptions(), tube.WithLogger(logger.Named("generator")))
	v.gen, err = tube.New(cfg.Tube, opts...)
	if err != nil {
		v.Close()
		return nil, err
	}
	v.trail = tube.NewTrail(v.gen, v.mesh,
		tube.WithMinDistance(cfg.Feed.MinDistance),
		tube.WithTrailLogger(logger.Named("trail")),
	)
	if _, err := v.trail.AddSample(v.sampler.Position()); err != nil {
		v.Close()
		return nil, err
	}

	v.width, v.height = v.window.Size()
	return v, nil
}

func (v *Viewer) initGL() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("initializing OpenGL: %w", err)
	}
	v.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0.08, 0.08, 0.11, 1.0)

	program, err := shader.NewProgram(tubeVertexShader, tubeFragmentShader)
	if err != nil {
		return fmt.Errorf("creating tube shader: %w", err)
	}
	v.program = program
	v.mesh = glmesh.New()
	return nil
}

// Close releases GL resources and the window.
func (v *Viewer) Close() {
	if v.gen != nil {
		v.gen.Close()
	}
	if v.mesh != nil {
		v.mesh.Delete()
	}
	if v.program != nil {
		v.program.Delete()
	}
	if v.window != nil {
		v.window.Close()
	}
}

// Run drives the frame loop until the window closes.
func (v *Viewer) Run() error {
	last := time.Now()
	titleAt := last

	for {
		if v.input.Update() {
			return nil
		}
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		if err := v.handleEvents(); err != nil {
			return err
		}
		if !v.paused {
			pos := v.sampler.Step(dt)
			if _, err := v.trail.AddSample(pos); err != nil {
				return err
			}
			v.camera.Follow(pos, dt)
		}

		v.draw()
		v.window.SwapBuffers()

		if now.Sub(titleAt) > 500*time.Millisecond {
			titleAt = now
			cfg := v.trail.Config()
			v.window.SetTitle(fmt.Sprintf("tubeview | %s caps | %d ring | %d samples | %d tris | %.0f fps",
				cfg.CapStyle, cfg.RingSegmentCount, v.trail.Len(), v.mesh.IndexCount()/3, 1/max(dt, 1e-6)))
		}
	}
}

func (v *Viewer) handleEvents() error {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			v.width, v.height = v.window.Size()
		case input.EventMouseDrag:
			v.camera.HandleDrag(e.DX, e.DY)
		case input.EventMouseWheel:
			v.camera.HandleZoom(e.DY)
		case input.EventKeyDown:
			if err := v.handleKey(e.Key); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *Viewer) handleKey(key sdl.Keycode) error {
	cfg := v.trail.Config()
	switch key {
	case sdl.K_1:
		cfg.CapStyle = tube.CapOpen
	case sdl.K_2:
		cfg.CapStyle = tube.CapFlat
	case sdl.K_3:
		cfg.CapStyle = tube.CapCapsule
	case sdl.K_EQUALS, sdl.K_KP_PLUS:
		cfg.RingSegmentCount = min(cfg.RingSegmentCount+1, maxRingSegments)
	case sdl.K_MINUS, sdl.K_KP_MINUS:
		cfg.RingSegmentCount = max(cfg.RingSegmentCount-1, 2)
	case sdl.K_SPACE:
		v.paused = !v.paused
		return nil
	case sdl.K_w:
		v.cfg.Viewer.Wireframe = !v.cfg.Viewer.Wireframe
		return nil
	case sdl.K_r:
		v.trail.Reset()
		v.sampler.Reset()
		_, err := v.trail.AddSample(v.sampler.Position())
		return err
	default:
		return nil
	}

	v.log.Info("tube config changed",
		zap.Stringer("cap_style", cfg.CapStyle),
		zap.Int("ring_segments", cfg.RingSegmentCount),
	)
	return v.trail.SetConfig(cfg)
}

func (v *Viewer) draw() {
	gl.Viewport(0, 0, int32(v.width), int32(v.height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	mode := uint32(gl.FILL)
	if v.cfg.Viewer.Wireframe {
		mode = gl.LINE
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)

	aspect := float32(v.width) / float32(max(v.height, 1))
	proj := math.Perspective(0.9, aspect, 0.1, 1000)
	viewProj := proj.Mul(v.camera.ViewMatrix())

	v.program.Use()
	v.program.SetMat4("uViewProj", (*[16]float32)(&viewProj))
	v.program.SetVec3("uLightDir", math.Vec3{X: -0.4, Y: -1, Z: -0.3}.Normalize().Array())
	v.program.SetVec3("uColorHead", [3]float32{0.95, 0.55, 0.2})
	v.program.SetVec3("uColorTail", [3]float32{0.2, 0.35, 0.8})
	v.mesh.Draw()
}
