// Package app wires the placement core, the scene and the camera into one
// object that hosts drive with discrete messages.
//
// An App is not safe for concurrent use. Hosts serialise calls.
package app

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/boxstage/internal/config"
	"github.com/Faultbox/boxstage/internal/engine/camera"
	"github.com/Faultbox/boxstage/internal/engine/scene"
	"github.com/Faultbox/boxstage/internal/placement"
	"github.com/Faultbox/boxstage/pkg/math"
)

// Camera button steps.
const (
	dollyStep  = 1.05
	rotateStep = 0.1 // radians
)

// ErrUnknownCommand is returned for camera commands the app does not know.
var ErrUnknownCommand = errors.New("app: unknown camera command")

// CameraCommand is a discrete camera button.
type CameraCommand string

const (
	ZoomIn      CameraCommand = "zoomin"
	ZoomOut     CameraCommand = "zoomout"
	RotateUp    CameraCommand = "rotateup"
	RotateDown  CameraCommand = "rotatedown"
	RotateLeft  CameraCommand = "rotateleft"
	RotateRight CameraCommand = "rotateright"
)

// App owns all interactive state.
type App struct {
	log *zap.Logger

	outer    *placement.OuterBox
	scene    *scene.Scene
	camera   *camera.PerspectiveCamera
	controls *camera.OrbitControls
	session  *placement.Session
	spawner  *placement.Spawner

	defaultSpawn placement.SpawnRequest
	width        float32
	height       float32
	lastResult   placement.Result
}

// New builds an App from validated configuration. log may be nil.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	mode, err := placement.ParseOverlapMode(cfg.Placement.OverlapMode)
	if err != nil {
		return nil, fmt.Errorf("overlap mode: %w", err)
	}
	depth, err := placement.ParseDepthSource(cfg.Placement.DepthClampAxis)
	if err != nil {
		return nil, fmt.Errorf("depth clamp: %w", err)
	}
	defaultColor, err := placement.ParseColor(cfg.Spawn.Color)
	if err != nil {
		return nil, fmt.Errorf("spawn color: %w", err)
	}

	outer := placement.NewOuterBox(cfg.Outer.Width, cfg.Outer.Height, cfg.Outer.Depth)
	sc := scene.New(outer)

	cam := camera.NewPerspectiveCamera(cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far)
	p := cfg.Camera.Position
	controls := camera.NewOrbitControls(math.Vec3{X: p[0], Y: p[1], Z: p[2]}, cfg.Camera.MaxDistance)
	if cfg.Camera.MinDistance > 0 {
		controls.SetDistanceLimits(cfg.Camera.MinDistance, cfg.Camera.MaxDistance)
	}
	controls.Apply(cam)

	guard := placement.Guard{Mode: mode}

	a := &App{
		log:      log,
		outer:    outer,
		scene:    sc,
		camera:   cam,
		controls: controls,
		spawner:  placement.NewSpawner(outer, sc.Collection(), guard, defaultColor),
		defaultSpawn: placement.SpawnRequest{
			Width:  cfg.Spawn.Width,
			Height: cfg.Spawn.Height,
			Depth:  cfg.Spawn.Depth,
			Color:  cfg.Spawn.Color,
		},
	}
	a.session = placement.NewSession(placement.SessionConfig{
		Outer:    outer,
		Boxes:    sc.Collection(),
		Picker:   sc,
		Controls: controls,
		Camera:   cam,
		Clamp:    placement.Clamp{Depth: depth},
		Guard:    guard,
	})
	a.Resize(float32(cfg.Window.Width), float32(cfg.Window.Height))

	size := outer.Size().Array()
	log.Debug("app ready",
		zap.Stringer("overlap", mode),
		zap.Stringer("depthClamp", depth),
		zap.Float32s("outer", size[:]),
	)
	return a, nil
}

// HandlePointer feeds one pointer event to the drag session.
func (a *App) HandlePointer(ev placement.PointerEvent) placement.Result {
	res := a.session.Handle(ev)
	a.lastResult = res

	switch res {
	case placement.Reverted, placement.Unchanged:
		a.log.Debug("move rejected", zap.Stringer("result", res),
			zap.Float32("x", ev.X), zap.Float32("y", ev.Y))
	case placement.Selected:
		a.log.Debug("drag started", zap.String("box", a.session.Drag().Box.ID))
	}
	return res
}

// SetOuterDimension commits a new container dimension. Existing boxes are
// neither moved nor revalidated. It reports false for rejected input.
func (a *App) SetOuterDimension(axis placement.Axis, value float32) bool {
	ok := a.outer.SetDimension(axis, value)
	if !ok {
		a.log.Debug("outer dimension ignored", zap.Stringer("axis", axis), zap.Float32("value", value))
	}
	return ok
}

// Spawn creates a box at the origin.
func (a *App) Spawn(req placement.SpawnRequest) (*placement.InnerBox, error) {
	box, err := a.spawner.Spawn(req)
	if err != nil {
		size := req.Size().Array()
		a.log.Debug("spawn rejected", zap.Error(err), zap.Float32s("size", size[:]))
		return nil, err
	}
	a.log.Debug("box spawned", zap.String("box", box.ID))
	return box, nil
}

// SpawnDefault spawns a box with the configured default request.
func (a *App) SpawnDefault() (*placement.InnerBox, error) {
	return a.Spawn(a.defaultSpawn)
}

// CameraCommand applies a camera button press.
func (a *App) CameraCommand(cmd CameraCommand) error {
	switch cmd {
	case ZoomIn:
		a.controls.DollyIn(dollyStep)
	case ZoomOut:
		a.controls.DollyOut(dollyStep)
	case RotateUp:
		a.controls.RotateUp(rotateStep)
	case RotateDown:
		a.controls.RotateUp(-rotateStep)
	case RotateLeft:
		a.controls.RotateLeft(rotateStep)
	case RotateRight:
		a.controls.RotateLeft(-rotateStep)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	a.controls.Apply(a.camera)
	return nil
}

// Orbit rotates the camera by a pointer delta. It does nothing while a drag
// has the controls disabled.
func (a *App) Orbit(dx, dy float32) {
	a.controls.HandleDrag(dx, dy)
	a.controls.Apply(a.camera)
}

// Zoom moves the camera by a scroll delta. It does nothing while a drag has
// the controls disabled.
func (a *App) Zoom(delta float32) {
	a.controls.HandleZoom(delta)
	a.controls.Apply(a.camera)
}

// Resize updates the viewport used for projection and pointer rays.
func (a *App) Resize(width, height float32) {
	if width <= 0 || height <= 0 {
		return
	}
	a.width, a.height = width, height
	a.camera.SetAspect(width, height)
	a.session.SetViewport(width, height)
}

// Viewport returns the current viewport size.
func (a *App) Viewport() (width, height float32) {
	return a.width, a.height
}

// Scene returns the scene for rendering.
func (a *App) Scene() *scene.Scene {
	return a.scene
}

// Camera returns the camera for rendering.
func (a *App) Camera() *camera.PerspectiveCamera {
	return a.camera
}

// Selected returns the box being dragged, or nil.
func (a *App) Selected() *placement.InnerBox {
	if d := a.session.Drag(); d != nil {
		return d.Box
	}
	return nil
}
