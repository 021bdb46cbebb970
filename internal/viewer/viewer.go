// Package viewer is the desktop host: an SDL window that renders the App
// and turns mouse and keyboard input into App calls.
package viewer

import (
	"errors"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/boxstage/internal/app"
	"github.com/Faultbox/boxstage/internal/config"
	"github.com/Faultbox/boxstage/internal/engine/debug"
	"github.com/Faultbox/boxstage/internal/engine/input"
	"github.com/Faultbox/boxstage/internal/engine/renderer"
	"github.com/Faultbox/boxstage/internal/engine/window"
	"github.com/Faultbox/boxstage/internal/placement"
)

const title = "boxstage"

// Viewer owns the window and drives the App from the main loop.
type Viewer struct {
	app      *app.App
	log      *zap.Logger
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	shots    *debug.ScreenshotCapture
}

// New opens the window and creates the renderer.
func New(cfg *config.Config, a *app.App, log *zap.Logger) (*Viewer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	v := &Viewer{
		app:   a,
		log:   log,
		input: input.New(),
		shots: debug.NewScreenshotCapture("screenshots", title),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    cfg.Window.Samples,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window just created.
	fbW, fbH := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: fbW, Height: fbH}, log.Named("renderer"))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	w, h := v.window.Size()
	a.Resize(float32(w), float32(h))

	log.Info("viewer initialized")
	return v, nil
}

// Run processes input and renders until the window is closed or Esc is
// pressed.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting main loop")

	for v.running {
		if v.input.Update() {
			v.running = false
			break
		}
		for _, ev := range v.input.Events() {
			v.handle(ev)
		}

		v.renderer.Draw(v.app.Scene(), v.app.Camera(), v.app.Selected())
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount))
			v.window.SetTitle(fmt.Sprintf("%s - %d boxes", title, len(v.app.Scene().Boxes())))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases GL and SDL resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handle(ev input.Event) {
	switch ev.Type {
	case input.EventWindowResize:
		fbW, fbH := v.window.DrawableSize()
		v.renderer.Resize(fbW, fbH)
		v.app.Resize(float32(ev.Width), float32(ev.Height))

	case input.EventKeyDown:
		v.handleKey(ev.Key)

	case input.EventMouseDown:
		if ev.Button == input.ButtonLeft {
			v.pointer(placement.Press, ev)
		}

	case input.EventMouseUp:
		if ev.Button == input.ButtonLeft {
			v.pointer(placement.Release, ev)
		}

	case input.EventMouseMove:
		if ev.IsHeld(input.ButtonRight) {
			v.app.Orbit(float32(ev.DeltaX), float32(ev.DeltaY))
		}
		v.pointer(placement.Move, ev)

	case input.EventMouseWheel:
		v.app.Zoom(float32(ev.DeltaY))
	}
}

func (v *Viewer) pointer(action placement.Action, ev input.Event) {
	v.app.HandlePointer(placement.PointerEvent{
		Action: action,
		X:      float32(ev.MouseX),
		Y:      float32(ev.MouseY),
	})
}

var keyCommands = map[sdl.Scancode]app.CameraCommand{
	sdl.SCANCODE_EQUALS:   app.ZoomIn,
	sdl.SCANCODE_KP_PLUS:  app.ZoomIn,
	sdl.SCANCODE_MINUS:    app.ZoomOut,
	sdl.SCANCODE_KP_MINUS: app.ZoomOut,
	sdl.SCANCODE_UP:       app.RotateUp,
	sdl.SCANCODE_DOWN:     app.RotateDown,
	sdl.SCANCODE_LEFT:     app.RotateLeft,
	sdl.SCANCODE_RIGHT:    app.RotateRight,
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	if cmd, ok := keyCommands[key]; ok {
		_ = v.app.CameraCommand(cmd)
		return
	}

	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_N:
		if _, err := v.app.SpawnDefault(); err != nil && !errors.Is(err, placement.ErrSpawnOccupied) {
			v.log.Warn("default spawn rejected", zap.Error(err))
		}
	case sdl.SCANCODE_F12:
		v.screenshot()
	}
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}
