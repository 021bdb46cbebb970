// Package window opens the SDL2 window and its OpenGL context.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
)

func init() {
	// SDL and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

// Config describes the window to open.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Samples    int // MSAA samples, 0 disables multisampling
}

// Window is an SDL window with a current OpenGL 4.1 core context.
type Window struct {
	log *zap.Logger
	win *sdl.Window
	ctx sdl.GLContext
}

// New initialises SDL video and opens the window. The GL context is current
// on return.
func New(cfg Config, log *zap.Logger) (*Window, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}
	glAttributes(cfg.Samples)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	win, err := sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("create window: %w", err)
	}

	ctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("create GL context: %w", err)
	}

	w := &Window{log: log, win: win, ctx: ctx}
	w.setVSync(cfg.VSync)

	log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Int("samples", cfg.Samples),
	)
	return w, nil
}

// glAttributes must run before the window is created. 4.1 core is the
// newest profile macOS offers.
func glAttributes(samples int) {
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	if samples > 0 {
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, samples)
	}
}

func (w *Window) setVSync(on bool) {
	interval := 0
	if on {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		w.log.Warn("swap interval not supported", zap.Int("interval", interval), zap.Error(err))
	}
}

// Close destroys the context and the window and shuts SDL down.
func (w *Window) Close() {
	if w.ctx != nil {
		sdl.GLDeleteContext(w.ctx)
	}
	if w.win != nil {
		w.win.Destroy()
	}
	sdl.Quit()
	w.log.Info("window closed")
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.win.GLSwap()
}

// Size returns the window size in pointer coordinates.
func (w *Window) Size() (int, int) {
	width, height := w.win.GetSize()
	return int(width), int(height)
}

// DrawableSize returns the framebuffer size. It is larger than Size on
// high-DPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.win.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}
