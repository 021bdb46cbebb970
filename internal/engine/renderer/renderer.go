// Package renderer draws the box scene with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/boxstage/internal/engine/camera"
	"github.com/Faultbox/boxstage/internal/engine/debug"
	"github.com/Faultbox/boxstage/internal/engine/lighting"
	"github.com/Faultbox/boxstage/internal/engine/scene"
	"github.com/Faultbox/boxstage/internal/engine/shader"
	"github.com/Faultbox/boxstage/internal/placement"
	"github.com/Faultbox/boxstage/pkg/math"
)

// Scene colours.
var (
	clearColor     = [3]float32{0xcc / 255.0, 0xe0 / 255.0, 0xff / 255.0}
	outerColor     = [3]float32{1, 1, 1}
	selectionColor = [3]float32{1, 0.85, 0}
	gridColor      = [3]float32{0.6, 0.6, 0.6}
)

const (
	outerFrontOpacity = 0.1
	gridStep          = 5
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger
	lights lighting.Rig
	sky    lighting.Sky

	meshProgram *shader.Program
	lineProgram *shader.Program
	skyProgram  *shader.Program

	cubeVAO, cubeVBO uint32
	lineVAO, lineVBO uint32
	skyVAO           uint32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{config: cfg, log: log, lights: lighting.DefaultRig(), sky: lighting.DefaultSky()}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(clearColor[0], clearColor[1], clearColor[2], 1.0)

	var err error
	r.meshProgram, err = shader.New(meshVertexShader, meshFragmentShader,
		"uModel", "uViewProj", "uColor", "uOpacity", "uAmbient", "uLightDir", "uLightColor")
	if err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}
	r.lineProgram, err = shader.New(lineVertexShader, lineFragmentShader, "uViewProj", "uColor")
	if err != nil {
		r.meshProgram.Delete()
		return nil, fmt.Errorf("line program: %w", err)
	}
	r.skyProgram, err = shader.New(skyVertexShader, skyFragmentShader,
		"uInvViewProj", "uEye", "uTop", "uBottom", "uExponent")
	if err != nil {
		r.meshProgram.Delete()
		r.lineProgram.Delete()
		return nil, fmt.Errorf("sky program: %w", err)
	}
	// Core profile needs a bound VAO even for attribute-less draws.
	gl.GenVertexArrays(1, &r.skyVAO)

	r.createCube()
	r.createLineBuffer()
	r.Resize(cfg.Width, cfg.Height)

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	gl.DeleteVertexArrays(1, &r.cubeVAO)
	gl.DeleteBuffers(1, &r.cubeVBO)
	gl.DeleteVertexArrays(1, &r.lineVAO)
	gl.DeleteBuffers(1, &r.lineVBO)
	gl.DeleteVertexArrays(1, &r.skyVAO)
	r.meshProgram.Delete()
	r.lineProgram.Delete()
	r.skyProgram.Delete()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Draw renders one frame. selected may be nil.
func (r *Renderer) Draw(sc *scene.Scene, cam *camera.PerspectiveCamera, selected *placement.InnerBox) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	viewProj := cam.ViewProjection()
	r.drawSky(cam)

	lightDir := lighting.Headlight(cam.Position(), cam.Target())
	outerSize := sc.Outer().Size()
	outerModel := math.Model(math.Vec3{}, outerSize)

	r.meshProgram.Use()
	gl.UniformMatrix4fv(r.meshProgram.Loc("uViewProj"), 1, false, viewProj.Ptr())
	gl.Uniform3fv(r.meshProgram.Loc("uAmbient"), 1, &r.lights.Ambient[0])
	gl.Uniform3f(r.meshProgram.Loc("uLightDir"), lightDir.X, lightDir.Y, lightDir.Z)
	gl.Uniform3fv(r.meshProgram.Loc("uLightColor"), 1, &r.lights.Color[0])

	// Container interior: back faces, opaque.
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.FRONT)
	r.drawCube(outerModel, outerColor, 1)

	// Inner boxes
	gl.CullFace(gl.BACK)
	for _, b := range sc.Boxes() {
		r.drawCube(math.Model(b.Position, b.Size()), b.Color, 1)
	}

	r.drawLines(debug.FloorGridVertices(outerSize, gridStep), viewProj, gridColor)
	if selected != nil {
		r.drawLines(debug.WireframeFromAABB(selected.Bounds(), debug.DefaultBBoxPadding), viewProj, selectionColor)
	}

	// Container front faces, translucent, without hiding what is behind.
	r.meshProgram.Use()
	gl.Enable(gl.BLEND)
	gl.DepthMask(false)
	r.drawCube(outerModel, outerColor, outerFrontOpacity)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) > 0 {
		gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	}
	return pixels, w, h
}

func (r *Renderer) drawSky(cam *camera.PerspectiveCamera) {
	inv := cam.InverseViewProjection()
	eye := cam.Position()

	r.skyProgram.Use()
	gl.UniformMatrix4fv(r.skyProgram.Loc("uInvViewProj"), 1, false, inv.Ptr())
	gl.Uniform3f(r.skyProgram.Loc("uEye"), eye.X, eye.Y, eye.Z)
	gl.Uniform3fv(r.skyProgram.Loc("uTop"), 1, &r.sky.Top[0])
	gl.Uniform3fv(r.skyProgram.Loc("uBottom"), 1, &r.sky.Bottom[0])
	gl.Uniform1f(r.skyProgram.Loc("uExponent"), r.sky.Exponent)

	gl.Disable(gl.DEPTH_TEST)
	gl.DepthMask(false)
	gl.BindVertexArray(r.skyVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	gl.DepthMask(true)
	gl.Enable(gl.DEPTH_TEST)
}

func (r *Renderer) drawCube(model math.Mat4, color [3]float32, opacity float32) {
	gl.UniformMatrix4fv(r.meshProgram.Loc("uModel"), 1, false, model.Ptr())
	gl.Uniform3fv(r.meshProgram.Loc("uColor"), 1, &color[0])
	gl.Uniform1f(r.meshProgram.Loc("uOpacity"), opacity)

	gl.BindVertexArray(r.cubeVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(cubeVertices)/6))
	gl.BindVertexArray(0)
}

func (r *Renderer) drawLines(verts []float32, viewProj math.Mat4, color [3]float32) {
	if len(verts) == 0 {
		return
	}

	r.lineProgram.Use()
	gl.UniformMatrix4fv(r.lineProgram.Loc("uViewProj"), 1, false, viewProj.Ptr())
	gl.Uniform3fv(r.lineProgram.Loc("uColor"), 1, &color[0])

	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.LINES, 0, int32(len(verts)/3))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

func (r *Renderer) createCube() {
	gl.GenVertexArrays(1, &r.cubeVAO)
	gl.BindVertexArray(r.cubeVAO)

	gl.GenBuffers(1, &r.cubeVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.cubeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*4, gl.Ptr(cubeVertices), gl.STATIC_DRAW)

	// Position (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)

	// Normal (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.log.Debug("cube mesh created", zap.Uint32("vao", r.cubeVAO), zap.Uint32("vbo", r.cubeVBO))
}

func (r *Renderer) createLineBuffer() {
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)

	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}
