// Package renderer draws the forest as lit point sprites.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/sakura-forest/internal/engine/lighting"
	"github.com/Faultbox/sakura-forest/internal/engine/shader"
	"github.com/Faultbox/sakura-forest/internal/game/entity"
	"github.com/Faultbox/sakura-forest/internal/logger"
	"github.com/Faultbox/sakura-forest/pkg/math"
)

// Floats per vertex: position (3), colour (3), world size (1).
const vertexStride = 7

// Placeholder tints for bodies.
var (
	trunkColor    = entity.Color{R: 0.45, G: 0.3, B: 0.2}
	blossomColor  = entity.Color{R: 1.0, G: 0.72, B: 0.8}
	loadingColor  = entity.Color{R: 0.5, G: 0.5, B: 0.5}
	loadingRadius = float32(0.5)
)

const vertexSource = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;
layout (location = 2) in float aSize;

uniform mat4 uViewProj;
uniform float uAmbient;
uniform float uViewportHeight;

out vec3 vColor;

void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
	gl_PointSize = clamp(aSize * uViewportHeight / max(gl_Position.w, 0.001), 2.0, 96.0);
	vColor = aColor * uAmbient;
}
`

const fragmentSource = `
#version 410 core

in vec3 vColor;
out vec4 FragColor;

void main() {
	if (length(gl_PointCoord - vec2(0.5)) > 0.5) {
		discard;
	}
	FragColor = vec4(vColor, 1.0);
}
`

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program

	vao uint32
	vbo uint32

	vertices []float32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	var err error
	r.program, err = shader.Compile(vertexSource, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.createBuffers()
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin clears the frame to the current sky colour.
func (r *Renderer) Begin(sky lighting.Sky) {
	gl.ClearColor(sky.Color.R, sky.Color.G, sky.Color.B, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawScene draws every body as a sphere-sized point.
func (r *Renderer) DrawScene(viewProj math.Mat4, sky lighting.Sky, entities []*entity.Entity, obstacles []*entity.Obstacle) {
	r.vertices = r.vertices[:0]
	for _, o := range obstacles {
		r.appendObstacle(o)
	}
	for _, e := range entities {
		r.appendEntity(e)
	}
	if len(r.vertices) == 0 {
		return
	}

	r.program.Use()
	r.program.SetMat4("uViewProj", viewProj)
	r.program.SetFloat("uAmbient", sky.Ambient)
	r.program.SetFloat("uViewportHeight", float32(r.config.Height))

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.vertices)*4, unsafe.Pointer(&r.vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(len(r.vertices)/vertexStride))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// End finishes the current frame.
func (r *Renderer) End() {}

func (r *Renderer) appendEntity(e *entity.Entity) {
	s, ok := e.WorldBounds()
	if !ok {
		r.appendPoint(e.Position.Add(math.Vec3{Y: loadingRadius}), loadingColor, loadingRadius)
		return
	}
	r.appendPoint(s.Center, e.Color.Shade(e.State()), s.Radius)
}

func (r *Renderer) appendObstacle(o *entity.Obstacle) {
	s, ok := o.Bounds()
	if !ok {
		r.appendPoint(o.Position.Add(math.Vec3{Y: loadingRadius}), loadingColor, loadingRadius)
		return
	}
	r.appendPoint(o.Position.Add(math.Vec3{Y: s.Center.Y * 0.5}), trunkColor, s.Radius*0.25)
	r.appendPoint(s.Center.Add(math.Vec3{Y: s.Radius * 0.3}), blossomColor, s.Radius*0.7)
}

func (r *Renderer) appendPoint(p math.Vec3, c entity.Color, size float32) {
	r.vertices = append(r.vertices, p.X, p.Y, p.Z, c.R, c.G, c.B, size)
}

func (r *Renderer) createBuffers() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(vertexStride * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("point buffers created",
		zap.Uint32("vao", r.vao),
		zap.Uint32("vbo", r.vbo),
	)
}
