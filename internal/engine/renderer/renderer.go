// Package renderer implements the view's drawing device on OpenGL 4.1 core.
package renderer

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/cadview/internal/colorscheme"
	"github.com/Faultbox/cadview/internal/engine/shader"
	"github.com/Faultbox/cadview/internal/logger"
	"github.com/Faultbox/cadview/internal/overlay"
	"github.com/Faultbox/cadview/internal/view"
)

const bytesPerVertex = overlay.FloatsPerVertex * 4

// Device draws overlay passes with a single streaming line buffer.
// IMPORTANT: Init must be called with the GL context current.
type Device struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
	// capacity of vbo in vertices
	capacity int

	caps  view.Capabilities
	ready bool
}

// NewDevice returns a device; GL resources are created by Init.
func NewDevice() *Device {
	return &Device{}
}

// Init loads GL entry points, queries capabilities and builds the line
// program.
func (d *Device) Init() (view.Capabilities, error) {
	if d.ready {
		return d.caps, nil
	}
	if err := gl.Init(); err != nil {
		return view.Capabilities{}, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	d.caps = queryCapabilities()
	d.caps.Shaders = d.caps.GLSLAtLeast(3, 30) && meshProgramCompiles()
	logger.Info("OpenGL initialized",
		zap.String("vendor", d.caps.Vendor),
		zap.String("renderer", d.caps.Renderer),
		zap.String("version", d.caps.Version),
		zap.String("glsl", d.caps.GLSLVersion),
		zap.Bool("shaders", d.caps.Shaders),
	)

	prog, err := shader.NewProgram(shader.LineVertex, shader.LineFragment)
	if err != nil {
		return d.caps, fmt.Errorf("line program: %w", err)
	}
	d.program = prog

	gl.GenVertexArrays(1, &d.vao)
	gl.GenBuffers(1, &d.vbo)
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, bytesPerVertex, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, bytesPerVertex, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	d.ready = true
	return d.caps, nil
}

func queryCapabilities() view.Capabilities {
	caps := view.Capabilities{
		Vendor:      gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer:    gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:     gl.GoStr(gl.GetString(gl.VERSION)),
		GLSLVersion: gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
	var lineRange [2]float32
	gl.GetFloatv(gl.ALIASED_LINE_WIDTH_RANGE, &lineRange[0])
	caps.MaxLineWidth = lineRange[1]
	if caps.MaxLineWidth < 1 {
		caps.MaxLineWidth = 1
	}
	return caps
}

// meshProgramCompiles test-builds the lit mesh program. Drivers that reject
// it still draw overlays and flat colored meshes.
func meshProgramCompiles() bool {
	prog, err := shader.NewProgram(shader.MeshVertex, shader.MeshFragment)
	if err != nil {
		logger.Warn("mesh shading unavailable", zap.Error(err))
		return false
	}
	prog.Delete()
	return true
}

// Viewport sets the GL viewport.
func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("viewport set",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Clear clears color and depth.
func (d *Device) Clear(c colorscheme.Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawLines uploads b and draws it as GL_LINES with the pass matrices.
func (d *Device) DrawLines(p overlay.Pass, b overlay.Batch) {
	if !d.ready || b.Empty() {
		return
	}

	if p.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.LineWidth(clampLineWidth(p.LineWidth, d.caps.MaxLineWidth))

	d.program.Use()
	d.program.SetMat4("uMVP", p.MVP())

	gl.BindVertexArray(d.vao)
	d.upload(b.Floats())
	gl.DrawArrays(gl.LINES, 0, int32(len(b.Vertices)))
	gl.BindVertexArray(0)

	gl.Enable(gl.DEPTH_TEST)
}

// upload streams vertex data, growing the buffer when needed.
func (d *Device) upload(data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	n := len(data) / overlay.FloatsPerVertex
	if n > d.capacity {
		d.capacity = max(n, 2*d.capacity)
		gl.BufferData(gl.ARRAY_BUFFER, d.capacity*bytesPerVertex, nil, gl.STREAM_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
}

func clampLineWidth(w, maxWidth float32) float32 {
	if w < 1 {
		return 1
	}
	if maxWidth >= 1 && w > maxWidth {
		return maxWidth
	}
	return w
}

// Info describes the GL implementation.
func (d *Device) Info() string {
	if !d.ready {
		return "OpenGL (not initialized)"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "GL Renderer: %s\n", d.caps.Renderer)
	fmt.Fprintf(&sb, "GL Vendor: %s\n", d.caps.Vendor)
	fmt.Fprintf(&sb, "OpenGL Version: %s\n", d.caps.Version)
	fmt.Fprintf(&sb, "GLSL Version: %s", d.caps.GLSLVersion)
	return sb.String()
}

// Close releases GL resources.
func (d *Device) Close() {
	logger.Info("closing line device")
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
	if d.vbo != 0 {
		gl.DeleteBuffers(1, &d.vbo)
		d.vbo = 0
	}
	if d.program != nil {
		d.program.Delete()
	}
	d.ready = false
}
