// Package render draws a scene mesh on OpenGL 4.1 core.
package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/cadview/internal/camera"
	"github.com/Faultbox/cadview/internal/colorscheme"
	"github.com/Faultbox/cadview/internal/engine/shader"
	"github.com/Faultbox/cadview/internal/logger"
	"github.com/Faultbox/cadview/internal/scene"
	"github.com/Faultbox/cadview/internal/view"
)

// Renderer draws a mesh with the face and edge colors of the current
// scheme. It implements view.Renderer and needs a current GL context from
// construction to Close.
type Renderer struct {
	mesh *scene.Mesh

	faceProg *shader.Program
	edgeProg *shader.Program

	vao     uint32
	vbo     uint32
	ebo     uint32
	edgeVAO uint32
	edgeEBO uint32

	indexCount int32
	edgeCount  int32

	front colorscheme.Color
	back  colorscheme.Color
	edge  colorscheme.Color
}

var _ view.Renderer = (*Renderer)(nil)

// New uploads mesh to the GPU.
func New(mesh *scene.Mesh) (*Renderer, error) {
	r := &Renderer{mesh: mesh}

	var err error
	if r.faceProg, err = shader.NewProgram(shader.MeshVertex, shader.MeshFragment); err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}
	if r.edgeProg, err = shader.NewProgram(shader.EdgeVertex, shader.EdgeFragment); err != nil {
		r.faceProg.Delete()
		return nil, fmt.Errorf("edge program: %w", err)
	}

	r.upload()
	r.SetColorScheme(nil)

	logger.Debug("mesh uploaded",
		zap.String("mesh", mesh.Name),
		zap.Int32("indices", r.indexCount),
		zap.Int32("edges", r.edgeCount/2))
	return r, nil
}

func (r *Renderer) upload() {
	const stride = 6 * 4
	vertices := r.mesh.Interleaved()
	edges := r.mesh.Edges()
	r.indexCount = int32(len(r.mesh.Indices))
	r.edgeCount = int32(len(edges))

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	}

	// Faces: position + normal.
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)
	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	if r.indexCount > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(r.mesh.Indices)*4, gl.Ptr(r.mesh.Indices), gl.STATIC_DRAW)
	}

	// Edges share the vertex buffer.
	gl.GenVertexArrays(1, &r.edgeVAO)
	gl.BindVertexArray(r.edgeVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.GenBuffers(1, &r.edgeEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.edgeEBO)
	if r.edgeCount > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(edges)*4, gl.Ptr(edges), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Mesh returns the drawn mesh.
func (r *Renderer) Mesh() *scene.Mesh {
	return r.mesh
}

// SetColorScheme takes face and edge colors from s, or from the default
// scheme when s is nil.
func (r *Renderer) SetColorScheme(s *colorscheme.Scheme) {
	if s == nil {
		s = colorscheme.NewRegistry().Default()
	}
	r.front = s.Color(colorscheme.FaceFront)
	r.back = s.Color(colorscheme.FaceBack)
	r.edge = s.Color(colorscheme.EdgeFront)
}

// BoundingBox returns the mesh bounds.
func (r *Renderer) BoundingBox() (camera.BBox, bool) {
	return r.mesh.Bounds, !r.mesh.Bounds.IsEmpty()
}

// Draw renders faces and edges as selected by the frame. Without the
// shader path faces are drawn flat.
func (r *Renderer) Draw(f view.Frame) {
	mvp := f.MVP()
	gl.Enable(gl.DEPTH_TEST)

	if f.ShowFaces && r.indexCount > 0 {
		// push faces back so coincident edges win the depth test
		gl.Enable(gl.POLYGON_OFFSET_FILL)
		gl.PolygonOffset(1, 1)

		r.faceProg.Use()
		r.faceProg.SetMat4("uMVP", mvp)
		r.faceProg.SetMat4("uModelView", f.View.Mul(f.Model))
		r.faceProg.SetVec4("uFrontColor", r.front.Vec4())
		r.faceProg.SetVec4("uBackColor", r.back.Vec4())
		headlight := int32(0)
		if f.UseShaders {
			headlight = 1
		}
		r.faceProg.SetInt("uHeadlight", headlight)

		gl.BindVertexArray(r.vao)
		gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
		gl.Disable(gl.POLYGON_OFFSET_FILL)
	}

	if f.ShowEdges && r.edgeCount > 0 {
		r.edgeProg.Use()
		r.edgeProg.SetMat4("uMVP", mvp)
		r.edgeProg.SetVec4("uColor", r.edge.Vec4())

		gl.BindVertexArray(r.edgeVAO)
		gl.DrawElements(gl.LINES, r.edgeCount, gl.UNSIGNED_INT, nil)
	}

	gl.BindVertexArray(0)
}

// Close releases GL resources.
func (r *Renderer) Close() {
	for _, vao := range []*uint32{&r.vao, &r.edgeVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
			*vao = 0
		}
	}
	for _, buf := range []*uint32{&r.vbo, &r.ebo, &r.edgeEBO} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
			*buf = 0
		}
	}
	r.faceProg.Delete()
	r.edgeProg.Delete()
}
