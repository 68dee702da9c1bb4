// Package scene loads triangle meshes from glTF files for the scene
// renderer.
package scene

import (
	"github.com/Faultbox/cadview/internal/camera"
	"github.com/Faultbox/cadview/pkg/math"
)

// Mesh is an indexed triangle list.
type Mesh struct {
	Name      string
	Positions []math.Vec3
	Normals   []math.Vec3
	// Indices holds three entries per triangle, counter-clockwise.
	Indices []uint32
	Bounds  camera.BBox
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Append adds a triangle primitive. Indices are relative to positions; nil
// indices mean sequential triangles.
func (m *Mesh) Append(positions, normals []math.Vec3, indices []uint32) {
	base := uint32(len(m.Positions))
	m.Positions = append(m.Positions, positions...)

	// keep Normals parallel to Positions
	if len(normals) == len(positions) {
		m.Normals = append(m.Normals, normals...)
	} else {
		m.Normals = append(m.Normals, make([]math.Vec3, len(positions))...)
	}

	if indices == nil {
		for i := 0; i+2 < len(positions); i += 3 {
			m.Indices = append(m.Indices, base+uint32(i), base+uint32(i+1), base+uint32(i+2))
		}
		return
	}
	for i := 0; i+2 < len(indices); i += 3 {
		m.Indices = append(m.Indices, base+indices[i], base+indices[i+1], base+indices[i+2])
	}
}

// HasNormals reports whether any vertex carries a non-zero normal.
func (m *Mesh) HasNormals() bool {
	for _, n := range m.Normals {
		if n.Length() > 0.001 {
			return true
		}
	}
	return false
}

// CalculateNormals sets smooth vertex normals from area-weighted face
// normals.
func (m *Mesh) CalculateNormals() {
	normals := make([]math.Vec3, len(m.Positions))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		n := m.Positions[b].Sub(m.Positions[a]).Cross(m.Positions[c].Sub(m.Positions[a]))
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	m.Normals = normals
}

// CalculateBounds recomputes Bounds from the positions.
func (m *Mesh) CalculateBounds() {
	var b camera.BBox
	for _, p := range m.Positions {
		b.Extend(p.Vec3d())
	}
	m.Bounds = b
}

// Edges returns each distinct triangle edge once, as index pairs.
func (m *Mesh) Edges() []uint32 {
	type edge struct{ a, b uint32 }
	seen := make(map[edge]struct{}, len(m.Indices))
	out := make([]uint32, 0, len(m.Indices)*2)
	add := func(a, b uint32) {
		if a > b {
			a, b = b, a
		}
		e := edge{a, b}
		if _, ok := seen[e]; ok {
			return
		}
		seen[e] = struct{}{}
		out = append(out, a, b)
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		add(a, b)
		add(b, c)
		add(c, a)
	}
	return out
}

// Interleaved returns position and normal packed per vertex, six floats each.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Positions)*6)
	for i, p := range m.Positions {
		var n math.Vec3
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		out = append(out, p.X, p.Y, p.Z, n.X, n.Y, n.Z)
	}
	return out
}
