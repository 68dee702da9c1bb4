package scene

import (
	"encoding/binary"
	gomath "math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/cadview/internal/logger"
	"github.com/Faultbox/cadview/pkg/math"
)

func init() {
	logger.InitNop()
}

// quad is two triangles spanning (0,0,0)..(2,1,0).
var quad = []math.Vec3{
	{X: 0, Y: 0, Z: 0},
	{X: 2, Y: 0, Z: 0},
	{X: 2, Y: 1, Z: 0},
	{X: 0, Y: 1, Z: 0},
}

var quadIndices = []uint16{0, 1, 2, 0, 2, 3}

// quadDocument builds a document with one indexed primitive and no normals.
func quadDocument() *gltf.Document {
	var data []byte
	for _, p := range quad {
		data = binary.LittleEndian.AppendUint32(data, gomath.Float32bits(p.X))
		data = binary.LittleEndian.AppendUint32(data, gomath.Float32bits(p.Y))
		data = binary.LittleEndian.AppendUint32(data, gomath.Float32bits(p.Z))
	}
	posLen := len(data)
	for _, i := range quadIndices {
		data = binary.LittleEndian.AppendUint16(data, i)
	}

	return &gltf.Document{
		Asset:   gltf.Asset{Version: "2.0"},
		Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: posLen},
			{Buffer: 0, ByteOffset: posLen, ByteLength: len(data) - posLen},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(0), ComponentType: gltf.ComponentFloat, Count: len(quad), Type: gltf.AccessorVec3},
			{BufferView: gltf.Index(1), ComponentType: gltf.ComponentUshort, Count: len(quadIndices), Type: gltf.AccessorScalar},
		},
		Meshes: []*gltf.Mesh{{
			Name: "quad",
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: 0},
				Indices:    gltf.Index(1),
			}},
		}},
	}
}

func TestFromDocument(t *testing.T) {
	mesh, err := FromDocument(quadDocument(), "quad.glb")
	require.NoError(t, err)

	assert.Equal(t, "quad.glb", mesh.Name)
	assert.Equal(t, 2, mesh.TriangleCount())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, mesh.Indices)
	assert.Equal(t, quad, mesh.Positions)

	require.Len(t, mesh.Normals, 4)
	for _, n := range mesh.Normals {
		assert.InDelta(t, 1, n.Z, 1e-6)
	}

	require.False(t, mesh.Bounds.IsEmpty())
	assert.Equal(t, math.Vec3d{X: 2, Y: 1, Z: 0}, mesh.Bounds.Max)
	assert.Equal(t, math.Vec3d{}, mesh.Bounds.Min)
}

func TestFromDocumentEmpty(t *testing.T) {
	_, err := FromDocument(&gltf.Document{}, "empty")
	assert.ErrorIs(t, err, ErrNoGeometry)
}

func TestFromDocumentBadIndex(t *testing.T) {
	doc := quadDocument()
	binary.LittleEndian.PutUint16(doc.Buffers[0].Data[len(quad)*12:], 9)
	_, err := FromDocument(doc, "bad")
	assert.Error(t, err)
}

func TestFromDocumentTruncatedBuffer(t *testing.T) {
	doc := quadDocument()
	doc.Accessors[0].Count = 100
	_, err := FromDocument(doc, "short")
	assert.Error(t, err)
}

func TestFromDocumentMalformedReferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *gltf.Document)
	}{
		{"buffer view out of range", func(doc *gltf.Document) { doc.Accessors[0].BufferView = gltf.Index(3) }},
		{"buffer out of range", func(doc *gltf.Document) { doc.BufferViews[0].Buffer = 2 }},
		{"view past buffer end", func(doc *gltf.Document) { doc.BufferViews[1].ByteLength = 1000 }},
		{"empty accessor past view", func(doc *gltf.Document) {
			doc.Accessors[0].Count = 0
			doc.Accessors[0].ByteOffset = 4096
		}},
		{"accessor past view end", func(doc *gltf.Document) { doc.Accessors[0].ByteOffset = 12 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := quadDocument()
			tt.mutate(doc)
			assert.NotPanics(t, func() {
				_, err := FromDocument(doc, "broken")
				assert.Error(t, err)
			})
		})
	}
}

func TestLoadGLB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.glb")
	require.NoError(t, gltf.SaveBinary(quadDocument(), path))

	mesh, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "quad.glb", mesh.Name)
	assert.Equal(t, 2, mesh.TriangleCount())
	assert.InDelta(t, gomath.Sqrt(1.25), mesh.Bounds.Radius(), 1e-9)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("/nonexistent/model.glb")
	assert.Error(t, err)
}

func TestAppendSequential(t *testing.T) {
	m := NewMesh("tri")
	m.Append(quad[:3], nil, nil)
	m.Append(quad[:3], nil, nil)

	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, m.Indices)
	assert.Len(t, m.Normals, 6)
	assert.False(t, m.HasNormals())
}

func TestEdgesDeduplicated(t *testing.T) {
	m := NewMesh("quad")
	m.Append(quad, nil, []uint32{0, 1, 2, 0, 2, 3})

	edges := m.Edges()
	// four outline edges plus the shared diagonal
	assert.Len(t, edges, 10)
}

func TestInterleaved(t *testing.T) {
	m := NewMesh("tri")
	m.Append(quad[:3], nil, nil)
	m.CalculateNormals()

	data := m.Interleaved()
	require.Len(t, data, 18)
	assert.Equal(t, []float32{2, 0, 0, 0, 0, 1}, data[6:12])
}
