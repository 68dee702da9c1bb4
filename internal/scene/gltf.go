package scene

import (
	"encoding/binary"
	"errors"
	"fmt"
	gomath "math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/Faultbox/cadview/internal/logger"
	"github.com/Faultbox/cadview/pkg/math"
)

// ErrNoGeometry is returned when a document has no triangle primitives.
var ErrNoGeometry = errors.New("no triangle geometry")

// Load reads a .gltf or .glb file into a single mesh.
func Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	mesh, err := FromDocument(doc, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("model loaded",
		zap.String("path", path),
		zap.Int("vertices", len(mesh.Positions)),
		zap.Int("triangles", mesh.TriangleCount()))
	return mesh, nil
}

// FromDocument merges every triangle primitive of doc into one mesh.
// Missing normals are computed.
func FromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	for _, m := range doc.Meshes {
		if err := appendMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
		}
	}
	if mesh.TriangleCount() == 0 {
		return nil, ErrNoGeometry
	}
	if !mesh.HasNormals() {
		mesh.CalculateNormals()
	}
	mesh.CalculateBounds()
	return mesh, nil
}

func appendMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			logger.Debug("skipping non-triangle primitive", zap.String("mesh", m.Name))
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals []math.Vec3
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = readVec3(doc, normIdx)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for _, i := range indices {
				if int(i) >= len(positions) {
					return fmt.Errorf("index %d out of range (%d vertices)", i, len(positions))
				}
			}
		}
		mesh.Append(positions, normals, indices)
	}
	return nil
}

// accessorData returns the bytes backing an accessor and its element stride.
func accessorData(doc *gltf.Document, idx int, elemSize int) ([]byte, int, int, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, 0, 0, fmt.Errorf("accessor %d out of range", idx)
	}
	acc := doc.Accessors[idx]
	if acc.BufferView == nil {
		return nil, 0, 0, errors.New("accessor has no buffer view")
	}
	if v := *acc.BufferView; v < 0 || v >= len(doc.BufferViews) {
		return nil, 0, 0, fmt.Errorf("accessor %d: buffer view %d out of range", idx, v)
	}
	bv := doc.BufferViews[*acc.BufferView]
	if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) {
		return nil, 0, 0, fmt.Errorf("accessor %d: buffer %d out of range", idx, bv.Buffer)
	}
	data := doc.Buffers[bv.Buffer].Data
	if data == nil {
		return nil, 0, 0, errors.New("buffer has no data")
	}

	// restrict to the buffer view
	end := len(data)
	if bv.ByteLength > 0 {
		end = bv.ByteOffset + bv.ByteLength
	}
	if bv.ByteOffset < 0 || end > len(data) || bv.ByteOffset > end {
		return nil, 0, 0, fmt.Errorf("accessor %d: buffer view exceeds buffer", idx)
	}
	data = data[bv.ByteOffset:end]

	start := acc.ByteOffset
	stride := bv.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	if start < 0 || start > len(data) {
		return nil, 0, 0, fmt.Errorf("accessor %d offset exceeds buffer view", idx)
	}
	if acc.Count < 0 || acc.Count > 0 && start+(acc.Count-1)*stride+elemSize > len(data) {
		return nil, 0, 0, fmt.Errorf("accessor %d exceeds buffer", idx)
	}
	return data[start:], stride, acc.Count, nil
}

func readVec3(doc *gltf.Document, idx int) ([]math.Vec3, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	acc := doc.Accessors[idx]
	if acc.Type != gltf.AccessorVec3 || acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v/%v", acc.Type, acc.ComponentType)
	}
	data, stride, count, err := accessorData(doc, idx, 12)
	if err != nil {
		return nil, err
	}
	out := make([]math.Vec3, count)
	for i := range count {
		b := data[i*stride:]
		out[i] = math.Vec3{
			X: gomath.Float32frombits(binary.LittleEndian.Uint32(b)),
			Y: gomath.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
			Z: gomath.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
		}
	}
	return out, nil
}

func readIndices(doc *gltf.Document, idx int) ([]uint32, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	acc := doc.Accessors[idx]
	if acc.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", acc.Type)
	}

	var size int
	switch acc.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", acc.ComponentType)
	}

	data, stride, count, err := accessorData(doc, idx, size)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, count)
	for i := range count {
		b := data[i*stride:]
		switch size {
		case 1:
			out[i] = uint32(b[0])
		case 2:
			out[i] = uint32(binary.LittleEndian.Uint16(b))
		default:
			out[i] = binary.LittleEndian.Uint32(b)
		}
	}
	return out, nil
}
