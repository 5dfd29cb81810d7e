package mesh

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTriangleGLTF writes a one-triangle glTF document with an embedded
// base64 buffer, one morph target, ushort indices, and targetNames extras.
func writeTriangleGLTF(t *testing.T) string {
	t.Helper()

	var buf bytes.Buffer
	positions := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	for _, p := range positions {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, p))
	}
	for i := 0; i < 3; i++ {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, mgl32.Vec3{0, 0.1, 0}))
	}
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, []uint16{0, 1, 2}))

	doc := fmt.Sprintf(`{
  "asset": {"version": "2.0"},
  "buffers": [{"uri": "data:application/octet-stream;base64,%s", "byteLength": %d}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 36},
    {"buffer": 0, "byteOffset": 72, "byteLength": 6}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
    {"bufferView": 1, "componentType": 5126, "count": 3, "type": "VEC3"},
    {"bufferView": 2, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ],
  "meshes": [{
    "primitives": [{"attributes": {"POSITION": 0}, "targets": [{"POSITION": 1}], "indices": 2}],
    "extras": {"targetNames": ["jawOpen"]}
  }]
}`, base64.StdEncoding.EncodeToString(buf.Bytes()), buf.Len())

	path := filepath.Join(t.TempDir(), "head.gltf")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestLoadRegionFromGLTF(t *testing.T) {
	region, err := LoadRegionFromGLTF(writeTriangleGLTF(t), RegionHead)
	require.NoError(t, err)

	assert.Equal(t, RegionHead, region.Name)
	require.Len(t, region.Vertices, 3)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, region.Vertices[1].Position)
	assert.Equal(t, []uint32{0, 1, 2}, region.Indices)

	require.Len(t, region.MorphTargets, 1)
	assert.Equal(t, "jawOpen", region.MorphTargets[0].Name)
	require.Len(t, region.MorphTargets[0].PositionDeltas, 3)
	assert.Equal(t, mgl32.Vec3{0, 0.1, 0}, region.MorphTargets[0].PositionDeltas[2])
}

func TestLoadRegionFromGLTFMorphWeightsApply(t *testing.T) {
	region, err := LoadRegionFromGLTF(writeTriangleGLTF(t), RegionHead)
	require.NoError(t, err)

	region.ApplyMorphWeights(map[string]float32{"jawOpen": 1.0})
	assert.InDelta(t, 0.1, float64(region.PositionAt(0).Y()), 1e-5)
}

func TestLoadRegionFromGLTFMissingFile(t *testing.T) {
	_, err := LoadRegionFromGLTF(filepath.Join(t.TempDir(), "absent.gltf"), RegionHead)
	assert.Error(t, err)
}
