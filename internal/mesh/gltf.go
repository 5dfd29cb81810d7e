package mesh

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// LoadRegionFromGLTF reads the first mesh primitive of a glTF/GLB file
// into a region. Morph targets are named from extras.targetNames when the
// exporter provides them, falling back to positional names.
func LoadRegionFromGLTF(path string, name RegionName) (*Region, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	if len(doc.Meshes) == 0 {
		return nil, fmt.Errorf("no meshes in file")
	}

	gltfMesh := doc.Meshes[0]
	if len(gltfMesh.Primitives) == 0 {
		return nil, fmt.Errorf("no primitives in mesh")
	}
	prim := gltfMesh.Primitives[0]

	region := NewRegion(name)

	posIdx := uint32(prim.Attributes[gltf.POSITION])
	positions, err := readAccessorVec3(doc, posIdx)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	var normals []mgl32.Vec3
	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = readAccessorVec3(doc, uint32(normIdx))
		if err != nil {
			normals = make([]mgl32.Vec3, len(positions))
		}
	} else {
		normals = make([]mgl32.Vec3, len(positions))
	}

	var texCoords []mgl32.Vec2
	if tcIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		texCoords, err = readAccessorVec2(doc, uint32(tcIdx))
		if err != nil {
			texCoords = make([]mgl32.Vec2, len(positions))
		}
	} else {
		texCoords = make([]mgl32.Vec2, len(positions))
	}

	region.Vertices = make([]Vertex, len(positions))
	for i := range positions {
		region.Vertices[i] = Vertex{
			Position: positions[i],
			Normal:   normals[i],
			TexCoord: texCoords[i],
		}
	}

	for i, target := range prim.Targets {
		mt := MorphTarget{Name: fmt.Sprintf("target_%d", i)}
		if posIdx, ok := target[gltf.POSITION]; ok {
			mt.PositionDeltas, _ = readAccessorVec3(doc, uint32(posIdx))
		}
		region.MorphTargets = append(region.MorphTargets, mt)
	}

	if extras, ok := gltfMesh.Extras.(map[string]interface{}); ok {
		if targetNames, ok := extras["targetNames"].([]interface{}); ok {
			for i, name := range targetNames {
				if i >= len(region.MorphTargets) {
					break
				}
				if strName, ok := name.(string); ok {
					region.MorphTargets[i].Name = strName
				}
			}
		}
	}

	if prim.Indices != nil {
		region.Indices, err = readAccessorIndices(doc, uint32(*prim.Indices))
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	}

	return region, nil
}

func readAccessorVec3(doc *gltf.Document, accessorIdx uint32) ([]mgl32.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	data, err := getBufferData(buffer)
	if err != nil {
		return nil, err
	}

	offset := int(bufferView.ByteOffset) + int(accessor.ByteOffset)
	count := int(accessor.Count)

	stride := int(bufferView.ByteStride)
	if stride == 0 {
		stride = 12
	}

	result := make([]mgl32.Vec3, count)
	for i := 0; i < count; i++ {
		idx := offset + i*stride
		floats := (*[3]float32)(unsafe.Pointer(&data[idx]))
		result[i] = mgl32.Vec3{floats[0], floats[1], floats[2]}
	}
	return result, nil
}

func readAccessorVec2(doc *gltf.Document, accessorIdx uint32) ([]mgl32.Vec2, error) {
	accessor := doc.Accessors[accessorIdx]
	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	data, err := getBufferData(buffer)
	if err != nil {
		return nil, err
	}

	offset := int(bufferView.ByteOffset) + int(accessor.ByteOffset)
	count := int(accessor.Count)

	stride := int(bufferView.ByteStride)
	if stride == 0 {
		stride = 8
	}

	result := make([]mgl32.Vec2, count)
	for i := 0; i < count; i++ {
		idx := offset + i*stride
		floats := (*[2]float32)(unsafe.Pointer(&data[idx]))
		result[i] = mgl32.Vec2{floats[0], floats[1]}
	}
	return result, nil
}

func readAccessorIndices(doc *gltf.Document, accessorIdx uint32) ([]uint32, error) {
	accessor := doc.Accessors[accessorIdx]
	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	data, err := getBufferData(buffer)
	if err != nil {
		return nil, err
	}

	offset := int(bufferView.ByteOffset) + int(accessor.ByteOffset)
	count := int(accessor.Count)

	result := make([]uint32, count)
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		for i := 0; i < count; i++ {
			result[i] = uint32(data[offset+i])
		}
	case gltf.ComponentUshort:
		for i := 0; i < count; i++ {
			idx := offset + i*2
			result[i] = uint32(*(*uint16)(unsafe.Pointer(&data[idx])))
		}
	case gltf.ComponentUint:
		for i := 0; i < count; i++ {
			idx := offset + i*4
			result[i] = *(*uint32)(unsafe.Pointer(&data[idx]))
		}
	}
	return result, nil
}

func getBufferData(buffer *gltf.Buffer) ([]byte, error) {
	// gltf.Open resolves GLB chunks, data URIs, and sibling .bin files
	// into Data; a buffer URI outside the document's directory is not.
	if len(buffer.Data) > 0 {
		return buffer.Data, nil
	}
	if buffer.URI == "" {
		return nil, fmt.Errorf("buffer has no URI and no embedded data")
	}
	data, err := os.ReadFile(buffer.URI)
	if err != nil {
		return nil, fmt.Errorf("read buffer file: %w", err)
	}
	return data, nil
}
