package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// NewSphereRegion builds a UV sphere, used as the default head and eye
// geometry when no character asset has been loaded.
func NewSphereRegion(name RegionName, segments, rings int, radius float32, center mgl32.Vec3) *Region {
	region := NewRegion(name)

	for y := 0; y <= rings; y++ {
		for x := 0; x <= segments; x++ {
			xSeg := float32(x) / float32(segments)
			ySeg := float32(y) / float32(rings)

			xPos := float32(math.Cos(float64(2*math.Pi*xSeg)) * math.Sin(float64(math.Pi*ySeg)))
			yPos := float32(math.Cos(float64(math.Pi * ySeg)))
			zPos := float32(math.Sin(float64(2*math.Pi*xSeg)) * math.Sin(float64(math.Pi*ySeg)))

			normal := mgl32.Vec3{xPos, yPos, zPos}
			region.Vertices = append(region.Vertices, Vertex{
				Position: center.Add(normal.Mul(radius)),
				Normal:   normal,
				TexCoord: mgl32.Vec2{xSeg, ySeg},
			})
		}
	}

	for y := 0; y < rings; y++ {
		for x := 0; x < segments; x++ {
			first := uint32(y*(segments+1) + x)
			second := first + uint32(segments+1)

			region.Indices = append(region.Indices, first, second, first+1)
			region.Indices = append(region.Indices, second, second+1, first+1)
		}
	}

	return region
}

// NewStrandRegion builds hair as parallel strands hanging from a root
// line. Each strand is a chain of segment vertices; the chain pairs form
// the constraint topology, and the strand roots come first so boundary
// pinning attaches them to the scalp.
func NewStrandRegion(name RegionName, strands, segments int, spacing, segmentLength float32, origin mgl32.Vec3) *Region {
	region := NewRegion(name)

	// Roots first: pinning policy pins the leading vertices.
	for s := 0; s < strands; s++ {
		x := origin.X() + (float32(s)-float32(strands-1)/2)*spacing
		region.Vertices = append(region.Vertices, Vertex{
			Position: mgl32.Vec3{x, origin.Y(), origin.Z()},
			Normal:   mgl32.Vec3{0, 0, 1},
		})
	}

	for s := 0; s < strands; s++ {
		x := origin.X() + (float32(s)-float32(strands-1)/2)*spacing
		prev := s
		for seg := 1; seg <= segments; seg++ {
			region.Vertices = append(region.Vertices, Vertex{
				Position: mgl32.Vec3{x, origin.Y() - float32(seg)*segmentLength, origin.Z()},
				Normal:   mgl32.Vec3{0, 0, 1},
			})
			cur := len(region.Vertices) - 1
			region.Topology = append(region.Topology, [2]int{prev, cur})
			prev = cur
		}
	}

	return region
}

// NewGridRegion builds a rectangular cloth grid (skirt) with structural
// constraints along both axes. The top row comes first for waist pinning.
func NewGridRegion(name RegionName, cols, rows int, cellSize float32, origin mgl32.Vec3) *Region {
	region := NewRegion(name)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			px := origin.X() + (float32(x)-float32(cols-1)/2)*cellSize
			py := origin.Y() - float32(y)*cellSize
			region.Vertices = append(region.Vertices, Vertex{
				Position: mgl32.Vec3{px, py, origin.Z()},
				Normal:   mgl32.Vec3{0, 0, 1},
				TexCoord: mgl32.Vec2{float32(x) / float32(cols-1), float32(y) / float32(rows-1)},
			})
		}
	}

	idx := func(x, y int) int { return y*cols + x }
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if x+1 < cols {
				region.Topology = append(region.Topology, [2]int{idx(x, y), idx(x + 1, y)})
			}
			if y+1 < rows {
				region.Topology = append(region.Topology, [2]int{idx(x, y), idx(x, y + 1)})
			}
		}
	}

	for y := 0; y < rows-1; y++ {
		for x := 0; x < cols-1; x++ {
			a := uint32(idx(x, y))
			b := uint32(idx(x+1, y))
			c := uint32(idx(x, y+1))
			d := uint32(idx(x+1, y+1))
			region.Indices = append(region.Indices, a, c, b)
			region.Indices = append(region.Indices, b, c, d)
		}
	}

	return region
}
