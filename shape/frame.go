// Package shape builds triangle meshes for decorative outlines.
package shape

import (
	"fmt"
	"math"

	earcut "github.com/flywave/go-earcut"
)

// Mesh is an indexed triangle list in screen space.
type Mesh struct {
	Vertices []float64 // x, y pairs
	Indices  []uint16
}

// RoundedRect returns the outline of a rounded rectangle centered at cx, cy
// as a flat x, y list, clockwise in screen coordinates.
func RoundedRect(cx, cy, w, h, radius float64, segments int) []float64 {
	radius = math.Max(0, math.Min(radius, math.Min(w, h)/2))
	if segments < 1 {
		segments = 1
	}

	left, right := cx-w/2, cx+w/2
	top, bottom := cy-h/2, cy+h/2

	// Corner centers, starting top-right and walking clockwise on screen.
	corners := [4][3]float64{
		{right - radius, top + radius, -math.Pi / 2},
		{right - radius, bottom - radius, 0},
		{left + radius, bottom - radius, math.Pi / 2},
		{left + radius, top + radius, math.Pi},
	}

	pts := make([]float64, 0, 4*(segments+1)*2)
	for _, c := range corners {
		for i := 0; i <= segments; i++ {
			a := c[2] + float64(i)/float64(segments)*math.Pi/2
			pts = append(pts, c[0]+radius*math.Cos(a), c[1]+radius*math.Sin(a))
		}
	}
	return pts
}

// Frame triangulates a rounded-rectangle ring of the given thickness drawn
// outside a w x h box.
func Frame(cx, cy, w, h, radius, thickness float64, segments int) (Mesh, error) {
	if w <= 0 || h <= 0 || thickness <= 0 {
		return Mesh{}, fmt.Errorf("degenerate frame %.1fx%.1f thickness %.1f", w, h, thickness)
	}

	outer := RoundedRect(cx, cy, w+2*thickness, h+2*thickness, radius+thickness, segments)
	inner := RoundedRect(cx, cy, w, h, radius, segments)

	data := make([]float64, 0, len(outer)+len(inner))
	data = append(data, outer...)
	data = append(data, inner...)
	holes := []int{len(outer) / 2}

	tris, err := earcut.Earcut(data, holes, 2)
	if err != nil {
		return Mesh{}, fmt.Errorf("triangulating frame failed: %w", err)
	}
	if len(data)/2 > math.MaxUint16 {
		return Mesh{}, fmt.Errorf("frame has too many vertices: %d", len(data)/2)
	}

	idx := make([]uint16, len(tris))
	for i, t := range tris {
		idx[i] = uint16(t)
	}
	return Mesh{Vertices: data, Indices: idx}, nil
}

// Area sums the absolute area of all triangles in the mesh.
func (m Mesh) Area() float64 {
	var area float64
	v := m.Vertices
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := int(m.Indices[i])*2, int(m.Indices[i+1])*2, int(m.Indices[i+2])*2
		area += math.Abs((v[b]-v[a])*(v[c+1]-v[a+1])-(v[c]-v[a])*(v[b+1]-v[a+1])) / 2
	}
	return area
}
