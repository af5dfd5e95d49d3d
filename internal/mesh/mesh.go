package mesh

import (
	"fmt"

	"github.com/Faultbox/cavemesh/pkg/math"
)

// TriangleCount returns the number of index triples.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles) / 3
}

// Validate checks that triangles come in whole triples and only reference
// existing vertices.
func (m *Mesh) Validate() error {
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("triangle buffer length %d is not a multiple of 3", len(m.Triangles))
	}
	for i, idx := range m.Triangles {
		if idx < 0 || idx >= len(m.Vertices) {
			return fmt.Errorf("index %d at position %d outside %d vertices", idx, i, len(m.Vertices))
		}
	}
	if m.Normals != nil && len(m.Normals) != len(m.Vertices) {
		return fmt.Errorf("%d normals for %d vertices", len(m.Normals), len(m.Vertices))
	}
	return nil
}

// RecalculateNormals sets each vertex normal to the normalized sum of the
// face normals around it, weighted by face area.
func (m *Mesh) RecalculateNormals() {
	normals := make([]math.Vec3, len(m.Vertices))
	for i := 0; i+2 < len(m.Triangles); i += 3 {
		a, b, c := m.Triangles[i], m.Triangles[i+1], m.Triangles[i+2]
		pa := m.Vertices[a]
		face := m.Vertices[b].Sub(pa).Cross(m.Vertices[c].Sub(pa))
		normals[a] = normals[a].Add(face)
		normals[b] = normals[b].Add(face)
		normals[c] = normals[c].Add(face)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	m.Normals = normals
}

// RecalculateBounds recomputes the bounding box. An empty mesh has zero bounds.
func (m *Mesh) RecalculateBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
		return
	}
	b := Bounds{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	m.Bounds = b
}
