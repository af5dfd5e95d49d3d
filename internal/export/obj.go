// Package export writes generated meshes to Wavefront OBJ.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Faultbox/cavemesh/internal/mesh"
)

// Object is a named mesh inside an OBJ file.
type Object struct {
	Name string
	Mesh *mesh.Mesh
}

// Objects returns the surface and wall meshes of a result as OBJ objects.
func Objects(res *mesh.Result) []Object {
	return []Object{
		{Name: "surface", Mesh: &res.Surface},
		{Name: "walls", Mesh: &res.Walls},
	}
}

// WriteOBJ writes each object as an "o" group. Indices are rebased so each
// object's faces reference its own vertices.
func WriteOBJ(w io.Writer, objects ...Object) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# cavemesh")

	vertexBase := 1
	normalBase := 1
	for _, obj := range objects {
		m := obj.Mesh
		if err := m.Validate(); err != nil {
			return fmt.Errorf("object %s: %w", obj.Name, err)
		}

		fmt.Fprintf(bw, "o %s\n", obj.Name)
		for _, v := range m.Vertices {
			fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
		}

		hasNormals := len(m.Normals) > 0
		for _, n := range m.Normals {
			fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
		}

		for i := 0; i < len(m.Triangles); i += 3 {
			a, b, c := m.Triangles[i]+vertexBase, m.Triangles[i+1]+vertexBase, m.Triangles[i+2]+vertexBase
			if hasNormals {
				na, nb, nc := m.Triangles[i]+normalBase, m.Triangles[i+1]+normalBase, m.Triangles[i+2]+normalBase
				fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, na, b, nb, c, nc)
			} else {
				fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
			}
		}

		vertexBase += len(m.Vertices)
		normalBase += len(m.Normals)
	}

	return bw.Flush()
}

// WriteOBJFile writes objects to path, creating parent directories.
func WriteOBJFile(path string, objects ...Object) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteOBJ(f, objects...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
