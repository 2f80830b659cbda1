// Package geom loads triangle meshes and the auxiliary scene data
// (off-mesh connections, convex area volumes) that navgen turns into a
// navigation mesh.
package geom

import (
	"fmt"

	"github.com/arl/gobj"
)

// MaxConvexVolPts is the maximum number of vertices a ConvexVolume can hold.
const MaxConvexVolPts = 12

// Mesh is a triangle soup together with its bounding box, ready to be
// rasterized by navbuild.
type Mesh struct {
	Verts []float32 // (x, y, z) triples
	Tris  []int32   // vertex indices, 3 per triangle

	BMin, BMax [3]float32
}

// Load reads an OBJ file from path and triangulates every face into a Mesh.
//
// Faces with more than 3 vertices are fan-triangulated around their first
// vertex; this matches how the source geometry is expected to be authored
// (convex faces), same as the rest of the toolchain.
func Load(path string) (*Mesh, error) {
	obj, err := gobj.Load(path)
	if err != nil {
		return nil, fmt.Errorf("geom: couldn't load %q: %w", path, err)
	}
	return fromOBJFile(obj), nil
}

func fromOBJFile(obj *gobj.OBJFile) *Mesh {
	m := &Mesh{}

	verts := obj.Verts()
	m.Verts = make([]float32, 0, len(verts)*3)
	// gobj.Polygon stores vertex values rather than indices, so faces
	// sharing a vertex don't automatically dedupe; index by value here to
	// avoid duplicating verts in the triangle soup navbuild consumes.
	idx := make(map[gobj.Vertex]int32, len(verts))
	for i, v := range verts {
		idx[v] = int32(i)
		m.Verts = append(m.Verts, float32(v.X()), float32(v.Y()), float32(v.Z()))
	}

	for _, poly := range obj.Polys() {
		if len(poly) < 3 {
			continue
		}
		// fan triangulation: wouldn't be correct for concave faces, but
		// OBJ exporters for navmesh source geometry always emit convex ones.
		a := idx[poly[0]]
		for i := 2; i < len(poly); i++ {
			m.Tris = append(m.Tris, a, idx[poly[i-1]], idx[poly[i]])
		}
	}

	bb := obj.AABB()
	m.BMin = [3]float32{float32(bb.MinX), float32(bb.MinY), float32(bb.MinZ)}
	m.BMax = [3]float32{float32(bb.MaxX), float32(bb.MaxY), float32(bb.MaxZ)}
	return m
}
