package navmesh

import (
	"testing"

	"github.com/arl/gogeo/f32/d3"
)

// newTwoPolyNavMesh builds a minimal single-tile navmesh by hand, bypassing
// navbuild entirely: two 10x10 quads sharing an edge, so FindPath has to
// cross exactly one internal link. Vertex and polygon data are wired
// directly through NavMeshCreateParams the way navgen's packTile does,
// which is the only place outside navbuild a caller is expected to
// construct this struct from scratch.
//
//	v3(0,10)--v2(10,10)--v5(20,10)
//	  |  polyA   |  polyB  |
//	v0(0,0)---v1(10,0)---v4(20,0)
func newTwoPolyNavMesh(t *testing.T) *NavMesh {
	t.Helper()

	verts := []uint16{
		0, 0, 0, // v0
		10, 0, 0, // v1
		10, 0, 10, // v2
		0, 0, 10, // v3
		20, 0, 0, // v4
		20, 0, 10, // v5
	}

	const nvp = 4
	// polys stores, per polygon, nvp vertex indices followed by nvp
	// neighbour slots; 0xffff marks a tile border, any other value is the
	// 0-based index of the adjoining polygon.
	polys := []uint16{
		0, 1, 2, 3, 0xffff, 1, 0xffff, 0xffff, // polyA, shares edge1 with polyB
		1, 4, 5, 2, 0xffff, 0xffff, 0xffff, 0, // polyB, shares edge3 with polyA
	}

	params := &NavMeshCreateParams{
		Verts:     verts,
		VertCount: 6,
		Polys:     polys,
		PolyFlags: []uint16{PolyFlagsWalk, PolyFlagsWalk},
		PolyAreas: []uint8{0, 0},
		PolyCount: 2,
		Nvp:       nvp,

		BMin: [3]float32{0, 0, 0},
		BMax: [3]float32{20, 1, 10},

		WalkableHeight: 2,
		WalkableRadius: 0.3,
		WalkableClimb:  0.5,
		Cs:             1,
		Ch:             1,
	}

	data, err := CreateNavMeshData(params)
	if err != nil {
		t.Fatalf("CreateNavMeshData failed: %v", err)
	}

	mesh := &NavMesh{}
	if st := mesh.InitForSingleTile(data, 0); StatusFailed(st) {
		t.Fatalf("InitForSingleTile failed: %v", st)
	}
	return mesh
}

// newTwoPlatformNavMesh builds two disjoint 4x4 quads with a single
// off-mesh connection between their centres, travelling start -> end only
// when dir is 0, and in both directions when dir is non-zero.
//
// platform A is centred at (2,2), platform B at (22,2); they share no
// vertex or edge, so the off-mesh connection is the only way across.
func newTwoPlatformNavMesh(t *testing.T, dir uint8) *NavMesh {
	t.Helper()

	verts := []uint16{
		0, 0, 0, // v0: platform A
		4, 0, 0, // v1
		4, 0, 4, // v2
		0, 0, 4, // v3
		20, 0, 0, // v4: platform B
		24, 0, 0, // v5
		24, 0, 4, // v6
		20, 0, 4, // v7
	}

	const nvp = 4
	polys := []uint16{
		0, 1, 2, 3, 0xffff, 0xffff, 0xffff, 0xffff, // polyA
		4, 5, 6, 7, 0xffff, 0xffff, 0xffff, 0xffff, // polyB
	}

	params := &NavMeshCreateParams{
		Verts:     verts,
		VertCount: 8,
		Polys:     polys,
		PolyFlags: []uint16{PolyFlagsWalk, PolyFlagsWalk},
		PolyAreas: []uint8{0, 0},
		PolyCount: 2,
		Nvp:       nvp,

		OffMeshConVerts: []float32{
			2, 0, 2, // start: centre of platform A
			22, 0, 2, // end: centre of platform B
		},
		OffMeshConRad:    []float32{0.5},
		OffMeshConFlags:  []uint16{PolyFlagsWalk},
		OffMeshConAreas:  []uint8{0},
		OffMeshConDir:    []uint8{dir},
		OffMeshConUserID: []uint32{1},
		OffMeshConCount:  1,

		BMin: [3]float32{0, 0, 0},
		BMax: [3]float32{24, 1, 4},

		WalkableHeight: 2,
		WalkableRadius: 0.3,
		WalkableClimb:  0.5,
		Cs:             1,
		Ch:             1,
	}

	data, err := CreateNavMeshData(params)
	if err != nil {
		t.Fatalf("CreateNavMeshData failed: %v", err)
	}

	mesh := &NavMesh{}
	if st := mesh.InitForSingleTile(data, 0); StatusFailed(st) {
		t.Fatalf("InitForSingleTile failed: %v", st)
	}
	return mesh
}

// findNearestOrFatal is a small wrapper shared by the tests below: it fails
// the test immediately rather than propagating a bad ref into FindPath.
func findNearestOrFatal(t *testing.T, q *NavMeshQuery, pt, extents d3.Vec3, f QueryFilter) (PolyRef, d3.Vec3) {
	t.Helper()
	st, ref, nearest := q.FindNearestPoly(pt, extents, f)
	if StatusFailed(st) {
		t.Fatalf("FindNearestPoly(%v) failed: %v", pt, st)
	}
	if ref == 0 {
		t.Fatalf("FindNearestPoly(%v) found no polygon", pt)
	}
	return ref, nearest
}
