package navmesh

import (
	"testing"

	"github.com/arl/gogeo/f32/d3"
)

func TestCalcPolyCenter(t *testing.T) {
	mesh := newTwoPolyNavMesh(t)

	var tile *MeshTile
	var poly *Poly
	mesh.TileAndPolyByRef(mesh.polyRefBase(&mesh.Tiles[0]), &tile, &poly)

	got := CalcPolyCenter(poly.Verts[:], int32(poly.VertCount), tile.Verts)
	want := d3.Vec3{5, 0, 5} // polyA: (0,0)-(10,0)-(10,10)-(0,10)
	if !got.Approx(want) {
		t.Errorf("want centroid of polyA = %v, got %v", want, got)
	}
}

func TestFindNearestPolySpecialCases(t *testing.T) {
	mesh := newTwoPolyNavMesh(t)

	st, q := NewNavMeshQuery(mesh, 64)
	if StatusFailed(st) {
		t.Fatalf("query creation failed with status 0x%x", st)
	}
	f := NewStandardQueryFilter()

	tests := []struct {
		msg     string
		pt      d3.Vec3
		ext     d3.Vec3
		wantSt  Status
		wantRef PolyRef
	}{
		{"search box does not intersect any poly", d3.Vec3{-50, 0, -50}, d3.Vec3{1, 1, 1}, Success, 0},
		{"unallocated center vector", d3.Vec3{}, d3.Vec3{1, 1, 1}, Failure | InvalidParam, 0},
		{"unallocated extents vector", d3.Vec3{0, 0, 0}, d3.Vec3{}, Failure | InvalidParam, 0},
	}

	for _, tt := range tests {
		st, ref, _ := q.FindNearestPoly(tt.pt, tt.ext, f)
		if st != tt.wantSt {
			t.Errorf("%s: want status 0x%x, got 0x%x", tt.msg, tt.wantSt, st)
		}
		if ref != tt.wantRef {
			t.Errorf("%s: want ref 0x%x, got 0x%x", tt.msg, tt.wantRef, ref)
		}
	}
}
