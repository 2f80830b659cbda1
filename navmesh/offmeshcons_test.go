package navmesh

import (
	"testing"

	"github.com/arl/gogeo/f32/d3"
)

// TestOffMeshConnectionsBidirectional exercises a two-way jump between two
// otherwise-disconnected platforms: FindPath must cross it in either
// direction, and FindStraightPath must flag its start vertex.
func TestOffMeshConnectionsBidirectional(t *testing.T) {
	mesh := newTwoPlatformNavMesh(t, 1)

	st, query := NewNavMeshQuery(mesh, 64)
	if StatusFailed(st) {
		t.Fatalf("query creation failed: %v", st)
	}
	filter := NewStandardQueryFilter()
	extents := d3.NewVec3XYZ(1, 1, 1)

	aRef, aPt := findNearestOrFatal(t, query, d3.Vec3{2, 0, 2}, extents, filter)
	bRef, bPt := findNearestOrFatal(t, query, d3.Vec3{22, 0, 2}, extents, filter)

	dirs := []struct {
		name         string
		org, dst     PolyRef
		orgPt, dstPt d3.Vec3
	}{
		{"A to B", aRef, bRef, aPt, bPt},
		{"B to A", bRef, aRef, bPt, aPt},
	}

	for _, dir := range dirs {
		path := make([]PolyRef, 16)
		pathCount, st := query.FindPath(dir.org, dir.dst, dir.orgPt, dir.dstPt, filter, path)
		if StatusFailed(st) {
			t.Fatalf("%s: FindPath failed: %v", dir.name, st)
		}
		if pathCount != 3 {
			t.Fatalf("%s: pathCount = %d, want 3 (start poly, off-mesh connection poly, end poly)", dir.name, pathCount)
		}

		straight := make([]d3.Vec3, 16)
		for i := range straight {
			straight[i] = d3.NewVec3()
		}
		flags := make([]uint8, 16)
		refs := make([]PolyRef, 16)
		n, st := query.FindStraightPath(dir.orgPt, dir.dstPt, path[:pathCount], straight, flags, refs, 0)
		if StatusFailed(st) {
			t.Fatalf("%s: FindStraightPath failed: %v", dir.name, st)
		}

		var sawOffMeshStart bool
		for i := 0; i < n; i++ {
			if flags[i]&StraightPathOffMeshConnection != 0 {
				sawOffMeshStart = true
			}
		}
		if !sawOffMeshStart {
			t.Errorf("%s: no waypoint flagged StraightPathOffMeshConnection", dir.name)
		}
	}
}

// TestOffMeshConnectionsOneWayDirectionalLink checks the directional-link
// invariant for a one-way (START_TO_END) off-mesh connection: the end
// poly's links must not include a way back, so a path built end -> start
// cannot use it, even though start -> end succeeds.
func TestOffMeshConnectionsOneWayDirectionalLink(t *testing.T) {
	mesh := newTwoPlatformNavMesh(t, 0) // dir=0: one-way, start -> end only

	st, query := NewNavMeshQuery(mesh, 64)
	if StatusFailed(st) {
		t.Fatalf("query creation failed: %v", st)
	}
	filter := NewStandardQueryFilter()
	extents := d3.NewVec3XYZ(1, 1, 1)

	startRef, startPt := findNearestOrFatal(t, query, d3.Vec3{2, 0, 2}, extents, filter)
	endRef, endPt := findNearestOrFatal(t, query, d3.Vec3{22, 0, 2}, extents, filter)

	path := make([]PolyRef, 16)
	pathCount, st := query.FindPath(startRef, endRef, startPt, endPt, filter, path)
	if StatusFailed(st) {
		t.Fatalf("start->end: FindPath failed: %v", st)
	}
	if pathCount != 3 {
		t.Fatalf("start->end: pathCount = %d, want 3", pathCount)
	}

	pathCount, st = query.FindPath(endRef, startRef, endPt, startPt, filter, path)
	if StatusFailed(st) {
		t.Fatalf("end->start: FindPath returned a hard failure: %v", st)
	}
	if st&PartialResult == 0 {
		t.Errorf("end->start: want PartialResult status (no link back), got 0x%x", st)
	}
	if pathCount != 1 || path[0] != endRef {
		t.Errorf("end->start: want a stuck one-poly path at endRef, got %#v", path[:pathCount])
	}
}
