package navmesh

import (
	"testing"

	"github.com/arl/gogeo/f32/d3"
)

func TestFindPathFindStraightPath(t *testing.T) {
	mesh := newTwoPolyNavMesh(t)

	st, query := NewNavMeshQuery(mesh, 64)
	if StatusFailed(st) {
		t.Fatalf("query creation failed with status 0x%x", st)
	}

	extents := d3.NewVec3XYZ(1, 1, 1)
	filter := NewStandardQueryFilter()

	orgRef, org := findNearestOrFatal(t, query, d3.Vec3{2, 0, 5}, extents, filter)
	dstRef, dst := findNearestOrFatal(t, query, d3.Vec3{18, 0, 5}, extents, filter)
	if orgRef == dstRef {
		t.Fatalf("org and dst resolved to the same poly, test fixture is wrong")
	}

	path := make([]PolyRef, 16)
	pathCount, st := query.FindPath(orgRef, dstRef, org, dst, filter, path)
	if StatusFailed(st) {
		t.Fatalf("query.FindPath failed with 0x%x", st)
	}
	if pathCount != 2 {
		t.Fatalf("pathCount = %d, want 2 (one link crossed)", pathCount)
	}
	if path[0] != orgRef || path[1] != dstRef {
		t.Fatalf("path = %#v, want [%#x %#x]", path[:pathCount], orgRef, dstRef)
	}

	straightPath := make([]d3.Vec3, 16)
	for i := range straightPath {
		straightPath[i] = d3.NewVec3()
	}
	straightPathFlags := make([]uint8, 16)
	straightPathRefs := make([]PolyRef, 16)

	straightPathCount, st := query.FindStraightPath(org, dst, path[:pathCount], straightPath, straightPathFlags, straightPathRefs, 0)
	if StatusFailed(st) {
		t.Fatalf("query.FindStraightPath failed with 0x%x", st)
	}
	if straightPathCount < 2 {
		t.Fatalf("straightPathCount = %d, want at least 2", straightPathCount)
	}
	if straightPathFlags[0]&StraightPathStart == 0 {
		t.Errorf("straightPath start is not flagged StraightPathStart")
	}
	if straightPathFlags[straightPathCount-1]&StraightPathEnd == 0 {
		t.Errorf("straightPath end is not flagged StraightPathEnd")
	}
	if !straightPath[0].Approx(org) {
		t.Errorf("straightPath[0] = %v, want %v", straightPath[0], org)
	}
	if !straightPath[straightPathCount-1].Approx(dst) {
		t.Errorf("straightPath[last] = %v, want %v", straightPath[straightPathCount-1], dst)
	}
}

func TestFindPathSpecialCases(t *testing.T) {
	mesh := newTwoPolyNavMesh(t)

	st, query := NewNavMeshQuery(mesh, 64)
	if StatusFailed(st) {
		t.Fatalf("query creation failed with status 0x%x", st)
	}

	extents := d3.NewVec3XYZ(1, 1, 1)
	filter := NewStandardQueryFilter()

	ref, pt := findNearestOrFatal(t, query, d3.Vec3{5, 0, 5}, extents, filter)

	path := make([]PolyRef, 16)
	pathCount, st := query.FindPath(ref, ref, pt, pt, filter, path)
	if st != Success {
		t.Errorf("org == dst: got status 0x%x, want Success", st)
	}
	if pathCount != 1 {
		t.Errorf("org == dst: got pathCount %d, want 1", pathCount)
	}
}

func TestFindPathExcludedByFilter(t *testing.T) {
	mesh := newTwoPolyNavMesh(t)

	st, query := NewNavMeshQuery(mesh, 64)
	if StatusFailed(st) {
		t.Fatalf("query creation failed with status 0x%x", st)
	}

	extents := d3.NewVec3XYZ(1, 1, 1)

	// With the default filter, both polys are walkable and reachable.
	open := NewStandardQueryFilter()
	orgRef, org := findNearestOrFatal(t, query, d3.Vec3{2, 0, 5}, extents, open)
	dstRef, dst := findNearestOrFatal(t, query, d3.Vec3{18, 0, 5}, extents, open)

	path := make([]PolyRef, 16)
	pathCount, st := query.FindPath(orgRef, dstRef, org, dst, open, path)
	if StatusFailed(st) {
		t.Fatalf("query.FindPath (open filter) failed with 0x%x", st)
	}
	if pathCount != 2 {
		t.Fatalf("open filter pathCount = %d, want 2", pathCount)
	}

	// A filter that excludes PolyFlagsWalk rejects every polygon in this
	// mesh, so a path can't even start.
	closed := NewStandardQueryFilter()
	closed.SetIncludeFlags(0)
	closed.SetExcludeFlags(PolyFlagsWalk)

	pathCount, st = query.FindPath(orgRef, dstRef, org, dst, closed, path)
	if StatusFailed(st) {
		t.Fatalf("query.FindPath (closed filter) failed with 0x%x", st)
	}
	if pathCount != 1 || path[0] != orgRef {
		t.Fatalf("closed filter path = %#v, want just the start poly", path[:pathCount])
	}
	if st&PartialResult == 0 {
		t.Errorf("closed filter: expected PartialResult status, got 0x%x", st)
	}
}
