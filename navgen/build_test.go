package navgen

import (
	"testing"

	"github.com/arl/gogeo/f32/d3"
	"github.com/stretchr/testify/require"

	"github.com/isaac-mason/navcat-sub003/geom"
	"github.com/isaac-mason/navcat-sub003/navbuild"
	"github.com/isaac-mason/navcat-sub003/navmesh"
)

// flatSquareMesh builds a 2x2 XZ quad at y=0 as two triangles, the
// scenario used throughout these tests.
func flatSquareMesh(size float32) *geom.Mesh {
	verts := []float32{
		0, 0, 0,
		size, 0, 0,
		size, 0, size,
		0, 0, size,
	}
	tris := []int32{0, 2, 1, 0, 3, 2}
	return &geom.Mesh{
		Verts: verts,
		Tris:  tris,
		BMin:  [3]float32{0, 0, 0},
		BMax:  [3]float32{size, 0, size},
	}
}

func flatSquareOptions() Options {
	opts := DefaultOptions()
	opts.CellSize = 0.5
	opts.CellHeight = 0.2
	opts.WalkableRadiusVoxels = 1 // 0.3 / 0.5 rounds to nearest voxel budget
	opts.WalkableHeightVoxels = 3 // 0.5 / 0.2 = 2.5 -> ceil to fit
	opts.WalkableClimbVoxels = 2  // 0.4 / 0.2
	opts.WalkableSlopeAngleDegrees = 45
	opts.MinRegionArea = 0
	opts.MergeRegionArea = 0
	return opts
}

func TestGenerateSoloNavMeshFlatSquare(t *testing.T) {
	mesh := flatSquareMesh(2)
	opts := flatSquareOptions()

	ctx := navbuild.NewBuildContext(false)
	nm, err := GenerateSoloNavMesh(ctx, &Input{Mesh: mesh}, opts)
	require.NoError(t, err)
	require.NotNil(t, nm)

	st, q := navmesh.NewNavMeshQuery(nm, 256)
	require.False(t, navmesh.StatusFailed(st))

	filter := navmesh.NewStandardQueryFilter()
	extents := d3.Vec3{2, 2, 2}

	st, startRef, startPt := q.FindNearestPoly(d3.Vec3{0.5, 0, 0.5}, extents, filter)
	require.False(t, navmesh.StatusFailed(st))
	require.NotZero(t, startRef)

	st, endRef, endPt := q.FindNearestPoly(d3.Vec3{1.5, 0, 1.5}, extents, filter)
	require.False(t, navmesh.StatusFailed(st))
	require.NotZero(t, endRef)

	path := make([]navmesh.PolyRef, 32)
	pathCount, st := q.FindPath(startRef, endRef, startPt, endPt, filter, path)
	require.False(t, navmesh.StatusFailed(st))
	require.GreaterOrEqual(t, pathCount, 1)

	straight := make([]d3.Vec3, 32)
	for i := range straight {
		straight[i] = d3.NewVec3()
	}
	flags := make([]uint8, 32)
	refs := make([]navmesh.PolyRef, 32)
	n, st := q.FindStraightPath(startPt, endPt, path[:pathCount], straight, flags, refs, 0)
	require.False(t, navmesh.StatusFailed(st))
	require.GreaterOrEqual(t, n, 2)
}

func TestGenerateSoloNavMeshEmptyInput(t *testing.T) {
	mesh := &geom.Mesh{BMin: [3]float32{0, 0, 0}, BMax: [3]float32{1, 1, 1}}
	opts := flatSquareOptions()

	ctx := navbuild.NewBuildContext(false)
	nm, err := GenerateSoloNavMesh(ctx, &Input{Mesh: mesh}, opts)
	require.NoError(t, err)
	require.NotNil(t, nm)
}

// twoPlatformsMesh builds two disconnected 2x2 XZ quads centred at (1,0,1)
// and (8,0,1), matching the off-mesh connection scenario.
func twoPlatformsMesh() *geom.Mesh {
	verts := []float32{
		// platform A: centred at (1,0,1)
		0, 0, 0,
		2, 0, 0,
		2, 0, 2,
		0, 0, 2,
		// platform B: centred at (8,0,1)
		7, 0, 0,
		9, 0, 0,
		9, 0, 2,
		7, 0, 2,
	}
	tris := []int32{
		0, 2, 1, 0, 3, 2,
		4, 6, 5, 4, 7, 6,
	}
	return &geom.Mesh{
		Verts: verts,
		Tris:  tris,
		BMin:  [3]float32{0, 0, 0},
		BMax:  [3]float32{9, 0, 2},
	}
}

func TestGenerateSoloNavMeshBidirOffMeshConnection(t *testing.T) {
	mesh := twoPlatformsMesh()
	opts := flatSquareOptions()

	conn := geom.OffMeshConnectionDef{
		Start:  [3]float32{1, 0, 1},
		End:    [3]float32{8, 0, 1},
		Radius: 0.5,
		Bidir:  true,
		Flags:  navmesh.PolyFlagsWalk,
	}

	ctx := navbuild.NewBuildContext(false)
	nm, err := GenerateSoloNavMesh(ctx, &Input{
		Mesh:               mesh,
		OffMeshConnections: []geom.OffMeshConnectionDef{conn},
	}, opts)
	require.NoError(t, err)
	require.NotNil(t, nm)

	st, q := navmesh.NewNavMeshQuery(nm, 256)
	require.False(t, navmesh.StatusFailed(st))

	filter := navmesh.NewStandardQueryFilter()
	extents := d3.Vec3{2, 2, 2}

	st, startRef, startPt := q.FindNearestPoly(d3.Vec3{1, 0, 1}, extents, filter)
	require.False(t, navmesh.StatusFailed(st))
	require.NotZero(t, startRef)

	st, endRef, endPt := q.FindNearestPoly(d3.Vec3{8, 0, 1}, extents, filter)
	require.False(t, navmesh.StatusFailed(st))
	require.NotZero(t, endRef)

	path := make([]navmesh.PolyRef, 32)
	pathCount, st := q.FindPath(startRef, endRef, startPt, endPt, filter, path)
	require.False(t, navmesh.StatusFailed(st))
	require.GreaterOrEqual(t, pathCount, 2)

	straight := make([]d3.Vec3, 32)
	for i := range straight {
		straight[i] = d3.NewVec3()
	}
	flags := make([]uint8, 32)
	refs := make([]navmesh.PolyRef, 32)
	n, st := q.FindStraightPath(startPt, endPt, path[:pathCount], straight, flags, refs, 0)
	require.False(t, navmesh.StatusFailed(st))
	require.GreaterOrEqual(t, n, 3)

	var sawOffMeshPoint bool
	for i := 0; i < n; i++ {
		if flags[i]&navmesh.StraightPathOffMeshConnection != 0 {
			sawOffMeshPoint = true
		}
	}
	require.True(t, sawOffMeshPoint, "expected an off-mesh-connection-flagged waypoint")
}

// TestGenerateSoloNavMeshMonotonePartition exercises the same flat square as
// TestGenerateSoloNavMeshFlatSquare, but through PartitionMonotone instead of
// the default watershed partitioning, to confirm both region-partitioning
// algorithms reach a walkable, queryable mesh.
func TestGenerateSoloNavMeshMonotonePartition(t *testing.T) {
	mesh := flatSquareMesh(2)
	opts := flatSquareOptions()
	opts.PartitionType = PartitionMonotone

	ctx := navbuild.NewBuildContext(false)
	nm, err := GenerateSoloNavMesh(ctx, &Input{Mesh: mesh}, opts)
	require.NoError(t, err)
	require.NotNil(t, nm)

	st, q := navmesh.NewNavMeshQuery(nm, 256)
	require.False(t, navmesh.StatusFailed(st))

	filter := navmesh.NewStandardQueryFilter()
	extents := d3.Vec3{2, 2, 2}

	st, ref, _ := q.FindNearestPoly(d3.Vec3{1, 0, 1}, extents, filter)
	require.False(t, navmesh.StatusFailed(st))
	require.NotZero(t, ref)
}

// TestTiledNavMeshAddRemoveOffMeshConnection builds a two-tile navmesh over
// twoPlatformsMesh's two disconnected platforms, then adds an off-mesh
// connection between them after the fact and confirms FindPath can use it,
// and that removing it again makes the path disappear — exercising
// GenerateTiledNavMeshBuilder's tile-granularity repack path end to end.
func TestTiledNavMeshAddRemoveOffMeshConnection(t *testing.T) {
	mesh := twoPlatformsMesh()
	opts := flatSquareOptions()
	opts.TileSizeVoxels = 10 // 10 * 0.5 cell size = 5 world units per tile, one tile per platform

	ctx := navbuild.NewBuildContext(false)
	input := &Input{Mesh: mesh}
	b, err := GenerateTiledNavMeshBuilder(ctx, input, opts)
	require.NoError(t, err)
	require.NotNil(t, b)

	filter := navmesh.NewStandardQueryFilter()
	extents := d3.Vec3{2, 2, 2}

	st, q := navmesh.NewNavMeshQuery(b.NavMesh(), 256)
	require.False(t, navmesh.StatusFailed(st))

	st, startRef, startPt := q.FindNearestPoly(d3.Vec3{1, 0, 1}, extents, filter)
	require.False(t, navmesh.StatusFailed(st))
	require.NotZero(t, startRef)

	st, endRef, endPt := q.FindNearestPoly(d3.Vec3{8, 0, 1}, extents, filter)
	require.False(t, navmesh.StatusFailed(st))
	require.NotZero(t, endRef)

	path := make([]navmesh.PolyRef, 32)
	_, st = q.FindPath(startRef, endRef, startPt, endPt, filter, path)
	require.True(t, navmesh.StatusFailed(st) || st&navmesh.PartialResult != 0,
		"expected no path between disconnected platforms before adding the connection")

	conn := geom.OffMeshConnectionDef{
		Start:  [3]float32{1, 0, 1},
		End:    [3]float32{8, 0, 1},
		Radius: 0.5,
		Bidir:  true,
		Flags:  navmesh.PolyFlagsWalk,
	}
	require.NoError(t, b.AddOffMeshConnection(conn))

	st, q = navmesh.NewNavMeshQuery(b.NavMesh(), 256)
	require.False(t, navmesh.StatusFailed(st))
	st, startRef, startPt = q.FindNearestPoly(d3.Vec3{1, 0, 1}, extents, filter)
	require.False(t, navmesh.StatusFailed(st))
	st, endRef, endPt = q.FindNearestPoly(d3.Vec3{8, 0, 1}, extents, filter)
	require.False(t, navmesh.StatusFailed(st))

	pathCount, st := q.FindPath(startRef, endRef, startPt, endPt, filter, path)
	require.False(t, navmesh.StatusFailed(st))
	require.Equal(t, 3, pathCount, "expected start poly, off-mesh connection poly and end poly after adding the connection")

	require.NoError(t, b.RemoveOffMeshConnection(conn))

	st, q = navmesh.NewNavMeshQuery(b.NavMesh(), 256)
	require.False(t, navmesh.StatusFailed(st))
	st, startRef, startPt = q.FindNearestPoly(d3.Vec3{1, 0, 1}, extents, filter)
	require.False(t, navmesh.StatusFailed(st))
	st, endRef, endPt = q.FindNearestPoly(d3.Vec3{8, 0, 1}, extents, filter)
	require.False(t, navmesh.StatusFailed(st))

	_, st = q.FindPath(startRef, endRef, startPt, endPt, filter, path)
	require.True(t, navmesh.StatusFailed(st) || st&navmesh.PartialResult != 0,
		"expected the platforms to be disconnected again after removing the connection")
}
