package navgen

import (
	"fmt"

	"github.com/isaac-mason/navcat-sub003/navbuild"
	"github.com/isaac-mason/navcat-sub003/navmesh"
)

// buildResult is the per-tile output of the voxel pipeline, ready to be
// packed into navmesh tile bytes by navmesh.CreateNavMeshData.
type buildResult struct {
	pmesh *navbuild.PolyMesh
	dmesh *navbuild.PolyMeshDetail
}

// buildTileGeometry drives the full voxel pipeline — rasterisation, span
// filtering, compact heightfield, area marking, erosion, distance field,
// watershed regions, contour tracing, polygon mesh and detail mesh — over
// the triangles that fall within [bmin, bmax].
//
// Tiled builds pass bounds already grown by opts.BorderSize voxels on every
// side, so neighbouring tiles' contours agree at the shared edge; solo
// builds pass the input mesh's own bounds.
func buildTileGeometry(ctx *navbuild.BuildContext, input *Input, opts Options, bmin, bmax [3]float32) (*buildResult, error) {
	mesh := input.Mesh

	w, h := navbuild.CalcGridSize(bmin, bmax, opts.CellSize)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("navgen: degenerate tile bounds")
	}

	hf := navbuild.NewHeightfield()
	if !hf.Create(ctx, w, h, bmin[:], bmax[:], opts.CellSize, opts.CellHeight) {
		return nil, fmt.Errorf("navgen: could not create heightfield")
	}

	nv := int32(len(mesh.Verts) / 3)
	nt := int32(len(mesh.Tris) / 3)
	if nt == 0 {
		// No input triangles: an empty result is not an error, it
		// simply yields zero polygons (see boundary behaviours).
		return &buildResult{}, nil
	}

	areas := make([]uint8, nt)
	navbuild.MarkWalkableTriangles(ctx, opts.WalkableSlopeAngleDegrees, mesh.Verts, nv, mesh.Tris, nt, areas)
	if !navbuild.RasterizeTriangles(ctx, mesh.Verts, nv, mesh.Tris, areas, nt, hf, opts.WalkableClimbVoxels) {
		return nil, fmt.Errorf("navgen: rasterization failed")
	}

	navbuild.FilterLowHangingWalkableObstacles(ctx, opts.WalkableClimbVoxels, hf)
	navbuild.FilterLedgeSpans(ctx, opts.WalkableHeightVoxels, opts.WalkableClimbVoxels, hf)
	navbuild.FilterWalkableLowHeightSpans(ctx, opts.WalkableHeightVoxels, hf)

	chf, ok := navbuild.BuildCompactHeightfield(ctx, opts.WalkableHeightVoxels, opts.WalkableClimbVoxels, hf)
	if !ok {
		return nil, fmt.Errorf("navgen: could not build compact heightfield")
	}

	for _, vol := range input.ConvexVolumes {
		markConvexPolyArea(chf, vol)
	}

	if !navbuild.ErodeWalkableArea(ctx, opts.WalkableRadiusVoxels, chf) {
		return nil, fmt.Errorf("navgen: could not erode walkable area")
	}

	if !navbuild.BuildDistanceField(ctx, chf) {
		return nil, fmt.Errorf("navgen: could not build distance field")
	}

	regionsOK := false
	switch opts.PartitionType {
	case PartitionMonotone:
		regionsOK = navbuild.BuildRegionsMonotone(ctx, chf, opts.BorderSize, opts.MinRegionArea, opts.MergeRegionArea)
	default:
		regionsOK = navbuild.BuildRegions(ctx, chf, opts.BorderSize, opts.MinRegionArea, opts.MergeRegionArea)
	}
	if !regionsOK {
		return nil, fmt.Errorf("navgen: could not build regions")
	}

	cset := &navbuild.ContourSet{}
	if !navbuild.BuildContours(ctx, chf, opts.MaxSimplificationError, opts.MaxEdgeLength, cset, navbuild.ContourTessWallEdges) {
		return nil, fmt.Errorf("navgen: could not build contours")
	}
	if cset.NConts == 0 {
		return &buildResult{}, nil
	}

	pmesh, ok := navbuild.BuildPolyMesh(ctx, cset, opts.MaxVerticesPerPoly)
	if !ok {
		return nil, fmt.Errorf("navgen: could not build poly mesh")
	}

	// Walkable spans carry navbuild.WalkableArea (63) through contour and
	// poly construction; remap to the default ground area/flags a
	// StandardQueryFilter recognises. area == 0 is NOT NULL_AREA here — it's
	// the default "ground" area id assigned to ordinary walkable polygons.
	for i := int32(0); i < pmesh.NPolys; i++ {
		if pmesh.Areas[i] == navbuild.WalkableArea {
			pmesh.Areas[i] = 0
			pmesh.Flags[i] = navmesh.PolyFlagsWalk
		}
	}

	dmesh, ok := navbuild.BuildPolyMeshDetail(ctx, pmesh, chf, opts.DetailSampleDistance, opts.DetailSampleMaxError)
	if !ok {
		return nil, fmt.Errorf("navgen: could not build poly mesh detail")
	}

	return &buildResult{pmesh: pmesh, dmesh: dmesh}, nil
}

// packTile assembles a buildResult plus the input's off-mesh connections
// into navmesh tile bytes via navmesh.CreateNavMeshData.
func packTile(res *buildResult, input *Input, opts Options, tileX, tileY int32) ([]byte, error) {
	if res.pmesh == nil || res.pmesh.NPolys == 0 {
		return nil, nil
	}

	params := &navmesh.NavMeshCreateParams{
		Verts:     res.pmesh.Verts,
		VertCount: res.pmesh.NVerts,
		Polys:     res.pmesh.Polys,
		PolyFlags: res.pmesh.Flags,
		PolyAreas: res.pmesh.Areas,
		PolyCount: res.pmesh.NPolys,
		Nvp:       res.pmesh.Nvp,

		TileX:     tileX,
		TileY:     tileY,
		TileLayer: 0,
		BMin:      res.pmesh.BMin,
		BMax:      res.pmesh.BMax,

		WalkableHeight: float32(opts.WalkableHeightVoxels) * opts.CellHeight,
		WalkableRadius: float32(opts.WalkableRadiusVoxels) * opts.CellSize,
		WalkableClimb:  float32(opts.WalkableClimbVoxels) * opts.CellHeight,
		Cs:             opts.CellSize,
		Ch:             opts.CellHeight,

		BuildBvTree: true,
	}

	if res.dmesh != nil {
		params.DetailMeshes = res.dmesh.Meshes
		params.DetailVerts = res.dmesh.Verts
		params.DetailVertsCount = res.dmesh.NVerts
		params.DetailTris = res.dmesh.Tris
		params.DetailTriCount = res.dmesh.NTris
	}

	if n := len(input.OffMeshConnections); n > 0 {
		params.OffMeshConCount = int32(n)
		params.OffMeshConVerts = make([]float32, 0, n*6)
		params.OffMeshConRad = make([]float32, 0, n)
		params.OffMeshConFlags = make([]uint16, 0, n)
		params.OffMeshConAreas = make([]uint8, 0, n)
		params.OffMeshConDir = make([]uint8, 0, n)
		params.OffMeshConUserID = make([]uint32, 0, n)
		for _, c := range input.OffMeshConnections {
			params.OffMeshConVerts = append(params.OffMeshConVerts, c.Start[0], c.Start[1], c.Start[2], c.End[0], c.End[1], c.End[2])
			params.OffMeshConRad = append(params.OffMeshConRad, c.Radius)
			params.OffMeshConFlags = append(params.OffMeshConFlags, c.Flags)
			params.OffMeshConAreas = append(params.OffMeshConAreas, c.Area)
			var dir uint8
			if c.Bidir {
				dir = 1
			}
			params.OffMeshConDir = append(params.OffMeshConDir, dir)
			params.OffMeshConUserID = append(params.OffMeshConUserID, c.UserID)
		}
	}

	return navmesh.CreateNavMeshData(params)
}

// GenerateSoloNavMesh builds a single, untiled navmesh tile covering the
// whole of input.Mesh's bounding box.
func GenerateSoloNavMesh(ctx *navbuild.BuildContext, input *Input, opts Options) (*navmesh.NavMesh, error) {
	bmin, bmax := input.Mesh.BMin, input.Mesh.BMax

	res, err := buildTileGeometry(ctx, input, opts, bmin, bmax)
	if err != nil {
		return nil, err
	}

	mesh := &navmesh.NavMesh{}
	if res.pmesh == nil || res.pmesh.NPolys == 0 {
		// Empty input still yields a usable, tile-less navmesh.
		params := &navmesh.NavMeshParams{MaxTiles: 1, MaxPolys: 1}
		copy(params.Orig[:], bmin[:])
		params.TileWidth = bmax[0] - bmin[0]
		params.TileHeight = bmax[2] - bmin[2]
		if st := mesh.Init(params); navmesh.StatusFailed(st) {
			return nil, fmt.Errorf("navgen: could not initialize empty navmesh: %v", st)
		}
		return mesh, nil
	}

	data, err := packTile(res, input, opts, 0, 0)
	if err != nil {
		return nil, err
	}

	if st := mesh.InitForSingleTile(data, 0); navmesh.StatusFailed(st) {
		return nil, fmt.Errorf("navgen: could not initialize navmesh: %v", st)
	}

	return mesh, nil
}

// GenerateTiledNavMesh builds a navmesh split into opts.TileSizeVoxels
// square tiles, stitching neighbours as each is added. Callers that need to
// add or remove off-mesh connections after this build should call
// GenerateTiledNavMeshBuilder instead, which retains what this function
// discards: each tile's build result, needed to repack a tile without
// rerunning the voxel pipeline over it.
func GenerateTiledNavMesh(ctx *navbuild.BuildContext, input *Input, opts Options) (*navmesh.NavMesh, error) {
	b, err := GenerateTiledNavMeshBuilder(ctx, input, opts)
	if err != nil {
		return nil, err
	}
	return b.NavMesh(), nil
}
