package navgen

import (
	"fmt"

	"github.com/isaac-mason/navcat-sub003/geom"
	"github.com/isaac-mason/navcat-sub003/navbuild"
	"github.com/isaac-mason/navcat-sub003/navmesh"
)

// tileKey identifies a tile by its grid coordinates; layer is always 0 for
// the navgen pipeline, which never produces overlapping layers.
type tileKey struct{ x, y int32 }

// TiledNavMesh wraps a tiled navmesh together with the per-tile build
// results and input used to produce it, so that off-mesh connections can be
// added or removed after the fact without rerunning the voxel pipeline.
//
// A connection only changes which tile(s) packTile bakes it into — the
// walkable surface itself (pmesh/dmesh) never needs to be rebuilt for an
// off-mesh edit, so AddOffMeshConnection/RemoveOffMeshConnection repack and
// re-add just the tiles whose bounds contain one of the connection's
// endpoints.
type TiledNavMesh struct {
	mesh  *navmesh.NavMesh
	input *Input
	opts  Options

	results map[tileKey]*buildResult
	bounds  map[tileKey][2][3]float32
}

// NavMesh returns the underlying navmesh.
func (b *TiledNavMesh) NavMesh() *navmesh.NavMesh { return b.mesh }

func within(bmin, bmax, p [3]float32) bool {
	return p[0] >= bmin[0] && p[0] <= bmax[0] &&
		p[2] >= bmin[2] && p[2] <= bmax[2]
}

// AddOffMeshConnection registers conn and repacks every tile whose bounds
// contain one of its endpoints, so paths through the mesh can use it
// immediately. It does not touch tiles the connection doesn't reach.
func (b *TiledNavMesh) AddOffMeshConnection(conn geom.OffMeshConnectionDef) error {
	b.input.OffMeshConnections = append(b.input.OffMeshConnections, conn)
	return b.repackTilesTouching(conn.Start, conn.End)
}

// RemoveOffMeshConnection drops the first off-mesh connection equal to conn
// and repacks every tile it used to reach. Directional (one-way) links are
// removed in the same direction they were added: conn must match the value
// passed to AddOffMeshConnection, including Bidir.
func (b *TiledNavMesh) RemoveOffMeshConnection(conn geom.OffMeshConnectionDef) error {
	idx := -1
	for i, c := range b.input.OffMeshConnections {
		if c == conn {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("navgen: off-mesh connection not found")
	}
	b.input.OffMeshConnections = append(b.input.OffMeshConnections[:idx], b.input.OffMeshConnections[idx+1:]...)
	return b.repackTilesTouching(conn.Start, conn.End)
}

func (b *TiledNavMesh) repackTilesTouching(pts ...[3]float32) error {
	for key, bnd := range b.bounds {
		touches := false
		for _, p := range pts {
			if within(bnd[0], bnd[1], p) {
				touches = true
				break
			}
		}
		if !touches {
			continue
		}

		res := b.results[key]
		if res == nil || res.pmesh == nil || res.pmesh.NPolys == 0 {
			continue
		}

		if ref := b.mesh.TileRefAt(key.x, key.y, 0); ref != 0 {
			if _, st := b.mesh.RemoveTile(ref); navmesh.StatusFailed(st) {
				return fmt.Errorf("navgen: could not remove tile (%d,%d): %v", key.x, key.y, st)
			}
		}

		data, err := packTile(res, b.input, b.opts, key.x, key.y)
		if err != nil {
			return fmt.Errorf("navgen: tile (%d,%d): %w", key.x, key.y, err)
		}
		if data == nil {
			continue
		}
		if st, _ := b.mesh.AddTile(data, 0); navmesh.StatusFailed(st) {
			return fmt.Errorf("navgen: could not re-add tile (%d,%d): %v", key.x, key.y, st)
		}
	}
	return nil
}

// GenerateTiledNavMeshBuilder is GenerateTiledNavMesh's counterpart for
// callers that need to add or remove off-mesh connections after the
// initial build: it retains each tile's build result so a later
// AddOffMeshConnection/RemoveOffMeshConnection call can repack just the
// tiles it affects, at tile granularity, instead of rebuilding the whole
// mesh.
func GenerateTiledNavMeshBuilder(ctx *navbuild.BuildContext, input *Input, opts Options) (*TiledNavMesh, error) {
	if !opts.tileSizeIsSet() {
		return nil, fmt.Errorf("navgen: TileSizeVoxels must be > 0 for a tiled build")
	}

	bmin, bmax := input.Mesh.BMin, input.Mesh.BMax
	gw, gh := navbuild.CalcGridSize(bmin, bmax, opts.CellSize)

	tileSizeWorld := opts.TileSizeWorld
	if tileSizeWorld <= 0 {
		tileSizeWorld = float32(opts.TileSizeVoxels) * opts.CellSize
	}

	tw := (gw + opts.TileSizeVoxels - 1) / opts.TileSizeVoxels
	th := (gh + opts.TileSizeVoxels - 1) / opts.TileSizeVoxels

	mesh := &navmesh.NavMesh{}
	params := &navmesh.NavMeshParams{
		MaxTiles:   uint32(tw * th),
		MaxPolys:   1 << 16,
		TileWidth:  tileSizeWorld,
		TileHeight: tileSizeWorld,
	}
	copy(params.Orig[:], bmin[:])
	if st := mesh.Init(params); navmesh.StatusFailed(st) {
		return nil, fmt.Errorf("navgen: could not initialize tiled navmesh: %v", st)
	}

	b := &TiledNavMesh{
		mesh:    mesh,
		input:   input,
		opts:    opts,
		results: make(map[tileKey]*buildResult),
		bounds:  make(map[tileKey][2][3]float32),
	}

	borderWorld := float32(opts.BorderSize) * opts.CellSize

	for ty := int32(0); ty < th; ty++ {
		for tx := int32(0); tx < tw; tx++ {
			tbmin := [3]float32{
				bmin[0] + float32(tx)*tileSizeWorld - borderWorld,
				bmin[1],
				bmin[2] + float32(ty)*tileSizeWorld - borderWorld,
			}
			tbmax := [3]float32{
				bmin[0] + float32(tx+1)*tileSizeWorld + borderWorld,
				bmax[1],
				bmin[2] + float32(ty+1)*tileSizeWorld + borderWorld,
			}

			res, err := buildTileGeometry(ctx, input, opts, tbmin, tbmax)
			if err != nil {
				return nil, fmt.Errorf("navgen: tile (%d,%d): %w", tx, ty, err)
			}

			key := tileKey{tx, ty}
			b.results[key] = res
			b.bounds[key] = [2][3]float32{tbmin, tbmax}

			if res.pmesh == nil || res.pmesh.NPolys == 0 {
				continue
			}

			data, err := packTile(res, input, opts, tx, ty)
			if err != nil {
				return nil, fmt.Errorf("navgen: tile (%d,%d): %w", tx, ty, err)
			}

			if st, _ := mesh.AddTile(data, 0); navmesh.StatusFailed(st) {
				return nil, fmt.Errorf("navgen: could not add tile (%d,%d): %v", tx, ty, st)
			}
		}
	}

	return b, nil
}
