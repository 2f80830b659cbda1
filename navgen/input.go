package navgen

import "github.com/isaac-mason/navcat-sub003/geom"

// Input is the source geometry and scene markup handed to GenerateSoloNavMesh
// / GenerateTiledNavMesh: a triangle soup plus the area volumes and off-mesh
// connections an author has stamped onto it.
type Input struct {
	Mesh *geom.Mesh

	// ConvexVolumes mark zones of a non-default area id (water, roads, ...).
	// They are applied after the compact heightfield is built and before
	// erosion, so the radius-based shrink still takes volume boundaries
	// into account.
	ConvexVolumes []geom.ConvexVolume

	// OffMeshConnections are user-authored links grafted onto the tile(s)
	// after polygon construction.
	OffMeshConnections []geom.OffMeshConnectionDef
}
