package geom

// ConvexVolume marks an area of the source geometry with a non-default area
// id — used to flag water, roads, or other zones with a different
// traversal cost than the surrounding terrain.
//
// The volume is a vertical prism: a convex polygon in the xz-plane extruded
// from HMin to HMax.
type ConvexVolume struct {
	Verts      [][3]float32 // convex polygon, xz-plane, at most MaxConvexVolPts
	HMin, HMax float32
	Area       uint8
}

// OffMeshConnectionDef describes a user-authored link between two points on
// the navigation mesh that isn't reachable by walking the surface — a
// jump, a ladder, a teleporter.
type OffMeshConnectionDef struct {
	Start, End [3]float32
	Radius     float32
	Bidir      bool
	Area       uint8
	Flags      uint16
	UserID     uint32
}
