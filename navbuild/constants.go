package navbuild

// Contour build flags.
//enum rcBuildContoursFlags
const (
	ContourTessWallEdges int32 = 0x01 ///< Tessellate solid (impassable) edges during contour simplification.
	ContourTessAreaEdges int32 = 0x02 ///< Tessellate edges between areas during contour simplification.
)

// Applied to the region id field of contour vertices in order to extract the region id.
// The region id field of a vertex may have several flags applied to it, so the
// field's value can't be used directly.
const contourRegMask int32 = 0xffff

// An value which indicates an invalid index within a mesh.
const MeshNullIdx uint16 = 0xffff

// Represents the null area.
// When a data element is given this value it is considered to no longer be
// assigned to a usable area (e.g. it is unwalkable).
const NullArea uint8 = 0
const nullArea uint8 = NullArea

// The default area id used to indicate a walkable polygon.
// This is also the maximum allowed area id, and the only non-null area id
// recognized by some steps in the build process.
const WalkableArea uint8 = 63

// The value returned by GetCon if the specified direction is not connected
// to another span (has no neighbor).
const NotConnected int32 = 0x3f
const notConnected int32 = NotConnected

// Flags applied to a contour vertex's region-id field.
//
// borderVertex marks a vertex that lies on the border of a tile or the
// input mesh; areaBorder marks a vertex that lies on the border between
// two area types; borderReg marks a region id as belonging to the
// surrounding border region, as opposed to a region built from walkable
// spans.
const (
	borderVertex int32  = 0x10000
	areaBorder   int32  = 0x20000
	borderReg    uint16 = 0x8000
)

// Number of buckets used by the vertex hash table built while welding
// polygon mesh vertices.
const vertexBucketCount int32 = 1 << 12