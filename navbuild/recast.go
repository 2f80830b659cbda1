package navbuild

import (
	"github.com/arl/assertgo"
	"github.com/arl/gogeo/f32/d3"
	"github.com/arl/math32"
)

// Heighfield functions

// CalcBounds calculates the bounding box of an array of vertices.
// TODO: should return bmin, bmax
func CalcBounds(verts []float32, nv int32, bmin, bmax []float32) {
	assert.True(len(bmin) == 3 && len(bmax) == 3, "CalcBounds: bmin and bmax are not big enough")
	assert.True(len(verts) >= int(3*nv), "len(verts) should be at least equal to 3*nv")

	// Calculate bounding box.
	copy(bmin, verts[:3])
	copy(bmax, verts[:3])

	var v []float32
	for i := int32(1); i < nv; i++ {
		v = verts[i*3:]
		d3.Vec3Min(bmin, v)
		d3.Vec3Max(bmax, v)
	}
}

// CalcGridSize calculates the grid size based on the bounding box and grid cell
// size.

func CalcGridSize(bmin, bmax [3]float32, cs float32) (w, h int32) {
	w = int32((bmax[0]-bmin[0])/cs + 0.5)
	h = int32((bmax[2]-bmin[2])/cs + 0.5)
	return
}

func calcTriNormal(v0, v1, v2, norm d3.Vec3) {
	d3.Vec3Cross(norm, v1.Sub(v0), v2.Sub(v0))
	norm.Normalize()
}

// Sets the area id of all triangles with a slope below the specified value
// to #WalkableArea.
//  									[Limits: 0 <= value < 90] [Units: Degrees]

// 
// Only sets the area id's for the walkable triangles.  Does not alter the
// area id's for unwalkable triangles.
// 
// See the the corresponding builder documentation for more information on the configuration parameters.
// 
func MarkWalkableTriangles(ctx *BuildContext, walkableSlopeAngle float32,
	verts []float32, nv int32,
	tris []int32, nt int32,
	areas []uint8) {
	walkableThr := math32.Cos(walkableSlopeAngle / 180.0 * math32.Pi)

	var norm [3]float32
	for i := int32(0); i < nt; i++ {
		tri := tris[i*3:]
		calcTriNormal(verts[tri[0]*3:], verts[tri[1]*3:], verts[tri[2]*3:], norm[:])
		// Check if the face is walkable.
		if norm[1] > walkableThr {
			areas[i] = WalkableArea
		}
	}
}

// Sets the area id of all triangles with a slope greater than or equal to the specified value to #NullArea.
//  									[Limits: 0 <= value < 90] [Units: Degrees]
// 
// Only sets the area id's for the unwalkable triangles.  Does not alter the
// area id's for walkable triangles.
// 
// See the the corresponding builder documentation for more information on the configuration parameters.
// 
func ClearUnwalkableTriangles(ctx *BuildContext, walkableSlopeAngle float32,
	verts []float32, nv int32,
	tris []int32, nt int32,
	areas []uint8) {
	walkableThr := math32.Cos(walkableSlopeAngle / 180.0 * math32.Pi)

	var norm [3]float32

	for i := int32(0); i < nt; i++ {
		tri := tris[i*3:]
		calcTriNormal(verts[tri[0]*3:], verts[tri[1]*3:], verts[tri[2]*3:], norm[:])
		// Check if the face is walkable.
		if norm[1] <= walkableThr {
			areas[i] = NullArea
		}
	}
}

// Recast performance timer categories.
type TimerLabel int

const (
	// The total time of the build.
	TimerTotal = iota
	// A user-defined scratch timer, not assigned to any particular stage.
	TimerTemp
	// The time to rasterize the triangles.
	TimerRasterizeTriangles
	// The time to build the compact heightfield.
	TimerBuildCompactHeightfield
	// The total time to build the contours.
	TimerBuildContours
	// The time to trace the boundaries of the contours.
	TimerBuildContoursTrace
	// The time to simplify the contours.
	TimerBuildContoursSimplify
	// The time to filter ledge spans.
	TimerFilterBorder
	// The time to filter low height spans.
	TimerFilterWalkable
	// The time to apply the median filter.
	TimerMedianArea
	// The time to filter low obstacles.
	TimerFilterLowObstacles
	// The time to build the polygon mesh.
	TimerBuildPolyMesh
	// The time to merge polygon meshes.
	TimerMergePolyMesh
	// The time to erode the walkable area.
	TimerErodeArea
	// The time to mark a box area.
	TimerMarkBoxArea
	// The time to mark a cylinder area.
	TimerMarkCylinderArea
	// The time to mark a convex polygon area.
	TimerMarkConvexPolyArea
	// The total time to build the distance field.
	TimerBuildDistanceField
	// The time to build the distances of the distance field.
	TimerBuildDistanceFieldDist
	// The time to blur the distance field.
	TimerBuildDistanceFieldBlur
	// The total time to build the regions.
	TimerBuildRegions
	// The total time to apply the watershed algorithm.
	TimerBuildRegionsWatershed
	// The time to expand regions while applying the watershed algorithm.
	TimerBuildRegionsExpand
	// The time to flood regions while applying the watershed algorithm.
	TimerBuildRegionsFlood
	// The time to filter out small regions.
	TimerBuildRegionsFilter
	// The time to build heightfield layers.
	TimerBuildLayers
	// The time to build the polygon mesh detail.
	TimerBuildPolyMeshDetail
	// The time to merge polygon mesh details.
	TimerMergePolyMeshDetail
	// The maximum number of timers.  (Used for iterating timers.)
	MaxTimers
)

var (
	xOffset, yOffset [4]int32
)

func init() {
	xOffset = [4]int32{-1, 0, 1, 0}
	yOffset = [4]int32{0, 1, 0, -1}
}

// Sets the neighbor connection data for the specified direction.
func SetCon(s *CompactSpan, dir, i int32) {
	shift := uint32(uint32(dir * 6))
	con := uint32(s.Con)
	s.Con = (con ^ (0x3f << shift)) | ((uint32(i & 0x3f)) << shift)
}

// Gets neighbor connection data for the specified direction.
//  	or #NotConnected if there is no connection.
func GetCon(s *CompactSpan, dir int32) int32 {
	shift := uint32(dir * 6)
	return int32((s.Con >> shift) & 0x3f)
}

// Gets the standard width (x-axis) offset for the specified direction.
//  	in the direction.
func GetDirOffsetX(dir int32) int32 {
	return xOffset[dir&0x03]
}

// Gets the standard height (z-axis) offset for the specified direction.
//  	in the direction.
func GetDirOffsetY(dir int32) int32 {
	return yOffset[dir&0x03]
}

func iMin(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func iMax(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func iAbs(a int32) int32 {
	if a < 0 {
		return -a
	}
	return a
}
