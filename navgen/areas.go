package navgen

import (
	"github.com/arl/math32"

	"github.com/isaac-mason/navcat-sub003/geom"
	"github.com/isaac-mason/navcat-sub003/navbuild"
)

// markBoxArea stamps area onto every compact span whose column centre lies
// within the axis-aligned box [bmin, bmax] (xz) and whose floor falls inside
// [bmin.y, bmax.y].
func markBoxArea(chf *navbuild.CompactHeightfield, bmin, bmax [3]float32, area uint8) {
	minx := int32((bmin[0] - chf.BMin[0]) / chf.Cs)
	miny := int32((bmin[1] - chf.BMin[1]) / chf.Ch)
	minz := int32((bmin[2] - chf.BMin[2]) / chf.Cs)
	maxx := int32((bmax[0] - chf.BMin[0]) / chf.Cs)
	maxy := int32((bmax[1] - chf.BMin[1]) / chf.Ch)
	maxz := int32((bmax[2] - chf.BMin[2]) / chf.Cs)

	minx, maxx = clampRangeI32(minx, maxx, 0, chf.Width-1)
	minz, maxz = clampRangeI32(minz, maxz, 0, chf.Height-1)

	for z := minz; z <= maxz; z++ {
		for x := minx; x <= maxx; x++ {
			c := &chf.Cells[x+z*chf.Width]
			for i := int32(c.Index); i < int32(c.Index)+int32(c.Count); i++ {
				s := &chf.Spans[i]
				if int32(s.Y) >= miny && int32(s.Y) <= maxy {
					chf.Areas[i] = area
				}
			}
		}
	}
}

// markRotatedBoxArea is markBoxArea for a box rotated by angle (radians)
// around its centre on the xz-plane: halfExtents is the box's half-size
// along its own (rotated) x/z axes, centre its world-space centre, and
// ymin/ymax its vertical extent in world units.
func markRotatedBoxArea(chf *navbuild.CompactHeightfield, centre [3]float32, halfExtents [2]float32, angle, ymin, ymax float32, area uint8) {
	cosA := math32.Cos(angle)
	sinA := math32.Sin(angle)

	hx, hz := halfExtents[0], halfExtents[1]
	corners := [4][2]float32{{-hx, -hz}, {hx, -hz}, {hx, hz}, {-hx, hz}}

	var bminx, bmaxx, bminz, bmaxz float32 = 1e30, -1e30, 1e30, -1e30
	for _, c := range corners {
		wx := centre[0] + c[0]*cosA - c[1]*sinA
		wz := centre[2] + c[0]*sinA + c[1]*cosA
		if wx < bminx {
			bminx = wx
		}
		if wx > bmaxx {
			bmaxx = wx
		}
		if wz < bminz {
			bminz = wz
		}
		if wz > bmaxz {
			bmaxz = wz
		}
	}

	minx := int32((bminx - chf.BMin[0]) / chf.Cs)
	maxx := int32((bmaxx - chf.BMin[0]) / chf.Cs)
	minz := int32((bminz - chf.BMin[2]) / chf.Cs)
	maxz := int32((bmaxz - chf.BMin[2]) / chf.Cs)
	miny := int32((ymin - chf.BMin[1]) / chf.Ch)
	maxy := int32((ymax - chf.BMin[1]) / chf.Ch)

	minx, maxx = clampRangeI32(minx, maxx, 0, chf.Width-1)
	minz, maxz = clampRangeI32(minz, maxz, 0, chf.Height-1)

	// Inverse rotation brings a world xz point back into box-local space,
	// where the point-in-box test is a trivial half-extent compare.
	for z := minz; z <= maxz; z++ {
		for x := minx; x <= maxx; x++ {
			wx := chf.BMin[0] + (float32(x)+0.5)*chf.Cs
			wz := chf.BMin[2] + (float32(z)+0.5)*chf.Cs
			lx := (wx-centre[0])*cosA + (wz-centre[2])*sinA
			lz := -(wx-centre[0])*sinA + (wz-centre[2])*cosA
			if lx < -hx || lx > hx || lz < -hz || lz > hz {
				continue
			}

			c := &chf.Cells[x+z*chf.Width]
			for i := int32(c.Index); i < int32(c.Index)+int32(c.Count); i++ {
				s := &chf.Spans[i]
				if int32(s.Y) >= miny && int32(s.Y) <= maxy {
					chf.Areas[i] = area
				}
			}
		}
	}
}

// markCylinderArea stamps area onto every compact span whose column centre
// lies within radius of (pos.x, pos.z) and whose floor lies in
// [pos.y, pos.y+height].
func markCylinderArea(chf *navbuild.CompactHeightfield, pos [3]float32, radius, height float32, area uint8) {
	bmin := [3]float32{pos[0] - radius, pos[1], pos[2] - radius}
	bmax := [3]float32{pos[0] + radius, pos[1] + height, pos[2] + radius}
	r2 := radius * radius

	minx := int32((bmin[0] - chf.BMin[0]) / chf.Cs)
	miny := int32((bmin[1] - chf.BMin[1]) / chf.Ch)
	minz := int32((bmin[2] - chf.BMin[2]) / chf.Cs)
	maxx := int32((bmax[0] - chf.BMin[0]) / chf.Cs)
	maxy := int32((bmax[1] - chf.BMin[1]) / chf.Ch)
	maxz := int32((bmax[2] - chf.BMin[2]) / chf.Cs)

	minx, maxx = clampRangeI32(minx, maxx, 0, chf.Width-1)
	minz, maxz = clampRangeI32(minz, maxz, 0, chf.Height-1)

	for z := minz; z <= maxz; z++ {
		for x := minx; x <= maxx; x++ {
			wx := chf.BMin[0] + (float32(x)+0.5)*chf.Cs
			wz := chf.BMin[2] + (float32(z)+0.5)*chf.Cs
			dx := wx - pos[0]
			dz := wz - pos[2]
			if dx*dx+dz*dz > r2 {
				continue
			}

			c := &chf.Cells[x+z*chf.Width]
			for i := int32(c.Index); i < int32(c.Index)+int32(c.Count); i++ {
				s := &chf.Spans[i]
				if int32(s.Y) >= miny && int32(s.Y) <= maxy {
					chf.Areas[i] = area
				}
			}
		}
	}
}

// markConvexPolyArea stamps area onto every compact span whose column centre
// lies inside the convex xz polygon vol.Verts and whose floor lies within
// [vol.HMin, vol.HMax].
func markConvexPolyArea(chf *navbuild.CompactHeightfield, vol geom.ConvexVolume) {
	var bminx, bmaxx, bminz, bmaxz float32 = 1e30, -1e30, 1e30, -1e30
	for _, v := range vol.Verts {
		if v[0] < bminx {
			bminx = v[0]
		}
		if v[0] > bmaxx {
			bmaxx = v[0]
		}
		if v[2] < bminz {
			bminz = v[2]
		}
		if v[2] > bmaxz {
			bmaxz = v[2]
		}
	}

	minx := int32((bminx - chf.BMin[0]) / chf.Cs)
	maxx := int32((bmaxx - chf.BMin[0]) / chf.Cs)
	minz := int32((bminz - chf.BMin[2]) / chf.Cs)
	maxz := int32((bmaxz - chf.BMin[2]) / chf.Cs)
	miny := int32((vol.HMin - chf.BMin[1]) / chf.Ch)
	maxy := int32((vol.HMax - chf.BMin[1]) / chf.Ch)

	minx, maxx = clampRangeI32(minx, maxx, 0, chf.Width-1)
	minz, maxz = clampRangeI32(minz, maxz, 0, chf.Height-1)

	for z := minz; z <= maxz; z++ {
		for x := minx; x <= maxx; x++ {
			wx := chf.BMin[0] + (float32(x)+0.5)*chf.Cs
			wz := chf.BMin[2] + (float32(z)+0.5)*chf.Cs
			if !pointInConvexXZ(wx, wz, vol.Verts) {
				continue
			}

			c := &chf.Cells[x+z*chf.Width]
			for i := int32(c.Index); i < int32(c.Index)+int32(c.Count); i++ {
				s := &chf.Spans[i]
				if int32(s.Y) >= miny && int32(s.Y) <= maxy {
					chf.Areas[i] = area
				}
			}
		}
	}
}

func pointInConvexXZ(px, pz float32, verts [][3]float32) bool {
	inside := false
	nv := len(verts)
	for i, j := 0, nv-1; i < nv; j, i = i, i+1 {
		vi, vj := verts[i], verts[j]
		if ((vi[2] > pz) != (vj[2] > pz)) &&
			(px < (vj[0]-vi[0])*(pz-vi[2])/(vj[2]-vi[2])+vi[0]) {
			inside = !inside
		}
	}
	return inside
}

func clampRangeI32(lo, hi, min, max int32) (int32, int32) {
	if lo < min {
		lo = min
	}
	if hi > max {
		hi = max
	}
	return lo, hi
}
