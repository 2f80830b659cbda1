package navmesh

import (
	"github.com/arl/gogeo/f32/d3"
	"github.com/arl/math32"
)

// pointInPolygon2D reports whether pt lies within the xz-projection of the
// polygon described by verts (nverts * 3 floats).
func pointInPolygon2D(pt d3.Vec3, verts []float32, nverts int) bool {
	var (
		c    bool
		i, j int
	)
	for i, j = 0, nverts-1; i < nverts; j, i = i, i+1 {
		vi := verts[i*3 : i*3+3]
		vj := verts[j*3 : j*3+3]
		if ((vi[2] > pt[2]) != (vj[2] > pt[2])) &&
			(pt[0] < (vj[0]-vi[0])*(pt[2]-vi[2])/(vj[2]-vi[2])+vi[0]) {
			c = !c
		}
	}
	return c
}

// randomPointInConvexPoly picks a point uniformly at random inside the
// convex polygon described by pts (nverts * 3 floats), given two random
// numbers s, t in [0,1). The polygon is triangulated as a fan from vertex
// 0; a triangle is chosen weighted by area, then a point is chosen
// uniformly within it.
func randomPointInConvexPoly(pts []float32, nverts int, s, t float32) d3.Vec3 {
	areas := make([]float32, nverts)
	var areaSum float32
	for i := 2; i < nverts; i++ {
		a := TriArea2D(pts[0:3], pts[(i-1)*3:(i-1)*3+3], pts[i*3:i*3+3])
		areas[i] = math32.Max(0.001, a)
		areaSum += areas[i]
	}

	thr := s * areaSum
	var acc float32
	u := float32(1.0)
	tri := nverts - 2
	for i := 2; i < nverts; i++ {
		dacc := areas[i]
		if thr >= acc && thr < acc+dacc {
			u = (thr - acc) / dacc
			tri = i
			break
		}
		acc += dacc
	}

	v := math32.Sqrt(t)
	a := 1 - v
	b := (1 - u) * v
	c := u * v

	pa := pts[0:3]
	pb := pts[(tri-1)*3 : (tri-1)*3+3]
	pc := pts[tri*3 : tri*3+3]

	out := d3.NewVec3()
	out[0] = a*pa[0] + b*pb[0] + c*pc[0]
	out[1] = a*pa[1] + b*pb[1] + c*pc[1]
	out[2] = a*pa[2] + b*pb[2] + c*pc[2]
	return out
}

// polyVerts copies the world-space vertices of poly (within tile) into a
// flat [VertsPerPolygon*3]float32 slice and returns how many vertices were
// written.
func polyVerts(tile *MeshTile, poly *Poly) ([]float32, int) {
	nv := int(poly.VertCount)
	verts := make([]float32, nv*3)
	for i := 0; i < nv; i++ {
		idx := poly.Verts[i] * 3
		copy(verts[i*3:i*3+3], tile.Verts[idx:idx+3])
	}
	return verts, nv
}

// MoveAlongSurface casts a "walk" from startPos towards endPos across the
// polygon surface starting at startRef, sliding along walls rather than
// crossing them. It returns the furthest reachable position and the chain
// of polygons visited along the way; it never leaves the navigation mesh,
// even when endPos lies outside of it.
//
// This method is optimized for small delta movement and a small number of
// polygons. If used for too great a distance, the result set is likely to
// form an incomplete path.
//
// The resulting position is not exactly constrained to the surface: it is
// the closest reachable point, but Y is not recomputed from the detail
// mesh. Callers that need an accurate height should follow up with
// findNearestPoly/closestPointOnPoly style height queries.
func (q *NavMeshQuery) MoveAlongSurface(
	startRef PolyRef, startPos, endPos d3.Vec3, filter QueryFilter,
	resultPos d3.Vec3, visited []PolyRef, maxVisitedSize int32) (visitedCount int32, st Status) {

	if !q.nav.IsValidPolyRef(startRef) || filter == nil || resultPos == nil {
		return 0, Failure | InvalidParam
	}

	q.tinyNodePool.Clear()

	startNode := q.tinyNodePool.Node(startRef, 0)
	startNode.PIdx = 0
	startNode.Cost = 0
	startNode.Total = 0
	startNode.ID = startRef
	startNode.Flags = nodeClosed

	const maxStack = 48
	var stack [maxStack]*Node
	nstack := 0
	stack[nstack] = startNode
	nstack++

	bestPos := d3.NewVec3From(startPos)
	bestDist := float32(math32.MaxFloat32)
	var bestNode *Node

	searchPos := startPos.Lerp(endPos, 0.5)
	searchRadSqr := math32.Sqr(startPos.Dist(endPos)/2.0 + 0.001)

	for nstack > 0 {
		// Pop front.
		curNode := stack[0]
		for i := 0; i < nstack-1; i++ {
			stack[i] = stack[i+1]
		}
		nstack--

		curRef := curNode.ID
		var curTile *MeshTile
		var curPoly *Poly
		q.nav.TileAndPolyByRefUnsafe(curRef, &curTile, &curPoly)

		verts, nverts := polyVerts(curTile, curPoly)

		if pointInPolygon2D(endPos, verts, nverts) {
			bestNode = curNode
			bestPos = d3.NewVec3From(endPos)
			break
		}

		const maxNeis = 8

		for j, i := nverts-1, 0; i < nverts; j, i = i, i+1 {
			var neis [maxNeis]PolyRef
			nneis := 0

			if (curPoly.Neis[j] & extLink) != 0 {
				// Tile border: walk the links for this edge.
				for k := curPoly.FirstLink; k != nullLink; k = curTile.Links[k].Next {
					link := &curTile.Links[k]
					if int(link.Edge) == j {
						if link.Ref != 0 {
							var neiTile *MeshTile
							var neiPoly *Poly
							q.nav.TileAndPolyByRefUnsafe(link.Ref, &neiTile, &neiPoly)
							if filter.PassFilter(link.Ref, neiTile, neiPoly) && nneis < maxNeis {
								neis[nneis] = link.Ref
								nneis++
							}
						}
					}
				}
			} else if curPoly.Neis[j] != 0 {
				idx := uint32(curPoly.Neis[j] - 1)
				ref := q.nav.polyRefBase(curTile) | PolyRef(idx)
				if filter.PassFilter(ref, curTile, &curTile.Polys[idx]) {
					neis[nneis] = ref
					nneis++
				}
			}

			if nneis == 0 {
				// Wall edge: track the closest point on it to endPos.
				vj := verts[j*3 : j*3+3]
				vi := verts[i*3 : i*3+3]
				distSqr, tseg := distancePtSegSqr2D(endPos, vj, vi)
				if distSqr < bestDist {
					bestPos = d3.NewVec3From(vj).Lerp(vi, tseg)
					bestDist = distSqr
					bestNode = curNode
				}
				continue
			}

			for k := 0; k < nneis; k++ {
				neighbourNode := q.tinyNodePool.Node(neis[k], 0)
				if neighbourNode == nil {
					continue
				}
				if (neighbourNode.Flags & nodeClosed) != 0 {
					continue
				}

				vj := verts[j*3 : j*3+3]
				vi := verts[i*3 : i*3+3]
				distSqr, tseg := distancePtSegSqr2D(searchPos, vj, vi)
				if distSqr > searchRadSqr {
					continue
				}

				if nstack < maxStack {
					neighbourNode.PIdx = q.tinyNodePool.NodeIdx(curNode)
					neighbourNode.Flags |= nodeClosed
					stack[nstack] = neighbourNode
					nstack++
				}
			}
		}
	}

	n := int32(0)
	if bestNode != nil {
		// Reverse the parent chain in place, then walk it to fill visited.
		var prev *Node
		node := bestNode
		for node != nil {
			next := q.tinyNodePool.NodeAtIdx(int32(node.PIdx))
			node.PIdx = q.tinyNodePool.NodeIdx(prev)
			prev = node
			node = next
		}

		node = prev
		for node != nil {
			if n >= maxVisitedSize {
				break
			}
			visited[n] = node.ID
			n++
			node = q.tinyNodePool.NodeAtIdx(int32(node.PIdx))
		}
	}

	resultPos.Assign(bestPos)
	return n, Success
}

// FindRandomPoint returns a random point on the navigation mesh, chosen
// uniformly over the surface area of polygons accepted by filter.
//
// frand must return a value uniformly distributed in [0,1).
func (q *NavMeshQuery) FindRandomPoint(filter QueryFilter, frand func() float32) (PolyRef, d3.Vec3, Status) {
	if filter == nil || frand == nil {
		return 0, nil, Failure | InvalidParam
	}

	// Reservoir-sample one tile. All tiles are given equal weight since
	// per-tile area isn't tracked separately from per-poly area.
	var tile *MeshTile
	var tsum float32
	for i := int32(0); i < int32(len(q.nav.Tiles)); i++ {
		t := &q.nav.Tiles[i]
		if t.Header == nil {
			continue
		}
		const area = float32(1.0)
		tsum += area
		if frand()*tsum <= area {
			tile = t
		}
	}
	if tile == nil {
		return 0, nil, Failure
	}

	var poly *Poly
	var polyRef PolyRef
	base := q.nav.polyRefBase(tile)
	var areaSum float32

	for i := int32(0); i < int32(tile.Header.PolyCount); i++ {
		p := &tile.Polys[i]
		if p.Type() != polyTypeGround {
			continue
		}
		ref := base | PolyRef(i)
		if !filter.PassFilter(ref, tile, p) {
			continue
		}

		var polyArea float32
		for j := 2; j < int(p.VertCount); j++ {
			va := tile.Verts[p.Verts[0]*3 : p.Verts[0]*3+3]
			vb := tile.Verts[p.Verts[j-1]*3 : p.Verts[j-1]*3+3]
			vc := tile.Verts[p.Verts[j]*3 : p.Verts[j]*3+3]
			polyArea += TriArea2D(va, vb, vc)
		}

		areaSum += polyArea
		if frand()*areaSum <= polyArea {
			poly = p
			polyRef = ref
		}
	}
	if poly == nil {
		return 0, nil, Failure
	}

	verts, nverts := polyVerts(tile, poly)
	pt := randomPointInConvexPoly(verts, nverts, frand(), frand())

	var closest d3.Vec3 = d3.NewVec3()
	if StatusFailed(q.closestPointOnPoly(polyRef, pt, closest, nil)) {
		return 0, nil, Failure | InvalidParam
	}
	pt[1] = closest[1]

	return polyRef, pt, Success
}

// FindRandomPointAroundCircle returns a random point within maxRadius of
// centerPos, reachable from startRef without leaving polygons accepted by
// filter. Polygons are discovered with a Dijkstra-style expansion bounded
// by maxRadius, then sampled uniformly by area, same as FindRandomPoint.
//
// frand must return a value uniformly distributed in [0,1).
func (q *NavMeshQuery) FindRandomPointAroundCircle(
	startRef PolyRef, centerPos d3.Vec3, maxRadius float32,
	filter QueryFilter, frand func() float32) (randomRef PolyRef, randomPt d3.Vec3, st Status) {

	if !q.nav.IsValidPolyRef(startRef) || filter == nil || frand == nil {
		return 0, nil, Failure | InvalidParam
	}

	var startTile *MeshTile
	var startPoly *Poly
	q.nav.TileAndPolyByRefUnsafe(startRef, &startTile, &startPoly)
	if !filter.PassFilter(startRef, startTile, startPoly) {
		return 0, nil, Failure | InvalidParam
	}

	q.nodePool.Clear()
	q.openList.clear()

	startNode := q.nodePool.Node(startRef, 0)
	startNode.Pos.Assign(centerPos)
	startNode.PIdx = 0
	startNode.Cost = 0
	startNode.Total = 0
	startNode.ID = startRef
	startNode.Flags = nodeOpen
	q.openList.push(startNode)

	st = Success

	radiusSqr := math32.Sqr(maxRadius)
	var areaSum float32

	var randomTile *MeshTile
	var randomPoly *Poly

	for !q.openList.empty() {
		bestNode := q.openList.pop()
		bestNode.Flags &= ^nodeOpen
		bestNode.Flags |= nodeClosed

		bestRef := bestNode.ID
		var bestTile *MeshTile
		var bestPoly *Poly
		q.nav.TileAndPolyByRefUnsafe(bestRef, &bestTile, &bestPoly)

		if bestPoly.Type() == polyTypeGround {
			var polyArea float32
			for j := 2; j < int(bestPoly.VertCount); j++ {
				va := bestTile.Verts[bestPoly.Verts[0]*3 : bestPoly.Verts[0]*3+3]
				vb := bestTile.Verts[bestPoly.Verts[j-1]*3 : bestPoly.Verts[j-1]*3+3]
				vc := bestTile.Verts[bestPoly.Verts[j]*3 : bestPoly.Verts[j]*3+3]
				polyArea += TriArea2D(va, vb, vc)
			}
			areaSum += polyArea
			if frand()*areaSum <= polyArea {
				randomTile = bestTile
				randomPoly = bestPoly
				randomRef = bestRef
			}
		}

		var parentRef PolyRef
		if bestNode.PIdx != 0 {
			parentRef = q.nodePool.NodeAtIdx(int32(bestNode.PIdx)).ID
		}

		for i := bestPoly.FirstLink; i != nullLink; i = bestTile.Links[i].Next {
			link := &bestTile.Links[i]
			neighbourRef := link.Ref
			if neighbourRef == 0 || neighbourRef == parentRef {
				continue
			}

			var neighbourTile *MeshTile
			var neighbourPoly *Poly
			q.nav.TileAndPolyByRefUnsafe(neighbourRef, &neighbourTile, &neighbourPoly)

			if !filter.PassFilter(neighbourRef, neighbourTile, neighbourPoly) {
				continue
			}

			va, vb := d3.NewVec3(), d3.NewVec3()
			if StatusFailed(q.portalPoints8(bestRef, bestPoly, bestTile, neighbourRef, neighbourPoly, neighbourTile, va, vb)) {
				continue
			}

			distSqr, tseg := distancePtSegSqr2D(centerPos, va, vb)
			if distSqr > radiusSqr {
				continue
			}

			neighbourNode := q.nodePool.Node(neighbourRef, 0)
			if neighbourNode == nil {
				st |= OutOfNodes
				continue
			}
			if (neighbourNode.Flags & nodeClosed) != 0 {
				continue
			}

			if neighbourNode.Flags == 0 {
				neighbourNode.Pos = va.Lerp(vb, 0.5)
			}

			total := bestNode.Total + bestNode.Pos.Dist(neighbourNode.Pos)
			if (neighbourNode.Flags&nodeOpen) != 0 && total >= neighbourNode.Total {
				continue
			}

			neighbourNode.ID = neighbourRef
			neighbourNode.Flags &= ^nodeClosed
			neighbourNode.PIdx = q.nodePool.NodeIdx(bestNode)
			neighbourNode.Total = total

			if (neighbourNode.Flags & nodeOpen) != 0 {
				q.openList.modify(neighbourNode)
			} else {
				neighbourNode.Flags |= nodeOpen
				q.openList.push(neighbourNode)
			}
		}
	}

	if randomPoly == nil {
		return 0, nil, Failure
	}

	verts, nverts := polyVerts(randomTile, randomPoly)
	pt := randomPointInConvexPoly(verts, nverts, frand(), frand())

	closest := d3.NewVec3()
	if StatusFailed(q.closestPointOnPoly(randomRef, pt, closest, nil)) {
		return 0, nil, Failure | InvalidParam
	}
	pt[1] = closest[1]

	return randomRef, pt, st
}
