package navbuild

import "github.com/arl/assertgo"

// BuildDistanceField computes, for every span in chf, its distance to the
// nearest boundary span, and records it in CompactHeightfield.Dist. A
// boundary span is one with fewer than four connected neighbours sharing its
// area id. Distances are in half-cell units: a cardinal step adds 2.
//
// The distance is a Chamfer approximation: two 3x3 sweeps over the grid
// (forward and backward) propagate a running minimum using weight 2 for
// cardinal neighbours and weight 3 for diagonal ones, which for unit cells
// approximates Euclidean distance closely enough for region partitioning.
// The raw distances are then smoothed with a single box-blur pass to reduce
// the staircasing the sweeps leave along diagonal boundaries.
//
// Call after BuildCompactHeightfield (and any area marking / erosion), and
// before BuildRegions or BuildRegionsMonotone: both consume chf.Dist.
//
// see CompactHeightfield, BuildRegions, BuildRegionsMonotone
func BuildDistanceField(ctx *BuildContext, chf *CompactHeightfield) bool {
	assert.True(ctx != nil, "ctx should not be nil")

	ctx.StartTimer(TimerBuildDistanceField)
	defer ctx.StopTimer(TimerBuildDistanceField)

	src := make([]uint16, chf.SpanCount)

	ctx.StartTimer(TimerBuildDistanceFieldDist)
	maxDist := calculateDistanceField(chf, src)
	ctx.StopTimer(TimerBuildDistanceFieldDist)

	ctx.StartTimer(TimerBuildDistanceFieldBlur)
	dst := boxBlur(chf, 1, src, make([]uint16, chf.SpanCount))
	ctx.StopTimer(TimerBuildDistanceFieldBlur)

	chf.Dist = dst
	chf.MaxDistance = maxDist

	return true
}

func calculateDistanceField(chf *CompactHeightfield, src []uint16) uint16 {
	w := chf.Width
	h := chf.Height

	for i := range src {
		src[i] = 0xffff
	}

	// Mark boundary cells: spans with fewer than four connected neighbours
	// of the same area id start at distance 0.
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			c := &chf.Cells[x+y*w]
			for i := int32(c.Index); i < int32(c.Index)+int32(c.Count); i++ {
				s := &chf.Spans[i]
				area := chf.Areas[i]

				nc := int32(0)
				for dir := int32(0); dir < 4; dir++ {
					if GetCon(s, dir) != NotConnected {
						nx := x + GetDirOffsetX(dir)
						ny := y + GetDirOffsetY(dir)
						nidx := int32(chf.Cells[nx+ny*w].Index) + GetCon(s, dir)
						if chf.Areas[nidx] == area {
							nc++
						}
					}
				}
				if nc != 4 {
					src[i] = 0
				}
			}
		}
	}

	// Pass 1: sweep top-left to bottom-right.
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			c := &chf.Cells[x+y*w]
			for i := int32(c.Index); i < int32(c.Index)+int32(c.Count); i++ {
				s := &chf.Spans[i]

				if GetCon(s, 0) != NotConnected {
					// (-1,0)
					ax := x + GetDirOffsetX(0)
					ay := y + GetDirOffsetY(0)
					ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, 0)
					as := &chf.Spans[ai]
					if nd := src[ai] + 2; nd < src[i] {
						src[i] = nd
					}

					// (-1,-1)
					if GetCon(as, 3) != NotConnected {
						aax := ax + GetDirOffsetX(3)
						aay := ay + GetDirOffsetY(3)
						aai := int32(chf.Cells[aax+aay*w].Index) + GetCon(as, 3)
						if nd := src[aai] + 3; nd < src[i] {
							src[i] = nd
						}
					}
				}
				if GetCon(s, 3) != NotConnected {
					// (0,-1)
					ax := x + GetDirOffsetX(3)
					ay := y + GetDirOffsetY(3)
					ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, 3)
					as := &chf.Spans[ai]
					if nd := src[ai] + 2; nd < src[i] {
						src[i] = nd
					}

					// (1,-1)
					if GetCon(as, 2) != NotConnected {
						aax := ax + GetDirOffsetX(2)
						aay := ay + GetDirOffsetY(2)
						aai := int32(chf.Cells[aax+aay*w].Index) + GetCon(as, 2)
						if nd := src[aai] + 3; nd < src[i] {
							src[i] = nd
						}
					}
				}
			}
		}
	}

	// Pass 2: sweep bottom-right to top-left.
	for y := h - 1; y >= 0; y-- {
		for x := w - 1; x >= 0; x-- {
			c := &chf.Cells[x+y*w]
			for i := int32(c.Index); i < int32(c.Index)+int32(c.Count); i++ {
				s := &chf.Spans[i]

				if GetCon(s, 2) != NotConnected {
					// (1,0)
					ax := x + GetDirOffsetX(2)
					ay := y + GetDirOffsetY(2)
					ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, 2)
					as := &chf.Spans[ai]
					if nd := src[ai] + 2; nd < src[i] {
						src[i] = nd
					}

					// (1,1)
					if GetCon(as, 1) != NotConnected {
						aax := ax + GetDirOffsetX(1)
						aay := ay + GetDirOffsetY(1)
						aai := int32(chf.Cells[aax+aay*w].Index) + GetCon(as, 1)
						if nd := src[aai] + 3; nd < src[i] {
							src[i] = nd
						}
					}
				}
				if GetCon(s, 1) != NotConnected {
					// (0,1)
					ax := x + GetDirOffsetX(1)
					ay := y + GetDirOffsetY(1)
					ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, 1)
					as := &chf.Spans[ai]
					if nd := src[ai] + 2; nd < src[i] {
						src[i] = nd
					}

					// (-1,1)
					if GetCon(as, 0) != NotConnected {
						aax := ax + GetDirOffsetX(0)
						aay := ay + GetDirOffsetY(0)
						aai := int32(chf.Cells[aax+aay*w].Index) + GetCon(as, 0)
						if nd := src[aai] + 3; nd < src[i] {
							src[i] = nd
						}
					}
				}
			}
		}
	}

	maxDist := uint16(0)
	for _, d := range src {
		if d > maxDist {
			maxDist = d
		}
	}
	return maxDist
}

func boxBlur(chf *CompactHeightfield, thr int32, src, dst []uint16) []uint16 {
	w := chf.Width
	h := chf.Height

	thr *= 2

	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			c := &chf.Cells[x+y*w]
			for i := int32(c.Index); i < int32(c.Index)+int32(c.Count); i++ {
				cd := src[i]
				if int32(cd) <= thr {
					dst[i] = cd
					continue
				}

				s := &chf.Spans[i]
				d := int32(cd)
				for dir := int32(0); dir < 4; dir++ {
					if GetCon(s, dir) != NotConnected {
						ax := x + GetDirOffsetX(dir)
						ay := y + GetDirOffsetY(dir)
						ai := int32(chf.Cells[ax+ay*w].Index) + GetCon(s, dir)
						d += int32(src[ai])

						as := &chf.Spans[ai]
						dir2 := (dir + 1) & 0x3
						if GetCon(as, dir2) != NotConnected {
							ax2 := ax + GetDirOffsetX(dir2)
							ay2 := ay + GetDirOffsetY(dir2)
							ai2 := int32(chf.Cells[ax2+ay2*w].Index) + GetCon(as, dir2)
							d += int32(src[ai2])
						} else {
							d += int32(cd)
						}
					} else {
						d += int32(cd) * 2
					}
				}
				dst[i] = uint16((d + 5) / 9)
			}
		}
	}
	return dst
}
