package navbuild

import "github.com/arl/assertgo"

// BuildCompactHeightfield rebinds a heightfield's spans into a compact,
// cache-friendly representation and computes the 4-neighbour connectivity
// between walkable spans.
//
// Only spans whose open space above them is at least walkableHeight voxels
// tall are kept; all others are dropped from the compact representation
// entirely; there's no walkable span there, by definition.
//
// Neighbour connections are only established between two spans whose floors
// differ by no more than walkableClimb voxels, and whose shared open space
// is at least walkableHeight voxels tall. A missing connection in a
// direction is recorded as NotConnected.
//
// see Heightfield, CompactHeightfield
func BuildCompactHeightfield(ctx *BuildContext, walkableHeight, walkableClimb int32, hf *Heightfield) (*CompactHeightfield, bool) {
	assert.True(ctx != nil, "ctx should not be nil")

	ctx.StartTimer(TimerBuildCompactHeightfield)
	defer ctx.StopTimer(TimerBuildCompactHeightfield)

	w := hf.Width
	h := hf.Height

	spanCount := getHeightFieldSpanCount(hf)

	chf := &CompactHeightfield{
		Width:          w,
		Height:         h,
		SpanCount:      spanCount,
		WalkableHeight: walkableHeight,
		WalkableClimb:  walkableClimb,
		MaxRegions:     0,
		BMin:           hf.BMin,
		BMax:           hf.BMax,
		Cs:             hf.Cs,
		Ch:             hf.Ch,
	}
	chf.BMax[1] += float32(walkableHeight) * hf.Ch

	chf.Cells = make([]CompactCell, w*h)
	chf.Spans = make([]CompactSpan, spanCount)
	chf.Areas = make([]uint8, spanCount)

	const maxHeight = 0xffff

	// Fill in cells and spans.
	idx := uint32(0)
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			s := hf.Spans[x+y*w]
			if s == nil {
				continue
			}

			c := &chf.Cells[x+y*w]
			c.Index = idx
			c.Count = 0

			for s != nil {
				if s.area != NullArea {
					bot := int32(s.smax)
					top := int32(maxHeight)
					if s.next != nil {
						top = int32(s.next.smin)
					}
					if top-bot >= walkableHeight {
						chf.Spans[idx].Y = uint16(clampU16(bot, 0, maxHeight))
						chf.Spans[idx].H = uint8(clampU16(top-bot, 0, 255))
						chf.Areas[idx] = s.area
						idx++
						c.Count++
					}
				}
				s = s.next
			}
		}
	}

	// Spans with too little clearance were skipped above.
	chf.SpanCount = int32(idx)
	chf.Spans = chf.Spans[:idx]
	chf.Areas = chf.Areas[:idx]

	// Find neighbour connections.
	maxLayers := NotConnected - 1
	tooHighNeighbour := int32(0)
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			c := &chf.Cells[x+y*w]
			for i := int32(c.Index); i < int32(c.Index)+int32(c.Count); i++ {
				s := &chf.Spans[i]

				for dir := int32(0); dir < 4; dir++ {
					SetCon(s, dir, NotConnected)
					nx := x + GetDirOffsetX(dir)
					ny := y + GetDirOffsetY(dir)

					// First check that the neighbour cell is in bounds.
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}

					// Iterate over all neighbour spans and check if any of
					// them is accessible from current cell.
					nc := &chf.Cells[nx+ny*w]
					for k := int32(nc.Index); k < int32(nc.Index)+int32(nc.Count); k++ {
						ns := &chf.Spans[k]
						bot := iMax(int32(s.Y), int32(ns.Y))
						top := iMin(int32(s.Y)+int32(s.H), int32(ns.Y)+int32(ns.H))

						// Check that the gap between the spans is walkable,
						// and that the climb height between the two spans
						// is not too high.
						if (top-bot) >= walkableHeight && iAbs(int32(ns.Y)-int32(s.Y)) <= walkableClimb {
							// Mark direction as walkable.
							lidx := k - int32(nc.Index)
							if lidx < 0 || lidx > maxLayers {
								tooHighNeighbour = iMax(tooHighNeighbour, lidx)
								continue
							}
							SetCon(s, dir, lidx)
							break
						}
					}
				}
			}
		}
	}

	if tooHighNeighbour > maxLayers {
		ctx.Errorf("BuildCompactHeightfield: Heightfield has too many layers %d (max: %d)", tooHighNeighbour, maxLayers)
	}

	return chf, true
}

func getHeightFieldSpanCount(hf *Heightfield) int32 {
	w := hf.Width
	h := hf.Height
	var spanCount int32
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			for s := hf.Spans[x+y*w]; s != nil; s = s.next {
				if s.area != NullArea {
					spanCount++
				}
			}
		}
	}
	return spanCount
}

func clampU16(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
