package navbuild

import "testing"

// buildFlatHeightfield rasterizes a single size x size walkable quad at y=0
// into a fresh heightfield, the minimal fixture every compact-heightfield /
// distance-field test in this file starts from.
func buildFlatHeightfield(t *testing.T, size float32, cs, ch float32) *Heightfield {
	t.Helper()

	verts := []float32{
		0, 0, 0,
		size, 0, 0,
		size, 0, size,
		0, 0, size,
	}
	tris := []int32{0, 2, 1, 0, 3, 2}
	nv, nt := int32(4), int32(2)

	var bmin, bmax [3]float32
	CalcBounds(verts, nv, bmin[:], bmax[:])

	w, h := CalcGridSize(bmin, bmax, cs)

	hf := NewHeightfield()
	if !hf.Create(nil, w, h, bmin[:], bmax[:], cs, ch) {
		t.Fatalf("hf.Create failed")
	}

	areas := []uint8{NullArea, NullArea}
	MarkWalkableTriangles(nil, 45, verts, nv, tris, nt, areas)
	if !RasterizeTriangles(nil, verts, nv, tris, areas, nt, hf, 2) {
		t.Fatalf("RasterizeTriangles failed")
	}
	return hf
}

func TestBuildCompactHeightfield(t *testing.T) {
	hf := buildFlatHeightfield(t, 4, 0.5, 0.2)

	ctx := NewBuildContext(false)
	chf, ok := BuildCompactHeightfield(ctx, 10, 2, hf)
	if !ok {
		t.Fatalf("BuildCompactHeightfield returned ok=false")
	}
	if chf.Width != hf.Width || chf.Height != hf.Height {
		t.Fatalf("chf dims %dx%d do not match hf dims %dx%d", chf.Width, chf.Height, hf.Width, hf.Height)
	}
	if chf.SpanCount == 0 {
		t.Fatalf("expected at least one compact span over a walkable quad")
	}

	// every span over the flat quad should see all 4 neighbours connected,
	// except at the grid border.
	for y := int32(0); y < chf.Height; y++ {
		for x := int32(0); x < chf.Width; x++ {
			c := chf.Cells[x+y*chf.Width]
			for i := int32(c.Index); i < int32(c.Index)+int32(c.Count); i++ {
				s := chf.Spans[i]
				for dir := int32(0); dir < 4; dir++ {
					nx := x + GetDirOffsetX(dir)
					ny := y + GetDirOffsetY(dir)
					con := GetCon(&s, dir)
					interior := nx >= 0 && ny >= 0 && nx < chf.Width && ny < chf.Height
					if interior && con == NotConnected {
						t.Fatalf("span at (%d,%d) missing interior connection in dir %d", x, y, dir)
					}
				}
			}
		}
	}
}

func TestBuildDistanceField(t *testing.T) {
	hf := buildFlatHeightfield(t, 6, 0.5, 0.2)

	ctx := NewBuildContext(false)
	chf, ok := BuildCompactHeightfield(ctx, 10, 2, hf)
	if !ok {
		t.Fatalf("BuildCompactHeightfield returned ok=false")
	}

	if !BuildDistanceField(ctx, chf) {
		t.Fatalf("BuildDistanceField returned false")
	}
	if chf.MaxDistance == 0 {
		t.Fatalf("expected a non-zero max distance over an interior quad")
	}
	if len(chf.Dist) != int(chf.SpanCount) {
		t.Fatalf("chf.Dist length %d does not match span count %d", len(chf.Dist), chf.SpanCount)
	}

	// the centremost span should have a strictly larger distance-to-border
	// than a span on the grid's edge row.
	cx, cz := chf.Width/2, chf.Height/2
	centre := chf.Cells[cx+cz*chf.Width]
	if centre.Count == 0 {
		t.Fatalf("expected a span at the grid centre")
	}
	centreDist := chf.Dist[centre.Index]

	edge := chf.Cells[0]
	if edge.Count > 0 {
		if chf.Dist[edge.Index] >= centreDist {
			t.Fatalf("border span dist %d should be smaller than centre dist %d", chf.Dist[edge.Index], centreDist)
		}
	}
}
