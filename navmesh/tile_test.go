package navmesh

import (
	"testing"

	"github.com/arl/gogeo/f32/d3"
)

func TestFindNearestPolyInTile(t *testing.T) {
	mesh := newTwoPolyNavMesh(t)

	tests := []struct {
		pt   d3.Vec3
		ext  d3.Vec3
		want PolyRef
	}{
		{d3.Vec3{5, 0, 5}, d3.Vec3{1, 1, 1}, mesh.polyRefBase(&mesh.Tiles[0])},
		{d3.Vec3{15, 0, 5}, d3.Vec3{1, 1, 1}, mesh.polyRefBase(&mesh.Tiles[0]) | 1},
	}

	for _, tt := range tests {
		tx, ty := mesh.CalcTileLoc(tt.pt)
		tile := mesh.TileAt(tx, ty, 0)
		if tile == nil {
			t.Fatalf("couldn't retrieve tile at point %v", tt.pt)
		}

		nearestPt := d3.NewVec3()
		got := mesh.FindNearestPolyInTile(tile, tt.pt, tt.ext, nearestPt)
		if got != tt.want {
			t.Errorf("got polyref 0x%x for pt:%v ext:%v, want 0x%x", got, tt.pt, tt.ext, tt.want)
		}
	}
}
