package megdr

import (
	"fmt"
	"testing"
)

// Benchmark R-tree point lookups vs linear scan over a full 128 ppd grid.

// globalGrid returns tiles covering the planet in 22°x30° cells.
func globalGrid() []Tile {
	var tiles []Tile
	for lat := -88.0; lat < 88.0; lat += 22 {
		for lon := 0.0; lon < 360.0; lon += 30 {
			id := fmt.Sprintf("megt%02.0fn%03.0fhb.lbl", lat+88, lon)
			tiles = append(tiles, newTile(id, 128, RegionEquatorial, lat, lat+22, lon, lon+30))
		}
	}
	return tiles
}

func BenchmarkCovering_Rtree(b *testing.B) {
	idx := BuildIndex(globalGrid())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = idx.Covering(18.4446, 77.4509)
	}
}

func BenchmarkCovering_Linear(b *testing.B) {
	tiles := globalGrid()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var hits []Tile
		for _, t := range tiles {
			if bb, ok := t.GeoBounds(); ok && bb.Contains(18.4446, 77.4509) {
				hits = append(hits, t)
			}
		}
		_ = hits
	}
}

func BenchmarkDetectOverlaps(b *testing.B) {
	high := globalGrid()
	low := globalGrid()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = DetectOverlaps(high, low)
	}
}
