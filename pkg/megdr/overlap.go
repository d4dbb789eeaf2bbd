package megdr

import (
	"sort"
)

// Overlap describes where a lower-resolution tile overlaps a higher one.
type Overlap struct {
	Low    Tile
	Area   float64 // Square degrees, 0 for tiles sharing only an edge
	Bounds Bounds  // Overlap rectangle: latitude and longitude ranges
}

// TileOverlaps lists the lower-resolution tiles overlapping one tile.
type TileOverlaps struct {
	High     Tile
	Overlaps []Overlap // Largest area first
}

// TierComparison holds overlaps between two adjacent resolution tiers.
type TierComparison struct {
	High    int // Pixels per degree of the finer tier
	Low     int // Pixels per degree of the next coarser tier
	Results []TileOverlaps
}

// DetectOverlaps compares every tile of high against every tile of low.
//
// Only tiles with all four bounds take part. Edges are inclusive, so tiles
// that merely touch are reported with zero area. For each high tile the
// overlaps are sorted by area, largest first; equal areas keep the order of
// low. High tiles without any overlap are omitted.
func DetectOverlaps(high, low []Tile) []TileOverlaps {
	var result []TileOverlaps

	for _, h := range high {
		hb, ok := h.GeoBounds()
		if !ok {
			continue
		}

		var overlaps []Overlap
		for _, l := range low {
			lb, ok := l.GeoBounds()
			if !ok {
				continue
			}
			inter, ok := hb.Intersection(lb)
			if !ok {
				continue
			}
			overlaps = append(overlaps, Overlap{
				Low:    l,
				Area:   (inter.MaxLat - inter.MinLat) * (inter.MaxLon - inter.MinLon),
				Bounds: inter,
			})
		}
		if len(overlaps) == 0 {
			continue
		}

		sort.SliceStable(overlaps, func(i, j int) bool {
			return overlaps[i].Area > overlaps[j].Area
		})
		result = append(result, TileOverlaps{High: h, Overlaps: overlaps})
	}

	return result
}

// CompareTiers runs DetectOverlaps between each pair of adjacent resolution
// tiers, highest resolution first. Tiles of unknown resolution are not
// compared. Fewer than two tiers yields nil.
//
// Example:
//
//	for _, cmp := range megdr.CompareTiers(set) {
//	    fmt.Printf("%d ppd vs %d ppd: %d tiles overlap\n", cmp.High, cmp.Low, len(cmp.Results))
//	}
func CompareTiers(set *TileSet) []TierComparison {
	resolutions := set.Resolutions()
	if len(resolutions) < 2 {
		return nil
	}

	result := make([]TierComparison, 0, len(resolutions)-1)
	for i := 0; i+1 < len(resolutions); i++ {
		high, low := resolutions[i], resolutions[i+1]
		result = append(result, TierComparison{
			High:    high,
			Low:     low,
			Results: DetectOverlaps(set.Tier(high), set.Tier(low)),
		})
	}
	return result
}
