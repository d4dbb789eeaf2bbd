package megdr

import (
	"sort"
)

// MarsSurfaceSquareDegrees is the surface of Mars expressed in square degrees
// (about 144,798,500 km²). Coverage percentages are relative to it.
const MarsSurfaceSquareDegrees = 41252.96

// RegionCoverage is the coverage of one region at one resolution.
type RegionCoverage struct {
	Region  Region
	Area    float64 // Square degrees, tiles with missing bounds contribute 0
	Percent float64 // Area relative to MarsSurfaceSquareDegrees
	Tiles   []Tile  // All member tiles sorted by ID, including incomplete ones
}

// ResolutionCoverage groups region coverage for one resolution tier.
type ResolutionCoverage struct {
	Resolution int // 0 for tiles whose resolution is unknown
	TileCount  int
	Regions    []RegionCoverage
}

// Region returns the coverage entry of one region.
func (c ResolutionCoverage) Region(r Region) (RegionCoverage, bool) {
	for _, rc := range c.Regions {
		if rc.Region == r {
			return rc, true
		}
	}
	return RegionCoverage{}, false
}

// ComputeRegionCoverage sums tile area per resolution and region.
//
// Resolutions are ordered highest first with unknown last; regions follow
// report order. Tiles missing any bound add nothing to the area but remain
// listed.
func ComputeRegionCoverage(set *TileSet) []ResolutionCoverage {
	result := make([]ResolutionCoverage, 0, len(set.byResolution))

	for _, res := range set.AllResolutions() {
		rc := ResolutionCoverage{
			Resolution: res,
			TileCount:  len(set.byResolution[res]),
		}
		for _, region := range set.Regions(res) {
			rc.Regions = append(rc.Regions, regionCoverage(region, set.Group(res, region)))
		}
		result = append(result, rc)
	}

	return result
}

func regionCoverage(region Region, tiles []Tile) RegionCoverage {
	sort.SliceStable(tiles, func(i, j int) bool {
		return tiles[i].ID < tiles[j].ID
	})

	area := TotalArea(tiles)
	return RegionCoverage{
		Region:  region,
		Area:    area,
		Percent: SurfacePercent(area),
		Tiles:   tiles,
	}
}

// TotalArea sums the area of tiles with complete bounds.
func TotalArea(tiles []Tile) float64 {
	var total float64
	for _, t := range tiles {
		total += t.Area()
	}
	return total
}

// SurfacePercent converts square degrees to a percentage of the Martian surface.
func SurfacePercent(area float64) float64 {
	return area / MarsSurfaceSquareDegrees * 100
}
