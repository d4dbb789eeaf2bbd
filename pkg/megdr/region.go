package megdr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/beetlebugorg/megdr/internal/label"
)

// Region is the latitude band a tile belongs to.
//
// MEGDR tiles are grouped by band for coverage reporting: gaps are searched
// along longitude inside one band, and area is summed per band.
type Region string

// Canonical regions in report order.
const (
	RegionEquatorial     Region = "Equatorial"
	RegionMidNorth       Region = "Mid-North"
	RegionMidSouth       Region = "Mid-South"
	RegionNearPolarNorth Region = "Near-Polar North"
	RegionNearPolarSouth Region = "Near-Polar South"
	RegionNorthPolar     Region = "North Polar"
	RegionSouthPolar     Region = "South Polar"
	RegionUnknown        Region = "Unknown"
)

var canonicalRegions = []Region{
	RegionEquatorial,
	RegionMidNorth,
	RegionMidSouth,
	RegionNearPolarNorth,
	RegionNearPolarSouth,
	RegionNorthPolar,
	RegionSouthPolar,
}

// IsPolar reports whether the region is a polar or near-polar band.
//
// Polar coverage is not a simple longitude interval, so these bands are
// exempt from longitude gap detection.
func (r Region) IsPolar() bool {
	return strings.Contains(string(r), "Polar")
}

// ClassifyRegion derives the region from a MEGDR product name.
//
// Examples:
//
//	megt_n_512_1.lbl  -> North Polar
//	megt00n000hb.lbl  -> Equatorial
//	megt44s090hb.lbl  -> Mid-South
//	megt88n180hb.lbl  -> Near-Polar North
//	megt22n000hb.lbl  -> 22° North
func ClassifyRegion(filename string) Region {
	parts := label.ParseName(filename)
	if !parts.Recognized {
		return RegionUnknown
	}

	hemisphere := "South"
	if parts.North {
		hemisphere = "North"
	}

	if parts.Polar {
		return Region(hemisphere + " Polar")
	}

	switch parts.LatBand {
	case 0:
		return RegionEquatorial
	case 44:
		return Region("Mid-" + hemisphere)
	case 88:
		return Region("Near-Polar " + hemisphere)
	}
	return Region(fmt.Sprintf("%d° %s", parts.LatBand, hemisphere))
}

// regionRank orders canonical regions first, then everything else by name.
func regionRank(r Region) int {
	for i, c := range canonicalRegions {
		if r == c {
			return i
		}
	}
	if r == RegionUnknown {
		return len(canonicalRegions) + 1
	}
	return len(canonicalRegions)
}

// SortRegions sorts regions in report order.
func SortRegions(regions []Region) {
	sort.SliceStable(regions, func(i, j int) bool {
		ri, rj := regionRank(regions[i]), regionRank(regions[j])
		if ri != rj {
			return ri < rj
		}
		return regions[i] < regions[j]
	})
}
