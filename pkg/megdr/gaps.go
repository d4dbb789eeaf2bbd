package megdr

import (
	"sort"
)

// Gap is an uncovered longitude interval inside one latitude band.
//
// For a wraparound gap From is the eastern end of the last tile and To the
// western start of the first one, so From > To.
type Gap struct {
	From       float64
	To         float64
	Wraparound bool
}

// Width returns the gap width in degrees of longitude.
func (g Gap) Width() float64 {
	if g.Wraparound {
		return 360 - g.From + g.To
	}
	return g.To - g.From
}

// GroupGaps holds the gaps found in one resolution and region group.
type GroupGaps struct {
	Resolution int
	Region     Region
	Gaps       []Gap
}

// DetectLongitudeGaps finds uncovered longitude intervals among tiles of one
// resolution and region.
//
// Polar regions are exempt. Tiles missing a longitude bound are ignored and
// fewer than two usable intervals means there is nothing to compare. A gap is
// reported when the next interval starts more than opts.Tolerance degrees after
// the current one ends. A wraparound gap is added when the last interval ends
// before opts.WrapMax and the first starts after opts.WrapMin.
//
// Example:
//
//	gaps := megdr.DetectLongitudeGaps(megdr.RegionEquatorial, tiles, megdr.DefaultGapOptions())
//	for _, g := range gaps {
//	    fmt.Printf("uncovered %.1f° to %.1f°\n", g.From, g.To)
//	}
func DetectLongitudeGaps(region Region, tiles []Tile, opts GapOptions) []Gap {
	if region.IsPolar() {
		return nil
	}

	intervals := make([]Tile, 0, len(tiles))
	for _, t := range tiles {
		if t.HasLonRange() {
			intervals = append(intervals, t)
		}
	}
	if len(intervals) < 2 {
		return nil
	}

	sort.SliceStable(intervals, func(i, j int) bool {
		return *intervals[i].LonMin < *intervals[j].LonMin
	})

	var gaps []Gap
	for i := 0; i+1 < len(intervals); i++ {
		end := *intervals[i].LonMax
		next := *intervals[i+1].LonMin
		if next-end > opts.Tolerance {
			gaps = append(gaps, Gap{From: end, To: next})
		}
	}

	first, last := intervals[0], intervals[len(intervals)-1]
	if *last.LonMax < opts.WrapMax && *first.LonMin > opts.WrapMin {
		gaps = append(gaps, Gap{From: *last.LonMax, To: *first.LonMin, Wraparound: true})
	}

	return gaps
}

// FindGaps runs DetectLongitudeGaps over every resolution and region group.
// Only groups with at least one gap are returned, in report order.
func FindGaps(set *TileSet, opts GapOptions) []GroupGaps {
	var result []GroupGaps
	for _, res := range set.AllResolutions() {
		for _, region := range set.Regions(res) {
			gaps := DetectLongitudeGaps(region, set.Group(res, region), opts)
			if len(gaps) == 0 {
				continue
			}
			result = append(result, GroupGaps{
				Resolution: res,
				Region:     region,
				Gaps:       gaps,
			})
		}
	}
	return result
}
