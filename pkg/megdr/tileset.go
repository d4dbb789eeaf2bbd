package megdr

import (
	"slices"
	"sort"
)

// TileSet groups loaded tiles by resolution tier and by region.
//
// The grouping is built once by NewTileSet and never modified; every analysis
// function takes the set explicitly. Tiles keep their input order inside each
// group, which makes downstream results deterministic.
type TileSet struct {
	tiles        []Tile
	byResolution map[int][]Tile
	byRegion     map[int]map[Region][]Tile
	resolutions  []int // Known resolutions, descending
}

// NewTileSet groups tiles by resolution and region.
//
// Example:
//
//	tiles, errs := megdr.LoadTiles(paths, megdr.DefaultLoadOptions())
//	set := megdr.NewTileSet(tiles)
//	for _, res := range set.Resolutions() {
//	    fmt.Printf("%d ppd: %d tiles\n", res, len(set.Tier(res)))
//	}
func NewTileSet(tiles []Tile) *TileSet {
	s := &TileSet{
		tiles:        slices.Clone(tiles),
		byResolution: make(map[int][]Tile),
		byRegion:     make(map[int]map[Region][]Tile),
	}

	for _, t := range s.tiles {
		s.byResolution[t.Resolution] = append(s.byResolution[t.Resolution], t)

		regions, ok := s.byRegion[t.Resolution]
		if !ok {
			regions = make(map[Region][]Tile)
			s.byRegion[t.Resolution] = regions
		}
		regions[t.Region] = append(regions[t.Region], t)
	}

	for res := range s.byResolution {
		if res > 0 {
			s.resolutions = append(s.resolutions, res)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(s.resolutions)))

	return s
}

// Len returns the number of tiles in the set.
func (s *TileSet) Len() int {
	return len(s.tiles)
}

// Tiles returns all tiles in load order.
func (s *TileSet) Tiles() []Tile {
	return slices.Clone(s.tiles)
}

// Resolutions returns the distinct known resolutions, highest first.
func (s *TileSet) Resolutions() []int {
	return slices.Clone(s.resolutions)
}

// AllResolutions returns Resolutions followed by 0 when some tiles have no
// known resolution.
func (s *TileSet) AllResolutions() []int {
	all := s.Resolutions()
	if _, ok := s.byResolution[0]; ok {
		all = append(all, 0)
	}
	return all
}

// Tier returns the tiles at one resolution in load order.
func (s *TileSet) Tier(resolution int) []Tile {
	return slices.Clone(s.byResolution[resolution])
}

// Regions returns the regions present at one resolution in report order.
func (s *TileSet) Regions(resolution int) []Region {
	regions := make([]Region, 0, len(s.byRegion[resolution]))
	for r := range s.byRegion[resolution] {
		regions = append(regions, r)
	}
	SortRegions(regions)
	return regions
}

// Group returns the tiles of one resolution and region in load order.
func (s *TileSet) Group(resolution int, region Region) []Tile {
	return slices.Clone(s.byRegion[resolution][region])
}

// Bounds returns the union of all tile rectangles.
// The second result is false when no tile has complete bounds.
func (s *TileSet) Bounds() (Bounds, bool) {
	var (
		union Bounds
		found bool
	)
	for _, t := range s.tiles {
		b, ok := t.GeoBounds()
		if !ok {
			continue
		}
		if !found {
			union, found = b, true
			continue
		}
		union = union.Union(b)
	}
	return union, found
}

// HasSouthPolarCoverage reports whether the set reaches the south polar cap:
// a South Polar tile, or a Near-Polar South tile extending to 75°S or beyond.
func HasSouthPolarCoverage(set *TileSet) bool {
	for _, t := range set.tiles {
		if t.Region == RegionSouthPolar {
			return true
		}
		if t.Region == RegionNearPolarSouth && t.LatMin != nil && *t.LatMin <= -75 {
			return true
		}
	}
	return false
}
