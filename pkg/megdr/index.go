package megdr

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// minRectLength keeps degenerate tiles (zero width or height) insertable:
// rtreego rejects rectangles with a non-positive side.
const minRectLength = 1e-9

// pointTolerance is the half-size of the query box used for point lookups.
// rtreego treats touching rectangles as disjoint, so the box must have area.
const pointTolerance = 1e-6

// TileIndex provides spatial queries over tiles with complete bounds.
//
// It answers "which tiles cover this location" and "which tile is closest"
// using an R-tree, which keeps point lookups fast when a full MEGDR volume
// (hundreds of tiles across all resolutions) is indexed.
//
// Example:
//
//	idx := megdr.BuildIndex(set.Tiles())
//	for _, t := range idx.Covering(18.4446, 77.4509) {
//	    fmt.Printf("%s covers Jezero at %d ppd\n", t.ID, t.Resolution)
//	}
type TileIndex struct {
	entries []indexEntry
	count   int
	rtree   *rtreego.Rtree
}

// indexEntry pairs a tile with one of its rectangles on the 0..360 axis.
// A tile crossing the 0° meridian has two entries sharing the same order.
type indexEntry struct {
	tile  Tile
	order int
	geo   Bounds
}

// Bounds method for rtreego.Spatial interface.
// Converts geographic bounds to R-tree rectangle.
func (e indexEntry) Bounds() rtreego.Rect {
	return rect(e.geo)
}

func rect(b Bounds) rtreego.Rect {
	point := rtreego.Point{b.MinLon, b.MinLat}
	lengths := []float64{
		math.Max(b.MaxLon-b.MinLon, minRectLength),
		math.Max(b.MaxLat-b.MinLat, minRectLength),
	}

	r, _ := rtreego.NewRect(point, lengths)
	return r
}

// BuildIndex indexes the tiles that have all four bounds.
//
// Longitudes are stored east-positive in [0, 360]. Tiles given in -180..180
// are shifted, and a tile spanning 0° is split in two.
func BuildIndex(tiles []Tile) *TileIndex {
	// 2D tree, min=25 children, max=50 children
	rtree := rtreego.NewTree(2, 25, 50)

	idx := &TileIndex{rtree: rtree}
	for _, t := range tiles {
		b, ok := t.GeoBounds()
		if !ok {
			continue
		}
		for _, part := range eastLongitudes(b) {
			e := indexEntry{tile: t, order: idx.count, geo: part}
			idx.entries = append(idx.entries, e)
			rtree.Insert(e)
		}
		idx.count++
	}

	return idx
}

// eastLongitudes maps a rectangle onto the 0..360 longitude axis.
func eastLongitudes(b Bounds) []Bounds {
	switch {
	case b.MinLon >= 0:
		return []Bounds{b}
	case b.MaxLon <= 0:
		b.MinLon += 360
		b.MaxLon += 360
		return []Bounds{b}
	default:
		west, east := b, b
		west.MinLon += 360
		west.MaxLon = 360
		east.MinLon = 0
		return []Bounds{west, east}
	}
}

// Count returns the number of indexed tiles.
func (idx *TileIndex) Count() int {
	return idx.count
}

// Covering returns the tiles whose bounds contain the point, highest
// resolution first. The longitude is normalised into [0, 360) first.
func (idx *TileIndex) Covering(lat, lon float64) []Tile {
	lon = NormalizeLongitude(lon)

	query := Bounds{MinLat: lat, MaxLat: lat, MinLon: lon, MaxLon: lon}.Expand(pointTolerance)
	var hits []indexEntry
	for _, e := range idx.search(query) {
		if e.geo.Contains(lat, lon) {
			hits = append(hits, e)
		}
	}
	return sortedTiles(hits)
}

// Query returns tiles intersecting the given bounds (east longitudes, 0..360),
// highest resolution first. Tiles sharing only an edge with the query are
// included.
func (idx *TileIndex) Query(b Bounds) []Tile {
	var hits []indexEntry
	for _, e := range idx.search(b.Expand(pointTolerance)) {
		if e.geo.Intersects(b) {
			hits = append(hits, e)
		}
	}
	return sortedTiles(hits)
}

// Nearest returns the tile closest to the point and the planar distance in
// degrees to its rectangle, measured across the 0°/360° meridian when that is
// shorter. The third result is false for an empty index.
func (idx *TileIndex) Nearest(lat, lon float64) (Tile, float64, bool) {
	if len(idx.entries) == 0 {
		return Tile{}, 0, false
	}
	lon = NormalizeLongitude(lon)

	var (
		best     indexEntry
		bestDist = math.Inf(1)
	)
	// The nearest rectangle lies either on the plain axis or one turn away.
	for _, shift := range []float64{0, -360, 360} {
		spatial := idx.rtree.NearestNeighbor(rtreego.Point{lon + shift, lat})
		if spatial == nil {
			continue
		}
		e := spatial.(indexEntry)
		if d := wrappedDistance(e.geo, lat, lon); d < bestDist {
			best, bestDist = e, d
		}
	}
	if math.IsInf(bestDist, 1) {
		return Tile{}, 0, false
	}
	return best.tile, bestDist, true
}

// wrappedDistance is the smallest DistanceTo over the point and its copies
// one turn east and west.
func wrappedDistance(b Bounds, lat, lon float64) float64 {
	return min(
		b.DistanceTo(lat, lon),
		b.DistanceTo(lat, lon-360),
		b.DistanceTo(lat, lon+360),
	)
}

func (idx *TileIndex) search(b Bounds) []indexEntry {
	if idx.rtree == nil || len(idx.entries) == 0 {
		return nil
	}

	spatials := idx.rtree.SearchIntersect(rect(b))
	entries := make([]indexEntry, 0, len(spatials))
	for _, s := range spatials {
		entries = append(entries, s.(indexEntry))
	}
	return entries
}

// sortedTiles orders hits by resolution (finest first), then by ID and load
// order.
func sortedTiles(hits []indexEntry) []Tile {
	sort.Slice(hits, func(i, j int) bool {
		a, b := hits[i].tile, hits[j].tile
		if a.Resolution != b.Resolution {
			return a.Resolution > b.Resolution
		}
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		return hits[i].order < hits[j].order
	})

	tiles := make([]Tile, 0, len(hits))
	seen := make(map[int]bool, len(hits))
	for _, e := range hits {
		if seen[e.order] {
			continue
		}
		seen[e.order] = true
		tiles = append(tiles, e.tile)
	}
	return tiles
}
