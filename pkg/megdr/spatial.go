package megdr

import (
	"math"
)

// Bounds represents an axis-aligned latitude/longitude rectangle on Mars.
//
// Coordinates are in decimal degrees, planetocentric latitude and east
// longitude (0..360 for MEGDR products). All edges are inclusive.
type Bounds struct {
	MinLat float64 // Southern edge
	MaxLat float64 // Northern edge
	MinLon float64 // Western edge
	MaxLon float64 // Eastern edge
}

// LatSpan returns the latitude extent in degrees.
func (b Bounds) LatSpan() float64 {
	return math.Abs(b.MaxLat - b.MinLat)
}

// LonSpan returns the longitude extent in degrees.
func (b Bounds) LonSpan() float64 {
	return math.Abs(b.MaxLon - b.MinLon)
}

// Area returns the covered area in square degrees.
func (b Bounds) Area() float64 {
	return b.LatSpan() * b.LonSpan()
}

// Contains returns true if the point (lat, lon) is within the bounds.
func (b Bounds) Contains(lat, lon float64) bool {
	return lon >= b.MinLon && lon <= b.MaxLon &&
		lat >= b.MinLat && lat <= b.MaxLat
}

// Intersects returns true if the given bounds intersects with this bounds.
// Rectangles that only share an edge or a corner intersect.
func (b Bounds) Intersects(other Bounds) bool {
	return b.MinLat <= other.MaxLat && b.MaxLat >= other.MinLat &&
		b.MinLon <= other.MaxLon && b.MaxLon >= other.MinLon
}

// Intersection returns the overlap rectangle of two bounds.
// The second result is false when they do not intersect.
func (b Bounds) Intersection(other Bounds) (Bounds, bool) {
	if !b.Intersects(other) {
		return Bounds{}, false
	}
	return Bounds{
		MinLat: math.Max(b.MinLat, other.MinLat),
		MaxLat: math.Min(b.MaxLat, other.MaxLat),
		MinLon: math.Max(b.MinLon, other.MinLon),
		MaxLon: math.Min(b.MaxLon, other.MaxLon),
	}, true
}

// Union returns the smallest bounds containing both.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		MinLat: math.Min(b.MinLat, other.MinLat),
		MaxLat: math.Max(b.MaxLat, other.MaxLat),
		MinLon: math.Min(b.MinLon, other.MinLon),
		MaxLon: math.Max(b.MaxLon, other.MaxLon),
	}
}

// Expand returns a new Bounds expanded by the given margin in all directions.
//
// Margin is in decimal degrees.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		MinLat: b.MinLat - margin,
		MaxLat: b.MaxLat + margin,
		MinLon: b.MinLon - margin,
		MaxLon: b.MaxLon + margin,
	}
}

// DistanceTo returns the planar distance in degrees from the point to the
// nearest edge of the bounds, or 0 when the point is inside.
func (b Bounds) DistanceTo(lat, lon float64) float64 {
	var dLat, dLon float64
	if lat < b.MinLat {
		dLat = b.MinLat - lat
	} else if lat > b.MaxLat {
		dLat = lat - b.MaxLat
	}
	if lon < b.MinLon {
		dLon = b.MinLon - lon
	} else if lon > b.MaxLon {
		dLon = lon - b.MaxLon
	}
	return math.Hypot(dLat, dLon)
}

// NormalizeLongitude maps a longitude into [0, 360).
func NormalizeLongitude(lon float64) float64 {
	lon = math.Mod(lon, 360.0)
	if lon < 0 {
		lon += 360.0
	}
	return lon
}
