package megdr

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature kinds written to the "kind" property of exported features.
const (
	KindTile    = "tile"
	KindGap     = "gap"
	KindOverlap = "overlap"
)

// FeatureCollection exports tiles, gaps and tier overlaps as GeoJSON.
//
// Coordinates are [longitude, latitude] in degrees east, as stored in the
// labels. Tiles without complete bounds are skipped. A gap spans the latitude
// extent of its band; a wraparound gap becomes a MultiPolygon split at 360°.
//
// Example:
//
//	fc := megdr.FeatureCollection(set, megdr.FindGaps(set, megdr.DefaultGapOptions()), megdr.CompareTiers(set))
//	data, _ := fc.MarshalJSON()
func FeatureCollection(set *TileSet, gaps []GroupGaps, tiers []TierComparison) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, t := range set.Tiles() {
		b, ok := t.GeoBounds()
		if !ok {
			continue
		}
		f := geojson.NewFeature(toBound(b).ToPolygon())
		f.ID = t.ID
		f.Properties["kind"] = KindTile
		f.Properties["id"] = t.ID
		f.Properties["resolution"] = t.Resolution
		f.Properties["resolution_source"] = t.ResolutionSource.String()
		f.Properties["region"] = string(t.Region)
		f.Properties["area"] = b.Area()
		fc.Append(f)
	}

	for _, gg := range gaps {
		minLat, maxLat := bandLatitudes(set.Group(gg.Resolution, gg.Region))
		for _, g := range gg.Gaps {
			f := geojson.NewFeature(gapGeometry(g, minLat, maxLat))
			f.Properties["kind"] = KindGap
			f.Properties["resolution"] = gg.Resolution
			f.Properties["region"] = string(gg.Region)
			f.Properties["from"] = g.From
			f.Properties["to"] = g.To
			f.Properties["wraparound"] = g.Wraparound
			fc.Append(f)
		}
	}

	for _, tc := range tiers {
		for _, to := range tc.Results {
			for _, o := range to.Overlaps {
				f := geojson.NewFeature(toBound(o.Bounds).ToPolygon())
				f.Properties["kind"] = KindOverlap
				f.Properties["high"] = to.High.ID
				f.Properties["high_resolution"] = tc.High
				f.Properties["low"] = o.Low.ID
				f.Properties["low_resolution"] = tc.Low
				f.Properties["area"] = o.Area
				fc.Append(f)
			}
		}
	}

	return fc
}

func toBound(b Bounds) orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinLon, b.MinLat},
		Max: orb.Point{b.MaxLon, b.MaxLat},
	}
}

// bandLatitudes returns the latitude extent of a band, or the whole globe
// when no tile in it has both latitude bounds.
func bandLatitudes(tiles []Tile) (float64, float64) {
	minLat, maxLat := 90.0, -90.0
	for _, t := range tiles {
		if t.LatMin == nil || t.LatMax == nil {
			continue
		}
		minLat = min(minLat, *t.LatMin)
		maxLat = max(maxLat, *t.LatMax)
	}
	if minLat > maxLat {
		return -90, 90
	}
	return minLat, maxLat
}

func gapGeometry(g Gap, minLat, maxLat float64) orb.Geometry {
	if !g.Wraparound {
		return toBound(Bounds{MinLat: minLat, MaxLat: maxLat, MinLon: g.From, MaxLon: g.To}).ToPolygon()
	}
	east := toBound(Bounds{MinLat: minLat, MaxLat: maxLat, MinLon: g.From, MaxLon: 360})
	west := toBound(Bounds{MinLat: minLat, MaxLat: maxLat, MinLon: 0, MaxLon: g.To})
	return orb.MultiPolygon{east.ToPolygon(), west.ToPolygon()}
}
