package megdr

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/beetlebugorg/megdr/internal/label"
)

// ResolutionSource records where a tile's resolution came from.
type ResolutionSource int

const (
	// ResolutionUnknown means no source produced a resolution.
	ResolutionUnknown ResolutionSource = iota
	// ResolutionFromLabel is MAP_RESOLUTION in the label.
	ResolutionFromLabel
	// ResolutionFromGrid is LINE_SAMPLES divided by the longitude span.
	ResolutionFromGrid
	// ResolutionFromFilename is the MEGDR product-name heuristic.
	ResolutionFromFilename
)

func (s ResolutionSource) String() string {
	switch s {
	case ResolutionFromLabel:
		return "label"
	case ResolutionFromGrid:
		return "grid"
	case ResolutionFromFilename:
		return "filename"
	default:
		return "unknown"
	}
}

// Tile is one MEGDR raster product as described by its label.
//
// Bounds and grid sizes are optional: a nil pointer means the label did not
// carry a usable value. Tiles are immutable after loading; analysis functions
// only read them.
type Tile struct {
	ID   string // Label file base name, e.g. "megt44n000hb.lbl"
	Path string // Path to the label file

	LatMin *float64 // MINIMUM_LATITUDE
	LatMax *float64 // MAXIMUM_LATITUDE
	LonMin *float64 // WESTERNMOST_LONGITUDE
	LonMax *float64 // EASTERNMOST_LONGITUDE

	Resolution       int // Pixels per degree, 0 when unknown
	ResolutionSource ResolutionSource
	Region           Region

	Lines   *int // LINES
	Samples *int // LINE_SAMPLES
}

// GeoBounds returns the tile rectangle when all four bounds are present.
func (t Tile) GeoBounds() (Bounds, bool) {
	if !t.HasBounds() {
		return Bounds{}, false
	}
	return Bounds{
		MinLat: *t.LatMin,
		MaxLat: *t.LatMax,
		MinLon: *t.LonMin,
		MaxLon: *t.LonMax,
	}, true
}

// HasBounds reports whether all four bounds are present.
func (t Tile) HasBounds() bool {
	return t.LatMin != nil && t.LatMax != nil && t.LonMin != nil && t.LonMax != nil
}

// HasLonRange reports whether both longitude bounds are present.
func (t Tile) HasLonRange() bool {
	return t.LonMin != nil && t.LonMax != nil
}

// Area returns the tile area in square degrees, 0 when any bound is missing.
func (t Tile) Area() float64 {
	b, ok := t.GeoBounds()
	if !ok {
		return 0
	}
	return b.Area()
}

// TileFromLabel builds a tile from a parsed label.
//
// Resolution is taken from MAP_RESOLUTION, then derived from LINE_SAMPLES over
// the longitude span of a simple cylindrical grid, then inferred from the
// product name. The filename fallback is logged.
func TileFromLabel(lbl *label.Label, path string, log logrus.FieldLogger) Tile {
	if log == nil {
		log = logrus.StandardLogger()
	}
	entry := log.WithField("path", path)

	ext, errs := lbl.ValidatedExtent()
	for _, err := range errs {
		entry.WithError(err).Warn("dropping label bounds")
	}

	tile := Tile{
		ID:      lbl.Name,
		Path:    path,
		LatMin:  ext.LatMin,
		LatMax:  ext.LatMax,
		LonMin:  ext.LonMin,
		LonMax:  ext.LonMax,
		Region:  ClassifyRegion(lbl.Name),
		Lines:   lbl.Lines(),
		Samples: lbl.LineSamples(),
	}
	if tile.ID == "" {
		tile.ID = filepath.Base(path)
	}

	switch {
	case lbl.MapResolution() != nil && *lbl.MapResolution() > 0:
		tile.Resolution = *lbl.MapResolution()
		tile.ResolutionSource = ResolutionFromLabel
	case gridResolution(lbl, tile) > 0:
		tile.Resolution = gridResolution(lbl, tile)
		tile.ResolutionSource = ResolutionFromGrid
	default:
		if ppd, ok := label.ResolutionFromFilename(tile.ID); ok {
			tile.Resolution = ppd
			tile.ResolutionSource = ResolutionFromFilename
			entry.WithField("resolution", ppd).Warn("resolution inferred from filename")
		} else {
			entry.Warn("resolution unknown")
		}
	}

	return tile
}

// gridResolution returns samples per degree of longitude when the label
// describes a simple cylindrical grid and the ratio is integral.
func gridResolution(lbl *label.Label, t Tile) int {
	proj := lbl.ProjectionType()
	if proj != "" && !strings.Contains(proj, "CYLINDRICAL") && !strings.Contains(proj, "EQUIRECTANGULAR") {
		return 0
	}
	if t.Samples == nil || !t.HasLonRange() {
		return 0
	}
	span := *t.LonMax - *t.LonMin
	if span <= 0 {
		return 0
	}
	ppd := float64(*t.Samples) / span
	if math.Abs(ppd-math.Round(ppd)) > 1e-6 || ppd < 1 {
		return 0
	}
	return int(math.Round(ppd))
}
