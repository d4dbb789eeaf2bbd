package megdr

import (
	"os"
	"path/filepath"
	"strings"
)

// ImageExt is the extension of MEGDR raster files next to their labels.
const ImageExt = ".img"

// CoveringTile is a tile covering a point together with its companion image.
type CoveringTile struct {
	Tile        Tile
	ImagePath   string // Expected .img path, whether or not it exists
	ImageExists bool
	ImageSize   int64 // Bytes, 0 when the image is absent
}

// NearestTile is the closest tile to a point that no tile covers.
type NearestTile struct {
	Tile     Tile
	Distance float64 // Degrees to the tile rectangle
}

// PointCoverage answers which tiles contain a location.
type PointCoverage struct {
	Lat, Lon float64
	Covering []CoveringTile
	Nearest  *NearestTile // Set only when Covering is empty
}

// LocatePoint finds the tiles covering (lat, lon), or the nearest tile when
// none does.
//
// Example:
//
//	pc := megdr.LocatePoint(idx, 18.4446, 77.4509)
//	if len(pc.Covering) == 0 && pc.Nearest != nil {
//	    fmt.Printf("closest: %s (%.2f°)\n", pc.Nearest.Tile.ID, pc.Nearest.Distance)
//	}
func LocatePoint(idx *TileIndex, lat, lon float64) PointCoverage {
	pc := PointCoverage{Lat: lat, Lon: lon}

	for _, t := range idx.Covering(lat, lon) {
		ct := CoveringTile{Tile: t}
		ct.ImagePath, ct.ImageSize, ct.ImageExists = CompanionImage(t.Path)
		pc.Covering = append(pc.Covering, ct)
	}

	if len(pc.Covering) == 0 {
		if t, d, ok := idx.Nearest(lat, lon); ok {
			pc.Nearest = &NearestTile{Tile: t, Distance: d}
		}
	}

	return pc
}

// CompanionImage returns the raster file expected next to a label, its size
// and whether it exists. Both the lower and upper case extension are tried;
// the lower case path is returned when neither exists.
func CompanionImage(labelPath string) (string, int64, bool) {
	base := labelPath
	if isLabel(labelPath) {
		base = strings.TrimSuffix(labelPath, filepath.Ext(labelPath))
	}
	candidates := []string{base + ImageExt, base + strings.ToUpper(ImageExt)}

	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, info.Size(), true
		}
	}
	return candidates[0], 0, false
}
