package megdr

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

// newTile builds a tile with all four bounds set.
func newTile(id string, res int, region Region, latMin, latMax, lonMin, lonMax float64) Tile {
	return Tile{
		ID:         id,
		Path:       id,
		LatMin:     fp(latMin),
		LatMax:     fp(latMax),
		LonMin:     fp(lonMin),
		LonMax:     fp(lonMax),
		Resolution: res,
		Region:     region,
	}
}

// lonTile builds a tile carrying only a longitude range.
func lonTile(id string, lonMin, lonMax float64) Tile {
	return Tile{ID: id, LonMin: fp(lonMin), LonMax: fp(lonMax)}
}

// regionalLabel renders a minimal MEGDR label body.
func regionalLabel(latMin, latMax, lonMin, lonMax float64, res int) string {
	return fmt.Sprintf(`PDS_VERSION_ID = PDS3
OBJECT = IMAGE_MAP_PROJECTION
  MAP_PROJECTION_TYPE = "SIMPLE CYLINDRICAL"
  MAP_RESOLUTION = %d <PIX/DEG>
  MINIMUM_LATITUDE = %g <DEGREE>
  MAXIMUM_LATITUDE = %g <DEGREE>
  WESTERNMOST_LONGITUDE = %g <DEGREE>
  EASTERNMOST_LONGITUDE = %g <DEGREE>
END_OBJECT = IMAGE_MAP_PROJECTION
END
`, res, latMin, latMax, lonMin, lonMax)
}

// writeFile writes content under dir, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
