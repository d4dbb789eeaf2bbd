// Package labelcache stores parsed MEGDR tiles in SQLite so unchanged labels
// are not parsed again on the next run.
package labelcache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/beetlebugorg/megdr/pkg/megdr"
)

const schema = `
CREATE TABLE IF NOT EXISTS tiles (
	path              TEXT PRIMARY KEY,
	size              INTEGER NOT NULL,
	mod_time          INTEGER NOT NULL,
	id                TEXT NOT NULL,
	lat_min           REAL,
	lat_max           REAL,
	lon_min           REAL,
	lon_max           REAL,
	resolution        INTEGER NOT NULL,
	resolution_source INTEGER NOT NULL,
	region            TEXT NOT NULL,
	lines             INTEGER,
	samples           INTEGER
);
`

// SQLite-backed implementation of megdr.TileCache.
//
// Entries are keyed by label path and only returned when the file size and
// modification time still match.
type Cache struct{ DB *sql.DB }

var _ megdr.TileCache = (*Cache)(nil)

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open label cache %q: %w", path, err)
	}
	// SQLite allows a single writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("verify label cache %q: %w", path, err)
	}

	c := New(db)
	if err := c.InitSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func New(db *sql.DB) *Cache {
	return &Cache{DB: db}
}

// InitSchema creates the tiles table when missing.
func (c *Cache) InitSchema() error {
	if c.DB == nil {
		return errors.New("label cache: DB is nil")
	}
	if _, err := c.DB.Exec(schema); err != nil {
		return fmt.Errorf("init label cache schema: %w", err)
	}
	return nil
}

// Get returns the tile cached for path if size and modTime still match.
func (c *Cache) Get(path string, size int64, modTime time.Time) (megdr.Tile, bool, error) {
	if c.DB == nil {
		return megdr.Tile{}, false, errors.New("label cache: DB is nil")
	}

	query := `
	SELECT
		id, lat_min, lat_max, lon_min, lon_max,
		resolution, resolution_source, region, lines, samples
	FROM tiles
	WHERE path = ? AND size = ? AND mod_time = ?;
	`
	var (
		tile                           megdr.Tile
		latMin, latMax, lonMin, lonMax sql.NullFloat64
		lines, samples                 sql.NullInt64
		source                         int
		region                         string
	)
	err := c.DB.QueryRow(query, path, size, modTime.UnixNano()).Scan(
		&tile.ID, &latMin, &latMax, &lonMin, &lonMax,
		&tile.Resolution, &source, &region, &lines, &samples,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return megdr.Tile{}, false, nil
	}
	if err != nil {
		return megdr.Tile{}, false, fmt.Errorf("get cached tile %q: %w", path, err)
	}

	tile.Path = path
	tile.LatMin = floatPtr(latMin)
	tile.LatMax = floatPtr(latMax)
	tile.LonMin = floatPtr(lonMin)
	tile.LonMax = floatPtr(lonMax)
	tile.ResolutionSource = megdr.ResolutionSource(source)
	tile.Region = megdr.Region(region)
	tile.Lines = intPtr(lines)
	tile.Samples = intPtr(samples)
	return tile, true, nil
}

// Put stores tile for path, replacing any previous entry.
func (c *Cache) Put(path string, size int64, modTime time.Time, tile megdr.Tile) error {
	if c.DB == nil {
		return errors.New("label cache: DB is nil")
	}

	query := `
	INSERT OR REPLACE INTO tiles (
		path, size, mod_time, id, lat_min, lat_max, lon_min, lon_max,
		resolution, resolution_source, region, lines, samples
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := c.DB.Exec(query,
		path, size, modTime.UnixNano(), tile.ID,
		nullFloat(tile.LatMin), nullFloat(tile.LatMax), nullFloat(tile.LonMin), nullFloat(tile.LonMax),
		tile.Resolution, int(tile.ResolutionSource), string(tile.Region),
		nullInt(tile.Lines), nullInt(tile.Samples),
	)
	if err != nil {
		return fmt.Errorf("put cached tile %q: %w", path, err)
	}
	return nil
}

// Len returns the number of cached labels.
func (c *Cache) Len() (int, error) {
	var n int
	if err := c.DB.QueryRow(`SELECT COUNT(*) FROM tiles;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cached tiles: %w", err)
	}
	return n, nil
}

func (c *Cache) Close() error {
	return c.DB.Close()
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
