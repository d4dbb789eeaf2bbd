package megdr

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/beetlebugorg/megdr/internal/label"
)

// LabelExt is the extension of PDS label files.
const LabelExt = ".lbl"

// TileCache stores tiles parsed from labels, keyed by file identity.
//
// Implementations must be safe for concurrent use; LoadTiles calls them from
// several workers.
type TileCache interface {
	// Get returns the cached tile if path was cached with the same size and
	// modification time.
	Get(path string, size int64, modTime time.Time) (Tile, bool, error)

	// Put stores a freshly parsed tile.
	Put(path string, size int64, modTime time.Time, tile Tile) error
}

// DiscoverLabels finds .lbl files under root.
//
// Without recursion, labels directly in root and in its immediate
// subdirectories are returned, which matches how MEGDR volumes are usually
// unpacked (one directory per resolution). Results are sorted per directory,
// root first.
//
// Example:
//
//	paths, err := megdr.DiscoverLabels("assets/mars_data", false)
//	fmt.Printf("Found %d label files\n", len(paths))
func DiscoverLabels(root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open data directory: %s is not a directory", root)
	}

	if recursive {
		var paths []string
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isLabel(path) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk directory: %w", err)
		}
		return paths, nil
	}

	paths, subdirs, err := scanDir(root)
	if err != nil {
		return nil, err
	}
	for _, dir := range subdirs {
		found, _, err := scanDir(dir)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

// scanDir lists label files and subdirectories of one directory, both sorted.
func scanDir(dir string) ([]string, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read directory: %w", err)
	}

	var labels, subdirs []string
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		switch {
		case e.IsDir():
			subdirs = append(subdirs, path)
		case isLabel(path):
			labels = append(labels, path)
		}
	}
	sort.Strings(labels)
	sort.Strings(subdirs)
	return labels, subdirs, nil
}

func isLabel(path string) bool {
	return strings.EqualFold(filepath.Ext(path), LabelExt)
}

// LoadTile parses one label file into a tile, consulting opts.Cache first.
func LoadTile(path string, opts LoadOptions) (Tile, error) {
	return loadTile(path, label.NewParser(), opts)
}

func loadTile(path string, parser label.Parser, opts LoadOptions) (Tile, error) {
	log := opts.logger().WithField("path", path)

	var (
		size    int64
		modTime time.Time
	)
	if opts.Cache != nil {
		info, err := os.Stat(path)
		if err != nil {
			return Tile{}, fmt.Errorf("stat label: %w", err)
		}
		size, modTime = info.Size(), info.ModTime()

		tile, ok, err := opts.Cache.Get(path, size, modTime)
		if err != nil {
			log.WithError(err).Warn("label cache lookup failed")
		} else if ok {
			log.Debug("label cache hit")
			return tile, nil
		}
	}

	lbl, err := parser.Parse(path)
	if err != nil {
		return Tile{}, fmt.Errorf("parse label: %w", err)
	}
	tile := TileFromLabel(lbl, path, opts.logger())

	if opts.Cache != nil {
		if err := opts.Cache.Put(path, size, modTime, tile); err != nil {
			log.WithError(err).Warn("label cache store failed")
		}
	}
	return tile, nil
}

// LoadTiles loads multiple labels, in parallel when opts.Parallel is set.
//
// Tiles are returned in the order of paths regardless of worker scheduling.
// With SkipErrors, failing labels are logged, collected and skipped; otherwise
// the failure of the earliest path is returned alone.
//
// Example:
//
//	tiles, errs := megdr.LoadTiles(paths, megdr.LoadOptions{
//	    Parallel:   true,
//	    Workers:    8,
//	    SkipErrors: true,
//	    Progress: func(loaded, total int) {
//	        fmt.Printf("\rLoading: %d/%d", loaded, total)
//	    },
//	})
func LoadTiles(paths []string, opts LoadOptions) ([]Tile, []error) {
	if len(paths) == 0 {
		return []Tile{}, nil
	}

	parser := label.NewParser()

	if !opts.Parallel {
		return loadTilesSerial(paths, parser, opts)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	type loadResult struct {
		index int
		tile  Tile
		err   error
	}

	jobs := make(chan int, len(paths))
	results := make(chan loadResult, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				tile, err := loadTile(paths[index], parser, opts)
				results <- loadResult{index: index, tile: tile, err: err}
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	tileMap := make(map[int]Tile, len(paths))
	errMap := make(map[int]error)
	loaded := 0

	// Drain every result so the workers can exit.
	for result := range results {
		loaded++
		if opts.Progress != nil {
			opts.Progress(loaded, len(paths))
		}

		if result.err != nil {
			err := fmt.Errorf("%s: %w", paths[result.index], result.err)
			opts.logger().WithError(err).Error("failed to load label")
			errMap[result.index] = err
			continue
		}
		tileMap[result.index] = result.tile
	}

	// Errors are reported in path order, as the serial loader does.
	var errs []error
	for i := range paths {
		if err, ok := errMap[i]; ok {
			if !opts.SkipErrors {
				return nil, []error{err}
			}
			errs = append(errs, err)
		}
	}

	tiles := make([]Tile, 0, len(tileMap))
	for i := range paths {
		if tile, ok := tileMap[i]; ok {
			tiles = append(tiles, tile)
		}
	}
	return tiles, errs
}

// loadTilesSerial loads labels one at a time (fallback when Parallel=false).
func loadTilesSerial(paths []string, parser label.Parser, opts LoadOptions) ([]Tile, []error) {
	tiles := make([]Tile, 0, len(paths))
	var errs []error

	for i, path := range paths {
		tile, err := loadTile(path, parser, opts)
		if opts.Progress != nil {
			opts.Progress(i+1, len(paths))
		}
		if err != nil {
			err := fmt.Errorf("%s: %w", path, err)
			opts.logger().WithError(err).Error("failed to load label")
			if !opts.SkipErrors {
				return nil, []error{err}
			}
			errs = append(errs, err)
			continue
		}
		tiles = append(tiles, tile)
	}

	return tiles, errs
}

// LoadDir discovers and loads every label under root and groups the result.
//
// The returned error is reserved for discovery failures; per-label failures
// are returned in the error slice when opts.SkipErrors is set.
//
// Example:
//
//	set, errs, err := megdr.LoadDir("assets/mars_data", megdr.DefaultLoadOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if len(errs) > 0 {
//	    fmt.Printf("Skipped %d labels\n", len(errs))
//	}
func LoadDir(root string, opts LoadOptions) (*TileSet, []error, error) {
	paths, err := DiscoverLabels(root, opts.Recursive)
	if err != nil {
		return nil, nil, err
	}
	opts.logger().WithField("count", len(paths)).Infof("found label files in %s", root)

	tiles, errs := LoadTiles(paths, opts)
	if tiles == nil && len(errs) > 0 {
		return nil, errs, fmt.Errorf("load labels: %w", errs[0])
	}
	return NewTileSet(tiles), errs, nil
}
