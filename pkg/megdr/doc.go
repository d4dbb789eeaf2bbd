// Package megdr analyzes the coverage of MOLA MEGDR topography tiles on Mars.
//
// MEGDR products (Mission Experiment Gridded Data Records) are distributed as
// raster .img files, each described by a PDS .lbl label giving its latitude and
// longitude bounds and its resolution in pixels per degree. This package reads
// the labels and answers coverage questions without touching the rasters.
//
// # Basic Usage
//
//	set, errs, err := megdr.LoadDir("assets/mars_data", megdr.DefaultLoadOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Loaded %d tiles (%d skipped)\n", set.Len(), len(errs))
//
// # Coverage Analysis
//
// All analysis functions are pure and take the TileSet explicitly:
//
//	coverage := megdr.ComputeRegionCoverage(set)       // area per resolution and region
//	gaps := megdr.FindGaps(set, megdr.DefaultGapOptions()) // longitude gaps per band
//	tiers := megdr.CompareTiers(set)                   // overlaps of adjacent resolutions
//
// Tiles whose labels lack a bound are kept in listings but ignored by the
// computation that needs the missing value.
//
// # Point Lookup
//
// A TileIndex built on an R-tree finds the tiles covering a location:
//
//	idx := megdr.BuildIndex(set.Tiles())
//	pc := megdr.LocatePoint(idx, 18.4446, 77.4509) // Jezero Crater
//
// # Export
//
// FeatureCollection renders tiles, gaps and overlaps as GeoJSON for display in
// any GIS tool.
package megdr
