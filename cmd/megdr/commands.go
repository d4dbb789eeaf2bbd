package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/beetlebugorg/megdr/internal/config"
	"github.com/beetlebugorg/megdr/internal/labelcache"
	"github.com/beetlebugorg/megdr/internal/logging"
	"github.com/beetlebugorg/megdr/internal/report"
	"github.com/beetlebugorg/megdr/pkg/megdr"
)

// app carries flag values and the loaded configuration for one invocation.
type app struct {
	cfg *config.Config

	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
	flagRecursive bool
	flagWorkers   int
	flagCache     string
	flagTolerance float64
	flagList      bool
	flagLat       float64
	flagLon       float64
	flagName      string
	flagOut       string
}

func newRootCmd() *cobra.Command {
	cobra.EnablePrefixMatching = true
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "megdr",
		Short:         "Coverage analysis for MOLA MEGDR label files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.flagConfig, "config", "", "config file (default ./megdr.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.flagLogLevel, "log-level", "info", "debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&a.flagLogFormat, "log-format", "text", "text or json")
	rootCmd.PersistentFlags().BoolVar(&a.flagRecursive, "recursive", false, "walk the whole directory tree")
	rootCmd.PersistentFlags().IntVar(&a.flagWorkers, "workers", 0, "parallel label loaders (0 = number of CPUs)")
	rootCmd.PersistentFlags().StringVar(&a.flagCache, "cache", "", "SQLite label cache file")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [dir]",
		Short: "summarize coverage, longitude gaps and resolution overlaps",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.analyzeCommand,
	}
	analyzeCmd.Flags().Float64Var(&a.flagTolerance, "tolerance", 1.0, "largest longitude separation in degrees treated as contiguous")
	analyzeCmd.Flags().BoolVar(&a.flagList, "list", false, "also list every label with its extent")
	rootCmd.AddCommand(analyzeCmd)

	locateCmd := &cobra.Command{
		Use:   "locate [dir]",
		Short: "find the tiles covering a location",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.locateCommand,
	}
	locateCmd.Flags().Float64Var(&a.flagLat, "lat", 18.4446, "latitude in degrees north")
	locateCmd.Flags().Float64Var(&a.flagLon, "lon", 77.4509, "longitude in degrees east")
	locateCmd.Flags().StringVar(&a.flagName, "name", "Jezero Crater", "name of the location")
	rootCmd.AddCommand(locateCmd)

	exportCmd := &cobra.Command{
		Use:   "export [dir]",
		Short: "write tiles, gaps and overlaps as GeoJSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.exportCommand,
	}
	exportCmd.Flags().StringVar(&a.flagOut, "out", "-", "output file, - for stdout")
	exportCmd.Flags().Float64Var(&a.flagTolerance, "tolerance", 1.0, "largest longitude separation in degrees treated as contiguous")
	rootCmd.AddCommand(exportCmd)

	return rootCmd
}

// setup loads .env and configuration, applies explicit flags on top and
// configures logging.
func (a *app) setup(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found (using environment variables)")
	}

	cfg, err := config.Load(a.flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.flagLogLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.flagLogFormat
	}
	if flags.Changed("recursive") {
		cfg.Recursive = a.flagRecursive
	}
	if flags.Changed("workers") {
		cfg.Load.Workers = a.flagWorkers
	}
	if flags.Changed("cache") {
		cfg.Cache.Path = a.flagCache
	}
	if flags.Changed("tolerance") {
		cfg.Gaps.Tolerance = a.flagTolerance
	}
	if flags.Changed("lat") {
		cfg.Target.Lat = a.flagLat
	}
	if flags.Changed("lon") {
		cfg.Target.Lon = a.flagLon
	}
	if flags.Changed("name") {
		cfg.Target.Name = a.flagName
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	a.cfg = cfg
	return nil
}

func (a *app) dataDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.cfg.DataDir
}

// loadTiles discovers and loads labels, using the label cache when configured.
// It also returns how many label files were discovered, which can exceed the
// number of tiles when some labels fail to load.
func (a *app) loadTiles(dir string, recursive bool) (*megdr.TileSet, int, error) {
	opts := megdr.DefaultLoadOptions()
	opts.Recursive = recursive
	opts.Parallel = a.cfg.Load.Parallel
	if a.cfg.Load.Workers > 0 {
		opts.Workers = a.cfg.Load.Workers
	}
	opts.Logger = log.StandardLogger()

	if a.cfg.Cache.Path != "" {
		cache, err := labelcache.Open(a.cfg.Cache.Path)
		if err != nil {
			return nil, 0, err
		}
		defer cache.Close()
		opts.Cache = cache
	}

	paths, err := megdr.DiscoverLabels(dir, opts.Recursive)
	if err != nil {
		return nil, 0, err
	}
	log.WithField("count", len(paths)).Debugf("found label files in %s", dir)

	tiles, errs := megdr.LoadTiles(paths, opts)
	if tiles == nil && len(errs) > 0 {
		return nil, 0, fmt.Errorf("load labels: %w", errs[0])
	}
	if len(errs) > 0 {
		log.WithField("count", len(errs)).Warn("some labels could not be loaded")
	}
	return megdr.NewTileSet(tiles), len(paths), nil
}

func (a *app) gapOptions() megdr.GapOptions {
	opts := megdr.DefaultGapOptions()
	opts.Tolerance = a.cfg.Gaps.Tolerance
	return opts
}

func (a *app) analyzeCommand(cmd *cobra.Command, args []string) error {
	dir := a.dataDir(args)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Searching for .lbl files in %s...\n", dir)
	set, found, err := a.loadTiles(dir, a.cfg.Recursive)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Found %d label files.\n", found)

	if a.flagList {
		if err := report.Listing(out, set.Tiles()); err != nil {
			return err
		}
	}
	if err := report.Summary(out, megdr.ComputeRegionCoverage(set)); err != nil {
		return err
	}
	gaps := megdr.FindGaps(set, a.gapOptions())
	if err := report.CoverageAnalysis(out, megdr.HasSouthPolarCoverage(set), gaps); err != nil {
		return err
	}
	return report.Overlaps(out, megdr.CompareTiers(set))
}

func (a *app) locateCommand(cmd *cobra.Command, args []string) error {
	dir := a.dataDir(args)
	out := cmd.OutOrStdout()
	target := a.cfg.Target

	fmt.Fprintf(out, "Checking which MOLA data file covers %s (%s)...\n",
		target.Name, report.Coordinates(target.Lat, target.Lon))
	// A location lookup always searches the whole tree.
	set, found, err := a.loadTiles(dir, true)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Found %d label files.\n", found)

	if err := report.Listing(out, set.Tiles()); err != nil {
		return err
	}
	idx := megdr.BuildIndex(set.Tiles())
	return report.PointCoverage(out, target.Name, megdr.LocatePoint(idx, target.Lat, target.Lon))
}

func (a *app) exportCommand(cmd *cobra.Command, args []string) error {
	set, _, err := a.loadTiles(a.dataDir(args), a.cfg.Recursive)
	if err != nil {
		return err
	}

	fc := megdr.FeatureCollection(set, megdr.FindGaps(set, a.gapOptions()), megdr.CompareTiers(set))
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if a.flagOut != "-" && a.flagOut != "" {
		f, err := os.Create(a.flagOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", a.flagOut, err)
		}
		defer f.Close()
		w = f
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write geojson: %w", err)
	}
	log.WithField("features", len(fc.Features)).Info("exported GeoJSON")
	return nil
}
