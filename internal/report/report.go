// Package report renders megdr analysis results as console text.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beetlebugorg/megdr/pkg/megdr"
)

// printer writes formatted lines and remembers the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Degrees formats an optional value the way the reports show it: "None" when
// absent, and always with a fractional part ("44.0", "18.4446").
func Degrees(v *float64) string {
	if v == nil {
		return "None"
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}

// ResolutionName is the heading used for one resolution tier.
func ResolutionName(ppd int) string {
	if ppd <= 0 {
		return "unknown pixels/degree"
	}
	return fmt.Sprintf("%d pixels/degree", ppd)
}

// Extent formats "Lat: a° to b°, Lon: c° to d°".
func Extent(t megdr.Tile) string {
	return fmt.Sprintf("Lat: %s° to %s°, Lon: %s° to %s°",
		Degrees(t.LatMin), Degrees(t.LatMax), Degrees(t.LonMin), Degrees(t.LonMax))
}

// Summary prints tiles and covered area per resolution and region.
func Summary(w io.Writer, coverage []megdr.ResolutionCoverage) error {
	p := &printer{w: w}
	p.printf("\n=== MOLA MEGDR Datasets Summary ===\n")

	for _, rc := range coverage {
		p.printf("\n## %s Resolution (%d files)\n", ResolutionName(rc.Resolution), rc.TileCount)
		for _, region := range rc.Regions {
			p.printf("\n  %s Region:\n", region.Region)
			for _, t := range region.Tiles {
				p.printf("    %s - %s\n", t.ID, Extent(t))
			}
			p.printf("    Coverage: ~%.1f square degrees (~%.1f%% of Mars surface)\n", region.Area, region.Percent)
		}
	}
	return p.err
}

// CoverageAnalysis prints the south polar warning and longitude gaps.
func CoverageAnalysis(w io.Writer, southPolar bool, gaps []megdr.GroupGaps) error {
	p := &printer{w: w}
	p.printf("\n=== Coverage Analysis ===\n")

	if !southPolar {
		p.printf("⚠️ WARNING: South Polar region (below ~75°S) appears to be missing from your data files.\n")
	}
	for _, gg := range gaps {
		p.printf("⚠️ %s, %s: Longitude gaps detected - %s\n", ResolutionName(gg.Resolution), gg.Region, formatGaps(gg.Gaps))
	}
	return p.err
}

func formatGaps(gaps []megdr.Gap) string {
	parts := make([]string, len(gaps))
	for i, g := range gaps {
		parts[i] = fmt.Sprintf("(%s, %s)", formatFloat(g.From), formatFloat(g.To))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Overlaps prints overlaps between adjacent resolution tiers.
func Overlaps(w io.Writer, tiers []megdr.TierComparison) error {
	p := &printer{w: w}
	p.printf("\n=== Resolution Overlap Analysis ===\n")

	for _, tc := range tiers {
		p.printf("\nComparing %s with %s:\n", ResolutionName(tc.High), ResolutionName(tc.Low))
		for _, to := range tc.Results {
			p.printf("  %s (%s) overlaps with:\n", to.High.ID, to.High.Region)
			for _, o := range to.Overlaps {
				p.printf("    - %s (%s): %.1f sq° at Lat %s° to %s°, Lon %s° to %s°\n",
					o.Low.ID, o.Low.Region, o.Area,
					formatFloat(o.Bounds.MinLat), formatFloat(o.Bounds.MaxLat),
					formatFloat(o.Bounds.MinLon), formatFloat(o.Bounds.MaxLon))
			}
		}
	}
	return p.err
}

// Listing prints every tile with its extent in load order.
func Listing(w io.Writer, tiles []megdr.Tile) error {
	p := &printer{w: w}
	p.printf("\nAll found files and their coverage:\n")
	for _, t := range tiles {
		p.printf("  %s:\n", t.ID)
		p.printf("    Coverage: %s\n", Extent(t))
	}
	return p.err
}

// PointCoverage prints the tiles covering a named location, or the closest
// tile when none does.
func PointCoverage(w io.Writer, name string, pc megdr.PointCoverage) error {
	p := &printer{w: w}

	if len(pc.Covering) == 0 {
		p.printf("\nNo files found that cover %s coordinates.\n", name)
		if pc.Nearest != nil {
			p.printf("\nClosest file to %s:\n", name)
			p.printf("  %s:\n", pc.Nearest.Tile.ID)
			p.printf("    Coverage: %s\n", Extent(pc.Nearest.Tile))
			p.printf("    Distance: %.2f°\n", pc.Nearest.Distance)
		}
		return p.err
	}

	p.printf("\nFiles that cover %s:\n", name)
	for _, ct := range pc.Covering {
		p.printf("\n  %s:\n", ct.Tile.ID)
		p.printf("    Coverage: %s\n", Extent(ct.Tile))
		p.printf("    Resolution: %s (from %s)\n", ResolutionName(ct.Tile.Resolution), ct.Tile.ResolutionSource)
		p.printf("    Image file exists: %s\n", titleBool(ct.ImageExists))
		if ct.ImageExists {
			p.printf("    Image file size: %.2f MB\n", float64(ct.ImageSize)/(1024*1024))
		}
	}
	return p.err
}

// Coordinates formats a location as "18.4446°N, 77.4509°E".
func Coordinates(lat, lon float64) string {
	ns := "N"
	if lat < 0 {
		ns, lat = "S", -lat
	}
	return fmt.Sprintf("%s°%s, %s°E", formatFloat(lat), ns, formatFloat(megdr.NormalizeLongitude(lon)))
}

func titleBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
