package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLabel(t *testing.T, dir, name string, latMin, latMax, lonMin, lonMax float64, res int) {
	t.Helper()
	body := fmt.Sprintf("MAP_RESOLUTION = %d <PIX/DEG>\n"+
		"MINIMUM_LATITUDE = %g <DEGREE>\nMAXIMUM_LATITUDE = %g <DEGREE>\n"+
		"WESTERNMOST_LONGITUDE = %g <DEGREE>\nEASTERNMOST_LONGITUDE = %g <DEGREE>\n",
		res, latMin, latMax, lonMin, lonMax)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func dataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeLabel(t, dir, "megt00n000hb.lbl", 0, 44, 0, 90, 128)
	writeLabel(t, dir, "megt00n180hb.lbl", 0, 44, 180, 270, 128)
	writeLabel(t, dir, "megt00n000gb.lbl", 0, 44, 0, 180, 64)
	return dir
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	chdir(t, t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestAnalyzeCommand(t *testing.T) {
	out := run(t, "analyze", dataDir(t), "--list")

	assert.Contains(t, out, "Found 3 label files.")
	assert.Contains(t, out, "All found files and their coverage:")
	assert.Contains(t, out, "## 128 pixels/degree Resolution (2 files)")
	assert.Contains(t, out, "## 64 pixels/degree Resolution (1 files)")
	assert.Contains(t, out, "128 pixels/degree, Equatorial: Longitude gaps detected - [(90.0, 180.0)]")
	assert.Contains(t, out, "Comparing 128 pixels/degree with 64 pixels/degree:")
	assert.Contains(t, out, "South Polar region (below ~75°S) appears to be missing")
}

func TestLocateCommand(t *testing.T) {
	dir := dataDir(t)

	out := run(t, "locate", dir)
	assert.Contains(t, out, "Checking which MOLA data file covers Jezero Crater (18.4446°N, 77.4509°E)...")
	assert.Contains(t, out, "Files that cover Jezero Crater:")
	assert.Contains(t, out, "  megt00n000hb.lbl:")
	assert.Contains(t, out, "    Image file exists: False")

	out = run(t, "locate", dir, "--lat", "60", "--lon", "45", "--name", "Somewhere North")
	assert.Contains(t, out, "No files found that cover Somewhere North coordinates.")
	assert.Contains(t, out, "    Distance: 16.00°")
}

func TestLocateSearchesNestedDirectories(t *testing.T) {
	dir := dataDir(t)
	nested := filepath.Join(dir, "meg128", "south")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	writeLabel(t, nested, "megt44s000hb.lbl", -88, -44, 0, 90, 128)

	out := run(t, "analyze", dir)
	assert.Contains(t, out, "Found 3 label files.")

	out = run(t, "locate", dir, "--lat=-60", "--lon", "45", "--name", "Southern Site")
	assert.Contains(t, out, "Found 4 label files.")
	assert.Contains(t, out, "Files that cover Southern Site:")
	assert.Contains(t, out, "  megt44s000hb.lbl:")
}

func TestFoundCountIncludesUnreadableLabels(t *testing.T) {
	dir := dataDir(t)
	require.NoError(t, os.Symlink(filepath.Join(dir, "does-not-exist"), filepath.Join(dir, "megt00n270hb.lbl")))

	out := run(t, "analyze", dir)
	assert.Contains(t, out, "Found 4 label files.")
	assert.Contains(t, out, "## 128 pixels/degree Resolution (2 files)")
}

func TestExportCommand(t *testing.T) {
	dir := dataDir(t)
	path := filepath.Join(t.TempDir(), "coverage.geojson")

	run(t, "export", dir, "--out", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)

	kinds := map[string]int{}
	for _, f := range fc.Features {
		kinds[f.Properties["kind"].(string)]++
	}
	assert.Equal(t, 3, kinds["tile"])
	assert.Equal(t, 1, kinds["gap"])
	assert.Equal(t, 2, kinds["overlap"])
}

func TestAnalyzeWithCache(t *testing.T) {
	dir := dataDir(t)
	cache := filepath.Join(t.TempDir(), "labels.db")

	first := run(t, "analyze", dir, "--cache", cache)
	second := run(t, "analyze", dir, "--cache", cache)

	assert.Equal(t, first, second)
	_, err := os.Stat(cache)
	assert.NoError(t, err)
}

func TestInvalidConfigRejected(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MEGDR_LOG_FORMAT", "xml")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"analyze", dataDir(t)})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
