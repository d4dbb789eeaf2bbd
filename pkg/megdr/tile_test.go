package megdr

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetlebugorg/megdr/internal/label"
)

func parseLabel(t *testing.T, name, body string) *label.Label {
	t.Helper()
	lbl, err := label.NewParser().ParseReader(name, strings.NewReader(body))
	require.NoError(t, err)
	return lbl
}

func TestTileFromLabelResolutionSource(t *testing.T) {
	const bounds = "MINIMUM_LATITUDE = 0\nMAXIMUM_LATITUDE = 44\n" +
		"WESTERNMOST_LONGITUDE = 0\nEASTERNMOST_LONGITUDE = 90\n"

	tests := []struct {
		name       string
		file       string
		body       string
		wantRes    int
		wantSource ResolutionSource
		wantWarn   bool
	}{
		{
			name:       "map resolution",
			file:       "megt44n000hb.lbl",
			body:       bounds + "MAP_RESOLUTION = 128 <PIX/DEG>\n",
			wantRes:    128,
			wantSource: ResolutionFromLabel,
		},
		{
			name:       "map resolution wins over filename",
			file:       "megt44n000cb.lbl",
			body:       bounds + "MAP_RESOLUTION = 64\n",
			wantRes:    64,
			wantSource: ResolutionFromLabel,
		},
		{
			name:       "grid size",
			file:       "megt44n000hb.lbl",
			body:       bounds + "LINE_SAMPLES = 11520\nMAP_PROJECTION_TYPE = \"SIMPLE CYLINDRICAL\"\n",
			wantRes:    128,
			wantSource: ResolutionFromGrid,
		},
		{
			name:       "grid ignored for polar stereographic",
			file:       "megt_n_512_1.lbl",
			body:       bounds + "LINE_SAMPLES = 11520\nMAP_PROJECTION_TYPE = \"POLAR STEREOGRAPHIC\"\n",
			wantRes:    512,
			wantSource: ResolutionFromFilename,
			wantWarn:   true,
		},
		{
			name:       "filename fallback",
			file:       "megt44n000hb.lbl",
			body:       bounds,
			wantRes:    128,
			wantSource: ResolutionFromFilename,
			wantWarn:   true,
		},
		{
			name:       "unknown",
			file:       "custom.lbl",
			body:       bounds,
			wantSource: ResolutionUnknown,
			wantWarn:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, hook := test.NewNullLogger()

			tile := TileFromLabel(parseLabel(t, tt.file, tt.body), "/data/"+tt.file, logger)

			assert.Equal(t, tt.wantRes, tile.Resolution)
			assert.Equal(t, tt.wantSource, tile.ResolutionSource)
			assert.Equal(t, tt.file, tile.ID)
			assert.Equal(t, "/data/"+tt.file, tile.Path)
			if tt.wantWarn {
				require.NotNil(t, hook.LastEntry())
				assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
			} else {
				assert.Empty(t, hook.AllEntries())
			}
		})
	}
}

func TestTileFromLabelBounds(t *testing.T) {
	t.Run("zero is a present value", func(t *testing.T) {
		lbl := parseLabel(t, "megt00n000hb.lbl",
			"MINIMUM_LATITUDE = 0\nMAXIMUM_LATITUDE = 0\n"+
				"WESTERNMOST_LONGITUDE = 0\nEASTERNMOST_LONGITUDE = 0\nMAP_RESOLUTION = 128\n")
		logger, _ := test.NewNullLogger()

		tile := TileFromLabel(lbl, "megt00n000hb.lbl", logger)

		assert.True(t, tile.HasBounds())
		assert.Equal(t, 0.0, tile.Area())
		assert.Equal(t, RegionEquatorial, tile.Region)
	})

	t.Run("inverted latitude dropped", func(t *testing.T) {
		lbl := parseLabel(t, "megt44n000hb.lbl",
			"MINIMUM_LATITUDE = 44\nMAXIMUM_LATITUDE = 0\n"+
				"WESTERNMOST_LONGITUDE = 0\nEASTERNMOST_LONGITUDE = 90\nMAP_RESOLUTION = 128\n")
		logger, hook := test.NewNullLogger()

		tile := TileFromLabel(lbl, "megt44n000hb.lbl", logger)

		assert.Nil(t, tile.LatMin)
		assert.Nil(t, tile.LatMax)
		require.NotNil(t, tile.LonMin)
		assert.Equal(t, 90.0, *tile.LonMax)
		assert.False(t, tile.HasBounds())
		assert.True(t, tile.HasLonRange())
		assert.Equal(t, 0.0, tile.Area())
		assert.Len(t, hook.AllEntries(), 1)
	})

	t.Run("missing field", func(t *testing.T) {
		lbl := parseLabel(t, "megt44s090hb.lbl",
			"MINIMUM_LATITUDE = -44\nWESTERNMOST_LONGITUDE = 90\nEASTERNMOST_LONGITUDE = 180\n")
		logger, _ := test.NewNullLogger()

		tile := TileFromLabel(lbl, "megt44s090hb.lbl", logger)

		_, ok := tile.GeoBounds()
		assert.False(t, ok)
		assert.Nil(t, tile.LatMax)
		assert.Equal(t, RegionMidSouth, tile.Region)
	})
}

func TestResolutionSourceString(t *testing.T) {
	assert.Equal(t, "label", ResolutionFromLabel.String())
	assert.Equal(t, "grid", ResolutionFromGrid.String())
	assert.Equal(t, "filename", ResolutionFromFilename.String())
	assert.Equal(t, "unknown", ResolutionUnknown.String())
}
