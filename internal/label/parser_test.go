package label

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const megdrLabel = `PDS_VERSION_ID               = "PDS3"
/* MOLA MEGDR topography, 128 pixels per degree */
^IMAGE                       = "MEGT44N000HB.IMG"
DATA_SET_ID                  = "MGS-M-MOLA-5-MEGDR-L3-V1.0"
DESCRIPTION                  = "Topography in meters relative to the
                               areoid. LINES = 9 on this line is prose."
OBJECT                       = IMAGE
  LINES                      = 5632
  LINE_SAMPLES               = 11520
  SAMPLE_TYPE                = MSB_INTEGER
END_OBJECT                   = IMAGE
OBJECT                       = IMAGE_MAP_PROJECTION
  MAP_PROJECTION_TYPE        = "SIMPLE CYLINDRICAL"
  MAP_RESOLUTION             = 128 <PIXEL/DEGREE>
  MAXIMUM_LATITUDE           = 44.0000 <DEGREE>
  MINIMUM_LATITUDE           = 0.0000 <DEGREE>
  WESTERNMOST_LONGITUDE      = 0.0000 <DEGREE>
  EASTERNMOST_LONGITUDE      = 90.0000 <DEGREE> /* east */
END_OBJECT                   = IMAGE_MAP_PROJECTION
END
`

func TestParseReaderMEGDRLabel(t *testing.T) {
	lbl, err := NewParser().ParseReader("megt44n000hb.lbl", strings.NewReader(megdrLabel))
	require.NoError(t, err)

	assert.Equal(t, "megt44n000hb.lbl", lbl.Name)
	require.NotNil(t, lbl.MinimumLatitude())
	assert.Equal(t, 0.0, *lbl.MinimumLatitude())
	assert.Equal(t, 44.0, *lbl.MaximumLatitude())
	assert.Equal(t, 0.0, *lbl.WesternmostLongitude())
	assert.Equal(t, 90.0, *lbl.EasternmostLongitude())
	assert.Equal(t, 128, *lbl.MapResolution())
	assert.Equal(t, 5632, *lbl.Lines(), "quoted prose must not shadow the real LINES")
	assert.Equal(t, 11520, *lbl.LineSamples())
	assert.Equal(t, "SIMPLE CYLINDRICAL", lbl.ProjectionType())

	pointer, ok := lbl.Raw("^image")
	assert.True(t, ok)
	assert.Equal(t, `"MEGT44N000HB.IMG"`, pointer)

	_, ok = lbl.Raw("OBJECT")
	assert.False(t, ok, "OBJECT statements are dropped by default")
}

func TestParseKeepObjects(t *testing.T) {
	p := NewParserWithOptions(ParseOptions{KeepObjects: true})
	lbl, err := p.ParseReader("x.lbl", strings.NewReader(megdrLabel))
	require.NoError(t, err)

	v, err := lbl.String("OBJECT")
	require.NoError(t, err)
	assert.Equal(t, "IMAGE", v, "first occurrence wins")
}

func TestParseMissingValues(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		present bool
	}{
		{"quoted N/A", `MINIMUM_LATITUDE = 'N/A'`, false},
		{"bare N/A", `MINIMUM_LATITUDE = N/A`, false},
		{"UNK", `MINIMUM_LATITUDE = UNK`, false},
		{"empty", `MINIMUM_LATITUDE =`, false},
		{"garbage", `MINIMUM_LATITUDE = north`, false},
		{"integer", `MINIMUM_LATITUDE = -88`, true},
		{"signed decimal", `MINIMUM_LATITUDE = +12.5`, true},
		{"with unit", `MINIMUM_LATITUDE = -44.0000 <DEGREE>`, true},
		{"lower case key", `minimum_latitude = 3.0`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lbl, err := NewParser().ParseReader("t.lbl", strings.NewReader(tt.line+"\n"))
			require.NoError(t, err)

			got := lbl.MinimumLatitude()
			assert.Equal(t, tt.present, got != nil)

			_, ferr := lbl.Float(KeyMinimumLatitude)
			if tt.present {
				assert.NoError(t, ferr)
				return
			}
			var missing *ErrMissingField
			require.ErrorAs(t, ferr, &missing)
			assert.Equal(t, KeyMinimumLatitude, missing.Key)
		})
	}
}

func TestParseCommentMarkerInsideQuotes(t *testing.T) {
	body := `NOTE = "see /* here"
MINIMUM_LATITUDE = 0.0 /* south edge */
MAXIMUM_LATITUDE = 44.0
TITLE = "a /* b" /* trailing */
WESTERNMOST_LONGITUDE = 0.0
`
	lbl, err := NewParser().ParseReader("t.lbl", strings.NewReader(body))
	require.NoError(t, err)

	note, ok := lbl.Raw("NOTE")
	require.True(t, ok)
	assert.Equal(t, `"see /* here"`, note)
	title, _ := lbl.Raw("TITLE")
	assert.Equal(t, `"a /* b"`, title)

	require.NotNil(t, lbl.MinimumLatitude())
	assert.Equal(t, 0.0, *lbl.MinimumLatitude())
	require.NotNil(t, lbl.MaximumLatitude())
	assert.Equal(t, 44.0, *lbl.MaximumLatitude())
	require.NotNil(t, lbl.WesternmostLongitude())
}

func TestStripComment(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"A = 1 /* c */", "A = 1 "},
		{`A = "x /* y"`, `A = "x /* y"`},
		{`A = "x" /* y */`, `A = "x" `},
		{"/* whole line */", ""},
		{"A = 1", "A = 1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, stripComment(tt.line), "stripComment(%q)", tt.line)
	}
}

func TestParseAbsentKey(t *testing.T) {
	lbl, err := NewParser().ParseReader("t.lbl", strings.NewReader("LINES = 10\n"))
	require.NoError(t, err)

	_, err = lbl.Float(KeyEasternLongitude)
	var missing *ErrMissingField
	require.ErrorAs(t, err, &missing)
	assert.Empty(t, missing.Value)
	assert.Contains(t, err.Error(), "missing")
}

func TestIntRejectsFraction(t *testing.T) {
	lbl, err := NewParser().ParseReader("t.lbl", strings.NewReader("MAP_RESOLUTION = 128.5\nLINES = 64.0\n"))
	require.NoError(t, err)

	assert.Nil(t, lbl.MapResolution())
	require.NotNil(t, lbl.Lines())
	assert.Equal(t, 64, *lbl.Lines())
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "megt44n000hb.lbl")
	require.NoError(t, os.WriteFile(path, []byte(megdrLabel), 0o644))

	lbl, err := NewParser().Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "megt44n000hb.lbl", lbl.Name)
	assert.Greater(t, lbl.Len(), 5)
	assert.Contains(t, lbl.Keys(), KeyMapResolution)

	_, err = NewParser().Parse(filepath.Join(dir, "missing.lbl"))
	assert.Error(t, err)
}
