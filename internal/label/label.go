package label

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Keywords read from MOLA MEGDR labels.
const (
	KeyMinimumLatitude   = "MINIMUM_LATITUDE"
	KeyMaximumLatitude   = "MAXIMUM_LATITUDE"
	KeyWesternLongitude  = "WESTERNMOST_LONGITUDE"
	KeyEasternLongitude  = "EASTERNMOST_LONGITUDE"
	KeyMapResolution     = "MAP_RESOLUTION"
	KeyMapProjectionType = "MAP_PROJECTION_TYPE"
	KeyLines             = "LINES"
	KeyLineSamples       = "LINE_SAMPLES"
)

// Label represents a parsed PDS label.
//
// Values are stored raw (unit suffix and quotes included) and interpreted by
// the typed accessors, which report absent or unparsable values as
// *ErrMissingField.
type Label struct {
	Name   string            // Base name of the label file
	values map[string]string // First occurrence of each upper-case key
}

func newLabel(name string) *Label {
	return &Label{
		Name:   name,
		values: make(map[string]string),
	}
}

// set stores a value unless the key was seen before.
func (l *Label) set(key, value string) {
	if _, ok := l.values[key]; ok {
		return
	}
	l.values[key] = value
}

// Raw returns the value as written in the label.
func (l *Label) Raw(key string) (string, bool) {
	v, ok := l.values[strings.ToUpper(key)]
	return v, ok
}

// Keys returns all keys in sorted order.
func (l *Label) Keys() []string {
	keys := make([]string, 0, len(l.values))
	for k := range l.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of distinct keys.
func (l *Label) Len() int {
	return len(l.values)
}

// String returns the cleaned textual value: unit removed, quotes trimmed.
// N/A style placeholders count as missing.
func (l *Label) String(key string) (string, error) {
	raw, ok := l.Raw(key)
	if !ok {
		return "", &ErrMissingField{Key: strings.ToUpper(key)}
	}
	v := cleanValue(raw)
	if isPlaceholder(v) {
		return "", &ErrMissingField{Key: strings.ToUpper(key), Value: raw}
	}
	return v, nil
}

// Float returns the value as a float64.
func (l *Label) Float(key string) (float64, error) {
	v, err := l.String(key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		raw, _ := l.Raw(key)
		return 0, &ErrMissingField{Key: strings.ToUpper(key), Value: raw}
	}
	return f, nil
}

// Int returns the value as an int. Integral floats such as "128.0" are accepted.
func (l *Label) Int(key string) (int, error) {
	f, err := l.Float(key)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		raw, _ := l.Raw(key)
		return 0, &ErrMissingField{Key: strings.ToUpper(key), Value: raw}
	}
	return int(f), nil
}

// OptionalFloat returns nil when the value is absent or unparsable.
func (l *Label) OptionalFloat(key string) *float64 {
	f, err := l.Float(key)
	if err != nil {
		return nil
	}
	return &f
}

// OptionalInt returns nil when the value is absent or unparsable.
func (l *Label) OptionalInt(key string) *int {
	n, err := l.Int(key)
	if err != nil {
		return nil
	}
	return &n
}

// MinimumLatitude returns MINIMUM_LATITUDE in degrees, or nil.
func (l *Label) MinimumLatitude() *float64 {
	return l.OptionalFloat(KeyMinimumLatitude)
}

// MaximumLatitude returns MAXIMUM_LATITUDE in degrees, or nil.
func (l *Label) MaximumLatitude() *float64 {
	return l.OptionalFloat(KeyMaximumLatitude)
}

// WesternmostLongitude returns WESTERNMOST_LONGITUDE in degrees east, or nil.
func (l *Label) WesternmostLongitude() *float64 {
	return l.OptionalFloat(KeyWesternLongitude)
}

// EasternmostLongitude returns EASTERNMOST_LONGITUDE in degrees east, or nil.
func (l *Label) EasternmostLongitude() *float64 {
	return l.OptionalFloat(KeyEasternLongitude)
}

// MapResolution returns MAP_RESOLUTION in pixels per degree, or nil.
func (l *Label) MapResolution() *int {
	return l.OptionalInt(KeyMapResolution)
}

// Lines returns the image LINES count, or nil.
func (l *Label) Lines() *int {
	return l.OptionalInt(KeyLines)
}

// LineSamples returns the image LINE_SAMPLES count, or nil.
func (l *Label) LineSamples() *int {
	return l.OptionalInt(KeyLineSamples)
}

// ProjectionType returns MAP_PROJECTION_TYPE upper-cased, or "".
func (l *Label) ProjectionType() string {
	v, err := l.String(KeyMapProjectionType)
	if err != nil {
		return ""
	}
	return strings.ToUpper(v)
}

// cleanValue strips a <UNIT> suffix and surrounding quotes.
func cleanValue(raw string) string {
	v := strings.TrimSpace(raw)
	if i := strings.IndexByte(v, '<'); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	v = strings.Trim(v, `"'`)
	return strings.TrimSpace(v)
}

// isPlaceholder reports PDS null-value placeholders.
func isPlaceholder(v string) bool {
	switch strings.ToUpper(v) {
	case "", "N/A", "UNK", "NULL":
		return true
	}
	return false
}
