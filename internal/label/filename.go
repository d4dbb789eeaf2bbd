package label

import (
	"regexp"
	"strconv"
	"strings"
)

// MEGDR product names encode resolution in two ways:
//
//	megt_n_512_1.lbl   polar products, pixels per degree spelled out
//	megt44n000hb.lbl   regional products, letter code before the type letter
//
// The letter code follows the MEGDR volume convention:
// c=4, e=16, f=32, g=64, h=128 pixels per degree.
var (
	polarNamePattern    = regexp.MustCompile(`^megt_[ns]_(\d+)_\d+\.`)
	regionalNamePattern = regexp.MustCompile(`^megt(\d{2})([ns])(\d{3})([a-z])[a-z]\.`)
	bandNamePattern     = regexp.MustCompile(`^megt(\d+)([ns])(\d{3})?`)
)

var resolutionCodes = map[byte]int{
	'c': 4,
	'e': 16,
	'f': 32,
	'g': 64,
	'h': 128,
}

// ResolutionFromFilename infers pixels per degree from a MEGDR product name.
// This is a last resort; label content takes precedence.
func ResolutionFromFilename(name string) (int, bool) {
	lower := strings.ToLower(name)

	if m := polarNamePattern.FindStringSubmatch(lower); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > 0 {
			return n, true
		}
	}

	if m := regionalNamePattern.FindStringSubmatch(lower); m != nil {
		if ppd, ok := resolutionCodes[m[4][0]]; ok {
			return ppd, true
		}
	}

	return 0, false
}

// NameParts describes the latitude band encoded in a MEGDR product name.
type NameParts struct {
	Polar      bool // megt_n_ / megt_s_ products
	North      bool // hemisphere
	LatBand    int  // regional products only, e.g. 44 in megt44n000hb
	LonStart   int  // regional products only, e.g. 180 in megt44n180hb
	Recognized bool // false when the name follows neither convention
}

// ParseName extracts the band information from a MEGDR product name.
func ParseName(name string) NameParts {
	lower := strings.ToLower(name)

	switch {
	case strings.HasPrefix(lower, "megt_n_"):
		return NameParts{Polar: true, North: true, Recognized: true}
	case strings.HasPrefix(lower, "megt_s_"):
		return NameParts{Polar: true, North: false, Recognized: true}
	}

	if m := bandNamePattern.FindStringSubmatch(lower); m != nil {
		band, _ := strconv.Atoi(m[1])
		lon, _ := strconv.Atoi(m[3])
		return NameParts{
			North:      m[2] == "n",
			LatBand:    band,
			LonStart:   lon,
			Recognized: true,
		}
	}

	return NameParts{}
}
