package label

// ValidateLatitude checks a planetocentric latitude in degrees
func ValidateLatitude(key string, lat float64) error {
	if lat < -90.0 || lat > 90.0 {
		return &ErrOutOfRange{Key: key, Value: lat}
	}
	return nil
}

// ValidateLongitude checks a longitude in degrees.
// MEGDR products use 0..360 east; -180..180 is accepted as well.
func ValidateLongitude(key string, lon float64) error {
	if lon < -180.0 || lon > 360.0 {
		return &ErrOutOfRange{Key: key, Value: lon}
	}
	return nil
}

// ValidateRange checks min <= max when both are present.
// A missing side is not an error here; callers treat it as MissingField.
func ValidateRange(axis string, min, max *float64) error {
	if min == nil || max == nil {
		return nil
	}
	if *min > *max {
		return &ErrInvalidBounds{Axis: axis, Min: *min, Max: *max}
	}
	return nil
}

// Extent holds the four optional bound values of a label after validation.
type Extent struct {
	LatMin, LatMax, LonMin, LonMax *float64
}

// ValidatedExtent reads the four bound keywords and drops what fails
// validation. Values out of range are dropped individually; an inverted
// min/max pair is dropped as a pair. The returned errors describe every drop
// and never include plain missing fields.
func (l *Label) ValidatedExtent() (Extent, []error) {
	var errs []error
	ext := Extent{
		LatMin: l.MinimumLatitude(),
		LatMax: l.MaximumLatitude(),
		LonMin: l.WesternmostLongitude(),
		LonMax: l.EasternmostLongitude(),
	}

	for _, f := range []struct {
		key   string
		value **float64
		check func(string, float64) error
	}{
		{KeyMinimumLatitude, &ext.LatMin, ValidateLatitude},
		{KeyMaximumLatitude, &ext.LatMax, ValidateLatitude},
		{KeyWesternLongitude, &ext.LonMin, ValidateLongitude},
		{KeyEasternLongitude, &ext.LonMax, ValidateLongitude},
	} {
		if *f.value == nil {
			continue
		}
		if err := f.check(f.key, **f.value); err != nil {
			errs = append(errs, err)
			*f.value = nil
		}
	}

	if err := ValidateRange("latitude", ext.LatMin, ext.LatMax); err != nil {
		errs = append(errs, err)
		ext.LatMin, ext.LatMax = nil, nil
	}
	if err := ValidateRange("longitude", ext.LonMin, ext.LonMax); err != nil {
		errs = append(errs, err)
		ext.LonMin, ext.LonMax = nil, nil
	}

	return ext, errs
}
