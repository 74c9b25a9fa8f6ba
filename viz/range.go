package viz

import "math"

// AutoRange returns the value range of points over d. Values at d.Min and
// d.Max are interpolated from the bracketing samples and included, so the
// range covers whatever is visible at the window edges. If every point lies
// before d.Min the range collapses to the last value. The second result is
// false for an empty series.
func AutoRange(points []Sample, d Domain) (Range, bool) {
	if len(points) == 0 {
		return Range{}, false
	}
	i := 0
	for i < len(points) && points[i].Time < d.Min {
		i++
	}
	if i >= len(points) {
		v := points[len(points)-1].Value
		return Range{Min: v, Max: v}, true
	}

	var r Range
	if i != 0 {
		v, err := Interpolate(points[i-1], points[i], d.Min)
		if err != nil {
			v = points[i].Value
		}
		r = Range{Min: v, Max: v}
	} else {
		r = Range{Min: points[0].Value, Max: points[0].Value}
		i = 1
	}
	for i < len(points) && points[i].Time <= d.Max {
		r = r.Include(points[i].Value)
		i++
	}
	if i != len(points) {
		if v, err := Interpolate(points[i-1], points[i], d.Max); err == nil {
			r = r.Include(v)
		}
	}
	return r, true
}

// EnforceMinimumSpan widens r symmetrically about its midpoint to exactly
// minSpan when it is narrower than that.
func EnforceMinimumSpan(r Range, minSpan float64) Range {
	if r.Span() >= minSpan {
		return r
	}
	mid := (r.Min + r.Max) / 2
	return Range{Min: mid - minSpan/2, Max: mid + minSpan/2}
}

// EnforceFloor shifts r upwards, keeping its span, so that r.Min is not
// below floor. A nil floor leaves r unchanged.
func EnforceFloor(r Range, floor *float64) Range {
	if floor == nil || r.Min >= *floor {
		return r
	}
	shift := *floor - r.Min
	return Range{Min: r.Min + shift, Max: r.Max + shift}
}

// PadRange moves both bounds outwards by pad.
func PadRange(r Range, pad float64) Range {
	return Range{Min: r.Min - pad, Max: r.Max + pad}
}

// RoundOutward snaps both bounds outwards to whole numbers.
func RoundOutward(r Range) Range {
	return Range{Min: math.Floor(r.Min), Max: math.Ceil(r.Max)}
}
