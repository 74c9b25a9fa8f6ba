package viz

// Interpolate returns the value at time t on the straight line through a and b.
func Interpolate(a, b Sample, t float64) (float64, error) {
	if a.Time == b.Time {
		return 0, ErrDegenerateInterval
	}
	return a.Value + (b.Value-a.Value)*(t-a.Time)/(b.Time-a.Time), nil
}

// CheckSorted returns ErrUnsorted if any sample is older than its predecessor.
// Equal times are allowed.
func CheckSorted(series []Sample) error {
	for i := 1; i < len(series); i++ {
		if series[i].Time < series[i-1].Time {
			return ErrUnsorted
		}
	}
	return nil
}

// ClipToDomain returns a copy of series trimmed or extended to cover d.
//
// On the right the last value is held flat up to d.Max, or, if samples run
// past d.Max, they are dropped and a boundary sample is interpolated at
// d.Max. On the left samples before d.Min are dropped and, if any were, a
// boundary sample is interpolated at d.Min. A series that starts inside the
// window keeps its own start.
//
// If every sample lies after d.Max the result is a single sample at d.Max
// holding the first value.
func ClipToDomain(series []Sample, d Domain) ([]Sample, error) {
	if err := CheckSorted(series); err != nil {
		return nil, err
	}
	out := make([]Sample, len(series), len(series)+2)
	copy(out, series)
	if len(out) == 0 {
		return out, nil
	}

	// right edge
	last := out[len(out)-1]
	if last.Time < d.Max {
		out = append(out, Sample{Time: d.Max, Value: last.Value})
	} else if last.Time > d.Max {
		k := 0
		for k < len(out) && out[k].Time <= d.Max {
			k++
		}
		if k == 0 {
			out = []Sample{{Time: d.Max, Value: out[0].Value}}
		} else {
			v, err := Interpolate(out[k-1], out[k], d.Max)
			if err != nil {
				return nil, err
			}
			out = append(out[:k], Sample{Time: d.Max, Value: v})
		}
	}

	// left edge
	j := 0
	for j < len(out) && out[j].Time < d.Min {
		j++
	}
	if j > 0 && j < len(out) {
		v, err := Interpolate(out[j-1], out[j], d.Min)
		if err != nil {
			return nil, err
		}
		out = append([]Sample{{Time: d.Min, Value: v}}, out[j:]...)
	}
	return out, nil
}

// ClipToDomainHold is ClipToDomain that also holds the first value back to
// d.Min when the series starts inside the window, so the result always spans
// the whole domain.
func ClipToDomainHold(series []Sample, d Domain) ([]Sample, error) {
	out, err := ClipToDomain(series, d)
	if err != nil || len(out) == 0 {
		return out, err
	}
	if out[0].Time > d.Min {
		out = append([]Sample{{Time: d.Min, Value: out[0].Value}}, out...)
	}
	return out, nil
}
