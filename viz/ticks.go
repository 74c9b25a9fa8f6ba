package viz

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Day is one day in seconds, the usual unit base of the time axis.
const Day = 24 * 60 * 60

// maxTicks bounds TickPositions for pathological inputs.
const maxTicks = 1000

// ChooseTickInterval picks a tick spacing from the {1,2,5}x10^n family
// (relative to unitBase) such that ticks are at least minPixelGap pixels
// apart when span data units occupy pixelExtent pixels.
//
// The unit is multiplied by 10 until it is wide enough. If that took at
// least one step, it is then refined by /5, or failing that /2, as long as
// the refined interval still keeps the gap.
func ChooseTickInterval(span, pixelExtent, unitBase, minPixelGap float64) float64 {
	if span <= 0 || pixelExtent <= 0 || minPixelGap <= 0 {
		if unitBase > 0 {
			return unitBase
		}
		return 1
	}
	minInterval := span / pixelExtent * minPixelGap
	if !(unitBase > 0) || math.IsInf(unitBase, 0) {
		unitBase = DefaultUnitBase(minInterval)
	}

	interval := unitBase
	for interval < minInterval {
		interval *= 10
	}
	if interval > unitBase {
		if interval/5 > minInterval {
			interval /= 5
		} else if interval/2 > minInterval {
			interval /= 2
		}
	}
	return interval
}

// DefaultUnitBase returns the largest power of ten not above v, or 1 when v
// is not a positive finite number.
func DefaultUnitBase(v float64) float64 {
	if !(v > 0) || math.IsInf(v, 0) {
		return 1
	}
	return math.Pow(10, math.Floor(math.Log10(v)))
}

// TickPositions returns the multiples of interval, shifted by offset, that
// lie within [min, max]. The first tick is
// ceil((min-offset)/interval)*interval + offset.
func TickPositions(min, max, interval, offset float64) []float64 {
	if !(interval > 0) || max < min {
		return nil
	}
	first := math.Ceil((min-offset)/interval)*interval + offset
	var ticks []float64
	for i := 0; i < maxTicks; i++ {
		x := first + float64(i)*interval
		if x > max {
			break
		}
		ticks = append(ticks, x)
	}
	return ticks
}

// LocalMidnightOffset returns the phase offset that aligns day ticks on
// midnight in loc at time t.
func LocalMidnightOffset(loc *time.Location, t time.Time) float64 {
	if loc == nil {
		loc = time.Local
	}
	_, offset := t.In(loc).Zone()
	return -float64(offset)
}

// NumberFormatter returns a label formatter whose precision is just enough
// to tell ticks spaced interval apart.
func NumberFormatter(interval float64) func(float64) string {
	prec := precisionFor(interval)
	return func(v float64) string { return formatValue(v, prec) }
}

func precisionFor(interval float64) int {
	if !(interval > 0) || math.IsInf(interval, 0) {
		return 2
	}
	precision := int(math.Max(0, -math.Floor(math.Log10(interval))))
	if precision > 8 {
		return 8
	}
	return precision
}

func formatValue(value float64, precision int) string {
	formatted := strconv.FormatFloat(value, 'f', precision, 64)
	if strings.Contains(formatted, ".") {
		formatted = strings.TrimRight(strings.TrimRight(formatted, "0"), ".")
	}
	if formatted == "" || formatted == "-" || formatted == "-0" {
		return "0"
	}
	return formatted
}

// DayFormatter labels time ticks (seconds) with the day of month in loc,
// prefixed by the month on the first of the month, e.g. "3/1", "2", "3".
func DayFormatter(loc *time.Location) func(float64) string {
	if loc == nil {
		loc = time.Local
	}
	return func(v float64) string {
		t := unixSeconds(v).In(loc)
		if t.Day() == 1 {
			return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
		}
		return strconv.Itoa(t.Day())
	}
}

func unixSeconds(v float64) time.Time {
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(frac*1e9))
}
