package mediatime

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Time is a signed number of milliseconds. It is used both as an instant
// and as a duration.
type Time int64

// Common durations
const (
	Millisecond Time = 1
	Second           = 1000 * Millisecond
	Minute           = 60 * Second
	Hour             = 60 * Minute
	Day              = 24 * Hour
)

// FromMilliseconds returns the exact Time for ms
func FromMilliseconds(ms int64) Time {
	return Time(ms)
}

// FromSeconds rounds s seconds to the nearest millisecond
func FromSeconds(s float64) Time {
	return round(s * 1000)
}

// FromMinutes rounds m minutes to the nearest millisecond
func FromMinutes(m float64) Time {
	return round(m * 60 * 1000)
}

// FromHours rounds h hours to the nearest millisecond
func FromHours(h float64) Time {
	return round(h * 60 * 60 * 1000)
}

// FromDuration rounds d to the nearest millisecond
func FromDuration(d time.Duration) Time {
	return Time(d.Round(time.Millisecond) / time.Millisecond)
}

// round converts a fractional millisecond count into a Time. Halves
// round away from zero. Values beyond the int64 range saturate and NaN
// becomes zero.
func round(ms float64) Time {
	switch {
	case math.IsNaN(ms):
		return 0
	case ms >= math.MaxInt64:
		return math.MaxInt64
	case ms <= math.MinInt64:
		return math.MinInt64
	}
	return Time(math.Round(ms))
}

func (t Time) Milliseconds() int64 { return int64(t) }
func (t Time) Seconds() float64    { return float64(t) / 1000 }
func (t Time) Minutes() float64    { return float64(t) / 60 / 1000 }
func (t Time) Hours() float64      { return float64(t) / 60 / 60 / 1000 }

// Duration returns t as a time.Duration, saturating where the
// nanosecond count does not fit in an int64
func (t Time) Duration() time.Duration {
	const max = Time(math.MaxInt64 / int64(time.Millisecond))
	switch {
	case t > max:
		return math.MaxInt64
	case t < -max:
		return math.MinInt64
	}
	return time.Duration(t) * time.Millisecond
}

// Add returns t+u
func (t Time) Add(u Time) Time { return t + u }

// Sub returns t-u
func (t Time) Sub(u Time) Time { return t - u }

// Mul scales t by f, rounding to the nearest millisecond
func (t Time) Mul(f float64) Time { return round(float64(t) * f) }

// Div divides t by f, rounding to the nearest millisecond
func (t Time) Div(f float64) Time { return round(float64(t) / f) }

// Inc adds u to t in place
func (t *Time) Inc(u Time) { *t += u }

// Dec subtracts u from t in place
func (t *Time) Dec(u Time) { *t -= u }

// Scale multiplies t by f in place
func (t *Time) Scale(f float64) { *t = t.Mul(f) }

// DivBy divides t by f in place
func (t *Time) DivBy(f float64) { *t = t.Div(f) }

// Compare returns -1, 0 or +1 depending on whether t is before, equal
// to, or after u
func (t Time) Compare(u Time) int {
	switch {
	case t < u:
		return -1
	case t > u:
		return 1
	}
	return 0
}

// Normalized wraps t onto a single day. The result is always in the
// range [0, Day), so -1ms becomes 23:59:59.999.
func (t Time) Normalized() Time {
	r := t % Day
	if r < 0 {
		r += Day
	}
	return r
}

// String formats t like a time.Duration, such as "1h2m3.5s" or
// "250ms", computed from the millisecond count so that no value overflows
func (t Time) String() string {
	ms := uint64(t)
	if t < 0 {
		ms = -ms
	}
	if ms == 0 {
		return "0s"
	}
	var b strings.Builder
	if t < 0 {
		b.WriteByte('-')
	}
	if ms < 1000 {
		b.WriteString(strconv.FormatUint(ms, 10))
		b.WriteString("ms")
		return b.String()
	}
	h, m, sec, frac := ms/3600000, ms/60000%60, ms/1000%60, ms%1000
	if h > 0 {
		b.WriteString(strconv.FormatUint(h, 10))
		b.WriteByte('h')
	}
	if h > 0 || m > 0 {
		b.WriteString(strconv.FormatUint(m, 10))
		b.WriteByte('m')
	}
	b.WriteString(strconv.FormatUint(sec, 10))
	if frac > 0 {
		f := strconv.FormatUint(frac+1000, 10)[1:]
		b.WriteByte('.')
		b.WriteString(strings.TrimRight(f, "0"))
	}
	b.WriteByte('s')
	return b.String()
}
