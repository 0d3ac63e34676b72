package mediatime

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Timecode is an HH:MM:SS:FF instant on a 24 hour cycle at the
// resolution of one frame of its Timebase. Fields are not range checked;
// a Timecode built by hand is trusted as-is.
type Timecode struct {
	Hour, Minute, Second uint8
	Frame                uint16
	Timebase             Timebase
}

// NewTimecode returns a Timecode from its fields
func NewTimecode(h, m, s uint8, f uint16, tb Timebase) Timecode {
	return Timecode{Hour: h, Minute: m, Second: s, Frame: f, Timebase: tb}
}

// DefaultTimecode returns 00:00:00:00 at the default Timebase
func DefaultTimecode() Timecode {
	return Timecode{Timebase: DefaultTimebase()}
}

// TimecodeFromTime returns the Timecode of the frame nearest to t, after
// t is wrapped onto a single day
func TimecodeFromTime(t Time, tb Timebase) Timecode {
	tc := Timecode{Timebase: tb}
	rate := uint64(tb.Rate())
	if rate == 0 {
		return tc
	}
	frames := uint64(math.Round(t.Normalized().Seconds() * float64(rate)))
	sec := frames / rate
	tc.Frame = uint16(frames % rate)
	tc.Second = uint8(sec % 60)
	tc.Minute = uint8(sec / 60 % 60)
	tc.Hour = uint8(sec / 3600 % 24)
	return tc
}

// Frames returns the absolute frame count of tc
func (tc Timecode) Frames() int64 {
	rate := int64(tc.Timebase.Rate())
	return int64(tc.Hour)*60*60*rate +
		int64(tc.Minute)*60*rate +
		int64(tc.Second)*rate +
		int64(tc.Frame)
}

// Time returns the instant of tc's frame count, rounded to the nearest
// millisecond. A zero rate yields zero.
func (tc Timecode) Time() Time {
	rate := tc.Timebase.Rate()
	if rate == 0 {
		return 0
	}
	return FromSeconds(float64(tc.Frames()) / float64(rate))
}

func (tc Timecode) String() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d", tc.Hour, tc.Minute, tc.Second, tc.Frame)
}

// MarshalText encodes tc as HH:MM:SS:FF. There is no UnmarshalText
// because the text alone does not carry a Timebase; use ParseTimecode.
func (tc Timecode) MarshalText() ([]byte, error) {
	return []byte(tc.String()), nil
}

// Any single non-digit separates the groups, so 01:02:03;04 and
// 01.02.03.04 are both accepted.
var timecodePattern = regexp.MustCompile(`^(\d{2})[^\p{Nd}](\d{2})[^\p{Nd}](\d{2})[^\p{Nd}](\d{2,})$`)

// ParseTimecode parses HH:MM:SS:FF into a Timecode at tb. Hours, minutes
// and seconds are exactly two digits and frames are two or more. Values
// are not range checked. The second return value is false if s does not
// match or if the frame number does not fit in a uint16.
func ParseTimecode(s string, tb Timebase) (Timecode, bool) {
	m := timecodePattern.FindStringSubmatch(s)
	if m == nil {
		return Timecode{}, false
	}
	var f [4]uint64
	for i, bits := range [4]int{8, 8, 8, 16} {
		n, err := strconv.ParseUint(m[i+1], 10, bits)
		if err != nil {
			return Timecode{}, false
		}
		f[i] = n
	}
	return NewTimecode(uint8(f[0]), uint8(f[1]), uint8(f[2]), uint16(f[3]), tb), true
}
