package mediatime

import (
	"math"
	"strconv"

	"github.com/cbsinteractive/pkg/video"
)

// DefaultFPS is the frame rate of the default Timebase
const DefaultFPS = 24.0

// MaxFPS is the highest frame rate at which every frame still has its own
// millisecond
const MaxFPS = 1000.0

// Timebase describes a frame rate. The fractional rate is kept for
// reference, but all frame arithmetic is done with the rate rounded to
// the nearest integer, so 23.976 counts frames at 24 and 29.97 at 30.
//
// The zero value has a rate of zero; frame conversions on it yield zero.
type Timebase struct {
	fps  float64
	rate uint16
	drop bool
}

// NewTimebase returns the Timebase for fps
func NewTimebase(fps float64) Timebase {
	r := math.Round(fps)
	switch {
	case math.IsNaN(r) || r < 0:
		r = 0
	case r > math.MaxUint16:
		r = math.MaxUint16
	}
	return Timebase{
		fps:  fps,
		rate: uint16(r),
		drop: r == fps,
	}
}

// DefaultTimebase returns a 24fps Timebase
func DefaultTimebase() Timebase {
	return NewTimebase(DefaultFPS)
}

// TimebaseFromFramerate returns the Timebase for a rational frame rate,
// such as 24000/1001. An empty framerate yields the default Timebase.
func TimebaseFromFramerate(f video.Framerate) Timebase {
	if f.Empty() {
		return DefaultTimebase()
	}
	return NewTimebase(float64(f.Numerator) / float64(f.Denominator))
}

// FPS returns the fractional frame rate the Timebase was created with
func (tb Timebase) FPS() float64 { return tb.fps }

// Rate returns the integer frame rate used for frame arithmetic
func (tb Timebase) Rate() uint16 { return tb.rate }

// DropFrame reports whether the frame rate is already an integer. It is
// a coarse flag only: no frame numbers are ever skipped.
func (tb Timebase) DropFrame() bool { return tb.drop }

// MillisecondsPerFrame returns the truncated duration of a single frame
// at the fractional rate
func (tb Timebase) MillisecondsPerFrame() uint32 {
	if tb.fps <= 0 {
		return 0
	}
	ms := 1000 / tb.fps
	if ms > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(ms)
}

// FramesFromTime returns the number of whole frames in t. Sub-frame
// remainders are truncated toward zero.
func (tb Timebase) FramesFromTime(t Time) int64 {
	// seconds * rate, split to keep the product exact
	rate := int64(tb.rate)
	ms := t.Milliseconds()
	return ms/1000*rate + ms%1000*rate/1000
}

// TimeFromFrames returns the first millisecond that FramesFromTime maps
// back to frame n, so that
//
// 	tb.FramesFromTime(tb.TimeFromFrames(n)) == n
//
// for any frame rate of at most 1000fps.
func (tb Timebase) TimeFromFrames(n int64) Time {
	if tb.rate == 0 {
		return 0
	}
	rate := int64(tb.rate)
	neg := n < 0
	if neg {
		n = -n
	}
	// n*1000/rate rounded away from zero
	q, r := n/rate, n%rate
	ms := q*1000 + (r*1000+rate-1)/rate
	if neg {
		ms = -ms
	}
	return Time(ms)
}

func (tb Timebase) String() string {
	return strconv.FormatFloat(tb.fps, 'f', -1, 64) + "fps"
}
