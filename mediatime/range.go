package mediatime

import (
	"fmt"

	"github.com/cbsinteractive/pkg/timecode"
)

// Range is the half-open interval [Start, End). Ranges built with
// NewRange always have Start <= End.
type Range struct {
	Start Time `json:"start"`
	End   Time `json:"end"`
}

// NewRange returns the Range between a and b, in either order
func NewRange(a, b Time) Range {
	if a > b {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// RangeFromSeconds converts a pkg/timecode range in decimal seconds,
// reordering its endpoints if needed
func RangeFromSeconds(r timecode.Range) Range {
	return NewRange(FromSeconds(r[0]), FromSeconds(r[1]))
}

// Bounds returns the endpoints of r as a pair
func (r Range) Bounds() (start, end Time) {
	return r.Start, r.End
}

// StartTime and Duration make a Range a Span
func (r Range) StartTime() Time { return r.Start }
func (r Range) Duration() Time  { return r.End - r.Start }

// Overlaps reports whether r and o share any instant. Ranges that only
// touch at an endpoint do not overlap.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// Contains reports whether t lies in [Start, End)
func (r Range) Contains(t Time) bool {
	return r.Start <= t && t < r.End
}

// Timecodes returns the start and end timecodes of r at tb
func (r Range) Timecodes(tb Timebase) (start, end Timecode) {
	return TimecodeFromTime(r.Start, tb), TimecodeFromTime(r.End, tb)
}

// Seconds converts r into a pkg/timecode range in decimal seconds
func (r Range) Seconds() timecode.Range {
	return timecode.Range{r.Start.Seconds(), r.End.Seconds()}
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", TimestampFromTime(r.Start), TimestampFromTime(r.End))
}
