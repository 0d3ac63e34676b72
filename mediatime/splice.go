package mediatime

import (
	"sort"

	"github.com/cbsinteractive/pkg/timecode"
)

// Splice is a list of Ranges, possibly unordered and possibly overlapping
type Splice []Range

// SpliceFromSeconds converts a pkg/timecode splice
func SpliceFromSeconds(s timecode.Splice) Splice {
	if s == nil {
		return nil
	}
	out := make(Splice, len(s))
	for i, r := range s {
		out[i] = RangeFromSeconds(r)
	}
	return out
}

func (s Splice) Len() int      { return len(s) }
func (s Splice) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s Splice) Less(i, j int) bool {
	if s[i].Start != s[j].Start {
		return s[i].Start < s[j].Start
	}
	return s[i].Duration() < s[j].Duration()
}

// Sorted reports whether s is ordered by start time
func (s Splice) Sorted() bool {
	return sort.IsSorted(s)
}

// Duration returns the sum of the durations of every range in s.
// Overlapping sections are counted more than once.
func (s Splice) Duration() (d Time) {
	for _, r := range s {
		d += r.Duration()
	}
	return d
}

// Union returns the smallest Range that contains every range in s
func (s Splice) Union() Range {
	if len(s) == 0 {
		return Range{}
	}
	u := s[0]
	for _, r := range s[1:] {
		if r.Start < u.Start {
			u.Start = r.Start
		}
		if r.End > u.End {
			u.End = r.End
		}
	}
	return u
}

// Overlapping reports whether any two ranges in s overlap
func (s Splice) Overlapping() bool {
	for i := range s {
		for j := i + 1; j < len(s); j++ {
			if s[i].Overlaps(s[j]) {
				return true
			}
		}
	}
	return false
}

// Seconds converts s into a pkg/timecode splice
func (s Splice) Seconds() timecode.Splice {
	if s == nil {
		return nil
	}
	out := make(timecode.Splice, len(s))
	for i, r := range s {
		out[i] = r.Seconds()
	}
	return out
}
