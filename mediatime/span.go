package mediatime

// Span is anything positioned in time by a start and a duration. The
// functions below give every Span an end time, overlap testing and a
// Range view.
type Span interface {
	StartTime() Time
	Duration() Time
}

// MutableSpan is a Span that can be repositioned
type MutableSpan interface {
	Span
	SetStartTime(Time)
	SetDuration(Time)
}

// EndTime returns the start of s plus its duration
func EndTime(s Span) Time {
	return s.StartTime() + s.Duration()
}

// Overlapping reports whether a and b share any instant, using the same
// half-open rule as Range.Overlaps
func Overlapping(a, b Span) bool {
	return a.StartTime() < EndTime(b) && b.StartTime() < EndTime(a)
}

// SpanRange returns the Range covered by s
func SpanRange(s Span) Range {
	return NewRange(s.StartTime(), EndTime(s))
}

// SetEndTime moves the end of s by changing its duration. An end at or
// before the start leaves s with a zero duration.
func SetEndTime(s MutableSpan, end Time) {
	if start := s.StartTime(); end > start {
		s.SetDuration(end - start)
		return
	}
	s.SetDuration(0)
}

// SetSpanRange moves s to cover r
func SetSpanRange(s MutableSpan, r Range) {
	s.SetStartTime(r.Start)
	SetEndTime(s, r.End)
}
