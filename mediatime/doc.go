// Package mediatime converts between the representations of time used
// by media tooling. The canonical value is
//
// 	type Time int64
//
// a signed count of milliseconds. Every other representation is a lossy
// projection of it:
//
// 	Timebase   a frame rate; converts Time to and from frame counts
// 	Timecode   HH:MM:SS:FF, meaningful only relative to a Timebase
// 	Timestamp  HH:MM:SS.mmm, independent of any frame rate
// 	Range      an ordered [Start, End) interval of Time
//
// Timecode and Timestamp are instants on a single 24 hour cycle. Times
// outside of [0, Day) are wrapped with a floor-style remainder before
// they are decomposed, so negative times map to a positive time of day.
//
// The Span interface is implemented by anything that has a start time
// and a duration. The package functions EndTime, Overlapping and
// SpanRange work on any Span. MutableSpan adds setters, and SetEndTime
// and SetSpanRange work on any MutableSpan.
package mediatime
