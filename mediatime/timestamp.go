package mediatime

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

var (
	// ErrTimestampFormat is returned when a string is not HH:MM:SS.mmm
	ErrTimestampFormat = errors.New("timestamp: expected HH:MM:SS.mmm")

	// ErrTimestampRange is matched by every *FieldRangeError
	ErrTimestampRange = errors.New("timestamp: field out of range")
)

// FieldRangeError names a timestamp field whose value exceeds its maximum
type FieldRangeError struct {
	Field string
	Value uint64
	Max   uint64
}

func (e *FieldRangeError) Error() string {
	return fmt.Sprintf("timestamp: %s %d out of range [0, %d]", e.Field, e.Value, e.Max)
}

// Is lets errors.Is match any FieldRangeError against ErrTimestampRange
func (e *FieldRangeError) Is(target error) bool {
	return target == ErrTimestampRange
}

// Timestamp is an HH:MM:SS.mmm instant on a 24 hour cycle, independent
// of any frame rate
type Timestamp struct {
	Hour, Minute, Second uint8
	Millisecond          uint16
}

// NewTimestamp returns a Timestamp from its fields without validating them
func NewTimestamp(h, m, s uint8, ms uint16) Timestamp {
	return Timestamp{Hour: h, Minute: m, Second: s, Millisecond: ms}
}

// TimestampFromTime wraps t onto a single day and splits it into fields
func TimestampFromTime(t Time) Timestamp {
	ms := t.Normalized().Milliseconds()
	sec := ms / 1000
	return Timestamp{
		Hour:        uint8(sec / 3600 % 24),
		Minute:      uint8(sec / 60 % 60),
		Second:      uint8(sec % 60),
		Millisecond: uint16(ms % 1000),
	}
}

// Time returns the time of day ts represents
func (ts Timestamp) Time() Time {
	return Time(int64(ts.Hour)*60*60*1000 +
		int64(ts.Minute)*60*1000 +
		int64(ts.Second)*1000 +
		int64(ts.Millisecond))
}

func (ts Timestamp) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d", ts.Hour, ts.Minute, ts.Second, ts.Millisecond)
}

var timestampPattern = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})\.(\d{3})$`)

// ParseTimestamp parses the canonical HH:MM:SS.mmm form. Hours above 23
// and minutes or seconds above 59 are rejected with a *FieldRangeError.
func ParseTimestamp(s string) (Timestamp, error) {
	m := timestampPattern.FindStringSubmatch(s)
	if m == nil {
		return Timestamp{}, errors.Wrapf(ErrTimestampFormat, "parsing %q", s)
	}
	var f [4]uint64
	for i := range f {
		// the pattern guarantees two or three ascii digits
		f[i], _ = strconv.ParseUint(m[i+1], 10, 16)
	}
	for i, max := range [3]uint64{23, 59, 59} {
		if f[i] > max {
			return Timestamp{}, &FieldRangeError{
				Field: [3]string{"hour", "minute", "second"}[i],
				Value: f[i],
				Max:   max,
			}
		}
	}
	return NewTimestamp(uint8(f[0]), uint8(f[1]), uint8(f[2]), uint16(f[3])), nil
}

func (ts Timestamp) MarshalText() ([]byte, error) {
	return []byte(ts.String()), nil
}

func (ts *Timestamp) UnmarshalText(p []byte) error {
	v, err := ParseTimestamp(string(p))
	if err != nil {
		return err
	}
	*ts = v
	return nil
}
