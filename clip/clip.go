package clip

import (
	"net/url"
	"path"

	"github.com/cbsinteractive/timecode-service/mediatime"
)

// Clip is a section of a media file placed on a timeline
type Clip struct {
	ID     string         `json:"id"`
	Name   string         `json:"name,omitempty"`
	Source string         `json:"source,omitempty"`
	Start  mediatime.Time `json:"start"`
	Length mediatime.Time `json:"duration"`
}

// StartTime, Duration and their setters make a *Clip a
// mediatime.MutableSpan
func (c Clip) StartTime() mediatime.Time { return c.Start }
func (c Clip) Duration() mediatime.Time  { return c.Length }

func (c *Clip) SetStartTime(t mediatime.Time) { c.Start = t }
func (c *Clip) SetDuration(d mediatime.Time)  { c.Length = d }

// End returns the first instant after the clip
func (c Clip) End() mediatime.Time {
	return mediatime.EndTime(c)
}

// Range returns the interval the clip covers
func (c Clip) Range() mediatime.Range {
	return mediatime.SpanRange(c)
}

// Overlaps reports whether c and o share any instant
func (c Clip) Overlaps(o Clip) bool {
	return mediatime.Overlapping(c, o)
}

// Timecodes returns the start and end timecodes of the clip at tb
func (c Clip) Timecodes(tb mediatime.Timebase) (start, end mediatime.Timecode) {
	return c.Range().Timecodes(tb)
}

func (c Clip) URL() url.URL {
	u, _ := url.Parse(c.Source)
	if u == nil {
		return url.URL{}
	}
	return *u
}

// Base returns the last element of the clip source path, or the empty
// string if the clip has no source
func (c Clip) Base() string {
	if c.Source == "" {
		return ""
	}
	return path.Base(c.URL().Path)
}
