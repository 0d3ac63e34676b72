package client

import (
	"github.com/cbsinteractive/pkg/video"
	"github.com/cbsinteractive/timecode-service/clip"
	"github.com/cbsinteractive/timecode-service/mediatime"
)

// Conversion is a time in every representation the server knows.
// Timecode and Timestamp are kept as strings because a timecode can only
// be parsed back with its frame rate.
type Conversion struct {
	Ms           int64    `json:"ms"`
	Seconds      float64  `json:"seconds"`
	NormalizedMs int64    `json:"normalizedMs"`
	Frames       int64    `json:"frames"`
	Timecode     string   `json:"timecode"`
	Timestamp    string   `json:"timestamp"`
	Timebase     Timebase `json:"timebase"`
}

// Time returns the converted time
func (c Conversion) Time() mediatime.Time {
	return mediatime.FromMilliseconds(c.Ms)
}

// ParsedTimecode parses the timecode string at the conversion frame rate
func (c Conversion) ParsedTimecode() (mediatime.Timecode, bool) {
	return mediatime.ParseTimecode(c.Timecode, mediatime.NewTimebase(c.Timebase.FPS))
}

type Timebase struct {
	FPS        float64 `json:"fps"`
	Rate       uint16  `json:"rate"`
	DropFrame  bool    `json:"dropFrame"`
	MsPerFrame uint32  `json:"msPerFrame"`
}

type Timestamp struct {
	Timestamp    mediatime.Timestamp `json:"timestamp"`
	NormalizedMs int64               `json:"normalizedMs"`
}

// Timeline is a stored timeline with the values the server derives
// from it. Splice holds [start, end] pairs in seconds; it is not a
// timecode.Splice because that type only decodes from text.
type Timeline struct {
	clip.Timeline
	DurationMs int64           `json:"durationMs"`
	Extent     mediatime.Range `json:"extent"`
	Framerate  video.Framerate `json:"framerate"`
	Splice     [][2]float64    `json:"splice"`
}

type Cue struct {
	ID    string `json:"id"`
	File  string `json:"file,omitempty"`
	Start string `json:"start"`
	End   string `json:"end"`
}
