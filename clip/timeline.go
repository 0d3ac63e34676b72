package clip

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cbsinteractive/pkg/timecode"
	"github.com/cbsinteractive/pkg/video"
	"github.com/cbsinteractive/timecode-service/mediatime"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
)

var (
	ErrNoID        = errors.New("id is required")
	ErrBadID       = errors.New("id must be a uuid")
	ErrFPS         = errors.New("fps must be positive")
	ErrNegative    = errors.New("clip duration is negative")
	ErrDuplicateID = errors.New("duplicate clip id")
)

// Timeline is an ordered set of clips sharing one frame rate
type Timeline struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	FPS       float64   `json:"fps"`
	Clips     []Clip    `json:"clips,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewID returns a random timeline or clip id
func NewID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// Timebase returns the frame rate of the timeline
func (t *Timeline) Timebase() mediatime.Timebase {
	return mediatime.NewTimebase(t.FPS)
}

// Framerate returns the frame rate as a fraction. NTSC rates are
// expressed over 1001; anything else is rounded to a thousandth.
func (t *Timeline) Framerate() video.Framerate {
	if t.FPS <= 0 {
		return video.Framerate{}
	}
	tb := t.Timebase()
	if !tb.DropFrame() {
		ntsc := float64(tb.Rate()) * 1000 / 1001
		if math.Abs(ntsc-t.FPS) < 0.005 {
			return video.Framerate{Numerator: int(tb.Rate()) * 1000, Denominator: 1001}
		}
	}
	return video.Framerate{Numerator: int(math.Round(t.FPS * 1000)), Denominator: 1000}
}

// Add appends clips to the timeline, assigning ids to those without one
func (t *Timeline) Add(c ...Clip) {
	for i := range c {
		if c[i].ID == "" {
			c[i].ID = NewID()
		}
	}
	t.Clips = append(t.Clips, c...)
}

// Sort orders the clips by start time, shortest first
func (t *Timeline) Sort() {
	sort.SliceStable(t.Clips, func(i, j int) bool {
		a, b := t.Clips[i], t.Clips[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.Length < b.Length
	})
}

// Range returns the smallest interval containing every clip
func (t *Timeline) Range() mediatime.Range {
	return t.Splice().Union()
}

// Duration returns the length of Range
func (t *Timeline) Duration() mediatime.Time {
	return t.Range().Duration()
}

// Splice returns the clip ranges in timeline order
func (t *Timeline) Splice() mediatime.Splice {
	s := make(mediatime.Splice, len(t.Clips))
	for i, c := range t.Clips {
		s[i] = c.Range()
	}
	return s
}

// SpliceSeconds returns the clip ranges in decimal seconds, the form
// used by transcode requests
func (t *Timeline) SpliceSeconds() timecode.Splice {
	return t.Splice().Seconds()
}

// Overlap is a pair of clips that share some instant
type Overlap struct {
	A     string          `json:"a"`
	B     string          `json:"b"`
	Range mediatime.Range `json:"range"`
}

// Overlaps lists every pair of overlapping clips and the section they
// share
func (t *Timeline) Overlaps() (o []Overlap) {
	for i, a := range t.Clips {
		for _, b := range t.Clips[i+1:] {
			if !a.Overlaps(b) {
				continue
			}
			ra, rb := a.Range(), b.Range()
			shared := mediatime.NewRange(max(ra.Start, rb.Start), min(ra.End, rb.End))
			o = append(o, Overlap{A: a.ID, B: b.ID, Range: shared})
		}
	}
	return o
}

// Cue is a clip reported in timecode
type Cue struct {
	ID    string             `json:"id"`
	File  string             `json:"file,omitempty"`
	Start mediatime.Timecode `json:"start"`
	End   mediatime.Timecode `json:"end"`
}

// Cues returns the start and end timecodes of every clip at the
// timeline frame rate
func (t *Timeline) Cues() []Cue {
	tb := t.Timebase()
	cues := make([]Cue, 0, len(t.Clips))
	for _, c := range t.Clips {
		start, end := c.Timecodes(tb)
		cues = append(cues, Cue{ID: c.ID, File: c.Base(), Start: start, End: end})
	}
	return cues
}

// Validate checks the timeline and its clips
func (t *Timeline) Validate() error {
	if t.ID == "" {
		return ErrNoID
	}
	if _, err := uuid.FromString(t.ID); err != nil {
		return errors.Wrapf(ErrBadID, "timeline %q", t.ID)
	}
	if t.FPS <= 0 || math.IsNaN(t.FPS) || math.IsInf(t.FPS, 0) {
		return errors.Wrapf(ErrFPS, "got %v", t.FPS)
	}
	seen := map[string]bool{}
	for i, c := range t.Clips {
		if c.ID == "" {
			return errors.Wrapf(ErrNoID, "clip %d", i)
		}
		if seen[c.ID] {
			return errors.Wrapf(ErrDuplicateID, "clip %q", c.ID)
		}
		seen[c.ID] = true
		if c.Length < 0 {
			return errors.Wrapf(ErrNegative, "clip %q", c.ID)
		}
	}
	return nil
}

func (t *Timeline) String() string {
	return fmt.Sprintf("%s (%s, %d clips, %s)", t.ID, t.Timebase(), len(t.Clips), t.Range())
}

func max(a, b mediatime.Time) mediatime.Time {
	if a > b {
		return a
	}
	return b
}

func min(a, b mediatime.Time) mediatime.Time {
	if a < b {
		return a
	}
	return b
}
