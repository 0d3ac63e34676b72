// Package client is a Go client for the timecode service HTTP API
package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cbsinteractive/timecode-service/clip"
)

// API lists the operations the timecode service exposes
type API interface {
	// Conversions
	Timecode(ctx context.Context, q Query) (Conversion, error)
	Timestamp(ctx context.Context, q Query) (Timestamp, error)
	ParseTimecode(ctx context.Context, tc string, fps float64) (Conversion, error)
	ParseTimestamp(ctx context.Context, ts string) (Conversion, error)

	// Timelines
	CreateTimeline(ctx context.Context, t clip.Timeline) (Timeline, error)
	GetTimeline(ctx context.Context, id string) (Timeline, error)
	DeleteTimeline(ctx context.Context, id string) (Timeline, error)
	ListTimelines(ctx context.Context) ([]string, error)
	Overlaps(ctx context.Context, id string) ([]clip.Overlap, error)
	Cues(ctx context.Context, id string) ([]Cue, error)
}

const (
	defaultTimeout = 30 * time.Second
	defaultBaseURL = "http://localhost:8080"
)

// Client talks to a timecode service at Base
type Client struct {
	Base   *url.URL
	Client *http.Client
}

var _ API = (*Client)(nil)

// Query selects the time to convert. Exactly one of Ms, Seconds or
// Frames should be set; FPS of zero uses the server default.
type Query struct {
	Ms      *int64
	Seconds *float64
	Frames  *int64
	FPS     float64
}

func (q Query) values() url.Values {
	v := url.Values{}
	switch {
	case q.Ms != nil:
		v.Set("ms", strconv.FormatInt(*q.Ms, 10))
	case q.Seconds != nil:
		v.Set("seconds", strconv.FormatFloat(*q.Seconds, 'f', -1, 64))
	case q.Frames != nil:
		v.Set("frames", strconv.FormatInt(*q.Frames, 10))
	}
	if q.FPS != 0 {
		v.Set("fps", strconv.FormatFloat(q.FPS, 'f', -1, 64))
	}
	return v
}

// Ms, Seconds and Frames build single-field queries
func Ms(ms int64, fps float64) Query       { return Query{Ms: &ms, FPS: fps} }
func Seconds(s float64, fps float64) Query { return Query{Seconds: &s, FPS: fps} }
func Frames(n int64, fps float64) Query    { return Query{Frames: &n, FPS: fps} }

// Timecode converts the query into every representation
func (c *Client) Timecode(ctx context.Context, q Query) (Conversion, error) {
	var resp Conversion
	err := c.getResource(ctx, &resp, "/timecode", q.values())
	return resp, err
}

// Timestamp returns the wall-clock timestamp of the query
func (c *Client) Timestamp(ctx context.Context, q Query) (Timestamp, error) {
	var resp Timestamp
	err := c.getResource(ctx, &resp, "/timestamp", q.values())
	return resp, err
}

// ParseTimecode parses tc at fps and converts the result
func (c *Client) ParseTimecode(ctx context.Context, tc string, fps float64) (Conversion, error) {
	v := url.Values{"tc": {tc}}
	if fps != 0 {
		v.Set("fps", strconv.FormatFloat(fps, 'f', -1, 64))
	}
	var resp Conversion
	err := c.getResource(ctx, &resp, "/parse/timecode", v)
	return resp, err
}

// ParseTimestamp parses a strict HH:MM:SS.mmm timestamp and converts
// the result
func (c *Client) ParseTimestamp(ctx context.Context, ts string) (Conversion, error) {
	var resp Conversion
	err := c.getResource(ctx, &resp, "/parse/timestamp", url.Values{"ts": {ts}})
	return resp, err
}

// CreateTimeline stores t. The server fills in a missing id, frame
// rate and clip ids.
func (c *Client) CreateTimeline(ctx context.Context, t clip.Timeline) (Timeline, error) {
	var resp Timeline
	err := c.postResource(ctx, t, &resp, "/timelines")
	return resp, err
}

// GetTimeline returns a stored timeline
func (c *Client) GetTimeline(ctx context.Context, id string) (Timeline, error) {
	var resp Timeline
	err := c.getResource(ctx, &resp, "/timelines/"+url.PathEscape(id), nil)
	return resp, err
}

// DeleteTimeline removes a timeline and returns what was stored
func (c *Client) DeleteTimeline(ctx context.Context, id string) (Timeline, error) {
	var resp Timeline
	err := c.removeResource(ctx, &resp, "/timelines/"+url.PathEscape(id))
	return resp, err
}

// ListTimelines returns the ids of all stored timelines
func (c *Client) ListTimelines(ctx context.Context) ([]string, error) {
	var resp struct {
		IDs []string `json:"ids"`
	}
	err := c.getResource(ctx, &resp, "/timelines", nil)
	return resp.IDs, err
}

// Overlaps returns the overlapping clip pairs of a timeline
func (c *Client) Overlaps(ctx context.Context, id string) ([]clip.Overlap, error) {
	var resp []clip.Overlap
	err := c.getResource(ctx, &resp, "/timelines/"+url.PathEscape(id)+"/overlaps", nil)
	return resp, err
}

// Cues returns the clips of a timeline as timecodes
func (c *Client) Cues(ctx context.Context, id string) ([]Cue, error) {
	var resp []Cue
	err := c.getResource(ctx, &resp, "/timelines/"+url.PathEscape(id)+"/cues", nil)
	return resp, err
}

func (c *Client) ensure() {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: defaultTimeout}
	}

	if c.Base == nil {
		c.Base = urlMust(url.Parse(defaultBaseURL))
	}
}

func urlMust(u *url.URL, _ error) *url.URL { return u }
