package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/cbsinteractive/timecode-service/clip"
	"github.com/cbsinteractive/timecode-service/config"
	"github.com/cbsinteractive/timecode-service/mediatime"
	"github.com/cbsinteractive/timecode-service/service"
	"github.com/cbsinteractive/timecode-service/test"
)

const tlID = "5d0e3f0a-2b61-4c53-8f0e-b1a7c6d94e22"

func newClient(t *testing.T) *Client {
	t.Helper()
	srv := service.NewServer(&config.Config{DefaultFPS: 24}, nil, nil, nil)
	backend := httptest.NewServer(srv.Handler())
	t.Cleanup(backend.Close)
	u, err := url.Parse(backend.URL)
	if err != nil {
		t.Fatal(err)
	}
	return &Client{Base: u}
}

func TestQueryValues(t *testing.T) {
	tests := []struct {
		title string
		q     Query
		want  string
	}{
		{"ms", Ms(1500, 0), "ms=1500"},
		{"seconds", Seconds(1.25, 25), "fps=25&seconds=1.25"},
		{"frames", Frames(-3, 29.97), "fps=29.97&frames=-3"},
		{"empty", Query{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if have := tt.q.values().Encode(); have != tt.want {
				t.Fatalf("have %q, want %q", have, tt.want)
			}
		})
	}
}

func TestConversions(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	conv, err := c.Timecode(ctx, Seconds(3661, 25))
	if err != nil {
		t.Fatal(err)
	}
	if conv.Timecode != "01:01:01:00" || conv.Timebase.Rate != 25 || conv.Time() != mediatime.FromSeconds(3661) {
		t.Fatalf("have %+v", conv)
	}
	tc, ok := conv.ParsedTimecode()
	if !ok || tc.Time() != conv.Time() {
		t.Fatalf("parsed timecode %v %v", tc, ok)
	}

	ts, err := c.Timestamp(ctx, Ms(-500, 0))
	if err != nil {
		t.Fatal(err)
	}
	if ts.Timestamp != mediatime.NewTimestamp(23, 59, 59, 500) || ts.NormalizedMs != 86399500 {
		t.Fatalf("have %+v", ts)
	}

	conv, err = c.ParseTimecode(ctx, "00:00:02:06", 12)
	if err != nil {
		t.Fatal(err)
	}
	if conv.Ms != 2500 || conv.Frames != 30 {
		t.Fatalf("have %+v", conv)
	}

	conv, err = c.ParseTimestamp(ctx, "00:01:00.250")
	if err != nil {
		t.Fatal(err)
	}
	if conv.Ms != 60250 || conv.Timecode != "00:01:00:06" {
		t.Fatalf("have %+v", conv)
	}
}

func TestStatusError(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	_, err := c.ParseTimestamp(ctx, "24:00:00.000")
	se, ok := err.(*StatusError)
	if !ok {
		t.Fatalf("have %T %v", err, err)
	}
	if se.Code != http.StatusBadRequest || se.Msg != "bad timestamp: timestamp: hour 24 out of range [0, 23]" || se.Rid == 0 {
		t.Fatalf("have %+v", se)
	}
	if NotFound(err) {
		t.Fatal("400 reported as not found")
	}

	if _, err := c.GetTimeline(ctx, tlID); !NotFound(err) {
		t.Fatalf("have %v", err)
	}
}

func TestTimelines(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	in := clip.Timeline{ID: tlID, FPS: 25, Clips: []clip.Clip{
		{ID: "a", Source: "https://cdn/a.mp4", Start: 0, Length: mediatime.FromSeconds(2)},
		{ID: "b", Start: mediatime.FromSeconds(1), Length: mediatime.FromSeconds(2)},
	}}
	created, err := c.CreateTimeline(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if created.ID != tlID || created.DurationMs != 3000 || created.CreatedAt.IsZero() {
		t.Fatalf("have %+v", created)
	}
	if test.AssertDiff([][2]float64{{0, 2}, {1, 3}}, created.Splice, "splice", t) {
		t.FailNow()
	}

	ids, err := c.ListTimelines(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if test.AssertDiff([]string{tlID}, ids, "ids", t) {
		t.FailNow()
	}

	got, err := c.GetTimeline(ctx, tlID)
	if err != nil {
		t.Fatal(err)
	}
	if test.AssertDiff(created.Clips, got.Clips, "clips", t) {
		t.FailNow()
	}

	overlaps, err := c.Overlaps(ctx, tlID)
	if err != nil {
		t.Fatal(err)
	}
	want := []clip.Overlap{{A: "a", B: "b", Range: mediatime.NewRange(1000, 2000)}}
	if test.AssertDiff(want, overlaps, "overlaps", t) {
		t.FailNow()
	}

	cues, err := c.Cues(ctx, tlID)
	if err != nil {
		t.Fatal(err)
	}
	wantCues := []Cue{
		{ID: "a", File: "a.mp4", Start: "00:00:00:00", End: "00:00:02:00"},
		{ID: "b", Start: "00:00:01:00", End: "00:00:03:00"},
	}
	if test.AssertDiff(wantCues, cues, "cues", t) {
		t.FailNow()
	}

	if _, err := c.DeleteTimeline(ctx, tlID); err != nil {
		t.Fatal(err)
	}
	if _, err := c.DeleteTimeline(ctx, tlID); !NotFound(err) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestDecodeError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"timestamp": "1:2:3"})
	}))
	defer backend.Close()
	u, _ := url.Parse(backend.URL)

	c := Client{Base: u}
	if _, err := c.Timestamp(context.Background(), Ms(0, 0)); err == nil {
		t.Fatal("expected a decoding error")
	}
}
