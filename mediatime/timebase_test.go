package mediatime

import (
	"testing"

	"github.com/cbsinteractive/pkg/video"
)

func TestNewTimebase(t *testing.T) {
	tests := []struct {
		fps      float64
		rate     uint16
		drop     bool
		msPerFrm uint32
		str      string
	}{
		{fps: 23.976, rate: 24, drop: false, msPerFrm: 41, str: "23.976fps"},
		{fps: 24, rate: 24, drop: true, msPerFrm: 41, str: "24fps"},
		{fps: 25, rate: 25, drop: true, msPerFrm: 40, str: "25fps"},
		{fps: 29.97, rate: 30, drop: false, msPerFrm: 33, str: "29.97fps"},
		{fps: 59.94, rate: 60, drop: false, msPerFrm: 16, str: "59.94fps"},
		{fps: 0.4, rate: 0, drop: false, msPerFrm: 2500, str: "0.4fps"},
		{fps: -5, rate: 0, drop: false, msPerFrm: 0, str: "-5fps"},
		{fps: 1e9, rate: 65535, drop: false, msPerFrm: 0, str: "1000000000fps"},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			tb := NewTimebase(tt.fps)
			if tb.FPS() != tt.fps {
				t.Errorf("fps: have %v, want %v", tb.FPS(), tt.fps)
			}
			if tb.Rate() != tt.rate {
				t.Errorf("rate: have %d, want %d", tb.Rate(), tt.rate)
			}
			if tb.DropFrame() != tt.drop {
				t.Errorf("drop frame: have %v, want %v", tb.DropFrame(), tt.drop)
			}
			if tb.MillisecondsPerFrame() != tt.msPerFrm {
				t.Errorf("ms per frame: have %d, want %d", tb.MillisecondsPerFrame(), tt.msPerFrm)
			}
			if tb.String() != tt.str {
				t.Errorf("string: have %q, want %q", tb.String(), tt.str)
			}
		})
	}
}

func TestDefaultTimebase(t *testing.T) {
	tb := DefaultTimebase()
	if tb.FPS() != 24 || tb.Rate() != 24 || !tb.DropFrame() {
		t.Fatalf("bad default timebase: %+v", tb)
	}
}

func TestTimebaseFromFramerate(t *testing.T) {
	tb := TimebaseFromFramerate(video.Framerate{Numerator: 24000, Denominator: 1001})
	if tb.Rate() != 24 || tb.DropFrame() {
		t.Errorf("24000/1001: have rate %d drop %v", tb.Rate(), tb.DropFrame())
	}
	tb = TimebaseFromFramerate(video.Framerate{Numerator: 50, Denominator: 2})
	if tb.Rate() != 25 || !tb.DropFrame() {
		t.Errorf("50/2: have rate %d drop %v", tb.Rate(), tb.DropFrame())
	}
	tb = TimebaseFromFramerate(video.Framerate{})
	if tb != DefaultTimebase() {
		t.Errorf("empty framerate: have %v", tb)
	}
}

func TestFramesFromTime(t *testing.T) {
	tb := NewTimebase(23.976)
	tests := []struct {
		ms   int64
		want int64
	}{
		{0, 0},
		{41, 0},
		{42, 1},
		{999, 23},
		{1000, 24},
		{3661000, 87864},
		{-999, -23},
		{-1000, -24},
	}
	for _, tt := range tests {
		if have := tb.FramesFromTime(FromMilliseconds(tt.ms)); have != tt.want {
			t.Errorf("FramesFromTime(%dms): have %d, want %d", tt.ms, have, tt.want)
		}
	}
}

func TestFramesRoundTrip(t *testing.T) {
	for _, fps := range []float64{1, 23.976, 24, 25, 29.97, 30, 48, 50, 59.94, 60, 120, 240, 1000} {
		tb := NewTimebase(fps)
		for n := int64(0); n <= 10000; n++ {
			if have := tb.FramesFromTime(tb.TimeFromFrames(n)); have != n {
				t.Fatalf("%v: frames(time(%d)) = %d", tb, n, have)
			}
			if have := tb.FramesFromTime(tb.TimeFromFrames(-n)); have != -n {
				t.Fatalf("%v: frames(time(%d)) = %d", tb, -n, have)
			}
		}
	}
}

func TestTimeFramesTimeIsLossy(t *testing.T) {
	tb := NewTimebase(25)
	tm := FromMilliseconds(1039)
	if have := tb.TimeFromFrames(tb.FramesFromTime(tm)); have != 1000 {
		t.Fatalf("sub-frame remainder should be discarded: have %d", have)
	}
}

func TestZeroTimebase(t *testing.T) {
	var tb Timebase
	if tb.FramesFromTime(FromSeconds(10)) != 0 {
		t.Error("frames from zero timebase")
	}
	if tb.TimeFromFrames(10) != 0 {
		t.Error("time from zero timebase")
	}
	if tb.MillisecondsPerFrame() != 0 {
		t.Error("ms per frame from zero timebase")
	}
}
