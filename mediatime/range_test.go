package mediatime

import (
	"sort"
	"testing"

	"github.com/cbsinteractive/pkg/timecode"
	"github.com/google/go-cmp/cmp"
)

func sec(s float64) Time { return FromSeconds(s) }

func TestNewRange(t *testing.T) {
	r := NewRange(sec(5), sec(2))
	if r.Start != sec(2) || r.End != sec(5) {
		t.Fatalf("endpoints not reordered: %v", r)
	}
	if r.Duration() != sec(3) {
		t.Fatalf("duration: have %d", r.Duration())
	}
	start, end := r.Bounds()
	if NewRange(start, end) != r {
		t.Fatal("pair round trip")
	}
	if NewRange(sec(1), sec(1)).Duration() != 0 {
		t.Fatal("empty range duration")
	}
	var zero Range
	if zero.Start != 0 || zero.End != 0 {
		t.Fatal("zero range")
	}
}

func TestRangeOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Range
		want bool
	}{
		{"Touching", NewRange(sec(0), sec(5)), NewRange(sec(5), sec(10)), false},
		{"Overlapping", NewRange(sec(0), sec(5)), NewRange(sec(4), sec(10)), true},
		{"Contained", NewRange(sec(0), sec(10)), NewRange(sec(2), sec(3)), true},
		{"Disjoint", NewRange(sec(0), sec(1)), NewRange(sec(2), sec(3)), false},
		{"Same", NewRange(sec(1), sec(2)), NewRange(sec(1), sec(2)), true},
		{"EmptyAtStart", NewRange(sec(1), sec(1)), NewRange(sec(1), sec(2)), false},
		{"EmptyInside", NewRange(sec(0), sec(10)), NewRange(sec(5), sec(5)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if have := tt.a.Overlaps(tt.b); have != tt.want {
				t.Fatalf("a.Overlaps(b): have %v, want %v", have, tt.want)
			}
			if have := tt.b.Overlaps(tt.a); have != tt.want {
				t.Fatalf("b.Overlaps(a): have %v, want %v", have, tt.want)
			}
		})
	}
}

func TestRangeContains(t *testing.T) {
	r := NewRange(sec(1), sec(2))
	for tm, want := range map[Time]bool{sec(0.999): false, sec(1): true, sec(1.5): true, sec(2): false} {
		if r.Contains(tm) != want {
			t.Errorf("Contains(%d): want %v", tm, want)
		}
	}
}

func TestRangeTimecodes(t *testing.T) {
	start, end := NewRange(sec(3600), sec(3601.5)).Timecodes(NewTimebase(50))
	if start.String() != "01:00:00:00" || end.String() != "01:00:01:25" {
		t.Fatalf("have %s - %s", start, end)
	}
}

func TestRangeString(t *testing.T) {
	if s := NewRange(sec(61.25), 0).String(); s != "[00:00:00.000, 00:01:01.250)" {
		t.Fatalf("have %q", s)
	}
}

func TestRangeSeconds(t *testing.T) {
	r := RangeFromSeconds(timecode.Range{7.5, 1.25})
	if diff := cmp.Diff(NewRange(sec(1.25), sec(7.5)), r); diff != "" {
		t.Fatalf("range mismatch (-want +have):\n%s", diff)
	}
	if diff := cmp.Diff(timecode.Range{1.25, 7.5}, r.Seconds()); diff != "" {
		t.Fatalf("seconds mismatch (-want +have):\n%s", diff)
	}
}

func TestSplice(t *testing.T) {
	s := SpliceFromSeconds(timecode.Splice{{10, 12}, {0, 5}, {0, 2}, {4, 6}})
	if s.Sorted() {
		t.Fatal("splice should not be sorted yet")
	}
	sort.Sort(s)
	want := Splice{
		NewRange(sec(0), sec(2)),
		NewRange(sec(0), sec(5)),
		NewRange(sec(4), sec(6)),
		NewRange(sec(10), sec(12)),
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Fatalf("sort mismatch (-want +have):\n%s", diff)
	}
	if !s.Sorted() {
		t.Fatal("splice should be sorted")
	}
	if s.Duration() != sec(11) {
		t.Fatalf("duration: have %d", s.Duration())
	}
	if s.Union() != NewRange(0, sec(12)) {
		t.Fatalf("union: have %v", s.Union())
	}
	if !s.Overlapping() {
		t.Fatal("splice should overlap")
	}
	if (Splice{NewRange(0, sec(1)), NewRange(sec(1), sec(2))}).Overlapping() {
		t.Fatal("touching ranges should not overlap")
	}
	if diff := cmp.Diff(timecode.Splice{{0, 2}, {0, 5}, {4, 6}, {10, 12}}, s.Seconds()); diff != "" {
		t.Fatalf("seconds mismatch (-want +have):\n%s", diff)
	}
	if (Splice{}).Union() != (Range{}) || SpliceFromSeconds(nil) != nil || Splice(nil).Seconds() != nil {
		t.Fatal("empty splice")
	}
}
