package model

import (
	"testing"
	"time"
)

func TestOrderStatusValid(t *testing.T) {
	for _, s := range Statuses {
		if !s.Valid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	if OrderStatus("archived").Valid() {
		t.Fatalf("unknown status accepted")
	}
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("AEST", 10*3600)
	cases := []struct {
		in   string
		want time.Time
		err  bool
	}{
		{"2025-03-14", time.Date(2025, 3, 14, 0, 0, 0, 0, loc), false},
		// 20:00 UTC on the 13th is already the 14th in AEST.
		{"2025-03-13T20:00:00Z", time.Date(2025, 3, 14, 0, 0, 0, 0, loc), false},
		{"14/03/2025", time.Time{}, true},
		{"", time.Time{}, true},
	}
	for _, c := range cases {
		got, err := ParseDate(c.in, loc)
		if c.err {
			if err == nil {
				t.Fatalf("%q: expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
		if !got.Equal(c.want) {
			t.Fatalf("%q: got %v want %v", c.in, got, c.want)
		}
	}
}

func TestDateRangeContains(t *testing.T) {
	from := time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 12, 9, 0, 0, 0, time.UTC)
	r := DateRange{From: &from, To: &to}
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }

	if r.Contains(day(9)) || r.Contains(day(13)) {
		t.Fatalf("days outside the range accepted")
	}
	for _, d := range []int{10, 11, 12} {
		if !r.Contains(day(d)) {
			t.Fatalf("day %d should be inside", d)
		}
	}
	if !(DateRange{}).Contains(day(1)) {
		t.Fatalf("open range must contain everything")
	}
	if !(DateRange{To: &to}).Contains(day(1)) {
		t.Fatalf("open lower bound rejected an early day")
	}
}

func TestSuggestionKey(t *testing.T) {
	s := Suggestion{Date: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), Time: "10:00 AM", ResourceID: "1"}
	if s.Key() != "2025-05-02|10:00 AM|1" {
		t.Fatalf("unexpected key %q", s.Key())
	}
}

func TestResourceFirstSlot(t *testing.T) {
	if _, ok := (Resource{}).FirstSlot(); ok {
		t.Fatalf("empty resource has no slot")
	}
	r := Resource{AvailableTimes: []string{"9:00 AM", "1:00 PM"}}
	if s, ok := r.FirstSlot(); !ok || s != "9:00 AM" {
		t.Fatalf("unexpected first slot %q", s)
	}
}
