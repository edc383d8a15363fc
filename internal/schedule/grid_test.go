package schedule

import (
	"testing"
	"time"

	"github.com/orbitdesk/receptionist-scheduler/internal/domain/entities"
)

func TestBuildGrid_MonthCompleteness(t *testing.T) {
	refs := []time.Time{
		time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC),  // Feb, starts on Sunday
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),   // 31-day month
		time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),  // leap February
		time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), // year boundary
	}

	for _, ref := range refs {
		g := BuildGrid(ref, entities.ViewMonth)

		if len(g.Days)%7 != 0 {
			t.Fatalf("ref %s: got %d cells, want a multiple of 7", FormatDate(ref), len(g.Days))
		}
		if g.Days[0].Weekday() != time.Sunday {
			t.Fatalf("ref %s: grid starts on %s, want Sunday", FormatDate(ref), g.Days[0].Weekday())
		}
		if g.Days[len(g.Days)-1].Weekday() != time.Saturday {
			t.Fatalf("ref %s: grid ends on %s, want Saturday", FormatDate(ref), g.Days[len(g.Days)-1].Weekday())
		}

		seen := map[string]int{}
		for _, d := range g.Days {
			seen[FormatDate(d)]++
		}
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			if seen[FormatDate(d)] != 1 {
				t.Fatalf("ref %s: day %s appears %d times", FormatDate(ref), FormatDate(d), seen[FormatDate(d)])
			}
		}
	}
}

func TestBuildGrid_MonthIsConsecutive(t *testing.T) {
	g := BuildGrid(time.Date(2026, 5, 20, 13, 45, 0, 0, time.UTC), entities.ViewMonth)
	for i := 1; i < len(g.Days); i++ {
		if !g.Days[i].Equal(g.Days[i-1].AddDate(0, 0, 1)) {
			t.Fatalf("cells %d and %d are not consecutive: %s, %s",
				i-1, i, FormatDate(g.Days[i-1]), FormatDate(g.Days[i]))
		}
	}
}

func TestBuildGrid_Week(t *testing.T) {
	cases := []struct {
		ref       string
		wantStart string
	}{
		{"2026-08-26", "2026-08-23"}, // Wednesday mid-week
		{"2026-08-23", "2026-08-23"}, // already Sunday
		{"2026-01-01", "2025-12-28"}, // year boundary
	}
	for _, tc := range cases {
		ref, _ := ParseDate(tc.ref, time.UTC)
		g := BuildGrid(ref, entities.ViewWeek)
		if len(g.Days) != 7 {
			t.Fatalf("ref %s: got %d days, want 7", tc.ref, len(g.Days))
		}
		if FormatDate(g.Days[0]) != tc.wantStart {
			t.Fatalf("ref %s: week starts %s, want %s", tc.ref, FormatDate(g.Days[0]), tc.wantStart)
		}
		if g.Days[0].Weekday() != time.Sunday {
			t.Fatalf("ref %s: week starts on %s", tc.ref, g.Days[0].Weekday())
		}
		for i := 1; i < 7; i++ {
			if !g.Days[i].Equal(g.Days[i-1].AddDate(0, 0, 1)) {
				t.Fatalf("ref %s: days not consecutive at index %d", tc.ref, i)
			}
		}
	}
}

func TestBuildGrid_Day(t *testing.T) {
	ref := time.Date(2026, 8, 29, 16, 30, 0, 0, time.UTC)
	g := BuildGrid(ref, entities.ViewDay)
	if len(g.Days) != 1 {
		t.Fatalf("got %d days, want 1", len(g.Days))
	}
	if FormatDate(g.Days[0]) != "2026-08-29" {
		t.Fatalf("got %s, want 2026-08-29", FormatDate(g.Days[0]))
	}
	if g.Days[0].Hour() != 0 {
		t.Fatalf("day cell not at midnight: %s", g.Days[0])
	}
}

func TestNavigate_MonthRollover(t *testing.T) {
	ref := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	next := Next(ref, entities.ViewMonth)
	if next.Year() != 2027 || next.Month() != time.January {
		t.Fatalf("next month from 2026-12-31 is %s", FormatDate(next))
	}

	g := BuildGrid(next, entities.ViewMonth)
	// January 2027 starts on a Friday; the leading padding falls in late December.
	if FormatDate(g.Days[0]) != "2026-12-27" {
		t.Fatalf("leading padding starts %s, want 2026-12-27", FormatDate(g.Days[0]))
	}

	prev := Previous(next, entities.ViewMonth)
	if prev.Year() != 2026 || prev.Month() != time.December {
		t.Fatalf("previous month from %s is %s", FormatDate(next), FormatDate(prev))
	}
}

func TestNavigate_MonthAnchorsOnFirst(t *testing.T) {
	// Stepping from Jan 31 must land in February, not skip to March.
	ref := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	next := Next(ref, entities.ViewMonth)
	if next.Month() != time.February || next.Day() != 1 {
		t.Fatalf("next month from 2026-01-31 is %s", FormatDate(next))
	}
}

func TestNavigate_WeekAndDay(t *testing.T) {
	ref := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := Previous(ref, entities.ViewDay); FormatDate(got) != "2025-12-31" {
		t.Fatalf("previous day is %s", FormatDate(got))
	}
	if got := Next(ref, entities.ViewWeek); FormatDate(got) != "2026-01-08" {
		t.Fatalf("next week is %s", FormatDate(got))
	}
}

func TestToday_ResetsNavigation(t *testing.T) {
	now := time.Date(2026, 8, 29, 18, 12, 3, 0, time.UTC)
	got := Today(now)
	if FormatDate(got) != "2026-08-29" || got.Hour() != 0 {
		t.Fatalf("Today returned %s", got)
	}
}
