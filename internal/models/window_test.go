package models

import (
	"testing"
	"time"
)

func TestParseWindowLenient(t *testing.T) {
	cases := map[string]Window{
		"HOUR":         WindowHour,
		"SIX_HOURS":    WindowSixHours,
		"TWELVE_HOURS": WindowTwelveHours,
		"DAY":          WindowDay,
		"WEEK":         WindowWeek,
		"":             WindowHour,
		"FORTNIGHT":    WindowHour,
		"hour":         WindowHour,
	}
	for input, want := range cases {
		if got := ParseWindow(input); got != want {
			t.Errorf("ParseWindow(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestParseTagWindowSubset(t *testing.T) {
	if got := ParseTagWindow("SIX_HOURS"); got != WindowHour {
		t.Errorf("ParseTagWindow must reject SIX_HOURS, got %s", got)
	}
	if got := ParseTagWindow("WEEK"); got != WindowWeek {
		t.Errorf("ParseTagWindow(WEEK) = %s", got)
	}
}

func TestWindowSince(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	if got := WindowWeek.Since(now); !got.Equal(now.Add(-7 * 24 * time.Hour)) {
		t.Errorf("WindowWeek.Since = %v", got)
	}
	if got := WindowHour.Since(now); !got.Equal(now.Add(-time.Hour)) {
		t.Errorf("WindowHour.Since = %v", got)
	}
}

func TestParseRankingMode(t *testing.T) {
	if got := ParseRankingMode("POPULARITY"); got != RankingPopularity {
		t.Errorf("ParseRankingMode(POPULARITY) = %s", got)
	}
	if got := ParseRankingMode("anything"); got != RankingRecent {
		t.Errorf("unrecognized input must default to RECENT, got %s", got)
	}
}

func TestParseReportReasonStrict(t *testing.T) {
	if _, ok := ParseReportReason("SPAM"); !ok {
		t.Error("SPAM must parse")
	}
	if _, ok := ParseReportReason("RUDE"); ok {
		t.Error("unknown reasons must be rejected, not defaulted")
	}
}
