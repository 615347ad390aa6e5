package utils

import (
	"testing"
	"time"
)

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, time.October, 18, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		expiration string
		want       int
	}{
		{"2026-10-18", 0},
		{"2026-10-19", 1},
		{"2026-11-20", 33},
		{"2027-10-18", 365},
		{"9999-12-31", 2912152},
	}

	for _, tt := range tests {
		got, err := DaysUntil(tt.expiration, now)
		if err != nil {
			t.Errorf("DaysUntil(%s) failed: %v", tt.expiration, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DaysUntil(%s) = %d, want %d", tt.expiration, got, tt.want)
		}
	}
}

func TestDaysUntilRejectsBadDates(t *testing.T) {
	now := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)

	for _, exp := range []string{"2026-10-17", "18/10/2026", "", "2026-13-01"} {
		if _, err := DaysUntil(exp, now); err == nil {
			t.Errorf("Expected error for %q", exp)
		}
	}
}

func TestCalculateNextOptionsExpiration(t *testing.T) {
	tests := []struct {
		now  time.Time
		want string
	}{
		// third Friday of October 2026 is the 16th
		{time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), "2026-10-16"},
		{time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC), "2026-10-16"},
		{time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC), "2026-11-20"},
		{time.Date(2026, time.December, 30, 0, 0, 0, 0, time.UTC), "2027-01-15"},
	}

	for _, tt := range tests {
		if got := CalculateNextOptionsExpiration(tt.now); got != tt.want {
			t.Errorf("CalculateNextOptionsExpiration(%s) = %s, want %s", tt.now.Format(DateLayout), got, tt.want)
		}
	}
}

func TestDaysUntilAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	// clocks go back on 2026-11-01
	now := time.Date(2026, time.October, 31, 23, 30, 0, 0, loc)
	got, err := DaysUntil("2026-11-02", now)
	if err != nil {
		t.Fatalf("DaysUntil failed: %v", err)
	}
	if got != 2 {
		t.Errorf("DaysUntil across DST = %d, want 2", got)
	}
}
