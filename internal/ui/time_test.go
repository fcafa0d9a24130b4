package ui

import (
	"testing"
	"time"
)

func TestFormatDurationShort(t *testing.T) {
	cases := map[time.Duration]string{
		-time.Second:                   "0s",
		45 * time.Second:               "45s",
		2*time.Minute + 10*time.Second: "2m",
		3*time.Hour + 5*time.Minute:    "3h",
		48 * time.Hour:                 "2d",
	}
	for duration, want := range cases {
		if got := FormatDurationShort(duration); got != want {
			t.Fatalf("FormatDurationShort(%s) = %s, want %s", duration, got, want)
		}
	}
}

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		then time.Time
		want string
	}{
		{name: "unknown", then: time.Time{}, want: "-"},
		{name: "future", then: now.Add(time.Hour), want: "just now"},
		{name: "seconds", then: now.Add(-20 * time.Second), want: "just now"},
		{name: "minutes", then: now.Add(-2 * time.Minute), want: "2m ago"},
		{name: "days", then: now.Add(-3 * 24 * time.Hour), want: "3d ago"},
		{name: "old", then: time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC), want: "2025-01-02"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatTimeAgo(tc.then, now); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
