package schedule

import (
	"strings"
	"testing"
	"time"
)

func TestMatchCron(t *testing.T) {
	at := time.Date(2026, time.March, 9, 3, 0, 0, 0, time.UTC) // Monday 03:00

	cases := []struct {
		expr string
		want bool
	}{
		{"* * * * *", true},
		{"0 3 * * *", true},
		{"5 0 * * *", false},
		{"0 3 9 3 *", true},
		{"0 3 * * 1", true},  // Monday
		{"0 3 * * 0", false}, // Sunday
		{"*/15 * * * *", true},
		{"*/7 * * * *", true}, // 0 % 7 == 0
		{"0-30 * * * *", true},
		{"31-59 * * * *", false},
		{"0 3 * *", false}, // short expression never matches
	}
	for _, c := range cases {
		if got := matchCron(c.expr, at); got != c.want {
			t.Errorf("matchCron(%q) = %v, want %v", c.expr, got, c.want)
		}
	}
}

func TestAtPinsDailyToWallClock(t *testing.T) {
	Flush()
	defer Flush()

	Daily().At("00:05").Name("license.recheck").Run(func() {})

	listing := List()
	if len(listing) != 1 {
		t.Fatalf("entries = %d, want 1", len(listing))
	}
	if !strings.Contains(listing[0], "5 0 * * *") {
		t.Errorf("listing = %q, want the 00:05 cron expression", listing[0])
	}
}

func TestAtIgnoresMalformedClock(t *testing.T) {
	Flush()
	defer Flush()

	Daily().At("bogus").Run(func() {})

	listing := List()
	if len(listing) != 1 {
		t.Fatalf("entries = %d, want 1", len(listing))
	}
	// The rolling 24h interval survives when the clock string is unusable.
	if !strings.Contains(listing[0], "24h") {
		t.Errorf("listing = %q, want the daily interval kept", listing[0])
	}
}

func TestIsDueIntervals(t *testing.T) {
	now := time.Now()

	e := &entry{interval: time.Minute}
	if !isDue(e, now) {
		t.Error("fresh interval entry should be due immediately")
	}

	e.lastRun = now.Add(-30 * time.Second)
	if isDue(e, now) {
		t.Error("entry due again before its interval elapsed")
	}

	e.lastRun = now.Add(-2 * time.Minute)
	if !isDue(e, now) {
		t.Error("entry not due after its interval elapsed")
	}
}

func TestIsDueCronOncePerMinute(t *testing.T) {
	at := time.Date(2026, time.March, 9, 0, 5, 30, 0, time.Local)

	e := &entry{cronExpr: "5 0 * * *"}
	if !isDue(e, at) {
		t.Error("cron entry not due inside its matching minute")
	}

	e.lastRun = at.Add(-10 * time.Second)
	if isDue(e, at) {
		t.Error("cron entry ran twice within the same minute")
	}
}

func TestDefaultTaskNames(t *testing.T) {
	Flush()
	defer Flush()

	Every(5).Minutes().Run(func() {})
	EveryMinute().Run(func() {})

	listing := List()
	if len(listing) != 2 {
		t.Fatalf("entries = %d, want 2", len(listing))
	}
	if !strings.HasPrefix(listing[0], "task-1") || !strings.HasPrefix(listing[1], "task-2") {
		t.Errorf("listing = %v, want generated task-N names", listing)
	}
}
