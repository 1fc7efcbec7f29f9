package gate

import (
	"testing"
	"time"
)

func testGate(t *testing.T) *Gate {
	t.Helper()
	return New([]TimeOfDay{{Hour: 11}, {Hour: 14}}, 30, time.UTC)
}

// 2024-03-04 is a Monday, 2024-03-09 a Saturday, 2024-03-10 a Sunday.
func at(day, hour, min int) time.Time {
	return time.Date(2024, 3, day, hour, min, 0, 0, time.UTC)
}

func TestShouldNotify_Windows(t *testing.T) {
	g := testGate(t)
	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"monday window start", at(4, 11, 0), true},
		{"monday window end inclusive", at(4, 11, 30), true},
		{"monday just past window", at(4, 11, 31), false},
		{"monday just before window", at(4, 10, 59), false},
		{"monday second window", at(4, 14, 0), true},
		{"monday mid second window", at(4, 14, 15), true},
		{"monday outside all windows", at(4, 9, 0), false},
	}
	for _, tt := range tests {
		if got := g.ShouldNotify(tt.now, false); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestShouldNotify_WeekendBlocksEverything(t *testing.T) {
	g := testGate(t)
	weekend := []time.Time{
		at(9, 11, 0),  // Saturday, inside a window
		at(10, 14, 0), // Sunday, inside a window
	}
	for _, now := range weekend {
		if g.ShouldNotify(now, false) {
			t.Errorf("%s: weekend must block notifications", now.Weekday())
		}
		// Force must not bypass the weekend block.
		if g.ShouldNotify(now, true) {
			t.Errorf("%s: force must not bypass the weekend block", now.Weekday())
		}
	}
}

func TestShouldNotify_ForceBypassesWindowOnly(t *testing.T) {
	g := testGate(t)
	now := at(4, 10, 0) // Monday, outside all windows
	if g.ShouldNotify(now, false) {
		t.Fatal("expected window check to block without force")
	}
	if !g.ShouldNotify(now, true) {
		t.Error("force should bypass the time-window check on a weekday")
	}
}

func TestShouldNotify_ConfiguredTimezone(t *testing.T) {
	// Gate in UTC+9: 02:00 UTC Monday is 11:00 local.
	loc := time.FixedZone("UTC+9", 9*3600)
	g := New([]TimeOfDay{{Hour: 11}}, 30, loc)
	if !g.ShouldNotify(at(4, 2, 0), false) {
		t.Error("expected window match after timezone conversion")
	}
	// Friday 16:00 UTC is Saturday 01:00 local: weekend in gate's zone.
	friday := time.Date(2024, 3, 8, 16, 0, 0, 0, time.UTC)
	if g.ShouldNotify(friday, true) {
		t.Error("weekend in the configured timezone must block, even forced")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"11:00", TimeOfDay{11, 0}, false},
		{"14:30", TimeOfDay{14, 30}, false},
		{"0:05", TimeOfDay{0, 5}, false},
		{"24:00", TimeOfDay{}, true},
		{"11:60", TimeOfDay{}, true},
		{"noon", TimeOfDay{}, true},
		{"11", TimeOfDay{}, true},
		{"11:00xyz", TimeOfDay{}, true},
		{"11:00:59", TimeOfDay{}, true},
		{"", TimeOfDay{}, true},
	}
	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %+v, got %+v", tt.in, tt.want, got)
		}
	}
}
