package timefmt_test

import (
	"testing"

	"github.com/robiparvez/openproject-worklogger/pkg/timefmt"
)

func TestValid(t *testing.T) {
	valid := []string{"00:00", "09:00", "9:05", "23:59"}
	for _, s := range valid {
		if !timefmt.Valid(s) {
			t.Errorf("Valid(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "24:00", "12:60", "noon", "9", "09:0", "9:00 AM"}
	for _, s := range invalid {
		if timefmt.Valid(s) {
			t.Errorf("Valid(%q) = true, want false", s)
		}
	}
}

func TestAddHours(t *testing.T) {
	tests := []struct {
		clock string
		hours float64
		want  string
	}{
		{"09:00", 2, "11:00"},
		{"09:00", 0.5, "09:30"},
		{"09:00", 2.5, "11:30"},
		{"10:00", 0.25, "10:15"},
		{"09:10", 1.75, "10:55"},
		{"23:00", 2, "01:00"}, // wraps past midnight
		{"09:00", 0, "09:00"}, // zero is identity
		{"", 2, ""},           // invalid input unchanged
		{"bogus", 2, "bogus"}, // invalid input unchanged
	}

	for _, tt := range tests {
		if got := timefmt.AddHours(tt.clock, tt.hours); got != tt.want {
			t.Errorf("AddHours(%q, %g) = %q, want %q", tt.clock, tt.hours, got, tt.want)
		}
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-09-07T09:30:00Z", "09:30"},
		{"09:30", "09:30"},
		{"9:30", "09:30"},
		{"", ""},
		{"not a time", ""},
		{"2025-09-07Txx:yy:00Z", ""},
	}

	for _, tt := range tests {
		if got := timefmt.Extract(tt.in); got != tt.want {
			t.Errorf("Extract(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMinutes(t *testing.T) {
	if got := timefmt.Minutes("09:30"); got != 570 {
		t.Errorf("Minutes(09:30) = %d, want 570", got)
	}
	if got := timefmt.Minutes("00:00"); got != 0 {
		t.Errorf("Minutes(00:00) = %d, want 0", got)
	}
	if got := timefmt.Minutes("bogus"); got != -1 {
		t.Errorf("Minutes(bogus) = %d, want -1", got)
	}
}

func TestFormat12Hour(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"09:00", "9:00 AM"},
		{"12:00", "12:00 PM"},
		{"00:30", "12:30 AM"},
		{"13:45", "1:45 PM"},
		{"23:59", "11:59 PM"},
		{"bogus", "Invalid Time"},
	}

	for _, tt := range tests {
		if got := timefmt.Format12Hour(tt.in); got != tt.want {
			t.Errorf("Format12Hour(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWindow(t *testing.T) {
	if got := timefmt.Window("09:00", 2); got != "[9:00 AM - 11:00 AM]" {
		t.Errorf("Window(09:00, 2) = %q", got)
	}
}
