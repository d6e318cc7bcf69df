package timeutil

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "09:30", want: 570},
		{name: "end of day", input: "23:59", want: 1439},
		{name: "unpadded hour accepted", input: "9:30", want: 570},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "garbage", input: "morning", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseClock(%q) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{570, "09:30"},
		{720, "12:00"},
		{1439, "23:59"},
	}

	for _, tt := range tests {
		if got := FormatMinutes(tt.minutes); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatClock12Hour(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"00:00", "12:00 AM"},
		{"00:30", "12:30 AM"},
		{"01:05", "1:05 AM"},
		{"11:59", "11:59 AM"},
		{"12:00", "12:00 PM"},
		{"12:30", "12:30 PM"},
		{"13:00", "1:00 PM"},
		{"23:45", "11:45 PM"},
	}

	for _, tt := range tests {
		got, err := FormatClock(tt.input, Format12H)
		if err != nil {
			t.Fatalf("FormatClock(%q) unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("FormatClock(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatClock24HourPassesThrough(t *testing.T) {
	got, err := FormatClock("09:30", Format24H)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "09:30" {
		t.Errorf("expected pass-through, got %q", got)
	}

	if _, err := FormatClock("09:30", "48h"); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := FormatClock("junk", Format12H); err == nil {
		t.Error("expected error for malformed clock")
	}
}

func TestConvertWallClock(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		clock  string
		source string
		target string
		want   string
	}{
		{
			name:   "new york to london in winter",
			date:   "2026-01-05",
			clock:  "09:00",
			source: "America/New_York",
			target: "Europe/London",
			want:   "14:00",
		},
		{
			name:   "new york to london in summer",
			date:   "2026-07-06",
			clock:  "09:00",
			source: "America/New_York",
			target: "Europe/London",
			want:   "14:00",
		},
		{
			name:   "identical zones are a no-op",
			date:   "2026-01-05",
			clock:  "09:00",
			source: "America/New_York",
			target: "America/New_York",
			want:   "09:00",
		},
		{
			name:   "utc to tokyo",
			date:   "2026-01-05",
			clock:  "20:00",
			source: "UTC",
			target: "Asia/Tokyo",
			want:   "05:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertWallClock(tt.date, tt.clock, tt.source, tt.target)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertWallClock_RoundTrip(t *testing.T) {
	there, err := ConvertWallClock("2026-03-02", "10:30", "Europe/Berlin", "America/Chicago")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := ConvertWallClock("2026-03-02", there, "America/Chicago", "Europe/Berlin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back != "10:30" {
		t.Errorf("round trip returned %q, want 10:30", back)
	}
}

func TestConvertWallClock_UnknownZone(t *testing.T) {
	if _, err := ConvertWallClock("2026-01-05", "09:00", "Mars/Olympus", "UTC"); err == nil {
		t.Error("expected error for unknown source zone")
	}
	if _, err := ConvertWallClock("2026-01-05", "09:00", "UTC", "Mars/Olympus"); err == nil {
		t.Error("expected error for unknown target zone")
	}
}

func TestWeekday(t *testing.T) {
	got, err := Weekday("2026-01-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "monday" {
		t.Errorf("expected monday, got %q", got)
	}

	if _, err := Weekday("not-a-date"); err == nil {
		t.Error("expected error for malformed date")
	}
}
