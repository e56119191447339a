package appointment

import "testing"

func TestValidTime(t *testing.T) {
	tests := map[string]bool{
		"09:30":       true,
		"14:05:30":    true,
		"2:00 PM":     true,
		"02:00 PM":    true,
		"2:00 pm":     true,
		"11:15am":     true,
		"11:15:00 am": true,
		" 08:00 ":     true,
		"25:00":       false,
		"13:00 PM":    false,
		"noon":        false,
		"":            false,
	}
	for in, want := range tests {
		if got := ValidTime(in); got != want {
			t.Errorf("ValidTime(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidDate(t *testing.T) {
	tests := map[string]bool{
		"2025-03-10": true,
		"2025-02-30": false,
		"10/03/2025": false,
		"":           false,
	}
	for in, want := range tests {
		if got := ValidDate(in); got != want {
			t.Errorf("ValidDate(%q) = %v, want %v", in, got, want)
		}
	}
}
