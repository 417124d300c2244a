package shared

import "testing"

func TestFormatKESGroupsDigits(t *testing.T) {
	got := FormatKES(1000000)
	if got != "KES 1,000,000" {
		t.Fatalf("expected KES 1,000,000 got %q", got)
	}
}

func TestFormatKESRoundsFractions(t *testing.T) {
	if got := FormatKES(2450000.6); got != "KES 2,450,001" {
		t.Fatalf("unexpected rounded value %q", got)
	}
	if got := FormatKES(0); got != "KES 0" {
		t.Fatalf("unexpected zero value %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(34); got != "34%" {
		t.Fatalf("expected 34%% got %q", got)
	}
	if got := FormatPercent(12.5); got != "12.5%" {
		t.Fatalf("expected 12.5%% got %q", got)
	}
}
