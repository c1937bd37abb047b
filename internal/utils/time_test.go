package utils

import (
	"testing"
	"time"
)

func TestAgeAt(t *testing.T) {
	ref := time.Date(2026, 6, 15, 0, 0, 0, 0, time.Local)

	cases := []struct {
		dob  string
		want int
	}{
		{"1990-06-15", 36}, // birthday today
		{"1990-06-16", 35}, // birthday tomorrow
		{"2026-01-01", 0},
		{"2030-01-01", 0}, // future DOB
		{"not-a-date", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := AgeAt(tc.dob, ref); got != tc.want {
			t.Fatalf("AgeAt(%q) = %d, want %d", tc.dob, got, tc.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(1250000); got != "1,250,000" {
		t.Fatalf("FormatAmount = %q", got)
	}
	if got := FormatAmount(-900); got != "-900" {
		t.Fatalf("FormatAmount negative = %q", got)
	}
}

func TestParseAmount(t *testing.T) {
	cases := map[string]int64{
		"1.250.000": 1250000,
		"1,000":     1000,
		" 2500 ":    2500,
	}
	for in, want := range cases {
		got, err := ParseAmount(in)
		if err != nil || got != want {
			t.Fatalf("ParseAmount(%q) = %d, %v, want %d", in, got, err, want)
		}
	}
	if _, err := ParseAmount("  "); err == nil {
		t.Fatal("ParseAmount accepted blank input")
	}
}

func TestSlugify(t *testing.T) {
	if got := Slugify("  Komodo Island – 3 Days!  "); got != "komodo-island-3-days" {
		t.Fatalf("Slugify = %q", got)
	}
}

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  Jane   van  Roe "); got != "Jane van Roe" {
		t.Fatalf("NormalizeSpace = %q", got)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", "public", "dashboard"); got != "public" {
		t.Fatalf("FirstNonEmpty = %q", got)
	}
	if got := FirstNonEmpty("", " "); got != "" {
		t.Fatalf("FirstNonEmpty blank = %q", got)
	}
}
