package utils

import (
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
)

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}

// AgeAt derives a traveler's age from date of birth at the given reference
// date. Unparseable or future DOB yields 0.
func AgeAt(dob string, ref time.Time) int {
	born, err := ParseDate(dob)
	if err != nil || born.After(ref) {
		return 0
	}
	age := ref.Year() - born.Year()
	if ref.Month() < born.Month() || (ref.Month() == born.Month() && ref.Day() < born.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
