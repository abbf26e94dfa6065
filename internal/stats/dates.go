package stats

import (
	"strconv"
	"strings"
	"time"

	"github.com/khalidmahamud/voter-info-web/internal/numerals"
)

// ParseDateOfBirth parses a DD/MM/YYYY date written in either Arabic or
// Bengali digits. Dashes and dots are accepted as separators.
func ParseDateOfBirth(dob string) (time.Time, bool) {
	s := strings.TrimSpace(numerals.ToArabic(dob))
	if s == "" {
		return time.Time{}, false
	}

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '-' || r == '.'
	})
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || year < 1000 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		// e.g. 31/02 rolled over into March
		return time.Time{}, false
	}
	return t, true
}

// BirthYear returns the year of a date of birth.
func BirthYear(dob string) (int, bool) {
	t, ok := ParseDateOfBirth(dob)
	if !ok {
		return 0, false
	}
	return t.Year(), true
}

// Age is the difference between now's year and the birth year.
func Age(dob string, now time.Time) (int, bool) {
	year, ok := BirthYear(dob)
	if !ok {
		return 0, false
	}
	return now.Year() - year, true
}
