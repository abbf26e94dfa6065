// Package numerals converts between Bengali and Arabic (ASCII) decimal digits.
// Voter numbers, serial numbers and dates in the source data mix both scripts,
// so every comparison goes through ToArabic first.
package numerals

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// digitZeros lists the zero code point of every decimal script folded to ASCII.
// Each script encodes 0-9 as ten consecutive code points.
var digitZeros = []rune{
	'০', // Bengali
	'०', // Devanagari
	'٠', // Arabic-Indic
	'۰', // Extended Arabic-Indic
	'０', // Fullwidth
}

const bengaliZero = '০'

// arabicDigit returns the ASCII digit for r when r is a digit of a supported
// alternate script.
func arabicDigit(r rune) (rune, bool) {
	for _, zero := range digitZeros {
		if r >= zero && r <= zero+9 {
			return '0' + (r - zero), true
		}
	}
	return r, false
}

func toArabicRune(r rune) rune {
	d, _ := arabicDigit(r)
	return d
}

func toBengaliRune(r rune) rune {
	if r >= '0' && r <= '9' {
		return bengaliZero + (r - '0')
	}
	return r
}

// ToArabic maps every alternate-script digit in s to its ASCII equivalent.
// Non-digit characters pass through unchanged. ToArabic is idempotent.
func ToArabic(s string) string {
	if !hasAlternateDigit(s) {
		return s
	}
	out, _, _ := transform.String(Transformer(), s)
	return out
}

// ToBengali maps ASCII digits in s to Bengali digits.
func ToBengali(s string) string {
	out, _, _ := transform.String(runes.Map(toBengaliRune), s)
	return out
}

// Transformer returns a fresh transformer performing ToArabic. Transformers
// are stateful and must not be shared between goroutines.
func Transformer() transform.Transformer {
	return runes.Map(toArabicRune)
}

func hasAlternateDigit(s string) bool {
	for _, r := range s {
		if _, ok := arabicDigit(r); ok {
			return true
		}
	}
	return false
}
