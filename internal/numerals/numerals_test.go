package numerals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToArabic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"ascii only", "abc 123", "abc 123"},
		{"bengali voter number", "৫৫১২৩৪৫৬৭৮৯০১", "5512345678901"},
		{"mixed scripts", "১2৩4", "1234"},
		{"bengali date", "০১/১২/১৯৮০", "01/12/1980"},
		{"bengali text untouched", "মোঃ করিম", "মোঃ করিম"},
		{"devanagari digits", "०१२", "012"},
		{"arabic-indic digits", "٣٤٥", "345"},
		{"extended arabic-indic digits", "۶۷", "67"},
		{"fullwidth digits", "８９", "89"},
		{"text with embedded digits", "বাড়ি নং ১২, রোড ৫", "বাড়ি নং 12, রোড 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToArabic(tt.input))
		})
	}
}

func TestToArabic_Idempotent(t *testing.T) {
	inputs := []string{"", " ", "১২৩", "abc", "মোঃ আব্দুল ১২৩ 456", "०१२٣٤٥۶۷８９"}
	for _, in := range inputs {
		once := ToArabic(in)
		assert.Equal(t, once, ToArabic(once), "ToArabic should be idempotent for %q", in)
	}
}

func TestToArabic_EveryDigitMapsToSameValue(t *testing.T) {
	for _, zero := range digitZeros {
		for i := rune(0); i < 10; i++ {
			assert.Equal(t, string('0'+i), ToArabic(string(zero+i)))
		}
	}
}

func TestToBengali(t *testing.T) {
	assert.Equal(t, "", ToBengali(""))
	assert.Equal(t, "০১/১২/১৯৮০", ToBengali("01/12/1980"))
	assert.Equal(t, "ward ১", ToBengali("ward 1"))
	assert.Equal(t, "১২৩", ToBengali("১২৩"))
}

func TestRoundTrip(t *testing.T) {
	in := "5512345678901"
	assert.Equal(t, in, ToArabic(ToBengali(in)))
}
