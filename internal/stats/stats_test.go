package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khalidmahamud/voter-info-web/model"
)

func TestParseDateOfBirth(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{"arabic digits", "15/06/1980", time.Date(1980, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"bengali digits", "১৫/০৬/১৯৮০", time.Date(1980, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"mixed digits", "০১/12/১৯৯৯", time.Date(1999, 12, 1, 0, 0, 0, 0, time.UTC), true},
		{"dash separators", "1-2-1975", time.Date(1975, 2, 1, 0, 0, 0, 0, time.UTC), true},
		{"surrounding spaces", " 01/01/2000 ", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"not a date", "unknown", time.Time{}, false},
		{"missing part", "01/1980", time.Time{}, false},
		{"month out of range", "01/13/1980", time.Time{}, false},
		{"day rolls over", "31/02/1990", time.Time{}, false},
		{"two digit year", "01/01/80", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDateOfBirth(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	age, ok := Age("১৫/০৬/১৯৮০", now)
	require.True(t, ok)
	assert.Equal(t, 45, age)

	_, ok = Age("", now)
	assert.False(t, ok)
}

func TestCalculate(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []model.Record{
		{ID: "1", Gender: model.GenderFemale, DateOfBirth: "15/06/1980", Occupation: "গৃহিণী"},
		{ID: "2", Gender: model.GenderFemale, DateOfBirth: "০১/০১/২০০০", Occupation: "ছাত্রী"},
		{ID: "3", Gender: model.GenderMale, DateOfBirth: "01/01/1950", Occupation: "কৃষক"},
		{ID: "4", Gender: model.GenderMale, DateOfBirth: "", Occupation: " কৃষক "},
		{ID: "5", Gender: model.GenderMale, DateOfBirth: "01/01/2010", Occupation: ""},
	}

	s := Calculate(records, now)

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.Female)
	assert.Equal(t, 3, s.Male)
	assert.Equal(t, []model.OccupationCount{
		{Occupation: "কৃষক", Count: 2},
		{Occupation: "গৃহিণী", Count: 1},
		{Occupation: "ছাত্রী", Count: 1},
	}, s.Occupations)
	assert.Equal(t, 1950, s.MinBirthYear)
	assert.Equal(t, 2010, s.MaxBirthYear)

	counts := make(map[string]int)
	for _, b := range s.AgeDistribution {
		counts[b.Label] = b.Count
	}
	assert.Equal(t, map[string]int{
		"18-25": 1,
		"26-35": 0,
		"36-45": 1,
		"46-55": 0,
		"56-65": 0,
		"66+":   1,
	}, counts)
	require.Len(t, s.AgeDistribution, 6)
	assert.Equal(t, "18-25", s.AgeDistribution[0].Label)
	assert.Equal(t, "66+", s.AgeDistribution[5].Label)
}

func TestCalculate_Empty(t *testing.T) {
	s := Calculate(nil, time.Now())
	assert.Equal(t, 0, s.Total)
	assert.NotNil(t, s.Occupations)
	assert.Len(t, s.AgeDistribution, 6)
}

func TestBucketBoundaries(t *testing.T) {
	tests := []struct {
		age  int
		want int
	}{
		{17, -1}, {18, 0}, {25, 0}, {26, 1}, {35, 1}, {36, 2}, {55, 3}, {56, 4}, {65, 4}, {66, 5}, {104, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bucketFor(tt.age), "age %d", tt.age)
	}
}

func TestSuggestOccupations(t *testing.T) {
	occupations := []model.OccupationCount{
		{Occupation: "farmer", Count: 10},
		{Occupation: "teacher", Count: 5},
		{Occupation: "farm worker", Count: 3},
		{Occupation: "day labourer", Count: 2},
		{Occupation: "কৃষক", Count: 1},
	}

	got := SuggestOccupations(occupations, "farm", 0)
	require.Len(t, got, 2)
	assert.Equal(t, "farmer", got[0].Occupation)
	assert.Equal(t, "farm worker", got[1].Occupation)

	got = SuggestOccupations(occupations, "FARM", 1)
	require.Len(t, got, 1)
	assert.Equal(t, "farmer", got[0].Occupation)

	got = SuggestOccupations(occupations, "কৃষ", 0)
	require.Len(t, got, 1)
	assert.Equal(t, "কৃষক", got[0].Occupation)

	got = SuggestOccupations(occupations, "", 2)
	assert.Equal(t, occupations[:2], got)

	assert.Empty(t, SuggestOccupations(occupations, "zzz", 0))
}

func TestOccupations(t *testing.T) {
	records := []model.Record{
		{Occupation: "teacher"}, {Occupation: "farmer"}, {Occupation: "farmer"}, {Occupation: ""},
	}
	assert.Equal(t, []model.OccupationCount{
		{Occupation: "farmer", Count: 2},
		{Occupation: "teacher", Count: 1},
	}, Occupations(records))
}
