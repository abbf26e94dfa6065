// Package stats summarizes voter records: gender counts, occupation
// frequencies and the age distribution.
package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/khalidmahamud/voter-info-web/model"
)

type bucketRange struct {
	label    string
	min, max int // max 0 means open ended
}

var ageBuckets = []bucketRange{
	{"18-25", 18, 25},
	{"26-35", 26, 35},
	{"36-45", 36, 45},
	{"46-55", 46, 55},
	{"56-65", 56, 65},
	{"66+", 66, 0},
}

// Calculate summarizes records. Ages are computed against now.
func Calculate(records []model.Record, now time.Time) model.Stats {
	s := model.Stats{
		Total:           len(records),
		Occupations:     []model.OccupationCount{},
		AgeDistribution: make([]model.AgeBucket, len(ageBuckets)),
	}
	for i, b := range ageBuckets {
		s.AgeDistribution[i] = model.AgeBucket{Label: b.label, Min: b.min, Max: b.max}
	}

	occupations := make(map[string]int)
	for i := range records {
		r := &records[i]
		switch r.Gender {
		case model.GenderFemale:
			s.Female++
		case model.GenderMale:
			s.Male++
		}

		if occ := strings.TrimSpace(r.Occupation); occ != "" {
			occupations[occ]++
		}

		year, ok := BirthYear(r.DateOfBirth)
		if !ok {
			continue
		}
		if s.MinBirthYear == 0 || year < s.MinBirthYear {
			s.MinBirthYear = year
		}
		if year > s.MaxBirthYear {
			s.MaxBirthYear = year
		}
		if idx := bucketFor(now.Year() - year); idx >= 0 {
			s.AgeDistribution[idx].Count++
		}
	}

	s.Occupations = sortOccupations(occupations)
	return s
}

func bucketFor(age int) int {
	for i, b := range ageBuckets {
		if age >= b.min && (b.max == 0 || age <= b.max) {
			return i
		}
	}
	return -1
}

// sortOccupations orders by count descending, then by name.
func sortOccupations(counts map[string]int) []model.OccupationCount {
	result := make([]model.OccupationCount, 0, len(counts))
	for occ, n := range counts {
		result = append(result, model.OccupationCount{Occupation: occ, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Occupation < result[j].Occupation
	})
	return result
}

// Occupations returns the distinct occupations of records, most frequent first.
func Occupations(records []model.Record) []model.OccupationCount {
	counts := make(map[string]int)
	for i := range records {
		if occ := strings.TrimSpace(records[i].Occupation); occ != "" {
			counts[occ]++
		}
	}
	return sortOccupations(counts)
}
