package search

import (
	"strings"

	"github.com/khalidmahamud/voter-info-web/internal/errors"
	"github.com/khalidmahamud/voter-info-web/internal/stats"
	"github.com/khalidmahamud/voter-info-web/internal/tokenizer"
	"github.com/khalidmahamud/voter-info-web/model"
	"github.com/khalidmahamud/voter-info-web/services"
)

// recordFilter is a validated services.Filters ready to test records.
type recordFilter struct {
	gender      model.Gender
	occupations map[string]struct{}
	address     string // normalized
	yearFrom    int
	yearTo      int
}

func compileFilters(f services.Filters) (recordFilter, error) {
	var rf recordFilter

	switch f.Gender {
	case "", services.GenderAll:
	case services.GenderFemale, services.GenderMale:
		rf.gender = model.Gender(f.Gender)
	default:
		return rf, errors.NewValidationError("gender", "must be one of all, female, male")
	}

	if len(f.Occupations) > 0 {
		rf.occupations = make(map[string]struct{}, len(f.Occupations))
		for _, occ := range f.Occupations {
			if occ = strings.TrimSpace(occ); occ != "" {
				rf.occupations[occ] = struct{}{}
			}
		}
		if len(rf.occupations) == 0 {
			rf.occupations = nil
		}
	}

	rf.address = strings.TrimSpace(tokenizer.Normalize(f.Address))

	if f.BirthYearFrom < 0 || f.BirthYearTo < 0 {
		return rf, errors.NewValidationError("birth_year", "years must not be negative")
	}
	if f.BirthYearFrom > 0 && f.BirthYearTo > 0 && f.BirthYearFrom > f.BirthYearTo {
		return rf, errors.NewValidationError("birth_year", "birth_year_from must not be after birth_year_to")
	}
	rf.yearFrom = f.BirthYearFrom
	rf.yearTo = f.BirthYearTo

	return rf, nil
}

func (rf *recordFilter) isEmpty() bool {
	return rf.gender == "" && rf.occupations == nil && rf.address == "" && rf.yearFrom == 0 && rf.yearTo == 0
}

// matches reports whether r passes every active filter.
func (rf *recordFilter) matches(r *model.Record) bool {
	if rf.gender != "" && r.Gender != rf.gender {
		return false
	}
	if rf.occupations != nil {
		if _, ok := rf.occupations[strings.TrimSpace(r.Occupation)]; !ok {
			return false
		}
	}
	if rf.address != "" && !strings.Contains(tokenizer.Normalize(r.Address), rf.address) {
		return false
	}
	if rf.yearFrom > 0 || rf.yearTo > 0 {
		year, ok := stats.BirthYear(r.DateOfBirth)
		if !ok {
			return false
		}
		if rf.yearFrom > 0 && year < rf.yearFrom {
			return false
		}
		if rf.yearTo > 0 && year > rf.yearTo {
			return false
		}
	}
	return true
}
