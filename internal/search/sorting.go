package search

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/khalidmahamud/voter-info-web/internal/errors"
	"github.com/khalidmahamud/voter-info-web/internal/numerals"
	"github.com/khalidmahamud/voter-info-web/internal/stats"
	"github.com/khalidmahamud/voter-info-web/model"
)

// SortFields lists the accepted sort_by values.
var SortFields = []string{
	"serial",
	model.FieldName,
	model.FieldVoterNo,
	model.FieldFatherName,
	model.FieldMotherName,
	model.FieldOccupation,
	model.FieldDateOfBirth,
	model.FieldAddress,
}

type sortKind int

const (
	sortText sortKind = iota
	sortNumeric
	sortDate
)

// columnOrder sorts results by a record column.
type columnOrder struct {
	field string
	kind  sortKind
	desc  bool
}

// compileSort returns nil when results keep relevance order.
func compileSort(field string, desc bool) (*columnOrder, error) {
	field = strings.TrimSpace(field)
	switch field {
	case "":
		return nil, nil
	case "serial", model.FieldSerialNo:
		return &columnOrder{field: model.FieldSerialNo, kind: sortNumeric, desc: desc}, nil
	case model.FieldVoterNo:
		return &columnOrder{field: field, kind: sortNumeric, desc: desc}, nil
	case model.FieldDateOfBirth:
		return &columnOrder{field: field, kind: sortDate, desc: desc}, nil
	case model.FieldName, model.FieldFatherName, model.FieldMotherName, model.FieldOccupation, model.FieldAddress:
		return &columnOrder{field: field, kind: sortText, desc: desc}, nil
	default:
		return nil, errors.NewValidationError("sort_by", "must be one of "+strings.Join(SortFields, ", "))
	}
}

// sort orders results in place. Equal values keep their relevance order.
func (o *columnOrder) sort(results []RankedResult) {
	var cmp func(a, b *model.Record) int
	switch o.kind {
	case sortNumeric:
		cmp = func(a, b *model.Record) int {
			av, _ := a.Field(o.field)
			bv, _ := b.Field(o.field)
			return compareNumeric(av, bv)
		}
	case sortDate:
		cmp = compareDates
	default:
		// Collators keep internal buffers, so each sort gets its own.
		col := collate.New(language.Bengali, collate.Loose)
		cmp = func(a, b *model.Record) int {
			av, _ := a.Field(o.field)
			bv, _ := b.Field(o.field)
			return col.CompareString(strings.TrimSpace(av), strings.TrimSpace(bv))
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		c := cmp(&results[i].Record, &results[j].Record)
		if o.desc {
			return c > 0
		}
		return c < 0
	})
}

// compareNumeric compares digit strings in either script by value.
// Non-numeric values sort after numeric ones and compare as text.
func compareNumeric(a, b string) int {
	a = strings.TrimSpace(numerals.ToArabic(a))
	b = strings.TrimSpace(numerals.ToArabic(b))
	aNum, bNum := isDigits(a), isDigits(b)
	switch {
	case aNum && bNum:
		a = strings.TrimLeft(a, "0")
		b = strings.TrimLeft(b, "0")
		if len(a) != len(b) {
			if len(a) < len(b) {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	case aNum:
		return -1
	case bNum:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// compareDates orders by date of birth; unparseable dates sort last.
func compareDates(a, b *model.Record) int {
	at, aok := stats.ParseDateOfBirth(a.DateOfBirth)
	bt, bok := stats.ParseDateOfBirth(b.DateOfBirth)
	switch {
	case aok && bok:
		return at.Compare(bt)
	case aok:
		return -1
	case bok:
		return 1
	default:
		return 0
	}
}
