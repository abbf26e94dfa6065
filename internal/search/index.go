package search

import (
	"fmt"
	"strings"

	"github.com/khalidmahamud/voter-info-web/config"
	"github.com/khalidmahamud/voter-info-web/internal/errors"
	"github.com/khalidmahamud/voter-info-web/internal/fuzzy"
	"github.com/khalidmahamud/voter-info-web/internal/tokenizer"
	"github.com/khalidmahamud/voter-info-web/model"
)

// Index is an immutable searchable view over a fixed set of records.
// It is safe for concurrent use by any number of goroutines.
type Index struct {
	records  []model.Record
	entries  []fuzzy.Entry
	matcher  *fuzzy.Matcher
	fields   []string
	settings config.SearchSettings
}

// Build validates the records and settings and prepares the normalized
// match text of every weighted field. The records slice is copied.
func Build(records []model.Record, settings config.SearchSettings) (*Index, error) {
	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return nil, errors.NewValidationError("settings", strings.Join(problems, "; "))
	}

	keys := make([]fuzzy.Key, len(settings.FieldWeights))
	fields := make([]string, len(settings.FieldWeights))
	for i, fw := range settings.FieldWeights {
		keys[i] = fuzzy.Key{Name: fw.Field, Weight: fw.Weight}
		fields[i] = fw.Field
	}

	matcher, err := fuzzy.NewMatcher(keys, fuzzy.Options{
		Threshold:          settings.Threshold,
		Distance:           settings.Distance,
		IgnoreLocation:     settings.IgnoresLocation(),
		MinMatchCharLength: settings.MinMatchCharLength,
	})
	if err != nil {
		return nil, errors.NewValidationError("settings", err.Error())
	}

	idx := &Index{
		records:  make([]model.Record, len(records)),
		entries:  make([]fuzzy.Entry, len(records)),
		matcher:  matcher,
		fields:   fields,
		settings: settings,
	}
	copy(idx.records, records)

	seen := make(map[string]int, len(records))
	for i := range idx.records {
		r := &idx.records[i]
		if err := validateRecord(i, r); err != nil {
			return nil, err
		}
		if first, dup := seen[r.ID]; dup {
			return nil, errors.NewInvalidRecordError(i, r.ID, model.FieldID,
				fmt.Sprintf("duplicates the record at position %d", first))
		}
		seen[r.ID] = i

		entry := fuzzy.Entry{Fields: make([]fuzzy.Field, len(fields))}
		for k, name := range fields {
			value, _ := r.Field(name)
			// voter_no gets the same numeral folding as every other field
			entry.Fields[k] = fuzzy.NewField(tokenizer.Normalize(value))
		}
		idx.entries[i] = entry
	}

	return idx, nil
}

func validateRecord(position int, r *model.Record) error {
	required := []struct {
		field string
		value string
	}{
		{model.FieldID, r.ID},
		{model.FieldName, r.Name},
		{model.FieldVoterNo, r.VoterNo},
	}
	for _, req := range required {
		if strings.TrimSpace(req.value) == "" {
			return errors.NewInvalidRecordError(position, r.ID, req.field, "is required")
		}
	}
	return nil
}

// Len returns the number of indexed records.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.records)
}

// Records returns the indexed records in input order. The slice is shared
// and must not be modified.
func (idx *Index) Records() []model.Record {
	if idx == nil {
		return nil
	}
	return idx.records
}

// Settings returns the effective settings of the index.
func (idx *Index) Settings() config.SearchSettings {
	return idx.settings
}

// matchText returns the normalized text a field is matched against.
func (idx *Index) matchText(i int, field string) (string, bool) {
	for k, name := range idx.fields {
		if name == field {
			return idx.entries[i].Fields[k].Text, true
		}
	}
	return "", false
}

// FuzzySearch runs one pass of the fuzzy primitive for a normalized pattern.
// Matches are ordered best first, ties by index order.
func (idx *Index) FuzzySearch(pattern string) []Match {
	if idx.Len() == 0 {
		return []Match{}
	}
	results := idx.matcher.Search(idx.entries, pattern)
	matches := make([]Match, len(results))
	for i, r := range results {
		spans := make(map[string][]fuzzy.Span, len(r.Matches))
		for _, km := range r.Matches {
			spans[km.Key] = append(spans[km.Key], km.Span)
		}
		matches[i] = Match{
			Position: r.Index,
			Score:    r.Score,
			Matches:  spans,
		}
	}
	return matches
}
