// Package config provides configuration structures for the voter directory.
// It defines search settings and the application configuration file.
package config

import (
	"fmt"
	"strings"

	"github.com/khalidmahamud/voter-info-web/model"
)

// Default search parameters.
const (
	DefaultThreshold          = 0.3
	DefaultDistance           = 100
	DefaultMinTokenLength     = 2
	DefaultMinMatchCharLength = 2
	DefaultQualityGate        = 0.3
	DefaultCutoffRatio        = 0.2
)

// FieldWeight assigns a relevance weight to a searchable record field.
type FieldWeight struct {
	Field  string  `json:"field" yaml:"field"`   // Record field key (e.g., "name", "voter_no")
	Weight float64 `json:"weight" yaml:"weight"` // Positive weight, higher ranks matches in this field first
}

// DefaultFieldWeights returns the field weight table used when none is configured.
func DefaultFieldWeights() []FieldWeight {
	return []FieldWeight{
		{Field: model.FieldName, Weight: 5},
		{Field: model.FieldVoterNo, Weight: 1.5},
		{Field: model.FieldFatherName, Weight: 2},
		{Field: model.FieldMotherName, Weight: 2},
		{Field: model.FieldAddress, Weight: 0.5},
		{Field: model.FieldOccupation, Weight: 0.3},
	}
}

// SearchSettings contains the match parameters of a search index.
//
// Threshold bounds the fraction of a pattern's length that may be edited for a
// field to count as a match. QualityGate is applied to per-token matches and
// should be no looser than Threshold. CutoffRatio drops aggregated results
// scoring below that fraction of the best result.
type SearchSettings struct {
	FieldWeights       []FieldWeight `json:"field_weights" yaml:"field_weights"`                 // Searched fields in order, with weights
	Threshold          float64       `json:"threshold" yaml:"threshold"`                         // Fuzziness threshold in [0,1]
	Distance           int           `json:"distance" yaml:"distance"`                           // Distance window in characters
	IgnoreLocation     *bool         `json:"ignore_location,omitempty" yaml:"ignore_location"`   // Search whole fields (default true)
	MinTokenLength     int           `json:"min_token_length" yaml:"min_token_length"`           // Shortest query token searched
	MinMatchCharLength int           `json:"min_match_char_length" yaml:"min_match_char_length"` // Shortest matched span accepted
	QualityGate        float64       `json:"quality_gate" yaml:"quality_gate"`                   // Max score of a token match kept for aggregation
	CutoffRatio        float64       `json:"cutoff_ratio" yaml:"cutoff_ratio"`                   // Fraction of the top composite score to keep
	Parallelism        int           `json:"parallelism" yaml:"parallelism"`                     // Concurrent token passes, 1 disables concurrency
}

// DefaultSearchSettings returns settings with every default applied.
func DefaultSearchSettings() SearchSettings {
	var s SearchSettings
	s.ApplyDefaults()
	return s
}

// ApplyDefaults applies default values to unset search settings.
func (s *SearchSettings) ApplyDefaults() {
	if len(s.FieldWeights) == 0 {
		s.FieldWeights = DefaultFieldWeights()
	}
	if s.Threshold == 0 {
		s.Threshold = DefaultThreshold
	}
	if s.Distance == 0 {
		s.Distance = DefaultDistance
	}
	if s.IgnoreLocation == nil {
		ignore := true
		s.IgnoreLocation = &ignore
	}
	if s.MinTokenLength == 0 {
		s.MinTokenLength = DefaultMinTokenLength
	}
	if s.MinMatchCharLength == 0 {
		s.MinMatchCharLength = DefaultMinMatchCharLength
	}
	if s.QualityGate == 0 {
		s.QualityGate = DefaultQualityGate
	}
	if s.CutoffRatio == 0 {
		s.CutoffRatio = DefaultCutoffRatio
	}
	if s.Parallelism == 0 {
		s.Parallelism = 4
	}
}

// IgnoresLocation reports whether whole fields are searched.
func (s *SearchSettings) IgnoresLocation() bool {
	return s.IgnoreLocation == nil || *s.IgnoreLocation
}

// Validate checks the settings and returns every problem found.
func (s *SearchSettings) Validate() []string {
	var problems []string

	if len(s.FieldWeights) == 0 {
		problems = append(problems, "field_weights must contain at least one field")
	}
	seen := make(map[string]bool, len(s.FieldWeights))
	for _, fw := range s.FieldWeights {
		switch {
		case strings.TrimSpace(fw.Field) == "":
			problems = append(problems, "Field name cannot be empty or whitespace-only")
			continue
		case !model.IsTextField(fw.Field):
			problems = append(problems, "Field '"+fw.Field+"' in field_weights is not a searchable record field")
		case seen[fw.Field]:
			problems = append(problems, "Duplicate field '"+fw.Field+"' found in field_weights")
		}
		seen[fw.Field] = true
		if fw.Weight <= 0 {
			problems = append(problems, fmt.Sprintf("Field '%s' must have a positive weight, got %v", fw.Field, fw.Weight))
		}
	}

	if s.Threshold < 0 || s.Threshold > 1 {
		problems = append(problems, fmt.Sprintf("threshold must be within [0,1], got %v", s.Threshold))
	}
	if s.Distance <= 0 {
		problems = append(problems, fmt.Sprintf("distance must be positive, got %d", s.Distance))
	}
	if s.MinTokenLength < 1 {
		problems = append(problems, fmt.Sprintf("min_token_length must be at least 1, got %d", s.MinTokenLength))
	}
	if s.MinMatchCharLength < 1 {
		problems = append(problems, fmt.Sprintf("min_match_char_length must be at least 1, got %d", s.MinMatchCharLength))
	}
	if s.QualityGate <= 0 || s.QualityGate > 1 {
		problems = append(problems, fmt.Sprintf("quality_gate must be within (0,1], got %v", s.QualityGate))
	}
	if s.CutoffRatio < 0 || s.CutoffRatio > 1 {
		problems = append(problems, fmt.Sprintf("cutoff_ratio must be within [0,1], got %v", s.CutoffRatio))
	}
	if s.Parallelism < 1 {
		problems = append(problems, fmt.Sprintf("parallelism must be at least 1, got %d", s.Parallelism))
	}

	return problems
}
