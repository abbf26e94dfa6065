package fuzzy

import (
	"fmt"
	"math"
	"strings"
)

// Key is a named, weighted field searched by the matcher.
type Key struct {
	Name   string
	Weight float64
}

// Field is the searchable text of one key for one entry.
type Field struct {
	Text  string
	Norm  float64
	runes []rune
}

// NewField prepares normalized text for matching.
func NewField(text string) Field {
	return Field{
		Text:  text,
		Norm:  FieldNorm(text),
		runes: []rune(text),
	}
}

// Empty reports whether the field has no text to search.
func (f Field) Empty() bool {
	return len(f.runes) == 0
}

// Entry is one searchable record. Fields are aligned with the matcher keys.
type Entry struct {
	Fields []Field
}

// FieldNorm shortens the effective weight of long fields: 1/sqrt(words),
// rounded to three decimals. Empty text has a norm of 1.
func FieldNorm(text string) float64 {
	words := len(strings.Fields(text))
	if words == 0 {
		return 1
	}
	return math.Round(1000/math.Sqrt(float64(words))) / 1000
}

// normalizeWeights scales weights so they sum to one.
func normalizeWeights(keys []Key) ([]float64, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("at least one key is required")
	}

	total := 0.0
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if strings.TrimSpace(k.Name) == "" {
			return nil, fmt.Errorf("key name cannot be empty")
		}
		if seen[k.Name] {
			return nil, fmt.Errorf("duplicate key '%s'", k.Name)
		}
		seen[k.Name] = true
		if k.Weight <= 0 || math.IsNaN(k.Weight) || math.IsInf(k.Weight, 0) {
			return nil, fmt.Errorf("key '%s' must have a positive weight, got %v", k.Name, k.Weight)
		}
		total += k.Weight
	}

	weights := make([]float64, len(keys))
	for i, k := range keys {
		weights[i] = k.Weight / total
	}
	return weights, nil
}
