// Package fuzzy implements weighted multi-key approximate substring matching.
//
// Every key of an entry is searched for the pattern with an edit-distance
// tolerant substring match. A key matches when the fraction of edits needed,
// relative to the pattern length, stays within the configured threshold.
// Per-key scores are then adjusted by key weight and field length so that a
// match in a heavier or shorter field scores lower (better).
//
// Inputs are expected to be normalized already (see tokenizer.Normalize).
package fuzzy

import "fmt"

// Default option values.
const (
	DefaultThreshold          = 0.3
	DefaultDistance           = 100
	DefaultMinMatchCharLength = 2
)

// Options tunes the matcher.
type Options struct {
	// Threshold is the largest tolerated score for a key match, in [0,1].
	// 0 requires an exact substring, 1 matches anything.
	Threshold float64
	// Distance bounds how far from the start of a field a match may begin
	// when IgnoreLocation is false. It also scales the proximity penalty.
	Distance int
	// IgnoreLocation searches the whole field with no proximity penalty.
	IgnoreLocation bool
	// MinMatchCharLength is the shortest matched span accepted.
	MinMatchCharLength int
}

// DefaultOptions returns the options used for voter search.
func DefaultOptions() Options {
	return Options{
		Threshold:          DefaultThreshold,
		Distance:           DefaultDistance,
		IgnoreLocation:     true,
		MinMatchCharLength: DefaultMinMatchCharLength,
	}
}

func (o Options) validate() error {
	if o.Threshold < 0 || o.Threshold > 1 {
		return fmt.Errorf("threshold must be within [0,1], got %v", o.Threshold)
	}
	if o.Distance <= 0 {
		return fmt.Errorf("distance must be positive, got %d", o.Distance)
	}
	if o.MinMatchCharLength < 1 {
		return fmt.Errorf("min match char length must be at least 1, got %d", o.MinMatchCharLength)
	}
	return nil
}
