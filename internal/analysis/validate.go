package analysis

import (
	"fmt"
	"math"
	"strings"
)

// Validate checks value ranges and normalizes priorities in place.
func (r *Result) Validate() error {
	if r.Score < 0 || r.Score > 100 {
		return fmt.Errorf("%w: score %d out of range", ErrMalformedPayload, r.Score)
	}
	m := r.Metrics
	if m.WordCount < 0 || m.ActionVerbCount < 0 || m.WeakPhraseCount < 0 {
		return fmt.Errorf("%w: negative metric count", ErrMalformedPayload)
	}
	for i := range r.Recommendations {
		p, err := ParsePriority(string(r.Recommendations[i].Priority))
		if err != nil {
			return err
		}
		r.Recommendations[i].Priority = p
	}
	for _, fs := range r.FactorScores {
		if math.IsNaN(fs.Score) || fs.Score < 0 || fs.Score > 1 {
			return fmt.Errorf("%w: factor %q score %v outside [0,1]", ErrMalformedPayload, fs.Name, fs.Score)
		}
	}
	return nil
}

// ParsePriority normalizes a priority string. Empty means medium.
func ParsePriority(raw string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low":
		return PriorityLow, nil
	case "", "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("%w: unknown priority %q", ErrMalformedPayload, raw)
	}
}
