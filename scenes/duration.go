package scenes

import (
	"math"
	"strings"
)

const (
	// AverageWordsPerSecond is the narration pace used to size a scene
	AverageWordsPerSecond = 3
	// DefaultDuration is used for scenes with no narration text
	DefaultDuration = 4.0

	MinDuration = 3.0
	MaxDuration = 20.0
)

// EstimateDuration returns how many whole seconds it takes to narrate text
func EstimateDuration(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return DefaultDuration
	}
	words := len(strings.Fields(text))
	return math.Ceil(float64(words) / AverageWordsPerSecond)
}

// ClampDuration keeps d inside [MinDuration, MaxDuration]. NaN clamps to the minimum.
func ClampDuration(d float64) float64 {
	if math.IsNaN(d) || d < MinDuration {
		return MinDuration
	}
	if d > MaxDuration {
		return MaxDuration
	}
	return d
}

// sceneDuration picks the hint when it is positive, otherwise estimates from text
func sceneDuration(hint float64, text string) float64 {
	d := hint
	if !(d > 0) {
		d = EstimateDuration(text)
	}
	return ClampDuration(d)
}
