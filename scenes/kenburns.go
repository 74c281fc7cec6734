package scenes

import (
	"narrative-video-automator/random"
	"narrative-video-automator/types"
)

// Rand is the randomness the animator draws from
type Rand = random.Source

// Animator produces slow zoom and pan settings for a scene
type Animator struct {
	rand Rand
}

// NewAnimator creates an Animator. A nil src uses the process-wide source.
func NewAnimator(src Rand) *Animator {
	return &Animator{rand: random.OrGlobal(src)}
}

// Generate returns a random Ken Burns config spanning the whole duration.
// Scale lands in [1.05, 1.15], translation in [-5, 5] percent and the
// origin in the central half of the frame.
func (a *Animator) Generate(duration float64) types.KenBurnsConfig {
	r := a.rand
	return types.KenBurnsConfig{
		TargetScale:        1.05 + r.Float64()*0.1,
		TargetXPercent:     (r.Float64() - 0.5) * 10,
		TargetYPercent:     (r.Float64() - 0.5) * 10,
		OriginXRatio:       float64(r.Intn(51)+25) / 100,
		OriginYRatio:       float64(r.Intn(51)+25) / 100,
		AnimationDurationS: duration,
	}
}
