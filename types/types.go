package types

import (
	"strconv"
	"strings"
)

// SceneAnalysisItem is one scene as produced by the narration analyzer
type SceneAnalysisItem struct {
	SceneText   string   `json:"sceneText"`
	Keywords    []string `json:"keywords"`
	ImagePrompt string   `json:"imagePrompt"`
	Duration    float64  `json:"duration"` // seconds, <= 0 means unknown
}

// KenBurnsConfig describes the slow zoom and pan applied to a still visual
type KenBurnsConfig struct {
	TargetScale        float64 `json:"targetScale"`
	TargetXPercent     float64 `json:"targetXPercent"`
	TargetYPercent     float64 `json:"targetYPercent"`
	OriginXRatio       float64 `json:"originXRatio"`
	OriginYRatio       float64 `json:"originYRatio"`
	AnimationDurationS float64 `json:"animationDurationS"`
}

// Scene is one narrated segment ready for video assembly
type Scene struct {
	ID             string         `json:"id"`
	SceneText      string         `json:"sceneText"`
	Keywords       []string       `json:"keywords"`
	ImagePrompt    string         `json:"imagePrompt"`
	Duration       float64        `json:"duration"`   // seconds, always within [3,20]
	FootageURL     string         `json:"footageUrl"` // remote URL or data:image/...;base64 payload
	KenBurnsConfig KenBurnsConfig `json:"kenBurnsConfig"`
}

// AspectRatio is a "W:H" frame ratio such as "16:9" or "9:16"
type AspectRatio string

const (
	AspectWidescreen AspectRatio = "16:9"
	AspectVertical   AspectRatio = "9:16"

	DefaultAspectRatio = AspectWidescreen
)

// IsWidescreen reports whether the frame is wider than it is tall.
// Unparseable ratios are treated as not widescreen.
func (a AspectRatio) IsWidescreen() bool {
	w, h, ok := a.dimensions()
	return ok && w > h
}

// Orientation returns the stock search orientation hint for the ratio
func (a AspectRatio) Orientation() string {
	if a.IsWidescreen() {
		return "landscape"
	}
	return "portrait"
}

func (a AspectRatio) dimensions() (float64, float64, bool) {
	parts := strings.SplitN(strings.TrimSpace(string(a)), ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}
	return w, h, true
}

// MediaType selects which kind of stock asset is searched for
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// OrDefault maps the zero value to MediaImage
func (m MediaType) OrDefault() MediaType {
	if m == "" {
		return MediaImage
	}
	return m
}

// RunState holds bookkeeping for one CLI invocation
type RunState struct {
	RunID       string   `json:"run_id"`
	Mode        string   `json:"mode"` // batch | targeted
	StartedAt   string   `json:"started_at"`
	CompletedAt string   `json:"completed_at"`
	SceneCount  int      `json:"scene_count"`
	ScenesFile  string   `json:"scenes_file,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
	Error       string   `json:"error,omitempty"`
}
