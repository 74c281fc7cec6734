package scenes

// Progress stages
const (
	StageAIImage          = "ai_image"
	StagePlaceholderImage = "placeholder_image"
	StageFinalizing       = "finalizing"
)

// ProgressEvent is reported before each slow step of a run
type ProgressEvent struct {
	Message      string
	Value        float64 // fraction of the run done, 0..1
	Stage        string
	Current      int
	Total        int
	ErrorMessage string
}

// ProgressFunc receives events synchronously, in order
type ProgressFunc func(ProgressEvent)

func (f ProgressFunc) emit(ev ProgressEvent) {
	if f != nil {
		f(ev)
	}
}
