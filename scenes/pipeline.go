// Package scenes turns narration analysis into timed, animated scenes with
// resolved visuals.
package scenes

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"narrative-video-automator/imagegen"
	"narrative-video-automator/metrics"
	"narrative-video-automator/types"
)

// DefaultAIWarning is reported when the generator fails without a message
const DefaultAIWarning = "AI image generation failed. Using placeholder."

// VisualResolver returns a non-empty asset reference for a scene
type VisualResolver interface {
	Resolve(ctx context.Context, keywords []string, aspectRatio types.AspectRatio, sceneID string, mediaType types.MediaType) string
}

// Options controls one Process call
type Options struct {
	UseAIGeneratedImages bool
	// GenerateSpecificImageForSceneID switches Process to targeted mode
	GenerateSpecificImageForSceneID string
	MediaType                       types.MediaType
}

// Pipeline builds and patches scene collections. A Pipeline is not safe
// for concurrent Process calls.
type Pipeline struct {
	generator imagegen.Generator
	resolver  VisualResolver
	animator  *Animator
	metrics   *metrics.Collector
	logger    *zap.Logger
	now       func() time.Time

	lastWarnings []string
}

// NewPipeline wires the pipeline collaborators. generator may be nil when AI
// images are never requested.
func NewPipeline(generator imagegen.Generator, resolver VisualResolver, animator *Animator, collector *metrics.Collector, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if animator == nil {
		animator = NewAnimator(nil)
	}
	return &Pipeline{
		generator: generator,
		resolver:  resolver,
		animator:  animator,
		metrics:   collector,
		logger:    logger.With(zap.String("component", "scenes")),
		now:       time.Now,
	}
}

// LastWarnings returns the user-facing warnings of the most recent Process call
func (p *Pipeline) LastWarnings() []string {
	return append([]string(nil), p.lastWarnings...)
}

// Process runs the pipeline over items.
//
// In batch mode every item becomes a new scene appended to a copy of
// existing. In targeted mode only the scene with the requested id is
// reprocessed and patched in place; existing itself is returned and its
// other scenes are left untouched.
func (p *Pipeline) Process(
	ctx context.Context,
	items []types.SceneAnalysisItem,
	aspectRatio types.AspectRatio,
	opts Options,
	onProgress ProgressFunc,
	existing []*types.Scene,
) []*types.Scene {
	p.lastWarnings = nil
	if aspectRatio == "" {
		aspectRatio = types.DefaultAspectRatio
	}

	if opts.GenerateSpecificImageForSceneID != "" {
		return p.processTargeted(ctx, items, aspectRatio, opts, onProgress, existing)
	}

	repo := NewRepository(append([]*types.Scene(nil), existing...))
	for i, item := range items {
		sceneID := fmt.Sprintf("scene-%d-%d", i, p.now().UnixMilli())
		v := p.processItem(ctx, item, i, len(items), sceneID, aspectRatio, opts, onProgress)
		repo.AppendNew(&types.Scene{
			ID:             sceneID,
			SceneText:      item.SceneText,
			Keywords:       item.Keywords,
			ImagePrompt:    item.ImagePrompt,
			Duration:       v.duration,
			FootageURL:     v.footageURL,
			KenBurnsConfig: v.kenBurns,
		})
		p.metrics.RecordSceneProcessed("batch")
	}

	p.finish(onProgress, len(items))
	p.logger.Info("scene batch processed", zap.Int("scenes", len(items)), zap.Int("warnings", len(p.lastWarnings)))
	return repo.Scenes()
}

func (p *Pipeline) processTargeted(
	ctx context.Context,
	items []types.SceneAnalysisItem,
	aspectRatio types.AspectRatio,
	opts Options,
	onProgress ProgressFunc,
	existing []*types.Scene,
) []*types.Scene {
	targetID := opts.GenerateSpecificImageForSceneID
	if existing == nil {
		p.logger.Warn("targeted update without existing scenes", zap.String("scene_id", targetID))
		return nil
	}

	repo := NewRepository(existing)
	target, ok := repo.FindByID(targetID)
	if !ok {
		p.logger.Warn("scene to update not found", zap.String("scene_id", targetID))
		return existing
	}

	item, matched := matchItem(items, target)
	if !matched {
		// Text was edited since analysis; rebuild the item from the scene itself.
		p.logger.Warn("no analysis item matches scene text, reusing scene data", zap.String("scene_id", targetID))
	}

	v := p.processItem(ctx, item, 0, 1, targetID, aspectRatio, opts, onProgress)
	repo.PatchExisting(targetID, func(s *types.Scene) {
		s.FootageURL = v.footageURL
		s.KenBurnsConfig = v.kenBurns
		s.ImagePrompt = item.ImagePrompt
		s.Keywords = item.Keywords
		if item.Duration != 0 {
			s.Duration = v.duration
		}
	})
	p.metrics.RecordSceneProcessed("targeted")

	p.finish(onProgress, len(items))
	p.logger.Info("scene updated", zap.String("scene_id", targetID), zap.Bool("matched_analysis", matched))
	return existing
}

// matchItem finds the analysis item whose text equals the scene's text, or
// synthesizes one from the scene.
func matchItem(items []types.SceneAnalysisItem, target *types.Scene) (types.SceneAnalysisItem, bool) {
	for _, item := range items {
		if item.SceneText == target.SceneText {
			return item, true
		}
	}
	return types.SceneAnalysisItem{
		SceneText:   target.SceneText,
		Keywords:    target.Keywords,
		ImagePrompt: target.ImagePrompt,
		Duration:    target.Duration,
	}, false
}

type visual struct {
	duration   float64
	footageURL string
	kenBurns   types.KenBurnsConfig
}

func (p *Pipeline) processItem(
	ctx context.Context,
	item types.SceneAnalysisItem,
	index, total int,
	sceneID string,
	aspectRatio types.AspectRatio,
	opts Options,
	onProgress ProgressFunc,
) visual {
	duration := sceneDuration(item.Duration, item.SceneText)
	value := float64(index+1) / float64(total)

	var footageURL string
	if opts.UseAIGeneratedImages && item.ImagePrompt != "" && p.generator != nil {
		onProgress.emit(ProgressEvent{
			Message: fmt.Sprintf("Generating AI image for scene %d/%d...", index+1, total),
			Value:   value,
			Stage:   StageAIImage,
			Current: index + 1,
			Total:   total,
		})
		res := p.generator.Generate(ctx, item.ImagePrompt, sceneID)
		if res.OK() {
			footageURL = res.Base64Image
			p.metrics.RecordAIImage("success")
		} else {
			warning := res.UserFriendlyError
			if warning == "" {
				warning = DefaultAIWarning
			}
			p.metrics.RecordAIImage("fallback")
			p.lastWarnings = append(p.lastWarnings, warning)
			p.logger.Warn("AI image unavailable, falling back",
				zap.String("scene_id", sceneID),
				zap.String("warning", warning),
			)
			onProgress.emit(ProgressEvent{
				Message:      warning,
				Value:        value,
				Stage:        StageAIImage,
				Current:      index + 1,
				Total:        total,
				ErrorMessage: warning,
			})
			footageURL = p.resolver.Resolve(ctx, item.Keywords, aspectRatio, sceneID, opts.MediaType)
		}
	} else {
		onProgress.emit(ProgressEvent{
			Message: fmt.Sprintf("Fetching placeholder image for scene %d/%d...", index+1, total),
			Value:   value,
			Stage:   StagePlaceholderImage,
			Current: index + 1,
			Total:   total,
		})
		footageURL = p.resolver.Resolve(ctx, item.Keywords, aspectRatio, sceneID, opts.MediaType)
	}

	return visual{
		duration:   duration,
		footageURL: footageURL,
		kenBurns:   p.animator.Generate(duration),
	}
}

func (p *Pipeline) finish(onProgress ProgressFunc, total int) {
	onProgress.emit(ProgressEvent{
		Message: "All scene visuals processed.",
		Value:   1,
		Stage:   StageFinalizing,
		Current: total,
		Total:   total,
	})
}
