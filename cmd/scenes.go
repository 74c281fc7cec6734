package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"narrative-video-automator/scenes"
	"narrative-video-automator/types"
)

type batchOptions struct {
	analysisFile string
	existingFile string
	metricsFile  string
	aspectRatio  string
	mediaType    string
	aiImages     bool
	aiImagesSet  bool
}

var batchOpts batchOptions

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "Build scenes for every item of a narration analysis",
	Long: `Reads a JSON array of analysis items (sceneText, keywords, imagePrompt,
duration) and writes scenes.json and run_state.json to a new run directory.
With --existing the new scenes are appended after the given ones.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		batchOpts.aiImagesSet = cmd.Flags().Changed("ai-images")
		_, err := runBatch(cmd.Context(), configPath, batchOpts)
		return err
	},
}

func init() {
	f := scenesCmd.Flags()
	f.StringVar(&batchOpts.analysisFile, "analysis", "", "narration analysis JSON file")
	f.StringVar(&batchOpts.existingFile, "existing", "", "scenes JSON file to append to")
	f.StringVar(&batchOpts.metricsFile, "metrics-file", "", "write prometheus metrics to this file")
	f.StringVar(&batchOpts.aspectRatio, "aspect-ratio", "", "frame aspect ratio, e.g. 16:9 or 9:16")
	f.StringVar(&batchOpts.mediaType, "media-type", "", "stock media type: image or video")
	f.BoolVar(&batchOpts.aiImages, "ai-images", false, "generate scene images with the AI image provider")
	_ = scenesCmd.MarkFlagRequired("analysis")
}

func runBatch(ctx context.Context, cfgPath string, opts batchOptions) (*types.RunState, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	r, err := newRun(cfgPath, "batch")
	if err != nil {
		return nil, err
	}

	var items []types.SceneAnalysisItem
	if err := readJSON(opts.analysisFile, &items); err != nil {
		return r.state, r.finish(nil, nil, opts.metricsFile, err)
	}
	var existing []*types.Scene
	if opts.existingFile != "" {
		if err := readJSON(opts.existingFile, &existing); err != nil {
			return r.state, r.finish(nil, nil, opts.metricsFile, err)
		}
	}

	useAI := r.cfg.Pipeline.UseAIImages
	if opts.aiImagesSet {
		useAI = opts.aiImages
	}
	mediaType := types.MediaType(r.cfg.Pipeline.MediaType)
	if opts.mediaType != "" {
		mediaType = types.MediaType(opts.mediaType)
	}

	p := r.pipeline()
	result := p.Process(ctx, items, r.aspectRatio(opts.aspectRatio), scenes.Options{
		UseAIGeneratedImages: useAI,
		MediaType:            mediaType,
	}, r.progress(), existing)

	return r.state, r.finish(result, p.LastWarnings(), opts.metricsFile, nil)
}
