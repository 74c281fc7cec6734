package visuals

import (
	"context"

	"go.uber.org/zap"

	"narrative-video-automator/config"
	"narrative-video-automator/metrics"
	"narrative-video-automator/random"
	"narrative-video-automator/types"
)

// Request is what a strategy needs to pick a visual for one scene
type Request struct {
	Keywords    []string
	AspectRatio types.AspectRatio
	SceneID     string
	MediaType   types.MediaType
}

// Strategy is one tier of the visual fallback chain. A strategy that cannot
// serve a request returns ok=false; it never returns an error.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, req Request) (url string, ok bool)
}

// Resolver walks its strategies in order and returns the first result
type Resolver struct {
	strategies []Strategy
	metrics    *metrics.Collector
	logger     *zap.Logger
}

// NewResolver creates a Resolver over an explicit strategy chain
func NewResolver(logger *zap.Logger, collector *metrics.Collector, strategies ...Strategy) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		strategies: strategies,
		metrics:    collector,
		logger:     logger.With(zap.String("component", "visuals")),
	}
}

// New builds the standard chain: named figures, stock search, placeholder
func New(cfg *config.Config, src random.Source, collector *metrics.Collector, logger *zap.Logger) *Resolver {
	return NewResolver(logger, collector,
		NewNamedFigureLookup(cfg.NamedFigures),
		NewStockSearch(cfg.StockSearch, src, collector, logger),
		NewGenericPlaceholder(cfg.StockSearch.PlaceholderURL),
	)
}

// Resolve returns a usable asset reference for the keywords. It never
// returns an empty string.
func (r *Resolver) Resolve(ctx context.Context, keywords []string, aspectRatio types.AspectRatio, sceneID string, mediaType types.MediaType) string {
	req := Request{
		Keywords:    keywords,
		AspectRatio: aspectRatio,
		SceneID:     sceneID,
		MediaType:   mediaType.OrDefault(),
	}

	for _, s := range r.strategies {
		url, ok := s.Resolve(ctx, req)
		if !ok || url == "" {
			continue
		}
		r.logger.Debug("visual resolved",
			zap.String("scene_id", sceneID),
			zap.String("tier", s.Name()),
			zap.String("url", truncate(url, 80)),
		)
		r.metrics.RecordVisualResolution(s.Name())
		return url
	}

	// Only reachable with a chain that has no placeholder tier.
	r.metrics.RecordVisualResolution(TierPlaceholder)
	return DefaultPlaceholderURL
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
