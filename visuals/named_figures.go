package visuals

import (
	"context"
	"strings"

	"narrative-video-automator/config"
	"narrative-video-automator/types"
)

const (
	TierNamedFigure = "named_figure"
	TierStockSearch = "stock_search"
	TierPlaceholder = "placeholder"
)

// Public domain or Creative Commons portraits used instead of a stock search
// when a scene's keywords mention the figure. Order decides ties.
var builtinNamedFigures = []config.NamedFigure{
	{Name: "elon musk", URL: "https://upload.wikimedia.org/wikipedia/commons/3/34/Elon_Musk_Royal_Society_%28crop2%29.jpg"},
	{Name: "jeff bezos", URL: "https://upload.wikimedia.org/wikipedia/commons/0/0b/Jeff_Bezos_2016.jpg"},
	{Name: "bernard arnault", URL: "https://upload.wikimedia.org/wikipedia/commons/6/6d/Bernard_Arnault_2017.jpg"},
}

// NamedFigureLookup maps known public figures to curated image URLs
type NamedFigureLookup struct {
	figures []config.NamedFigure
}

// NewNamedFigureLookup returns the built-in figures followed by extra
func NewNamedFigureLookup(extra []config.NamedFigure) *NamedFigureLookup {
	figures := make([]config.NamedFigure, 0, len(builtinNamedFigures)+len(extra))
	figures = append(figures, builtinNamedFigures...)
	for _, f := range extra {
		name := strings.ToLower(strings.TrimSpace(f.Name))
		if name == "" || f.URL == "" {
			continue
		}
		figures = append(figures, config.NamedFigure{Name: name, URL: f.URL})
	}
	return &NamedFigureLookup{figures: figures}
}

func (n *NamedFigureLookup) Name() string { return TierNamedFigure }

// Resolve only applies to image requests
func (n *NamedFigureLookup) Resolve(_ context.Context, req Request) (string, bool) {
	if req.MediaType.OrDefault() != types.MediaImage {
		return "", false
	}

	lower := make([]string, len(req.Keywords))
	for i, k := range req.Keywords {
		lower[i] = strings.ToLower(k)
	}

	for _, f := range n.figures {
		for _, k := range lower {
			if strings.Contains(k, f.Name) {
				return f.URL, true
			}
		}
	}
	return "", false
}
