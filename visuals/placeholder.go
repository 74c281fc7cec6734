package visuals

import "context"

// DefaultPlaceholderURL is served when nothing better is available
const DefaultPlaceholderURL = "https://images.pexels.com/photos/248616/pexels-photo-248616.jpeg"

// GenericPlaceholder always succeeds with a fixed image
type GenericPlaceholder struct {
	url string
}

// NewGenericPlaceholder falls back to DefaultPlaceholderURL when url is empty
func NewGenericPlaceholder(url string) *GenericPlaceholder {
	if url == "" {
		url = DefaultPlaceholderURL
	}
	return &GenericPlaceholder{url: url}
}

func (g *GenericPlaceholder) Name() string { return TierPlaceholder }

func (g *GenericPlaceholder) Resolve(context.Context, Request) (string, bool) {
	return g.url, true
}
