package visuals

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"narrative-video-automator/config"
	"narrative-video-automator/metrics"
	"narrative-video-automator/random"
	"narrative-video-automator/types"
)

// FallbackKeywords seed the search when a scene has no keywords
var FallbackKeywords = []string{
	"abstract", "cityscape", "nature", "technology", "office", "landscape", "motion graphics",
}

// StockSearch finds a stock photo or video on Pexels.
// API docs: https://www.pexels.com/api/documentation/
type StockSearch struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	rand       random.Source
	metrics    *metrics.Collector
	logger     *zap.Logger
}

// NewStockSearch creates the Pexels tier. Without an API key it never
// serves a request.
func NewStockSearch(cfg config.StockSearchConfig, src random.Source, collector *metrics.Collector, logger *zap.Logger) *StockSearch {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.pexels.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}

	return &StockSearch{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
		rand:       random.OrGlobal(src),
		metrics:    collector,
		logger:     logger.With(zap.String("component", "stock_search")),
	}
}

func (s *StockSearch) Name() string { return TierStockSearch }

type pexelsPhotoResponse struct {
	Photos []struct {
		ID  int `json:"id"`
		Src struct {
			Original string `json:"original"`
			Large2x  string `json:"large2x"`
			Large    string `json:"large"`
			Medium   string `json:"medium"`
		} `json:"src"`
	} `json:"photos"`
}

type pexelsVideoResponse struct {
	Videos []struct {
		ID         int `json:"id"`
		VideoFiles []struct {
			Link   string `json:"link"`
			Width  int    `json:"width"`
			Height int    `json:"height"`
		} `json:"video_files"`
	} `json:"videos"`
}

// Resolve runs a single search. Every failure is logged and reported as a miss.
func (s *StockSearch) Resolve(ctx context.Context, req Request) (string, bool) {
	if s.apiKey == "" {
		return "", false
	}

	mediaType := req.MediaType.OrDefault()
	query := BuildQuery(req.Keywords, s.rand)
	endpoint := s.endpoint(mediaType, query, req.AspectRatio.Orientation())

	if err := s.limiter.Wait(ctx); err != nil {
		s.logger.Warn("stock search throttled", zap.String("scene_id", req.SceneID), zap.Error(err))
		return "", false
	}

	start := time.Now()
	link, err := s.search(ctx, endpoint, mediaType)
	s.metrics.ObserveStockSearch(time.Since(start))
	if err != nil {
		s.logger.Warn("stock search failed",
			zap.String("scene_id", req.SceneID),
			zap.String("query", query),
			zap.Error(err),
		)
		return "", false
	}
	if link == "" {
		s.logger.Debug("stock search returned no usable result", zap.String("query", query))
		return "", false
	}
	return link, true
}

func (s *StockSearch) endpoint(mediaType types.MediaType, query, orientation string) string {
	params := url.Values{}
	params.Set("query", query)
	params.Set("orientation", orientation)
	params.Set("per_page", "1")

	path := "/v1/search"
	if mediaType == types.MediaVideo {
		path = "/videos/search"
	}
	return s.baseURL + path + "?" + params.Encode()
}

func (s *StockSearch) search(ctx context.Context, endpoint string, mediaType types.MediaType) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("pexels request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("pexels returned HTTP %d", resp.StatusCode)
	}

	if mediaType == types.MediaVideo {
		var result pexelsVideoResponse
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return "", fmt.Errorf("decode pexels videos: %w", err)
		}
		if len(result.Videos) == 0 {
			return "", nil
		}
		best, bestWidth := "", -1
		for _, f := range result.Videos[0].VideoFiles {
			if f.Width > bestWidth && f.Link != "" {
				best, bestWidth = f.Link, f.Width
			}
		}
		return best, nil
	}

	var result pexelsPhotoResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode pexels photos: %w", err)
	}
	if len(result.Photos) == 0 {
		return "", nil
	}
	src := result.Photos[0].Src
	for _, candidate := range []string{src.Large2x, src.Large, src.Medium} {
		if candidate != "" {
			return candidate, nil
		}
	}
	return "", nil
}

// BuildQuery joins the first three non-blank keywords, or picks a random
// fallback keyword when there are none.
func BuildQuery(keywords []string, src random.Source) string {
	var kept []string
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		kept = append(kept, k)
		if len(kept) == 3 {
			break
		}
	}
	if len(kept) == 0 {
		return FallbackKeywords[random.OrGlobal(src).Intn(len(FallbackKeywords))]
	}
	return strings.Join(kept, " ")
}
