package imagegen

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"narrative-video-automator/config"
)

const defaultPollinationsBaseURL = "https://image.pollinations.ai"

// Pollinations generates AI images via Pollinations.ai (free, no key needed)
type Pollinations struct {
	baseURL    string
	model      string
	width      int
	height     int
	httpClient *http.Client
	now        func() time.Time
	logger     *zap.Logger
}

// NewPollinations creates a new keyless backend
func NewPollinations(cfg config.ImageGenerationConfig, logger *zap.Logger) *Pollinations {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultPollinationsBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "flux"
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 720
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Pollinations{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		width:      cfg.Width,
		height:     cfg.Height,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
		logger:     logger.With(zap.String("component", "imagegen"), zap.String("provider", "pollinations")),
	}
}

func (p *Pollinations) Name() string { return "pollinations" }

// Generate fetches one image for the prompt. The seed changes per call so a
// regenerated scene gets a new picture.
func (p *Pollinations) Generate(ctx context.Context, prompt, sceneID string) Result {
	if strings.TrimSpace(prompt) == "" {
		return failure("No image prompt was provided for this scene. Using a stock image instead.")
	}

	// Format: {base}/prompt/{encoded_prompt}?params
	imageURL := fmt.Sprintf(
		"%s/prompt/%s?width=%d&height=%d&nologo=true&model=%s&seed=%d",
		p.baseURL,
		url.PathEscape(prompt),
		p.width, p.height,
		url.QueryEscape(p.model),
		p.now().UnixNano()%1_000_000,
	)

	p.logger.Info("generating AI image",
		zap.String("scene_id", sceneID),
		zap.String("prompt", truncate(prompt, 60)),
	)

	data, contentType, err := p.download(ctx, imageURL)
	if err != nil {
		p.logger.Warn("AI image request failed", zap.String("scene_id", sceneID), zap.Error(err))
		return failure("Could not generate an AI image for this scene. Using a stock image instead.")
	}

	dataURL, err := encodeDataURL(data, contentType)
	if err != nil {
		p.logger.Warn("AI image payload invalid", zap.String("scene_id", sceneID), zap.Error(err))
		return failure("The AI image service returned an invalid image. Using a stock image instead.")
	}

	p.logger.Info("AI image ready", zap.String("scene_id", sceneID), zap.Int("bytes", len(data)))
	return Result{Base64Image: dataURL}
}

func (p *Pollinations) download(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; NarrativeVideoAutomator/1.0)")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("HTTP %d from Pollinations", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 20*1024*1024))
	if err != nil {
		return nil, "", err
	}
	return data, resp.Header.Get("Content-Type"), nil
}
