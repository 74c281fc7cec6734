package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"narrative-video-automator/config"
)

const (
	defaultHuggingFaceBaseURL = "https://api-inference.huggingface.co"
	defaultFluxModel          = "black-forest-labs/FLUX.1-schnell"
)

// HuggingFace generates images with a FLUX model on the Hugging Face
// Inference API. The response body is the raw image.
type HuggingFace struct {
	apiKey     string
	baseURL    string
	model      string
	width      int
	height     int
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHuggingFace creates the Hugging Face backend
func NewHuggingFace(cfg config.ImageGenerationConfig, logger *zap.Logger) *HuggingFace {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultHuggingFaceBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultFluxModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &HuggingFace{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		width:      cfg.Width,
		height:     cfg.Height,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(zap.String("component", "imagegen"), zap.String("provider", "huggingface")),
	}
}

func (h *HuggingFace) Name() string { return "huggingface" }

type hfParameters struct {
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

// Generate requests one image for the prompt
func (h *HuggingFace) Generate(ctx context.Context, prompt, sceneID string) Result {
	if h.apiKey == "" {
		return failure("AI image generation is not configured (HUGGINGFACE_API_KEY is missing). Using a stock image instead.")
	}
	if strings.TrimSpace(prompt) == "" {
		return failure("No image prompt was provided for this scene. Using a stock image instead.")
	}

	h.logger.Info("generating AI image",
		zap.String("scene_id", sceneID),
		zap.String("prompt", truncate(prompt, 60)),
	)

	payload, err := json.Marshal(hfRequest{
		Inputs:     prompt,
		Parameters: hfParameters{Width: h.width, Height: h.height},
	})
	if err != nil {
		return failure("AI image request could not be built. Using a stock image instead.")
	}

	endpoint := fmt.Sprintf("%s/models/%s", h.baseURL, h.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return failure("AI image request could not be built. Using a stock image instead.")
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/png")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.logger.Warn("AI image request failed", zap.String("scene_id", sceneID), zap.Error(err))
		return failure("Could not reach the AI image service. Using a stock image instead.")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		h.logger.Warn("AI image request rejected",
			zap.String("scene_id", sceneID),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return failure(statusMessage(resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 20*1024*1024))
	if err != nil {
		h.logger.Warn("AI image download failed", zap.String("scene_id", sceneID), zap.Error(err))
		return failure("The AI image could not be downloaded. Using a stock image instead.")
	}

	dataURL, err := encodeDataURL(data, resp.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Warn("AI image payload invalid", zap.String("scene_id", sceneID), zap.Error(err))
		return failure("The AI image service returned an invalid image. Using a stock image instead.")
	}

	h.logger.Info("AI image ready", zap.String("scene_id", sceneID), zap.Int("bytes", len(data)))
	return Result{Base64Image: dataURL}
}

func statusMessage(status int) string {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "The AI image service rejected the API key. Check HUGGINGFACE_API_KEY. Using a stock image instead."
	case http.StatusTooManyRequests:
		return "AI image rate limit reached. Using a stock image instead."
	case http.StatusServiceUnavailable:
		return "The AI image model is still loading. Try again in a minute. Using a stock image instead."
	default:
		return fmt.Sprintf("AI image generation failed (HTTP %d). Using a stock image instead.", status)
	}
}
