// Package imagegen turns an image prompt into an inline base64 image.
//
// Generators never return errors: a failed request comes back as a Result
// with no image and a message fit to show the user, and the caller falls
// back to stock or placeholder visuals.
package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"narrative-video-automator/config"
)

// Result is the outcome of one generation request
type Result struct {
	Base64Image       string // data:<mime>;base64,<payload>
	UserFriendlyError string
}

// OK reports whether the result carries image data
func (r Result) OK() bool { return r.Base64Image != "" }

// Generator produces a single image for a scene prompt
type Generator interface {
	Generate(ctx context.Context, prompt, sceneID string) Result
	Name() string
}

// New picks the backend named in the config
func New(cfg config.ImageGenerationConfig, logger *zap.Logger) Generator {
	switch strings.ToLower(cfg.Provider) {
	case config.ProviderPollinations:
		return NewPollinations(cfg, logger)
	default:
		return NewHuggingFace(cfg, logger)
	}
}

// minImageBytes rejects error pages served with a 200
const minImageBytes = 100

// encodeDataURL validates an image payload and wraps it as a data URL
func encodeDataURL(data []byte, contentType string) (string, error) {
	if len(data) < minImageBytes {
		return "", fmt.Errorf("response too small (%d bytes)", len(data))
	}
	mime := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("unexpected content type %q", mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func failure(msg string) Result {
	return Result{UserFriendlyError: msg}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
