package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HUGGINGFACE_API_KEY", "")
	t.Setenv("PEXELS_API_KEY", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Pipeline, cfg.Pipeline)
	assert.Equal(t, ProviderHuggingFace, cfg.ImageGeneration.Provider)
	assert.Equal(t, "https://api.pexels.com", cfg.StockSearch.BaseURL)
	assert.NotEmpty(t, cfg.StockSearch.PlaceholderURL)
	assert.Empty(t, cfg.StockSearch.APIKey)
	assert.Empty(t, cfg.ImageGeneration.APIKey)
}

func TestLoadYAMLAndEnv(t *testing.T) {
	t.Setenv("HUGGINGFACE_API_KEY", "hf-test")
	t.Setenv("PEXELS_API_KEY", "px-test")
	t.Setenv("LOG_LEVEL", "debug")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
pipeline:
  default_aspect_ratio: "9:16"
  use_ai_images: true
image_generation:
  provider: pollinations
  timeout: 30s
stock_search:
  requests_per_minute: 10
named_figures:
  - name: ada lovelace
    url: https://example.com/ada.jpg
log:
  level: warn
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9:16", cfg.Pipeline.DefaultAspectRatio)
	assert.True(t, cfg.Pipeline.UseAIImages)
	assert.Equal(t, "image", cfg.Pipeline.MediaType)
	assert.Equal(t, ProviderPollinations, cfg.ImageGeneration.Provider)
	assert.Equal(t, 30*time.Second, cfg.ImageGeneration.Timeout)
	assert.Equal(t, 10, cfg.StockSearch.RequestsPerMinute)
	assert.Equal(t, 15*time.Second, cfg.StockSearch.Timeout)
	require.Len(t, cfg.NamedFigures, 1)
	assert.Equal(t, "ada lovelace", cfg.NamedFigures[0].Name)

	assert.Equal(t, "hf-test", cfg.ImageGeneration.APIKey)
	assert.Equal(t, "px-test", cfg.StockSearch.APIKey)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pipeline: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
