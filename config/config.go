package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Pipeline        PipelineConfig        `yaml:"pipeline"`
	ImageGeneration ImageGenerationConfig `yaml:"image_generation"`
	StockSearch     StockSearchConfig     `yaml:"stock_search"`
	NamedFigures    []NamedFigure         `yaml:"named_figures"`
	Log             LogConfig             `yaml:"log"`
	Paths           PathsConfig           `yaml:"paths"`
}

type PipelineConfig struct {
	DefaultAspectRatio string `yaml:"default_aspect_ratio"`
	UseAIImages        bool   `yaml:"use_ai_images"`
	MediaType          string `yaml:"media_type"` // image | video
}

type ImageGenerationConfig struct {
	Provider string        `yaml:"provider"` // huggingface | pollinations
	Model    string        `yaml:"model"`    // provider default when empty
	BaseURL  string        `yaml:"base_url"` // provider default when empty
	Timeout  time.Duration `yaml:"timeout"`
	Width    int           `yaml:"width"`
	Height   int           `yaml:"height"`
	APIKey   string        `yaml:"-"`
}

type StockSearchConfig struct {
	BaseURL           string        `yaml:"base_url"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
	PlaceholderURL    string        `yaml:"placeholder_url"`
	APIKey            string        `yaml:"-"`
}

// NamedFigure maps a public figure's name to a curated image
type NamedFigure struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // console | json
}

type PathsConfig struct {
	Output string `yaml:"output"`
}

const (
	ProviderHuggingFace  = "huggingface"
	ProviderPollinations = "pollinations"
)

// Default returns the configuration used when no config file is present
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			DefaultAspectRatio: "16:9",
			MediaType:          "image",
		},
		ImageGeneration: ImageGenerationConfig{
			Provider: ProviderHuggingFace,
			Timeout:  60 * time.Second,
			Width:    1280,
			Height:   720,
		},
		StockSearch: StockSearchConfig{
			BaseURL:           "https://api.pexels.com",
			Timeout:           15 * time.Second,
			RequestsPerMinute: 60,
			PlaceholderURL:    "https://images.pexels.com/photos/248616/pexels-photo-248616.jpeg",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Paths: PathsConfig{
			Output: "output",
		},
	}
}

// Load reads the YAML config at path on top of the defaults and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	cfg.fillZeroValues()
	return cfg, nil
}

// ApplyEnv copies API keys and the log level from the environment
func (c *Config) ApplyEnv() {
	if v := os.Getenv("HUGGINGFACE_API_KEY"); v != "" {
		c.ImageGeneration.APIKey = v
	}
	if v := os.Getenv("PEXELS_API_KEY"); v != "" {
		c.StockSearch.APIKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// fillZeroValues restores defaults for fields a partial YAML file blanked out
func (c *Config) fillZeroValues() {
	def := Default()
	if c.Pipeline.DefaultAspectRatio == "" {
		c.Pipeline.DefaultAspectRatio = def.Pipeline.DefaultAspectRatio
	}
	if c.Pipeline.MediaType == "" {
		c.Pipeline.MediaType = def.Pipeline.MediaType
	}
	if c.ImageGeneration.Provider == "" {
		c.ImageGeneration.Provider = def.ImageGeneration.Provider
	}
	if c.ImageGeneration.Timeout <= 0 {
		c.ImageGeneration.Timeout = def.ImageGeneration.Timeout
	}
	if c.ImageGeneration.Width <= 0 || c.ImageGeneration.Height <= 0 {
		c.ImageGeneration.Width = def.ImageGeneration.Width
		c.ImageGeneration.Height = def.ImageGeneration.Height
	}
	if c.StockSearch.BaseURL == "" {
		c.StockSearch.BaseURL = def.StockSearch.BaseURL
	}
	if c.StockSearch.Timeout <= 0 {
		c.StockSearch.Timeout = def.StockSearch.Timeout
	}
	if c.StockSearch.PlaceholderURL == "" {
		c.StockSearch.PlaceholderURL = def.StockSearch.PlaceholderURL
	}
	if c.Paths.Output == "" {
		c.Paths.Output = def.Paths.Output
	}
}
