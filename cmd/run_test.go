package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"narrative-video-automator/types"
	"narrative-video-automator/visuals"
)

const analysisJSON = `[
  {"sceneText": "Founded in a garage in 1998.", "keywords": ["garage", "startup"], "imagePrompt": "garage office", "duration": 5},
  {"sceneText": "Elon Musk joined later.", "keywords": ["Elon Musk"], "imagePrompt": "", "duration": 0},
  {"sceneText": "", "keywords": [], "imagePrompt": "", "duration": 99}
]`

type workspace struct {
	dir        string
	configPath string
	output     string
}

func newWorkspace(t *testing.T, stockBaseURL string) workspace {
	t.Helper()
	t.Setenv("HUGGINGFACE_API_KEY", "")
	t.Setenv("PEXELS_API_KEY", "")
	t.Setenv("LOG_LEVEL", "")

	dir := t.TempDir()
	output := filepath.Join(dir, "out")
	cfg := fmt.Sprintf(`
stock_search:
  base_url: %q
  requests_per_minute: 0
log:
  level: error
paths:
  output: %q
`, stockBaseURL, output)
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0644))
	return workspace{dir: dir, configPath: configPath, output: output}
}

func (w workspace) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(w.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func loadScenes(t *testing.T, path string) []*types.Scene {
	t.Helper()
	var out []*types.Scene
	require.NoError(t, readJSON(path, &out))
	return out
}

func TestRunBatchWritesScenesAndState(t *testing.T) {
	w := newWorkspace(t, "http://127.0.0.1:1")
	analysis := w.write(t, "analysis.json", analysisJSON)
	metricsFile := filepath.Join(w.dir, "metrics.prom")

	state, err := runBatch(context.Background(), w.configPath, batchOptions{
		analysisFile: analysis,
		aspectRatio:  "9:16",
		metricsFile:  metricsFile,
	})
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Len(t, state.RunID, 8)
	assert.Equal(t, "batch", state.Mode)
	assert.Equal(t, 3, state.SceneCount)
	assert.Empty(t, state.Error)

	got := loadScenes(t, state.ScenesFile)
	require.Len(t, got, 3)
	assert.Equal(t, visuals.DefaultPlaceholderURL, got[0].FootageURL)
	assert.Contains(t, got[1].FootageURL, "Elon_Musk")
	assert.Equal(t, 20.0, got[2].Duration)

	var saved types.RunState
	require.NoError(t, readJSON(filepath.Join(w.output, state.RunID, "run_state.json"), &saved))
	assert.Equal(t, state.RunID, saved.RunID)
	assert.NotEmpty(t, saved.CompletedAt)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "nva_scenes_processed_total")
}

func TestRunBatchUsesStockSearchWithKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pexels-key", r.Header.Get("Authorization"))
		w.Write([]byte(`{"photos":[{"src":{"large2x":"https://stock.example/garage.jpg"}}]}`))
	}))
	defer srv.Close()

	w := newWorkspace(t, srv.URL)
	t.Setenv("PEXELS_API_KEY", "pexels-key")
	analysis := w.write(t, "analysis.json", analysisJSON)

	state, err := runBatch(context.Background(), w.configPath, batchOptions{analysisFile: analysis})
	require.NoError(t, err)

	got := loadScenes(t, state.ScenesFile)
	require.Len(t, got, 3)
	assert.Equal(t, "https://stock.example/garage.jpg", got[0].FootageURL)
	assert.Contains(t, got[1].FootageURL, "Elon_Musk")
}

func TestRunBatchAppendsExisting(t *testing.T) {
	w := newWorkspace(t, "http://127.0.0.1:1")
	analysis := w.write(t, "analysis.json", analysisJSON)
	existing := w.write(t, "existing.json", `[{"id":"scene-0-1","sceneText":"old","duration":5,"footageUrl":"https://old.example/a.jpg"}]`)

	state, err := runBatch(context.Background(), w.configPath, batchOptions{analysisFile: analysis, existingFile: existing})
	require.NoError(t, err)

	got := loadScenes(t, state.ScenesFile)
	require.Len(t, got, 4)
	assert.Equal(t, "scene-0-1", got[0].ID)
}

func TestRunBatchBadInput(t *testing.T) {
	w := newWorkspace(t, "http://127.0.0.1:1")
	analysis := w.write(t, "analysis.json", `{"not": "a list"`)

	state, err := runBatch(context.Background(), w.configPath, batchOptions{analysisFile: analysis})
	require.Error(t, err)
	require.NotNil(t, state)
	assert.NotEmpty(t, state.Error)
	assert.Empty(t, state.ScenesFile)

	_, err = os.Stat(filepath.Join(w.output, state.RunID, "run_state.json"))
	assert.NoError(t, err)
}

func TestRunRegenerate(t *testing.T) {
	w := newWorkspace(t, "http://127.0.0.1:1")
	analysis := w.write(t, "analysis.json", analysisJSON)
	scenesFile := w.write(t, "scenes.json", `[
  {"id":"scene-0-1","sceneText":"Founded in a garage in 1998.","keywords":["garage"],"duration":5,"footageUrl":"https://old.example/a.jpg"},
  {"id":"scene-1-1","sceneText":"Elon Musk joined later.","keywords":["x"],"duration":5,"footageUrl":"https://old.example/b.jpg"}
]`)

	state, err := runRegenerate(context.Background(), w.configPath, regenerateOptions{
		analysisFile: analysis,
		scenesFile:   scenesFile,
		sceneID:      "scene-1-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "targeted", state.Mode)
	assert.Empty(t, state.Warnings)

	got := loadScenes(t, state.ScenesFile)
	require.Len(t, got, 2)
	assert.Equal(t, "https://old.example/a.jpg", got[0].FootageURL)
	assert.Equal(t, "scene-1-1", got[1].ID)
	assert.Contains(t, got[1].FootageURL, "Elon_Musk")
	assert.Equal(t, []string{"Elon Musk"}, got[1].Keywords)
	assert.Equal(t, 5.0, got[1].Duration)
}

func TestRunRegenerateUnknownID(t *testing.T) {
	w := newWorkspace(t, "http://127.0.0.1:1")
	original := `[{"id":"scene-0-1","sceneText":"a","duration":5,"footageUrl":"https://old.example/a.jpg"}]`
	scenesFile := w.write(t, "scenes.json", original)

	state, err := runRegenerate(context.Background(), w.configPath, regenerateOptions{
		scenesFile: scenesFile,
		sceneID:    "scene-7-7",
	})
	require.NoError(t, err)
	require.Len(t, state.Warnings, 1)

	got := loadScenes(t, state.ScenesFile)
	var want []*types.Scene
	require.NoError(t, json.Unmarshal([]byte(original), &want))
	assert.Equal(t, want, got)
}
