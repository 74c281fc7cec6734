package scenes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"narrative-video-automator/types"
)

func TestRepository(t *testing.T) {
	a := &types.Scene{ID: "a", SceneText: "first"}
	b := &types.Scene{ID: "b", SceneText: "second"}
	repo := NewRepository([]*types.Scene{a})

	got, ok := repo.FindByID("a")
	require.True(t, ok)
	assert.Same(t, a, got)
	_, ok = repo.FindByID("missing")
	assert.False(t, ok)

	repo.AppendNew(b)
	assert.Equal(t, 2, repo.Len())
	assert.Same(t, b, repo.Scenes()[1])

	ok = repo.PatchExisting("b", func(s *types.Scene) {
		s.FootageURL = "https://example.com/b.jpg"
		s.ID = "hijacked"
	})
	require.True(t, ok)
	assert.Equal(t, "b", b.ID)
	assert.Equal(t, "https://example.com/b.jpg", b.FootageURL)

	assert.False(t, repo.PatchExisting("missing", func(*types.Scene) { t.Fatal("must not run") }))
	assert.Empty(t, a.FootageURL)
}
