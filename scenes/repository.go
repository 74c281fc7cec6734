package scenes

import "narrative-video-automator/types"

// Repository owns the scene collection for one pipeline run
type Repository struct {
	scenes []*types.Scene
}

// NewRepository wraps an existing collection without copying it
func NewRepository(scenes []*types.Scene) *Repository {
	return &Repository{scenes: scenes}
}

// FindByID returns the scene with the given id
func (r *Repository) FindByID(id string) (*types.Scene, bool) {
	for _, s := range r.scenes {
		if s != nil && s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// AppendNew adds a scene at the end of the collection
func (r *Repository) AppendNew(scene *types.Scene) {
	r.scenes = append(r.scenes, scene)
}

// PatchExisting applies fn to the scene with the given id. The id itself is
// restored after fn runs so it can never be reassigned.
func (r *Repository) PatchExisting(id string, fn func(*types.Scene)) bool {
	s, ok := r.FindByID(id)
	if !ok {
		return false
	}
	fn(s)
	s.ID = id
	return true
}

// Scenes returns the collection in narration order
func (r *Repository) Scenes() []*types.Scene {
	return r.scenes
}

func (r *Repository) Len() int { return len(r.scenes) }
