package render

import (
	"context"
	"image/color"
	"sync"

	"github.com/soypat/ngon"
)

// Source supplies meshes to a frame loop. Version must change whenever the
// meshes returned by Meshes would change.
type Source interface {
	Version() uint64
	Meshes(ctx context.Context) ([]ngon.Mesh, error)
}

// SceneSource is a Source over a scene that may be replaced at any time,
// for instance when its configuration file changes.
type SceneSource struct {
	mu      sync.RWMutex
	scene   ngon.Scene
	version uint64
}

// NewSceneSource returns a SceneSource serving s.
func NewSceneSource(s ngon.Scene) *SceneSource {
	return &SceneSource{scene: s, version: 1}
}

// SetScene replaces the served scene.
func (s *SceneSource) SetScene(scene ngon.Scene) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scene = scene
	s.version++
}

func (s *SceneSource) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *SceneSource) Meshes(ctx context.Context) ([]ngon.Mesh, error) {
	s.mu.RLock()
	scene := s.scene
	s.mu.RUnlock()
	return scene.Meshes(ctx)
}

// ModelSource serves the single polygon of an editable model.
type ModelSource struct {
	Model *ngon.Model
	Name  string
	Style ngon.Style
	Color color.NRGBA
}

func (s ModelSource) Version() uint64 { return s.Model.Version() }

func (s ModelSource) Meshes(context.Context) ([]ngon.Mesh, error) {
	v, err := s.Model.Vertices()
	if err != nil {
		return nil, err
	}
	return []ngon.Mesh{{Name: s.Name, Vertices: v, Style: s.Style, Color: s.Color}}, nil
}
