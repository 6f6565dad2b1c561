package ngon

import (
	"context"
	"fmt"
	"image/color"

	"github.com/soypat/ngon/internal/d2"
	"golang.org/x/sync/errgroup"
)

// Item is a named shape in a scene together with how it is drawn.
type Item struct {
	Name  string
	Shape Shape
	Style Style
	Color color.NRGBA
}

// Mesh is the vertex output of an Item, ready to be handed to a renderer.
type Mesh struct {
	Name     string
	Vertices Sequence
	Style    Style
	Color    color.NRGBA
}

// Scene is an ordered list of items. Items are drawn in order.
type Scene struct {
	Items []Item
	// Limit bounds the number of items computed concurrently. Zero or
	// negative means no limit.
	Limit int
}

// Meshes computes the vertices of every item concurrently. The returned
// meshes are in item order. The first failing item cancels the remaining
// work and its error is returned.
func (s Scene) Meshes(ctx context.Context) ([]Mesh, error) {
	meshes := make([]Mesh, len(s.Items))
	g, ctx := errgroup.WithContext(ctx)
	if s.Limit > 0 {
		g.SetLimit(s.Limit)
	}
	for i := range s.Items {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := s.Items[i]
			if item.Shape == nil {
				return fmt.Errorf("item %d %q: %w", i, item.Name, ErrEmptyShape)
			}
			v, err := item.Shape.Vertices()
			if err != nil {
				return fmt.Errorf("item %d %q: %w", i, item.Name, err)
			}
			meshes[i] = Mesh{Name: item.Name, Vertices: v, Style: item.Style, Color: item.Color}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return meshes, nil
}

// Bounds returns the box enclosing every item's shape. ok is false when the
// scene has no shapes.
func (s Scene) Bounds() (bb d2.Box, ok bool) {
	for _, item := range s.Items {
		if item.Shape == nil {
			continue
		}
		b := item.Shape.Bounds()
		if !ok {
			bb, ok = b, true
			continue
		}
		bb = bb.Extend(b)
	}
	return bb, ok
}

// MeshBounds returns the box enclosing all vertices of the meshes. ok is
// false when there are no vertices. Vertices all at the origin yield the
// zero box with ok true.
func MeshBounds(meshes []Mesh) (bb d2.Box, ok bool) {
	for _, m := range meshes {
		for _, v := range m.Vertices {
			if !ok {
				bb, ok = d2.Box{Min: v, Max: v}, true
				continue
			}
			bb = bb.Include(v)
		}
	}
	return bb, ok
}
