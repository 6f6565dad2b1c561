package ngon

import (
	"fmt"

	"github.com/soypat/ngon/internal/d2"
)

// Shape is implemented by Polygon and Points only. Each shape family carries
// its own parameters and generates its vertices without side effects.
type Shape interface {
	Kind() Kind
	Vertices() (Sequence, error)
	Bounds() d2.Box
	// sealed prevents implementations outside this package.
	sealed()
}

func (Polygon) sealed() {}
func (Points) sealed()  {}

// Kind tags a Shape family.
type Kind uint8

const (
	KindPolygon Kind = iota + 1
	KindPoints
)

func (k Kind) String() string {
	switch k {
	case KindPolygon:
		return "polygon"
	case KindPoints:
		return "points"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind returns the Kind named by s as returned by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "polygon", "ngon":
		return KindPolygon, nil
	case "points", "vertices":
		return KindPoints, nil
	}
	return 0, &ConfigError{Field: "kind", Value: s, Err: ErrInvalidConfiguration}
}

// NewShape returns the zero Shape of the given kind. Polygons returned
// by NewShape must have their sides set before computing vertices.
func NewShape(k Kind) (Shape, error) {
	switch k {
	case KindPolygon:
		return Polygon{}, nil
	case KindPoints:
		return Points{}, nil
	}
	return nil, &ConfigError{Field: "kind", Value: k, Err: ErrInvalidConfiguration}
}

// Points is an explicit list of vertices drawn in the given order.
type Points Sequence

// Kind returns KindPoints.
func (p Points) Kind() Kind { return KindPoints }

// Vertices returns a copy of the points.
func (p Points) Vertices() (Sequence, error) {
	if len(p) == 0 {
		return nil, ErrEmptyShape
	}
	return Sequence(p).Clone(), nil
}

// Bounds returns the bounding box of the points. It returns the zero
// box when there are no points.
func (p Points) Bounds() d2.Box {
	if len(p) == 0 {
		return d2.Box{}
	}
	return Sequence(p).Bounds()
}

// Style is how a shape's vertices are drawn.
type Style uint8

const (
	// StyleVertex draws each vertex as a point.
	StyleVertex Style = iota
	// StyleLine draws the closed outline connecting consecutive vertices.
	StyleLine
	// StyleFill draws the filled shape as triangles fanning out from vertex 0.
	StyleFill
)

func (s Style) String() string {
	switch s {
	case StyleVertex:
		return "vertex"
	case StyleLine:
		return "line"
	case StyleFill:
		return "fill"
	}
	return fmt.Sprintf("Style(%d)", uint8(s))
}

// ParseStyle returns the Style named by s as returned by Style.String.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "vertex", "points", "":
		return StyleVertex, nil
	case "line", "outline":
		return StyleLine, nil
	case "fill", "triangles":
		return StyleFill, nil
	}
	return 0, &ConfigError{Field: "style", Value: s, Err: ErrInvalidConfiguration}
}
