package ngon

import (
	"sync"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
)

// Model holds a Polygon that may be edited while other goroutines read its
// vertices. Setters are serialized against vertex generation. Vertices are
// computed lazily and cached until the next edit.
type Model struct {
	mu      sync.RWMutex
	p       Polygon
	cache   Sequence // nil when stale
	version uint64
	log     *zap.Logger
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger makes the model log parameter changes and computed
// vertices at debug level.
func WithLogger(l *zap.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// NewModel returns a Model for p. p must have between 1 and MaxSides sides.
func NewModel(p Polygon, opts ...ModelOption) (*Model, error) {
	if _, err := p.Omega(); err != nil {
		return nil, err
	}
	m := &Model{p: p, log: zap.NewNop(), version: 1}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Polygon returns a copy of the current polygon parameters.
func (m *Model) Polygon() Polygon {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.p
}

func (m *Model) Radius() float64 { return m.Polygon().Radius }
func (m *Model) Center() r2.Vec  { return m.Polygon().Center }
func (m *Model) Sides() uint     { return m.Polygon().Sides }

// Omega returns the current angular step between vertices in degrees.
func (m *Model) Omega() float64 {
	omega, _ := m.Polygon().Omega() // Sides is validated by every setter.
	return omega
}

// Version returns a number that increases every time the polygon changes.
func (m *Model) Version() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version
}

// SetRadius sets the radius of the polygon.
func (m *Model) SetRadius(radius float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.p.Radius == radius {
		return
	}
	m.p.Radius = radius
	m.invalidate()
	m.log.Debug("radius changed", zap.Float64("radius", radius))
}

// SetCenter sets the center of the polygon.
func (m *Model) SetCenter(center r2.Vec) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.p.Center == center {
		return
	}
	m.p.Center = center
	m.invalidate()
	m.log.Debug("center changed", zap.Float64("x", center.X), zap.Float64("y", center.Y))
}

// SetSides sets the number of sides. Zero sides or more than MaxSides is
// rejected with an error matching ErrInvalidConfiguration and the model is
// left unchanged.
func (m *Model) SetSides(sides uint) error {
	if _, err := (Polygon{Sides: sides}).Omega(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.p.Sides == sides {
		return nil
	}
	m.p.Sides = sides
	m.invalidate()
	m.log.Debug("sides changed", zap.Uint("sides", sides), zap.Float64("omega", 360/float64(sides)))
	return nil
}

// Set replaces all polygon parameters at once.
func (m *Model) Set(p Polygon) error {
	if _, err := p.Omega(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.p == p {
		return nil
	}
	m.p = p
	m.invalidate()
	m.log.Debug("polygon changed", zap.Stringer("polygon", p))
	return nil
}

func (m *Model) invalidate() {
	m.cache = nil
	m.version++
}

// Vertices returns a copy of the polygon's vertices, computing them
// if the parameters changed since the last call.
func (m *Model) Vertices() (Sequence, error) {
	m.mu.RLock()
	if m.cache != nil {
		v := m.cache.Clone()
		m.mu.RUnlock()
		return v, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cache == nil {
		v, err := m.p.Vertices()
		if err != nil {
			return nil, err
		}
		m.cache = v
		if ce := m.log.Check(zap.DebugLevel, "vertices computed"); ce != nil {
			ce.Write(zap.Stringer("polygon", m.p), zap.Any("vertices", v))
		}
	}
	return m.cache.Clone(), nil
}

// Shape returns the current polygon as a Shape.
func (m *Model) Shape() Shape { return m.Polygon() }
