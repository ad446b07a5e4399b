// Package pattern generates bolt patterns: ordered sets of bolt locations.
// The index of a bolt in a generated pattern is its bolt ID.
//
// Generators return an error instead of panicking. See package mustpat for
// the panicking counterparts.
package pattern

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/soypat/boltpat"
	"github.com/soypat/boltpat/pattern/mustpat"
	"gonum.org/v1/gonum/spatial/r2"
)

// Renderer draws a bolt pattern together with its centroid.
type Renderer interface {
	RenderPattern(pts []r2.Vec, centroid r2.Vec) error
}

// Option configures a generator call.
type Option func(*config)

type config struct {
	preview Renderer
	areas   boltpat.Areas
	pivot   *r2.Vec
}

// WithPreview has the generator compute the centroid of its output with
// the given areas and pivot (pivot may be nil) and draw the pattern with r.
func WithPreview(r Renderer, areas boltpat.Areas, pivot *r2.Vec) Option {
	return func(c *config) {
		c.preview = r
		c.areas = areas
		c.pivot = pivot
	}
}

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

// Points returns a bolt pattern with a bolt at each (x, y) pair, in the given order.
func Points(pairs [][]float64, opts ...Option) ([]r2.Vec, error) {
	return generate(func() []r2.Vec { return mustpat.Points(pairs...) }, opts)
}

// FromXY returns a bolt pattern from its coordinate rows. Bolt i is at (x[i], y[i]).
func FromXY(x, y []float64, opts ...Option) ([]r2.Vec, error) {
	return generate(func() []r2.Vec { return mustpat.FromXY(x, y) }, opts)
}

// Circle returns n bolts evenly spaced on a circle, bolt 0 at the top and
// the rest clockwise. startDeg rotates the pattern clockwise.
func Circle(radius float64, n int, startDeg float64, opts ...Option) ([]r2.Vec, error) {
	return generate(func() []r2.Vec { return mustpat.Circle(radius, n, startDeg) }, opts)
}

// Rectangle returns the perimeter bolts of an nx by ny grid with the given extents.
func Rectangle(xExtent, yExtent float64, nx, ny int, opts ...Option) ([]r2.Vec, error) {
	return generate(func() []r2.Vec { return mustpat.Rectangle(xExtent, yExtent, nx, ny) }, opts)
}

// Square returns the perimeter bolts of an nx by ny grid on a square of the given side.
func Square(side float64, nx, ny int, opts ...Option) ([]r2.Vec, error) {
	return Rectangle(side, side, nx, ny, opts...)
}

func generate(gen func() []r2.Vec, opts []Option) (pts []r2.Vec, err error) {
	pts, err = recoverShape(gen)
	if err != nil {
		return nil, err
	}
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.preview == nil {
		return pts, nil
	}
	c, err := boltpat.Centroid(pts, cfg.areas, cfg.pivot)
	if err != nil {
		return nil, err
	}
	if err := cfg.preview.RenderPattern(pts, c); err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	return pts, nil
}

func recoverShape(gen func() []r2.Vec) (pts []r2.Vec, err error) {
	defer func() {
		if a := recover(); a != nil {
			var e error
			if asErr, ok := a.(error); ok && errors.As(asErr, new(*boltpat.InputShapeError)) {
				e = asErr
			} else {
				e = &shapeErr{
					panicObj: a,
					stack:    string(debug.Stack()),
				}
			}
			pts, err = nil, e
		}
	}()
	return gen(), nil
}
