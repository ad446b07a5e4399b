package mustpat

import (
	"math"

	"github.com/soypat/boltpat"
	"github.com/soypat/boltpat/internal/d2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

// Points returns a bolt pattern with a bolt at each (x, y) pair, in the given order.
func Points(pairs ...[]float64) []r2.Vec {
	if len(pairs) == 0 {
		panic(boltpat.ShapeErr("points", "no (x, y) pairs given"))
	}
	pts := make([]r2.Vec, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			panic(boltpat.ShapeErr("points", "pair %d has %d components, want 2", i, len(p)))
		}
		pts[i] = r2.Vec{X: p[0], Y: p[1]}
		mustFinite("points", i, pts[i])
	}
	return pts
}

// FromXY returns a bolt pattern from its coordinate rows. Bolt i is at (x[i], y[i]).
func FromXY(x, y []float64) []r2.Vec {
	if len(x) != len(y) {
		panic(boltpat.ShapeErr("points", "coordinate rows are not rectangular: %d x values, %d y values", len(x), len(y)))
	}
	if len(x) == 0 {
		panic(boltpat.ShapeErr("points", "coordinate rows are empty"))
	}
	pts := make([]r2.Vec, len(x))
	for i := range x {
		pts[i] = r2.Vec{X: x[i], Y: y[i]}
		mustFinite("points", i, pts[i])
	}
	return pts
}

// Circle returns n bolts evenly spaced on a circle of the given radius.
// Bolt 0 sits at the top of the circle and the rest follow clockwise.
// startDeg rotates the whole pattern clockwise.
func Circle(radius float64, n int, startDeg float64) []r2.Vec {
	if n < 1 {
		panic(boltpat.ShapeErr("n", "need at least one bolt, got %d", n))
	}
	mustExtent("radius", radius)
	if math.IsNaN(startDeg) || math.IsInf(startDeg, 0) {
		panic(boltpat.ShapeErr("startDeg", "start angle %v is not finite", startDeg))
	}
	alpha := boltpat.DtoR(startDeg)
	step := 2 * math.Pi / float64(n)
	pts := make([]r2.Vec, n)
	for i := range pts {
		theta := math.Pi/2 - float64(i)*step
		pts[i] = d2.Pol{R: radius, Theta: theta - alpha}.PolarToCartesian()
	}
	return pts
}

// Rectangle returns the bolts on the perimeter of an nx by ny grid centered
// on the origin with the given overall extents. Interior grid points are not
// part of the pattern.
//
// Bolts are ordered down the left column, then top and bottom of each interior
// column from left to right, then down the right column.
func Rectangle(xExtent, yExtent float64, nx, ny int) []r2.Vec {
	if nx < 2 {
		panic(boltpat.ShapeErr("nx", "need at least 2 columns, got %d", nx))
	}
	if ny < 2 {
		panic(boltpat.ShapeErr("ny", "need at least 2 rows, got %d", ny))
	}
	mustExtent("xExtent", xExtent)
	mustExtent("yExtent", yExtent)
	x := floats.Span(make([]float64, nx), -xExtent/2, xExtent/2)
	y := floats.Span(make([]float64, ny), yExtent/2, -yExtent/2) // top to bottom
	top, bottom := y[0], y[ny-1]

	pts := make([]r2.Vec, 0, 2*ny+2*(nx-2))
	for _, yv := range y {
		pts = append(pts, r2.Vec{X: x[0], Y: yv})
	}
	for _, xv := range x[1 : nx-1] {
		pts = append(pts, r2.Vec{X: xv, Y: top}, r2.Vec{X: xv, Y: bottom})
	}
	for _, yv := range y {
		pts = append(pts, r2.Vec{X: x[nx-1], Y: yv})
	}
	return pts
}

// Square returns Rectangle(side, side, nx, ny).
func Square(side float64, nx, ny int) []r2.Vec {
	return Rectangle(side, side, nx, ny)
}

func mustExtent(arg string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		panic(boltpat.ShapeErr(arg, "%v is not a finite non-negative length", v))
	}
}

func mustFinite(arg string, i int, p r2.Vec) {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
		panic(boltpat.ShapeErr(arg, "bolt %d: coordinate %v is not finite", i, p))
	}
}
