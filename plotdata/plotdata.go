// Package plotdata turns a bolt pattern and its per-bolt loads into
// renderer-ready data: a shared color scale, scaled shear arrows and padded
// axis ranges, all gathered in a single Table.
package plotdata

import (
	"math"

	"github.com/soypat/boltpat"
	"github.com/soypat/boltpat/internal/d2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// arrowFraction is the largest arrow length as a fraction of the larger plot dimension.
	arrowFraction = 1. / 5
	// padFraction is the margin added on each side of an axis range as a fraction of its span.
	padFraction = 0.1
)

// Loads is the per-bolt load table produced by a load solver, indexed by bolt ID.
// Values are taken as given; units and sign convention belong to the solver.
type Loads struct {
	Axial []float64 // axial load
	Vx    []float64 // shear vector x component
	Vy    []float64 // shear vector y component
	Shear []float64 // shear magnitude
}

// Validate checks that l has exactly n finite rows.
func (l Loads) Validate(n int) error {
	cols := []struct {
		name string
		v    []float64
	}{
		{"axial", l.Axial},
		{"vx", l.Vx},
		{"vy", l.Vy},
		{"shear", l.Shear},
	}
	for _, col := range cols {
		if len(col.v) != n {
			return &boltpat.LengthMismatchError{Arg: col.name, Got: len(col.v), Want: n}
		}
		for i, v := range col.v {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return boltpat.ShapeErr(col.name, "bolt %d: load %v is not finite", i, v)
			}
		}
	}
	return nil
}

// ColorScale is the value domain shared by axial fill colors and shear arrow colors.
type ColorScale struct {
	Low, High float64
}

// NewColorScale returns the scale [0, round(max(max(axial), max(shear)))].
// Rounding is half to even.
func NewColorScale(axial, shear []float64) (ColorScale, error) {
	if len(axial) == 0 {
		return ColorScale{}, boltpat.ShapeErr("axial", "no loads")
	}
	if len(shear) == 0 {
		return ColorScale{}, boltpat.ShapeErr("shear", "no loads")
	}
	high := math.RoundToEven(math.Max(floats.Max(axial), floats.Max(shear)))
	if high <= 0 {
		return ColorScale{}, &boltpat.DegenerateScaleError{Quantity: "load"}
	}
	return ColorScale{Low: 0, High: high}, nil
}

// Normalize maps v onto [0, 1] along the scale. Values outside the scale are clamped.
func (c ColorScale) Normalize(v float64) float64 {
	t := (v - c.Low) / (c.High - c.Low)
	return math.Min(1, math.Max(0, t))
}

// NewArrowScale returns the factor that maps shear vectors to plot lengths so
// that the longest arrow spans a fifth of max(width, height).
func NewArrowScale(width, height float64, shear []float64) (float64, error) {
	if len(shear) == 0 {
		return 0, boltpat.ShapeErr("shear", "no loads")
	}
	maxShear := floats.Max(shear)
	if maxShear <= 0 || math.IsNaN(maxShear) {
		return 0, &boltpat.DegenerateScaleError{Quantity: "shear magnitude"}
	}
	return math.Max(width, height) * arrowFraction / maxShear, nil
}

// Range is a closed interval of axis values.
type Range struct {
	Min, Max float64
}

// Span returns Max-Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// PadRange returns the range of the union of values widened by a tenth of its
// span on each side.
func PadRange(values ...[]float64) (Range, error) {
	r := Range{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, v := range values {
		if len(v) == 0 {
			continue
		}
		r.Min = math.Min(r.Min, floats.Min(v))
		r.Max = math.Max(r.Max, floats.Max(v))
	}
	if math.IsInf(r.Min, 1) {
		return Range{}, boltpat.ShapeErr("values", "no coordinates to range over")
	}
	pad := padFraction * r.Span()
	return Range{Min: r.Min - pad, Max: r.Max + pad}, nil
}

// Table is the flat per-bolt data handed to a renderer in one batch.
// Every slice is indexed by bolt ID. ArrowScale maps shear vectors onto plot
// lengths: bolt i's arrow runs from (X[i], Y[i]) to (EndX[i], EndY[i]).
type Table struct {
	X, Y       []float64
	Axial      []float64
	Shear      []float64
	Vx, Vy     []float64
	EndX, EndY []float64
	Centroid   r2.Vec
	ArrowScale float64
	Color      ColorScale
	XRange     Range
	YRange     Range
}

// Row is one bolt of a Table.
type Row struct {
	ID           int
	X, Y         float64
	Axial, Shear float64
	Vx, Vy       float64
	EndX, EndY   float64
}

// Len returns the number of bolts in the table.
func (t Table) Len() int { return len(t.X) }

// Row returns the row of bolt i.
func (t Table) Row(i int) Row {
	return Row{
		ID:    i,
		X:     t.X[i],
		Y:     t.Y[i],
		Axial: t.Axial[i],
		Shear: t.Shear[i],
		Vx:    t.Vx[i],
		Vy:    t.Vy[i],
		EndX:  t.EndX[i],
		EndY:  t.EndY[i],
	}
}

// Prepare builds the renderer table for the bolt pattern pts with the given
// centroid and loads.
func Prepare(pts []r2.Vec, centroid r2.Vec, loads Loads) (Table, error) {
	if len(pts) == 0 {
		return Table{}, boltpat.ShapeErr("points", "need at least one point")
	}
	if err := loads.Validate(len(pts)); err != nil {
		return Table{}, err
	}
	color, err := NewColorScale(loads.Axial, loads.Shear)
	if err != nil {
		return Table{}, err
	}
	size := d2.Set(pts).Bounds().Size()
	scale, err := NewArrowScale(size.X, size.Y, loads.Shear)
	if err != nil {
		return Table{}, err
	}

	x, y := boltpat.Coords(pts)
	endX := make([]float64, len(pts))
	endY := make([]float64, len(pts))
	for i := range pts {
		endX[i] = x[i] + scale*loads.Vx[i]
		endY[i] = y[i] + scale*loads.Vy[i]
	}
	xr, err := PadRange(x, endX)
	if err != nil {
		return Table{}, err
	}
	yr, err := PadRange(y, endY)
	if err != nil {
		return Table{}, err
	}
	return Table{
		X:          x,
		Y:          y,
		Axial:      clone(loads.Axial),
		Shear:      clone(loads.Shear),
		Vx:         clone(loads.Vx),
		Vy:         clone(loads.Vy),
		EndX:       endX,
		EndY:       endY,
		Centroid:   centroid,
		ArrowScale: scale,
		Color:      color,
		XRange:     xr,
		YRange:     yr,
	}, nil
}

func clone(v []float64) []float64 {
	c := make([]float64, len(v))
	copy(c, v)
	return c
}
