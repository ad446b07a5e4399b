package d2

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Box is a 2d bounding box.
type Box r2.Box

// Size returns the size of a 2d box.
func (a Box) Size() r2.Vec {
	return r2.Sub(a.Max, a.Min)
}

// Pad returns the box grown on every side by k times its size along that axis.
func (a Box) Pad(k float64) Box {
	d := r2.Scale(k, a.Size())
	return Box{r2.Sub(a.Min, d), r2.Add(a.Max, d)}
}
