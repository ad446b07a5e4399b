package boltpat

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"
)

// Mode selects how much of a Section Compute fills in.
type Mode int

const (
	// Minimal computes the centroid only.
	Minimal Mode = iota
	// Full computes the centroid, offsets, second moments and radial distances.
	Full
)

// Section holds the geometric properties of a bolt pattern about its centroid
// (or about a pivot, if one was given). Only Centroid is set in Minimal mode.
type Section struct {
	Centroid r2.Vec
	// Rc is the offset (rcx, rcy) of each bolt from Centroid, by bolt ID.
	Rc []r2.Vec
	// Rcxy is the radial distance of each bolt to Centroid.
	Rcxy []float64
	// Icx, Icy are the second moments of area about the centroidal x and y axes.
	Icx, Icy float64
	// Icp is the polar moment Icx+Icy.
	Icp float64
}

// Compute computes the section properties of the bolt pattern pts.
// If pivot is non-nil it is used in place of the area-weighted centroid;
// areas still weight the moments about it.
func Compute(pts []r2.Vec, areas Areas, pivot *r2.Vec, mode Mode) (Section, error) {
	if mode != Minimal && mode != Full {
		return Section{}, &InvalidModeError{Mode: mode}
	}
	if err := checkPoints(pts); err != nil {
		return Section{}, err
	}
	a, err := areas.Resolve(len(pts))
	if err != nil {
		return Section{}, err
	}
	var c r2.Vec
	if pivot != nil {
		if !finite(*pivot) {
			return Section{}, ShapeErr("pivot", "pivot %v is not finite", *pivot)
		}
		c = *pivot
	} else {
		c, err = weightedCentroid(pts, a)
		if err != nil {
			return Section{}, err
		}
	}
	sec := Section{Centroid: c}
	if mode == Minimal {
		return sec, nil
	}

	sec.Rc = make([]r2.Vec, len(pts))
	sec.Rcxy = make([]float64, len(pts))
	for i, p := range pts {
		rc := r2.Sub(p, c)
		sec.Rc[i] = rc
		sec.Icx += rc.Y * rc.Y * a[i]
		sec.Icy += rc.X * rc.X * a[i]
		sec.Rcxy[i] = math.Sqrt(rc.X*rc.X + rc.Y*rc.Y)
	}
	sec.Icp = sec.Icx + sec.Icy
	return sec, nil
}

// Centroid returns the area-weighted centroid of pts, or pivot when non-nil.
func Centroid(pts []r2.Vec, areas Areas, pivot *r2.Vec) (r2.Vec, error) {
	sec, err := Compute(pts, areas, pivot, Minimal)
	return sec.Centroid, err
}

// Properties returns the full section properties of pts.
func Properties(pts []r2.Vec, areas Areas, pivot *r2.Vec) (Section, error) {
	return Compute(pts, areas, pivot, Full)
}

// weightedCentroid returns (Σ x·A/ΣA, Σ y·A/ΣA).
func weightedCentroid(pts []r2.Vec, a []float64) (r2.Vec, error) {
	var total float64
	for _, v := range a {
		total += v
	}
	if total == 0 {
		return r2.Vec{}, ShapeErr("areas", "total area is zero, centroid undefined")
	}
	x, y := Coords(pts)
	return r2.Vec{X: stat.Mean(x, a), Y: stat.Mean(y, a)}, nil
}

// Coords splits pts into its x and y coordinate rows.
func Coords(pts []r2.Vec) (x, y []float64) {
	x = make([]float64, len(pts))
	y = make([]float64, len(pts))
	for i, p := range pts {
		x[i] = p.X
		y[i] = p.Y
	}
	return x, y
}

func checkPoints(pts []r2.Vec) error {
	if len(pts) == 0 {
		return ShapeErr("points", "need at least one point")
	}
	for i, p := range pts {
		if !finite(p) {
			return ShapeErr("points", "bolt %d: coordinate %v is not finite", i, p)
		}
	}
	return nil
}

func finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
