package boltpat

import "math"

// Areas holds the bolt area weights of a pattern. It is either a single
// value shared by every bolt or one value per bolt. The zero value is a
// uniform weight of 1.
type Areas struct {
	each    []float64
	uniform float64
	set     bool
}

// Uniform returns area weights where every bolt has area a.
func Uniform(a float64) Areas {
	return Areas{uniform: a, set: true}
}

// Each returns per-bolt area weights. The number of weights must match
// the number of bolts of the pattern they are used with.
func Each(a ...float64) Areas {
	each := make([]float64, len(a))
	copy(each, a)
	return Areas{each: each, set: true}
}

// IsUniform reports whether a is a single weight shared by all bolts.
func (a Areas) IsUniform() bool { return a.each == nil }

// Resolve returns one weight per bolt for a pattern of n bolts.
// Weights must be finite and non-negative.
func (a Areas) Resolve(n int) ([]float64, error) {
	if n < 1 {
		return nil, ShapeErr("points", "need at least one point, got %d", n)
	}
	w := make([]float64, n)
	if a.IsUniform() {
		u := 1.0
		if a.set {
			u = a.uniform
		}
		if err := checkArea(-1, u); err != nil {
			return nil, err
		}
		for i := range w {
			w[i] = u
		}
		return w, nil
	}
	if len(a.each) != n {
		return nil, &LengthMismatchError{Arg: "areas", Got: len(a.each), Want: n}
	}
	for i, v := range a.each {
		if err := checkArea(i, v); err != nil {
			return nil, err
		}
	}
	copy(w, a.each)
	return w, nil
}

func checkArea(i int, v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return areaErr(i, "area %v is not finite", v)
	case v < 0:
		return areaErr(i, "negative area %v", v)
	}
	return nil
}

func areaErr(i int, format string, v float64) error {
	if i < 0 {
		return ShapeErr("areas", format, v)
	}
	return ShapeErr("areas", "bolt %d: "+format, i, v)
}
