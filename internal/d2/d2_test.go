package d2

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestSetBounds(t *testing.T) {
	set := Set{{X: 1, Y: -2}, {X: -3, Y: 4}, {X: 0.5, Y: 0}}
	b := set.Bounds()
	want := Box{Min: r2.Vec{X: -3, Y: -2}, Max: r2.Vec{X: 1, Y: 4}}
	if b != want {
		t.Errorf("bounds mismatch. got %v. want %v", b, want)
	}
	if got := b.Size(); got != (r2.Vec{X: 4, Y: 6}) {
		t.Errorf("size %v", got)
	}
	p := b.Pad(0.5)
	wantPad := Box{Min: r2.Vec{X: -5, Y: -5}, Max: r2.Vec{X: 3, Y: 7}}
	if p != wantPad {
		t.Errorf("padded box mismatch. got %v. want %v", p, wantPad)
	}
}

func TestPolarToCartesian(t *testing.T) {
	for _, test := range []struct {
		pol  Pol
		want r2.Vec
	}{
		{Pol{R: 1}, r2.Vec{X: 1}},
		{Pol{R: 2, Theta: math.Pi / 2}, r2.Vec{Y: 2}},
		{Pol{R: math.Sqrt2, Theta: -3 * math.Pi / 4}, r2.Vec{X: -1, Y: -1}},
	} {
		got := test.pol.PolarToCartesian()
		if math.Abs(got.X-test.want.X) > 1e-12 || math.Abs(got.Y-test.want.Y) > 1e-12 {
			t.Errorf("%+v: got %v. want %v", test.pol, got, test.want)
		}
	}
}
