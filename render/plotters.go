package render

import (
	"image/color"
	"math"

	"github.com/soypat/boltpat/plotdata"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	grey      = color.Gray{Y: 128}
	boltPink  = color.RGBA{R: 255, G: 192, B: 203, A: 255}
	thinGrey  = draw.LineStyle{Color: grey, Width: vg.Points(1)}
	arrowGrey = draw.LineStyle{Color: grey, Width: vg.Points(2)}
)

// hexGlyph is a pointy-top hexagon filled with the glyph color and
// outlined in grey.
type hexGlyph struct{}

func (hexGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	var hex [7]vg.Point
	for k := 0; k < 6; k++ {
		a := math.Pi/6 + float64(k)*math.Pi/3
		hex[k] = vg.Point{
			X: pt.X + sty.Radius*vg.Length(math.Cos(a)),
			Y: pt.Y + sty.Radius*vg.Length(math.Sin(a)),
		}
	}
	hex[6] = hex[0]
	c.FillPolygon(sty.Color, hex[:6])
	c.StrokeLines(thinGrey, hex[:])
}

// crosshair draws a vertical and a horizontal line through a point,
// spanning the whole data area.
type crosshair struct {
	at   r2.Vec
	line draw.LineStyle
}

func (h crosshair) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	x, y := trX(h.at.X), trY(h.at.Y)
	if x >= c.Min.X && x <= c.Max.X {
		c.StrokeLine2(h.line, x, c.Min.Y, x, c.Max.Y)
	}
	if y >= c.Min.Y && y <= c.Max.Y {
		c.StrokeLine2(h.line, c.Min.X, y, c.Max.X, y)
	}
}

// arrows draws every shear arrow of a table: a grey shaft from the bolt to
// the arrow end and a head filled by shear magnitude.
type arrows struct {
	t     plotdata.Table
	color func(v float64) color.Color
	head  vg.Length
}

func (a arrows) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	h := float64(a.head)
	for i := 0; i < a.t.Len(); i++ {
		p0 := vg.Point{X: trX(a.t.X[i]), Y: trY(a.t.Y[i])}
		p1 := vg.Point{X: trX(a.t.EndX[i]), Y: trY(a.t.EndY[i])}
		dx, dy := float64(p1.X-p0.X), float64(p1.Y-p0.Y)
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue // no shear on this bolt
		}
		ux, uy := dx/l, dy/l
		base := vg.Point{X: p1.X - vg.Length(ux*h), Y: p1.Y - vg.Length(uy*h)}
		off := vg.Point{X: vg.Length(-uy * h / 2), Y: vg.Length(ux * h / 2)}
		head := []vg.Point{
			p1,
			{X: base.X + off.X, Y: base.Y + off.Y},
			{X: base.X - off.X, Y: base.Y - off.Y},
			p1,
		}
		c.StrokeLine2(arrowGrey, p0.X, p0.Y, base.X, base.Y)
		c.FillPolygon(a.color(a.t.Shear[i]), head[:3])
		c.StrokeLines(thinGrey, head)
	}
}

// colorBar fills the data area with the colors of cm in equal steps
// along x. Colors are drawn as flat polygons so every canvas backend
// can draw them.
type colorBar struct {
	cm    palette.ColorMap
	steps int
}

func (b colorBar) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, _ := plt.Transforms(&c)
	lo, hi := b.cm.Min(), b.cm.Max()
	step := (hi - lo) / float64(b.steps)
	for i := 0; i < b.steps; i++ {
		v0 := lo + float64(i)*step
		col, err := b.cm.At(v0 + step/2)
		if err != nil {
			continue
		}
		x0, x1 := trX(v0), trX(v0+step)
		c.FillPolygon(col, []vg.Point{
			{X: x0, Y: c.Min.Y}, {X: x1, Y: c.Min.Y},
			{X: x1, Y: c.Max.Y}, {X: x0, Y: c.Max.Y},
		})
	}
}

// DataRange implements plot.DataRanger.
func (b colorBar) DataRange() (xmin, xmax, ymin, ymax float64) {
	return b.cm.Min(), b.cm.Max(), 0, 1
}

// newColorMap returns a color map spanning s.
func newColorMap(s plotdata.ColorScale) palette.ColorMap {
	cm := moreland.Kindlmann()
	cm.SetMin(s.Low)
	cm.SetMax(s.High)
	return cm
}

// colorFunc maps values onto cm, clamping them to the scale first.
func colorFunc(cm palette.ColorMap, s plotdata.ColorScale) func(float64) color.Color {
	return func(v float64) color.Color {
		c, err := cm.At(s.Low + s.Normalize(v)*(s.High-s.Low))
		if err != nil {
			return grey
		}
		return c
	}
}
