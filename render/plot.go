package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nfnt/resize"
	"github.com/soypat/boltpat"
	"github.com/soypat/boltpat/internal/d2"
	"github.com/soypat/boltpat/plotdata"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Format is an image format a Plot can write.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
	PDF Format = "pdf"
)

// FormatFromPath returns the Format matching the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))); f {
	case PNG, SVG, PDF:
		return f, nil
	}
	return "", fmt.Errorf("unsupported plot extension %q", filepath.Ext(path))
}

const (
	boltRadius     = 10 // points
	centroidRadius = 5  // points
	arrowHead      = 8  // points
	// colorBarHeight is the share of the canvas height given to the color bar.
	colorBarHeight = 0.18
	colorBarSteps  = 64
	// patternPad is the margin around a bare pattern as a fraction of its size.
	patternPad = 0.1
)

// Plot draws bolt patterns and load tables with gonum/plot. Every render
// writes one complete image to the underlying writer.
type Plot struct {
	w      io.Writer
	format Format
	width  vg.Length
	height vg.Length
	// Supersample renders PNG images at this many times the target
	// resolution and downsamples them for antialiasing. Values below 2
	// disable supersampling.
	Supersample int
	// Title replaces the default plot title when not empty.
	Title string
}

// NewPlot returns a Plot writing images of the given format and size to w.
func NewPlot(w io.Writer, format Format, width, height vg.Length) *Plot {
	return &Plot{w: w, format: format, width: width, height: height}
}

// RenderTable draws the bolts of t as hexagons filled by axial load, the
// shear arrows colored by shear magnitude on the same scale, the centroid
// and a color bar below the plot.
func (p *Plot) RenderTable(t plotdata.Table) error {
	if t.Len() == 0 {
		return fmt.Errorf("empty table")
	}
	cm := newColorMap(t.Color)
	fill := colorFunc(cm, t.Color)

	pl := plot.New()
	pl.Title.Text = p.title("Bolt loads")
	pl.X.Label.Text = "x"
	pl.Y.Label.Text = "y"
	pl.Add(crosshair{at: t.Centroid, line: thinGrey})

	bolts, err := plotter.NewScatter(xys(t.X, t.Y))
	if err != nil {
		return err
	}
	bolts.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{Color: fill(t.Axial[i]), Radius: vg.Points(boltRadius), Shape: hexGlyph{}}
	}
	labels, err := boltLabels(t.X, t.Y)
	if err != nil {
		return err
	}
	marker, ring, err := centroidMarker(t.Centroid)
	if err != nil {
		return err
	}
	pl.Add(bolts, arrows{t: t, color: fill, head: vg.Points(arrowHead)}, marker, ring, labels)
	// Ranges are set after Add, which widens them to the data.
	xr, yr := nonEmpty(t.XRange), nonEmpty(t.YRange)
	pl.X.Min, pl.X.Max = xr.Min, xr.Max
	pl.Y.Min, pl.Y.Max = yr.Min, yr.Max

	bar := plot.New()
	bar.HideY()
	bar.X.Label.Text = "Axial load (hexagons) / Shear load (arrows)"
	bar.Add(colorBar{cm: cm, steps: colorBarSteps})

	return p.draw(func(dc draw.Canvas) {
		h := dc.Max.Y - dc.Min.Y
		barH := h * colorBarHeight
		pl.Draw(draw.Crop(dc, 0, 0, barH, 0))
		bar.Draw(draw.Crop(dc, 0, 0, 0, barH-h))
	})
}

// RenderPattern draws the bolts of pts as hexagons with a crosshair through
// the centroid.
func (p *Plot) RenderPattern(pts []r2.Vec, centroid r2.Vec) error {
	if len(pts) == 0 {
		return fmt.Errorf("empty pattern")
	}
	x, y := boltpat.Coords(pts)
	box := d2.Set(append(pts[:len(pts):len(pts)], centroid)).Bounds().Pad(patternPad)

	pl := plot.New()
	pl.Title.Text = p.title(fmt.Sprintf("Bolt pattern, centroid (%.1f, %.1f)", centroid.X, centroid.Y))
	pl.X.Label.Text = "x"
	pl.Y.Label.Text = "y"
	pl.Add(crosshair{at: centroid, line: thinGrey})
	bolts, err := plotter.NewScatter(xys(x, y))
	if err != nil {
		return err
	}
	bolts.GlyphStyle = draw.GlyphStyle{Color: boltPink, Radius: vg.Points(boltRadius), Shape: hexGlyph{}}
	labels, err := boltLabels(x, y)
	if err != nil {
		return err
	}
	pl.Add(bolts, labels)
	xr := nonEmpty(plotdata.Range{Min: box.Min.X, Max: box.Max.X})
	yr := nonEmpty(plotdata.Range{Min: box.Min.Y, Max: box.Max.Y})
	pl.X.Min, pl.X.Max = xr.Min, xr.Max
	pl.Y.Min, pl.Y.Max = yr.Min, yr.Max
	return p.draw(func(dc draw.Canvas) { pl.Draw(dc) })
}

func (p *Plot) title(def string) string {
	if p.Title != "" {
		return p.Title
	}
	return def
}

func (p *Plot) draw(fn func(draw.Canvas)) error {
	switch p.format {
	case PNG:
		k := p.Supersample
		if k < 2 {
			k = 1
		}
		c := vgimg.NewWith(vgimg.UseWH(p.width, p.height), vgimg.UseDPI(k*vgimg.DefaultDPI))
		fn(draw.New(c))
		var img image.Image = c.Image()
		if k > 1 {
			b := img.Bounds()
			img = resize.Resize(uint(b.Dx()/k), uint(b.Dy()/k), img, resize.Bilinear)
		}
		return png.Encode(p.w, img)
	case SVG:
		c := vgsvg.New(p.width, p.height)
		fn(draw.New(c))
		_, err := c.WriteTo(p.w)
		return err
	case PDF:
		c := vgpdf.New(p.width, p.height)
		fn(draw.New(c))
		_, err := c.WriteTo(p.w)
		return err
	}
	return fmt.Errorf("unsupported plot format %q", p.format)
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X, pts[i].Y = x[i], y[i]
	}
	return pts
}

// boltLabels labels each bolt with its ID.
func boltLabels(x, y []float64) (*plotter.Labels, error) {
	ids := make([]string, len(x))
	for i := range ids {
		ids[i] = strconv.Itoa(i)
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys(x, y), Labels: ids})
	if err != nil {
		return nil, err
	}
	l.Offset = vg.Point{X: vg.Points(boltRadius + 2), Y: vg.Points(boltRadius / 2)}
	return l, nil
}

// centroidMarker returns a white disc with a grey ring at c.
func centroidMarker(c r2.Vec) (disc, ring *plotter.Scatter, err error) {
	at := plotter.XYs{{X: c.X, Y: c.Y}}
	disc, err = plotter.NewScatter(at)
	if err != nil {
		return nil, nil, err
	}
	disc.GlyphStyle = draw.GlyphStyle{Color: color.White, Radius: vg.Points(centroidRadius), Shape: draw.CircleGlyph{}}
	ring, err = plotter.NewScatter(at)
	if err != nil {
		return nil, nil, err
	}
	ring.GlyphStyle = draw.GlyphStyle{Color: grey, Radius: vg.Points(centroidRadius), Shape: draw.RingGlyph{}}
	return disc, ring, nil
}

// nonEmpty widens a zero-span range so a single bolt can still be drawn.
func nonEmpty(r plotdata.Range) plotdata.Range {
	if r.Span() == 0 {
		return plotdata.Range{Min: r.Min - 1, Max: r.Max + 1}
	}
	return r
}
