package render_test

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/soypat/boltpat"
	"github.com/soypat/boltpat/pattern"
	"github.com/soypat/boltpat/plotdata"
	"github.com/soypat/boltpat/render"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot/cmpimg"
	"gonum.org/v1/plot/vg"
)

const (
	// imgDelta a normalized imgDelta parameter to describe how close the matching
	// should be performed (imgDelta=0: perfect match, imgDelta=1, loose match)
	imgDelta = 0
	size     = 8 * vg.Centimeter
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func circleTable(t testing.TB) ([]r2.Vec, plotdata.Table) {
	t.Helper()
	pts, err := pattern.Circle(100, 6, 0)
	if err != nil {
		t.Fatal(err)
	}
	c, err := boltpat.Centroid(pts, boltpat.Areas{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	tbl, err := plotdata.Prepare(pts, c, plotdata.Loads{
		Axial: []float64{12, 8, 3, -2, 3, 8},
		Vx:    []float64{4, 3, 0, -3, -4, 0},
		Vy:    []float64{3, 4, 5, 4, 3, 0},
		Shear: []float64{5, 5, 5, 5, 5, 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	return pts, tbl
}

func TestPlotTablePNG(t *testing.T) {
	_, tbl := circleTable(t)
	var imgs [2]bytes.Buffer
	for i := range imgs {
		pl := render.NewPlot(&imgs[i], render.PNG, size, size)
		pl.Supersample = 2
		if err := pl.RenderTable(tbl); err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(imgs[i].Bytes(), pngMagic) {
			t.Fatal("output is not a PNG image")
		}
	}
	ok, err := cmpimg.EqualApprox("png", imgs[0].Bytes(), imgs[1].Bytes(), imgDelta)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("rendering the same table twice produced different images")
	}
}

func TestPlotSupersampleSize(t *testing.T) {
	_, tbl := circleTable(t)
	var bounds [2]image.Rectangle
	for i, k := range []int{1, 3} {
		var b bytes.Buffer
		pl := render.NewPlot(&b, render.PNG, size, size)
		pl.Supersample = k
		if err := pl.RenderTable(tbl); err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(&b)
		if err != nil {
			t.Fatal(err)
		}
		bounds[i] = img.Bounds()
	}
	dx := bounds[0].Dx() - bounds[1].Dx()
	dy := bounds[0].Dy() - bounds[1].Dy()
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		t.Errorf("supersampled image is %v, want about %v", bounds[1], bounds[0])
	}
}

func TestPlotFormats(t *testing.T) {
	pts, tbl := circleTable(t)
	for _, test := range []struct {
		format render.Format
		prefix string
	}{
		{render.PNG, string(pngMagic)},
		{render.SVG, "<?xml"},
		{render.PDF, "%PDF"},
	} {
		t.Run(string(test.format), func(t *testing.T) {
			var b bytes.Buffer
			pl := render.NewPlot(&b, test.format, size, size)
			if err := pl.RenderTable(tbl); err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(b.Bytes(), []byte(test.prefix)) {
				t.Errorf("table output does not start with %q", test.prefix)
			}
			b.Reset()
			if err := pl.RenderPattern(pts, tbl.Centroid); err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(b.Bytes(), []byte(test.prefix)) {
				t.Errorf("pattern output does not start with %q", test.prefix)
			}
		})
	}
}

func TestPlotSingleBolt(t *testing.T) {
	var b bytes.Buffer
	pl := render.NewPlot(&b, render.PNG, size, size)
	if err := pl.RenderPattern([]r2.Vec{{X: 3, Y: 4}}, r2.Vec{X: 3, Y: 4}); err != nil {
		t.Fatal(err)
	}
	if b.Len() == 0 {
		t.Error("no image written")
	}
	if err := pl.RenderPattern(nil, r2.Vec{}); err == nil {
		t.Error("expected error for empty pattern")
	}
}

func TestFormatFromPath(t *testing.T) {
	for _, test := range []struct {
		path string
		want render.Format
		ok   bool
	}{
		{"out/bolts.png", render.PNG, true},
		{"bolts.SVG", render.SVG, true},
		{"report.pdf", render.PDF, true},
		{"bolts.jpg", "", false},
		{"bolts", "", false},
	} {
		got, err := render.FormatFromPath(test.path)
		if (err == nil) != test.ok || got != test.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", test.path, got, err)
		}
	}
}

func TestPreviewWithPlot(t *testing.T) {
	var b bytes.Buffer
	pl := render.NewPlot(&b, render.SVG, size, size)
	if _, err := pattern.Rectangle(200, 100, 4, 3, pattern.WithPreview(pl, boltpat.Areas{}, nil)); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b.Bytes(), []byte("<?xml")) {
		t.Error("preview did not write an SVG image")
	}
}

func TestWriteReport(t *testing.T) {
	pts, tbl := circleTable(t)
	sec, err := boltpat.Properties(pts, boltpat.Areas{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	var img bytes.Buffer
	if err := render.NewPlot(&img, render.PNG, size, size).RenderTable(tbl); err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		name  string
		table *plotdata.Table
		plot  []byte
	}{
		{"full", &tbl, img.Bytes()},
		{"section only", nil, nil},
	} {
		t.Run(test.name, func(t *testing.T) {
			var b bytes.Buffer
			err := render.WriteReport(&b, render.Report{
				Title:   "Flange",
				Project: "test",
				Date:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
				Points:  pts,
				Section: sec,
				Table:   test.table,
				Plot:    test.plot,
			})
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(b.Bytes(), []byte("%PDF")) {
				t.Error("report is not a PDF document")
			}
		})
	}
}

func TestWriteReportErrors(t *testing.T) {
	pts, tbl := circleTable(t)
	minimal, err := boltpat.Compute(pts, boltpat.Areas{}, nil, boltpat.Minimal)
	if err != nil {
		t.Fatal(err)
	}
	var lm *boltpat.LengthMismatchError
	err = render.WriteReport(&bytes.Buffer{}, render.Report{Points: pts, Section: minimal, Table: &tbl})
	if !errors.As(err, &lm) {
		t.Errorf("expected length mismatch for a minimal section, got %v", err)
	}
	if err := render.WriteReport(&bytes.Buffer{}, render.Report{}); err == nil {
		t.Error("expected error for a report without bolts")
	}
}

func TestRecorder(t *testing.T) {
	pts, tbl := circleTable(t)
	var rec render.Recorder
	var _ render.Renderer = &rec
	var _ render.PatternRenderer = &rec
	if err := rec.RenderPattern(pts, tbl.Centroid); err != nil {
		t.Fatal(err)
	}
	if err := rec.RenderTable(tbl); err != nil {
		t.Fatal(err)
	}
	pts[0] = r2.Vec{X: 1e6}
	if rec.Len() != 2 {
		t.Errorf("recorded %d renders, want 2", rec.Len())
	}
	if rec.Patterns[0].Points[0] == pts[0] {
		t.Error("recorder aliases the rendered points")
	}
}
