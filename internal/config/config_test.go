package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soypat/boltpat"
	"gonum.org/v1/gonum/spatial/r2"
)

const circleJob = `
[pattern]
kind = "Circle"
radius = 100
n = 8
start_deg = 22.5
area = 2.5
pivot = [25, 40]

[loads]
file = "loads.xlsx"

[output]
plot = "bolts.png"
width_mm = 120
`

func TestDecode(t *testing.T) {
	job, err := Decode(strings.NewReader(circleJob))
	if err != nil {
		t.Fatal(err)
	}
	p := job.Pattern
	if p.Kind != KindCircle || p.Radius != 100 || p.N != 8 || p.StartDeg != 22.5 {
		t.Errorf("unexpected pattern %+v", p)
	}
	if job.Output.WidthMM != 120 || job.Output.HeightMM != 120 || job.Output.Supersample != defaultSupersample {
		t.Errorf("defaults not applied: %+v", job.Output)
	}
	pts, err := p.Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 8 {
		t.Errorf("built %d bolts, want 8", len(pts))
	}
	pivot, err := p.PivotPoint()
	if err != nil {
		t.Fatal(err)
	}
	if pivot == nil || *pivot != (r2.Vec{X: 25, Y: 40}) {
		t.Errorf("pivot %v", pivot)
	}
	areas := p.AreaWeights()
	a, err := areas.Resolve(len(pts))
	if err != nil {
		t.Fatal(err)
	}
	if !areas.IsUniform() || a[7] != 2.5 {
		t.Errorf("areas %v", a)
	}
}

func TestDecodePatterns(t *testing.T) {
	for _, test := range []struct {
		name  string
		src   string
		bolts int
	}{
		{"points", `[pattern]
kind = "points"
points = [[0, 0], [1, 0], [1, 1]]
areas = [1, 2, 3]`, 3},
		{"rectangle", `[pattern]
kind = "rectangle"
x_extent = 200
y_extent = 100
nx = 4
ny = 3`, 10},
		{"square", `[pattern]
kind = "square"
side = 50
nx = 3
ny = 3`, 8},
	} {
		t.Run(test.name, func(t *testing.T) {
			job, err := Decode(strings.NewReader(test.src))
			if err != nil {
				t.Fatal(err)
			}
			pts, err := job.Pattern.Build()
			if err != nil {
				t.Fatal(err)
			}
			if len(pts) != test.bolts {
				t.Errorf("built %d bolts, want %d", len(pts), test.bolts)
			}
			if _, err := boltpat.Properties(pts, job.Pattern.AreaWeights(), nil); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, test := range []struct {
		name    string
		src     string
		wantMsg string
	}{
		{"unknown key", "[pattern]\nkind = \"circle\"\nradius = 1\nn = 2\nraduis = 3", "pattern.raduis"},
		{"no kind", "[pattern]\nradius = 1", "required"},
		{"bad kind", "[pattern]\nkind = \"hexagon\"", "unknown pattern.kind"},
		{"area and areas", "[pattern]\nkind = \"square\"\nside = 10\narea = 1\nareas = [1, 2]", "mutually exclusive"},
		{"plot without loads", "[pattern]\nkind = \"square\"\nside = 10\n[output]\nplot = \"a.png\"", "loads.file"},
		{"square with extent", "[pattern]\nkind = \"square\"\nx_extent = 150\nnx = 3\nny = 4", "pattern.side must be positive"},
		{"square with side and extent", "[pattern]\nkind = \"square\"\nside = 150\nx_extent = 150\nnx = 3\nny = 4", "pattern.x_extent not used"},
		{"circle with grid", "[pattern]\nkind = \"circle\"\nradius = 10\nn = 4\nnx = 3\nny = 3", "pattern.nx, pattern.ny not used"},
		{"circle without radius", "[pattern]\nkind = \"circle\"\nn = 4", "pattern.radius must be positive"},
		{"rectangle flat", "[pattern]\nkind = \"rectangle\"\nx_extent = 10\nny = 2\nnx = 2", "pattern.y_extent must be positive"},
		{"points missing", "[pattern]\nkind = \"points\"\nradius = 3", "pattern.points is required"},
		{"bad toml", "[pattern\nkind = 1", "decode job"},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(test.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), test.wantMsg) {
				t.Errorf("error %q does not mention %q", err, test.wantMsg)
			}
		})
	}
}

func TestPivotPoint(t *testing.T) {
	p := PatternConfig{Pivot: []float64{1, 2, 3}}
	_, err := p.PivotPoint()
	if err == nil {
		t.Fatal("expected error for a three component pivot")
	}
	p.Pivot = nil
	pivot, err := p.PivotPoint()
	if err != nil || pivot != nil {
		t.Errorf("got pivot %v, err %v without a pivot setting", pivot, err)
	}
}

func TestLoadResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.toml")
	if err := os.WriteFile(path, []byte(circleJob), 0o644); err != nil {
		t.Fatal(err)
	}
	job, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if job.Loads.File != filepath.Join(dir, "loads.xlsx") {
		t.Errorf("loads file %q not resolved against %q", job.Loads.File, dir)
	}
	if job.Output.Plot != filepath.Join(dir, "bolts.png") {
		t.Errorf("plot file %q not resolved against %q", job.Output.Plot, dir)
	}
	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for a missing job file")
	}
}
