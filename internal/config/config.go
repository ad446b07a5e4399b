// Package config decodes boltpat job files.
//
// A job file is TOML with three tables:
//
//	[pattern]
//	kind = "circle"   # points, circle, rectangle or square
//	radius = 100
//	n = 8
//	pivot = [25, 40]  # optional
//
//	[loads]
//	file = "loads.xlsx"
//
//	[output]
//	plot = "bolts.png"
//	report = "bolts.pdf"
//
// Relative file names are resolved against the directory of the job file.
package config

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/soypat/boltpat"
	"github.com/soypat/boltpat/pattern"
	"gonum.org/v1/gonum/spatial/r2"
)

// Pattern kinds.
const (
	KindPoints    = "points"
	KindCircle    = "circle"
	KindRectangle = "rectangle"
	KindSquare    = "square"
)

const (
	defaultWidthMM     = 150
	defaultSupersample = 2
)

// Job is a decoded job file.
type Job struct {
	Pattern PatternConfig `toml:"pattern"`
	Loads   LoadsConfig   `toml:"loads"`
	Output  OutputConfig  `toml:"output"`
}

// PatternConfig describes the bolt pattern, its areas and pivot.
type PatternConfig struct {
	Kind     string      `toml:"kind"`
	Points   [][]float64 `toml:"points"`
	Radius   float64     `toml:"radius"`
	N        int         `toml:"n"`
	StartDeg float64     `toml:"start_deg"`
	XExtent  float64     `toml:"x_extent"`
	YExtent  float64     `toml:"y_extent"`
	Side     float64     `toml:"side"`
	Nx       int         `toml:"nx"`
	Ny       int         `toml:"ny"`
	Area     *float64    `toml:"area"`
	Areas    []float64   `toml:"areas"`
	Pivot    []float64   `toml:"pivot"`
}

// LoadsConfig locates the per-bolt load table.
type LoadsConfig struct {
	File  string `toml:"file"`
	Sheet string `toml:"sheet"`
}

// OutputConfig names the files a job writes. Empty names are skipped.
type OutputConfig struct {
	Plot        string  `toml:"plot"`
	Preview     string  `toml:"preview"`
	Report      string  `toml:"report"`
	Table       string  `toml:"table"`
	Title       string  `toml:"title"`
	Project     string  `toml:"project"`
	WidthMM     float64 `toml:"width_mm"`
	HeightMM    float64 `toml:"height_mm"`
	Supersample int     `toml:"supersample"`
}

// Load reads and validates the job file at path.
func Load(path string) (Job, error) {
	var job Job
	md, err := toml.DecodeFile(path, &job)
	if err != nil {
		return Job{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Job{}, fmt.Errorf("%s: %w", path, err)
	}
	job.resolve(filepath.Dir(path))
	if err := job.Validate(); err != nil {
		return Job{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := checkGeometryKeys(md, job.Pattern.Kind); err != nil {
		return Job{}, fmt.Errorf("%s: %w", path, err)
	}
	return job, nil
}

// Decode reads and validates a job from r. Relative file names are kept as is.
func Decode(r io.Reader) (Job, error) {
	var job Job
	md, err := toml.NewDecoder(r).Decode(&job)
	if err != nil {
		return Job{}, fmt.Errorf("decode job: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Job{}, err
	}
	job.setDefaults()
	if err := job.Validate(); err != nil {
		return Job{}, err
	}
	if err := checkGeometryKeys(md, job.Pattern.Kind); err != nil {
		return Job{}, err
	}
	return job, nil
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	sort.Strings(keys)
	return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
}

// geometryKeys lists the pattern keys each kind reads.
var geometryKeys = map[string][]string{
	KindPoints:    {"points"},
	KindCircle:    {"radius", "n", "start_deg"},
	KindRectangle: {"x_extent", "y_extent", "nx", "ny"},
	KindSquare:    {"side", "nx", "ny"},
}

// checkGeometryKeys rejects geometry keys that belong to another pattern kind.
func checkGeometryKeys(md toml.MetaData, kind string) error {
	used := make(map[string]bool)
	for _, k := range geometryKeys[kind] {
		used[k] = true
	}
	var unused []string
	for _, keys := range geometryKeys {
		for _, k := range keys {
			if !used[k] && md.IsDefined("pattern", k) {
				used[k] = true // report once
				unused = append(unused, "pattern."+k)
			}
		}
	}
	if len(unused) == 0 {
		return nil
	}
	sort.Strings(unused)
	return fmt.Errorf("%s not used by pattern kind %q", strings.Join(unused, ", "), kind)
}

func (j *Job) resolve(dir string) {
	j.setDefaults()
	for _, p := range []*string{&j.Loads.File, &j.Output.Plot, &j.Output.Preview, &j.Output.Report, &j.Output.Table} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

func (j *Job) setDefaults() {
	if j.Output.WidthMM == 0 {
		j.Output.WidthMM = defaultWidthMM
	}
	if j.Output.HeightMM == 0 {
		j.Output.HeightMM = j.Output.WidthMM
	}
	if j.Output.Supersample == 0 {
		j.Output.Supersample = defaultSupersample
	}
	j.Pattern.Kind = strings.ToLower(strings.TrimSpace(j.Pattern.Kind))
}

// Validate checks the job for settings that cannot work together.
// Pattern sizes are checked here; counts and coordinates are checked when
// the pattern is built.
func (j Job) Validate() error {
	switch j.Pattern.Kind {
	case KindPoints, KindCircle, KindRectangle, KindSquare:
	case "":
		return fmt.Errorf("pattern.kind is required")
	default:
		return fmt.Errorf("unknown pattern.kind %q", j.Pattern.Kind)
	}
	if err := j.Pattern.checkSize(); err != nil {
		return err
	}
	if j.Pattern.Area != nil && j.Pattern.Areas != nil {
		return fmt.Errorf("pattern.area and pattern.areas are mutually exclusive")
	}
	if j.Output.WidthMM < 0 || j.Output.HeightMM < 0 {
		return fmt.Errorf("output size must be positive")
	}
	if j.Loads.File == "" && (j.Output.Plot != "" || j.Output.Table != "") {
		return fmt.Errorf("output.plot and output.table need a loads.file")
	}
	return nil
}

// checkSize requires the dimensions of the pattern kind to be positive.
func (p PatternConfig) checkSize() error {
	positive := func(key string, v float64) error {
		if !(v > 0) {
			return fmt.Errorf("pattern.%s must be positive for kind %q, got %v", key, p.Kind, v)
		}
		return nil
	}
	switch p.Kind {
	case KindPoints:
		if len(p.Points) == 0 {
			return fmt.Errorf("pattern.points is required for kind %q", p.Kind)
		}
	case KindCircle:
		return positive("radius", p.Radius)
	case KindRectangle:
		if err := positive("x_extent", p.XExtent); err != nil {
			return err
		}
		return positive("y_extent", p.YExtent)
	case KindSquare:
		return positive("side", p.Side)
	}
	return nil
}

// Build generates the bolt pattern.
func (p PatternConfig) Build(opts ...pattern.Option) ([]r2.Vec, error) {
	switch p.Kind {
	case KindPoints:
		return pattern.Points(p.Points, opts...)
	case KindCircle:
		return pattern.Circle(p.Radius, p.N, p.StartDeg, opts...)
	case KindRectangle:
		return pattern.Rectangle(p.XExtent, p.YExtent, p.Nx, p.Ny, opts...)
	case KindSquare:
		return pattern.Square(p.Side, p.Nx, p.Ny, opts...)
	}
	return nil, fmt.Errorf("unknown pattern kind %q", p.Kind)
}

// AreaWeights returns the configured bolt areas. No area setting means
// a uniform area of 1.
func (p PatternConfig) AreaWeights() boltpat.Areas {
	switch {
	case p.Area != nil:
		return boltpat.Uniform(*p.Area)
	case p.Areas != nil:
		return boltpat.Each(p.Areas...)
	}
	return boltpat.Areas{}
}

// PivotPoint returns the configured pivot, or nil if there is none.
func (p PatternConfig) PivotPoint() (*r2.Vec, error) {
	if p.Pivot == nil {
		return nil, nil
	}
	if len(p.Pivot) != 2 {
		return nil, boltpat.ShapeErr("pivot", "want an (x, y) pair, got %d values", len(p.Pivot))
	}
	return &r2.Vec{X: p.Pivot[0], Y: p.Pivot[1]}, nil
}
