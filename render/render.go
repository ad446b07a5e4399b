package render

import (
	"github.com/soypat/boltpat/plotdata"
	"gonum.org/v1/gonum/spatial/r2"
)

// Renderer draws a prepared load table. The whole table is drawn in one call.
type Renderer interface {
	RenderTable(t plotdata.Table) error
}

// PatternRenderer draws a bolt pattern and its centroid, without loads.
type PatternRenderer interface {
	RenderPattern(pts []r2.Vec, centroid r2.Vec) error
}

// Pattern is a bolt pattern drawn by a PatternRenderer.
type Pattern struct {
	Points   []r2.Vec
	Centroid r2.Vec
}

// Recorder keeps everything it is asked to render, in order.
type Recorder struct {
	Tables   []plotdata.Table
	Patterns []Pattern
}

// RenderTable appends t to the recorded tables.
func (r *Recorder) RenderTable(t plotdata.Table) error {
	r.Tables = append(r.Tables, t)
	return nil
}

// RenderPattern appends a copy of pts and the centroid to the recorded patterns.
func (r *Recorder) RenderPattern(pts []r2.Vec, centroid r2.Vec) error {
	cp := make([]r2.Vec, len(pts))
	copy(cp, pts)
	r.Patterns = append(r.Patterns, Pattern{Points: cp, Centroid: centroid})
	return nil
}

// Len returns the number of renders recorded.
func (r *Recorder) Len() int { return len(r.Tables) + len(r.Patterns) }
