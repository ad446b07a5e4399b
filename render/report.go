package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/soypat/boltpat"
	"github.com/soypat/boltpat/plotdata"
	"gonum.org/v1/gonum/spatial/r2"
)

// Report is the content of a bolt pattern calculation report.
type Report struct {
	Title   string
	Project string
	Date    time.Time
	Points  []r2.Vec
	// Section must be computed in Full mode for Points.
	Section boltpat.Section
	// Table holds the prepared loads. Optional.
	Table *plotdata.Table
	// Plot is a PNG image placed after the tables. Optional.
	Plot []byte
}

const (
	pageWidth = 190 // mm, A4 minus margins
	rowHeight = 6   // mm
)

// WriteReport writes r as an A4 PDF document.
func WriteReport(w io.Writer, r Report) error {
	n := len(r.Points)
	if n == 0 {
		return fmt.Errorf("report has no bolts")
	}
	if len(r.Section.Rc) != n || len(r.Section.Rcxy) != n {
		return &boltpat.LengthMismatchError{Arg: "section offsets", Got: len(r.Section.Rc), Want: n}
	}
	if r.Table != nil && r.Table.Len() != n {
		return &boltpat.LengthMismatchError{Arg: "load table", Got: r.Table.Len(), Want: n}
	}
	if r.Title == "" {
		r.Title = "Bolt Pattern Report"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, r.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	if r.Project != "" {
		pdf.Cell(0, rowHeight, fmt.Sprintf("Project: %s", r.Project))
		pdf.Ln(rowHeight)
	}
	if !r.Date.IsZero() {
		pdf.Cell(0, rowHeight, fmt.Sprintf("Date: %s", r.Date.Format("2006-01-02")))
		pdf.Ln(rowHeight)
	}
	pdf.Ln(4)

	sec := r.Section
	heading(pdf, "Section properties")
	pdf.Cell(0, rowHeight, fmt.Sprintf("Bolts: %d", n))
	pdf.Ln(rowHeight)
	pdf.Cell(0, rowHeight, fmt.Sprintf("Centroid: (%s, %s)", num(sec.Centroid.X), num(sec.Centroid.Y)))
	pdf.Ln(rowHeight)
	pdf.Cell(0, rowHeight, fmt.Sprintf("Icx = %s   Icy = %s   Icp = %s", num(sec.Icx), num(sec.Icy), num(sec.Icp)))
	pdf.Ln(rowHeight + 4)

	heading(pdf, "Bolt offsets from centroid")
	rows := make([][]string, n)
	for i, p := range r.Points {
		rows[i] = []string{strconv.Itoa(i), num(p.X), num(p.Y), num(sec.Rc[i].X), num(sec.Rc[i].Y), num(sec.Rcxy[i])}
	}
	table(pdf, []string{"Bolt", "x", "y", "rcx", "rcy", "rcxy"}, rows)

	if t := r.Table; t != nil {
		heading(pdf, "Bolt loads")
		rows = make([][]string, n)
		for i := range rows {
			row := t.Row(i)
			rows[i] = []string{strconv.Itoa(row.ID), num(row.Axial), num(row.Vx), num(row.Vy), num(row.Shear)}
		}
		table(pdf, []string{"Bolt", "Axial", "Vx", "Vy", "Shear"}, rows)
		pdf.Cell(0, rowHeight, fmt.Sprintf("Color scale [%s, %s], arrow scale %s",
			num(t.Color.Low), num(t.Color.High), num(t.ArrowScale)))
		pdf.Ln(rowHeight + 4)
	}

	if len(r.Plot) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("plot", opts, bytes.NewReader(r.Plot))
		pdf.ImageOptions("plot", pdf.GetX(), pdf.GetY(), pageWidth*0.8, 0, true, opts, 0, "")
	}
	return pdf.Output(w)
}

func heading(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, s)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
}

func table(pdf *gofpdf.Fpdf, header []string, rows [][]string) {
	colW := float64(pageWidth) / float64(len(header))
	pdf.SetFont("Helvetica", "B", 10)
	for _, h := range header {
		pdf.CellFormat(colW, rowHeight, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		for _, c := range row {
			pdf.CellFormat(colW, rowHeight, c, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
