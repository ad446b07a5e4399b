package loadtable

import (
	"io"

	"github.com/soypat/boltpat/plotdata"
	"github.com/xuri/excelize/v2"
)

const (
	boltSheet  = "bolts"
	scaleSheet = "scales"
)

// WriteXLSX writes t as a workbook with one row per bolt on the "bolts"
// sheet and the centroid, color scale, arrow scale and axis ranges on the
// "scales" sheet.
func WriteXLSX(w io.Writer, t plotdata.Table) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), boltSheet); err != nil {
		return err
	}
	header := []interface{}{"bolt", "x", "y", "axial", "shear", "vx", "vy", "end x", "end y"}
	if err := f.SetSheetRow(boltSheet, "A1", &header); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.ID, r.X, r.Y, r.Axial, r.Shear, r.Vx, r.Vy, r.EndX, r.EndY}
		if err := f.SetSheetRow(boltSheet, cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(scaleSheet); err != nil {
		return err
	}
	scales := [][]interface{}{
		{"quantity", "x or low", "y or high"},
		{"centroid", t.Centroid.X, t.Centroid.Y},
		{"color", t.Color.Low, t.Color.High},
		{"x range", t.XRange.Min, t.XRange.Max},
		{"y range", t.YRange.Min, t.YRange.Max},
		{"arrow scale", t.ArrowScale, t.ArrowScale},
	}
	for i := range scales {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(scaleSheet, cell, &scales[i]); err != nil {
			return err
		}
	}
	return f.Write(w)
}
