// Package loadtable reads per-bolt load tables from spreadsheets and writes
// prepared plot tables back out.
//
// A load sheet has a header row naming its columns, in any order:
//
//	bolt | axial | vx | vy | shear
//
// The bolt column is optional. When present, rows may come in any order and
// bolt IDs must cover 0..n-1 exactly once. Header names are case insensitive
// and "paxial" and "pshearmag" are accepted as aliases.
package loadtable

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/soypat/boltpat/plotdata"
	"github.com/xuri/excelize/v2"
)

const (
	colBolt = iota
	colAxial
	colVx
	colVy
	colShear
	numCols
)

var headerAliases = map[string]int{
	"bolt":      colBolt,
	"id":        colBolt,
	"bolt id":   colBolt,
	"axial":     colAxial,
	"paxial":    colAxial,
	"vx":        colVx,
	"vy":        colVy,
	"shear":     colShear,
	"pshearmag": colShear,
}

var colNames = [numCols]string{"bolt", "axial", "vx", "vy", "shear"}

// ReadXLSX reads a load table from the named sheet of an xlsx workbook.
// An empty sheet name selects the first sheet.
func ReadXLSX(r io.Reader, sheet string) (plotdata.Loads, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return plotdata.Loads{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	// Raw values, so number formats cannot round or group the loads.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return plotdata.Loads{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) (plotdata.Loads, error) {
	if len(rows) < 2 {
		return plotdata.Loads{}, fmt.Errorf("load sheet needs a header row and at least one bolt row, got %d rows", len(rows))
	}
	var idx [numCols]int
	for i := range idx {
		idx[i] = -1
	}
	for j, h := range rows[0] {
		col, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		if idx[col] >= 0 {
			return plotdata.Loads{}, fmt.Errorf("duplicate %s column in header", colNames[col])
		}
		idx[col] = j
	}
	for col := colAxial; col < numCols; col++ {
		if idx[col] < 0 {
			return plotdata.Loads{}, fmt.Errorf("missing %s column in header", colNames[col])
		}
	}

	body := rows[1:]
	n := len(body)
	loads := plotdata.Loads{
		Axial: make([]float64, n),
		Vx:    make([]float64, n),
		Vy:    make([]float64, n),
		Shear: make([]float64, n),
	}
	seen := make([]bool, n)
	for i, row := range body {
		line := i + 2 // spreadsheet row number
		id := i
		if idx[colBolt] >= 0 {
			v, err := cellInt(row, idx[colBolt])
			if err != nil {
				return plotdata.Loads{}, fmt.Errorf("row %d: bolt: %w", line, err)
			}
			if v < 0 || v >= n {
				return plotdata.Loads{}, fmt.Errorf("row %d: bolt %d out of range [0, %d)", line, v, n)
			}
			if seen[v] {
				return plotdata.Loads{}, fmt.Errorf("row %d: bolt %d listed twice", line, v)
			}
			id = v
		}
		seen[id] = true
		dst := [...]*float64{
			colAxial: &loads.Axial[id],
			colVx:    &loads.Vx[id],
			colVy:    &loads.Vy[id],
			colShear: &loads.Shear[id],
		}
		for col := colAxial; col < numCols; col++ {
			v, err := cellFloat(row, idx[col])
			if err != nil {
				return plotdata.Loads{}, fmt.Errorf("row %d: %s: %w", line, colNames[col], err)
			}
			*dst[col] = v
		}
	}
	return loads, nil
}

func cell(row []string, j int) string {
	if j >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[j])
}

func cellFloat(row []string, j int) (float64, error) {
	s := cell(row, j)
	if s == "" {
		return 0, fmt.Errorf("empty cell")
	}
	return strconv.ParseFloat(s, 64)
}

func cellInt(row []string, j int) (int, error) {
	s := cell(row, j)
	if s == "" {
		return 0, fmt.Errorf("empty cell")
	}
	return strconv.Atoi(s)
}
