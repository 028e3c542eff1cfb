// Package export writes a grocery list out as a spreadsheet (XLSX) or CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alexmuntean1/freshfridge/internal/domain"
)

// SheetName is the worksheet the XLSX export writes to.
const SheetName = "Grocery list"

// Format selects the output encoding.
type Format int

const (
	FormatXLSX Format = iota
	FormatCSV
)

// Header is the first row of every export.
var Header = []string{"#", "Name", "Quantity"}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	if f == FormatCSV {
		return ".csv"
	}
	return ".xlsx"
}

// FormatFromPath picks the format from a file name's extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return 0, fmt.Errorf("export: unsupported extension %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}

// Write encodes items to w in the given format.
func Write(w io.Writer, f Format, items []domain.GroceryItem) error {
	if f == FormatCSV {
		return WriteCSV(w, items)
	}
	return WriteXLSX(w, items)
}

// ToFile writes items to path, choosing the format from its extension.
func ToFile(path string, items []domain.GroceryItem) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if err := Write(out, f, items); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}
	return nil
}

// WriteCSV writes a header row then one row per item. Items without a
// quantity get an empty cell.
func WriteCSV(w io.Writer, items []domain.GroceryItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("export: csv header: %w", err)
	}
	for i, it := range items {
		if err := cw.Write([]string{strconv.Itoa(i + 1), it.Name, qtyStr(it.Quantity)}); err != nil {
			return fmt.Errorf("export: csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: csv: %w", err)
	}
	return nil
}

// WriteXLSX writes a single-sheet workbook. Quantities are numeric cells;
// items without a quantity leave the cell empty.
func WriteXLSX(w io.Writer, items []domain.GroceryItem) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("export: stream writer: %w", err)
	}
	if err := sw.SetColWidth(2, 2, 28); err != nil {
		return fmt.Errorf("export: column width: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("export: header row: %w", err)
	}

	for i, it := range items {
		row := []any{i + 1, it.Name, nil}
		if it.Quantity != nil {
			row[2] = *it.Quantity
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: row %d: %w", i+1, err)
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("export: row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func qtyStr(q *int) string {
	if q == nil {
		return ""
	}
	return strconv.Itoa(*q)
}
