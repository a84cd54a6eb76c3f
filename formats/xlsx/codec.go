// Package xlsx writes and reads fixture datasets as single-sheet Excel
// workbooks using excelize.
package xlsx

import (
	"context"
	"io"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/gear6io/fixturegen/fixtures"
	"github.com/gear6io/fixturegen/formats"
)

// defaultSheet is the sheet a new excelize workbook starts with.
const defaultSheet = "Sheet1"

// Codec encodes a dataset as one worksheet: a header row of column names
// followed by one row per record.
type Codec struct{}

// NewCodec returns an XLSX codec.
func NewCodec() *Codec {
	return &Codec{}
}

func (c *Codec) Format() formats.Format { return formats.XLSX }

func (c *Codec) FileExtension() string { return ".xlsx" }

func (c *Codec) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Encode writes ds to w as a workbook whose only sheet is named ds.Sheet.
func (c *Codec) Encode(ctx context.Context, ds *fixtures.Dataset, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := ds.Sheet
	if sheet == "" {
		sheet = defaultSheet
	}
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return errors.Wrapf(err, "rename sheet to %q", sheet)
		}
	}

	header := make([]any, len(ds.Columns))
	for i, name := range ds.ColumnNames() {
		header[i] = name
	}
	if err := appendRow(f, sheet, 1, header); err != nil {
		return errors.Wrap(err, "write header")
	}

	for i, row := range ds.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		cells, err := toCells(ds.Columns, row)
		if err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
		if err := appendRow(f, sheet, i+2, cells); err != nil {
			return errors.Wrapf(err, "write row %d", i)
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "save workbook")
	}
	return nil
}

func appendRow(f *excelize.File, sheet string, rowNum int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

func toCells(cols []fixtures.Column, row []any) ([]any, error) {
	cells := make([]any, len(cols))
	for j, col := range cols {
		var err error
		switch col.Type {
		case fixtures.String:
			cells[j], err = fixtures.AsString(row[j])
		case fixtures.Int32, fixtures.Int64:
			cells[j], err = fixtures.AsInt64(row[j])
		default:
			err = errors.Errorf("no cell type for %s", col.Type)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "column %q", col.Name)
		}
	}
	return cells, nil
}

// Sheet is the raw content of one worksheet.
type Sheet struct {
	Name string
	Rows [][]string
}

// ReadFirstSheet returns the name and formatted cell text of the first sheet.
func ReadFirstSheet(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheets[0])
	}
	return &Sheet{Name: sheets[0], Rows: rows}, nil
}

// Decode reads the first sheet, using its first row as field names. Cells
// that parse as integers become int64; everything else stays text. Cells
// beyond the header width are dropped.
func (c *Codec) Decode(ctx context.Context, r io.Reader) ([]fixtures.Record, error) {
	sheet, err := ReadFirstSheet(r)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, nil
	}

	header := sheet.Rows[0]
	records := make([]fixtures.Record, 0, len(sheet.Rows)-1)
	for _, row := range sheet.Rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := make(fixtures.Record, len(header))
		for i, cell := range row {
			if i >= len(header) {
				break
			}
			rec[header[i]] = cellValue(cell)
		}
		records = append(records, rec)
	}
	return records, nil
}

func cellValue(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return s
}
