// Package parquet writes and reads fixture datasets as Parquet files through
// Apache Arrow: each dataset becomes one Arrow record batch written as a
// single row group.
package parquet

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	pq "github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/go-faster/errors"

	"github.com/gear6io/fixturegen/fixtures"
	"github.com/gear6io/fixturegen/formats"
)

// Codec encodes datasets as Parquet files.
type Codec struct {
	config WriterConfig
	mem    memory.Allocator
}

// NewCodec returns a Parquet codec using cfg for compression.
func NewCodec(cfg WriterConfig) *Codec {
	return &Codec{
		config: cfg,
		mem:    memory.NewGoAllocator(),
	}
}

func (c *Codec) Format() formats.Format { return formats.Parquet }

func (c *Codec) FileExtension() string { return ".parquet" }

func (c *Codec) ContentType() string { return "application/vnd.apache.parquet" }

// ArrowSchema maps dataset columns to nullable Arrow fields, as Arrow does
// when inferring a table from plain arrays.
func ArrowSchema(ds *fixtures.Dataset) (*arrow.Schema, error) {
	fields := make([]arrow.Field, 0, len(ds.Columns))
	for _, col := range ds.Columns {
		var typ arrow.DataType
		switch col.Type {
		case fixtures.String:
			typ = arrow.BinaryTypes.String
		case fixtures.Int32:
			typ = arrow.PrimitiveTypes.Int32
		case fixtures.Int64:
			typ = arrow.PrimitiveTypes.Int64
		default:
			return nil, errors.Errorf("column %q: no arrow type for %s", col.Name, col.Type)
		}
		fields = append(fields, arrow.Field{Name: col.Name, Type: typ, Nullable: true})
	}
	return arrow.NewSchema(fields, nil), nil
}

// buildRecord fills one builder per column from the dataset's column-major view.
func (c *Codec) buildRecord(ds *fixtures.Dataset, schema *arrow.Schema) (arrow.Record, error) {
	b := array.NewRecordBuilder(c.mem, schema)
	defer b.Release()

	for i, col := range ds.Columns {
		values, err := ds.ColumnValues(col.Name)
		if err != nil {
			return nil, err
		}
		if err := appendColumn(b.Field(i), col, values); err != nil {
			return nil, err
		}
	}
	return b.NewRecord(), nil
}

func appendColumn(fb array.Builder, col fixtures.Column, values []any) error {
	switch bld := fb.(type) {
	case *array.StringBuilder:
		for _, v := range values {
			s, err := fixtures.AsString(v)
			if err != nil {
				return errors.Wrapf(err, "column %q", col.Name)
			}
			bld.Append(s)
		}
	case *array.Int32Builder:
		for _, v := range values {
			n, err := fixtures.AsInt32(v)
			if err != nil {
				return errors.Wrapf(err, "column %q", col.Name)
			}
			bld.Append(n)
		}
	case *array.Int64Builder:
		for _, v := range values {
			n, err := fixtures.AsInt64(v)
			if err != nil {
				return errors.Wrapf(err, "column %q", col.Name)
			}
			bld.Append(n)
		}
	default:
		return errors.Errorf("column %q: unsupported builder %T", col.Name, fb)
	}
	return nil
}

// Encode writes ds to w as a Parquet file with the Arrow schema embedded.
func (c *Codec) Encode(ctx context.Context, ds *fixtures.Dataset, w io.Writer) error {
	schema, err := ArrowSchema(ds)
	if err != nil {
		return err
	}

	props, err := c.config.WriterProperties(schema)
	if err != nil {
		return err
	}

	rec, err := c.buildRecord(ds, schema)
	if err != nil {
		return err
	}
	defer rec.Release()

	if err := ctx.Err(); err != nil {
		return err
	}

	// The file writer closes its sink; the caller owns w.
	fw, err := pqarrow.NewFileWriter(schema, formats.NoClose(w), props,
		pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema()))
	if err != nil {
		return errors.Wrap(err, "create parquet writer")
	}

	if err := fw.Write(rec); err != nil {
		_ = fw.Close()
		return errors.Wrap(err, "write record batch")
	}
	if err := fw.Close(); err != nil {
		return errors.Wrap(err, "close parquet writer")
	}
	return nil
}

// Decode reads the whole file and returns its rows in order.
func (c *Codec) Decode(ctx context.Context, r io.Reader) ([]fixtures.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read parquet input")
	}

	tbl, err := pqarrow.ReadTable(ctx, bytes.NewReader(data), pq.NewReaderProperties(c.mem),
		pqarrow.ArrowReadProperties{}, c.mem)
	if err != nil {
		return nil, errors.Wrap(err, "read parquet table")
	}
	defer tbl.Release()

	tr := array.NewTableReader(tbl, 0)
	defer tr.Release()

	var records []fixtures.Record
	for tr.Next() {
		rec := tr.Record()
		schema := rec.Schema()
		for row := 0; row < int(rec.NumRows()); row++ {
			out := make(fixtures.Record, rec.NumCols())
			for i, col := range rec.Columns() {
				v, err := valueAt(col, row)
				if err != nil {
					return nil, errors.Wrapf(err, "column %q", schema.Field(i).Name)
				}
				out[schema.Field(i).Name] = v
			}
			records = append(records, out)
		}
	}
	if err := tr.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate parquet table")
	}
	return records, nil
}

func valueAt(col arrow.Array, row int) (any, error) {
	if col.IsNull(row) {
		return nil, nil
	}
	switch a := col.(type) {
	case *array.String:
		return a.Value(row), nil
	case *array.LargeString:
		return a.Value(row), nil
	case *array.Int32:
		return int64(a.Value(row)), nil
	case *array.Int64:
		return a.Value(row), nil
	default:
		return a.ValueStr(row), nil
	}
}

// Describe implements formats.Describer on top of the package-level Describe.
func (c *Codec) Describe(data []byte) (map[string]string, error) {
	info, err := Describe(data)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"rows":        strconv.FormatInt(info.NumRows, 10),
		"row_groups":  strconv.Itoa(info.NumRowGroups),
		"columns":     strings.Join(info.Columns, ","),
		"compression": info.Compression,
	}, nil
}

// FileInfo summarizes a Parquet file's footer.
type FileInfo struct {
	NumRows      int64
	NumRowGroups int
	Columns      []string
	Compression  string
}

// Describe reads the footer of a Parquet file.
func Describe(data []byte) (*FileInfo, error) {
	rdr, err := file.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "open parquet footer")
	}
	defer rdr.Close()

	meta := rdr.MetaData()
	info := &FileInfo{
		NumRows:      rdr.NumRows(),
		NumRowGroups: rdr.NumRowGroups(),
	}
	for i := 0; i < meta.Schema.NumColumns(); i++ {
		info.Columns = append(info.Columns, meta.Schema.Column(i).Name())
	}
	if info.NumRowGroups > 0 && meta.Schema.NumColumns() > 0 {
		rg := meta.RowGroup(0)
		cc, err := rg.ColumnChunk(0)
		if err == nil {
			info.Compression = cc.Compression().String()
		}
	}
	return info, nil
}
