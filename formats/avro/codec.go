// Package avro writes and reads fixture datasets as Avro object container
// files using hamba/avro.
package avro

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/go-faster/errors"
	"github.com/hamba/avro/v2"
	"github.com/hamba/avro/v2/ocf"

	"github.com/gear6io/fixturegen/fixtures"
	"github.com/gear6io/fixturegen/formats"
)

// Codec encodes datasets as OCF files with one record type per dataset.
type Codec struct {
	blockCodec ocf.CodecName
}

// Option configures a Codec
type Option func(*Codec)

// WithBlockCodec sets the OCF block compression.
func WithBlockCodec(name ocf.CodecName) Option {
	return func(c *Codec) {
		c.blockCodec = name
	}
}

// NewCodec returns an Avro codec. Blocks are uncompressed unless configured.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{blockCodec: ocf.Null}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ParseBlockCodec maps a config value to an OCF codec name.
func ParseBlockCodec(s string) (ocf.CodecName, error) {
	switch strings.ToLower(s) {
	case "", "null", "none":
		return ocf.Null, nil
	case "deflate":
		return ocf.Deflate, nil
	case "snappy":
		return ocf.Snappy, nil
	case "zstd", "zstandard":
		return ocf.ZStandard, nil
	default:
		return "", errors.Errorf("unsupported avro block codec %q", s)
	}
}

func (c *Codec) Format() formats.Format { return formats.Avro }

func (c *Codec) FileExtension() string { return ".avro" }

func (c *Codec) ContentType() string { return "application/avro" }

// Schema builds the record schema for ds: one field per column, named after
// ds.RecordName.
func Schema(ds *fixtures.Dataset) (avro.Schema, error) {
	fields := make([]*avro.Field, 0, len(ds.Columns))
	for _, col := range ds.Columns {
		typ, err := primitive(col.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "column %q", col.Name)
		}
		field, err := avro.NewField(col.Name, avro.NewPrimitiveSchema(typ, nil))
		if err != nil {
			return nil, errors.Wrapf(err, "field %q", col.Name)
		}
		fields = append(fields, field)
	}

	name := ds.RecordName
	if name == "" {
		name = "Record"
	}
	schema, err := avro.NewRecordSchema(name, "", fields)
	if err != nil {
		return nil, errors.Wrap(err, "record schema")
	}
	return schema, nil
}

func primitive(t fixtures.ColumnType) (avro.Type, error) {
	switch t {
	case fixtures.String:
		return avro.String, nil
	case fixtures.Int32:
		return avro.Int, nil
	case fixtures.Int64:
		return avro.Long, nil
	default:
		return "", errors.Errorf("no avro type for %s", t)
	}
}

// Encode writes ds to w as an OCF file.
func (c *Codec) Encode(ctx context.Context, ds *fixtures.Dataset, w io.Writer) error {
	schema, err := Schema(ds)
	if err != nil {
		return err
	}

	enc, err := ocf.NewEncoder(schema.String(), w, ocf.WithCodec(c.blockCodec))
	if err != nil {
		return errors.Wrap(err, "create ocf encoder")
	}

	for i, row := range ds.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := toAvro(ds.Columns, row)
		if err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
		if err := enc.Encode(rec); err != nil {
			return errors.Wrapf(err, "append row %d", i)
		}
	}

	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "flush ocf encoder")
	}
	return nil
}

func toAvro(cols []fixtures.Column, row []any) (map[string]any, error) {
	rec := make(map[string]any, len(cols))
	for j, col := range cols {
		var (
			v   any
			err error
		)
		switch col.Type {
		case fixtures.String:
			v, err = fixtures.AsString(row[j])
		case fixtures.Int32:
			v, err = fixtures.AsInt32(row[j])
		case fixtures.Int64:
			v, err = fixtures.AsInt64(row[j])
		default:
			err = errors.Errorf("no avro type for %s", col.Type)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "column %q", col.Name)
		}
		rec[col.Name] = v
	}
	return rec, nil
}

// Decode reads every record of an OCF file.
func (c *Codec) Decode(ctx context.Context, r io.Reader) ([]fixtures.Record, error) {
	dec, err := ocf.NewDecoder(r)
	if err != nil {
		return nil, errors.Wrap(err, "open ocf decoder")
	}

	var records []fixtures.Record
	for dec.HasNext() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Wrapf(err, "decode record %d", len(records))
		}
		records = append(records, normalize(raw))
	}
	if err := dec.Error(); err != nil {
		return nil, errors.Wrapf(err, "read record %d", len(records))
	}
	return records, nil
}

// SchemaOf returns the writer schema stored in an OCF header.
func SchemaOf(r io.Reader) (string, error) {
	dec, err := ocf.NewDecoder(r)
	if err != nil {
		return "", errors.Wrap(err, "open ocf decoder")
	}
	return string(dec.Metadata()["avro.schema"]), nil
}

// Describe reports the writer schema and block codec of an OCF file.
func (c *Codec) Describe(data []byte) (map[string]string, error) {
	dec, err := ocf.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "open ocf decoder")
	}
	meta := dec.Metadata()
	blockCodec := string(meta["avro.codec"])
	if blockCodec == "" {
		blockCodec = string(ocf.Null)
	}
	return map[string]string{
		"schema": string(meta["avro.schema"]),
		"codec":  blockCodec,
	}, nil
}

func normalize(raw map[string]any) fixtures.Record {
	rec := make(fixtures.Record, len(raw))
	for k, v := range raw {
		switch n := v.(type) {
		case int:
			rec[k] = int64(n)
		case int32:
			rec[k] = int64(n)
		default:
			rec[k] = v
		}
	}
	return rec
}
