package generator

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/gear6io/fixturegen/fixtures"
	"github.com/gear6io/fixturegen/formats"
)

// DefaultExcelPath is where the Excel fixture goes when no filename is given.
var DefaultExcelPath = filepath.Join("data", "test.xlsx")

var defaultDatasets = map[formats.Format]string{
	formats.Avro:    fixtures.Users,
	formats.XLSX:    fixtures.Employees,
	formats.Parquet: fixtures.UsersColumnar,
}

// DefaultDataset returns the dataset each format's fixture is built from.
func DefaultDataset(f formats.Format) string {
	return defaultDatasets[f]
}

// DefaultRequest is the request behind the per-format generator commands.
// Only the Excel generator creates its parent directory.
func DefaultRequest(f formats.Format, dest string) Request {
	return Request{
		Format:      f,
		Dataset:     DefaultDataset(f),
		Destination: dest,
		MkdirParent: f == formats.XLSX,
	}
}

// GenerateAll writes test.avro, test.xlsx and test.parquet into dir, creating
// it when missing. It stops at the first failure.
func (g *Generator) GenerateAll(ctx context.Context, dir string) ([]*Result, error) {
	var results []*Result
	for _, f := range formats.ListFormats() {
		req := DefaultRequest(f, joinDestination(dir, "test."+f.String()))
		req.MkdirParent = true
		res, err := g.Generate(ctx, req)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// joinDestination joins onto local paths and s3:// or mem:// URLs alike.
func joinDestination(dir, name string) string {
	if strings.Contains(dir, "://") {
		return strings.TrimSuffix(dir, "/") + "/" + name
	}
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

