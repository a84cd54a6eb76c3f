package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/gear6io/fixturegen/fixtures"
	"github.com/gear6io/fixturegen/generator"
	"github.com/gear6io/fixturegen/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"golang.org/x/term"
)

var (
	CLIInvalidOutput = errors.MustNewCode("cli.invalid_output")
	CLIQueryNoMatch  = errors.MustNewCode("cli.query_no_match")
)

type inspectOptions struct {
	output string
	query  string
}

// inspectDocument is the JSON shape of an inspected file.
type inspectDocument struct {
	Source      string            `json:"source"`
	Format      string            `json:"format"`
	Placeholder bool              `json:"placeholder"`
	Details     map[string]string `json:"details,omitempty"`
	Records     []fixtures.Record `json:"records"`
}

func newInspectCommand() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Decode a fixture file and print its records",
		Long: `Decode a fixture file and print its records.

The format is detected from the file's leading bytes, falling back to its
extension. Placeholder files are reported as such.

--query evaluates a GJSON path against the JSON document, for example
"records.#", "records.0.name" or "details.compression".`,
		Example: `  fixturegen inspect data/test.xlsx
  fixturegen inspect out.avro --output json
  fixturegen inspect out.parquet --query 'records.#(name=="Bob Johnson").age'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if opts.output != "table" && opts.output != "json" {
				return errors.New(CLIInvalidOutput, "output must be table or json", nil).AddContext("output", opts.output)
			}
			cmd.SilenceUsage = true

			inspected, err := app.Generator.Inspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if opts.query != "" {
				return printQuery(cmd.OutOrStdout(), inspected, opts.query)
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), inspected)
			}
			return printTable(cmd.OutOrStdout(), inspected)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "output format (table, json)")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "GJSON path evaluated against the JSON output")
	return cmd
}

func toDocument(in *generator.Inspection) inspectDocument {
	records := in.Records
	if records == nil {
		records = []fixtures.Record{}
	}
	return inspectDocument{
		Source:      in.Source,
		Format:      in.Format.String(),
		Placeholder: in.Placeholder,
		Details:     in.Details,
		Records:     records,
	}
}

func printJSON(w io.Writer, in *generator.Inspection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toDocument(in))
}

func printQuery(w io.Writer, in *generator.Inspection, query string) error {
	data, err := json.Marshal(toDocument(in))
	if err != nil {
		return err
	}
	result := gjson.GetBytes(data, query)
	if !result.Exists() {
		return errors.New(CLIQueryNoMatch, "query matched nothing", nil).AddContext("query", query)
	}
	if result.Type == gjson.String {
		_, err = fmt.Fprintln(w, result.String())
	} else {
		_, err = fmt.Fprintln(w, result.Raw)
	}
	return err
}

func printTable(w io.Writer, in *generator.Inspection) error {
	if in.Placeholder {
		_, err := fmt.Fprintf(w, "%s: placeholder %s file, no records\n", in.Source, in.Format)
		return err
	}

	fmt.Fprintf(w, "%s: %s, %d records\n", in.Source, in.Format, len(in.Records))

	keys := make([]string, 0, len(in.Details))
	for k := range in.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, in.Details[k])
	}

	if len(in.Records) == 0 {
		return nil
	}

	columns := recordColumns(in.Records)
	data := pterm.TableData{columns}
	for _, rec := range in.Records {
		row := make([]string, len(columns))
		for i, c := range columns {
			if v, ok := rec[c]; ok && v != nil {
				row[i] = fmt.Sprint(v)
			}
		}
		data = append(data, row)
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	if !isTerminal(w) {
		table = pterm.RemoveColorFromString(table)
	}
	_, err = fmt.Fprintln(w, table)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// recordColumns uses a builtin dataset's column order when the record keys
// match one, and sorted keys otherwise.
func recordColumns(records []fixtures.Record) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)

	for _, name := range fixtures.Names() {
		ds, err := fixtures.Lookup(name)
		if err != nil {
			continue
		}
		if sameColumns(ds.ColumnNames(), keys) {
			return ds.ColumnNames()
		}
	}
	return keys
}

func sameColumns(a, sorted []string) bool {
	if len(a) != len(sorted) {
		return false
	}
	cp := append([]string(nil), a...)
	sort.Strings(cp)
	for i := range cp {
		if cp[i] != sorted[i] {
			return false
		}
	}
	return true
}
