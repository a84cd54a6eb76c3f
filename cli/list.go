package cli

import (
	"fmt"
	"strings"

	"github.com/gear6io/fixturegen/fixtures"
	"github.com/gear6io/fixturegen/formats"
	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List builtin datasets and the formats compiled into this binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Formats:")
			for _, f := range formats.ListFormats() {
				status := "available"
				if !app.Generator.Codecs().Available(f) {
					status = "not compiled in"
					if _, ok := formats.Placeholder(f); ok {
						status += ", placeholder fallback"
					}
				}
				fmt.Fprintf(out, "  %-8s %s\n", f, status)
			}

			fmt.Fprintln(out, "Datasets:")
			for _, name := range fixtures.Names() {
				ds, err := fixtures.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  %-15s %d rows  [%s]\n", ds.Name, len(ds.Rows), strings.Join(ds.ColumnNames(), ", "))
			}
			return nil
		},
	}
}
