package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/gear6io/fixturegen/fixtures"
	"github.com/gear6io/fixturegen/formats"
	"github.com/gear6io/fixturegen/generator"
	"github.com/spf13/cobra"
)

// formatCommand describes one of the per-format generator commands.
type formatCommand struct {
	format  formats.Format
	name    string
	binary  string
	label   string
	notice  string
	short   string
	example string
}

var (
	avroCommand = formatCommand{
		format:  formats.Avro,
		name:    "avro",
		binary:  "generate-avro",
		label:   "Avro",
		notice:  "avro codec not available, writing placeholder",
		short:   "Generate the sample Avro file (users)",
		example: "out.avro",
	}
	excelCommand = formatCommand{
		format:  formats.XLSX,
		name:    "excel",
		binary:  "generate-excel",
		label:   "Excel",
		short:   "Generate the sample Excel workbook (employees)",
		example: "data/test.xlsx",
	}
	parquetCommand = formatCommand{
		format:  formats.Parquet,
		name:    "parquet",
		binary:  "generate-parquet",
		label:   "Parquet",
		notice:  "parquet codec not available, creating dummy file",
		short:   "Generate the sample Parquet file (users_columnar)",
		example: "out.parquet",
	}
)

var formatCommands = map[formats.Format]formatCommand{
	formats.Avro:    avroCommand,
	formats.XLSX:    excelCommand,
	formats.Parquet: parquetCommand,
}

func (fc formatCommand) use(name string) string {
	if fc.format == formats.XLSX {
		return name + " [filename]"
	}
	return name + " <filename>"
}

func (fc formatCommand) args() cobra.PositionalArgs {
	if fc.format == formats.XLSX {
		return cobra.MaximumNArgs(1)
	}
	return cobra.ExactArgs(1)
}

func (fc formatCommand) destination(args []string) string {
	if len(args) == 0 {
		return generator.DefaultExcelPath
	}
	return args[0]
}

func (fc formatCommand) runE(cmd *cobra.Command, args []string) error {
	app, err := appFrom(cmd)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	dest := fc.destination(args)
	app.Logger.Info().Str("cmd", fc.name).Str("destination", dest).Msg("Generating fixture")

	res, err := app.Generator.Generate(cmd.Context(), generator.DefaultRequest(fc.format, dest))
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), res)
	return nil
}

// newFormatCommand builds the "fixturegen <format>" subcommand.
func newFormatCommand(fc formatCommand) *cobra.Command {
	return &cobra.Command{
		Use:     fc.use(fc.name),
		Short:   fc.short,
		Example: "  fixturegen " + fc.name + " " + fc.example,
		Args:    fc.args(),
		RunE:    fc.runE,
	}
}

// NewStandaloneCommand builds the root command of a single-format binary
// such as generate-avro.
func NewStandaloneCommand(f formats.Format) *cobra.Command {
	fc, ok := formatCommands[f]
	if !ok {
		panic(fmt.Sprintf("no generator command for format %q", f))
	}

	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:           fc.use(fc.binary),
		Short:         fc.short,
		Example:       "  " + fc.binary + " " + fc.example,
		Version:       Version,
		Args:          fc.args(),
		RunE:          fc.runE,
		SilenceErrors: true,
	}
	addGlobalFlags(cmd, opts)
	withApp(cmd, opts)
	return cmd
}

// printResult writes the status lines for one generated file.
func printResult(w io.Writer, res *generator.Result) {
	fc := formatCommands[res.Format]
	if res.Placeholder && fc.notice != "" {
		fmt.Fprintln(w, fc.notice)
	}
	fmt.Fprintf(w, "Created %s file: %s\n", fc.label, res.Destination)
}

type generateOptions struct {
	format  string
	dataset string
	mkdir   bool
}

func newGenerateCommand() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <filename>",
		Short: "Write any builtin dataset in any available format",
		Long: `Write any builtin dataset in any available format.

The format defaults to the one implied by the file extension and the
dataset to the format's own fixture dataset.`,
		Example: `  fixturegen generate --format parquet --dataset employees employees.parquet
  fixturegen generate --dataset users_columnar s3://fixtures/users.avro`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			dest := args[0]
			var f formats.Format
			if opts.format != "" {
				f, err = formats.ParseFormat(opts.format)
			} else {
				f, err = formats.ForPath(dest)
			}
			if err != nil {
				return err
			}

			dataset := opts.dataset
			if dataset == "" {
				dataset = generator.DefaultDataset(f)
			}

			res, err := app.Generator.Generate(cmd.Context(), generator.Request{
				Format:      f,
				Dataset:     dataset,
				Destination: dest,
				MkdirParent: opts.mkdir,
			})
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format ("+strings.Join(formatNames(formats.ListFormats()), ", ")+")")
	cmd.Flags().StringVarP(&opts.dataset, "dataset", "d", "", "dataset ("+strings.Join(fixtures.Names(), ", ")+")")
	cmd.Flags().BoolVar(&opts.mkdir, "mkdir", false, "create the parent directory if missing")
	return cmd
}

func newAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "all [dir]",
		Short: "Write test.avro, test.xlsx and test.parquet into a directory",
		Long: `Write test.avro, test.xlsx and test.parquet into dir (default "data"),
creating it when missing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			dir := "data"
			if len(args) == 1 {
				dir = args[0]
			}

			results, err := app.Generator.GenerateAll(cmd.Context(), dir)
			for _, res := range results {
				printResult(cmd.OutOrStdout(), res)
			}
			return err
		},
	}
}

func formatNames(fs []formats.Format) []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.String()
	}
	return names
}
