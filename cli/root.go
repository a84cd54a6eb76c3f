package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags.
var Version = "0.1.0"

// NewRootCommand builds the fixturegen command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "fixturegen",
		Short: "Generate sample Avro, Excel and Parquet fixture files",
		Long: `fixturegen writes the small sample data files used as fixtures by the
ingestion test suite.

Each format has a fixed dataset:
- avro:    users (name, age int, email), two records
- excel:   employees (name, age, department, salary) on sheet TestData
- parquet: users_columnar (name, age long, email), three records

When a codec is not compiled into the binary, the Avro and Parquet
generators write a placeholder file instead.

Destinations may be local paths, s3://bucket/key (configured in the s3
section of fixturegen.yml) or mem://path.`,
		Version:       Version,
		SilenceErrors: true,
	}
	addGlobalFlags(rootCmd, opts)
	withApp(rootCmd, opts)

	rootCmd.AddCommand(
		newFormatCommand(avroCommand),
		newFormatCommand(excelCommand),
		newFormatCommand(parquetCommand),
		newGenerateCommand(),
		newAllCommand(),
		newInspectCommand(),
		newListCommand(),
	)

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return ExecuteWithContext(context.Background())
}

// ExecuteWithContext runs the root command with ctx available to every subcommand
func ExecuteWithContext(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
