package main

import (
	"os"

	"github.com/gear6io/fixturegen/cli"
	"github.com/gear6io/fixturegen/formats"
)

func main() {
	os.Exit(cli.Run(cli.NewStandaloneCommand(formats.Parquet)))
}
