package main

import (
	"os"

	"github.com/gear6io/fixturegen/cli"
)

func main() {
	os.Exit(cli.Run(cli.NewRootCommand()))
}
