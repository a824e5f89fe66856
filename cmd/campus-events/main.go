package main

import (
	"os"

	"github.com/mthorsen/campus-events/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(cli.ExitError)
	}
}
