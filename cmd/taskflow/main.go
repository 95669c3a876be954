package main

import (
	"fmt"
	"os"

	"taskflow/internal/cli"
	"taskflow/internal/logging"
)

func main() {
	logging.Debugln("starting taskflow")

	root := cli.NewRootCommand(cli.NewAppFromConfig)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
