package main

import (
	"os"

	"github.com/pmsuite/pathregistry/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
