package main

import (
	"os"

	"github.com/suderio/handrit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
