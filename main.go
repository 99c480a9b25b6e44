package main

import (
	"os"

	"github.com/powerclass/marketctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
