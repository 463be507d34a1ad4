package main

import (
	"os"

	"sample-dashboard/cmd/datagen/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
