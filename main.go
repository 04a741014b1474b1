package main

import (
	"errors"
	"os"

	"github.com/fatih/color"

	"github.com/misterclayt0n/lazaro-planner/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrAlreadyHandled) {
			color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
