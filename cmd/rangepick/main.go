package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/MikeBiancalana/rangepick/internal/cli"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, cli.ErrCancelled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	// Detect interactive terminal for the picker commands.
	isInteractive := func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.Execute(isInteractive)
}
