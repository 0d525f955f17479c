package main

import (
	"os"

	"github.com/caja-dev/caja/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
