package main

import (
	"os"

	"github.com/demonstra-dev/demonstra/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
