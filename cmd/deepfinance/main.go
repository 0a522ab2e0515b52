package main

import (
	"os"

	"github.com/deepfinance-dev/deepfinance/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
