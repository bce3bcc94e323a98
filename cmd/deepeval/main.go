package main

import (
	"os"

	"github.com/agokrani/deepeval/cmd/deepeval/commands"
)

func main() {
	root := commands.NewRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
