package main

import (
	"os"

	"github.com/Agrid-Dev/hersim/cmd/hersim/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
