package main

import (
	"os"

	"paysplit/cmd/paysplit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
