package main

import (
	"os"

	"storefront/cmd/taskgen/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
