package main

import (
	"os"

	"storefront/cmd/ticketscan/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
