package main

import (
	"os"

	"github.com/wonny/stockbot/cmd/stockbot/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
