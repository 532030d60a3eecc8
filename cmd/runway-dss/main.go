package main

import (
	"fmt"
	"os"

	"runway-dss/cmd/runway-dss/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
