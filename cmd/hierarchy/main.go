// Command hierarchy is an interactive driver for the retained branch tree.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/hierarchy/cmd/hierarchy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
