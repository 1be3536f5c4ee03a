package main

import (
	"fmt"
	"os"

	"github.com/shepherd-platform/shepctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
