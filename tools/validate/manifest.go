//go:build validate_manifest
// +build validate_manifest

package main

import (
	"fmt"
	"os"

	"github.com/shepherd-platform/shepctl/internal/composer"
)

// main validates the `extra.shepherd` section of each named composer.json
// against the embedded schema. Used by CI before a manifest change lands.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run -tags=validate_manifest ./tools/validate/manifest.go <composer.json> [composer.json ...]\n")
		os.Exit(1)
	}

	failed := false
	for _, path := range os.Args[1:] {
		if _, err := composer.Load(path); err != nil {
			fmt.Printf("❌ %s\n  - %v\n", path, err)
			failed = true
			continue
		}
		fmt.Printf("✅ %s\n", path)
	}

	if failed {
		os.Exit(1)
	}
}
