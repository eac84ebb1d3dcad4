// Regenerates schema/launcher.embedded.schema.json from the config structs.
// Run from the repository root after changing config/types.go.
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/grovetools/launcher/config"
)

func main() {
	data, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("generate schema: %v", err)
	}

	out := filepath.Join("schema", "launcher.embedded.schema.json")
	if err := os.WriteFile(out, data, 0644); err != nil {
		log.Fatalf("write %s: %v", out, err)
	}
	log.Printf("wrote %s", out)
}
