package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"farmafacil/internal/assistant"
)

// Writes the built-in assistant rules as a YAML document that can be edited
// and loaded back through ASSISTANT_RULES_PATH.
func main() {
	out := flag.String("out", "data/assistant_rules.yaml", "destination file")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	rules := assistant.DefaultRules()
	data, err := assistant.MarshalRules(rules, assistant.DefaultReply)
	if err != nil {
		log.Fatalf("Failed to render rules: %v", err)
	}

	if err := os.WriteFile(*out, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d rules\n", *out, len(rules))
	for _, r := range rules {
		fmt.Printf("  - %-15s %d keywords, %d products\n", r.Name, len(r.Keywords), len(r.Products))
	}
}
