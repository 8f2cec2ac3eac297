package handlers

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Render renders the manifest set and prints it to stdout, or writes one
// file per document when outputDir is set.
func Render(files, sets []string, outputDir string) error {
	cfg, err := resolveConfig(files, sets)
	if err != nil {
		return err
	}

	m, err := renderManifest(cfg)
	if err != nil {
		return fmt.Errorf("failed to render manifests: %w", err)
	}

	if outputDir == "" {
		fmt.Print(string(m.Combined()))
		return nil
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, doc := range m.Documents {
		path := filepath.Join(outputDir, doc.FileName())
		if err := writeFile(path, doc.Bytes, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	log.Printf("Wrote %d documents to %s", len(m.Documents), outputDir)
	return nil
}
