package handlers

import (
	"fmt"
	"log"

	"github.com/imamik/webstamp/internal/chart"
)

// Factory function variables for package - can be replaced in tests.
var (
	// exportChart builds an in-memory Helm chart from a rendered manifest.
	exportChart = chart.Export

	// saveChart writes the chart archive into a directory.
	saveChart = chart.Save

	// verifyChart round-trips a saved archive through the Helm engine.
	verifyChart = chart.Verify
)

// Package renders the manifest set and saves it as a chart archive in
// destination. With verify, the saved archive is loaded back and
// compared document by document against the in-memory set.
func Package(files, sets []string, destination string, verify bool) error {
	cfg, err := resolveConfig(files, sets)
	if err != nil {
		return err
	}

	m, err := renderManifest(cfg)
	if err != nil {
		return fmt.Errorf("failed to render manifests: %w", err)
	}

	ch, err := exportChart(cfg, m)
	if err != nil {
		return err
	}

	path, err := saveChart(ch, destination)
	if err != nil {
		return err
	}

	if verify {
		if err := verifyChart(path, m); err != nil {
			return fmt.Errorf("archive verification failed: %w", err)
		}
		log.Printf("Verified %s against the rendered set", path)
	}

	fmt.Printf("Packaged %s\n", path)
	return nil
}

// packageToDir renders the configuration and saves the chart archive
// into dir, returning the archive path. Used by publish when no archive
// is given.
func packageToDir(files, sets []string, dir string) (string, error) {
	cfg, err := resolveConfig(files, sets)
	if err != nil {
		return "", err
	}

	m, err := renderManifest(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to render manifests: %w", err)
	}

	ch, err := exportChart(cfg, m)
	if err != nil {
		return "", err
	}
	return saveChart(ch, dir)
}
