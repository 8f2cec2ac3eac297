package handlers

import (
	"fmt"

	"github.com/imamik/webstamp/internal/lint"
	"github.com/imamik/webstamp/internal/render"
	"github.com/imamik/webstamp/internal/ui/tui"
)

// Validate checks the configuration, renders the manifest set, and lints
// the result. The command exits nonzero when any rule reports an error;
// warnings are printed but do not fail the run.
func Validate(files, sets []string) error {
	cfg, err := resolveConfig(files, sets)
	if err != nil {
		return err
	}

	m, err := renderManifest(cfg)
	if err != nil {
		return fmt.Errorf("failed to render manifests: %w", err)
	}

	result := lint.Lint(m, lint.Options{})
	if isInteractiveTTY() {
		fmt.Print(tui.RenderValidateReport(m.Release, m.Namespace, len(m.Documents), &result))
	} else {
		printValidateReport(m, result)
	}

	if !result.Success {
		return fmt.Errorf("validation failed")
	}
	return nil
}

// printValidateReport prints the plain-text validation summary.
func printValidateReport(m *render.Manifest, result lint.Result) {
	fmt.Printf("Release %s: rendered %d documents\n", m.Release, len(m.Documents))
	if len(result.Issues) == 0 {
		fmt.Println("Lint: clean")
		return
	}
	for _, issue := range result.Issues {
		fmt.Println(issue.String())
	}
}
