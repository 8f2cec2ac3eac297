package handlers

import "fmt"

// Values prints the merged effective configuration as YAML: values files
// merged left to right, --set overrides applied on top, defaults filling
// the rest.
func Values(files, sets []string) error {
	cfg, err := resolveConfig(files, sets)
	if err != nil {
		return err
	}

	out, err := cfg.ToYAML()
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	fmt.Print(string(out))
	return nil
}
