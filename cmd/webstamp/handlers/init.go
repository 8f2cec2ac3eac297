package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/webstamp/internal/config"
	"github.com/imamik/webstamp/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = wizard.FileExists

	// runWizard runs the interactive configuration wizard.
	runWizard = wizard.RunWizard

	// buildWizardConfig converts wizard answers into a config.
	buildWizardConfig = wizard.BuildConfig

	// writeConfig writes the config to a file with a generated header.
	writeConfig = wizard.WriteConfig
)

// InitOptions carries the flag values for the init command.
type InitOptions struct {
	Output      string
	UseDefaults bool
	Force       bool
	Name        string
	Namespace   string
	Image       string
	Tag         string
	Port        int32
}

// Init creates a release configuration file. On an interactive terminal
// it runs the wizard; with --defaults, or when stdout is not a terminal,
// it scaffolds the configuration from flags alone.
func Init(ctx context.Context, opts InitOptions) error {
	if fileExists(opts.Output) && !opts.Force {
		return fmt.Errorf("refusing to overwrite %s (use --force)", opts.Output)
	}

	var cfg *config.Config
	if opts.UseDefaults || !isInteractiveTTY() {
		c, err := scaffoldConfig(opts)
		if err != nil {
			return err
		}
		cfg = c
	} else {
		printWelcome()

		result, err := runWizard(ctx)
		if err != nil {
			return fmt.Errorf("wizard canceled: %w", err)
		}

		c, err := buildWizardConfig(result)
		if err != nil {
			return fmt.Errorf("failed to build config: %w", err)
		}
		cfg = c
	}

	if err := writeConfig(cfg, opts.Output); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(opts.Output, cfg)
	return nil
}

// scaffoldConfig builds a sparse config from flags. Validation runs on a
// defaulted copy; the written file keeps only the explicit fields so the
// defaults keep applying on load.
func scaffoldConfig(opts InitOptions) (*config.Config, error) {
	cfg := &config.Config{
		Name:      opts.Name,
		Namespace: opts.Namespace,
		Image: config.ImageConfig{
			Repository: opts.Image,
			Tag:        opts.Tag,
		},
		Port: opts.Port,
	}

	check := *cfg
	check.ApplyDefaults()
	if err := check.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("webstamp - Kubernetes manifests for your web service")
	fmt.Println("====================================================")
	fmt.Println()
	fmt.Println("This wizard creates a release configuration with sensible defaults.")
	fmt.Println("Unset fields fall back to the built-in defaults on every load, so")
	fmt.Println("the generated file stays small.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	effective := *cfg
	effective.ApplyDefaults()

	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Release Summary")
	fmt.Println("---------------")
	fmt.Printf("  Name:      %s\n", effective.Name)
	fmt.Printf("  Namespace: %s\n", effective.Namespace)
	fmt.Printf("  Image:     %s\n", effective.Image.Ref(effective.Version))
	fmt.Printf("  Port:      %d\n", effective.Port)
	if effective.Autoscaling.On() {
		fmt.Printf("  Replicas:  %d-%d (autoscaled)\n", effective.Autoscaling.MinReplicas, effective.Autoscaling.MaxReplicas)
	} else {
		fmt.Printf("  Replicas:  %d\n", effective.Replicas())
	}
	if effective.Ingress.On() && len(effective.Ingress.Hosts) > 0 {
		fmt.Printf("  Ingress:   %s\n", effective.Ingress.Hosts[0].Host)
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Review %s and adjust as needed\n", outputPath)
	fmt.Println()
	fmt.Println("  2. Inspect the rendered manifests:")
	fmt.Printf("     webstamp render -f %s\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Apply them to your cluster:")
	fmt.Printf("     webstamp apply -f %s --wait\n", outputPath)
	fmt.Println()
}
