// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/imamik/webstamp/internal/config"
	"github.com/imamik/webstamp/internal/kube"
	"github.com/imamik/webstamp/internal/lint"
	"github.com/imamik/webstamp/internal/render"
	"github.com/imamik/webstamp/internal/ui/tui"
)

// clusterClient interface for testing - matches *kube.Client.
type clusterClient interface {
	EnsureNamespace(ctx context.Context, name string) error
	Apply(ctx context.Context, docs []render.Document) error
	ApplyDocument(ctx context.Context, doc render.Document) error
	WaitForRollout(ctx context.Context, namespace, name string, timeout time.Duration, progress func(ready, desired int32)) error
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfig merges values files and --set overrides into an effective config.
	loadConfig = config.Load

	// findConfigFile locates the default config file in the working tree.
	findConfigFile = config.FindConfigFile

	// renderManifest builds the manifest set from an effective config.
	renderManifest = render.Render

	// newClusterClient builds a cluster client from a kubeconfig path.
	newClusterClient = func(kubeconfigPath string, logger logr.Logger) (clusterClient, error) {
		return kube.NewClient(kubeconfigPath, logger)
	}

	// runApplyTUI drives the interactive progress display during apply.
	runApplyTUI = tui.RunApplyTUI

	// writeFile writes data to a file (for testing injection).
	writeFile = os.WriteFile

	// isInteractiveTTY reports whether stdout is an interactive terminal.
	isInteractiveTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

// ApplyOptions carries the flag values for the apply command.
type ApplyOptions struct {
	ValuesFiles []string
	Sets        []string
	Kubeconfig  string
	Wait        bool
	Timeout     time.Duration
	DryRun      bool
}

// Apply renders the manifest set, lints it, and submits it to the cluster.
//
// The workflow mirrors what a human would do by hand:
//  1. Merge values files and --set overrides into the effective config
//  2. Render the manifest set and gate on the lint rules
//  3. Ensure the target namespace exists
//  4. Server-side apply every document in dependency order
//  5. Optionally wait for the deployment to report all replicas available
//
// On an interactive terminal the progress is shown in a full-screen
// display; otherwise each step logs a plain line. --dry-run stops after
// step 2 without opening a cluster connection.
func Apply(ctx context.Context, opts ApplyOptions) error {
	cfg, err := resolveConfig(opts.ValuesFiles, opts.Sets)
	if err != nil {
		return err
	}

	m, err := renderManifest(cfg)
	if err != nil {
		return fmt.Errorf("failed to render manifests: %w", err)
	}

	if err := lintGate(m); err != nil {
		return err
	}

	if opts.DryRun {
		fmt.Printf("Dry run: %d documents validated for release %s, nothing applied\n", len(m.Documents), m.Release)
		return nil
	}

	if isInteractiveTTY() {
		return applyTUI(ctx, m, opts)
	}
	return applyPlain(ctx, m, opts)
}

// resolveConfig merges the given values files and --set overrides into an
// effective configuration. With no files given it looks for webstamp.yaml
// in the current directory or a parent; overrides alone are accepted when
// no file exists.
func resolveConfig(files, sets []string) (*config.Config, error) {
	if len(files) == 0 {
		path, err := findConfigFile()
		switch {
		case err == nil:
			files = []string{path}
		case len(sets) == 0:
			return nil, fmt.Errorf("no config file found: %w\nRun 'webstamp init' to create one", err)
		}
	}

	cfg, err := loadConfig(files, sets)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// lintGate runs the lint rules and fails on error-severity findings.
// Warnings are logged but do not block the apply.
func lintGate(m *render.Manifest) error {
	result := lint.Lint(m, lint.Options{})
	for _, issue := range result.Issues {
		log.Printf("lint: %s", issue)
	}
	if !result.Success {
		return fmt.Errorf("manifest failed lint checks")
	}
	return nil
}

// applyPlain applies the manifest set with line-based log output.
func applyPlain(ctx context.Context, m *render.Manifest, opts ApplyOptions) error {
	client, err := newClusterClient(opts.Kubeconfig, zap.New(zap.UseDevMode(true)))
	if err != nil {
		return fmt.Errorf("failed to connect to cluster: %w", err)
	}

	log.Printf("Applying %d documents to namespace %s", len(m.Documents), m.Namespace)
	if err := client.EnsureNamespace(ctx, m.Namespace); err != nil {
		return err
	}
	if err := client.Apply(ctx, m.Documents); err != nil {
		return err
	}

	if opts.Wait {
		name := deploymentName(m)
		log.Printf("Waiting for deployment %s/%s to roll out (timeout %s)", m.Namespace, name, opts.Timeout)
		if err := client.WaitForRollout(ctx, m.Namespace, name, opts.Timeout, nil); err != nil {
			return err
		}
		log.Printf("Deployment %s/%s rolled out", m.Namespace, name)
	}

	fmt.Printf("Applied %d documents to namespace %s\n", len(m.Documents), m.Namespace)
	return nil
}

// applyTUI applies the manifest set behind the full-screen progress
// display. Cluster logging is discarded so it cannot tear the screen;
// every observable step is reported through messages instead.
func applyTUI(ctx context.Context, m *render.Manifest, opts ApplyOptions) error {
	client, err := newClusterClient(opts.Kubeconfig, logr.Discard())
	if err != nil {
		return fmt.Errorf("failed to connect to cluster: %w", err)
	}

	return runApplyTUI(ctx, m.Release, m.Namespace, func(ch chan<- tea.Msg) error {
		// Rendering and validation already happened; mark them done so
		// the display opens with the apply phase active.
		ch <- tui.PhaseMsg{Phase: tui.PhaseRender, Done: true}
		ch <- tui.PhaseMsg{Phase: tui.PhaseValidate, Done: true}

		if err := client.EnsureNamespace(ctx, m.Namespace); err != nil {
			return err
		}

		total := len(m.Documents)
		for i, doc := range m.Documents {
			if err := client.ApplyDocument(ctx, doc); err != nil {
				return err
			}
			ch <- tui.DocumentMsg{Kind: doc.Kind, Name: doc.Name, Applied: i + 1, Total: total}
		}
		ch <- tui.PhaseMsg{Phase: tui.PhaseApply, Done: true}

		if opts.Wait {
			name := deploymentName(m)
			if err := client.WaitForRollout(ctx, m.Namespace, name, opts.Timeout, func(ready, desired int32) {
				ch <- tui.RolloutMsg{Ready: ready, Desired: desired}
			}); err != nil {
				return err
			}
		}
		ch <- tui.PhaseMsg{Phase: tui.PhaseRollout, Done: true}
		return nil
	})
}

// deploymentName returns the name of the rendered Deployment.
func deploymentName(m *render.Manifest) string {
	if docs := m.ByKind("Deployment"); len(docs) > 0 {
		return docs[0].Name
	}
	return m.Release
}
