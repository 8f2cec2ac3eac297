// Package wizard provides the interactive configuration wizard for webstamp.
//
// This package implements a TUI-based wizard that guides users through
// scaffolding a release configuration file. It uses charmbracelet/huh for
// form-based input collection.
//
// The main entry point is RunWizard, which orchestrates question groups
// and returns a Result. Use BuildConfig to convert results to a Config
// struct, and WriteConfig to generate the YAML output file.
package wizard
