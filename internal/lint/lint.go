// Package lint checks rendered manifest sets for internal consistency.
//
// Rendering is template-free, so whole classes of chart bugs cannot occur
// here; the linter guards the cross-references that remain. Each rule
// inspects the complete manifest and reports issues with a stable rule ID.
//
// Rules:
//
//	WS001: Workload selectors must match the pod template labels
//	WS002: Ingress backends must reference the rendered Service
//	WS003: The autoscaler must target the rendered Deployment
//	WS004: RoleBinding subjects must name the pod ServiceAccount
//	WS005: The ServiceMonitor must select the rendered Service
//	WS006: Checksum annotations must match the rendered content
//	WS007: Resource names must be valid DNS-1123 labels
//	WS008: No two documents may share kind and name
//	WS009: All documents must live in the release namespace
//	WS010: A fixed replica count outside the autoscaler range drifts
package lint

import (
	"fmt"

	"github.com/imamik/webstamp/internal/render"
)

// Severity grades an issue.
type Severity string

const (
	// SeverityError marks an inconsistency that breaks the release.
	SeverityError Severity = "error"
	// SeverityWarning marks a suspicious but functional configuration.
	SeverityWarning Severity = "warning"
)

// Issue is one finding against a rendered document.
type Issue struct {
	// Rule is the stable rule ID, e.g. "WS003".
	Rule string

	Severity Severity

	// Kind and Name locate the offending document.
	Kind string
	Name string

	Message string
}

// String formats the issue for terminal output.
func (i Issue) String() string {
	return fmt.Sprintf("%s [%s] %s/%s: %s", i.Rule, i.Severity, i.Kind, i.Name, i.Message)
}

// Rule checks one consistency property over a complete manifest.
type Rule interface {
	// ID returns the stable rule identifier.
	ID() string

	// Description returns a one-line summary of the property checked.
	Description() string

	// Check inspects the manifest and returns any findings.
	Check(m *render.Manifest) []Issue
}

// Result contains the outcome of linting.
type Result struct {
	// Success is false only when at least one error-severity issue was
	// found; warnings alone do not fail the result.
	Success bool
	Issues  []Issue
}

// Options configures the linter.
type Options struct {
	// EnabledRules restricts the run to the listed rule IDs. Empty
	// enables all rules.
	EnabledRules []string
}

// Lint runs the configured rules over the manifest.
func Lint(m *render.Manifest, opts Options) Result {
	var issues []Issue
	for _, rule := range getRules(opts) {
		issues = append(issues, rule.Check(m)...)
	}

	success := true
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			success = false
			break
		}
	}
	return Result{Success: success, Issues: issues}
}

// AllRules returns every rule in ID order.
func AllRules() []Rule {
	return []Rule{
		SelectorAgreement{},
		IngressBackends{},
		AutoscalerTarget{},
		RoleBindingSubject{},
		ServiceMonitorSelector{},
		ChecksumAnnotations{},
		ValidNames{},
		DuplicateDocuments{},
		NamespaceAgreement{},
		ReplicaDrift{},
	}
}

func getRules(opts Options) []Rule {
	all := AllRules()
	if len(opts.EnabledRules) == 0 {
		return all
	}

	enabled := make(map[string]bool)
	for _, id := range opts.EnabledRules {
		enabled[id] = true
	}

	var filtered []Rule
	for _, r := range all {
		if enabled[r.ID()] {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
