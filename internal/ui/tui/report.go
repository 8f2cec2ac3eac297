package tui

import (
	"fmt"
	"strings"

	"github.com/imamik/webstamp/internal/lint"
)

// RenderValidateReport renders a one-shot styled summary of a validation
// run for interactive terminals. Non-TTY callers print issues plainly.
func RenderValidateReport(release, namespace string, documents int, result *lint.Result) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("webstamp: %s (namespace %s)", release, namespace)))
	b.WriteString("\n")

	icon, style := statusIcon(true)
	fmt.Fprintf(&b, "  %s %s\n", style(icon), style(fmt.Sprintf("rendered %d documents", documents)))

	var errs, warnings int
	for _, issue := range result.Issues {
		if issue.Severity == lint.SeverityError {
			errs++
		} else {
			warnings++
		}
	}

	switch {
	case errs > 0:
		icon, style = statusIcon(false)
		fmt.Fprintf(&b, "  %s %s\n", style(icon), style(fmt.Sprintf("%d errors, %d warnings", errs, warnings)))
	case warnings > 0:
		fmt.Fprintf(&b, "  %s %s\n", warningStyle.Render(warnMark), warningStyle.Render(fmt.Sprintf("%d warnings", warnings)))
	default:
		icon, style = statusIcon(true)
		fmt.Fprintf(&b, "  %s %s\n", style(icon), style("lint clean"))
	}

	for _, issue := range result.Issues {
		mark := warningStyle.Render(warnMark)
		if issue.Severity == lint.SeverityError {
			mark = failedStyle.Render(crossMark)
		}
		fmt.Fprintf(&b, "    %s %s\n", mark, issue.String())
	}

	return b.String()
}
