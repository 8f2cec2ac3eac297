package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

var phaseWeights = map[string]float64{
	PhaseRender:   0.10,
	PhaseValidate: 0.10,
	PhaseApply:    0.40,
	PhaseRollout:  0.40,
}

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgressBar(&b, m)
	renderPhases(&b, m)
	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	title := fmt.Sprintf("webstamp: %s", m.Release)
	if m.Namespace != "" {
		title += fmt.Sprintf(" (namespace %s)", m.Namespace)
	}
	b.WriteString(titleStyle.Render(title))

	status := " "
	switch {
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Done:
		status += readyStyle.Render("Rolled out")
	case activePhase(m) != "":
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + warningStyle.Render(activePhase(m))
	default:
		status += dimStyle.Render("Starting...")
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderProgressBar(b *strings.Builder, m Model) {
	progress := calculateProgress(m)
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = m.Width - 30
		if barWidth < 10 {
			barWidth = 10
		}
	}
	filled := int(float64(barWidth) * progress)
	if filled > barWidth {
		filled = barWidth
	}

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))

	fmt.Fprintf(b, "  %s %d%%\n", bar, int(progress*100))
}

func renderPhases(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Phases"))
	b.WriteString("\n")

	for _, phase := range m.Phases {
		var icon string
		var style styleFunc
		switch {
		case phase.Err != nil:
			icon = crossMark
			style = sf(failedStyle)
		case phase.Done:
			icon = checkMark
			style = sf(readyStyle)
		case phase.Active:
			icon = currentSpinner(m.SpinnerFrame)
			style = sf(activeStyle)
		default:
			icon = pending
			style = sf(dimStyle)
		}

		extra := phaseExtra(m, phase.Key)
		if extra != "" {
			extra = "  " + dimStyle.Render(extra)
		}
		fmt.Fprintf(b, "    %s %-20s%s\n", style(icon), style(phase.Name), extra)
	}
}

// phaseExtra reports live detail for the phase in flight.
func phaseExtra(m Model, key string) string {
	switch key {
	case PhaseApply:
		if m.TotalDocs > 0 {
			extra := fmt.Sprintf("%d/%d documents", m.AppliedDocs, m.TotalDocs)
			if m.LastDocument != "" {
				extra += "  " + m.LastDocument
			}
			return extra
		}
	case PhaseRollout:
		if m.DesiredReplicas > 0 {
			return fmt.Sprintf("%d/%d replicas ready", m.ReadyReplicas, m.DesiredReplicas)
		}
	}
	return ""
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := formatDuration(time.Since(m.StartTime))
	pulse := ""
	if !m.Done && m.Err == nil {
		pulse = "  |  " + currentSpinner(m.SpinnerFrame) + " applying"
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("  elapsed: %s%s  |  q: quit", elapsed, pulse)))
	b.WriteString("\n")
}

// Helper functions

func activePhase(m Model) string {
	for _, p := range m.Phases {
		if p.Active && !p.Done {
			return p.Name
		}
	}
	return ""
}

func statusIcon(ready bool) (string, styleFunc) {
	if ready {
		return checkMark, sf(readyStyle)
	}
	return crossMark, sf(failedStyle)
}

func currentSpinner(frame int) string {
	if len(spinnerFrames) == 0 {
		return spinner
	}
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

func calculateProgress(m Model) float64 {
	if m.Done {
		return 1.0
	}

	var progress float64
	for _, p := range m.Phases {
		w := phaseWeights[p.Key]
		switch {
		case p.Done:
			progress += w
		case p.Active:
			progress += w * activeFraction(m, p.Key)
		}
	}
	if progress > 1.0 {
		progress = 1.0
	}
	return progress
}

// activeFraction reports partial credit for the phase in flight.
func activeFraction(m Model, key string) float64 {
	switch key {
	case PhaseApply:
		if m.TotalDocs > 0 {
			return float64(m.AppliedDocs) / float64(m.TotalDocs)
		}
	case PhaseRollout:
		if m.DesiredReplicas > 0 {
			return float64(m.ReadyReplicas) / float64(m.DesiredReplicas)
		}
	}
	return 0
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
