package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/imamik/webstamp/internal/lint"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m30s"},
		{3600 * time.Second, "1h0m"},
		{3661 * time.Second, "1h1m"},
	}
	for _, tt := range tests {
		got := formatDuration(tt.d)
		if got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestCalculateProgress_Done(t *testing.T) {
	m := Model{Done: true}
	p := calculateProgress(m)
	if p != 1.0 {
		t.Errorf("expected 1.0, got %v", p)
	}
}

func TestCalculateProgress_EarlyPhasesDone(t *testing.T) {
	m := NewModel("web", "prod")
	m.Phases[0].Done = true
	m.Phases[1].Done = true

	p := calculateProgress(m)
	expected := 0.2
	if p < expected-0.01 || p > expected+0.01 {
		t.Errorf("expected ~%v, got %v", expected, p)
	}
}

func TestCalculateProgress_ApplyPartial(t *testing.T) {
	m := NewModel("web", "prod")
	m.Phases[0].Done = true
	m.Phases[1].Done = true
	m.Phases[2].Active = true
	m.AppliedDocs = 6
	m.TotalDocs = 12

	p := calculateProgress(m)
	expected := 0.2 + 0.4*0.5
	if p < expected-0.01 || p > expected+0.01 {
		t.Errorf("expected ~%v, got %v", expected, p)
	}
}

func TestCalculateProgress_RolloutPartial(t *testing.T) {
	m := NewModel("web", "prod")
	for i := 0; i < 3; i++ {
		m.Phases[i].Done = true
	}
	m.Phases[3].Active = true
	m.ReadyReplicas = 1
	m.DesiredReplicas = 2

	p := calculateProgress(m)
	expected := 0.6 + 0.4*0.5
	if p < expected-0.01 || p > expected+0.01 {
		t.Errorf("expected ~%v, got %v", expected, p)
	}
}

func TestModelUpdatePhase(t *testing.T) {
	m := NewModel("web", "prod")

	// Start rendering
	m.updatePhase(PhaseMsg{Phase: PhaseRender})
	if !m.Phases[0].Active {
		t.Error("expected render phase to be active")
	}

	// Complete rendering
	m.updatePhase(PhaseMsg{Phase: PhaseRender, Done: true})
	if !m.Phases[0].Done {
		t.Error("expected render phase to be done")
	}
	if m.Phases[0].Active {
		t.Error("expected render phase to not be active after done")
	}

	// Jumping to apply marks the skipped validate phase done
	m.updatePhase(PhaseMsg{Phase: PhaseApply})
	if !m.Phases[1].Done {
		t.Error("expected validate phase to be done")
	}
	if !m.Phases[2].Active {
		t.Error("expected apply phase to be active")
	}
}

func TestModelUpdatePhase_AllDone(t *testing.T) {
	m := NewModel("web", "prod")
	for _, key := range []string{PhaseRender, PhaseValidate, PhaseApply, PhaseRollout} {
		m.updatePhase(PhaseMsg{Phase: key, Done: true})
	}
	if !m.PhasesDone {
		t.Error("expected PhasesDone to be true")
	}
}

func TestModelUpdate_DocumentMsg(t *testing.T) {
	m := NewModel("web", "prod")
	updated, _ := m.Update(DocumentMsg{Kind: "Deployment", Name: "web", Applied: 7, Total: 12})

	got := updated.(Model)
	if got.AppliedDocs != 7 || got.TotalDocs != 12 {
		t.Errorf("expected 7/12 documents, got %d/%d", got.AppliedDocs, got.TotalDocs)
	}
	if got.LastDocument != "Deployment/web" {
		t.Errorf("expected Deployment/web, got %s", got.LastDocument)
	}
}

func TestModelUpdate_RolloutMsg(t *testing.T) {
	m := NewModel("web", "prod")
	updated, _ := m.Update(RolloutMsg{Ready: 2, Desired: 3})

	got := updated.(Model)
	if got.ReadyReplicas != 2 || got.DesiredReplicas != 3 {
		t.Errorf("expected 2/3 replicas, got %d/%d", got.ReadyReplicas, got.DesiredReplicas)
	}
}

func TestModelUpdate_ErrMsg(t *testing.T) {
	m := NewModel("web", "prod")
	boom := errors.New("apply failed")
	updated, cmd := m.Update(ErrMsg{Err: boom})

	got := updated.(Model)
	if !errors.Is(got.Err, boom) {
		t.Errorf("expected error to be recorded, got %v", got.Err)
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestModelUpdate_DoneMsg(t *testing.T) {
	m := NewModel("web", "prod")
	updated, cmd := m.Update(DoneMsg{})

	got := updated.(Model)
	if !got.Done {
		t.Error("expected Done to be true")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestRenderView_Header(t *testing.T) {
	m := NewModel("my-service", "staging")

	output := renderView(m)

	if !strings.Contains(output, "my-service") {
		t.Error("expected release name in output")
	}
	if !strings.Contains(output, "staging") {
		t.Error("expected namespace in output")
	}
}

func TestRenderView_Phases(t *testing.T) {
	m := NewModel("web", "prod")
	m.Phases[0].Done = true
	m.Phases[1].Active = true

	output := renderView(m)

	for _, name := range []string{"Render manifests", "Validate", "Server-side apply", "Rollout"} {
		if !strings.Contains(output, name) {
			t.Errorf("expected phase %q in output", name)
		}
	}
	if !strings.Contains(output, checkMark) {
		t.Error("expected done mark in output")
	}
}

func TestRenderView_DocumentProgress(t *testing.T) {
	m := NewModel("web", "prod")
	m.Phases[2].Active = true
	m.AppliedDocs = 7
	m.TotalDocs = 12
	m.LastDocument = "Deployment/web"

	output := renderView(m)

	if !strings.Contains(output, "7/12 documents") {
		t.Error("expected document counter in output")
	}
	if !strings.Contains(output, "Deployment/web") {
		t.Error("expected last document in output")
	}
}

func TestRenderView_RolloutProgress(t *testing.T) {
	m := NewModel("web", "prod")
	m.Phases[3].Active = true
	m.ReadyReplicas = 2
	m.DesiredReplicas = 3

	output := renderView(m)

	if !strings.Contains(output, "2/3 replicas ready") {
		t.Error("expected replica counter in output")
	}
}

func TestRenderView_Error(t *testing.T) {
	m := NewModel("web", "prod")
	m.Err = errors.New("connection refused")

	output := renderView(m)

	if !strings.Contains(output, "Error:") {
		t.Error("expected error in output")
	}
	if !strings.Contains(output, "connection refused") {
		t.Error("expected error detail in output")
	}
}

func TestRenderView_ProgressBar(t *testing.T) {
	m := NewModel("web", "prod")
	m.Phases[0].Done = true

	output := renderView(m)

	if !strings.Contains(output, "░") && !strings.Contains(output, "█") {
		t.Error("expected progress bar in output")
	}
}

func TestStatusIcon(t *testing.T) {
	icon, _ := statusIcon(true)
	if icon != checkMark {
		t.Errorf("expected checkMark, got %q", icon)
	}
	icon, _ = statusIcon(false)
	if icon != crossMark {
		t.Errorf("expected crossMark, got %q", icon)
	}
}

func TestRenderValidateReport_Clean(t *testing.T) {
	result := &lint.Result{Success: true}

	output := RenderValidateReport("web", "prod", 12, result)

	if !strings.Contains(output, "rendered 12 documents") {
		t.Error("expected document count in report")
	}
	if !strings.Contains(output, "lint clean") {
		t.Error("expected clean verdict in report")
	}
}

func TestRenderValidateReport_Issues(t *testing.T) {
	result := &lint.Result{
		Success: false,
		Issues: []lint.Issue{
			{Rule: "WS002", Severity: lint.SeverityError, Kind: "Ingress", Name: "web", Message: `references service "other"`},
			{Rule: "WS010", Severity: lint.SeverityWarning, Kind: "Deployment", Name: "web", Message: "replica count 1 is outside the autoscaler range 2-8"},
		},
	}

	output := RenderValidateReport("web", "prod", 12, result)

	if !strings.Contains(output, "1 errors, 1 warnings") {
		t.Error("expected issue counts in report")
	}
	if !strings.Contains(output, "WS002") {
		t.Error("expected rule ID in report")
	}
	if !strings.Contains(output, `references service "other"`) {
		t.Error("expected issue message in report")
	}
}
