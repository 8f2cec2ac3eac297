package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Phase keys sent by the apply handler.
const (
	PhaseRender   = "render"
	PhaseValidate = "validate"
	PhaseApply    = "apply"
	PhaseRollout  = "rollout"
)

// Phase represents one step of the apply flow for display.
type Phase struct {
	Name   string
	Key    string
	Done   bool
	Active bool
	Err    error
}

// Model is the Bubble Tea model for the apply dashboard.
type Model struct {
	// Release info
	Release   string
	Namespace string

	// Apply phases
	Phases     []Phase
	PhasesDone bool

	// Document progress (apply phase)
	AppliedDocs  int
	TotalDocs    int
	LastDocument string

	// Rollout progress
	ReadyReplicas   int32
	DesiredReplicas int32

	// Animation
	SpinnerFrame int

	// UI state
	Width  int
	Height int
	Err    error
	Done   bool

	StartTime time.Time
}

// NewModel creates a model for the apply command TUI.
func NewModel(release, namespace string) Model {
	return Model{
		Release:   release,
		Namespace: namespace,
		StartTime: time.Now(),
		Phases: []Phase{
			{Name: "Render manifests", Key: PhaseRender},
			{Name: "Validate", Key: PhaseValidate},
			{Name: "Server-side apply", Key: PhaseApply},
			{Name: "Rollout", Key: PhaseRollout},
		},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case PhaseMsg:
		m.updatePhase(msg)
		if msg.Err != nil {
			m.Err = msg.Err
			return m, tea.Quit
		}

	case DocumentMsg:
		m.AppliedDocs = msg.Applied
		m.TotalDocs = msg.Total
		m.LastDocument = msg.Kind + "/" + msg.Name

	case RolloutMsg:
		m.ReadyReplicas = msg.Ready
		m.DesiredReplicas = msg.Desired

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updatePhase(msg PhaseMsg) {
	idx := -1
	for i, phase := range m.Phases {
		if phase.Key == msg.Phase {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	// Mark previous phases as done
	for i := 0; i < idx; i++ {
		m.Phases[i].Done = true
		m.Phases[i].Active = false
	}

	if msg.Done {
		m.Phases[idx].Done = true
		m.Phases[idx].Active = false
		if idx == len(m.Phases)-1 {
			m.PhasesDone = true
		}
	} else {
		m.Phases[idx].Active = true
	}

	if msg.Err != nil {
		m.Phases[idx].Err = msg.Err
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
