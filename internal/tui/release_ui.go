package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StepStatus is the display state of one release step
type StepStatus string

const (
	StepPending StepStatus = "pending"
	StepRunning StepStatus = "running"
	StepDone    StepStatus = "done"
	StepSkipped StepStatus = "skipped"
	StepFailed  StepStatus = "failed"
)

// StepItem is one line of the release progress view
type StepItem struct {
	Name   string
	Status StepStatus
	Detail string
	Error  error
}

// ReleaseUI defines the interface for the release progress display
type ReleaseUI interface {
	// Start shows the planned steps
	Start(title string, steps []StepItem)

	// UpdateStep changes the status of the step at idx
	UpdateStep(idx int, status StepStatus, detail string, err error)

	// Complete finalizes the display
	Complete()
}

// NewReleaseUI creates the appropriate UI based on TTY availability
func NewReleaseUI(splog *Splog) ReleaseUI {
	if IsTTY() {
		return NewTTYReleaseUI(splog)
	}
	return NewSimpleReleaseUI(splog)
}

// ============================================================================
// SimpleReleaseUI - Non-bubbletea implementation for non-TTY environments
// ============================================================================

// SimpleReleaseUI implements ReleaseUI with line-by-line output
type SimpleReleaseUI struct {
	splog *Splog
	steps []StepItem
}

// NewSimpleReleaseUI creates a new simple release UI
func NewSimpleReleaseUI(splog *Splog) *SimpleReleaseUI {
	return &SimpleReleaseUI{splog: splog}
}

func (u *SimpleReleaseUI) Start(title string, steps []StepItem) {
	u.steps = make([]StepItem, len(steps))
	copy(u.steps, steps)
	u.splog.Info("%s", title)
}

func (u *SimpleReleaseUI) UpdateStep(idx int, status StepStatus, detail string, err error) {
	if idx < 0 || idx >= len(u.steps) {
		return
	}
	step := &u.steps[idx]
	step.Status = status
	step.Detail = detail
	step.Error = err

	switch status {
	case StepRunning:
		u.splog.Debug("  ⋯ %s", step.Name)
	case StepDone:
		if detail != "" {
			u.splog.Info("  ✓ %s %s", step.Name, ColorDim(detail))
		} else {
			u.splog.Info("  ✓ %s", step.Name)
		}
	case StepSkipped:
		u.splog.Info("  ○ %s %s", ColorDim(step.Name), ColorDim("(skipped)"))
	case StepFailed:
		u.splog.Info("  ✗ %s failed: %v", step.Name, err)
	}
}

func (u *SimpleReleaseUI) Complete() {}

// ============================================================================
// TTYReleaseUI - Bubbletea implementation for TTY environments
// ============================================================================

// TTYReleaseUI implements ReleaseUI with bubbletea for animated progress
type TTYReleaseUI struct {
	splog    *Splog
	program  *tea.Program
	model    *ReleaseTUIModel
	wasQuiet bool
}

// NewTTYReleaseUI creates a new TTY release UI
func NewTTYReleaseUI(splog *Splog) *TTYReleaseUI {
	return &TTYReleaseUI{splog: splog}
}

func (u *TTYReleaseUI) Start(title string, steps []StepItem) {
	u.splog.Info("%s", title)

	u.model = NewReleaseTUIModel(steps)
	u.program = tea.NewProgram(u.model, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))

	// Console lines would tear the bubbletea view
	u.wasQuiet = u.splog.IsQuiet()
	u.splog.SetQuiet(true)

	go func() {
		_, _ = u.program.Run()
	}()
}

func (u *TTYReleaseUI) UpdateStep(idx int, status StepStatus, detail string, err error) {
	if u.program == nil {
		return
	}
	u.program.Send(stepUpdateMsg{
		idx:    idx,
		status: status,
		detail: detail,
		err:    err,
	})
}

func (u *TTYReleaseUI) Complete() {
	if u.program == nil {
		return
	}
	u.program.Send(releaseCompleteMsg{})
	u.program.Wait()
	u.splog.SetQuiet(u.wasQuiet)
}

// ============================================================================
// ReleaseTUIModel - bubbletea model for release progress
// ============================================================================

// ReleaseTUIModel renders the release steps with a spinner on the running one
type ReleaseTUIModel struct {
	steps   []StepItem
	spinner spinner.Model
	done    bool
	styles  releaseStyles
}

type releaseStyles struct {
	spinnerStyle lipgloss.Style
	doneStyle    lipgloss.Style
	errorStyle   lipgloss.Style
	stepStyle    lipgloss.Style
	detailStyle  lipgloss.Style
	dimStyle     lipgloss.Style
}

type stepUpdateMsg struct {
	idx    int
	status StepStatus
	detail string
	err    error
}

type releaseCompleteMsg struct{}

// NewReleaseTUIModel creates a model with every step in its given status
func NewReleaseTUIModel(steps []StepItem) *ReleaseTUIModel {
	items := make([]StepItem, len(steps))
	copy(items, steps)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &ReleaseTUIModel{
		steps:   items,
		spinner: s,
		styles: releaseStyles{
			spinnerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
			doneStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			stepStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			detailStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			dimStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}

// Steps returns a copy of the current step items
func (m *ReleaseTUIModel) Steps() []StepItem {
	items := make([]StepItem, len(m.steps))
	copy(items, m.steps)
	return items
}

// Done reports whether the release finished
func (m *ReleaseTUIModel) Done() bool {
	return m.done
}

func (m *ReleaseTUIModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *ReleaseTUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Steps cannot be cancelled in flight; ctrl+c only stops rendering
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stepUpdateMsg:
		if msg.idx >= 0 && msg.idx < len(m.steps) {
			m.steps[msg.idx].Status = msg.status
			m.steps[msg.idx].Detail = msg.detail
			m.steps[msg.idx].Error = msg.err
		}
		return m, nil

	case releaseCompleteMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *ReleaseTUIModel) View() string {
	var b strings.Builder
	b.WriteString("\n")

	for _, step := range m.steps {
		var icon, name string

		switch step.Status {
		case StepRunning:
			icon = m.spinner.View()
			name = m.styles.spinnerStyle.Render(step.Name + "...")
		case StepDone:
			icon = m.styles.doneStyle.Render("✓")
			name = m.styles.stepStyle.Render(step.Name)
		case StepSkipped:
			icon = m.styles.dimStyle.Render("○")
			name = m.styles.dimStyle.Render(step.Name + " (skipped)")
		case StepFailed:
			icon = m.styles.errorStyle.Render("✗")
			name = m.styles.errorStyle.Render(step.Name)
		default:
			icon = m.styles.dimStyle.Render("·")
			name = m.styles.dimStyle.Render(step.Name)
		}

		line := fmt.Sprintf("  %s %s", icon, name)
		if step.Detail != "" && step.Status != StepPending {
			line += " " + m.styles.detailStyle.Render(step.Detail)
		}
		if step.Status == StepFailed && step.Error != nil {
			line += " " + m.styles.errorStyle.Render(step.Error.Error())
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
