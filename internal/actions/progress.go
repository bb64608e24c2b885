package actions

import (
	"nextver.dev/nextver/internal/release"
	"nextver.dev/nextver/internal/tui"
)

// progress forwards orchestrator events to a ReleaseUI
type progress struct {
	ui    tui.ReleaseUI
	index map[release.Step]int
}

func startProgress(ui tui.ReleaseUI, title string, steps []release.Step) *progress {
	p := &progress{ui: ui, index: make(map[release.Step]int, len(steps))}
	items := make([]tui.StepItem, len(steps))
	for i, step := range steps {
		p.index[step] = i
		items[i] = tui.StepItem{Name: step.Description(), Status: tui.StepPending}
	}
	ui.Start(title, items)
	return p
}

func (p *progress) observe(ev release.Event) {
	idx, ok := p.index[ev.Step]
	if !ok {
		return
	}
	switch ev.Status {
	case release.StepStarted:
		p.ui.UpdateStep(idx, tui.StepRunning, "", nil)
	case release.StepDone:
		p.ui.UpdateStep(idx, tui.StepDone, ev.Detail, nil)
	case release.StepSkipped:
		p.ui.UpdateStep(idx, tui.StepSkipped, ev.Detail, nil)
	case release.StepFailed:
		p.ui.UpdateStep(idx, tui.StepFailed, "", ev.Err)
	}
}

func (p *progress) complete() {
	p.ui.Complete()
}
