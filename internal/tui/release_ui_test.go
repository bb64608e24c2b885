package tui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func plainColors(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestColors_PlainProfile(t *testing.T) {
	plainColors(t)

	require.Equal(t, "develop", ColorBranchName("develop"))
	require.Equal(t, "v1.2.3", ColorVersion("v1.2.3"))
	require.Equal(t, "note", ColorDim("note"))
	require.Equal(t, "https://example.com", ColorURL("https://example.com"))
}

func TestSimpleReleaseUI(t *testing.T) {
	plainColors(t)
	t.Setenv("DEBUG", "")

	var buf bytes.Buffer
	ui := NewSimpleReleaseUI(NewSplogWithWriter(&buf))

	ui.Start("Releasing app", []StepItem{
		{Name: "Verify clean"},
		{Name: "Open pull request"},
		{Name: "Push"},
	})
	ui.UpdateStep(0, StepRunning, "", nil)
	ui.UpdateStep(0, StepDone, "", nil)
	ui.UpdateStep(1, StepSkipped, "", nil)
	ui.UpdateStep(2, StepFailed, "", errors.New("rejected"))
	ui.UpdateStep(7, StepDone, "", nil)
	ui.Complete()

	require.Equal(t,
		"Releasing app\n"+
			"  ✓ Verify clean\n"+
			"  ○ Open pull request (skipped)\n"+
			"  ✗ Push failed: rejected\n",
		buf.String())
}

func TestReleaseTUIModel(t *testing.T) {
	plainColors(t)

	model := NewReleaseTUIModel([]StepItem{
		{Name: "Verify clean"},
		{Name: "Bump version files"},
		{Name: "Open pull request"},
	})
	require.NotNil(t, model.Init())

	model.Update(stepUpdateMsg{idx: 0, status: StepDone})
	model.Update(stepUpdateMsg{idx: 1, status: StepDone, detail: "1.2.3 -> 1.3.0"})
	model.Update(stepUpdateMsg{idx: 2, status: StepFailed, err: errors.New("422")})
	model.Update(stepUpdateMsg{idx: 9, status: StepDone})

	steps := model.Steps()
	require.Equal(t, StepDone, steps[0].Status)
	require.Equal(t, "1.2.3 -> 1.3.0", steps[1].Detail)
	require.Equal(t, StepFailed, steps[2].Status)

	view := model.View()
	require.Contains(t, view, "✓ Verify clean")
	require.Contains(t, view, "✓ Bump version files 1.2.3 -> 1.3.0")
	require.Contains(t, view, "✗ Open pull request 422")

	_, cmd := model.Update(releaseCompleteMsg{})
	require.True(t, model.Done())
	require.NotNil(t, cmd)
}

func TestPromptConfirm_DisabledByEnvironment(t *testing.T) {
	t.Setenv(NoInteractiveEnv, "1")

	_, err := PromptConfirm("Release?", true)
	require.ErrorIs(t, err, ErrInteractiveDisabled)
	require.False(t, InteractiveAllowed())
}
