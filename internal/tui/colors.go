package tui

import "github.com/charmbracelet/lipgloss"

var (
	branchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	versionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	urlStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Underline(true)
)

// ColorBranchName renders a branch name
func ColorBranchName(name string) string {
	return branchStyle.Render(name)
}

// ColorVersion renders a version string or tag
func ColorVersion(v string) string {
	return versionStyle.Render(v)
}

// ColorDim renders secondary text
func ColorDim(text string) string {
	return dimStyle.Render(text)
}

// ColorURL renders a link
func ColorURL(url string) string {
	return urlStyle.Render(url)
}
