// Package tui provides the terminal user interface for nextver.
//
// It handles:
//   - Structured logging and status reporting (Splog)
//   - Terminal styling and colors (using lipgloss)
//   - The release progress view (using bubbletea)
//   - Confirmation prompts (using survey)
package tui
