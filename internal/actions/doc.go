// Package actions provides high-level business logic for CLI commands.
//
// Each action corresponds to a nextver command (release, promote, current)
// and wires the release orchestrator to the terminal UI.
//
// Key patterns:
//   - Actions accept runtime.Context which provides Config, Repo, Splog and other dependencies
//   - Actions are stateless; a run's state lives in release.Record
//   - Actions handle user interaction through the tui package
package actions
