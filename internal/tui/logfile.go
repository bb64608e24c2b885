package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If NEXTVER_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.nextver/logs/nextver.log
func GetLogFilePath() string {
	if customPath := os.Getenv("NEXTVER_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "nextver.log"
	}

	return filepath.Join(homeDir, ".nextver", "logs", "nextver.log")
}
