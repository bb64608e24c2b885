package tui

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
)

// NoInteractiveEnv disables every prompt when set
const NoInteractiveEnv = "NEXTVER_NO_INTERACTIVE"

// ErrInteractiveDisabled is returned when interactive prompts are disabled via NEXTVER_NO_INTERACTIVE
var ErrInteractiveDisabled = fmt.Errorf("interactive prompts are disabled (%s is set)", NoInteractiveEnv)

// InteractiveAllowed reports whether prompting the user is possible
func InteractiveAllowed() bool {
	return os.Getenv(NoInteractiveEnv) == "" && IsTTY()
}

// PromptConfirm asks a yes/no question and returns the answer
func PromptConfirm(message string, defaultValue bool) (bool, error) {
	if os.Getenv(NoInteractiveEnv) != "" {
		return false, ErrInteractiveDisabled
	}

	answer := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return answer, nil
}
