package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"nextver.dev/nextver/internal/runtime"
	"nextver.dev/nextver/internal/tui"
)

// usageError is a command line mistake; help is printed along with it
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

// run loads the configuration, opens the repository and calls fn with the
// resulting context
func run(cmd *cobra.Command, flags *configFlags, fn func(ctx *runtime.Context) error) error {
	cfg, err := flags.load()
	if err != nil {
		var usage *usageError
		if errors.As(err, &usage) {
			cmd.PrintErrln(err.Error())
			_ = cmd.Help()
		}
		return err
	}

	splog, err := tui.NewSplogWithConfig(tui.GetLogFilePath())
	if err != nil {
		splog = tui.NewSplog()
		splog.Debug("File logging disabled: %v", err)
	}
	defer func() { _ = splog.Close() }()

	ctx, err := runtime.NewContext(cmd.Context(), cfg, splog)
	if err != nil {
		return err
	}
	return fn(ctx)
}
